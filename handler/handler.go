// Package handler provides the HTTP handlers for the biblioteca API.
package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/stevemurr/biblioteca-api/docs" // registers the swagger document
	"github.com/stevemurr/biblioteca-api/store"
)

// DefaultCollection is the collection the record routes operate on.
const DefaultCollection = "biblioteca"

// Options configures a Handler. The zero value is usable.
type Options struct {
	Collection     string
	Logger         *zap.Logger
	AllowedOrigins []string
	// RequireFields rejects creates without titulo and autor.
	RequireFields bool
	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// Handler holds the server dependencies and registers routes.
type Handler struct {
	store      store.Store
	collection string
	log        *zap.Logger
	validate   *validator.Validate
	metrics    *metrics
	router     chi.Router
}

// New creates a Handler and wires up all routes.
func New(s store.Store, opts Options) *Handler {
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	h := &Handler{
		store:      s,
		collection: opts.Collection,
		log:        opts.Logger.With(zap.String("component", "handler"), zap.String("collection", opts.Collection)),
		metrics:    newMetrics(opts.Registry),
		router:     chi.NewRouter(),
	}
	if opts.RequireFields {
		h.validate = newValidator()
	}
	h.routes(opts)
	return h
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes(opts Options) {
	r := h.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}))
	r.Use(h.metrics.middleware)

	r.Get("/", h.root)
	r.Get("/health", h.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	r.Get("/api-docs", http.RedirectHandler("/api-docs/index.html", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/api-docs/*", httpSwagger.Handler(httpSwagger.URL("/api-docs/doc.json")))

	// Records
	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/libros", h.serve(h.listBooks, false))
		r.Get("/libros/{id}", h.serve(h.getBook, false))
		r.Post("/agregar", h.serve(h.createBook, true))
		r.Put("/actualizar/{id}", h.serve(h.updateBook, true))
		r.Delete("/eliminar/{id}", h.serve(h.deleteBook, false))
	})
}

// root godoc
// @Summary  Endpoint de prueba
// @Produce  plain
// @Success  200  {string}  string  "Devuelve un mensaje de Hello World"
// @Router   / [get]
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "Hello World!")
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.Warn("store ping failed", zap.Error(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	render.JSON(w, r, map[string]string{"status": "healthy"})
}

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
