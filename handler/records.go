package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/stevemurr/biblioteca-api/store"
)

// Request is what a record operation sees of an HTTP request: the {id} path
// parameter and the decoded JSON body.
type Request struct {
	ID   string
	Body map[string]any
}

// Response is the status code and JSON payload an operation produces.
// Err is logged, never serialized.
type Response struct {
	Status  int
	Payload any
	Err     error
}

type operation func(ctx context.Context, req Request) Response

// serve adapts an operation to an http.HandlerFunc.
func (h *Handler) serve(op operation, withBody bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := Request{ID: chi.URLParam(r, "id")}
		if withBody {
			body, err := decodeBody(r.Body)
			if err != nil {
				h.write(w, r, failure(http.StatusBadRequest, msgBadBody, err))
				return
			}
			req.Body = body
		}
		h.write(w, r, op(r.Context(), req))
	}
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, resp Response) {
	if resp.Status >= http.StatusInternalServerError {
		h.log.Error("store operation failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", resp.Status),
			zap.Error(resp.Err),
		)
	}
	render.Status(r, resp.Status)
	render.JSON(w, r, resp.Payload)
}

func ok(payload any) Response {
	return Response{Status: http.StatusOK, Payload: payload}
}

func notFound(message string) Response {
	return Response{Status: http.StatusNotFound, Payload: MessageResponse{Message: message}}
}

func failure(status int, message string, err error) Response {
	return Response{
		Status:  status,
		Payload: ErrorResponse{Message: message, Error: err.Error()},
		Err:     err,
	}
}

// listBooks godoc
// @Summary  Obtener todos los libros
// @Tags     libros
// @Produce  json
// @Success  200  {array}   Libro            "Lista de todos los libros"
// @Failure  404  {object}  MessageResponse  "No hay libros en la colección"
// @Failure  500  {object}  ErrorResponse    "Error al obtener los libros"
// @Router   /libros [get]
func (h *Handler) listBooks(ctx context.Context, _ Request) Response {
	docs, err := h.store.GetAll(ctx, h.collection)
	if err != nil {
		return failure(http.StatusInternalServerError, msgListFailed, err)
	}
	if len(docs) == 0 {
		return notFound(msgListEmpty)
	}
	books := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		books = append(books, withID(d.ID, d.Data))
	}
	return ok(books)
}

// getBook godoc
// @Summary  Obtener un libro por ID
// @Tags     libros
// @Produce  json
// @Param    id   path      string           true  "ID del libro a buscar"
// @Success  200  {object}  Libro            "Datos del libro encontrado"
// @Failure  404  {object}  MessageResponse  "Libro no encontrado"
// @Failure  500  {object}  ErrorResponse    "Error al obtener el libro"
// @Router   /libros/{id} [get]
func (h *Handler) getBook(ctx context.Context, req Request) Response {
	doc, err := h.store.Get(ctx, h.collection, req.ID)
	if err != nil {
		return failure(http.StatusInternalServerError, msgGetFailed, err)
	}
	if doc == nil {
		return notFound(msgNotFound)
	}
	return ok(withID(doc.ID, doc.Data))
}

// createBook godoc
// @Summary  Agregar un nuevo libro
// @Tags     libros
// @Accept   json
// @Produce  json
// @Param    libro  body      NuevoLibro       true  "Libro a crear"
// @Success  200    {object}  CreatedResponse  "Libro creado exitosamente"
// @Failure  400    {object}  ErrorResponse    "Cuerpo de la solicitud inválido"
// @Failure  500    {object}  ErrorResponse    "Error al añadir el libro"
// @Router   /agregar [post]
func (h *Handler) createBook(ctx context.Context, req Request) Response {
	if err := h.checkRequired(req.Body); err != nil {
		return failure(http.StatusBadRequest, msgMissingFields, err)
	}
	id, err := h.store.Add(ctx, h.collection, req.Body)
	if err != nil {
		return failure(http.StatusInternalServerError, msgCreateFailed, err)
	}
	return ok(CreatedResponse{Message: msgCreated, ID: id})
}

// updateBook godoc
// @Summary  Actualizar un libro existente
// @Tags     libros
// @Accept   json
// @Produce  json
// @Param    id     path      string           true  "ID del libro a actualizar"
// @Param    libro  body      NuevoLibro       true  "Campos a modificar"
// @Success  200    {object}  MessageResponse  "Libro actualizado exitosamente"
// @Failure  400    {object}  ErrorResponse    "Cuerpo de la solicitud inválido"
// @Failure  500    {object}  ErrorResponse    "Error al actualizar el libro"
// @Router   /actualizar/{id} [put]
func (h *Handler) updateBook(ctx context.Context, req Request) Response {
	// A missing document surfaces as store.ErrNotFound and is reported as a
	// store failure, not as 404.
	if err := h.store.Update(ctx, h.collection, req.ID, req.Body); err != nil {
		return failure(http.StatusInternalServerError, msgUpdateFailed, err)
	}
	return ok(MessageResponse{Message: msgUpdated})
}

// deleteBook godoc
// @Summary  Eliminar un libro
// @Tags     libros
// @Produce  json
// @Param    id   path      string           true  "ID del libro a eliminar"
// @Success  200  {object}  MessageResponse  "Libro eliminado exitosamente"
// @Failure  500  {object}  ErrorResponse    "Error al eliminar el libro"
// @Router   /eliminar/{id} [delete]
func (h *Handler) deleteBook(ctx context.Context, req Request) Response {
	if err := h.store.Delete(ctx, h.collection, req.ID); err != nil {
		return failure(http.StatusInternalServerError, msgDeleteFailed, err)
	}
	return ok(MessageResponse{Message: msgDeleted})
}

// checkRequired enforces titulo and autor when strict mode is on.
func (h *Handler) checkRequired(body map[string]any) error {
	if h.validate == nil {
		return nil
	}
	titulo, _ := body["titulo"].(string)
	autor, _ := body["autor"].(string)
	err := h.validate.Struct(NuevoLibro{Titulo: titulo, Autor: autor})

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("campos requeridos: %s", strings.Join(fields, ", "))
	}
	return err
}

// withID returns a copy of data with the document id attached.
func withID(id string, data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["id"] = id
	return out
}

// decodeBody reads a JSON object. An empty body is an empty object. The id
// key is dropped since ids are assigned by the store.
func decodeBody(r io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON object")
	}
	body, isObject := v.(map[string]any)
	if !isObject {
		return nil, errors.New("request body must be a JSON object")
	}
	delete(body, "id")
	return store.Normalize(body).(map[string]any), nil
}
