package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/stevemurr/biblioteca-api/docs"
	"github.com/stevemurr/biblioteca-api/handler"
	"github.com/stevemurr/biblioteca-api/store"
)

func setup(t *testing.T, s store.Store, opts handler.Options) *httptest.Server {
	t.Helper()
	opts.Logger = zaptest.NewLogger(t)
	ts := httptest.NewServer(handler.New(s, opts))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, r io.Reader) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}

func decodeJSONArray(t *testing.T, r io.Reader) []map[string]any {
	t.Helper()
	var v []map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&v))
	return v
}

func create(t *testing.T, ts *httptest.Server, body string) string {
	t.Helper()
	resp := do(t, http.MethodPost, ts.URL+"/agregar", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeJSON(t, resp.Body)
	assert.Equal(t, "se ha creado un libro exitosamente", got["message"])
	id, _ := got["id"].(string)
	require.NotEmpty(t, id)
	return id
}

const principito = `{"titulo":"El principito","autor":"Antoine de Saint-Exupéry","año":1943,"genero":"Literatura infantil"}`

func TestRoot(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})

	resp := do(t, http.MethodGet, ts.URL+"/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Hello World!", string(b))
}

func TestCreateThenGet(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})
	id := create(t, ts, principito)

	resp := do(t, http.MethodGet, ts.URL+"/libros/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	got := decodeJSON(t, resp.Body)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "El principito", got["titulo"])
	assert.Equal(t, "Antoine de Saint-Exupéry", got["autor"])
	assert.Equal(t, float64(1943), got["año"])
	assert.Equal(t, "Literatura infantil", got["genero"])
	assert.Len(t, got, 5)
}

func TestListBooks(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})

	resp := do(t, http.MethodGet, ts.URL+"/libros", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No hay datos en la colección.", decodeJSON(t, resp.Body)["message"])

	ids := map[string]bool{}
	for _, body := range []string{
		principito,
		`{"titulo":"Cien años de soledad","autor":"Gabriel García Márquez"}`,
		`{"titulo":"Rayuela","autor":"Julio Cortázar"}`,
	} {
		ids[create(t, ts, body)] = true
	}

	resp = do(t, http.MethodGet, ts.URL+"/libros", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	books := decodeJSONArray(t, resp.Body)
	require.Len(t, books, 3)
	for _, b := range books {
		id, _ := b["id"].(string)
		assert.True(t, ids[id], "unexpected id %q", id)
	}
}

func TestGetMissing(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})

	resp := do(t, http.MethodGet, ts.URL+"/libros/nope", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Libro no encontrado", decodeJSON(t, resp.Body)["message"])
}

func TestPartialUpdate(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})
	id := create(t, ts, principito)

	resp := do(t, http.MethodPut, ts.URL+"/actualizar/"+id, `{"autor":"X"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Libro actualizado exitosamente", decodeJSON(t, resp.Body)["message"])

	got := decodeJSON(t, do(t, http.MethodGet, ts.URL+"/libros/"+id, "").Body)
	assert.Equal(t, "X", got["autor"])
	assert.Equal(t, "El principito", got["titulo"])
	assert.Equal(t, float64(1943), got["año"])
	assert.Equal(t, "Literatura infantil", got["genero"])
}

func TestUpdateMissingIsStoreError(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})

	resp := do(t, http.MethodPut, ts.URL+"/actualizar/nope", `{"autor":"X"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	got := decodeJSON(t, resp.Body)
	assert.Equal(t, "Error al actualizar el libro", got["message"])
	assert.Contains(t, got["error"], store.ErrNotFound.Error())
}

func TestIDInBodyIsIgnored(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})
	id := create(t, ts, `{"id":"mine","titulo":"Ficciones","autor":"Jorge Luis Borges"}`)
	assert.NotEqual(t, "mine", id)

	resp := do(t, http.MethodPut, ts.URL+"/actualizar/"+id, `{"id":"other"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decodeJSON(t, do(t, http.MethodGet, ts.URL+"/libros/"+id, "").Body)
	assert.Equal(t, id, got["id"])
}

func TestLargeIntegersRoundTrip(t *testing.T) {
	backends := map[string]func(t *testing.T) store.Store{
		"memory": func(t *testing.T) store.Store { return store.NewMemoryStore() },
		"file": func(t *testing.T) store.Store {
			s, err := store.NewFileStoreFs(afero.NewMemMapFs(), "/data")
			require.NoError(t, err)
			return s
		},
		"redis": func(t *testing.T) store.Store {
			mr := miniredis.RunT(t)
			return store.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "libros")
		},
	}
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			ts := setup(t, newStore(t), handler.Options{})
			id := create(t, ts, `{"titulo":"Ficciones","isbn":9007199254740993,"precio":12.5}`)

			resp := do(t, http.MethodPut, ts.URL+"/actualizar/"+id, `{"ejemplares":9007199254740995}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			resp = do(t, http.MethodGet, ts.URL+"/libros/"+id, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			dec := json.NewDecoder(resp.Body)
			dec.UseNumber()
			var got map[string]any
			require.NoError(t, dec.Decode(&got))
			assert.Equal(t, json.Number("9007199254740993"), got["isbn"])
			assert.Equal(t, json.Number("9007199254740995"), got["ejemplares"])
			assert.Equal(t, json.Number("12.5"), got["precio"])
		})
	}
}

func TestDeleteThenGet(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})
	id := create(t, ts, principito)

	resp := do(t, http.MethodDelete, ts.URL+"/eliminar/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Libro eliminado exitosamente", decodeJSON(t, resp.Body)["message"])

	resp = do(t, http.MethodGet, ts.URL+"/libros/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteMissing(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})

	resp := do(t, http.MethodDelete, ts.URL+"/eliminar/doesnotexist", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMalformedBody(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})

	for _, body := range []string{`{`, `[1,2]`, `"libro"`, `{"a":1} {"b":2}`} {
		t.Run(body, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+"/agregar", body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			got := decodeJSON(t, resp.Body)
			assert.Equal(t, "Cuerpo de la solicitud inválido", got["message"])
			assert.NotEmpty(t, got["error"])
		})
	}
}

func TestEmptyBodyCreatesEmptyRecord(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})

	resp := do(t, http.MethodPost, ts.URL+"/agregar", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireFields(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{RequireFields: true})

	resp := do(t, http.MethodPost, ts.URL+"/agregar", `{"titulo":"Sin autor"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	got := decodeJSON(t, resp.Body)
	assert.Equal(t, "Faltan campos obligatorios", got["message"])
	assert.Contains(t, got["error"], "autor")
	assert.NotContains(t, got["error"], "titulo")

	create(t, ts, principito)
}

// MockStore is a mock implementation of store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetAll(ctx context.Context, collection string) ([]store.Document, error) {
	args := m.Called(collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Document), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	args := m.Called(collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Document), args.Error(1)
}

func (m *MockStore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	args := m.Called(collection, data)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return m.Called(collection, id, fields).Error(0)
}

func (m *MockStore) Delete(ctx context.Context, collection, id string) error {
	return m.Called(collection, id).Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called().Error(0)
}

func (m *MockStore) Close() error { return nil }

func TestStoreFailures(t *testing.T) {
	errBoom := errors.New("permission denied")

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		setup   func(m *MockStore)
		message string
	}{
		{
			name:    "list",
			method:  http.MethodGet,
			path:    "/libros",
			setup:   func(m *MockStore) { m.On("GetAll", "biblioteca").Return(nil, errBoom) },
			message: "Error al obtener los libros",
		},
		{
			name:    "get",
			method:  http.MethodGet,
			path:    "/libros/abc",
			setup:   func(m *MockStore) { m.On("Get", "biblioteca", "abc").Return(nil, errBoom) },
			message: "Error al obtener el libro",
		},
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/agregar",
			body:   `{"titulo":"T","autor":"A","año":2001}`,
			setup: func(m *MockStore) {
				m.On("Add", "biblioteca", map[string]any{"titulo": "T", "autor": "A", "año": int64(2001)}).
					Return("", errBoom)
			},
			message: "Error al añadir un libro",
		},
		{
			name:   "update",
			method: http.MethodPut,
			path:   "/actualizar/abc",
			body:   `{"genero":"Ensayo"}`,
			setup: func(m *MockStore) {
				m.On("Update", "biblioteca", "abc", map[string]any{"genero": "Ensayo"}).Return(errBoom)
			},
			message: "Error al actualizar el libro",
		},
		{
			name:    "delete",
			method:  http.MethodDelete,
			path:    "/eliminar/abc",
			setup:   func(m *MockStore) { m.On("Delete", "biblioteca", "abc").Return(errBoom) },
			message: "Error al eliminar el libro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockStore)
			tt.setup(m)
			ts := setup(t, m, handler.Options{})

			resp := do(t, tt.method, ts.URL+tt.path, tt.body)
			require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			got := decodeJSON(t, resp.Body)
			assert.Equal(t, tt.message, got["message"])
			assert.Equal(t, "permission denied", got["error"])
			m.AssertExpectations(t)
		})
	}
}

func TestCustomCollection(t *testing.T) {
	m := new(MockStore)
	m.On("Get", "libros_prueba", "abc").
		Return(&store.Document{ID: "abc", Data: map[string]any{"titulo": "T"}}, nil)
	ts := setup(t, m, handler.Options{Collection: "libros_prueba"})

	resp := do(t, http.MethodGet, ts.URL+"/libros/abc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "T", decodeJSON(t, resp.Body)["titulo"])
	m.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	m := new(MockStore)
	m.On("Ping").Return(nil).Once()
	m.On("Ping").Return(errors.New("unreachable")).Once()
	ts := setup(t, m, handler.Options{})

	resp := do(t, http.MethodGet, ts.URL+"/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decodeJSON(t, resp.Body)["status"])

	resp = do(t, http.MethodGet, ts.URL+"/health", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "unreachable", decodeJSON(t, resp.Body)["error"])
}

func TestMetrics(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})
	do(t, http.MethodGet, ts.URL+"/libros/abc", "")

	resp := do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `biblioteca_http_requests_total{code="404",method="GET",route="/libros/{id}"} 1`)
}

func TestAPIDocs(t *testing.T) {
	ts := setup(t, store.NewMemoryStore(), handler.Options{})

	resp := do(t, http.MethodGet, ts.URL+"/api-docs/doc.json", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decodeJSON(t, resp.Body)
	paths, _ := doc["paths"].(map[string]any)
	for _, p := range []string{"/", "/libros", "/libros/{id}", "/agregar", "/actualizar/{id}", "/eliminar/{id}"} {
		assert.Contains(t, paths, p)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api-docs/index.html", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "swagger-ui"))
}

func TestAPIDocsHost(t *testing.T) {
	prev := docs.SwaggerInfo.Host
	t.Cleanup(func() { docs.SwaggerInfo.Host = prev })
	docs.SwaggerInfo.Host = "localhost:8081"

	ts := setup(t, store.NewMemoryStore(), handler.Options{})
	resp := do(t, http.MethodGet, ts.URL+"/api-docs/doc.json", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decodeJSON(t, resp.Body)
	assert.Equal(t, "localhost:8081", doc["host"])
	assert.Equal(t, "/", doc["basePath"])

	info, _ := doc["info"].(map[string]any)
	assert.Equal(t, "API de Biblioteca Firebase", info["title"])
	assert.Equal(t, "1.0.0", info["version"])

	defs, _ := doc["definitions"].(map[string]any)
	libro, _ := defs["handler.Libro"].(map[string]any)
	props, _ := libro["properties"].(map[string]any)
	titulo, _ := props["titulo"].(map[string]any)
	assert.Equal(t, "Título del libro", titulo["description"])
}
