package handler

// Libro is a stored book as returned by the read endpoints. Documents are
// schemaless; this type only describes the usual fields for the API docs.
type Libro struct {
	// ID del libro
	ID string `json:"id" example:"abc123"`
	// Título del libro
	Titulo string `json:"titulo" example:"Cien años de soledad"`
	// Autor del libro
	Autor string `json:"autor" example:"Gabriel García Márquez"`
	// Año de publicación
	Anio int `json:"año,omitempty" example:"1967"`
	// Género literario
	Genero string `json:"genero,omitempty" example:"Realismo mágico"`
}

// NuevoLibro is the body accepted by create and update.
type NuevoLibro struct {
	// Título del libro
	Titulo string `json:"titulo" validate:"required" example:"El principito"`
	// Autor del libro
	Autor string `json:"autor" validate:"required" example:"Antoine de Saint-Exupéry"`
	// Año de publicación
	Anio int `json:"año,omitempty" example:"1943"`
	// Género literario
	Genero string `json:"genero,omitempty" example:"Literatura infantil"`
}

// MessageResponse is returned by successful writes and by 404s.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is returned by create.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ErrorResponse carries a generic message and the underlying error text.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

const (
	msgListEmpty     = "No hay datos en la colección."
	msgListFailed    = "Error al obtener los libros"
	msgNotFound      = "Libro no encontrado"
	msgGetFailed     = "Error al obtener el libro"
	msgCreated       = "se ha creado un libro exitosamente"
	msgCreateFailed  = "Error al añadir un libro"
	msgUpdated       = "Libro actualizado exitosamente"
	msgUpdateFailed  = "Error al actualizar el libro"
	msgDeleted       = "Libro eliminado exitosamente"
	msgDeleteFailed  = "Error al eliminar el libro"
	msgBadBody       = "Cuerpo de la solicitud inválido"
	msgMissingFields = "Faltan campos obligatorios"
)
