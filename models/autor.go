package models

// Autor is a catalog author reference entity.
type Autor struct {
	ID           string  `json:"id"`
	Nombre       string  `json:"nombre"`
	Nacionalidad string  `json:"nacionalidad"`
	Bibliografia *string `json:"bibliografia,omitempty"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// AutorCreate is the payload for POST /autores.
type AutorCreate struct {
	Nombre       string  `json:"nombre"`
	Nacionalidad string  `json:"nacionalidad"`
	Bibliografia *string `json:"bibliografia"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// AutorUpdate is the payload for PUT /autores/{id}.
type AutorUpdate struct {
	Nombre       *string `json:"nombre,omitempty"`
	Nacionalidad *string `json:"nacionalidad,omitempty"`
	Bibliografia *string `json:"bibliografia"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}
