package models

// Periodico is a newspaper-type catalog material, identified by its
// publication date.
type Periodico struct {
	ID               string  `json:"id"`
	Titulo           string  `json:"titulo"`
	FechaPublicacion string  `json:"fecha_publicacion"`
	IDEditorial      string  `json:"id_editorial"`
	IDAutor          string  `json:"id_autor"`
	IDCategoria      *string `json:"id_categoria,omitempty"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// PeriodicoCreate is the payload for POST /periodicos.
type PeriodicoCreate struct {
	Titulo           string  `json:"titulo"`
	FechaPublicacion string  `json:"fecha_publicacion"`
	IDEditorial      string  `json:"id_editorial"`
	IDAutor          string  `json:"id_autor"`
	IDCategoria      *string `json:"id_categoria"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// PeriodicoUpdate is the payload for PUT /periodicos/{id}.
type PeriodicoUpdate struct {
	Titulo           *string `json:"titulo,omitempty"`
	FechaPublicacion *string `json:"fecha_publicacion,omitempty"`
	IDEditorial      *string `json:"id_editorial,omitempty"`
	IDAutor          *string `json:"id_autor,omitempty"`
	IDCategoria      *string `json:"id_categoria"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}
