package models

// Revista is a magazine-type catalog material, distinguished from books by
// its issue number instead of ISBN/page count.
type Revista struct {
	ID                string  `json:"id"`
	Titulo            string  `json:"titulo"`
	NumeroPublicacion *string `json:"numero_publicacion,omitempty"`
	IDEditorial       string  `json:"id_editorial"`
	IDAutor           string  `json:"id_autor"`
	IDCategoria       *string `json:"id_categoria,omitempty"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// RevistaCreate is the payload for POST /revistas.
type RevistaCreate struct {
	Titulo            string  `json:"titulo"`
	NumeroPublicacion *string `json:"numero_publicacion"`
	IDEditorial       string  `json:"id_editorial"`
	IDAutor           string  `json:"id_autor"`
	IDCategoria       *string `json:"id_categoria"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// RevistaUpdate is the payload for PUT /revistas/{id}.
type RevistaUpdate struct {
	Titulo            *string `json:"titulo,omitempty"`
	NumeroPublicacion *string `json:"numero_publicacion"`
	IDEditorial       *string `json:"id_editorial,omitempty"`
	IDAutor           *string `json:"id_autor,omitempty"`
	IDCategoria       *string `json:"id_categoria"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}
