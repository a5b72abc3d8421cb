package models

// Categoria is a catalog category reference entity.
type Categoria struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// CategoriaCreate is the payload for POST /categorias.
type CategoriaCreate struct {
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// CategoriaUpdate is the payload for PUT /categorias/{id}.
type CategoriaUpdate struct {
	Nombre      *string `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}
