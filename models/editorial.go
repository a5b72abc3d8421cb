package models

// Editorial is a publisher reference entity.
type Editorial struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// EditorialCreate is the payload for POST /editoriales.
type EditorialCreate struct {
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// EditorialUpdate is the payload for PUT /editoriales/{id}.
type EditorialUpdate struct {
	Nombre    *string `json:"nombre,omitempty"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}
