package models

// MaterialType tags which of the three material tables an item belongs to.
// Exactly one of the item's material references must be set, and it must
// match this tag.
type MaterialType string

const (
	MaterialLibro     MaterialType = "libro"
	MaterialRevista   MaterialType = "revista"
	MaterialPeriodico MaterialType = "periodico"
)

// ItemMaterial is the denormalized material summary the backend embeds in
// item responses for display purposes.
type ItemMaterial struct {
	ID                string       `json:"id"`
	Titulo            string       `json:"titulo"`
	Tipo              MaterialType `json:"tipo"`
	ISBN              *string      `json:"isbn,omitempty"`
	NumeroPublicacion *string      `json:"numero_publicacion,omitempty"`
	FechaPublicacion  *string      `json:"fecha_publicacion,omitempty"`
}

// Item is a single physical copy of a material, with its own barcode,
// shelf location, physical condition and availability.
type Item struct {
	ID string `json:"id"`

	// Exactly one of the three material references is non-nil, matching
	// TipoItem.
	IDLibro     *string `json:"id_libro,omitempty"`
	IDRevista   *string `json:"id_revista,omitempty"`
	IDPeriodico *string `json:"id_periodico,omitempty"`

	TipoItem      MaterialType `json:"tipo_item"`
	CodigoBarras  *string      `json:"codigo_barras,omitempty"`
	Ubicacion     *string      `json:"ubicacion,omitempty"`
	EstadoFisico  string       `json:"estado_fisico"`
	Disponible    bool         `json:"disponible"`
	Observaciones *string      `json:"observaciones,omitempty"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`

	Material *ItemMaterial `json:"material,omitempty"`
}

// MaterialID returns whichever material reference is populated.
func (i Item) MaterialID() string {
	switch {
	case i.IDLibro != nil:
		return *i.IDLibro
	case i.IDRevista != nil:
		return *i.IDRevista
	case i.IDPeriodico != nil:
		return *i.IDPeriodico
	}
	return ""
}

// ItemCreate is the payload for POST /items. Only the material reference
// matching the chosen type may be set.
type ItemCreate struct {
	IDLibro     *string `json:"id_libro,omitempty"`
	IDRevista   *string `json:"id_revista,omitempty"`
	IDPeriodico *string `json:"id_periodico,omitempty"`

	CodigoBarras  *string `json:"codigo_barras"`
	Ubicacion     *string `json:"ubicacion"`
	EstadoFisico  string  `json:"estado_fisico"`
	Disponible    bool    `json:"disponible"`
	Observaciones *string `json:"observaciones"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// ItemUpdate is the payload for PUT /items/{id}. Material references are
// never sent on update; an item cannot change its material.
type ItemUpdate struct {
	CodigoBarras  *string `json:"codigo_barras"`
	Ubicacion     *string `json:"ubicacion"`
	EstadoFisico  *string `json:"estado_fisico,omitempty"`
	Disponible    *bool   `json:"disponible,omitempty"`
	Observaciones *string `json:"observaciones"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}
