package models

// Libro is a book-type catalog material. It references a publisher and an
// author, and optionally a category.
type Libro struct {
	ID            string  `json:"id"`
	Titulo        string  `json:"titulo"`
	ISBN          *string `json:"isbn,omitempty"`
	NumeroPaginas *string `json:"numero_paginas,omitempty"`
	IDEditorial   string  `json:"id_editorial"`
	IDAutor       string  `json:"id_autor"`
	IDCategoria   *string `json:"id_categoria,omitempty"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// LibroCreate is the payload for POST /libros.
type LibroCreate struct {
	Titulo        string  `json:"titulo"`
	ISBN          *string `json:"isbn"`
	NumeroPaginas *string `json:"numero_paginas"`
	IDEditorial   string  `json:"id_editorial"`
	IDAutor       string  `json:"id_autor"`
	IDCategoria   *string `json:"id_categoria"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// LibroUpdate is the payload for PUT /libros/{id}.
type LibroUpdate struct {
	Titulo        *string `json:"titulo,omitempty"`
	ISBN          *string `json:"isbn"`
	NumeroPaginas *string `json:"numero_paginas"`
	IDEditorial   *string `json:"id_editorial,omitempty"`
	IDAutor       *string `json:"id_autor,omitempty"`
	IDCategoria   *string `json:"id_categoria"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}
