// Package service exposes typed facades over the backend's REST resources.
// Each facade is a uniform CRUD surface (List/Get/Create/Update/Delete) plus
// the resource's auxiliary calls, built on [adapter.Gateway]. The facades
// own paths, query parameters and payload types; they do no caching and no
// retries, and the only data they add to payloads is the acting-user
// identifier resolved from the session store.
package service

import (
	"strconv"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
)

// Services bundles every resource facade behind a single constructor so the
// TUI receives one dependency instead of eleven.
type Services struct {
	Auth        *Auth
	Usuarios    *Usuarios
	Autores     *Autores
	Editoriales *Editoriales
	Categorias  *Categorias
	Libros      *Libros
	Revistas    *Revistas
	Periodicos  *Periodicos
	Items       *Items
	Prestamos   *Prestamos
	Multas      *Multas
}

// New wires the resource facades to the gateway and session store. pageSize
// is the default limit applied when a list call passes limit <= 0.
func New(gateway adapter.Gateway, store *session.Store, pageSize int) *Services {
	return &Services{
		Auth:        &Auth{gateway: gateway, store: store},
		Usuarios:    &Usuarios{gateway: gateway, store: store, pageSize: pageSize},
		Autores:     &Autores{gateway: gateway, store: store, pageSize: pageSize},
		Editoriales: &Editoriales{gateway: gateway, store: store, pageSize: pageSize},
		Categorias:  &Categorias{gateway: gateway, store: store, pageSize: pageSize},
		Libros:      &Libros{gateway: gateway, store: store, pageSize: pageSize},
		Revistas:    &Revistas{gateway: gateway, store: store, pageSize: pageSize},
		Periodicos:  &Periodicos{gateway: gateway, store: store, pageSize: pageSize},
		Items:       &Items{gateway: gateway, store: store, pageSize: pageSize},
		Prestamos:   &Prestamos{gateway: gateway, store: store, pageSize: pageSize},
		Multas:      &Multas{gateway: gateway, store: store, pageSize: pageSize},
	}
}

// pageQuery builds the offset-pagination parameters shared by every list
// endpoint. limit <= 0 falls back to the configured page size.
func pageQuery(skip, limit, pageSize int) map[string]string {
	if limit <= 0 {
		limit = pageSize
	}
	return map[string]string{
		"skip":  strconv.Itoa(skip),
		"limit": strconv.Itoa(limit),
	}
}
