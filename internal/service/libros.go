package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// Libros is the book material facade.
type Libros struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Libros) List(ctx context.Context, skip, limit int) ([]models.Libro, error) {
	var out []models.Libro
	if err := s.gateway.Get(ctx, "/libros", pageQuery(skip, limit, s.pageSize), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Libros) Get(ctx context.Context, id string) (*models.Libro, error) {
	var out models.Libro
	if err := s.gateway.Get(ctx, "/libros/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Items lists the physical copies that belong to the book.
func (s *Libros) Items(ctx context.Context, id string) ([]models.Item, error) {
	var out []models.Item
	if err := s.gateway.Get(ctx, "/libros/"+id+"/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Libros) Create(ctx context.Context, in models.LibroCreate) (*models.Libro, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Libro
	if err := s.gateway.Post(ctx, "/libros", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Libros) Update(ctx context.Context, id string, in models.LibroUpdate) (*models.Libro, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Libro
	if err := s.gateway.Put(ctx, "/libros/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Libros) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/libros/"+id)
}
