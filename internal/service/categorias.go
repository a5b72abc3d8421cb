package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// Categorias is the category reference-data facade.
type Categorias struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Categorias) List(ctx context.Context, skip, limit int) ([]models.Categoria, error) {
	var out []models.Categoria
	if err := s.gateway.Get(ctx, "/categorias", pageQuery(skip, limit, s.pageSize), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Categorias) Get(ctx context.Context, id string) (*models.Categoria, error) {
	var out models.Categoria
	if err := s.gateway.Get(ctx, "/categorias/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Categorias) Create(ctx context.Context, in models.CategoriaCreate) (*models.Categoria, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Categoria
	if err := s.gateway.Post(ctx, "/categorias", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Categorias) Update(ctx context.Context, id string, in models.CategoriaUpdate) (*models.Categoria, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Categoria
	if err := s.gateway.Put(ctx, "/categorias/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Categorias) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/categorias/"+id)
}
