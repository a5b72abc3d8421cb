package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// Autores is the author reference-data facade.
type Autores struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Autores) List(ctx context.Context, skip, limit int) ([]models.Autor, error) {
	var out []models.Autor
	if err := s.gateway.Get(ctx, "/autores", pageQuery(skip, limit, s.pageSize), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Autores) Get(ctx context.Context, id string) (*models.Autor, error) {
	var out models.Autor
	if err := s.gateway.Get(ctx, "/autores/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Autores) Create(ctx context.Context, in models.AutorCreate) (*models.Autor, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Autor
	if err := s.gateway.Post(ctx, "/autores", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Autores) Update(ctx context.Context, id string, in models.AutorUpdate) (*models.Autor, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Autor
	if err := s.gateway.Put(ctx, "/autores/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Autores) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/autores/"+id)
}
