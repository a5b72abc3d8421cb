package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// Editoriales is the publisher reference-data facade.
type Editoriales struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Editoriales) List(ctx context.Context, skip, limit int) ([]models.Editorial, error) {
	var out []models.Editorial
	if err := s.gateway.Get(ctx, "/editoriales", pageQuery(skip, limit, s.pageSize), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Editoriales) Get(ctx context.Context, id string) (*models.Editorial, error) {
	var out models.Editorial
	if err := s.gateway.Get(ctx, "/editoriales/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Editoriales) Create(ctx context.Context, in models.EditorialCreate) (*models.Editorial, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Editorial
	if err := s.gateway.Post(ctx, "/editoriales", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Editoriales) Update(ctx context.Context, id string, in models.EditorialUpdate) (*models.Editorial, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Editorial
	if err := s.gateway.Put(ctx, "/editoriales/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Editoriales) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/editoriales/"+id)
}
