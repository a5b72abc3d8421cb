package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// Revistas is the magazine material facade.
type Revistas struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Revistas) List(ctx context.Context, skip, limit int) ([]models.Revista, error) {
	var out []models.Revista
	if err := s.gateway.Get(ctx, "/revistas", pageQuery(skip, limit, s.pageSize), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Revistas) Get(ctx context.Context, id string) (*models.Revista, error) {
	var out models.Revista
	if err := s.gateway.Get(ctx, "/revistas/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Items lists the physical copies that belong to the magazine.
func (s *Revistas) Items(ctx context.Context, id string) ([]models.Item, error) {
	var out []models.Item
	if err := s.gateway.Get(ctx, "/revistas/"+id+"/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Revistas) Create(ctx context.Context, in models.RevistaCreate) (*models.Revista, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Revista
	if err := s.gateway.Post(ctx, "/revistas", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Revistas) Update(ctx context.Context, id string, in models.RevistaUpdate) (*models.Revista, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Revista
	if err := s.gateway.Put(ctx, "/revistas/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Revistas) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/revistas/"+id)
}
