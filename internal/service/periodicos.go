package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// Periodicos is the newspaper material facade.
type Periodicos struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Periodicos) List(ctx context.Context, skip, limit int) ([]models.Periodico, error) {
	var out []models.Periodico
	if err := s.gateway.Get(ctx, "/periodicos", pageQuery(skip, limit, s.pageSize), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Periodicos) Get(ctx context.Context, id string) (*models.Periodico, error) {
	var out models.Periodico
	if err := s.gateway.Get(ctx, "/periodicos/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Items lists the physical copies that belong to the newspaper.
func (s *Periodicos) Items(ctx context.Context, id string) ([]models.Item, error) {
	var out []models.Item
	if err := s.gateway.Get(ctx, "/periodicos/"+id+"/items", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Periodicos) Create(ctx context.Context, in models.PeriodicoCreate) (*models.Periodico, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Periodico
	if err := s.gateway.Post(ctx, "/periodicos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Periodicos) Update(ctx context.Context, id string, in models.PeriodicoUpdate) (*models.Periodico, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Periodico
	if err := s.gateway.Put(ctx, "/periodicos/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Periodicos) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/periodicos/"+id)
}
