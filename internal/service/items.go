package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// ItemFilter narrows an item listing. Zero values mean no filtering. At most
// one of the material references should be set; the backend ignores the rest.
type ItemFilter struct {
	SoloDisponibles bool
	IDLibro         string
	IDRevista       string
	IDPeriodico     string
}

// Items is the physical-copy facade.
type Items struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Items) List(ctx context.Context, skip, limit int, filter ItemFilter) ([]models.Item, error) {
	query := pageQuery(skip, limit, s.pageSize)
	if filter.SoloDisponibles {
		query["solo_disponibles"] = "true"
	}
	// Empty values are dropped by the gateway, so unset references cost
	// nothing on the wire.
	query["id_libro"] = filter.IDLibro
	query["id_revista"] = filter.IDRevista
	query["id_periodico"] = filter.IDPeriodico

	var out []models.Item
	if err := s.gateway.Get(ctx, "/items", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Items) Get(ctx context.Context, id string) (*models.Item, error) {
	var out models.Item
	if err := s.gateway.Get(ctx, "/items/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PorMaterial lists the copies of one material identified by its type tag
// and id.
func (s *Items) PorMaterial(ctx context.Context, tipo models.MaterialType, materialID string) ([]models.Item, error) {
	var out []models.Item
	path := "/items/por-material/" + string(tipo) + "/" + materialID
	if err := s.gateway.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Items) Create(ctx context.Context, in models.ItemCreate) (*models.Item, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Item
	if err := s.gateway.Post(ctx, "/items", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Items) Update(ctx context.Context, id string, in models.ItemUpdate) (*models.Item, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Item
	if err := s.gateway.Put(ctx, "/items/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Items) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/items/"+id)
}
