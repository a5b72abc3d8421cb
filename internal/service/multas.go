package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// MultaFilter narrows a fine listing. Zero values mean no filtering.
type MultaFilter struct {
	Estado    string
	IDUsuario string
}

// Multas is the fine facade.
type Multas struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Multas) List(ctx context.Context, skip, limit int, filter MultaFilter) ([]models.Multa, error) {
	query := pageQuery(skip, limit, s.pageSize)
	query["estado"] = filter.Estado
	query["id_usuario"] = filter.IDUsuario

	var out []models.Multa
	if err := s.gateway.Get(ctx, "/multas", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Multas) Get(ctx context.Context, id string) (*models.Multa, error) {
	var out models.Multa
	if err := s.gateway.Get(ctx, "/multas/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Multas) Create(ctx context.Context, in models.MultaCreate) (*models.Multa, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Multa
	if err := s.gateway.Post(ctx, "/multas", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Multas) Update(ctx context.Context, id string, in models.MultaUpdate) (*models.Multa, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Multa
	if err := s.gateway.Put(ctx, "/multas/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pagar records the payment of a fine. Requires a resolvable acting user for
// the same reason as returning a loan.
func (s *Multas) Pagar(ctx context.Context, id string) (*models.Multa, error) {
	actor := s.store.ActorIDForEdition()
	if actor == nil {
		return nil, ErrNoActor
	}

	var out models.Multa
	body := models.MultaPagar{IDUsuarioEdicion: *actor}
	if err := s.gateway.Post(ctx, "/multas/"+id+"/pagar", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Multas) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/multas/"+id)
}
