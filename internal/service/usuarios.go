package service

import (
	"context"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// Usuarios is the user-account facade. Listing hides deactivated accounts
// unless asked for them.
type Usuarios struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Usuarios) List(ctx context.Context, skip, limit int, includeInactive bool) ([]models.Usuario, error) {
	query := pageQuery(skip, limit, s.pageSize)
	if includeInactive {
		query["include_inactive"] = "true"
	}

	var out []models.Usuario
	if err := s.gateway.Get(ctx, "/usuarios", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Usuarios) Get(ctx context.Context, id string) (*models.Usuario, error) {
	var out models.Usuario
	if err := s.gateway.Get(ctx, "/usuarios/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Usuarios) Create(ctx context.Context, in models.UsuarioCreate) (*models.Usuario, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Usuario
	if err := s.gateway.Post(ctx, "/usuarios", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Usuarios) Update(ctx context.Context, id string, in models.UsuarioUpdate) (*models.Usuario, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Usuario
	if err := s.gateway.Put(ctx, "/usuarios/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Usuarios) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/usuarios/"+id)
}
