package service

import (
	"context"
	"errors"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

// ErrNoActor is returned by calls that require a resolvable acting user and
// refuse the zero-UUID fallback, such as returning a loan.
var ErrNoActor = errors.New("no valid acting user in session")

// PrestamoFilter narrows a loan listing. Zero values mean no filtering.
type PrestamoFilter struct {
	Estado    string
	IDUsuario string
}

// Prestamos is the loan facade.
type Prestamos struct {
	gateway  adapter.Gateway
	store    *session.Store
	pageSize int
}

func (s *Prestamos) List(ctx context.Context, skip, limit int, filter PrestamoFilter) ([]models.Prestamo, error) {
	query := pageQuery(skip, limit, s.pageSize)
	query["estado"] = filter.Estado
	query["id_usuario"] = filter.IDUsuario

	var out []models.Prestamo
	if err := s.gateway.Get(ctx, "/prestamos", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Prestamos) Get(ctx context.Context, id string) (*models.Prestamo, error) {
	var out models.Prestamo
	if err := s.gateway.Get(ctx, "/prestamos/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Prestamos) Create(ctx context.Context, in models.PrestamoCreate) (*models.Prestamo, error) {
	in.IDUsuarioCreacion = s.store.ActorIDForCreation()

	var out models.Prestamo
	if err := s.gateway.Post(ctx, "/prestamos", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Prestamos) Update(ctx context.Context, id string, in models.PrestamoUpdate) (*models.Prestamo, error) {
	in.IDUsuarioEdicion = s.store.ActorIDForEdition()

	var out models.Prestamo
	if err := s.gateway.Put(ctx, "/prestamos/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Devolver marks the loan as returned. Unlike creates, this call refuses to
// attribute the action to the zero-UUID placeholder: a real acting user is
// required, otherwise [ErrNoActor] is returned without touching the backend.
func (s *Prestamos) Devolver(ctx context.Context, id string) (*models.Prestamo, error) {
	actor := s.store.ActorIDForEdition()
	if actor == nil {
		return nil, ErrNoActor
	}

	var out models.Prestamo
	body := models.PrestamoDevolver{IDUsuarioEdicion: *actor}
	if err := s.gateway.Post(ctx, "/prestamos/"+id+"/devolver", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Prestamos) Delete(ctx context.Context, id string) error {
	return s.gateway.Delete(ctx, "/prestamos/"+id)
}
