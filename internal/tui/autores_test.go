package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/models"
)

func TestAutores_LoadFailureRaisesToast(t *testing.T) {
	center := notify.NewCenter()
	m := NewAutoresModel(context.Background(), nil, center)

	_, _ = m.Update(autoresLoadedMsg{err: errors.New("boom")})

	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Failed to load authors", active[0].Message)
	assert.Equal(t, models.SeverityError, active[0].Severity)
}

func TestAutores_LoadSuccessRaisesNoToast(t *testing.T) {
	center := notify.NewCenter()
	m := NewAutoresModel(context.Background(), nil, center)

	_, _ = m.Update(autoresLoadedMsg{items: []models.Autor{{ID: "a1", Nombre: "Julio"}}})

	assert.Empty(t, center.Active())
	assert.Len(t, m.items, 1)
}
