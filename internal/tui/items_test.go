package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico588/biblioteca-tui/internal/notify"
	"github.com/federico588/biblioteca-tui/internal/service"
	"github.com/federico588/biblioteca-tui/models"
)

func TestItems_StaleLoadDoesNotOverwriteFilteredList(t *testing.T) {
	m := NewItemsModel(context.Background(), &service.Services{}, notify.NewCenter())

	// Entering the page queues an unfiltered load; the filter payload that
	// follows queues a second, filtered one.
	require.NotNil(t, m.Init())
	staleGen := m.gen

	_, cmd := m.Update(itemsFilterMsg{filter: service.ItemFilter{IDLibro: "l1"}, label: "Rayuela"})
	require.NotNil(t, cmd)
	freshGen := m.gen
	require.NotEqual(t, staleGen, freshGen)

	// The filtered reply lands first; the unfiltered one settles late and
	// must be dropped.
	_, _ = m.Update(itemsLoadedMsg{gen: freshGen, items: []models.Item{{ID: "i1"}}})
	_, _ = m.Update(itemsLoadedMsg{gen: staleGen, items: []models.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}})

	assert.Len(t, m.items, 1)
	assert.Equal(t, "Rayuela", m.filterLabel)
}

func TestItems_StaleErrorDoesNotClearLoading(t *testing.T) {
	center := notify.NewCenter()
	m := NewItemsModel(context.Background(), &service.Services{}, center)

	require.NotNil(t, m.Init())
	staleGen := m.gen
	_, _ = m.Update(itemsFilterMsg{filter: service.ItemFilter{IDLibro: "l1"}})

	_, _ = m.Update(itemsLoadedMsg{gen: staleGen, err: errors.New("boom")})

	assert.True(t, m.loading)
	assert.Empty(t, center.Active())
}

func TestItems_LoadFailureRaisesToast(t *testing.T) {
	center := notify.NewCenter()
	m := NewItemsModel(context.Background(), &service.Services{}, center)
	require.NotNil(t, m.Init())

	_, _ = m.Update(itemsLoadedMsg{gen: m.gen, err: errors.New("boom")})

	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Failed to load items", active[0].Message)
	assert.Equal(t, models.SeverityError, active[0].Severity)
}
