package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_EmptyFieldsRejectedInline(t *testing.T) {
	m := NewLoginModel(context.Background(), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd, "no login command without credentials")
	assert.Contains(t, m.View(), "Username and password are required")
}

func TestLogin_FailureRenderedInline(t *testing.T) {
	m := NewLoginModel(context.Background(), nil)
	m.submitting = true

	updated, _ := m.Update(LoginResult{Err: errors.New("Invalid credentials. Check your username and password")})

	login := updated.(*LoginModel)
	assert.False(t, login.submitting)
	assert.Contains(t, login.View(), "Invalid credentials")
}

func TestLogin_TabMovesFocus(t *testing.T) {
	m := NewLoginModel(context.Background(), nil)
	require.Equal(t, 0, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
	assert.True(t, m.inputs[1].Focused())
	assert.False(t, m.inputs[0].Focused())

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, m.focus)
}

func TestLogin_SubmitWhileSubmittingIgnored(t *testing.T) {
	m := NewLoginModel(context.Background(), nil)
	m.inputs[0].SetValue("ana")
	m.inputs[1].SetValue("secreto")
	m.submitting = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}
