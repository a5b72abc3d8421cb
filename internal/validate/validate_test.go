package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	assert.True(t, Required("name", "Ana").OK)
	assert.False(t, Required("name", "").OK)
	assert.False(t, Required("name", "   ").OK)
	assert.Equal(t, "is required", Required("name", "").Reason)
}

func TestMinLength(t *testing.T) {
	assert.True(t, MinLength("password", "secreto", 6).OK)
	assert.False(t, MinLength("password", "corta", 6).OK)
	// Empty passes so optional fields can skip the check.
	assert.True(t, MinLength("password", "", 6).OK)
	// Rune count, not byte count.
	assert.True(t, MinLength("password", "señora", 6).OK)
}

func TestMaxLength(t *testing.T) {
	assert.True(t, MaxLength("title", "Rayuela", 20).OK)
	assert.False(t, MaxLength("title", "a very long book title indeed", 20).OK)
}

func TestPositive(t *testing.T) {
	assert.True(t, Positive("pages", 120).OK)
	assert.False(t, Positive("pages", 0).OK)
	assert.False(t, Positive("pages", -3).OK)
}

func TestEmail(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"ana@example.com", true},
		{"ana.garcia@sub.example.com", true},
		{"", true},
		{"ana", false},
		{"ana@example", false},
		{"@example.com", false},
		{"ana @example.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ok, Email("email", tt.value).OK, "value %q", tt.value)
	}
}

func TestUUID(t *testing.T) {
	assert.True(t, UUID("id", "7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f").OK)
	assert.True(t, UUID("id", "").OK)
	assert.False(t, UUID("id", "not-a-uuid").OK)
}

func TestDate(t *testing.T) {
	assert.True(t, Date("fecha", "2026-08-30").OK)
	assert.True(t, Date("fecha", "").OK)
	assert.False(t, Date("fecha", "30/08/2026").OK)
	assert.False(t, Date("fecha", "2026-13-01").OK)
	assert.False(t, Date("fecha", "tomorrow").OK)
}

func TestAll(t *testing.T) {
	failed := All(
		Required("name", "Ana"),
		Required("email", ""),
		UUID("id", "bad"),
	)

	assert.Len(t, failed, 2)
	assert.Equal(t, "email", failed[0].Field)
	assert.Equal(t, "id", failed[1].Field)

	assert.Empty(t, All(Required("name", "Ana")))
}

func TestFirstError(t *testing.T) {
	msg := FirstError(
		Required("name", "Ana"),
		Email("email", "bad"),
		Required("username", ""),
	)
	assert.Equal(t, "email is not a valid email address", msg)

	assert.Empty(t, FirstError(Required("name", "Ana")))
}
