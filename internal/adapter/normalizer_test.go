package adapter

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Body shapes ─────────────────────────────────────────────────────────────

func TestNormalizeError_BodyShapes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "plain json string",
			status: http.StatusBadRequest,
			body:   `"el usuario ya existe"`,
			want:   "el usuario ya existe",
		},
		{
			name:   "non-json body taken verbatim",
			status: http.StatusBadRequest,
			body:   `something broke`,
			want:   "something broke",
		},
		{
			name:   "detail string",
			status: http.StatusNotFound,
			body:   `{"detail": "libro no encontrado"}`,
			want:   "libro no encontrado",
		},
		{
			name:   "detail object with message",
			status: http.StatusBadRequest,
			body:   `{"detail": {"error_type": "DuplicateError", "message": "el ISBN ya existe"}}`,
			want:   "el ISBN ya existe",
		},
		{
			name:   "detail object with only error_type",
			status: http.StatusBadRequest,
			body:   `{"detail": {"error_type": "DuplicateError"}}`,
			want:   "DuplicateError",
		},
		{
			name:   "detail object unrecognized is surfaced serialized",
			status: http.StatusBadRequest,
			body:   `{"detail": {"code": 17}}`,
			want:   `{"code": 17}`,
		},
		{
			name:   "message field",
			status: http.StatusInternalServerError,
			body:   `{"message": "fallo interno"}`,
			want:   "fallo interno",
		},
		{
			name:   "error field",
			status: http.StatusInternalServerError,
			body:   `{"error": "fallo interno"}`,
			want:   "fallo interno",
		},
		{
			name:   "validation array with loc",
			status: http.StatusUnprocessableEntity,
			body:   `[{"loc": ["body", "email"], "msg": "value is not a valid email address"}]`,
			want:   "body.email: value is not a valid email address",
		},
		{
			name:   "validation array multiple entries joined",
			status: http.StatusUnprocessableEntity,
			body:   `[{"loc": ["body", "titulo"], "msg": "field required"}, {"loc": ["body", "paginas"], "msg": "value is not a valid integer"}]`,
			want:   "body.titulo: field required, body.paginas: value is not a valid integer",
		},
		{
			name:   "validation entry without loc falls back to field",
			status: http.StatusUnprocessableEntity,
			body:   `[{"field": "monto", "message": "must be positive"}]`,
			want:   "monto: must be positive",
		},
		{
			name:   "validation entry with nothing usable",
			status: http.StatusUnprocessableEntity,
			body:   `[{}]`,
			want:   "field: validation error",
		},
		{
			name:   "validation array of bare strings",
			status: http.StatusUnprocessableEntity,
			body:   `["monto must be positive"]`,
			want:   "monto must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := normalizeError(tt.status, []byte(tt.body), nil, false)

			require.NotNil(t, apiErr)
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

// ── Status fallbacks ────────────────────────────────────────────────────────

func TestNormalizeError_StatusFallbacks(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, "Bad request. Check the submitted data"},
		{http.StatusForbidden, "Access denied"},
		{http.StatusNotFound, "Resource not found"},
		{http.StatusUnprocessableEntity, "Invalid input data"},
		{http.StatusInternalServerError, "Internal server error"},
		{http.StatusBadGateway, "Error 502: Bad Gateway"},
	}

	for _, tt := range tests {
		apiErr := normalizeError(tt.status, nil, nil, false)
		assert.Equal(t, tt.want, apiErr.Message, "status %d", tt.status)
	}
}

func TestNormalizeError_UnknownStatusWithoutText(t *testing.T) {
	apiErr := normalizeError(599, nil, nil, false)
	assert.Equal(t, "Error 599: unknown error", apiErr.Message)
}

func TestNormalizeError_Unauthorized(t *testing.T) {
	t.Run("non-login call ignores body text", func(t *testing.T) {
		apiErr := normalizeError(http.StatusUnauthorized, []byte(`{"detail": "token expirado"}`), nil, false)

		assert.Equal(t, "Not authorized. Please sign in again", apiErr.Message)
		assert.True(t, apiErr.Unauthenticated())
	})

	t.Run("login call keeps body text", func(t *testing.T) {
		apiErr := normalizeError(http.StatusUnauthorized, []byte(`{"detail": "usuario inactivo"}`), nil, true)

		assert.Equal(t, "usuario inactivo", apiErr.Message)
		assert.False(t, apiErr.Unauthenticated())
	})

	t.Run("login call without body gets credentials message", func(t *testing.T) {
		apiErr := normalizeError(http.StatusUnauthorized, nil, nil, true)

		assert.Equal(t, "Invalid credentials. Check your username and password", apiErr.Message)
	})
}

func TestNormalizeError_Transport(t *testing.T) {
	apiErr := normalizeError(0, nil, errors.New("connection refused"), false)

	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "Error: connection refused", apiErr.Message)
	assert.ErrorIs(t, apiErr, ErrTransport)
	assert.False(t, apiErr.Unauthenticated())
}

// ── Sentinels ───────────────────────────────────────────────────────────────

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusUnprocessableEntity, ErrUnprocessable},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		apiErr := normalizeError(tt.status, nil, nil, false)
		assert.ErrorIs(t, apiErr, tt.want, "status %d", tt.status)
	}
}
