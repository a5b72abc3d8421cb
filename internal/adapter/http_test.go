package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico588/biblioteca-tui/internal/config"
	"github.com/federico588/biblioteca-tui/internal/logger"
)

func newTestGateway(t *testing.T, serverURL string) *httpGateway {
	t.Helper()
	log := logger.NewClientLogger("test")
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	gw, err := NewHTTPGateway(adapterCfg, log)
	require.NoError(t, err)
	return gw.(*httpGateway)
}

// ── Construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "already a url", raw: "http://localhost:8000", want: "http://localhost:8000"},
		{name: "scheme added when missing", raw: "localhost:8000", want: "http://localhost:8000"},
		{name: "trailing slash trimmed", raw: "http://localhost:8000/", want: "http://localhost:8000"},
		{name: "https kept", raw: "https://api.biblioteca.example", want: "https://api.biblioteca.example"},
		{name: "empty rejected", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPGateway_EmptyAddress(t *testing.T) {
	_, err := NewHTTPGateway(config.ClientAdapter{}, logger.NewClientLogger("test"))
	assert.Error(t, err)
}

// ── Requests ────────────────────────────────────────────────────────────────

func TestGet_QueryAndAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/libros", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		query := r.URL.Query()
		assert.Equal(t, "0", query.Get("skip"))
		assert.Equal(t, "1000", query.Get("limit"))
		assert.False(t, query.Has("id_autor"), "empty query values must be omitted")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"titulo": "Rayuela"}]`))
	}))
	defer srv.Close()

	gw := newTestGateway(t, srv.URL)
	gw.SetToken("token-123")

	var out []struct {
		Titulo string `json:"titulo"`
	}
	err := gw.Get(context.Background(), "/libros", map[string]string{
		"skip":     "0",
		"limit":    "1000",
		"id_autor": "",
	}, &out)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Rayuela", out[0].Titulo)
}

func TestGet_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gw := newTestGateway(t, srv.URL)
	err := gw.Get(context.Background(), "/health", nil, nil)
	require.NoError(t, err)
}

func TestPost_BodyEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Cortázar", got["nombre"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"nombre": "Cortázar"}`))
	}))
	defer srv.Close()

	gw := newTestGateway(t, srv.URL)

	var out map[string]any
	err := gw.Post(context.Background(), "/autores", map[string]string{"nombre": "Cortázar"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Cortázar", out["nombre"])
}

func TestDelete_NoBodyExpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	gw := newTestGateway(t, srv.URL)
	err := gw.Delete(context.Background(), "/autores/abc")
	require.NoError(t, err)
}

// ── Failure side effects ────────────────────────────────────────────────────

func TestCheck_UnauthorizedClearsTokenAndFiresHooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "token expirado"}`))
	}))
	defer srv.Close()

	gw := newTestGateway(t, srv.URL)
	gw.SetToken("stale-token")

	var gotMessage string
	var loggedOut bool
	gw.SetHooks(
		func(message string) { gotMessage = message },
		func() { loggedOut = true },
	)

	err := gw.Get(context.Background(), "/prestamos", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, gw.Token())
	assert.True(t, loggedOut)
	assert.Equal(t, "Not authorized. Please sign in again", gotMessage)
}

func TestCheck_LoginFailureSkipsHooks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "credenciales inválidas"}`))
	}))
	defer srv.Close()

	gw := newTestGateway(t, srv.URL)
	gw.SetToken("existing-token")

	var hookFired bool
	gw.SetHooks(
		func(string) { hookFired = true },
		func() { hookFired = true },
	)

	err := gw.Post(context.Background(), "/auth/login", map[string]string{"nombre_usuario": "ana"}, nil)

	require.Error(t, err)
	assert.False(t, hookFired, "login failures must not raise toasts or force logout")
	assert.Equal(t, "existing-token", gw.Token())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Login)
	assert.Equal(t, "credenciales inválidas", apiErr.Message)
}

func TestCheck_ErrorHookOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail": "fallo interno"}`))
	}))
	defer srv.Close()

	gw := newTestGateway(t, srv.URL)
	gw.SetToken("token-123")

	var gotMessage string
	var loggedOut bool
	gw.SetHooks(
		func(message string) { gotMessage = message },
		func() { loggedOut = true },
	)

	err := gw.Get(context.Background(), "/multas", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Equal(t, "fallo interno", gotMessage)
	assert.False(t, loggedOut)
	assert.Equal(t, "token-123", gw.Token(), "non-401 failures keep the session")
}

func TestCheck_TransportError(t *testing.T) {
	gw := newTestGateway(t, "http://127.0.0.1:1")

	var gotMessage string
	gw.SetHooks(func(message string) { gotMessage = message }, nil)

	err := gw.Get(context.Background(), "/libros", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotEmpty(t, gotMessage)
}
