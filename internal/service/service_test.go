package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico588/biblioteca-tui/internal/adapter"
	"github.com/federico588/biblioteca-tui/internal/config"
	"github.com/federico588/biblioteca-tui/internal/logger"
	"github.com/federico588/biblioteca-tui/internal/session"
	"github.com/federico588/biblioteca-tui/models"
)

const actorID = "7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f"

// newTestServices wires real gateway, store and facades against a test
// server. The returned store is anonymous; tests log in via signIn.
func newTestServices(t *testing.T, handler http.Handler) (*Services, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	gw, err := adapter.NewHTTPGateway(config.ClientAdapter{
		HTTPAddress:    srv.URL,
		RequestTimeout: 5 * time.Second,
	}, logger.NewClientLogger("test"))
	require.NoError(t, err)

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return New(gw, store, 1000), store
}

func signIn(t *testing.T, store *session.Store, userID string) {
	t.Helper()
	require.NoError(t, store.SetSession("test-token", models.Usuario{
		ID:            userID,
		NombreUsuario: "ana",
		EsAdmin:       true,
	}))
}

func decodeJSON(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	return got
}

func TestPageQuery(t *testing.T) {
	assert.Equal(t, map[string]string{"skip": "0", "limit": "1000"}, pageQuery(0, 0, 1000))
	assert.Equal(t, map[string]string{"skip": "40", "limit": "20"}, pageQuery(40, 20, 1000))
	assert.Equal(t, map[string]string{"skip": "0", "limit": "1000"}, pageQuery(0, -5, 1000))
}

// ── Auth ────────────────────────────────────────────────────────────────────

func TestAuth_Login(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		gotBody = decodeJSON(t, r)

		_ = json.NewEncoder(w).Encode(models.LoginResponse{
			AccessToken: "fresh-token",
			TokenType:   "bearer",
			User:        models.Usuario{ID: actorID, NombreUsuario: "ana", EsAdmin: true},
		})
	})

	svc, store := newTestServices(t, handler)
	resp, err := svc.Auth.Login(context.Background(), "ana", "secreto")

	require.NoError(t, err)
	assert.Equal(t, "ana", gotBody["nombre_usuario"])
	assert.Equal(t, "secreto", gotBody["contraseña"])

	assert.Equal(t, "fresh-token", resp.AccessToken)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, models.RoleAdmin, store.Role())
}

func TestAuth_LoginFailureLeavesStoreAnonymous(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "credenciales inválidas"}`))
	})

	svc, store := newTestServices(t, handler)
	_, err := svc.Auth.Login(context.Background(), "ana", "wrong")

	require.Error(t, err)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.False(t, store.IsAuthenticated())
}

func TestAuth_Logout(t *testing.T) {
	svc, store := newTestServices(t, http.NotFoundHandler())
	signIn(t, store, actorID)

	svc.Auth.Logout()

	assert.False(t, store.IsAuthenticated())
}

// ── Usuarios ────────────────────────────────────────────────────────────────

func TestUsuarios_List(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/usuarios", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[{"id": "u1", "nombre_usuario": "ana"}]`))
	})

	svc, _ := newTestServices(t, handler)

	t.Run("default listing hides inactive", func(t *testing.T) {
		out, err := svc.Usuarios.List(context.Background(), 0, 0, false)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "ana", out[0].NombreUsuario)

		assert.Equal(t, []string{"0"}, gotQuery["skip"])
		assert.Equal(t, []string{"1000"}, gotQuery["limit"])
		assert.NotContains(t, gotQuery, "include_inactive")
	})

	t.Run("include_inactive sent when asked", func(t *testing.T) {
		_, err := svc.Usuarios.List(context.Background(), 20, 10, true)
		require.NoError(t, err)

		assert.Equal(t, []string{"20"}, gotQuery["skip"])
		assert.Equal(t, []string{"10"}, gotQuery["limit"])
		assert.Equal(t, []string{"true"}, gotQuery["include_inactive"])
	})
}

func TestUsuarios_CreateStampsActor(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/usuarios", r.URL.Path)
		gotBody = decodeJSON(t, r)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "u1"}`))
	})

	svc, store := newTestServices(t, handler)

	t.Run("anonymous creates carry the zero uuid", func(t *testing.T) {
		_, err := svc.Usuarios.Create(context.Background(), models.UsuarioCreate{Nombre: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, session.ZeroUUID, gotBody["id_usuario_creacion"])
	})

	t.Run("signed-in creates carry the actor", func(t *testing.T) {
		signIn(t, store, actorID)
		_, err := svc.Usuarios.Create(context.Background(), models.UsuarioCreate{Nombre: "Ana"})
		require.NoError(t, err)
		assert.Equal(t, actorID, gotBody["id_usuario_creacion"])
	})
}

func TestUsuarios_UpdateStampsActor(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/usuarios/u1", r.URL.Path)
		gotBody = decodeJSON(t, r)
		_, _ = w.Write([]byte(`{"id": "u1"}`))
	})

	svc, store := newTestServices(t, handler)
	nombre := "Ana García"

	t.Run("anonymous updates omit the editor", func(t *testing.T) {
		_, err := svc.Usuarios.Update(context.Background(), "u1", models.UsuarioUpdate{Nombre: &nombre})
		require.NoError(t, err)
		assert.NotContains(t, gotBody, "id_usuario_edicion")
	})

	t.Run("signed-in updates carry the editor", func(t *testing.T) {
		signIn(t, store, actorID)
		_, err := svc.Usuarios.Update(context.Background(), "u1", models.UsuarioUpdate{Nombre: &nombre})
		require.NoError(t, err)
		assert.Equal(t, actorID, gotBody["id_usuario_edicion"])
	})
}

func TestUsuarios_Delete(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/usuarios/u1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	svc, _ := newTestServices(t, handler)
	require.NoError(t, svc.Usuarios.Delete(context.Background(), "u1"))
}

// ── Items ───────────────────────────────────────────────────────────────────

func TestItems_ListFilters(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	})

	svc, _ := newTestServices(t, handler)

	t.Run("no filter sends only pagination", func(t *testing.T) {
		_, err := svc.Items.List(context.Background(), 0, 0, ItemFilter{})
		require.NoError(t, err)

		assert.NotContains(t, gotQuery, "solo_disponibles")
		assert.NotContains(t, gotQuery, "id_libro")
		assert.NotContains(t, gotQuery, "id_revista")
		assert.NotContains(t, gotQuery, "id_periodico")
	})

	t.Run("availability and material reference", func(t *testing.T) {
		_, err := svc.Items.List(context.Background(), 0, 0, ItemFilter{
			SoloDisponibles: true,
			IDLibro:         "b1",
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"true"}, gotQuery["solo_disponibles"])
		assert.Equal(t, []string{"b1"}, gotQuery["id_libro"])
		assert.NotContains(t, gotQuery, "id_revista")
	})
}

func TestItems_PorMaterial(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items/por-material/libro/b1", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": "i1", "codigo_barras": "CB-001"}]`))
	})

	svc, _ := newTestServices(t, handler)
	out, err := svc.Items.PorMaterial(context.Background(), models.MaterialLibro, "b1")

	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].CodigoBarras)
	assert.Equal(t, "CB-001", *out[0].CodigoBarras)
}

// ── Materials ───────────────────────────────────────────────────────────────

func TestLibros_Items(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/libros/b1/items", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": "i1"}, {"id": "i2"}]`))
	})

	svc, _ := newTestServices(t, handler)
	out, err := svc.Libros.Items(context.Background(), "b1")

	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestLibros_CreateStampsActor(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/libros", r.URL.Path)
		gotBody = decodeJSON(t, r)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "b1"}`))
	})

	svc, store := newTestServices(t, handler)
	signIn(t, store, actorID)

	_, err := svc.Libros.Create(context.Background(), models.LibroCreate{Titulo: "Rayuela"})

	require.NoError(t, err)
	assert.Equal(t, "Rayuela", gotBody["titulo"])
	assert.Equal(t, actorID, gotBody["id_usuario_creacion"])
}

// ── Prestamos ───────────────────────────────────────────────────────────────

func TestPrestamos_ListFilters(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prestamos", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	})

	svc, _ := newTestServices(t, handler)

	_, err := svc.Prestamos.List(context.Background(), 0, 0, PrestamoFilter{
		Estado:    models.PrestamoActivo,
		IDUsuario: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"activo"}, gotQuery["estado"])
	assert.Equal(t, []string{"u1"}, gotQuery["id_usuario"])

	_, err = svc.Prestamos.List(context.Background(), 0, 0, PrestamoFilter{})
	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "estado")
	assert.NotContains(t, gotQuery, "id_usuario")
}

func TestPrestamos_Devolver(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/prestamos/p1/devolver", r.URL.Path)
		gotBody = decodeJSON(t, r)
		_, _ = w.Write([]byte(`{"id": "p1", "estado": "devuelto"}`))
	})

	svc, store := newTestServices(t, handler)
	signIn(t, store, actorID)

	out, err := svc.Prestamos.Devolver(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, models.PrestamoDevuelto, out.Estado)
	assert.Equal(t, actorID, gotBody["id_usuario_edicion"])
}

func TestPrestamos_DevolverRefusesWithoutActor(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the backend must not be called without a resolvable actor")
	})

	svc, _ := newTestServices(t, handler)
	_, err := svc.Prestamos.Devolver(context.Background(), "p1")

	assert.ErrorIs(t, err, ErrNoActor)
}

// ── Multas ──────────────────────────────────────────────────────────────────

func TestMultas_Pagar(t *testing.T) {
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/multas/m1/pagar", r.URL.Path)
		gotBody = decodeJSON(t, r)
		_, _ = w.Write([]byte(`{"id": "m1", "estado": "pagada"}`))
	})

	svc, store := newTestServices(t, handler)
	signIn(t, store, actorID)

	out, err := svc.Multas.Pagar(context.Background(), "m1")

	require.NoError(t, err)
	assert.Equal(t, models.MultaPagada, out.Estado)
	assert.Equal(t, actorID, gotBody["id_usuario_edicion"])
}

func TestMultas_PagarRefusesWithoutActor(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("the backend must not be called without a resolvable actor")
	})

	svc, _ := newTestServices(t, handler)
	_, err := svc.Multas.Pagar(context.Background(), "m1")

	assert.ErrorIs(t, err, ErrNoActor)
}

func TestMultas_ListFilters(t *testing.T) {
	var gotQuery map[string][]string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/multas", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`[]`))
	})

	svc, _ := newTestServices(t, handler)

	_, err := svc.Multas.List(context.Background(), 0, 0, MultaFilter{Estado: models.MultaPendiente})
	require.NoError(t, err)

	assert.Equal(t, []string{"pendiente"}, gotQuery["estado"])
	assert.NotContains(t, gotQuery, "id_usuario")
}
