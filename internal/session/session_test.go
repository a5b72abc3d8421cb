package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/federico588/biblioteca-tui/models"
)

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

// makeJWT builds an unsigned JWT with the given exp claim. The store never
// verifies signatures, so "none"-style tokens are enough for tests.
func makeJWT(t *testing.T, exp time.Time) string {
	t.Helper()

	encode := func(v any) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(raw)
	}

	header := encode(map[string]string{"alg": "HS256", "typ": "JWT"})
	claims := encode(map[string]any{"sub": "ana", "exp": exp.Unix()})
	signature := base64.RawURLEncoding.EncodeToString([]byte("signature"))
	return fmt.Sprintf("%s.%s.%s", header, claims, signature)
}

func testUser(id string, admin bool) models.Usuario {
	return models.Usuario{
		ID:            id,
		Nombre:        "Ana García",
		NombreUsuario: "ana",
		Email:         "ana@example.com",
		EsAdmin:       admin,
	}
}

// ── Persistence ─────────────────────────────────────────────────────────────

func TestStore_SetSessionRoundtrip(t *testing.T) {
	path := cachePath(t)
	token := makeJWT(t, time.Now().Add(time.Hour))
	user := testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", true)

	store := NewStore(path)
	require.NoError(t, store.SetSession(token, user))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, token, store.Token())
	assert.Equal(t, models.RoleAdmin, store.Role())

	// A fresh store hydrates from the cache file.
	restored := NewStore(path)
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, token, restored.Token())
	require.NotNil(t, restored.CurrentUser())
	assert.Equal(t, "ana", restored.CurrentUser().NombreUsuario)
	assert.Equal(t, models.RoleAdmin, restored.Role())
}

func TestStore_RoleDerivedFromUser(t *testing.T) {
	store := NewStore(cachePath(t))
	require.NoError(t, store.SetSession("opaque-token", testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", false)))

	assert.Equal(t, models.RoleConsumidor, store.Role())
	assert.True(t, store.HasRole(models.RoleConsumidor))
	assert.False(t, store.HasRole(models.RoleAdmin))
}

func TestStore_CorruptCacheStartsAnonymous(t *testing.T) {
	path := cachePath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	store := NewStore(path)

	assert.False(t, store.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt cache file must be removed")
}

func TestStore_EmptyTokenTreatedAsCorrupt(t *testing.T) {
	path := cachePath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"auth_token": ""}`), 0o600))

	store := NewStore(path)

	assert.False(t, store.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_ExpiredTokenStartsAnonymous(t *testing.T) {
	path := cachePath(t)
	store := NewStore(path)
	require.NoError(t, store.SetSession(makeJWT(t, time.Now().Add(-time.Hour)), testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", true)))

	restored := NewStore(path)

	assert.False(t, restored.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expired cache file must be removed")
}

func TestStore_OpaqueTokenSurvivesRestore(t *testing.T) {
	path := cachePath(t)
	store := NewStore(path)
	require.NoError(t, store.SetSession("not-a-jwt", testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", true)))

	// The backend decides whether an opaque token is still good.
	restored := NewStore(path)
	assert.True(t, restored.IsAuthenticated())
}

func TestStore_Logout(t *testing.T) {
	path := cachePath(t)
	store := NewStore(path)
	require.NoError(t, store.SetSession("opaque-token", testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", true)))

	store.Logout()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.CurrentUser())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Idempotent.
	store.Logout()
}

// ── Access control ──────────────────────────────────────────────────────────

func TestStore_CanAccess(t *testing.T) {
	path := cachePath(t)
	store := NewStore(path)

	t.Run("anonymous has no access", func(t *testing.T) {
		assert.False(t, store.CanAccess("dashboard"))
	})

	t.Run("admin reaches everything", func(t *testing.T) {
		require.NoError(t, store.SetSession("opaque-token", testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", true)))
		for _, route := range []string{"dashboard", "usuarios", "autores", "editoriales", "categorias", "libros", "revistas", "periodicos", "items", "prestamos", "multas"} {
			assert.True(t, store.CanAccess(route), "route %q", route)
		}
	})

	t.Run("consumidor limited to the allow-list", func(t *testing.T) {
		require.NoError(t, store.SetSession("opaque-token", testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", false)))
		for _, route := range []string{"dashboard", "prestamos", "multas", "items"} {
			assert.True(t, store.CanAccess(route), "route %q", route)
		}
		for _, route := range []string{"usuarios", "autores", "editoriales", "categorias", "libros", "revistas", "periodicos"} {
			assert.False(t, store.CanAccess(route), "route %q", route)
		}
	})
}

// ── Actor resolution ────────────────────────────────────────────────────────

func TestStore_ActorIDForCreation(t *testing.T) {
	store := NewStore(cachePath(t))

	t.Run("anonymous falls back to the zero uuid", func(t *testing.T) {
		assert.Equal(t, ZeroUUID, store.ActorIDForCreation())
	})

	t.Run("malformed user id falls back to the zero uuid", func(t *testing.T) {
		require.NoError(t, store.SetSession("opaque-token", testUser("not-a-uuid", true)))
		assert.Equal(t, ZeroUUID, store.ActorIDForCreation())
	})

	t.Run("valid user id is used", func(t *testing.T) {
		require.NoError(t, store.SetSession("opaque-token", testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", true)))
		assert.Equal(t, "7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", store.ActorIDForCreation())
	})
}

func TestStore_ActorIDForEdition(t *testing.T) {
	store := NewStore(cachePath(t))

	t.Run("anonymous yields nil", func(t *testing.T) {
		assert.Nil(t, store.ActorIDForEdition())
	})

	t.Run("malformed user id yields nil", func(t *testing.T) {
		require.NoError(t, store.SetSession("opaque-token", testUser("not-a-uuid", true)))
		assert.Nil(t, store.ActorIDForEdition())
	})

	t.Run("valid user id is returned", func(t *testing.T) {
		require.NoError(t, store.SetSession("opaque-token", testUser("7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", true)))
		actor := store.ActorIDForEdition()
		require.NotNil(t, actor)
		assert.Equal(t, "7f9c24e5-2f8a-4b1d-9c3e-5a6b7c8d9e0f", *actor)
	})
}

func TestTokenExpired(t *testing.T) {
	assert.True(t, tokenExpired(makeJWT(t, time.Now().Add(-time.Minute))))
	assert.False(t, tokenExpired(makeJWT(t, time.Now().Add(time.Minute))))
	assert.False(t, tokenExpired("opaque-token"), "non-JWT tokens are never expired locally")
}
