package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsuario_Rol(t *testing.T) {
	assert.Equal(t, RoleAdmin, Usuario{EsAdmin: true}.Rol())
	assert.Equal(t, RoleConsumidor, Usuario{EsAdmin: false}.Rol())
}

func TestItem_MaterialID(t *testing.T) {
	libro := "b1"
	revista := "r1"
	periodico := "p1"

	assert.Equal(t, "b1", Item{IDLibro: &libro}.MaterialID())
	assert.Equal(t, "r1", Item{IDRevista: &revista}.MaterialID())
	assert.Equal(t, "p1", Item{IDPeriodico: &periodico}.MaterialID())
	assert.Empty(t, Item{}.MaterialID())
}

// The login payload uses the backend's accented field name; a silent rename
// would break authentication against the real API.
func TestLoginRequest_WireNames(t *testing.T) {
	raw, err := json.Marshal(LoginRequest{NombreUsuario: "ana", Contrasena: "secreto"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"nombre_usuario": "ana", "contraseña": "secreto"}`, string(raw))
}

// Nil optional fields on updates must be omitted so the backend keeps the
// current values, while explicitly cleared fields are sent as null.
func TestUsuarioUpdate_OmitsUnsetFields(t *testing.T) {
	nombre := "Ana"
	raw, err := json.Marshal(UsuarioUpdate{Nombre: &nombre})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "Ana", got["nombre"])
	assert.NotContains(t, got, "email")
	assert.NotContains(t, got, "id_usuario_edicion")
	// Telefono has no omitempty: clearing the phone is expressible.
	assert.Contains(t, got, "telefono")
	assert.Nil(t, got["telefono"])
}
