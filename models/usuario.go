package models

// Usuario represents a library user account as returned by the backend.
// The role shown in the UI is not a stored field; it is derived from EsAdmin
// (see [Usuario.Rol]).
type Usuario struct {
	// ID is the backend-assigned UUID of the user.
	ID string `json:"id"`

	// Nombre is the display name of the user.
	Nombre string `json:"nombre"`

	// NombreUsuario is the unique login name.
	NombreUsuario string `json:"nombre_usuario"`

	// Email is the contact address, also used for password recovery.
	Email string `json:"email"`

	// Telefono is an optional contact phone number.
	Telefono *string `json:"telefono,omitempty"`

	// EsAdmin marks the account as an administrator.
	EsAdmin bool `json:"es_admin"`

	// Activo marks the account as enabled; inactive users cannot log in.
	Activo bool `json:"activo"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// Rol returns the derived access role for the account.
func (u Usuario) Rol() Role {
	if u.EsAdmin {
		return RoleAdmin
	}
	return RoleConsumidor
}

// UsuarioCreate is the payload for POST /usuarios.
type UsuarioCreate struct {
	Nombre        string  `json:"nombre"`
	NombreUsuario string  `json:"nombre_usuario"`
	Email         string  `json:"email"`
	Contrasena    string  `json:"contraseña"`
	Telefono      *string `json:"telefono"`
	EsAdmin       bool    `json:"es_admin"`

	// IDUsuarioCreacion identifies the acting user; resolved from the
	// session, falling back to the zero UUID when no identity is available.
	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// UsuarioUpdate is the payload for PUT /usuarios/{id}. Nil pointers are
// omitted so the backend keeps the current value; explicit nulls clear it.
type UsuarioUpdate struct {
	Nombre        *string `json:"nombre,omitempty"`
	NombreUsuario *string `json:"nombre_usuario,omitempty"`
	Email         *string `json:"email,omitempty"`
	Contrasena    *string `json:"contraseña,omitempty"`
	Telefono      *string `json:"telefono"`
	EsAdmin       *bool   `json:"es_admin,omitempty"`
	Activo        *bool   `json:"activo,omitempty"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}
