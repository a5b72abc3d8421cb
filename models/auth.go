package models

// Role is the derived access level of the authenticated user.
type Role string

const (
	// RoleAdmin grants access to every resource and menu entry.
	RoleAdmin Role = "admin"

	// RoleConsumidor is the restricted patron role; it may only reach the
	// dashboard, loans, fines, and items views.
	RoleConsumidor Role = "consumidor"
)

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	NombreUsuario string `json:"nombre_usuario"`
	Contrasena    string `json:"contraseña"`
}

// LoginResponse is the successful login body: a bearer token plus the
// authenticated user record.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        Usuario `json:"user"`
}
