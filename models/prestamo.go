package models

// Loan states used by the backend.
const (
	PrestamoActivo   = "activo"
	PrestamoDevuelto = "devuelto"
)

// Prestamo is a loan of one item to one user. Item and borrower are fixed at
// creation; only dates and state change afterwards.
type Prestamo struct {
	ID        string `json:"id"`
	IDItem    string `json:"id_item"`
	IDUsuario string `json:"id_usuario"`

	FechaPrestamo           string  `json:"fecha_prestamo"`
	FechaDevolucionEstimada string  `json:"fecha_devolucion_estimada"`
	FechaDevolucionReal     *string `json:"fecha_devolucion_real,omitempty"`
	Estado                  string  `json:"estado"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// PrestamoCreate is the payload for POST /prestamos. The backend rejects the
// request when the item is not available.
type PrestamoCreate struct {
	IDItem                  string  `json:"id_item"`
	IDUsuario               string  `json:"id_usuario"`
	FechaDevolucionEstimada *string `json:"fecha_devolucion_estimada,omitempty"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// PrestamoUpdate is the payload for PUT /prestamos/{id}.
type PrestamoUpdate struct {
	FechaDevolucionEstimada *string `json:"fecha_devolucion_estimada,omitempty"`
	FechaDevolucionReal     *string `json:"fecha_devolucion_real,omitempty"`
	Estado                  *string `json:"estado,omitempty"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}

// PrestamoDevolver is the payload for POST /prestamos/{id}/devolver.
// Returning a loan flips the item back to available on the backend.
type PrestamoDevolver struct {
	IDUsuarioEdicion string `json:"id_usuario_edicion"`
}
