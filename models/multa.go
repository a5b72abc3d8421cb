package models

// Fine states used by the backend.
const (
	MultaPendiente = "pendiente"
	MultaPagada    = "pagada"
)

// Multa is a monetary fine tied to a loan and its borrowing user.
type Multa struct {
	ID         string `json:"id"`
	IDPrestamo string `json:"id_prestamo"`
	IDUsuario  string `json:"id_usuario"`

	Monto      float64 `json:"monto"`
	Motivo     *string `json:"motivo,omitempty"`
	FechaMulta string  `json:"fecha_multa"`
	FechaPago  *string `json:"fecha_pago,omitempty"`
	Estado     string  `json:"estado"`

	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
}

// MultaCreate is the payload for POST /multas. Both the loan and the user
// must already exist.
type MultaCreate struct {
	IDPrestamo string  `json:"id_prestamo"`
	IDUsuario  string  `json:"id_usuario"`
	Monto      float64 `json:"monto"`
	Motivo     *string `json:"motivo"`

	IDUsuarioCreacion string `json:"id_usuario_creacion"`
}

// MultaUpdate is the payload for PUT /multas/{id}.
type MultaUpdate struct {
	Monto     *float64 `json:"monto,omitempty"`
	Motivo    *string  `json:"motivo"`
	FechaPago *string  `json:"fecha_pago,omitempty"`
	Estado    *string  `json:"estado,omitempty"`

	IDUsuarioEdicion *string `json:"id_usuario_edicion,omitempty"`
}

// MultaPagar is the payload for POST /multas/{id}/pagar. Paying records the
// payment date and moves the fine to the paid state on the backend.
type MultaPagar struct {
	IDUsuarioEdicion string `json:"id_usuario_edicion"`
}
