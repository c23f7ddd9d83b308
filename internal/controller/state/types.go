package state

// UserState es el estado del diálogo activo de un usuario.
type UserState string

const (
	StateNone UserState = "" // sin diálogo activo

	// El profesor está escribiendo el motivo de una justificación.
	StateJustifyReason UserState = "justify_reason"
)

// UserData agrupa el estado del diálogo y sus datos temporales.
type UserData struct {
	State UserState
	Data  map[string]any
}
