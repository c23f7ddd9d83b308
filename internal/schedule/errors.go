package schedule

import "fmt"

// InvalidDayError indica un día de la semana que no se pudo normalizar.
// Se recupera localmente: el slot afectado se descarta y la clase sigue
// siendo candidata a través de sus otros slots.
type InvalidDayError struct {
	Value string
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid day of week: %q", e.Value)
}

// InvalidTimeError indica una hora "HH:MM" mal formada o un rango imposible.
type InvalidTimeError struct {
	Value  string
	Reason string
}

func (e *InvalidTimeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid time %q: %s", e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid time: %q", e.Value)
}
