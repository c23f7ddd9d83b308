package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Day es el día de la semana canónico: 0 = domingo .. 6 = sábado.
type Day int

const (
	Sunday Day = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = []string{
	"domingo",
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábado",
}

func (d Day) String() string {
	if d >= 0 && int(d) < len(dayNames) {
		return dayNames[d]
	}
	return fmt.Sprintf("Day(%d)", int(d))
}

// dayAliases mapea toda representación aceptada a su índice canónico.
// Las claves están en minúsculas y sin acentos (ver foldDay): nombres
// completos y abreviaturas en español, nombres en inglés como
// compatibilidad, y dígitos "0".."6" porque el almacén antiguo
// serializaba el día unas veces como número y otras como texto.
var dayAliases = map[string]Day{
	"domingo": Sunday, "dom": Sunday, "sunday": Sunday, "0": Sunday,
	"lunes": Monday, "lun": Monday, "monday": Monday, "1": Monday,
	"martes": Tuesday, "mar": Tuesday, "tuesday": Tuesday, "2": Tuesday,
	"miercoles": Wednesday, "mie": Wednesday, "wednesday": Wednesday, "3": Wednesday,
	"jueves": Thursday, "jue": Thursday, "thursday": Thursday, "4": Thursday,
	"viernes": Friday, "vie": Friday, "friday": Friday, "5": Friday,
	"sabado": Saturday, "sab": Saturday, "saturday": Saturday, "6": Saturday,
}

// accentFolder cubre el vocabulario cerrado de los alias: no hace falta
// un transformador Unicode general para siete nombres de día.
var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u",
)

func foldDay(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizeDay convierte cualquier representación de día conocida al
// índice canónico 0..6. Acepta enteros (y float64, porque los números
// JSON del almacén antiguo llegan así), cadenas numéricas y nombres en
// español o inglés, sin distinguir mayúsculas ni acentos.
func NormalizeDay(value any) (Day, error) {
	switch v := value.(type) {
	case Day:
		return normalizeDayInt(int(v))
	case int:
		return normalizeDayInt(v)
	case int32:
		return normalizeDayInt(int(v))
	case int64:
		return normalizeDayInt(int(v))
	case float64:
		if v != float64(int(v)) {
			return 0, &InvalidDayError{Value: fmt.Sprintf("%v", v)}
		}
		return normalizeDayInt(int(v))
	case string:
		if d, ok := dayAliases[foldDay(v)]; ok {
			return d, nil
		}
		return 0, &InvalidDayError{Value: v}
	case time.Weekday:
		return normalizeDayInt(int(v))
	default:
		return 0, &InvalidDayError{Value: fmt.Sprintf("%v", value)}
	}
}

func normalizeDayInt(n int) (Day, error) {
	if n < 0 || n > 6 {
		return 0, &InvalidDayError{Value: fmt.Sprintf("%d", n)}
	}
	return Day(n), nil
}

// DayOf devuelve el día canónico de una fecha.
func DayOf(date time.Time) Day {
	return Day(int(date.Weekday()))
}

// ParseTimeToMinutes convierte "HH:MM" (24h) a minutos desde medianoche.
// Tolera la hora sin cero inicial ("9:00") pero los minutos llevan
// siempre dos dígitos, y los campos van separados por un único ':'.
func ParseTimeToMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || strings.Contains(mm, ":") {
		return 0, &InvalidTimeError{Value: s, Reason: "expected HH:MM"}
	}

	hour, err := parseTimePart(hh, 2)
	if err != nil || hour > 23 {
		return 0, &InvalidTimeError{Value: s, Reason: "hour out of range"}
	}
	if len(mm) != 2 {
		return 0, &InvalidTimeError{Value: s, Reason: "minute must have two digits"}
	}
	minute, err := parseTimePart(mm, 2)
	if err != nil || minute > 59 {
		return 0, &InvalidTimeError{Value: s, Reason: "minute out of range"}
	}

	return hour*60 + minute, nil
}

// parseTimePart parsea un campo de 1..maxDigits dígitos. No usamos
// strconv.Atoi para rechazar signos y espacios ("+9", " 9").
func parseTimePart(s string, maxDigits int) (int, error) {
	if len(s) == 0 || len(s) > maxDigits {
		return 0, fmt.Errorf("bad length")
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("not a digit")
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// FormatMinutes es la inversa de ParseTimeToMinutes, para mensajes y logs.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
