package formatting

import (
	"fmt"
	"time"
)

// FormatDate formatea sólo la fecha.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateWithWeekday formatea la fecha con su día de la semana.
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s %s", GetWeekdayName(int(t.Weekday())), t.Format("02/01/2006"))
}

// FormatMinuteRange formatea un rango de minutos desde medianoche.
func FormatMinuteRange(start, end int) string {
	return fmt.Sprintf("%s-%s", formatMinute(start), formatMinute(end))
}

func formatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// GetWeekdayName devuelve el nombre del día en español.
func GetWeekdayName(weekday int) string {
	names := []string{
		"domingo",
		"lunes",
		"martes",
		"miércoles",
		"jueves",
		"viernes",
		"sábado",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetWeekdayShortName devuelve el nombre corto del día en español.
func GetWeekdayShortName(weekday int) string {
	names := []string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
