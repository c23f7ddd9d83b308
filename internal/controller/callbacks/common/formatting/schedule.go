package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/valegrete/academia_bot/internal/schedule"
)

// FormatDaySchedule arma el mensaje de la agenda de un día: clases en
// orden de inicio y, si los hay, los avisos de solape al final.
func FormatDaySchedule(date time.Time, resolution *schedule.Resolution, conflicts []schedule.Conflict) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📅 Agenda del %s\n\n", FormatDateWithWeekday(date)))

	if len(resolution.Classes) == 0 {
		sb.WriteString("No tienes clases este día.")
		return sb.String()
	}

	for _, rc := range resolution.Classes {
		times := make([]string, 0, len(rc.Slots))
		for _, slot := range rc.Slots {
			times = append(times, FormatMinuteRange(slot.StartMinute, slot.EndMinute))
		}
		marker := "🎵"
		if rc.Class.IsEmergency {
			marker = "🚨"
		}
		sb.WriteString(fmt.Sprintf("%s %s — %s\n", marker, rc.Class.Name, strings.Join(times, ", ")))
	}

	if len(conflicts) > 0 {
		sb.WriteString("\n⚠️ Conflictos de horario:\n")
		for _, c := range conflicts {
			sb.WriteString(fmt.Sprintf("• %s (%s) se solapa con %s (%s)\n",
				c.ClassA.Name, FormatMinuteRange(c.SlotA.StartMinute, c.SlotA.EndMinute),
				c.ClassB.Name, FormatMinuteRange(c.SlotB.StartMinute, c.SlotB.EndMinute)))
		}
	}

	return sb.String()
}
