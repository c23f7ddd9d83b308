package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/valegrete/academia_bot/internal/model"
)

// ResolvedClass es una clase elegible para pasar lista en la fecha
// consultada, con sus slots coincidentes ya normalizados y ordenados
// por hora de inicio.
type ResolvedClass struct {
	Class *model.Class
	Slots []Slot
}

// StartMinute es el inicio del primer slot coincidente.
func (rc *ResolvedClass) StartMinute() int {
	if len(rc.Slots) == 0 {
		return 0
	}
	return rc.Slots[0].StartMinute
}

// Warning señala una clase cuyos slots eran todos inválidos: la clase
// no aparece en el resultado pero tampoco es un error duro. El servicio
// la registra para vigilar la calidad de los datos.
type Warning struct {
	ClassID   uuid.UUID
	ClassName string
	Errs      []error
}

// Resolution es el resultado de resolver la agenda de un profesor.
type Resolution struct {
	Classes  []*ResolvedClass
	Warnings []Warning
}

// ResolveForTeacher calcula qué clases puede atender un profesor en una
// fecha: las clases donde es titular, o colaborador con permiso de
// asistencia, y que tienen algún slot aplicable a esa fecha.
//
// Un slot mal formado se descarta sin invalidar la clase: sólo si todos
// los slots fallan la clase queda fuera, y eso se reporta como Warning.
// El roster de entrada no se modifica y el resultado es determinista:
// orden por minuto de inicio y, a igualdad, por nombre de clase.
func ResolveForTeacher(roster []*model.Class, teacherID uuid.UUID, date time.Time) *Resolution {
	res := &Resolution{}
	seen := make(map[uuid.UUID]bool, len(roster))

	for _, class := range roster {
		if class == nil || seen[class.ID] {
			continue
		}
		seen[class.ID] = true
		if !canTakeAttendance(class, teacherID) {
			continue
		}
		if class.IsEmergency && (class.EmergencyDate == nil || !SameDate(date, *class.EmergencyDate)) {
			continue
		}

		var matched []Slot
		var errs []error
		for _, raw := range class.Slots {
			slot, err := NormalizeSlot(raw)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if MatchesDate(slot, class, date) {
				matched = append(matched, slot)
			}
		}

		if len(matched) == 0 {
			// Todos los slots ilegibles: la clase pudo haber aplicado
			// hoy y no hay forma de saberlo. Aviso, no error.
			if len(errs) > 0 && len(errs) == len(class.Slots) {
				res.Warnings = append(res.Warnings, Warning{
					ClassID:   class.ID,
					ClassName: class.Name,
					Errs:      errs,
				})
			}
			continue
		}

		sort.Slice(matched, func(i, j int) bool {
			if matched[i].StartMinute != matched[j].StartMinute {
				return matched[i].StartMinute < matched[j].StartMinute
			}
			return matched[i].EndMinute < matched[j].EndMinute
		})

		res.Classes = append(res.Classes, &ResolvedClass{Class: class, Slots: matched})
	}

	sort.Slice(res.Classes, func(i, j int) bool {
		a, b := res.Classes[i], res.Classes[j]
		if a.StartMinute() != b.StartMinute() {
			return a.StartMinute() < b.StartMinute()
		}
		if a.Class.Name != b.Class.Name {
			return a.Class.Name < b.Class.Name
		}
		return a.Class.ID.String() < b.Class.ID.String()
	})

	return res
}

// canTakeAttendance: titular siempre; colaborador sólo con el permiso
// explícito. El rol es descriptivo y no abre la puerta por sí solo.
func canTakeAttendance(class *model.Class, teacherID uuid.UUID) bool {
	if class.TeacherID == teacherID {
		return true
	}
	if grant := class.CollaboratorGrantFor(teacherID); grant != nil {
		return grant.CanTakeAttendance
	}
	return false
}
