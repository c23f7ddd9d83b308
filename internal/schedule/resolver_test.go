package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valegrete/academia_bot/internal/model"
)

var (
	teacherT1 = uuid.New()
	teacherT2 = uuid.New()

	// lunes 23 de junio de 2025
	aMonday = time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)
)

func rawSlot(day, start, end string) model.ClassSlot {
	return model.ClassSlot{ID: uuid.New(), Day: day, StartTime: start, EndTime: end}
}

func regularClass(name string, teacherID uuid.UUID, slots ...model.ClassSlot) *model.Class {
	return &model.Class{
		ID:        uuid.New(),
		Name:      name,
		TeacherID: teacherID,
		Slots:     slots,
	}
}

func TestResolveForTeacher_Scenario(t *testing.T) {
	// Clase propia a las 09:00 y clase ajena donde T1 colabora con
	// permiso, a las 09:30 el mismo día. Deben salir las dos, la más
	// temprana primero, y el detector debe reportar un solo conflicto.
	classA := regularClass("Clase A", teacherT1, rawSlot("lunes", "09:00", "10:00"))
	classB := regularClass("Clase B", teacherT2, rawSlot("1", "09:30", "10:30"))
	classB.Collaborators = []model.CollaboratorGrant{{
		TeacherID:         teacherT1,
		Role:              model.RoleCollaborator,
		CanTakeAttendance: true,
	}}

	res := ResolveForTeacher([]*model.Class{classA, classB}, teacherT1, aMonday)
	require.Len(t, res.Classes, 2)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, classA.ID, res.Classes[0].Class.ID)
	assert.Equal(t, classB.ID, res.Classes[1].Class.ID)

	conflicts := DetectConflicts(res.Classes)
	require.Len(t, conflicts, 1)
	assert.Equal(t, classA.ID, conflicts[0].ClassA.ID)
	assert.Equal(t, classB.ID, conflicts[0].ClassB.ID)
}

func TestResolveForTeacher_PrincipalAlwaysVisible(t *testing.T) {
	class := regularClass("Violín", teacherT1, rawSlot("lunes", "09:00", "10:00"))
	// Los colaboradores no afectan la visibilidad del titular.
	class.Collaborators = []model.CollaboratorGrant{{
		TeacherID:         teacherT2,
		Role:              model.RoleAssistant,
		CanTakeAttendance: false,
	}}

	res := ResolveForTeacher([]*model.Class{class}, teacherT1, aMonday)
	require.Len(t, res.Classes, 1)
}

func TestResolveForTeacher_CollaboratorGated(t *testing.T) {
	class := regularClass("Canto coral", teacherT2, rawSlot("lunes", "09:00", "10:00"))
	class.Collaborators = []model.CollaboratorGrant{{
		TeacherID:          teacherT1,
		Role:               model.RoleCollaborator,
		CanTakeAttendance:  false,
		CanAddObservations: true, // otros permisos no abren la puerta
	}}

	res := ResolveForTeacher([]*model.Class{class}, teacherT1, aMonday)
	assert.Empty(t, res.Classes)
}

func TestResolveForTeacher_NoSlotOnDate(t *testing.T) {
	class := regularClass("Batería", teacherT1, rawSlot("martes", "09:00", "10:00"))
	res := ResolveForTeacher([]*model.Class{class}, teacherT1, aMonday)
	assert.Empty(t, res.Classes)
	assert.Empty(t, res.Warnings)
}

func TestResolveForTeacher_EmergencyExactDate(t *testing.T) {
	anchor := time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC) // viernes
	class := &model.Class{
		ID:            uuid.New(),
		Name:          "Ensayo extra",
		TeacherID:     teacherT1,
		IsEmergency:   true,
		EmergencyDate: &anchor,
		Slots:         []model.ClassSlot{rawSlot("viernes", "16:00", "17:00")},
	}

	res := ResolveForTeacher([]*model.Class{class}, teacherT1, anchor)
	require.Len(t, res.Classes, 1)

	nextFriday := anchor.AddDate(0, 0, 7)
	res = ResolveForTeacher([]*model.Class{class}, teacherT1, nextFriday)
	assert.Empty(t, res.Classes)
	assert.Empty(t, res.Warnings)
}

func TestResolveForTeacher_DeduplicatesMultipleSlots(t *testing.T) {
	// Dos slots el mismo día: la clase aparece una sola vez, con ambos
	// slots y ordenada por el más temprano.
	class := regularClass("Solfeo", teacherT1,
		rawSlot("lunes", "11:00", "12:00"),
		rawSlot("Lunes", "09:00", "10:00"),
	)

	res := ResolveForTeacher([]*model.Class{class}, teacherT1, aMonday)
	require.Len(t, res.Classes, 1)
	require.Len(t, res.Classes[0].Slots, 2)
	assert.Equal(t, 9*60, res.Classes[0].StartMinute())
}

func TestResolveForTeacher_MalformedSlotIsSoft(t *testing.T) {
	// Un slot ilegible no esconde la clase si otro slot válido aplica.
	class := regularClass("Trompeta", teacherT1,
		rawSlot("no-es-un-dia", "09:00", "10:00"),
		rawSlot("lunes", "10:00", "11:00"),
	)

	res := ResolveForTeacher([]*model.Class{class}, teacherT1, aMonday)
	require.Len(t, res.Classes, 1)
	assert.Empty(t, res.Warnings)
}

func TestResolveForTeacher_AllSlotsMalformedWarns(t *testing.T) {
	class := regularClass("Arpa", teacherT1,
		rawSlot("no-es-un-dia", "09:00", "10:00"),
		rawSlot("lunes", "99:00", "10:00"),
	)

	res := ResolveForTeacher([]*model.Class{class}, teacherT1, aMonday)
	assert.Empty(t, res.Classes)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, class.ID, res.Warnings[0].ClassID)
	assert.Len(t, res.Warnings[0].Errs, 2)

	// La misma clase repetida en el roster avisa una sola vez.
	res = ResolveForTeacher([]*model.Class{class, class}, teacherT1, aMonday)
	assert.Empty(t, res.Classes)
	assert.Len(t, res.Warnings, 1)
}

func TestResolveForTeacher_TieBrokenByName(t *testing.T) {
	classB := regularClass("B contrabajo", teacherT1, rawSlot("lunes", "09:00", "10:00"))
	classA := regularClass("A violonchelo", teacherT1, rawSlot("lunes", "09:00", "10:00"))

	res := ResolveForTeacher([]*model.Class{classB, classA}, teacherT1, aMonday)
	require.Len(t, res.Classes, 2)
	assert.Equal(t, "A violonchelo", res.Classes[0].Class.Name)
	assert.Equal(t, "B contrabajo", res.Classes[1].Class.Name)
}

func TestResolveForTeacher_Idempotent(t *testing.T) {
	classA := regularClass("Clase A", teacherT1, rawSlot("lunes", "09:00", "10:00"))
	classB := regularClass("Clase B", teacherT1, rawSlot("lunes", "09:30", "10:30"))
	roster := []*model.Class{classB, classA}

	first := ResolveForTeacher(roster, teacherT1, aMonday)
	second := ResolveForTeacher(roster, teacherT1, aMonday)
	assert.Equal(t, first, second)
}
