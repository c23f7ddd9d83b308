package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valegrete/academia_bot/internal/model"
)

func resolved(class *model.Class, slots ...Slot) *ResolvedClass {
	return &ResolvedClass{Class: class, Slots: slots}
}

func TestDetectConflicts_EachPairOnce(t *testing.T) {
	classA := regularClass("A", teacherT1)
	classB := regularClass("B", teacherT1)

	in := []*ResolvedClass{
		resolved(classA, slotAt(Monday, 9*60, 10*60)),
		resolved(classB, slotAt(Monday, 9*60+30, 10*60+30)),
	}

	conflicts := DetectConflicts(in)
	require.Len(t, conflicts, 1)

	// Mismo resultado con las clases en orden inverso: el par aparece
	// una sola vez, no duplicado por simetría.
	reversed := []*ResolvedClass{in[1], in[0]}
	conflicts = DetectConflicts(reversed)
	require.Len(t, conflicts, 1)
}

func TestDetectConflicts_NoSelfPairs(t *testing.T) {
	class := regularClass("Piano colectivo", teacherT1)
	// Dos slots solapados dentro de la misma clase no son conflicto.
	in := []*ResolvedClass{
		resolved(class, slotAt(Monday, 9*60, 11*60), slotAt(Monday, 10*60, 12*60)),
	}
	assert.Empty(t, DetectConflicts(in))
}

func TestDetectConflicts_AdjacentNotConflicting(t *testing.T) {
	in := []*ResolvedClass{
		resolved(regularClass("A", teacherT1), slotAt(Monday, 9*60, 10*60)),
		resolved(regularClass("B", teacherT1), slotAt(Monday, 10*60, 11*60)),
	}
	assert.Empty(t, DetectConflicts(in))
}

func TestDetectConflicts_MultipleSlotPairs(t *testing.T) {
	classA := regularClass("A", teacherT1)
	classB := regularClass("B", teacherT1)

	in := []*ResolvedClass{
		resolved(classA, slotAt(Monday, 9*60, 10*60), slotAt(Monday, 11*60, 12*60)),
		resolved(classB, slotAt(Monday, 9*60+30, 11*60+30)),
	}

	// El slot de B choca con ambos slots de A: dos conflictos.
	conflicts := DetectConflicts(in)
	assert.Len(t, conflicts, 2)
}
