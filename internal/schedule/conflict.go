package schedule

import "github.com/valegrete/academia_bot/internal/model"

// Conflict es un solape horario entre dos clases resueltas para el
// mismo profesor. Es informativo: el resolver no oculta clases en
// conflicto, avisar es responsabilidad de quien llama.
type Conflict struct {
	ClassA *model.Class
	ClassB *model.Class
	SlotA  Slot
	SlotB  Slot
}

// DetectConflicts busca solapes entre cada par no ordenado de clases
// resueltas, comparando todos sus slots coincidentes. Cada par aparece
// una sola vez, en el orden en que las clases vienen resueltas.
//
// Cuadrático sobre clases y slots, pero n es la agenda de un día de un
// profesor: nunca crece lo bastante para que importe.
func DetectConflicts(resolved []*ResolvedClass) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(resolved); i++ {
		for j := i + 1; j < len(resolved); j++ {
			a, b := resolved[i], resolved[j]
			for _, sa := range a.Slots {
				for _, sb := range b.Slots {
					if sa.Overlaps(sb) {
						conflicts = append(conflicts, Conflict{
							ClassA: a.Class,
							ClassB: b.Class,
							SlotA:  sa,
							SlotB:  sb,
						})
					}
				}
			}
		}
	}
	return conflicts
}
