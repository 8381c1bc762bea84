package ecs

import "github.com/milk9111/windowstack/ecs/component"

// Query returns the live entities that have every one of kinds.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.lookup(k.ID())
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}

	// iterate the smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	var out []Entity
	for _, e := range sets[smallest].Entities() {
		if !w.IsAlive(e) {
			continue
		}
		match := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}
