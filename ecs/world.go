package ecs

import "github.com/milk9111/windowstack/ecs/component"

// World owns entities, their component stores and the per-tick event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.removeSlot(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

func (w *World) CreateEntity() Entity { return CreateEntity(w) }
func (w *World) DestroyEntity(e Entity) bool { return DestroyEntity(w, e) }
func (w *World) IsAlive(e Entity) bool { return IsAlive(w, e) }

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id).Set(e, value)
	return nil
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	s, ok := w.stores[id]
	if !ok || !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	_, ok := w.GetComponent(e, id)
	return ok
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	s, ok := w.stores[id]
	if !ok {
		return false
	}
	return s.Remove(e)
}

func (w *World) store(id component.ComponentID) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) lookup(id component.ComponentID) *SparseSet {
	if w == nil {
		return nil
	}
	return w.stores[id]
}
