package ecs

import "github.com/milk9111/windowstack/ecs/component"

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	return w.AddComponent(e, kind.ID(), value)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.RemoveComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.HasComponent(e, kind.ID())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.GetComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// First returns the first live entity that has kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	for _, e := range w.lookup(kind.ID()).Entities() {
		if w.IsAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach calls fn for every entity with kind. Entities may be destroyed or
// components removed from inside fn.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range w.lookup(kind.ID()).Entities() {
		v, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}
