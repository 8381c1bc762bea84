package ecs

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
	ticks   uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once against w.
func (s *Scheduler) Update(w *World) {
	if w == nil {
		return
	}
	s.ticks++
	for _, system := range s.systems {
		system.Update(w)
	}
}

// Ticks returns how many times Update has run.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
