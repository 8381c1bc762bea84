package window

// Step is one stage of a Routine. It is called once per tick until it
// reports that it is done.
type Step func() bool

// Do wraps fn as a step that always finishes on its first call.
func Do(fn func()) Step {
	return func() bool {
		fn()
		return true
	}
}

// WaitUntil is a step that finishes the first tick cond holds.
func WaitUntil(cond func() bool) Step {
	return Step(cond)
}

// Routine is a sequence of steps resumed once per host tick. It never blocks;
// a step that is not done suspends the routine until the next Tick.
type Routine struct {
	steps []Step
	next  int
}

func NewRoutine(steps ...Step) *Routine {
	return &Routine{steps: steps}
}

// Tick runs steps in order until one is not done, and reports whether the
// whole routine has finished.
func (r *Routine) Tick() bool {
	if r == nil {
		return true
	}
	for r.next < len(r.steps) {
		step := r.steps[r.next]
		if step != nil && !step() {
			return false
		}
		r.next++
	}
	return true
}

// Done reports whether every step has finished.
func (r *Routine) Done() bool {
	return r == nil || r.next >= len(r.steps)
}
