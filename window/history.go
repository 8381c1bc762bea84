package window

// History is a linear list of visited window indices with a cursor on the
// active one. Branching off from the middle drops the forward entries, like
// a browser.
type History struct {
	entries []int
	cursor  int
}

func NewHistory() History {
	return History{cursor: -1}
}

// Active returns the index under the cursor, or -1.
func (h *History) Active() int {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return -1
	}
	return h.entries[h.cursor]
}

func (h *History) Cursor() int { return h.cursor }
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the history.
func (h *History) Entries() []int {
	return append([]int(nil), h.entries...)
}

// Push truncates everything after the cursor and appends index. The cursor
// is left where it is; the transition that follows moves it.
func (h *History) Push(index int) {
	h.entries = append(h.entries[:h.cursor+1], index)
}

// Peek returns the entry delta steps away from the cursor.
func (h *History) Peek(delta int) (int, bool) {
	i := h.cursor + delta
	if i < 0 || i >= len(h.entries) {
		return -1, false
	}
	return h.entries[i], true
}

func (h *History) HasNext() bool {
	return h.cursor+1 < len(h.entries)
}

// Step moves the cursor by delta, clamped to [-1, len-1].
func (h *History) Step(delta int) {
	h.cursor += delta
	if h.cursor < -1 {
		h.cursor = -1
	}
	if h.cursor > len(h.entries)-1 {
		h.cursor = len(h.entries) - 1
	}
}

func (h *History) Reset() {
	h.entries = h.entries[:0]
	h.cursor = -1
}

// Collapse keeps only the active entry.
func (h *History) Collapse() {
	active := h.Active()
	h.Reset()
	if active < 0 {
		return
	}
	h.entries = append(h.entries, active)
	h.cursor = 0
}
