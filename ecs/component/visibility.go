package component

// Visibility is whether a UI element is shown. A hidden element is also
// inactive: the animation system does not advance it and triggers sent to
// it complete immediately.
type Visibility struct {
	Shown bool
}

var VisibilityComponent = NewComponent[Visibility]()
