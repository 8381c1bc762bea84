package component

// AnimationClip is a frame-timed clip. Timing assumes 60 update ticks per
// second.
type AnimationClip struct {
	Name       string
	FrameCount int
	FPS        float64
	Loop       bool
}

// Animation plays one clip at a time on a UI element. Panels use clips named
// "Open" and "Close".
type Animation struct {
	Clips      map[string]AnimationClip
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()
