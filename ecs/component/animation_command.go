package component

// AnimationCommand asks the animation system to start a clip. The system
// removes it once the clip has been started.
type AnimationCommand struct {
	Clip string
}

var AnimationCommandComponent = NewComponent[AnimationCommand]()
