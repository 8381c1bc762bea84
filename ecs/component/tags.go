package component

type BlockerTag struct{}

var BlockerTagComponent = NewComponent[BlockerTag]()

type BackgroundTag struct{}

var BackgroundTagComponent = NewComponent[BackgroundTag]()
