package component

type Camera struct {
	TargetName string
	// ClampToBounds keeps the view inside the level bounds.
	ClampToBounds bool
	ViewWidth     float64
	ViewHeight    float64
}

var CameraComponent = NewComponent[Camera]()
