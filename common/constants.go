package common

const (
	BaseWidth  = 800
	BaseHeight = 600

	// TPS is the fixed simulation rate ebiten drives Update at.
	TPS = 60
)
