package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// AnimationDef is a named clip of sheet frame indices. Frames count
// left-to-right, top-to-bottom across the sheet grid.
type AnimationDef struct {
	Name   string
	Frames []int
	FPS    float64
	Loop   bool
}

type Animation struct {
	Sheet   *ebiten.Image
	FrameW  int
	FrameH  int
	Columns int
	Defs    map[string]AnimationDef
	Current string
	// Frame indexes Defs[Current].Frames, not the sheet.
	Frame   int
	Elapsed float64
	Playing bool
}

// Play starts the named clip from its first frame. Requesting the clip that
// is already playing leaves it running. Unknown keys are ignored.
func (a *Animation) Play(key string) bool {
	if _, ok := a.Defs[key]; !ok {
		return false
	}
	if a.Playing && a.Current == key {
		return true
	}
	a.Current = key
	a.Frame = 0
	a.Elapsed = 0
	a.Playing = true
	return true
}

// Stop freezes the clip on its current frame.
func (a *Animation) Stop() {
	a.Playing = false
	a.Elapsed = 0
}

// SheetFrame returns the sheet frame index currently displayed.
func (a *Animation) SheetFrame() (int, bool) {
	def, ok := a.Defs[a.Current]
	if !ok || len(def.Frames) == 0 {
		return 0, false
	}
	idx := a.Frame
	if idx < 0 || idx >= len(def.Frames) {
		idx = 0
	}
	return def.Frames[idx], true
}

// FrameRect returns the sheet rectangle of a frame index.
func (a *Animation) FrameRect(frame int) image.Rectangle {
	cols := a.Columns
	if cols <= 0 {
		cols = 1
	}
	x := (frame % cols) * a.FrameW
	y := (frame / cols) * a.FrameH
	return image.Rect(x, y, x+a.FrameW, y+a.FrameH)
}

var AnimationComponent = NewComponent[Animation]()
