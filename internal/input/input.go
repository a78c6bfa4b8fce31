// Package input captures one frame of keyboard and mouse state so systems
// can be driven without a window.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Watched lists the keys Poll records.
var Watched = []int32{
	rl.KeyW, rl.KeyA, rl.KeyS, rl.KeyD, rl.KeyE, rl.KeyQ,
	rl.KeyX, rl.KeyY, rl.KeyZ, rl.KeyR,
	rl.KeyLeftShift, rl.KeyLeftControl, rl.KeyLeftAlt,
}

// Snapshot is the input state for one frame.
type Snapshot struct {
	Cursor     rl.Vector2
	MouseDelta rl.Vector2
	Width      float32
	Height     float32
	Time       float64

	LeftDown    bool
	LeftPressed bool
	RightDown   bool

	keysDown map[int32]bool
}

// Poll reads the current frame from raylib. Requires an open window.
func Poll() Snapshot {
	s := Snapshot{
		Cursor:      rl.GetMousePosition(),
		MouseDelta:  rl.GetMouseDelta(),
		Width:       float32(rl.GetScreenWidth()),
		Height:      float32(rl.GetScreenHeight()),
		Time:        rl.GetTime(),
		LeftDown:    rl.IsMouseButtonDown(rl.MouseLeftButton),
		LeftPressed: rl.IsMouseButtonPressed(rl.MouseLeftButton),
		RightDown:   rl.IsMouseButtonDown(rl.MouseRightButton),
	}
	for _, k := range Watched {
		if rl.IsKeyDown(k) {
			s.SetKey(k, true)
		}
	}
	return s
}

// SetKey marks k as held.
func (s *Snapshot) SetKey(k int32, down bool) {
	if s.keysDown == nil {
		s.keysDown = make(map[int32]bool)
	}
	s.keysDown[k] = down
}

func (s Snapshot) KeyDown(k int32) bool {
	return s.keysDown[k]
}

// Axis returns +1 when pos is held, -1 when neg is held, 0 for both or neither.
func (s Snapshot) Axis(pos, neg int32) float32 {
	var v float32
	if s.KeyDown(pos) {
		v++
	}
	if s.KeyDown(neg) {
		v--
	}
	return v
}

// SpeedModifier is 10 with Left Shift, 0.1 with Left Control, else 1.
func (s Snapshot) SpeedModifier() float32 {
	switch {
	case s.KeyDown(rl.KeyLeftShift):
		return 10
	case s.KeyDown(rl.KeyLeftControl):
		return 0.1
	default:
		return 1
	}
}

// DragModifier reports whether Left Alt is held.
func (s Snapshot) DragModifier() bool {
	return s.KeyDown(rl.KeyLeftAlt)
}

// Shift reports whether Left Shift is held.
func (s Snapshot) Shift() bool {
	return s.KeyDown(rl.KeyLeftShift)
}
