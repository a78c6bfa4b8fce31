// Package selection tracks which pickable is selected and turns a held drag
// into world-space targets on a camera-facing plane.
package selection

import (
	"armpick/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type State int

const (
	Idle State = iota
	Selected
	Dragging
)

func (s State) String() string {
	switch s {
	case Selected:
		return "selected"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Frame is what the machine needs from one tick.
type Frame struct {
	LeftDown     bool
	DragModifier bool
	Hit          picking.Hit
	HitOK        bool
	Ray          picking.Ray
	CameraPos    rl.Vector3
}

// Target is a drag goal for the selected item.
type Target struct {
	Index int
	Point rl.Vector3
}

type Machine struct {
	state  State
	index  int
	impact rl.Vector3
}

func (m *Machine) State() State {
	return m.state
}

// Selection returns the selected index and the point it was grabbed at.
func (m *Machine) Selection() (int, rl.Vector3, bool) {
	if m.state == Idle {
		return -1, rl.Vector3{}, false
	}
	return m.index, m.impact, true
}

// Update advances the machine one tick and returns a drag target while dragging.
func (m *Machine) Update(f Frame) (Target, bool) {
	if !f.LeftDown || (m.state == Dragging && !f.DragModifier) {
		if m.state == Dragging {
			m.state = Idle
		}
		return Target{}, false
	}

	if !f.DragModifier {
		if f.HitOK {
			m.state = Selected
			m.index = f.Hit.Index
			m.impact = f.Hit.Point
		}
		return Target{}, false
	}

	if m.state == Idle {
		return Target{}, false
	}
	m.state = Dragging
	p, ok := picking.ProjectDrag(f.Ray, m.impact, f.CameraPos)
	if !ok {
		return Target{}, false
	}
	return Target{Index: m.index, Point: p}, true
}

// Clear drops any selection.
func (m *Machine) Clear() {
	*m = Machine{}
}
