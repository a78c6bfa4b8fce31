package components

import (
	"armpick/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
)

// ButtonState tracks the current visual state of a button
type ButtonState int

const (
	ButtonNormal ButtonState = iota
	ButtonPressed
	ButtonDisabled
)

// ButtonClick is delivered to OnClick listeners.
type ButtonClick struct {
	Index int
	Point rl.Vector3
}

// UIButton is a pickable button on the HUD panel.
type UIButton struct {
	Index    int
	State    ButtonState
	Disabled bool

	NormalColor  rl.Color
	PressedColor rl.Color

	OnClick engine.EventWithArg[ButtonClick]
}

// HudPanel marks the panel the buttons hang from.
type HudPanel struct{}

var (
	UIButtonComponent = donburi.NewComponentType[UIButton]()
	HudPanelComponent = donburi.NewComponentType[HudPanel]()
)

func NewUIButton(index int) UIButton {
	return UIButton{
		Index:        index,
		State:        ButtonNormal,
		NormalColor:  rl.Red,
		PressedColor: rl.Maroon,
	}
}

// Click fires OnClick unless the button is disabled.
func (b *UIButton) Click(point rl.Vector3) bool {
	if b.Disabled {
		b.State = ButtonDisabled
		return false
	}
	b.State = ButtonPressed
	b.OnClick.Invoke(ButtonClick{Index: b.Index, Point: point})
	return true
}

// Release returns the button to its normal state.
func (b *UIButton) Release() {
	if b.Disabled {
		b.State = ButtonDisabled
		return
	}
	b.State = ButtonNormal
}

func (b *UIButton) Color() rl.Color {
	switch b.State {
	case ButtonPressed:
		return b.PressedColor
	case ButtonDisabled:
		return rl.Gray
	default:
		return b.NormalColor
	}
}
