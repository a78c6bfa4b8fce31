package game

import (
	"fmt"

	"armpick/internal/components"
	"armpick/internal/engine"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var (
	colorBgDark    = rl.NewColor(24, 24, 32, 230)
	colorBgElement = rl.NewColor(40, 40, 52, 255)
	colorAccent    = rl.NewColor(99, 102, 241, 255)
	colorText      = rl.NewColor(220, 220, 230, 255)
)

var drawQuery = donburi.NewQuery(filter.Contains(components.ModelRendererComponent, engine.TransformComponent))

func applyStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorText))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func (g *Game) Draw() {
	w := g.App.World
	selected := g.status.Joint

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(g.rig.Camera3D(g.projection(w)))
	drawQuery.Each(w, func(entry *donburi.Entry) {
		r := *components.ModelRendererComponent.Get(entry)
		if entry.HasComponent(components.IkCubeComponent) &&
			components.IkCubeComponent.Get(entry).Joint == selected {
			r.Color = rl.Yellow
		}
		if entry.HasComponent(components.UIButtonComponent) {
			r.Color = components.UIButtonComponent.Get(entry).Color()
		}
		g.models.Draw(r, engine.WorldTransform(w, entry))
	})
	if g.goal.active {
		rl.DrawSphere(g.goal.point, 0.03, rl.Orange)
	}
	rl.EndMode3D()

	g.drawStatus()
	rl.EndDrawing()
}

func (g *Game) drawStatus() {
	s := g.status
	panel := rl.Rectangle{X: 10, Y: 10, Width: 300, Height: 190}
	gui.Panel(panel, "armpick")

	joint := "none"
	if s.Joint >= 0 {
		joint = fmt.Sprintf("%d (%s)", s.Joint, g.arm.Node(s.Joint).Name)
	}
	lines := []string{
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
		fmt.Sprintf("Camera: %s / %s", s.Preset, s.Projection),
		fmt.Sprintf("Selection: %s, joint %s", s.Selection, joint),
		fmt.Sprintf("Last button: %d  Projectiles: %d", s.LastButton, s.Projectiles),
		"WASD/QE move, RMB look, Shift x10, Ctrl x0.1",
		"LMB select, Alt+LMB drag, Shift+LMB shoot",
		"X/Y/Z jog (Shift reverses), R reset",
	}
	for i, line := range lines {
		gui.Label(rl.Rectangle{X: 20, Y: 38 + float32(i)*22, Width: 280, Height: 20}, line)
	}
}
