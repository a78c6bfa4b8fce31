package game

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"

	"armpick/internal/config"
	"armpick/internal/engine"
	"armpick/internal/input"
	"armpick/internal/kinematics"
	"armpick/internal/picking"
	"armpick/internal/selection"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
)

const (
	screenW = 1280
	screenH = 720
)

func newTestGame(t *testing.T) (*Game, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.Camera.Smoothing = 0
	g := New(cfg, log.New(&buf, "", 0))
	g.Step(frame(), 0.016)
	return g, &buf
}

func frame() input.Snapshot {
	return input.Snapshot{Width: screenW, Height: screenH, Cursor: rl.Vector2{X: screenW / 2, Y: screenH / 2}}
}

// screenOf projects a world point for the unrotated start camera.
func screenOf(g *Game, p rl.Vector3) rl.Vector2 {
	rel := rl.Vector3Subtract(p, g.pose.Position)
	tanHalf := float32(math.Tan(float64(g.pose.Projection.FovY) / 2))
	aspect := float32(screenW) / float32(screenH)
	depth := -rel.Z
	ndcX := rel.X / (depth * tanHalf * aspect)
	ndcY := rel.Y / (depth * tanHalf)
	return rl.Vector2{
		X: (ndcX + 1) / 2 * screenW,
		Y: (1 - ndcY) / 2 * screenH,
	}
}

func cubeCenter(g *Game, node int) rl.Vector3 {
	world, _ := g.arm.WorldTransform(node)
	return kinematics.ProxyTransform(node, world).Translation
}

func TestNewSpawnsScene(t *testing.T) {
	g, _ := newTestGame(t)

	if len(g.cubes) != 8 {
		t.Errorf("Expected 8 arm cubes, got %d", len(g.cubes))
	}
	if len(g.buttons) != 16 {
		t.Errorf("Expected 16 HUD buttons, got %d", len(g.buttons))
	}
	if got := g.pose.Position; got != (rl.Vector3{Y: 2, Z: 4}) {
		t.Errorf("Expected camera at (0,2,4), got %v", got)
	}
	want := []string{"camera", "hud", "select", "drag", "jog", "arm sync", "projectiles", "status"}
	got := g.App.Systems()
	if len(got) != len(want) {
		t.Fatalf("Expected systems %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected system %d to be %q, got %q", i, want[i], got[i])
		}
	}
}

func TestHudDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Hud.Enabled = false
	g := New(cfg, NewDiscardLogger())
	g.Step(frame(), 0.016)

	if len(g.buttons) != 0 {
		t.Errorf("Expected no buttons, got %d", len(g.buttons))
	}
}

func TestClickHudButton(t *testing.T) {
	g, logs := newTestGame(t)

	// Button (i=1, j=1) is index 0.
	button := rl.Vector3Add(g.pose.Position, rl.Vector3Add(hudPanelOffset, rl.Vector3{X: -0.03, Y: -0.03, Z: 0.0001}))
	s := frame()
	s.Cursor = screenOf(g, button)
	s.LeftDown, s.LeftPressed = true, true
	g.Step(s, 0.016)

	if !strings.Contains(logs.String(), "selected ui: 0 at:") {
		t.Errorf("Expected click log for button 0, got %q", logs.String())
	}
	if g.Status().LastButton != 0 {
		t.Errorf("Expected last button 0, got %d", g.Status().LastButton)
	}
	if g.sel.State() != selection.Idle {
		t.Errorf("Expected HUD click not to select, got %v", g.sel.State())
	}
}

func TestClickEmptyLogsNoHit(t *testing.T) {
	g, logs := newTestGame(t)

	s := frame()
	s.Cursor = rl.Vector2{X: 0, Y: 0}
	s.LeftDown, s.LeftPressed = true, true
	g.Step(s, 0.016)

	if !strings.Contains(logs.String(), "No hit..") {
		t.Errorf("Expected no-hit log, got %q", logs.String())
	}
	if g.sel.State() != selection.Idle {
		t.Errorf("Expected idle, got %v", g.sel.State())
	}
}

func TestSelectArmCube(t *testing.T) {
	g, _ := newTestGame(t)

	s := frame()
	s.Cursor = screenOf(g, cubeCenter(g, 7))
	s.LeftDown, s.LeftPressed = true, true
	g.Step(s, 0.016)

	idx, impact, ok := g.sel.Selection()
	if !ok {
		t.Fatal("Expected a cube to be selected")
	}
	center := cubeCenter(g, idx)
	if d := rl.Vector3Distance(impact, center); d > 0.18 {
		t.Errorf("Expected impact on cube %d, got %v at distance %v", idx, impact, d)
	}
	if g.Status().Joint != idx {
		t.Errorf("Expected status joint %d, got %d", idx, g.Status().Joint)
	}
}

func TestDragMovesSelectedNode(t *testing.T) {
	g, _ := newTestGame(t)

	start := cubeCenter(g, 7)
	g.sel.Update(selection.Frame{LeftDown: true, Hit: picking.Hit{Index: 7, Point: start}, HitOK: true})

	cursor := screenOf(g, start)
	cursor.Y -= 40
	s := frame()
	s.Cursor = cursor
	s.LeftDown = true
	s.SetKey(rl.KeyLeftAlt, true)

	g.Step(s, 0.016)
	if g.sel.State() != selection.Dragging {
		t.Fatalf("Expected dragging, got %v", g.sel.State())
	}
	if g.goal.node != 7 {
		t.Errorf("Expected goal on node 7, got %d", g.goal.node)
	}
	goal := g.goal.point
	if goal.Y <= start.Y {
		t.Errorf("Expected goal above the cube, got %v (cube %v)", goal, start)
	}

	for i := 0; i < 10; i++ {
		g.Step(s, 0.016)
	}
	moved := cubeCenter(g, 7)
	if moved.Y <= start.Y {
		t.Errorf("Expected cube 7 to rise from %v, got %v", start, moved)
	}

	g.Step(frame(), 0.016)
	if g.sel.State() != selection.Idle {
		t.Errorf("Expected idle after release, got %v", g.sel.State())
	}
}

func TestJogAndReset(t *testing.T) {
	g, _ := newTestGame(t)
	end := g.arm.Len() - 1
	before, _ := g.arm.WorldTransform(end)

	s := frame()
	s.SetKey(rl.KeyX, true)
	for i := 0; i < 10; i++ {
		g.Step(s, 0.02)
	}
	after, _ := g.arm.WorldTransform(end)
	if dx := after.Translation.X - before.Translation.X; dx < 0.15 {
		t.Errorf("Expected end effector to move about 0.2 in X, got %v", dx)
	}

	r := frame()
	r.SetKey(rl.KeyR, true)
	g.Step(r, 0.016)
	got := g.arm.JointPositions()
	for i, want := range config.Default().Arm.DefaultAngles {
		if got[i] != want {
			t.Errorf("Expected joint %d reset to %v, got %v", i, want, got[i])
		}
	}
}

func TestProjectileCooldownAndLifetime(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Smoothing = 0
	cfg.Projectile.Lifetime = 0.5
	g := New(cfg, NewDiscardLogger())

	s := frame()
	s.SetKey(rl.KeyLeftShift, true)
	s.LeftDown = true

	s.Time = 1.0
	g.Step(s, 0.016)
	s.Time = 1.05
	g.Step(s, 0.016)
	if n := g.Status().Projectiles; n != 1 {
		t.Errorf("Expected 1 projectile inside cooldown, got %d", n)
	}

	s.Time = 1.2
	g.Step(s, 0.016)
	if n := g.Status().Projectiles; n != 2 {
		t.Errorf("Expected 2 projectiles, got %d", n)
	}

	idle := frame()
	g.Step(idle, 0.6)
	if n := g.Status().Projectiles; n != 0 {
		t.Errorf("Expected projectiles to expire, got %d", n)
	}
}

func TestProjectileSpawnsAlongRay(t *testing.T) {
	cfg := config.Default()
	cfg.Camera.Smoothing = 0
	cfg.Projectile.FromCenter = true
	g := New(cfg, NewDiscardLogger())

	s := frame()
	s.SetKey(rl.KeyLeftShift, true)
	s.LeftDown = true
	s.Time = 1
	g.Step(s, 0)

	var pos rl.Vector3
	projectileQuery.Each(g.App.World, func(e *donburi.Entry) {
		pos = engine.TransformComponent.Get(e).Translation
	})
	want := rl.Vector3{Y: 2, Z: 4 - 10}
	if rl.Vector3Distance(pos, want) > 1e-3 {
		t.Errorf("Expected projectile at %v, got %v", want, pos)
	}
}

func TestDragAcrossHudKeepsDragging(t *testing.T) {
	g, logs := newTestGame(t)

	start := cubeCenter(g, 7)
	g.sel.Update(selection.Frame{LeftDown: true, Hit: picking.Hit{Index: 7, Point: start}, HitOK: true})

	// Button 0 sits under this cursor position.
	button := rl.Vector3Add(g.pose.Position, rl.Vector3Add(hudPanelOffset, rl.Vector3{X: -0.03, Y: -0.03, Z: 0.0001}))
	s := frame()
	s.Cursor = screenOf(g, button)
	s.LeftDown = true
	s.SetKey(rl.KeyLeftAlt, true)

	for i := 0; i < 3; i++ {
		g.Step(s, 0.016)
		if g.sel.State() != selection.Dragging {
			t.Fatalf("frame %d: expected dragging over the panel, got %v", i, g.sel.State())
		}
	}
	if strings.Contains(logs.String(), "selected ui") {
		t.Errorf("Expected no button click during a drag, got %q", logs.String())
	}
	if g.Status().LastButton != -1 {
		t.Errorf("Expected no last button, got %d", g.Status().LastButton)
	}

	g.Step(frame(), 0.016)
	if g.sel.State() != selection.Idle {
		t.Errorf("Expected idle after release, got %v", g.sel.State())
	}
}

func TestJogFailureLogsOnce(t *testing.T) {
	g, logs := newTestGame(t)
	g.solver.MaxIterations = 0
	before := g.arm.JointPositions()

	s := frame()
	s.SetKey(rl.KeyX, true)
	for i := 0; i < 3; i++ {
		g.Step(s, 0.02)
	}
	if n := strings.Count(logs.String(), "jog "); n != 1 {
		t.Errorf("Expected one jog failure log, got %d in %q", n, logs.String())
	}
	after := g.arm.JointPositions()
	for i := range before {
		if after[i] != before[i] {
			t.Errorf("Expected joint %d unchanged after a failed jog, got %v want %v", i, after[i], before[i])
		}
	}

	g.Step(frame(), 0.02)
	g.Step(s, 0.02)
	if n := strings.Count(logs.String(), "jog "); n != 2 {
		t.Errorf("Expected a second log after releasing the key, got %d", n)
	}
}
