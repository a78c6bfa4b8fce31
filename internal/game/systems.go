package game

import (
	"armpick/internal/components"
	"armpick/internal/engine"
	"armpick/internal/kinematics"
	"armpick/internal/picking"
	"armpick/internal/selection"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var projectileQuery = donburi.NewQuery(filter.Contains(components.ProjectileComponent, engine.TransformComponent))

func (g *Game) viewport() picking.Viewport {
	return picking.Viewport{Width: g.input.Width, Height: g.input.Height}
}

// projection is the lens of the camera entity.
func (g *Game) projection(w donburi.World) picking.Projection {
	return components.CameraComponent.Get(w.Entry(g.cameraEntity)).Projection
}

// cameraSystem drives the rig and caches this frame's pose and cursor ray.
func (g *Game) cameraSystem(w donburi.World, dt float32) {
	g.rig.Drive(g.input, dt)
	g.rig.Update(dt)

	final := g.rig.Final()
	engine.TransformComponent.SetValue(w.Entry(g.cameraEntity), engine.TransformAt(final.Translation, final.Rotation))

	g.pose = g.rig.Pose(g.projection(w))
	g.ray, g.rayOK = picking.ScreenRay(g.input.Cursor, g.viewport(), g.pose)
}

func (g *Game) candidates(w donburi.World, entities []donburi.Entity) []picking.Candidate {
	out := make([]picking.Candidate, 0, len(entities))
	for _, e := range entities {
		entry := w.Entry(e)
		out = append(out, picking.Candidate{
			Transform: engine.WorldTransform(w, entry).Isometry(),
			Shape:     components.BoxColliderComponent.Get(entry).Shape(),
		})
	}
	return out
}

// hudSystem picks HUD buttons while the left button is held. A hit
// consumes the click for this frame. Drags pass over the panel.
func (g *Game) hudSystem(w donburi.World, _ float32) {
	g.hudConsumed = false
	if len(g.buttons) == 0 {
		return
	}
	dragging := g.input.DragModifier() || g.sel.State() == selection.Dragging
	if !g.input.LeftDown || g.input.Shift() || dragging || !g.rayOK {
		if g.pressedButton >= 0 {
			for _, b := range g.buttons {
				components.UIButtonComponent.Get(w.Entry(b)).Release()
			}
			g.pressedButton = -1
		}
		return
	}

	hit, ok := picking.Pick(g.candidates(w, g.buttons), g.ray)
	if !ok {
		if g.input.LeftPressed {
			g.log.Println("No hit..")
		}
		return
	}

	g.hudConsumed = true
	if hit.Index != g.pressedButton {
		if g.pressedButton >= 0 {
			components.UIButtonComponent.Get(w.Entry(g.buttons[g.pressedButton])).Release()
		}
		components.UIButtonComponent.Get(w.Entry(g.buttons[hit.Index])).Click(hit.Point)
		g.pressedButton = hit.Index
	}
}

func (g *Game) onButtonClicked(_ donburi.World, c components.ButtonClick) {
	g.log.Printf("selected ui: %d at: %v", c.Index, c.Point)
	g.status.LastButton = c.Index
}

// selectSystem selects arm cubes and turns Alt-drags into drag goals.
func (g *Game) selectSystem(w donburi.World, _ float32) {
	f := selection.Frame{
		LeftDown:     g.input.LeftDown && !g.input.Shift() && !g.hudConsumed,
		DragModifier: g.input.DragModifier(),
		Ray:          g.ray,
		CameraPos:    g.pose.Position,
	}
	if !g.rayOK {
		f.LeftDown = false
	}
	if f.LeftDown && !f.DragModifier {
		f.Hit, f.HitOK = picking.Pick(g.candidates(w, g.cubes), g.ray)
	}

	target, ok := g.sel.Update(f)
	if !ok {
		return
	}
	node := components.IkCubeComponent.Get(w.Entry(g.cubes[target.Index])).Joint
	g.goal = dragGoal{node: node, point: target.Point, active: true}
}

// dragSystem pulls the goal node toward its target at the drag speed.
func (g *Game) dragSystem(_ donburi.World, dt float32) {
	if !g.goal.active {
		return
	}
	node := g.goal.node
	current, err := g.arm.WorldTransform(node)
	if err != nil {
		g.goal = dragGoal{}
		return
	}
	proxy := kinematics.ProxyTransform(node, current).Translation
	next, arrived := kinematics.StepToward(proxy, g.goal.point, g.cfg.Arm.DragSpeed*dt)

	if err := g.solver.Solve(g.arm, node, kinematics.NodeTarget(node, next)); err != nil {
		g.log.Printf("drag %s: %v", g.arm.Node(node).Name, err)
		g.goal = dragGoal{}
		return
	}
	if arrived {
		g.goal.active = false
	}
}

// jogSystem moves the end effector with X/Y/Z (Shift reverses) and resets with R.
func (g *Game) jogSystem(_ donburi.World, dt float32) {
	if g.input.KeyDown(rl.KeyR) {
		g.arm.Reset()
		g.goal = dragGoal{}
		return
	}

	sign := float32(1)
	if g.input.Shift() {
		sign = -1
	}
	var move rl.Vector3
	if g.input.KeyDown(rl.KeyX) {
		move.X = sign
	}
	if g.input.KeyDown(rl.KeyY) {
		move.Y = sign
	}
	if g.input.KeyDown(rl.KeyZ) {
		move.Z = sign
	}
	if move == (rl.Vector3{}) {
		g.jogFailed = false
		return
	}

	end := g.arm.Len() - 1
	current, err := g.arm.WorldTransform(end)
	if err != nil {
		return
	}
	target := rl.Vector3Add(current.Translation, rl.Vector3Scale(move, g.cfg.Arm.JogSpeed*dt))
	// An unreachable jog target leaves the arm where it is.
	if err := g.solver.Solve(g.arm, end, target); err != nil {
		if !g.jogFailed {
			g.log.Printf("jog %s: %v", g.arm.Node(end).Name, err)
		}
		g.jogFailed = true
		return
	}
	g.jogFailed = false
}

// armSyncSystem copies node transforms onto the proxy cubes.
func (g *Game) armSyncSystem(w donburi.World, _ float32) {
	world := g.arm.UpdateTransforms()
	for _, e := range g.cubes {
		entry := w.Entry(e)
		i := components.IkCubeComponent.Get(entry).Joint
		if i < 0 || i >= len(world) {
			continue
		}
		iso := kinematics.ProxyTransform(i, world[i])
		engine.TransformComponent.SetValue(entry, engine.TransformAt(iso.Translation, iso.Rotation))
	}
}

// projectileSystem fires on Shift+left click and moves live projectiles.
func (g *Game) projectileSystem(w donburi.World, dt float32) {
	if g.input.Shift() && g.input.LeftDown {
		g.fire(w)
	}

	var expired []donburi.Entity
	projectileQuery.Each(w, func(entry *donburi.Entry) {
		p := components.ProjectileComponent.Get(entry)
		tr := engine.TransformComponent.Get(entry)
		next, alive := p.Step(tr.Translation, dt)
		tr.Translation = next
		if !alive {
			expired = append(expired, entry.Entity())
		}
	})
	for _, e := range expired {
		w.Remove(e)
	}
}

func (g *Game) fire(w donburi.World) {
	shooter := components.ShooterComponent.Get(w.Entry(g.cameraEntity))
	if !shooter.TryShoot(g.input.Time) {
		return
	}

	dir := g.pose.Forward()
	switch {
	case g.cfg.Projectile.FromCenter:
	case g.cfg.Projectile.LegacyAim:
		if d, ok := picking.CursorDirection(g.input.Cursor, g.viewport(), g.pose); ok {
			dir = d
		}
	case g.rayOK:
		dir = g.ray.Dir
	}
	dir = rl.Vector3Normalize(dir)
	spawn := rl.Vector3Add(g.pose.Position, rl.Vector3Scale(dir, g.cfg.Projectile.SpawnOffset))

	e := w.Create(engine.TransformComponent, components.ProjectileComponent, components.ModelRendererComponent)
	entry := w.Entry(e)
	engine.TransformComponent.SetValue(entry, engine.TransformAt(spawn, rl.QuaternionIdentity()))
	components.ProjectileComponent.SetValue(entry, components.Projectile{
		Direction: dir,
		Speed:     g.cfg.Projectile.LaunchSpeed,
		Radius:    g.cfg.Projectile.Radius,
		Lifetime:  g.cfg.Projectile.Lifetime,
	})
	r := g.cfg.Projectile.Radius
	components.ModelRendererComponent.SetValue(entry,
		components.NewModelRenderer(components.MeshSphere, rl.Vector3{X: r, Y: r, Z: r}, rl.Green))
}

func (g *Game) statusSystem(w donburi.World, _ float32) {
	g.status.Selection = g.sel.State()
	g.status.Joint = -1
	if idx, _, ok := g.sel.Selection(); ok && idx < len(g.cubes) {
		g.status.Joint = components.IkCubeComponent.Get(w.Entry(g.cubes[idx])).Joint
	}
	g.status.Projectiles = projectileQuery.Count(w)
	g.status.Preset = g.cfg.Camera.Preset
	g.status.Projection = g.pose.Projection.Kind.String()
}
