package game

import (
	"armpick/internal/components"
	"armpick/internal/engine"
	"armpick/internal/kinematics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
)

var (
	hudPanelOffset   = rl.Vector3{X: -0.09, Y: -0.03, Z: -0.2}
	buttonHalfExtent = rl.Vector3{X: 0.005, Y: 0.01, Z: 0.00005}
	cubeHalfExtent   = rl.Vector3{X: 0.1, Y: 0.1, Z: 0.1}
)

const hudGrid = 4

func (g *Game) setupScene(w donburi.World, _ float32) {
	ground := w.Create(engine.TransformComponent, components.ModelRendererComponent)
	components.ModelRendererComponent.SetValue(w.Entry(ground),
		components.NewModelRenderer(components.MeshPlane, rl.Vector3{X: 20, Y: 1, Z: 20}, rl.White))

	g.cameraEntity = w.Create(engine.TransformComponent, components.CameraComponent, components.ShooterComponent)
	entry := w.Entry(g.cameraEntity)
	cam := components.NewCamera()
	cam.Projection = projectionFromConfig(g.cfg.Camera)
	components.CameraComponent.SetValue(entry, cam)
	components.ShooterComponent.SetValue(entry, components.NewShooter(g.cfg.Projectile.Cooldown))
	final := g.rig.Final()
	engine.TransformComponent.SetValue(entry, engine.TransformAt(final.Translation, final.Rotation))
}

// setupHud hangs a panel of buttons in front of the camera.
func (g *Game) setupHud(w donburi.World, _ float32) {
	if !g.cfg.Hud.Enabled {
		return
	}
	panel := w.Create(engine.TransformComponent, components.HudPanelComponent, components.ModelRendererComponent)
	pe := w.Entry(panel)
	engine.TransformComponent.SetValue(pe, engine.TransformAt(hudPanelOffset, rl.QuaternionIdentity()))
	components.ModelRendererComponent.SetValue(pe,
		components.NewModelRenderer(components.MeshCube, rl.Vector3{X: 0.1, Y: 0.1, Z: 0.0001}, rl.Green))
	engine.SetParent(w, panel, g.cameraEntity)

	for j := 1; j <= hudGrid; j++ {
		for i := 1; i <= hudGrid; i++ {
			index := len(g.buttons)
			local := rl.Vector3{X: float32(i)*0.02 - 0.05, Y: float32(j)*0.02 - 0.05, Z: 0.0001}

			b := w.Create(engine.TransformComponent, components.UIButtonComponent,
				components.BoxColliderComponent, components.ModelRendererComponent)
			be := w.Entry(b)
			engine.TransformComponent.SetValue(be, engine.TransformAt(local, rl.QuaternionIdentity()))
			components.BoxColliderComponent.SetValue(be, components.NewBoxCollider(buttonHalfExtent))
			components.ModelRendererComponent.SetValue(be, components.NewModelRenderer(
				components.MeshCube, rl.Vector3Scale(buttonHalfExtent, 2), rl.Red))

			components.UIButtonComponent.SetValue(be, components.NewUIButton(index))
			btn := components.UIButtonComponent.Get(be)
			btn.OnClick.AddListener(func(c components.ButtonClick) {
				ButtonClicked.Publish(w, c)
			})

			engine.SetParent(w, b, panel)
			g.buttons = append(g.buttons, b)
		}
	}
}

// setupArm spawns one pickable proxy cube per arm node.
func (g *Game) setupArm(w donburi.World, _ float32) {
	world := g.arm.UpdateTransforms()
	for i := range world {
		e := w.Create(engine.TransformComponent, components.IkCubeComponent,
			components.BoxColliderComponent, components.ModelRendererComponent)
		entry := w.Entry(e)
		components.IkCubeComponent.SetValue(entry, components.IkCube{Joint: i})
		components.BoxColliderComponent.SetValue(entry, components.NewBoxCollider(cubeHalfExtent))
		r := components.NewModelRenderer(components.MeshCube, rl.Vector3Scale(cubeHalfExtent, 2), rl.Red)
		r.Outline = true
		components.ModelRendererComponent.SetValue(entry, r)

		iso := kinematics.ProxyTransform(i, world[i])
		engine.TransformComponent.SetValue(entry, engine.TransformAt(iso.Translation, iso.Rotation))
		g.cubes = append(g.cubes, e)
	}
}
