// Package game wires the arm demo together: the camera rig, cursor picking
// of arm joints and HUD buttons, drag goals for the IK solver, and the
// projectile launcher.
package game

import (
	"io"
	"log"
	"os"

	"armpick/internal/camera"
	"armpick/internal/components"
	"armpick/internal/config"
	"armpick/internal/engine"
	"armpick/internal/input"
	"armpick/internal/kinematics"
	"armpick/internal/picking"
	"armpick/internal/selection"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ButtonClicked is published once per HUD button click.
var ButtonClicked = events.NewEventType[components.ButtonClick]()

// dragGoal is where the proxy cube of a node is being pulled to.
type dragGoal struct {
	node   int
	point  rl.Vector3
	active bool
}

// Status is what the overlay panel shows.
type Status struct {
	Selection   selection.State
	Joint       int
	LastButton  int
	Projectiles int
	Preset      string
	Projection  string
}

type Game struct {
	App *engine.App

	cfg    config.Config
	log    *log.Logger
	rig    *camera.Rig
	arm    *kinematics.Chain
	solver kinematics.Solver
	sel    selection.Machine
	goal   dragGoal

	input input.Snapshot
	pose  picking.Pose
	ray   picking.Ray
	rayOK bool

	cameraEntity  donburi.Entity
	cubes         []donburi.Entity
	buttons       []donburi.Entity
	pressedButton int
	hudConsumed   bool
	jogFailed     bool

	status Status
	models *components.Models
}

// New builds the demo world. No window is needed until Run.
func New(cfg config.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(os.Stderr, "armpick: ", log.LstdFlags)
	}
	cfg = cfg.Clone()

	g := &Game{
		App:           engine.NewApp(),
		cfg:           cfg,
		log:           logger,
		rig:           camera.NewRig(camera.PresetByName(cfg.Camera.Preset), cfg.Camera.Smoothing),
		arm:           kinematics.NewArm(),
		solver:        kinematics.NewSolver(),
		pressedButton: -1,
		status:        Status{Joint: -1, LastButton: -1},
	}
	g.rig.MoveSpeed = cfg.Camera.MoveSpeed
	g.rig.LookSensitivity = cfg.Camera.LookSpeed
	if err := g.arm.SetRestPose(cfg.Arm.DefaultAngles); err != nil {
		g.log.Printf("arm rest pose: %v, keeping built-in pose", err)
	}

	g.App.
		AddStartupSystem("scene", g.setupScene).
		AddStartupSystem("hud", g.setupHud).
		AddStartupSystem("arm", g.setupArm).
		AddSystem("camera", g.cameraSystem).
		AddSystem("hud", g.hudSystem).
		AddSystem("select", g.selectSystem).
		AddSystem("drag", g.dragSystem).
		AddSystem("jog", g.jogSystem).
		AddSystem("arm sync", g.armSyncSystem).
		AddSystem("projectiles", g.projectileSystem).
		AddSystem("status", g.statusSystem)

	ButtonClicked.Subscribe(g.App.World, g.onButtonClicked)
	return g
}

// NewDiscardLogger returns a logger that drops everything.
func NewDiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func projectionFromConfig(c config.Camera) picking.Projection {
	p := picking.Projection{
		Kind:   picking.Perspective,
		FovY:   c.FovDegrees * rl.Deg2rad,
		Height: c.OrthoHeight,
		Near:   c.Near,
		Far:    c.Far,
	}
	if c.Projection == "orthographic" {
		p.Kind = picking.Orthographic
	}
	return p
}

// Step runs one frame of simulation with the given input.
func (g *Game) Step(s input.Snapshot, dt float32) {
	g.input = s
	g.App.Tick(dt)
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(g.cfg.Window.Width, g.cfg.Window.Height, g.cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.cfg.Window.TargetFPS)

	// Models need the GL context.
	g.models = components.LoadModels()
	defer g.models.Unload()
	applyStyle()

	g.App.Start()
	g.log.Printf("started: %d nodes, camera %s/%s", g.arm.Len(), g.cfg.Camera.Preset, g.projection(g.App.World).Kind)

	for !rl.WindowShouldClose() {
		g.Step(input.Poll(), rl.GetFrameTime())
		g.Draw()
	}
}
