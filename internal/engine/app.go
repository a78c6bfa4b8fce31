package engine

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// System is one step of the frame. Systems read and write the world; dt is
// the frame time in seconds.
type System func(w donburi.World, dt float32)

type namedSystem struct {
	name string
	run  System
}

// App owns the entity world and runs systems in registration order.
// Startup systems run once before the first tick.
type App struct {
	World   donburi.World
	startup []namedSystem
	update  []namedSystem
	started bool
}

func NewApp() *App {
	return &App{
		World:   donburi.NewWorld(),
		startup: make([]namedSystem, 0),
		update:  make([]namedSystem, 0),
	}
}

// AddStartupSystem registers a system that runs once, on the first Start or Tick.
func (a *App) AddStartupSystem(name string, s System) *App {
	if s == nil {
		return a
	}
	a.startup = append(a.startup, namedSystem{name: name, run: s})
	return a
}

// AddSystem registers a per-frame system.
func (a *App) AddSystem(name string, s System) *App {
	if s == nil {
		return a
	}
	a.update = append(a.update, namedSystem{name: name, run: s})
	return a
}

func (a *App) Start() {
	if a.started {
		return
	}
	for _, s := range a.startup {
		s.run(a.World, 0)
	}
	events.ProcessAllEvents(a.World)
	a.started = true
}

// Tick runs every update system once, then delivers queued events.
func (a *App) Tick(dt float32) {
	a.Start()
	for _, s := range a.update {
		s.run(a.World, dt)
	}
	events.ProcessAllEvents(a.World)
}

// Systems lists the update systems in run order.
func (a *App) Systems() []string {
	names := make([]string, len(a.update))
	for i, s := range a.update {
		names[i] = s.name
	}
	return names
}
