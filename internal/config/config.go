// Package config loads the demo settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid value")

type Window struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
}

type Camera struct {
	Preset      string  `yaml:"preset"`     // fps | isometric
	Projection  string  `yaml:"projection"` // perspective | orthographic
	FovDegrees  float32 `yaml:"fov_degrees"`
	OrthoHeight float32 `yaml:"ortho_height"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Smoothing   float32 `yaml:"smoothing"`
	MoveSpeed   float32 `yaml:"move_speed"`
	LookSpeed   float32 `yaml:"look_sensitivity"`
}

type Projectile struct {
	FromCenter  bool    `yaml:"from_center"`
	LegacyAim   bool    `yaml:"legacy_aim"`
	LaunchSpeed float32 `yaml:"launch_speed"`
	SpawnOffset float32 `yaml:"spawn_offset"`
	Radius      float32 `yaml:"radius"`
	Cooldown    float64 `yaml:"cooldown"`
	Lifetime    float32 `yaml:"lifetime"`
}

type Arm struct {
	DefaultAngles []float32 `yaml:"default_angles"`
	DragSpeed     float32   `yaml:"drag_speed"`
	JogSpeed      float32   `yaml:"jog_speed"`
}

type Hud struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	Window     Window     `yaml:"window"`
	Camera     Camera     `yaml:"camera"`
	Projectile Projectile `yaml:"projectile"`
	Arm        Arm        `yaml:"arm"`
	Hud        Hud        `yaml:"hud"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "armpick", TargetFPS: 60},
		Camera: Camera{
			Preset:      "fps",
			Projection:  "perspective",
			FovDegrees:  45,
			OrthoHeight: 10,
			Near:        0.1,
			Far:         1000,
			Smoothing:   0.25,
			MoveSpeed:   2.5,
			LookSpeed:   0.1,
		},
		Projectile: Projectile{
			LaunchSpeed: 20,
			SpawnOffset: 10,
			Radius:      0.1,
			Cooldown:    0.15,
			Lifetime:    5,
		},
		Arm: Arm{
			DefaultAngles: []float32{0.2, 0.2, 0, -1.5, 0, -0.3, 0},
			DragSpeed:     3,
			JogSpeed:      1,
		},
		Hud: Hud{Enabled: true},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	var out Config
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		out = c
		out.Arm.DefaultAngles = append([]float32(nil), c.Arm.DefaultAngles...)
	}
	return out
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Camera.Preset != "fps" && c.Camera.Preset != "isometric":
		return fmt.Errorf("%w: camera preset %q", ErrInvalid, c.Camera.Preset)
	case c.Camera.Projection != "perspective" && c.Camera.Projection != "orthographic":
		return fmt.Errorf("%w: camera projection %q", ErrInvalid, c.Camera.Projection)
	case c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalid, c.Camera.FovDegrees)
	case c.Camera.OrthoHeight <= 0:
		return fmt.Errorf("%w: ortho height %v", ErrInvalid, c.Camera.OrthoHeight)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip range %v..%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.Smoothing < 0:
		return fmt.Errorf("%w: smoothing %v", ErrInvalid, c.Camera.Smoothing)
	case c.Projectile.Cooldown < 0 || c.Projectile.LaunchSpeed < 0:
		return fmt.Errorf("%w: projectile cooldown %v speed %v", ErrInvalid, c.Projectile.Cooldown, c.Projectile.LaunchSpeed)
	case len(c.Arm.DefaultAngles) != 7:
		return fmt.Errorf("%w: arm needs 7 default angles, got %d", ErrInvalid, len(c.Arm.DefaultAngles))
	case c.Arm.DragSpeed <= 0:
		return fmt.Errorf("%w: drag speed %v", ErrInvalid, c.Arm.DragSpeed)
	}
	return nil
}
