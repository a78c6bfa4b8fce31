// Package camera implements the fly camera rig: position and yaw/pitch
// drivers with eased smoothing toward the driven target.
package camera

import (
	"armpick/internal/input"
	"armpick/internal/picking"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Preset is a starting orientation and height.
type Preset struct {
	Name   string
	Yaw    float32
	Pitch  float32
	Height float32
}

var (
	FPS       = Preset{Name: "fps", Yaw: 0, Pitch: 0, Height: 2}
	Isometric = Preset{Name: "isometric", Yaw: 0, Pitch: -60, Height: 20}
)

// PresetByName returns FPS for any name other than "isometric".
func PresetByName(name string) Preset {
	if name == Isometric.Name {
		return Isometric
	}
	return FPS
}

type Rig struct {
	MoveSpeed       float32
	LookSensitivity float32
	// Smoothing is the time in seconds to reach a new target. Zero snaps.
	Smoothing float32

	targetPos rl.Vector3
	yaw       float32
	pitch     float32

	pos rl.Vector3
	rot rl.Quaternion

	tweenX, tweenY, tweenZ *gween.Tween
	tweenRot               *gween.Tween
	rotFrom, rotTo         rl.Quaternion
	dirty                  bool
}

func NewRig(p Preset, smoothing float32) *Rig {
	r := &Rig{
		MoveSpeed:       2.5,
		LookSensitivity: 0.1,
		Smoothing:       smoothing,
	}
	r.Reset(p)
	return r
}

// Reset jumps to the preset without smoothing.
func (r *Rig) Reset(p Preset) {
	r.targetPos = rl.Vector3{X: 0, Y: p.Height, Z: 4}
	r.yaw = wrapDegrees(p.Yaw)
	r.pitch = clampPitch(p.Pitch)
	r.pos = r.targetPos
	r.rot = r.targetRotation()
	r.tweenX, r.tweenY, r.tweenZ, r.tweenRot = nil, nil, nil, nil
	r.dirty = false
}

// Translate moves the position driver by delta.
func (r *Rig) Translate(delta rl.Vector3) {
	if delta == (rl.Vector3{}) {
		return
	}
	r.targetPos = rl.Vector3Add(r.targetPos, delta)
	r.dirty = true
}

// RotateYawPitch turns the yaw/pitch driver by the given degrees.
func (r *Rig) RotateYawPitch(dyaw, dpitch float32) {
	if dyaw == 0 && dpitch == 0 {
		return
	}
	r.yaw = wrapDegrees(r.yaw + dyaw)
	r.pitch = clampPitch(r.pitch + dpitch)
	r.dirty = true
}

func (r *Rig) YawPitch() (float32, float32) {
	return r.yaw, r.pitch
}

func (r *Rig) Target() picking.Isometry {
	return picking.NewIsometry(r.targetPos, r.targetRotation())
}

// Drive applies one frame of keyboard and mouse input to the drivers.
func (r *Rig) Drive(s input.Snapshot, dt float32) {
	rot := r.targetRotation()
	forward := rl.Vector3RotateByQuaternion(rl.Vector3{Z: -1}, rot)
	right := rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, rot)
	up := rl.Vector3{Y: 1}

	move := rl.Vector3Scale(forward, s.Axis(rl.KeyW, rl.KeyS))
	move = rl.Vector3Add(move, rl.Vector3Scale(right, s.Axis(rl.KeyD, rl.KeyA)))
	move = rl.Vector3Add(move, rl.Vector3Scale(up, s.Axis(rl.KeyE, rl.KeyQ)))
	if rl.Vector3LengthSqr(move) > 0 {
		move = rl.Vector3Normalize(move)
		r.Translate(rl.Vector3Scale(move, r.MoveSpeed*s.SpeedModifier()*dt))
	}

	if s.RightDown {
		r.RotateYawPitch(
			-r.LookSensitivity*s.MouseDelta.X*0.5,
			-r.LookSensitivity*s.MouseDelta.Y*0.5,
		)
	}
}

// Update advances the smoothing by dt seconds.
func (r *Rig) Update(dt float32) {
	if r.dirty {
		r.retarget()
	}
	if r.tweenX != nil {
		r.pos.X = step(&r.tweenX, dt, r.targetPos.X)
		r.pos.Y = step(&r.tweenY, dt, r.targetPos.Y)
		r.pos.Z = step(&r.tweenZ, dt, r.targetPos.Z)
	}
	if r.tweenRot != nil {
		f, done := r.tweenRot.Update(dt)
		r.rot = rl.QuaternionSlerp(r.rotFrom, r.rotTo, f)
		if done {
			r.rot = r.rotTo
			r.tweenRot = nil
		}
	}
}

func (r *Rig) retarget() {
	r.dirty = false
	to := r.targetRotation()
	if r.Smoothing <= 0 {
		r.pos = r.targetPos
		r.rot = to
		r.tweenX, r.tweenY, r.tweenZ, r.tweenRot = nil, nil, nil, nil
		return
	}
	r.tweenX = gween.New(r.pos.X, r.targetPos.X, r.Smoothing, ease.OutCubic)
	r.tweenY = gween.New(r.pos.Y, r.targetPos.Y, r.Smoothing, ease.OutCubic)
	r.tweenZ = gween.New(r.pos.Z, r.targetPos.Z, r.Smoothing, ease.OutCubic)
	r.rotFrom, r.rotTo = r.rot, to
	r.tweenRot = gween.New(0, 1, r.Smoothing, ease.OutCubic)
}

func step(tw **gween.Tween, dt, end float32) float32 {
	if *tw == nil {
		return end
	}
	v, done := (*tw).Update(dt)
	if done {
		*tw = nil
		return end
	}
	return v
}

// Final is the smoothed camera transform.
func (r *Rig) Final() picking.Isometry {
	return picking.NewIsometry(r.pos, r.rot)
}

func (r *Rig) Pose(proj picking.Projection) picking.Pose {
	return picking.Pose{Position: r.pos, Rotation: r.rot, Projection: proj}
}

// Camera3D converts the smoothed transform for raylib drawing.
func (r *Rig) Camera3D(proj picking.Projection) rl.Camera3D {
	pose := r.Pose(proj)
	cam := rl.Camera3D{
		Position:   r.pos,
		Target:     rl.Vector3Add(r.pos, pose.Forward()),
		Up:         pose.Up(),
		Fovy:       proj.FovY * rl.Rad2deg,
		Projection: rl.CameraPerspective,
	}
	if proj.Kind == picking.Orthographic {
		cam.Fovy = proj.Height
		cam.Projection = rl.CameraOrthographic
	}
	return cam
}

func (r *Rig) targetRotation() rl.Quaternion {
	qYaw := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, r.yaw*rl.Deg2rad)
	qPitch := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, r.pitch*rl.Deg2rad)
	return rl.QuaternionNormalize(rl.QuaternionMultiply(qYaw, qPitch))
}

func wrapDegrees(d float32) float32 {
	w := math32.Mod(d, 360)
	if w < 0 {
		w += 360
	}
	return w
}

func clampPitch(p float32) float32 {
	if p > 90 {
		return 90
	}
	if p < -90 {
		return -90
	}
	return p
}
