// Package picking turns a cursor position into a world-space ray and finds
// the nearest pickable shape under it. Everything here is a pure function of
// plain values: the camera pose, the viewport and a slice of candidates.
package picking

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Lens defaults used when a Projection leaves a field unset.
const (
	DefaultNear = float32(0.1)
	DefaultFar  = float32(1000.0)
	DefaultFovY = float32(45 * rl.Deg2rad) // radians
)

// Ray is an origin plus a direction. The direction need not be unit length;
// times of impact are measured in multiples of it.
type Ray struct {
	Origin rl.Vector3
	Dir    rl.Vector3
}

// NewRay creates a ray from origin along dir.
func NewRay(origin, dir rl.Vector3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// PointAt returns Origin + Dir*t.
func (r Ray) PointAt(t float32) rl.Vector3 {
	return rl.Vector3Add(r.Origin, rl.Vector3Scale(r.Dir, t))
}

// Normalized returns the same ray with a unit direction.
func (r Ray) Normalized() Ray {
	return Ray{Origin: r.Origin, Dir: rl.Vector3Normalize(r.Dir)}
}

// ProjectionKind selects a perspective or orthographic lens.
type ProjectionKind int

const (
	Perspective ProjectionKind = iota
	Orthographic
)

func (k ProjectionKind) String() string {
	if k == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Projection describes the camera lens. FovY (radians) is used for
// perspective, Height (world units) for orthographic.
type Projection struct {
	Kind   ProjectionKind
	FovY   float32
	Height float32
	Near   float32
	Far    float32
}

func (p Projection) withDefaults() Projection {
	if p.Near <= 0 {
		p.Near = DefaultNear
	}
	if p.Far <= p.Near {
		p.Far = p.Near + DefaultFar
	}
	if p.Kind == Perspective && p.FovY <= 0 {
		p.FovY = DefaultFovY
	}
	if p.Kind == Orthographic && p.Height <= 0 {
		p.Height = 10
	}
	return p
}

// nearHalfExtents is half the width and height of the near plane.
func (p Projection) nearHalfExtents(aspect float32) (float32, float32) {
	p = p.withDefaults()
	if p.Kind == Orthographic {
		halfH := p.Height / 2
		return halfH * aspect, halfH
	}
	halfH := math32.Tan(p.FovY/2) * p.Near
	return halfH * aspect, halfH
}

// Pose is the camera state the picker reads each tick.
type Pose struct {
	Position   rl.Vector3
	Rotation   rl.Quaternion
	Projection Projection
}

// Forward is the camera's -Z axis in world space.
func (p Pose) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Z: -1}, unitOrIdentity(p.Rotation))
}

// Up is the camera's +Y axis in world space.
func (p Pose) Up() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, unitOrIdentity(p.Rotation))
}

// Isometry is the camera-to-world transform.
func (p Pose) Isometry() Isometry {
	return NewIsometry(p.Position, p.Rotation)
}

// Viewport is the window size in pixels.
type Viewport struct {
	Width  float32
	Height float32
}

// Aspect returns Width/Height, or false for an empty viewport.
func (v Viewport) Aspect() (float32, bool) {
	if !(v.Width > 0) || !(v.Height > 0) {
		return 0, false
	}
	return v.Width / v.Height, true
}

// Clamp keeps the cursor inside the window.
func (v Viewport) Clamp(cursor rl.Vector2) rl.Vector2 {
	return rl.Vector2{
		X: clamp(cursor.X, 0, v.Width),
		Y: clamp(cursor.Y, 0, v.Height),
	}
}

// NDC maps a pixel position to normalized device coordinates in [-1, 1].
// Screen Y grows downward, NDC Y grows upward.
func (v Viewport) NDC(cursor rl.Vector2) rl.Vector2 {
	c := v.Clamp(cursor)
	return rl.Vector2{
		X: 2*c.X/v.Width - 1,
		Y: 1 - 2*c.Y/v.Height,
	}
}

// ScreenRay builds the world-space ray under the cursor. The origin is the
// point on the near plane under the cursor; for perspective the direction
// runs from the camera position through that point, for orthographic it is
// the camera forward axis. Returns false for an empty viewport or a
// degenerate result.
func ScreenRay(cursor rl.Vector2, vp Viewport, pose Pose) (Ray, bool) {
	aspect, ok := vp.Aspect()
	if !ok {
		return Ray{}, false
	}
	proj := pose.Projection.withDefaults()
	halfW, halfH := proj.nearHalfExtents(aspect)
	ndc := vp.NDC(cursor)

	cam := pose.Isometry()
	origin := cam.TransformPoint(rl.Vector3{X: ndc.X * halfW, Y: ndc.Y * halfH, Z: -proj.Near})

	var dir rl.Vector3
	if proj.Kind == Orthographic {
		dir = pose.Forward()
	} else {
		dir = rl.Vector3Subtract(origin, pose.Position)
	}

	if !finite(origin) || !finite(dir) || rl.Vector3Length(dir) == 0 {
		return Ray{}, false
	}
	return Ray{Origin: origin, Dir: dir}, true
}

// CursorDirection is the older hand-rolled aim: an aspect-scaled offset in
// camera space rotated by the camera orientation. It ignores the field of
// view. Projectiles can opt into it; picking always uses ScreenRay.
func CursorDirection(cursor rl.Vector2, vp Viewport, pose Pose) (rl.Vector3, bool) {
	aspect, ok := vp.Aspect()
	if !ok {
		return rl.Vector3{}, false
	}
	c := vp.Clamp(cursor)
	local := rl.Vector3Normalize(rl.Vector3{
		X: (c.X/vp.Width - 0.5) * aspect,
		Y: 0.5 - c.Y/vp.Height,
		Z: -1,
	})
	return rl.Vector3RotateByQuaternion(local, unitOrIdentity(pose.Rotation)), true
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func finite(v rl.Vector3) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
