package picking

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxToi is the trace distance used for picks: no far clipping.
var MaxToi = math32.Inf(1)

// RayIntersection is a hit in whatever frame the ray was given in.
type RayIntersection struct {
	Toi    float32
	Normal rl.Vector3
}

// Shape is anything that can be ray-tested in its own local frame.
//
// With solid set, a ray starting inside the shape hits at Toi 0 with a zero
// normal. Otherwise the exit point is reported.
type Shape interface {
	CastLocalRay(r Ray, maxToi float32, solid bool) (RayIntersection, bool)
}

// Box is an axis-aligned box centered on the local origin. Half-extents must
// be strictly positive; other values are not checked.
type Box struct {
	HalfExtents rl.Vector3
}

// NewCube creates a box with equal half-extents.
func NewCube(half float32) Box {
	return Box{HalfExtents: rl.Vector3{X: half, Y: half, Z: half}}
}

// CastLocalRay runs the slab test against the box.
func (b Box) CastLocalRay(r Ray, maxToi float32, solid bool) (RayIntersection, bool) {
	if !finite(r.Origin) || !finite(r.Dir) || !finite(b.HalfExtents) {
		return RayIntersection{}, false
	}

	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	enterAxis, exitAxis := -1, -1
	var enterSign, exitSign float32

	for i := 0; i < 3; i++ {
		o := component(r.Origin, i)
		d := component(r.Dir, i)
		h := component(b.HalfExtents, i)

		if d == 0 {
			if o < -h || o > h {
				return RayIntersection{}, false
			}
			continue
		}

		t1 := (-h - o) / d
		t2 := (h - o) / d
		// Entering through the -h face when moving toward +axis
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			enterAxis = i
			enterSign = sign
		}
		if t2 < tmax {
			tmax = t2
			exitAxis = i
			exitSign = -sign
		}
		if tmin > tmax {
			return RayIntersection{}, false
		}
	}

	if tmax < 0 || math32.IsNaN(tmin) || math32.IsNaN(tmax) {
		return RayIntersection{}, false
	}

	if tmin >= 0 {
		if tmin > maxToi {
			return RayIntersection{}, false
		}
		return RayIntersection{Toi: tmin, Normal: axisNormal(enterAxis, enterSign)}, true
	}

	// Origin is inside the box
	if solid {
		return RayIntersection{Toi: 0}, true
	}
	if tmax > maxToi {
		return RayIntersection{}, false
	}
	return RayIntersection{Toi: tmax, Normal: axisNormal(exitAxis, exitSign)}, true
}

// HalfSpace is the solid region on the negative side of a plane through the
// local origin: every p with dot(p, Normal) <= 0.
type HalfSpace struct {
	Normal rl.Vector3
}

// CastLocalRay intersects the ray with the bounding plane.
func (h HalfSpace) CastLocalRay(r Ray, maxToi float32, solid bool) (RayIntersection, bool) {
	n := rl.Vector3Normalize(h.Normal)
	dpos := rl.Vector3Negate(r.Origin)
	dotNormalDpos := rl.Vector3DotProduct(n, dpos)

	if solid && dotNormalDpos > 0 {
		return RayIntersection{Toi: 0}, true
	}

	denom := rl.Vector3DotProduct(n, r.Dir)
	if math32.Abs(denom) < 1e-6 {
		// parallel to the plane
		return RayIntersection{}, false
	}

	t := dotNormalDpos / denom
	if t < 0 || t > maxToi || math32.IsNaN(t) {
		return RayIntersection{}, false
	}

	normal := n
	if denom > 0 {
		normal = rl.Vector3Negate(n)
	}
	return RayIntersection{Toi: t, Normal: normal}, true
}

// Candidate pairs a shape with the transform that places it in the world.
type Candidate struct {
	Transform Isometry
	Shape     Shape
}

// Cast tests a world-space ray against a candidate by moving the ray into
// the candidate's local frame. The returned normal is in world space.
func Cast(c Candidate, r Ray, maxToi float32, solid bool) (RayIntersection, bool) {
	if c.Shape == nil {
		return RayIntersection{}, false
	}
	hit, ok := c.Shape.CastLocalRay(c.Transform.InverseTransformRay(r), maxToi, solid)
	if !ok {
		return RayIntersection{}, false
	}
	hit.Normal = c.Transform.TransformVector(hit.Normal)
	return hit, true
}

func component(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func axisNormal(axis int, sign float32) rl.Vector3 {
	switch axis {
	case 0:
		return rl.Vector3{X: sign}
	case 1:
		return rl.Vector3{Y: sign}
	case 2:
		return rl.Vector3{Z: sign}
	}
	return rl.Vector3{}
}
