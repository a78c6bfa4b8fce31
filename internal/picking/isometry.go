package picking

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Isometry is a rigid transform: rotate, then translate.
type Isometry struct {
	Translation rl.Vector3
	Rotation    rl.Quaternion
}

// Identity returns the identity transform.
func Identity() Isometry {
	return Isometry{Rotation: rl.QuaternionIdentity()}
}

// Translation returns a pure translation.
func Translation(v rl.Vector3) Isometry {
	return Isometry{Translation: v, Rotation: rl.QuaternionIdentity()}
}

// NewIsometry creates a transform from a translation and rotation.
func NewIsometry(translation rl.Vector3, rotation rl.Quaternion) Isometry {
	return Isometry{Translation: translation, Rotation: unitOrIdentity(rotation)}
}

// FaceTowards builds a transform at eye whose local +Z axis points at target.
// When up is parallel to the view direction another up axis is picked.
func FaceTowards(eye, target, up rl.Vector3) Isometry {
	zaxis := rl.Vector3Subtract(target, eye)
	if rl.Vector3Length(zaxis) == 0 {
		return Translation(eye)
	}
	zaxis = rl.Vector3Normalize(zaxis)

	xaxis := rl.Vector3CrossProduct(up, zaxis)
	if rl.Vector3Length(xaxis) < 1e-6 {
		// up is parallel to the view direction
		xaxis = rl.Vector3CrossProduct(rl.Vector3{X: 1}, zaxis)
		if rl.Vector3Length(xaxis) < 1e-6 {
			xaxis = rl.Vector3CrossProduct(rl.Vector3{Z: 1}, zaxis)
		}
	}
	xaxis = rl.Vector3Normalize(xaxis)
	yaxis := rl.Vector3CrossProduct(zaxis, xaxis)

	return Isometry{Translation: eye, Rotation: basisRotation(xaxis, yaxis, zaxis)}
}

// basisRotation returns the rotation taking the unit axes onto the given
// orthonormal, right-handed basis.
func basisRotation(x, y, z rl.Vector3) rl.Quaternion {
	var q rl.Quaternion
	switch trace := x.X + y.Y + z.Z; {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q = rl.Quaternion{W: s / 4, X: (y.Z - z.Y) / s, Y: (z.X - x.Z) / s, Z: (x.Y - y.X) / s}
	case x.X > y.Y && x.X > z.Z:
		s := math32.Sqrt(1+x.X-y.Y-z.Z) * 2
		q = rl.Quaternion{W: (y.Z - z.Y) / s, X: s / 4, Y: (y.X + x.Y) / s, Z: (z.X + x.Z) / s}
	case y.Y > z.Z:
		s := math32.Sqrt(1+y.Y-x.X-z.Z) * 2
		q = rl.Quaternion{W: (z.X - x.Z) / s, X: (y.X + x.Y) / s, Y: s / 4, Z: (z.Y + y.Z) / s}
	default:
		s := math32.Sqrt(1+z.Z-x.X-y.Y) * 2
		q = rl.Quaternion{W: (x.Y - y.X) / s, X: (z.X + x.Z) / s, Y: (z.Y + y.Z) / s, Z: s / 4}
	}
	return rl.QuaternionNormalize(q)
}

func (iso Isometry) rotation() rl.Quaternion {
	return unitOrIdentity(iso.Rotation)
}

// TransformPoint maps a local point to world space.
func (iso Isometry) TransformPoint(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(rl.Vector3RotateByQuaternion(p, iso.rotation()), iso.Translation)
}

// TransformVector rotates a local direction into world space.
func (iso Isometry) TransformVector(v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, iso.rotation())
}

// InverseTransformPoint maps a world point into the local frame.
func (iso Isometry) InverseTransformPoint(p rl.Vector3) rl.Vector3 {
	inv := rl.QuaternionInvert(iso.rotation())
	return rl.Vector3RotateByQuaternion(rl.Vector3Subtract(p, iso.Translation), inv)
}

// InverseTransformVector rotates a world direction into the local frame.
func (iso Isometry) InverseTransformVector(v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, rl.QuaternionInvert(iso.rotation()))
}

// InverseTransformRay expresses a world ray in the local frame. Distances
// along the ray are preserved.
func (iso Isometry) InverseTransformRay(r Ray) Ray {
	return Ray{
		Origin: iso.InverseTransformPoint(r.Origin),
		Dir:    iso.InverseTransformVector(r.Dir),
	}
}

// Mul composes two transforms: the result applies other first, then iso.
func (iso Isometry) Mul(other Isometry) Isometry {
	return Isometry{
		Translation: iso.TransformPoint(other.Translation),
		Rotation:    rl.QuaternionNormalize(rl.QuaternionMultiply(iso.rotation(), other.rotation())),
	}
}

// Inverse returns the transform that undoes iso.
func (iso Isometry) Inverse() Isometry {
	inv := rl.QuaternionInvert(iso.rotation())
	return Isometry{
		Translation: rl.Vector3RotateByQuaternion(rl.Vector3Negate(iso.Translation), inv),
		Rotation:    inv,
	}
}

// BasisMatrix builds a matrix for rl.Vector3Transform and rl.DrawModel whose
// columns are the images of the unit axes followed by the translation.
func BasisMatrix(x, y, z, t rl.Vector3) rl.Matrix {
	return rl.Matrix{
		M0: x.X, M4: y.X, M8: z.X, M12: t.X,
		M1: x.Y, M5: y.Y, M9: z.Y, M13: t.Y,
		M2: x.Z, M6: y.Z, M10: z.Z, M14: t.Z,
		M15: 1,
	}
}

// unitOrIdentity treats the zero quaternion (a zero-valued struct) as identity.
func unitOrIdentity(q rl.Quaternion) rl.Quaternion {
	if q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0 {
		return rl.QuaternionIdentity()
	}
	return q
}
