package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
)

const eps = 1e-4

func approxVec(a, b rl.Vector3) bool {
	return math.Abs(float64(a.X-b.X)) < eps &&
		math.Abs(float64(a.Y-b.Y)) < eps &&
		math.Abs(float64(a.Z-b.Z)) < eps
}

func spawn(w donburi.World, tr Transform) donburi.Entity {
	e := w.Create(TransformComponent)
	TransformComponent.SetValue(w.Entry(e), tr)
	return e
}

func TestWorldTransformRoot(t *testing.T) {
	w := donburi.NewWorld()
	e := spawn(w, TransformAt(rl.Vector3{X: 1, Y: 2, Z: 3}, rl.QuaternionIdentity()))

	got := WorldTransform(w, w.Entry(e))
	if !approxVec(got.Translation, rl.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Expected (1,2,3), got %v", got.Translation)
	}
}

func TestWorldTransformChild(t *testing.T) {
	w := donburi.NewWorld()
	// Parent rotated 90 degrees about Y: local +X maps to world -Z.
	parentTr := TransformAt(rl.Vector3{Y: 1}, rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, math.Pi/2))
	parentTr.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}
	parent := spawn(w, parentTr)
	child := spawn(w, TransformAt(rl.Vector3{X: 1}, rl.QuaternionIdentity()))
	SetParent(w, child, parent)

	got := WorldTransform(w, w.Entry(child))
	if !approxVec(got.Translation, rl.Vector3{Y: 1, Z: -2}) {
		t.Errorf("Expected (0,1,-2), got %v", got.Translation)
	}
	if !approxVec(got.Scale, rl.Vector3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("Expected scale 2, got %v", got.Scale)
	}
	fwd := rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, got.Rotation)
	if !approxVec(fwd, rl.Vector3{Z: -1}) {
		t.Errorf("Expected child +X to face -Z, got %v", fwd)
	}
}

func TestWorldTransformMissingParent(t *testing.T) {
	w := donburi.NewWorld()
	parent := spawn(w, TransformAt(rl.Vector3{X: 5}, rl.QuaternionIdentity()))
	child := spawn(w, TransformAt(rl.Vector3{Y: 1}, rl.QuaternionIdentity()))
	SetParent(w, child, parent)
	w.Remove(parent)

	got := WorldTransform(w, w.Entry(child))
	if !approxVec(got.Translation, rl.Vector3{Y: 1}) {
		t.Errorf("Expected orphan to act as a root, got %v", got.Translation)
	}
}

func TestWorldTransformCycle(t *testing.T) {
	w := donburi.NewWorld()
	a := spawn(w, TransformAt(rl.Vector3{X: 1}, rl.QuaternionIdentity()))
	b := spawn(w, TransformAt(rl.Vector3{X: 1}, rl.QuaternionIdentity()))
	SetParent(w, a, b)
	SetParent(w, b, a)

	// Must terminate.
	got := WorldTransform(w, w.Entry(a))
	if got.Translation.X != float32(maxHierarchyDepth) {
		t.Errorf("Expected depth-limited chain of %d, got %v", maxHierarchyDepth, got.Translation.X)
	}
}

func TestSetParentDetach(t *testing.T) {
	w := donburi.NewWorld()
	parent := spawn(w, NewTransform())
	child := spawn(w, NewTransform())
	SetParent(w, child, parent)
	SetParent(w, child, donburi.Null)

	if w.Entry(child).HasComponent(ParentComponent) {
		t.Error("Expected parent link to be removed")
	}
}

func TestTransformMatrixMatchesCompose(t *testing.T) {
	rotations := []rl.Quaternion{
		rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, 0.7),
		rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, -60*rl.Deg2rad),
		rl.QuaternionFromAxisAngle(rl.Vector3Normalize(rl.Vector3{X: 1, Y: 1, Z: 1}), 2),
	}
	p := rl.Vector3{X: 1, Y: 1, Z: -0.5}

	for i, rot := range rotations {
		tr := TransformAt(rl.Vector3{X: 1, Y: 2, Z: 3}, rot)
		tr.Scale = rl.Vector3{X: 2, Y: 1, Z: 0.5}

		viaMatrix := rl.Vector3Transform(p, tr.Matrix())
		viaCompose := tr.Compose(TransformAt(p, rl.QuaternionIdentity())).Translation
		if !approxVec(viaMatrix, viaCompose) {
			t.Errorf("rotation %d: expected %v, got %v", i, viaCompose, viaMatrix)
		}
	}
}
