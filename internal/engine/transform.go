package engine

import (
	"armpick/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
)

// maxHierarchyDepth guards against parent cycles.
const maxHierarchyDepth = 64

// Transform is an entity's position, rotation and scale relative to its parent.
type Transform struct {
	Translation rl.Vector3
	Rotation    rl.Quaternion
	Scale       rl.Vector3
}

// Parent links an entity to the entity it is attached to.
type Parent struct {
	Entity donburi.Entity
}

var (
	TransformComponent = donburi.NewComponentType[Transform](NewTransform())
	ParentComponent    = donburi.NewComponentType[Parent]()
)

func NewTransform() Transform {
	return Transform{
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// TransformAt returns a unit-scale transform.
func TransformAt(translation rl.Vector3, rotation rl.Quaternion) Transform {
	t := NewTransform()
	t.Translation = translation
	t.Rotation = rotation
	return t
}

// Isometry drops the scale.
func (t Transform) Isometry() picking.Isometry {
	return picking.NewIsometry(t.Translation, t.Rotation)
}

// Matrix returns scale, then rotation, then translation, in the layout
// raylib draws models with.
func (t Transform) Matrix() rl.Matrix {
	rot := t.rotation()
	return picking.BasisMatrix(
		rl.Vector3RotateByQuaternion(rl.Vector3{X: t.Scale.X}, rot),
		rl.Vector3RotateByQuaternion(rl.Vector3{Y: t.Scale.Y}, rot),
		rl.Vector3RotateByQuaternion(rl.Vector3{Z: t.Scale.Z}, rot),
		t.Translation,
	)
}

// Compose places child in the frame of t.
func (t Transform) Compose(child Transform) Transform {
	scaled := rl.Vector3Multiply(child.Translation, t.Scale)
	rotated := rl.Vector3RotateByQuaternion(scaled, t.rotation())
	return Transform{
		Translation: rl.Vector3Add(t.Translation, rotated),
		Rotation:    rl.QuaternionNormalize(rl.QuaternionMultiply(t.rotation(), child.rotation())),
		Scale:       rl.Vector3Multiply(t.Scale, child.Scale),
	}
}

func (t Transform) rotation() rl.Quaternion {
	q := t.Rotation
	if q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0 {
		return rl.QuaternionIdentity()
	}
	return q
}

// WorldTransform composes the entry's transform with those of its parents.
// A missing or invalid parent ends the chain.
func WorldTransform(w donburi.World, entry *donburi.Entry) Transform {
	if entry == nil || !entry.Valid() {
		return NewTransform()
	}
	chain := make([]Transform, 0, 4)
	for depth := 0; entry != nil && depth < maxHierarchyDepth; depth++ {
		if entry.HasComponent(TransformComponent) {
			chain = append(chain, *TransformComponent.Get(entry))
		} else {
			chain = append(chain, NewTransform())
		}
		if !entry.HasComponent(ParentComponent) {
			break
		}
		parent := ParentComponent.Get(entry).Entity
		if !w.Valid(parent) {
			break
		}
		entry = w.Entry(parent)
	}

	world := chain[len(chain)-1]
	for i := len(chain) - 2; i >= 0; i-- {
		world = world.Compose(chain[i])
	}
	return world
}

// SetParent attaches child to parent. A zero parent detaches it.
func SetParent(w donburi.World, child, parent donburi.Entity) {
	entry := w.Entry(child)
	if parent == donburi.Null {
		if entry.HasComponent(ParentComponent) {
			entry.RemoveComponent(ParentComponent)
		}
		return
	}
	if !entry.HasComponent(ParentComponent) {
		entry.AddComponent(ParentComponent)
	}
	ParentComponent.SetValue(entry, Parent{Entity: parent})
}
