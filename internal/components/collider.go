package components

import (
	"armpick/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
)

// BoxCollider makes an entity pickable. The box is centered on the entity
// and follows its world rotation.
type BoxCollider struct {
	HalfExtents rl.Vector3
}

var BoxColliderComponent = donburi.NewComponentType[BoxCollider]()

func NewBoxCollider(halfExtents rl.Vector3) BoxCollider {
	return BoxCollider{HalfExtents: halfExtents}
}

func (b BoxCollider) Shape() picking.Shape {
	return picking.Box{HalfExtents: b.HalfExtents}
}
