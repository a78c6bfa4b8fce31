package components

import (
	"armpick/internal/picking"

	"github.com/yohamta/donburi"
)

// Camera marks the entity whose transform drives the view and holds its lens.
// Only one entity should carry it.
type Camera struct {
	Projection picking.Projection
}

var CameraComponent = donburi.NewComponentType[Camera](NewCamera())

func NewCamera() Camera {
	return Camera{
		Projection: picking.Projection{
			Kind: picking.Perspective,
			FovY: picking.DefaultFovY,
			Near: picking.DefaultNear,
			Far:  picking.DefaultFar,
		},
	}
}
