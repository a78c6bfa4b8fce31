package components

import (
	"github.com/yohamta/donburi"
)

// IkCube is the pickable proxy of one arm joint.
type IkCube struct {
	Joint int
}

var IkCubeComponent = donburi.NewComponentType[IkCube]()
