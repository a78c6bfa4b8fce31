package components

import (
	"armpick/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yohamta/donburi"
)

type MeshKind int

const (
	MeshCube MeshKind = iota
	MeshSphere
	MeshPlane
)

// ModelRenderer draws a unit mesh scaled by Size at the entity's world transform.
type ModelRenderer struct {
	Mesh    MeshKind
	Size    rl.Vector3
	Color   rl.Color
	Hidden  bool
	Outline bool
}

var ModelRendererComponent = donburi.NewComponentType[ModelRenderer]()

func NewModelRenderer(mesh MeshKind, size rl.Vector3, color rl.Color) ModelRenderer {
	return ModelRenderer{Mesh: mesh, Size: size, Color: color}
}

// Models holds one loaded unit model per mesh kind. It needs a GL context.
type Models struct {
	byKind map[MeshKind]rl.Model
}

func LoadModels() *Models {
	return &Models{byKind: map[MeshKind]rl.Model{
		MeshCube:   rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1)),
		MeshSphere: rl.LoadModelFromMesh(rl.GenMeshSphere(1, 16, 16)),
		MeshPlane:  rl.LoadModelFromMesh(rl.GenMeshPlane(1, 1, 1, 1)),
	}}
}

// Draw renders r with world transform tr.
func (m *Models) Draw(r ModelRenderer, tr engine.Transform) {
	if r.Hidden {
		return
	}
	model, ok := m.byKind[r.Mesh]
	if !ok {
		return
	}
	tr.Scale = rl.Vector3Multiply(tr.Scale, r.Size)
	model.Transform = tr.Matrix()
	rl.DrawModel(model, rl.Vector3Zero(), 1.0, r.Color)
	if r.Outline {
		rl.DrawModelWires(model, rl.Vector3Zero(), 1.0, rl.Black)
	}
}

func (m *Models) Unload() {
	for _, model := range m.byKind {
		rl.UnloadModel(model)
	}
}
