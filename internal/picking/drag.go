package picking

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

var worldUp = rl.Vector3{Y: 1}

// DragPlane returns the half-space a drag moves along: a plane through the
// impact point whose normal faces the camera.
func DragPlane(impact, cameraPos rl.Vector3) (Candidate, bool) {
	if rl.Vector3Distance(impact, cameraPos) < 1e-6 {
		return Candidate{}, false
	}
	return Candidate{
		Transform: FaceTowards(impact, cameraPos, worldUp),
		Shape:     HalfSpace{Normal: rl.Vector3{Z: 1}},
	}, true
}

// ProjectDrag intersects the current cursor ray with the drag plane through
// impact. Returns false when the ray is parallel to the plane or points away
// from it.
func ProjectDrag(r Ray, impact, cameraPos rl.Vector3) (rl.Vector3, bool) {
	plane, ok := DragPlane(impact, cameraPos)
	if !ok {
		return rl.Vector3{}, false
	}
	hit, ok := Cast(plane, r, MaxToi, true)
	if !ok || !validToi(hit.Toi) {
		return rl.Vector3{}, false
	}
	return r.PointAt(hit.Toi), true
}
