package picking

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Impact is one candidate's time of impact along a ray.
type Impact struct {
	Index  int
	Toi    float32
	Normal rl.Vector3
}

// Hit is the result of a pick: which candidate, where, and how far along
// the ray.
type Hit struct {
	Index  int
	Point  rl.Vector3
	Toi    float32
	Normal rl.Vector3
}

// Nearest returns the impact with the smallest time of impact. NaN, negative
// and infinite values never win. Ties go to the first impact in the slice.
func Nearest(impacts []Impact) (Impact, bool) {
	best := Impact{Index: -1}
	found := false
	for _, imp := range impacts {
		if !validToi(imp.Toi) {
			continue
		}
		if !found || imp.Toi < best.Toi {
			best = imp
			found = true
		}
	}
	return best, found
}

// Impacts casts the ray against every candidate and returns the ones that
// were hit, in candidate order.
func Impacts(candidates []Candidate, r Ray) []Impact {
	var impacts []Impact
	for i, c := range candidates {
		hit, ok := Cast(c, r, MaxToi, true)
		if !ok {
			continue
		}
		impacts = append(impacts, Impact{Index: i, Toi: hit.Toi, Normal: hit.Normal})
	}
	return impacts
}

// Pick finds the candidate nearest along the ray. The hit point is
// recomputed from the ray and the winning time of impact.
func Pick(candidates []Candidate, r Ray) (Hit, bool) {
	if len(candidates) == 0 || !finite(r.Origin) || !finite(r.Dir) || rl.Vector3Length(r.Dir) == 0 {
		return Hit{}, false
	}

	best, ok := Nearest(Impacts(candidates, r))
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Index:  best.Index,
		Point:  r.PointAt(best.Toi),
		Toi:    best.Toi,
		Normal: best.Normal,
	}, true
}

// PickScreen builds the cursor ray and picks in one call.
func PickScreen(candidates []Candidate, cursor rl.Vector2, vp Viewport, pose Pose) (Hit, bool) {
	r, ok := ScreenRay(cursor, vp, pose)
	if !ok {
		return Hit{}, false
	}
	return Pick(candidates, r)
}

func validToi(t float32) bool {
	return t >= 0 && !math32.IsNaN(t) && !math32.IsInf(t, 0)
}
