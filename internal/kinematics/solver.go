package kinematics

import (
	"errors"
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/mat"
)

var ErrNotConverged = errors.New("kinematics: solver did not converge")

// Solver moves a node of a chain onto a target point with damped least
// squares. Only position is solved; orientation is free.
type Solver struct {
	MaxIterations int
	Tolerance     float64
	Damping       float64
	// MaxStep caps the joint change per iteration, in radians.
	MaxStep float64
}

func NewSolver() Solver {
	return Solver{
		MaxIterations: 200,
		Tolerance:     1e-3,
		Damping:       0.1,
		MaxStep:       0.2,
	}
}

// Solve adjusts the joints at or before node end so that node end reaches
// target. On failure the joint positions are left unchanged.
func (s Solver) Solve(c *Chain, end int, target rl.Vector3) error {
	if end < 0 || end >= c.Len() {
		return fmt.Errorf("%w: %d", ErrNodeIndex, end)
	}
	saved := c.JointPositions()
	joints := c.jointNodes(end)
	goal := mat.NewVecDense(3, []float64{float64(target.X), float64(target.Y), float64(target.Z)})

	var residual float64
	for iter := 0; iter <= s.MaxIterations; iter++ {
		world := c.UpdateTransforms()
		endPos := world[end].Translation
		e := mat.NewVecDense(3, nil)
		e.SubVec(goal, toVec(endPos))
		residual = e.Norm(2)
		if residual <= s.Tolerance {
			return nil
		}
		if iter == s.MaxIterations || len(joints) == 0 {
			break
		}

		jac := mat.NewDense(3, len(joints), nil)
		for col, ni := range joints {
			axis := world[ni].TransformVector(c.nodes[ni].Axis)
			lever := rl.Vector3Subtract(endPos, world[ni].Translation)
			d := rl.Vector3CrossProduct(axis, lever)
			jac.Set(0, col, float64(d.X))
			jac.Set(1, col, float64(d.Y))
			jac.Set(2, col, float64(d.Z))
		}

		dtheta, err := s.step(jac, e)
		if err != nil {
			break
		}
		for col, ni := range joints {
			c.nodes[ni].Angle += float32(dtheta.AtVec(col))
		}
	}

	_ = c.SetJointPositions(saved)
	c.UpdateTransforms()
	return fmt.Errorf("%w: residual %.4f after %d iterations", ErrNotConverged, residual, s.MaxIterations)
}

// step solves (J Jᵀ + λ²I) y = e and returns Jᵀ y.
func (s Solver) step(jac *mat.Dense, e *mat.VecDense) (*mat.VecDense, error) {
	var jjt mat.Dense
	jjt.Mul(jac, jac.T())
	lambda2 := s.Damping * s.Damping
	for i := 0; i < 3; i++ {
		jjt.Set(i, i, jjt.At(i, i)+lambda2)
	}

	var y mat.VecDense
	if err := y.SolveVec(&jjt, e); err != nil {
		return nil, err
	}
	_, n := jac.Dims()
	dtheta := mat.NewVecDense(n, nil)
	dtheta.MulVec(jac.T(), &y)

	if s.MaxStep > 0 {
		largest := 0.0
		for i := 0; i < n; i++ {
			largest = math.Max(largest, math.Abs(dtheta.AtVec(i)))
		}
		if largest > s.MaxStep {
			dtheta.ScaleVec(s.MaxStep/largest, dtheta)
		}
	}
	return dtheta, nil
}

func toVec(v rl.Vector3) *mat.VecDense {
	return mat.NewVecDense(3, []float64{float64(v.X), float64(v.Y), float64(v.Z)})
}
