package kinematics

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// reachable returns where node end lands when the rest pose is nudged.
func reachable(end int, nudge float32) rl.Vector3 {
	arm := NewArm()
	angles := arm.JointPositions()
	for i := range angles {
		angles[i] += nudge
	}
	_ = arm.SetJointPositions(angles)
	return arm.UpdateTransforms()[end].Translation
}

func TestSolveEndEffector(t *testing.T) {
	arm := NewArm()
	target := reachable(7, 0.15)

	if err := NewSolver().Solve(arm, 7, target); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	got, _ := arm.WorldTransform(7)
	if !near(got.Translation, target, 2e-3) {
		t.Errorf("Expected end effector at %v, got %v", target, got.Translation)
	}
}

func TestSolvePrefixLeavesLaterJoints(t *testing.T) {
	arm := NewArm()
	before := arm.JointPositions()
	target := reachable(4, 0.1)

	if err := NewSolver().Solve(arm, 4, target); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	got, _ := arm.WorldTransform(4)
	if !near(got.Translation, target, 2e-3) {
		t.Errorf("Expected node 4 at %v, got %v", target, got.Translation)
	}

	after := arm.JointPositions()
	// Node 4 is elbow_pitch, joint index 3; joints 4..6 sit after it.
	for j := 4; j < len(after); j++ {
		if after[j] != before[j] {
			t.Errorf("Expected joint %d unchanged, got %v -> %v", j, before[j], after[j])
		}
	}
}

func TestSolveAlreadyAtTarget(t *testing.T) {
	arm := NewArm()
	here, _ := arm.WorldTransform(7)
	before := arm.JointPositions()

	if err := NewSolver().Solve(arm, 7, here.Translation); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	after := arm.JointPositions()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Expected joint %d unchanged, got %v", i, after[i])
		}
	}
}

func TestSolveUnreachableRestoresPose(t *testing.T) {
	arm := NewArm()
	before := arm.JointPositions()

	err := NewSolver().Solve(arm, 7, rl.Vector3{X: 10, Y: 10, Z: 10})
	if !errors.Is(err, ErrNotConverged) {
		t.Fatalf("Expected ErrNotConverged, got %v", err)
	}
	after := arm.JointPositions()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Expected joint %d restored to %v, got %v", i, before[i], after[i])
		}
	}
}

func TestSolveFixedRoot(t *testing.T) {
	arm := NewArm()
	root, _ := arm.WorldTransform(0)

	if err := NewSolver().Solve(arm, 0, root.Translation); err != nil {
		t.Errorf("Expected root already at its own position, got %v", err)
	}
	if err := NewSolver().Solve(arm, 0, rl.Vector3{X: 5}); !errors.Is(err, ErrNotConverged) {
		t.Errorf("Expected ErrNotConverged for a fixed node, got %v", err)
	}
}

func TestSolveBadIndex(t *testing.T) {
	arm := NewArm()
	if err := NewSolver().Solve(arm, 12, rl.Vector3{}); !errors.Is(err, ErrNodeIndex) {
		t.Errorf("Expected ErrNodeIndex, got %v", err)
	}
}
