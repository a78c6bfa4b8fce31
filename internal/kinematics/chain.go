// Package kinematics models the demo arm as a serial chain of rotational
// joints and solves position goals for any node of it.
package kinematics

import (
	"errors"
	"fmt"

	"armpick/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrJointCount = errors.New("kinematics: wrong number of joint positions")
	ErrNodeIndex  = errors.New("kinematics: node index out of range")
)

// DefaultAngles is the rest pose of the arm, one angle per rotational joint.
var DefaultAngles = []float32{0.2, 0.2, 0, -1.5, 0, -0.3, 0}

// Node is one link. A node with a zero Axis is fixed. Its local transform
// is Origin followed by a rotation of Angle about Axis.
type Node struct {
	Name   string
	Axis   rl.Vector3
	Origin picking.Isometry
	Angle  float32
}

func (n Node) Fixed() bool {
	return n.Axis == (rl.Vector3{})
}

func (n Node) local() picking.Isometry {
	if n.Fixed() {
		return n.Origin
	}
	rot := rl.QuaternionFromAxisAngle(n.Axis, n.Angle)
	return n.Origin.Mul(picking.NewIsometry(rl.Vector3{}, rot))
}

// Chain is a serial chain; node i is the parent of node i+1.
type Chain struct {
	nodes    []Node
	world    []picking.Isometry
	defaults []float32
}

func NewChain(nodes []Node) *Chain {
	c := &Chain{
		nodes: append([]Node(nil), nodes...),
		world: make([]picking.Isometry, len(nodes)),
	}
	c.defaults = c.JointPositions()
	c.UpdateTransforms()
	return c
}

// NewArm builds the seven-joint demo arm in its rest pose.
func NewArm() *Chain {
	x := rl.Vector3{X: 1}
	y := rl.Vector3{Y: 1}
	z := rl.Vector3{Z: 1}
	at := func(px, py, pz float32) picking.Isometry {
		return picking.Translation(rl.Vector3{X: px, Y: py, Z: pz})
	}

	base := rl.QuaternionMultiply(
		rl.QuaternionFromAxisAngle(z, -1.57),
		rl.QuaternionFromAxisAngle(y, -1.57),
	)
	root := at(0, 0, -0.6).Mul(picking.NewIsometry(rl.Vector3{}, base)).Mul(at(0, 0, 0.6))

	c := NewChain([]Node{
		{Name: "fixed", Origin: root},
		{Name: "shoulder_pitch", Axis: y, Origin: at(0, 0.1, 0)},
		{Name: "shoulder_roll", Axis: x, Origin: at(0, 0.1, 0)},
		{Name: "shoulder_yaw", Axis: z, Origin: at(0, 0, -0.30)},
		{Name: "elbow_pitch", Axis: y, Origin: at(0, 0, -0.15)},
		{Name: "wrist_yaw", Axis: z, Origin: at(0, 0, -0.15)},
		{Name: "wrist_pitch", Axis: y, Origin: at(0, 0, -0.15)},
		{Name: "wrist_roll", Axis: x, Origin: at(0, 0, -0.10)},
	})
	// Error is impossible: the arm has exactly len(DefaultAngles) joints.
	_ = c.SetJointPositions(DefaultAngles)
	c.defaults = append([]float32(nil), DefaultAngles...)
	c.UpdateTransforms()
	return c
}

// Len is the number of nodes, fixed ones included.
func (c *Chain) Len() int {
	return len(c.nodes)
}

// DOF is the number of rotational joints.
func (c *Chain) DOF() int {
	n := 0
	for _, node := range c.nodes {
		if !node.Fixed() {
			n++
		}
	}
	return n
}

func (c *Chain) Node(i int) Node {
	return c.nodes[i]
}

// Find returns the index of the node with the given name.
func (c *Chain) Find(name string) (int, bool) {
	for i, n := range c.nodes {
		if n.Name == name {
			return i, true
		}
	}
	return -1, false
}

// JointPositions returns the angle of every rotational joint, root first.
func (c *Chain) JointPositions() []float32 {
	out := make([]float32, 0, len(c.nodes))
	for _, n := range c.nodes {
		if !n.Fixed() {
			out = append(out, n.Angle)
		}
	}
	return out
}

// SetJointPositions sets every rotational joint. Transforms are not updated.
func (c *Chain) SetJointPositions(angles []float32) error {
	if len(angles) != c.DOF() {
		return fmt.Errorf("%w: got %d, want %d", ErrJointCount, len(angles), c.DOF())
	}
	j := 0
	for i := range c.nodes {
		if c.nodes[i].Fixed() {
			continue
		}
		c.nodes[i].Angle = angles[j]
		j++
	}
	return nil
}

// UpdateTransforms recomputes and returns the world transform of every node.
func (c *Chain) UpdateTransforms() []picking.Isometry {
	parent := picking.Identity()
	for i, n := range c.nodes {
		parent = parent.Mul(n.local())
		c.world[i] = parent
	}
	return append([]picking.Isometry(nil), c.world...)
}

// WorldTransform returns node i's transform as of the last UpdateTransforms.
func (c *Chain) WorldTransform(i int) (picking.Isometry, error) {
	if i < 0 || i >= len(c.world) {
		return picking.Isometry{}, fmt.Errorf("%w: %d", ErrNodeIndex, i)
	}
	return c.world[i], nil
}

// SetRestPose replaces the pose Reset returns to and applies it.
func (c *Chain) SetRestPose(angles []float32) error {
	if err := c.SetJointPositions(angles); err != nil {
		return err
	}
	c.defaults = append([]float32(nil), angles...)
	c.UpdateTransforms()
	return nil
}

// Reset restores the rest pose.
func (c *Chain) Reset() {
	_ = c.SetJointPositions(c.defaults)
	c.UpdateTransforms()
}

// jointNodes lists the rotational nodes in 0..end.
func (c *Chain) jointNodes(end int) []int {
	var idx []int
	for i := 0; i <= end && i < len(c.nodes); i++ {
		if !c.nodes[i].Fixed() {
			idx = append(idx, i)
		}
	}
	return idx
}
