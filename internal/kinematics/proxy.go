package kinematics

import (
	"armpick/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ProxyOffset is where the proxy cube of node i sits relative to the node.
func ProxyOffset(i int) rl.Vector3 {
	return rl.Vector3{X: float32(i) * 0.1, Y: 1}
}

// ProxyTransform places the proxy cube of node i given the node's world transform.
func ProxyTransform(i int, node picking.Isometry) picking.Isometry {
	return picking.NewIsometry(rl.Vector3Add(ProxyOffset(i), node.Translation), node.Rotation)
}

// NodeTarget converts a point in proxy space back into node space.
func NodeTarget(i int, proxyPoint rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(proxyPoint, ProxyOffset(i))
}

// StepToward moves current toward target by at most maxStep and reports
// whether it arrived.
func StepToward(current, target rl.Vector3, maxStep float32) (rl.Vector3, bool) {
	delta := rl.Vector3Subtract(target, current)
	dist := rl.Vector3Length(delta)
	if dist <= maxStep {
		return target, true
	}
	return rl.Vector3Add(current, rl.Vector3Scale(delta, maxStep/dist)), false
}
