package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// See here for a thorough explanation: https://en.wikipedia.org/wiki/Axis%E2%80%93angle_representation
// An orientation can be expressed by an axis, i.e. a line from the origin to a point on the unit sphere,
// represented by (rx, ry, rz), and a rotation around that axis, theta. Revolute joints rotate this way.

// R4AA represents an R4 axis angle.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA creates an R4AA that represents no rotation.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// NewR4AAFromAxis creates an R4AA that rotates by theta around the given axis. The axis does not need to be normalized.
func NewR4AAFromAxis(theta float64, axis r3.Vector) *R4AA {
	r4 := &R4AA{Theta: theta, RX: axis.X, RY: axis.Y, RZ: axis.Z}
	r4.Normalize()
	return r4
}

// AxisAngles returns the orientation in axis angle representation.
func (r4 *R4AA) AxisAngles() *R4AA {
	return r4
}

// Axis returns the rotation axis as a vector.
func (r4 *R4AA) Axis() r3.Vector {
	return r3.Vector{X: r4.RX, Y: r4.RY, Z: r4.RZ}
}

// Quaternion returns orientation in quaternion representation.
func (r4 *R4AA) Quaternion() quat.Number {
	sinA := math.Sin(r4.Theta / 2)
	return quat.Number{
		Real: math.Cos(r4.Theta / 2),
		Imag: r4.RX * sinA,
		Jmag: r4.RY * sinA,
		Kmag: r4.RZ * sinA,
	}
}

// EulerAngles returns orientation in Euler angle representation.
func (r4 *R4AA) EulerAngles() *EulerAngles {
	return r4.RotationMatrix().EulerAngles()
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (r4 *R4AA) RotationMatrix() *RotationMatrix {
	if r4.Theta == 0 {
		return NewIdentityRotationMatrix()
	}
	return &RotationMatrix{mgl64.HomogRotate3D(r4.Theta, r3ToVec3(r4.Axis())).Mat3()}
}

// Normalize scales the x, y, and z components of a R4 axis angle to be on the unit sphere.
// A zero axis is left untouched.
func (r4 *R4AA) Normalize() {
	norm := math.Sqrt(r4.RX*r4.RX + r4.RY*r4.RY + r4.RZ*r4.RZ)
	if norm == 0.0 {
		return
	}
	r4.RX /= norm
	r4.RY /= norm
	r4.RZ /= norm
}

// QuatToR4AA converts a quaternion to an R4 axis angle.
func QuatToR4AA(q quat.Number) *R4AA {
	denom := math.Sqrt(1 - q.Real*q.Real)
	if denom < 1e-12 || math.IsNaN(denom) {
		return NewR4AA()
	}
	return &R4AA{
		Theta: 2 * math.Acos(math.Max(-1, math.Min(1, q.Real))),
		RX:    q.Imag / denom,
		RY:    q.Jmag / denom,
		RZ:    q.Kmag / denom,
	}
}
