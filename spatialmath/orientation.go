package spatialmath

import (
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/floatingbase/utils"
)

// Orientation is an interface used to express the different parameterizations of the orientation
// of a rigid body or a frame of reference in 3D Euclidean space.
type Orientation interface {
	AxisAngles() *R4AA
	Quaternion() quat.Number
	EulerAngles() *EulerAngles
	RotationMatrix() *RotationMatrix
}

// NewZeroOrientation returns an orientation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return NewEulerAngles()
}

// OrientationAlmostEqual will return a bool describing whether 2 orientations are approximately the same.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return o1.RotationMatrix().AlmostEqual(o2.RotationMatrix(), 1e-8)
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions have double coverage,
// so q and -q represent the same orientation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	same := func(x, y quat.Number) bool {
		return utils.Float64AlmostEqual(x.Real, y.Real, tol) &&
			utils.Float64AlmostEqual(x.Imag, y.Imag, tol) &&
			utils.Float64AlmostEqual(x.Jmag, y.Jmag, tol) &&
			utils.Float64AlmostEqual(x.Kmag, y.Kmag, tol)
	}
	return same(a, b) || same(a, quat.Scale(-1, b))
}
