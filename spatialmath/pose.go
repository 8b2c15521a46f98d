package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Pose is a rigid transform: a translation and a rotation from the current frame to its parent frame.
type Pose struct {
	point    r3.Vector
	rotation *RotationMatrix
}

// NewZeroPose returns a pose at (0,0,0) with no rotation.
func NewZeroPose() Pose {
	return Pose{rotation: NewIdentityRotationMatrix()}
}

// NewPose creates a pose from a point and an orientation. A nil orientation means no rotation.
func NewPose(point r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(point)
	}
	return Pose{point: point, rotation: o.RotationMatrix()}
}

// NewPoseFromPoint creates a pose with a translation only.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{point: point, rotation: NewIdentityRotationMatrix()}
}

// NewPoseFromOrientation creates a pose with a rotation only.
func NewPoseFromOrientation(o Orientation) Pose {
	return NewPose(r3.Vector{}, o)
}

// Point returns the translation of the pose.
func (p Pose) Point() r3.Vector {
	return p.point
}

// Orientation returns the rotation of the pose.
func (p Pose) Orientation() *RotationMatrix {
	if p.rotation == nil {
		return NewIdentityRotationMatrix()
	}
	return p.rotation
}

// TransformPoint maps a point expressed in this pose's frame into the parent frame.
func (p Pose) TransformPoint(v r3.Vector) r3.Vector {
	return p.Orientation().MulVec(v).Add(p.point)
}

// RotateVector maps a free vector (a direction) expressed in this pose's frame into the parent frame.
func (p Pose) RotateVector(v r3.Vector) r3.Vector {
	return p.Orientation().MulVec(v)
}

func (p Pose) String() string {
	ea := p.Orientation().EulerAngles()
	return fmt.Sprintf("{X:%.4f Y:%.4f Z:%.4f Roll:%.4f Pitch:%.4f Yaw:%.4f}",
		p.point.X, p.point.Y, p.point.Z, ea.Roll, ea.Pitch, ea.Yaw)
}

// Compose returns the pose that first applies b and then a, i.e. a * b.
func Compose(a, b Pose) Pose {
	return Pose{
		point:    a.TransformPoint(b.point),
		rotation: a.Orientation().Mul(b.Orientation()),
	}
}

// PoseInverse returns the inverse of a pose.
func PoseInverse(p Pose) Pose {
	rt := p.Orientation().Transpose()
	return Pose{point: rt.MulVec(p.point).Mul(-1), rotation: rt}
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-8)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same
// within the given epsilon.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.point, b.point, epsilon) && a.Orientation().AlmostEqual(b.Orientation(), epsilon)
}
