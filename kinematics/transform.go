package kinematics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/spatialmath"
)

// NoID is the identifier of joints that do not add a degree of freedom.
const NoID = -1

// Joint connects a parent body to a child body.
type Joint struct {
	name      string
	id        int
	jointType string
	origin    spatialmath.Pose
	axis      r3.Vector
	limit     referenceframe.Limit
	dflt      float64

	parent *Body
	child  *Body
}

// Name returns the name of the joint.
func (j *Joint) Name() string {
	return j.name
}

// ID returns the joint identifier, or NoID for fixed joints.
func (j *Joint) ID() int {
	return j.id
}

// Type returns one of the joint type constants of the referenceframe package.
func (j *Joint) Type() string {
	return j.jointType
}

// IsMovable reports whether the joint adds a degree of freedom.
func (j *Joint) IsMovable() bool {
	return j.id != NoID
}

// Origin returns the pose of the joint frame in the parent body frame.
func (j *Joint) Origin() spatialmath.Pose {
	return j.origin
}

// Axis returns the unit joint axis in the joint frame. It is zero for fixed joints.
func (j *Joint) Axis() r3.Vector {
	return j.axis
}

// Limit returns the limits of the joint.
func (j *Joint) Limit() referenceframe.Limit {
	return j.limit
}

// DefaultPosition returns the nominal position of the joint.
func (j *Joint) DefaultPosition() float64 {
	return j.dflt
}

// Parent returns the body the joint is mounted on.
func (j *Joint) Parent() *Body {
	return j.parent
}

// Child returns the body the joint moves.
func (j *Joint) Child() *Body {
	return j.child
}

// Transform returns the pose of the child body frame in the parent body frame for the given joint position.
func (j *Joint) Transform(q float64) spatialmath.Pose {
	switch j.jointType {
	case referenceframe.RevoluteJoint, referenceframe.ContinuousJoint:
		return spatialmath.Compose(j.origin, spatialmath.NewPoseFromOrientation(spatialmath.NewR4AAFromAxis(q, j.axis)))
	case referenceframe.PrismaticJoint:
		return spatialmath.Compose(j.origin, spatialmath.NewPoseFromPoint(j.axis.Mul(q)))
	default:
		return j.origin
	}
}
