package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/spatialmath"
)

// Kinematics is the result of evaluating the tree at one configuration: the world pose of every body and the world
// origin and axis of every movable joint.
type Kinematics struct {
	tree        *Tree
	bodyPoses   []spatialmath.Pose
	jointOrigin []r3.Vector
	jointAxis   []r3.Vector
}

// ForwardKinematics places the root body at base and every other body by composing the joint transforms along its
// chain from the root. q holds one position per movable joint in identifier order.
func (t *Tree) ForwardKinematics(base spatialmath.Pose, q []float64) (*Kinematics, error) {
	if len(q) != t.dof {
		return nil, referenceframe.NewIncorrectDoFError(len(q), t.dof)
	}
	k := &Kinematics{
		tree:        t,
		bodyPoses:   make([]spatialmath.Pose, len(t.bodies)),
		jointOrigin: make([]r3.Vector, t.dof),
		jointAxis:   make([]r3.Vector, t.dof),
	}
	k.bodyPoses[t.root.index] = base
	// bodies are stored parents first
	for _, b := range t.bodies[1:] {
		j := b.parent
		parentPose := k.bodyPoses[j.parent.index]
		if !j.IsMovable() {
			k.bodyPoses[b.index] = spatialmath.Compose(parentPose, j.origin)
			continue
		}
		jointFrame := spatialmath.Compose(parentPose, j.origin)
		k.jointOrigin[j.id] = jointFrame.Point()
		k.jointAxis[j.id] = jointFrame.RotateVector(j.axis)
		k.bodyPoses[b.index] = spatialmath.Compose(parentPose, j.Transform(q[j.id]))
	}
	return k, nil
}

// BodyPose returns the world pose of the given body frame.
func (k *Kinematics) BodyPose(b *Body) spatialmath.Pose {
	return k.bodyPoses[b.index]
}

// CoM returns the world position of the given body's center of mass.
func (k *Kinematics) CoM(b *Body) r3.Vector {
	return k.bodyPoses[b.index].TransformPoint(b.com)
}

// JointOrigin returns the world position of the movable joint with the given identifier.
func (k *Kinematics) JointOrigin(id int) r3.Vector {
	return k.jointOrigin[id]
}

// JointAxis returns the world direction of the movable joint with the given identifier.
func (k *Kinematics) JointAxis(id int) r3.Vector {
	return k.jointAxis[id]
}

// PointJacobian returns the 3 x JointDoF linear Jacobian of a world point rigidly attached to the given body with
// respect to the joint positions. A tree without movable joints yields a single zero column. Columns of joints that are not between the root and the body are zero.
func (k *Kinematics) PointJacobian(b *Body, point r3.Vector) *mat.Dense {
	jac := mat.NewDense(3, max(k.tree.dof, 1), nil)
	for j := b.parent; j != nil; j = j.parent.parent {
		if !j.IsMovable() {
			continue
		}
		var col r3.Vector
		switch j.jointType {
		case referenceframe.PrismaticJoint:
			col = k.jointAxis[j.id]
		default:
			col = k.jointAxis[j.id].Cross(point.Sub(k.jointOrigin[j.id]))
		}
		jac.Set(0, j.id, col.X)
		jac.Set(1, j.id, col.Y)
		jac.Set(2, j.id, col.Z)
	}
	return jac
}
