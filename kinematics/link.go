package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Body is a rigid body of the tree. Bodies are immutable once the tree is built.
type Body struct {
	name    string
	index   int
	mass    float64
	com     r3.Vector
	inertia *mat.SymDense

	parent   *Joint
	children []*Joint
}

// Name returns the name of the body.
func (b *Body) Name() string {
	return b.name
}

// Index returns the position of the body in the tree's traversal order. The root is always 0.
func (b *Body) Index() int {
	return b.index
}

// Mass returns the mass of the body in kilograms.
func (b *Body) Mass() float64 {
	return b.mass
}

// CoM returns the center of mass offset in the body frame.
func (b *Body) CoM() r3.Vector {
	return b.com
}

// Inertia returns a copy of the inertia tensor about the CoM, expressed in the body frame.
func (b *Body) Inertia() *mat.SymDense {
	return mat.NewSymDense(3, append([]float64(nil), b.inertia.RawSymmetric().Data...))
}

// ParentJoint returns the joint attaching this body to the tree, nil for the root.
func (b *Body) ParentJoint() *Joint {
	return b.parent
}

// ChildJoints returns the joints mounted on this body in declaration order.
func (b *Body) ChildJoints() []*Joint {
	return append([]*Joint(nil), b.children...)
}

// IsLeaf reports whether no joint is mounted on this body.
func (b *Body) IsLeaf() bool {
	return len(b.children) == 0
}
