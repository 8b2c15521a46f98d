package spatialmath

import (
	"gonum.org/v1/gonum/mat"
)

// NewInertiaTensor builds the symmetric 3x3 inertia tensor from its six independent entries.
func NewInertiaTensor(ixx, ixy, ixz, iyy, iyz, izz float64) *mat.SymDense {
	return mat.NewSymDense(3, []float64{
		ixx, ixy, ixz,
		ixy, iyy, iyz,
		ixz, iyz, izz,
	})
}

// RotateInertia expresses an inertia tensor given in a rotated frame in the parent frame: R I R^T.
func RotateInertia(rm *RotationMatrix, inertia mat.Symmetric) *mat.SymDense {
	r := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, rm.At(i, j))
		}
	}
	var tmp mat.Dense
	tmp.Mul(r, inertia)
	var full mat.Dense
	full.Mul(&tmp, r.T())
	out := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			// symmetrize
			out.SetSym(i, j, (full.At(i, j)+full.At(j, i))/2)
		}
	}
	return out
}
