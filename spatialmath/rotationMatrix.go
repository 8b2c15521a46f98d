package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/floatingbase/utils"
)

// RotationMatrix is a 3x3 matrix in row major order.
// m_{ij} = At(i, j).
type RotationMatrix struct {
	mat mgl64.Mat3
}

// NewRotationMatrix creates the rotation matrix from a slice of 9 values given in row major order.
func NewRotationMatrix(rows [9]float64) *RotationMatrix {
	// mgl64 stores matrices column major
	return &RotationMatrix{mgl64.Mat3{
		rows[0], rows[3], rows[6],
		rows[1], rows[4], rows[7],
		rows[2], rows[5], rows[8],
	}}
}

// NewIdentityRotationMatrix returns the rotation matrix of a frame that is not rotated.
func NewIdentityRotationMatrix() *RotationMatrix {
	return &RotationMatrix{mgl64.Ident3()}
}

// At returns the entry at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat.At(row, col)
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// Mul returns the product rm * other.
func (rm *RotationMatrix) Mul(other *RotationMatrix) *RotationMatrix {
	return &RotationMatrix{rm.mat.Mul3(other.mat)}
}

// MulVec rotates the given vector.
func (rm *RotationMatrix) MulVec(v r3.Vector) r3.Vector {
	return vec3ToR3(rm.mat.Mul3x1(r3ToVec3(v)))
}

// Transpose returns the inverse rotation.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	return &RotationMatrix{rm.mat.Transpose()}
}

// AlmostEqual reports whether every entry of the two matrices is within tol of each other.
func (rm *RotationMatrix) AlmostEqual(other *RotationMatrix, tol float64) bool {
	for i := range rm.mat {
		if !utils.Float64AlmostEqual(rm.mat[i], other.mat[i], tol) {
			return false
		}
	}
	return true
}

// Quaternion returns orientation in quaternion representation.
func (rm *RotationMatrix) Quaternion() quat.Number {
	q := mgl64.Mat4ToQuat(rm.mat.Mat4())
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// EulerAngles returns the roll-pitch-yaw angles of this rotation. At the pitch singularity (|pitch| = pi/2)
// roll is reported as zero and the whole rotation about Z is attributed to yaw.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	r20 := math.Max(-1, math.Min(1, rm.At(2, 0)))
	pitch := math.Asin(-r20)
	if math.Abs(r20) > 1-1e-12 {
		return &EulerAngles{Roll: 0, Pitch: pitch, Yaw: math.Atan2(-rm.At(0, 1), rm.At(1, 1))}
	}
	return &EulerAngles{
		Roll:  math.Atan2(rm.At(2, 1), rm.At(2, 2)),
		Pitch: pitch,
		Yaw:   math.Atan2(rm.At(1, 0), rm.At(0, 0)),
	}
}

// QuatToRotationMatrix converts a unit quaternion to a rotation matrix.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	m := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Normalize().Mat4().Mat3()
	return &RotationMatrix{m}
}
