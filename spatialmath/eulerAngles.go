package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three angles used to represent the rotation of an object in 3D Euclidean space.
// They follow the roll-pitch-yaw convention used by URDF: a rotation about the fixed X axis by Roll,
// then about the fixed Y axis by Pitch, then about the fixed Z axis by Yaw, i.e. R = Rz(yaw) Ry(pitch) Rx(roll).
type EulerAngles struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// EulerAngles returns orientation in Euler angle representation.
func (ea *EulerAngles) EulerAngles() *EulerAngles {
	return ea
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	m := mgl64.Rotate3DZ(ea.Yaw).Mul3(mgl64.Rotate3DY(ea.Pitch)).Mul3(mgl64.Rotate3DX(ea.Roll))
	return &RotationMatrix{m}
}

// Quaternion returns orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	cr, sr := math.Cos(ea.Roll/2), math.Sin(ea.Roll/2)
	cp, sp := math.Cos(ea.Pitch/2), math.Sin(ea.Pitch/2)
	cy, sy := math.Cos(ea.Yaw/2), math.Sin(ea.Yaw/2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// AxisAngles returns the orientation in axis angle representation.
func (ea *EulerAngles) AxisAngles() *R4AA {
	return QuatToR4AA(ea.Quaternion())
}

// QuatToEulerAngles converts a quaternion to the roll-pitch-yaw representation.
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	return QuatToRotationMatrix(q).EulerAngles()
}
