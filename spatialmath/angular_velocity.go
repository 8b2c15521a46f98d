package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrEulerRateSingularity is returned when converting an angular velocity to Euler angle rates at pitch = ±pi/2.
var ErrEulerRateSingularity = errors.New("euler angle rates are undefined at pitch = ±pi/2")

// EulerRatesToAngularVelocity maps the time derivative of roll-pitch-yaw angles to the angular velocity
// expressed in the fixed (world) frame. For R = Rz(yaw) Ry(pitch) Rx(roll):
//
//	w = rollRate * Rz Ry x + pitchRate * Rz y + yawRate * z
func EulerRatesToAngularVelocity(ea *EulerAngles, rates r3.Vector) r3.Vector {
	cy, sy := math.Cos(ea.Yaw), math.Sin(ea.Yaw)
	cp, sp := math.Cos(ea.Pitch), math.Sin(ea.Pitch)
	return r3.Vector{
		X: cy*cp*rates.X - sy*rates.Y,
		Y: sy*cp*rates.X + cy*rates.Y,
		Z: -sp*rates.X + rates.Z,
	}
}

// AngularVelocityToEulerRates is the inverse of EulerRatesToAngularVelocity.
func AngularVelocityToEulerRates(ea *EulerAngles, w r3.Vector) (r3.Vector, error) {
	cy, sy := math.Cos(ea.Yaw), math.Sin(ea.Yaw)
	cp, sp := math.Cos(ea.Pitch), math.Sin(ea.Pitch)
	if math.Abs(cp) < 1e-9 {
		return r3.Vector{}, ErrEulerRateSingularity
	}
	rollRate := (cy*w.X + sy*w.Y) / cp
	return r3.Vector{
		X: rollRate,
		Y: -sy*w.X + cy*w.Y,
		Z: w.Z + sp*rollRate,
	}, nil
}

// EulerAccelerationsToAngularAcceleration maps roll-pitch-yaw rates and their second derivatives to the angular
// acceleration in the fixed (world) frame. It is the time derivative of EulerRatesToAngularVelocity:
//
//	dw/dt = E(rpy) * accs + dE/dt(rpy, rates) * rates
func EulerAccelerationsToAngularAcceleration(ea *EulerAngles, rates, accs r3.Vector) r3.Vector {
	cy, sy := math.Cos(ea.Yaw), math.Sin(ea.Yaw)
	cp, sp := math.Cos(ea.Pitch), math.Sin(ea.Pitch)
	pitchRate, yawRate := rates.Y, rates.Z
	// derivatives of the roll and pitch columns of E; the yaw column is constant
	dRoll := r3.Vector{
		X: -sy*cp*yawRate - cy*sp*pitchRate,
		Y: cy*cp*yawRate - sy*sp*pitchRate,
		Z: -cp * pitchRate,
	}
	dPitch := r3.Vector{X: -cy * yawRate, Y: -sy * yawRate}
	return EulerRatesToAngularVelocity(ea, accs).Add(dRoll.Mul(rates.X)).Add(dPitch.Mul(rates.Y))
}
