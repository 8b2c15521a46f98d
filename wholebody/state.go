// Package wholebody holds the caller-owned state of a floating-base system: the base pose and its rates in the
// world frame plus per-joint arrays indexed by joint identifier.
package wholebody

import (
	"github.com/golang/geo/r3"

	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/spatialmath"
)

// State is a whole-body state. The four joint arrays always have the same length, JointDoF.
// A State is not safe for concurrent mutation.
type State struct {
	basePos    r3.Vector
	baseRPY    spatialmath.EulerAngles
	baseVel    r3.Vector
	baseAngVel r3.Vector
	baseAcc    r3.Vector
	baseAngAcc r3.Vector

	jointPos []float64
	jointVel []float64
	jointAcc []float64
	jointEff []float64
}

// NewState returns a zero state for a system with the given joint degrees of freedom.
func NewState(jointDoF int) *State {
	s := &State{}
	s.SetJointDoF(jointDoF)
	return s
}

// SetJointDoF resizes every joint array to n, keeping the common prefix and zeroing new entries.
func (s *State) SetJointDoF(n int) {
	if n < 0 {
		n = 0
	}
	s.jointPos = resize(s.jointPos, n)
	s.jointVel = resize(s.jointVel, n)
	s.jointAcc = resize(s.jointAcc, n)
	s.jointEff = resize(s.jointEff, n)
}

func resize(v []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, v)
	return out
}

// JointDoF returns the length of the joint arrays.
func (s *State) JointDoF() int {
	return len(s.jointPos)
}

// SetBasePosition sets the base position in the world frame.
func (s *State) SetBasePosition(p r3.Vector) {
	s.basePos = p
}

// BasePosition returns the base position in the world frame.
func (s *State) BasePosition() r3.Vector {
	return s.basePos
}

// SetBaseRPY sets the base orientation as roll, pitch and yaw.
func (s *State) SetBaseRPY(rpy r3.Vector) {
	s.baseRPY = spatialmath.EulerAngles{Roll: rpy.X, Pitch: rpy.Y, Yaw: rpy.Z}
}

// BaseRPY returns the base orientation as roll, pitch and yaw.
func (s *State) BaseRPY() r3.Vector {
	return r3.Vector{X: s.baseRPY.Roll, Y: s.baseRPY.Pitch, Z: s.baseRPY.Yaw}
}

// BasePose returns the pose of the base in the world frame.
func (s *State) BasePose() spatialmath.Pose {
	rpy := s.baseRPY
	return spatialmath.NewPose(s.basePos, &rpy)
}

// SetBaseVelocityW sets the linear velocity of the base in the world frame.
func (s *State) SetBaseVelocityW(v r3.Vector) {
	s.baseVel = v
}

// BaseVelocityW returns the linear velocity of the base in the world frame.
func (s *State) BaseVelocityW() r3.Vector {
	return s.baseVel
}

// SetBaseAngularVelocityW sets the angular velocity of the base in the world frame.
func (s *State) SetBaseAngularVelocityW(w r3.Vector) {
	s.baseAngVel = w
}

// BaseAngularVelocityW returns the angular velocity of the base in the world frame.
func (s *State) BaseAngularVelocityW() r3.Vector {
	return s.baseAngVel
}

// SetBaseRPYVelocityW sets the angular velocity of the base from roll, pitch and yaw rates at the current
// orientation.
func (s *State) SetBaseRPYVelocityW(rates r3.Vector) {
	s.baseAngVel = spatialmath.EulerRatesToAngularVelocity(&s.baseRPY, rates)
}

// BaseRPYVelocityW returns the roll, pitch and yaw rates matching the base angular velocity. It fails at pitch
// of +-pi/2 where the rates are undefined.
func (s *State) BaseRPYVelocityW() (r3.Vector, error) {
	return spatialmath.AngularVelocityToEulerRates(&s.baseRPY, s.baseAngVel)
}

// SetBaseRPYAccelerationW sets the angular acceleration of the base from roll, pitch and yaw rates and their
// second derivatives at the current orientation.
func (s *State) SetBaseRPYAccelerationW(rates, accs r3.Vector) {
	s.baseAngAcc = spatialmath.EulerAccelerationsToAngularAcceleration(&s.baseRPY, rates, accs)
}

// SetBaseAccelerationW sets the linear acceleration of the base in the world frame.
func (s *State) SetBaseAccelerationW(a r3.Vector) {
	s.baseAcc = a
}

// BaseAccelerationW returns the linear acceleration of the base in the world frame.
func (s *State) BaseAccelerationW() r3.Vector {
	return s.baseAcc
}

// SetBaseAngularAccelerationW sets the angular acceleration of the base in the world frame.
func (s *State) SetBaseAngularAccelerationW(a r3.Vector) {
	s.baseAngAcc = a
}

// BaseAngularAccelerationW returns the angular acceleration of the base in the world frame.
func (s *State) BaseAngularAccelerationW() r3.Vector {
	return s.baseAngAcc
}

// BasePos returns the base coordinates in generalized order: x, y, z, roll, pitch, yaw.
func (s *State) BasePos() [6]float64 {
	return [6]float64{s.basePos.X, s.basePos.Y, s.basePos.Z, s.baseRPY.Roll, s.baseRPY.Pitch, s.baseRPY.Yaw}
}

// SetBasePos sets the base from coordinates in generalized order.
func (s *State) SetBasePos(base [6]float64) {
	s.basePos = r3.Vector{X: base[0], Y: base[1], Z: base[2]}
	s.baseRPY = spatialmath.EulerAngles{Roll: base[3], Pitch: base[4], Yaw: base[5]}
}

// BaseVel returns the linear then angular base velocity, both in the world frame.
func (s *State) BaseVel() [6]float64 {
	return stack(s.baseVel, s.baseAngVel)
}

// SetBaseVel sets the linear then angular base velocity, both in the world frame.
func (s *State) SetBaseVel(v [6]float64) {
	s.baseVel, s.baseAngVel = unstack(v)
}

// BaseAcc returns the linear then angular base acceleration, both in the world frame.
func (s *State) BaseAcc() [6]float64 {
	return stack(s.baseAcc, s.baseAngAcc)
}

// SetBaseAcc sets the linear then angular base acceleration, both in the world frame.
func (s *State) SetBaseAcc(a [6]float64) {
	s.baseAcc, s.baseAngAcc = unstack(a)
}

func stack(lin, ang r3.Vector) [6]float64 {
	return [6]float64{lin.X, lin.Y, lin.Z, ang.X, ang.Y, ang.Z}
}

func unstack(v [6]float64) (r3.Vector, r3.Vector) {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, r3.Vector{X: v[3], Y: v[4], Z: v[5]}
}

// SetJointPosition sets the position of the joint with the given identifier.
func (s *State) SetJointPosition(value float64, id int) error {
	return set(s.jointPos, value, id)
}

// JointPosition returns the position of the joint with the given identifier.
func (s *State) JointPosition(id int) (float64, error) {
	return get(s.jointPos, id)
}

// SetJointPositions replaces every joint position.
func (s *State) SetJointPositions(q []float64) error {
	return setAll(s.jointPos, q)
}

// JointPositions returns a copy of the joint positions.
func (s *State) JointPositions() []float64 {
	return append([]float64(nil), s.jointPos...)
}

// SetJointVelocity sets the velocity of the joint with the given identifier.
func (s *State) SetJointVelocity(value float64, id int) error {
	return set(s.jointVel, value, id)
}

// JointVelocity returns the velocity of the joint with the given identifier.
func (s *State) JointVelocity(id int) (float64, error) {
	return get(s.jointVel, id)
}

// SetJointVelocities replaces every joint velocity.
func (s *State) SetJointVelocities(qd []float64) error {
	return setAll(s.jointVel, qd)
}

// JointVelocities returns a copy of the joint velocities.
func (s *State) JointVelocities() []float64 {
	return append([]float64(nil), s.jointVel...)
}

// SetJointAcceleration sets the acceleration of the joint with the given identifier.
func (s *State) SetJointAcceleration(value float64, id int) error {
	return set(s.jointAcc, value, id)
}

// JointAcceleration returns the acceleration of the joint with the given identifier.
func (s *State) JointAcceleration(id int) (float64, error) {
	return get(s.jointAcc, id)
}

// SetJointAccelerations replaces every joint acceleration.
func (s *State) SetJointAccelerations(qdd []float64) error {
	return setAll(s.jointAcc, qdd)
}

// JointAccelerations returns a copy of the joint accelerations.
func (s *State) JointAccelerations() []float64 {
	return append([]float64(nil), s.jointAcc...)
}

// SetJointEffort sets the effort of the joint with the given identifier.
func (s *State) SetJointEffort(value float64, id int) error {
	return set(s.jointEff, value, id)
}

// JointEffort returns the effort of the joint with the given identifier.
func (s *State) JointEffort(id int) (float64, error) {
	return get(s.jointEff, id)
}

// SetJointEfforts replaces every joint effort.
func (s *State) SetJointEfforts(tau []float64) error {
	return setAll(s.jointEff, tau)
}

// JointEfforts returns a copy of the joint efforts.
func (s *State) JointEfforts() []float64 {
	return append([]float64(nil), s.jointEff...)
}

func set(v []float64, value float64, id int) error {
	if id < 0 || id >= len(v) {
		return referenceframe.NewUnknownJointIDError(id, len(v))
	}
	v[id] = value
	return nil
}

func get(v []float64, id int) (float64, error) {
	if id < 0 || id >= len(v) {
		return 0, referenceframe.NewUnknownJointIDError(id, len(v))
	}
	return v[id], nil
}

func setAll(dst, src []float64) error {
	if len(src) != len(dst) {
		return referenceframe.NewIncorrectDoFError(len(src), len(dst))
	}
	copy(dst, src)
	return nil
}
