package floatingbase

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/floatingbase/kinematics"
	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/spatialmath"
	"go.viam.com/floatingbase/wholebody"
)

// TotalMass returns the sum of the masses of every body.
func (s *System) TotalMass() float64 {
	return s.totalMass
}

// BodyMass returns the mass of the named body.
func (s *System) BodyMass(name string) (float64, error) {
	b, err := s.tree.GetBody(name)
	if err != nil {
		return 0, err
	}
	return s.masses[b.Index()], nil
}

// GravityAcceleration returns the magnitude of the gravity acceleration.
func (s *System) GravityAcceleration() float64 {
	return s.gravity
}

// GravityVector returns the gravity acceleration in the world frame, pointing down z.
func (s *System) GravityVector() r3.Vector {
	return r3.Vector{Z: -s.gravity}
}

// FloatingBaseCoM returns the center of mass of the root body in its own frame.
func (s *System) FloatingBaseCoM() r3.Vector {
	return s.tree.Root().CoM()
}

// BodyCoM returns the center of mass of the named body in its own frame.
func (s *System) BodyCoM(name string) (r3.Vector, error) {
	b, err := s.tree.GetBody(name)
	if err != nil {
		return r3.Vector{}, err
	}
	return b.CoM(), nil
}

// BodyInertia returns the inertia tensor of the named body about its center of mass, in its own frame.
func (s *System) BodyInertia(name string) (*mat.SymDense, error) {
	b, err := s.tree.GetBody(name)
	if err != nil {
		return nil, err
	}
	return b.Inertia(), nil
}

// BasePose converts base coordinates (x, y, z, roll, pitch, yaw) into the world pose of the root body.
func BasePose(base [NumBaseSlots]float64) spatialmath.Pose {
	return spatialmath.NewPose(
		r3.Vector{X: base[BaseX], Y: base[BaseY], Z: base[BaseZ]},
		&spatialmath.EulerAngles{Roll: base[BaseRoll], Pitch: base[BasePitch], Yaw: base[BaseYaw]},
	)
}

// ForwardKinematics places every body of the system for the given base and joint coordinates.
func (s *System) ForwardKinematics(base [NumBaseSlots]float64, joints []float64) (*kinematics.Kinematics, error) {
	return s.tree.ForwardKinematics(BasePose(base), joints)
}

// SystemCoM returns the world position of the center of mass of the whole system. A massless system has its
// center of mass at the origin.
func (s *System) SystemCoM(base [NumBaseSlots]float64, joints []float64) (r3.Vector, error) {
	kin, err := s.ForwardKinematics(base, joints)
	if err != nil {
		return r3.Vector{}, err
	}
	if s.totalMass == 0 {
		return r3.Vector{}, nil
	}
	var sum r3.Vector
	for _, b := range s.tree.Bodies() {
		sum = sum.Add(kin.CoM(b).Mul(s.masses[b.Index()]))
	}
	return sum.Mul(1 / s.totalMass), nil
}

// SystemCoMRate returns the world velocity of the center of mass of the whole system. baseVel holds the linear
// velocity of the root frame origin followed by the angular velocity of the root, both in the world frame.
func (s *System) SystemCoMRate(
	base [NumBaseSlots]float64,
	joints []float64,
	baseVel [NumBaseSlots]float64,
	jointVel []float64,
) (r3.Vector, error) {
	if len(jointVel) != s.JointDoF() {
		return r3.Vector{}, referenceframe.NewIncorrectDoFError(len(jointVel), s.JointDoF())
	}
	kin, err := s.ForwardKinematics(base, joints)
	if err != nil {
		return r3.Vector{}, err
	}
	if s.totalMass == 0 {
		return r3.Vector{}, nil
	}

	v := r3.Vector{X: baseVel[0], Y: baseVel[1], Z: baseVel[2]}
	w := r3.Vector{X: baseVel[3], Y: baseVel[4], Z: baseVel[5]}
	origin := kin.BodyPose(s.tree.Root()).Point()
	qd := mat.NewVecDense(max(len(jointVel), 1), nil)
	for i, x := range jointVel {
		qd.SetVec(i, x)
	}

	var sum r3.Vector
	var jv mat.VecDense
	for _, b := range s.tree.Bodies() {
		m := s.masses[b.Index()]
		if m == 0 {
			continue
		}
		com := kin.CoM(b)
		vel := v.Add(w.Cross(com.Sub(origin)))
		jv.MulVec(kin.PointJacobian(b, com), qd)
		vel = vel.Add(r3.Vector{X: jv.AtVec(0), Y: jv.AtVec(1), Z: jv.AtVec(2)})
		sum = sum.Add(vel.Mul(m))
	}
	return sum.Mul(1 / s.totalMass), nil
}

// StateCoM is SystemCoM for a whole-body state.
func (s *System) StateCoM(ws *wholebody.State) (r3.Vector, error) {
	return s.SystemCoM(ws.BasePos(), ws.JointPositions())
}

// StateCoMRate is SystemCoMRate for a whole-body state.
func (s *System) StateCoMRate(ws *wholebody.State) (r3.Vector, error) {
	return s.SystemCoMRate(ws.BasePos(), ws.JointPositions(), ws.BaseVel(), ws.JointVelocities())
}
