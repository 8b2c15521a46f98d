package floatingbase

import (
	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/wholebody"
)

// ToGeneralizedJointState concatenates the six base coordinates (x, y, z, roll, pitch, yaw) and the joint
// coordinates in identifier order. All six base coordinates are carried whether or not their slot is active.
func (s *System) ToGeneralizedJointState(base [NumBaseSlots]float64, joints []float64) ([]float64, error) {
	if len(joints) != s.JointDoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(joints), s.JointDoF())
	}
	gen := make([]float64, NumBaseSlots+len(joints))
	copy(gen, base[:])
	copy(gen[NumBaseSlots:], joints)
	return gen, nil
}

// FromGeneralizedJointState splits a generalized vector into base and joint coordinates. It is the exact inverse
// of ToGeneralizedJointState.
func (s *System) FromGeneralizedJointState(gen []float64) ([NumBaseSlots]float64, []float64, error) {
	var base [NumBaseSlots]float64
	if len(gen) != NumBaseSlots+s.JointDoF() {
		return base, nil, referenceframe.NewIncorrectDoFError(len(gen), NumBaseSlots+s.JointDoF())
	}
	copy(base[:], gen)
	return base, append([]float64(nil), gen[NumBaseSlots:]...), nil
}

// NewWholeBodyState returns a state sized for this system with the joints at the default posture.
func (s *System) NewWholeBodyState() *wholebody.State {
	ws := wholebody.NewState(s.JointDoF())
	//nolint:errcheck
	ws.SetJointPositions(s.defaultPosture)
	return ws
}

// GeneralizedPositions returns the generalized position vector of a whole-body state.
func (s *System) GeneralizedPositions(ws *wholebody.State) ([]float64, error) {
	return s.ToGeneralizedJointState(ws.BasePos(), ws.JointPositions())
}

// GeneralizedVelocities returns the generalized velocity vector of a whole-body state: the base linear and
// angular velocities in the world frame followed by the joint velocities.
func (s *System) GeneralizedVelocities(ws *wholebody.State) ([]float64, error) {
	return s.ToGeneralizedJointState(ws.BaseVel(), ws.JointVelocities())
}

// SetGeneralizedState writes generalized positions and velocities into a whole-body state. The state's joint
// arrays are resized to this system first. A nil vel leaves the velocities alone.
func (s *System) SetGeneralizedState(ws *wholebody.State, pos, vel []float64) error {
	base, q, err := s.FromGeneralizedJointState(pos)
	if err != nil {
		return err
	}
	var baseVel [NumBaseSlots]float64
	var qd []float64
	if vel != nil {
		if baseVel, qd, err = s.FromGeneralizedJointState(vel); err != nil {
			return err
		}
	}
	ws.SetJointDoF(s.JointDoF())
	ws.SetBasePos(base)
	if err := ws.SetJointPositions(q); err != nil {
		return err
	}
	if vel == nil {
		return nil
	}
	ws.SetBaseVel(baseVel)
	return ws.SetJointVelocities(qd)
}

// GetBranchState reads the joint values of the branch that ends at the named end-effector, ordered from the root
// outwards.
func (s *System) GetBranchState(joints []float64, endEffector string) ([]float64, error) {
	ee, err := s.endEffector(endEffector)
	if err != nil {
		return nil, err
	}
	if len(joints) != s.JointDoF() {
		return nil, referenceframe.NewIncorrectDoFError(len(joints), s.JointDoF())
	}
	out := make([]float64, len(ee.branch))
	for i, id := range ee.branch {
		out[i] = joints[id]
	}
	return out, nil
}

// SetBranchState writes branch values into the entries of joints that belong to the branch ending at the named
// end-effector. Every other entry is left untouched, and nothing is written on error.
func (s *System) SetBranchState(joints, branch []float64, endEffector string) error {
	ee, err := s.endEffector(endEffector)
	if err != nil {
		return err
	}
	if len(joints) != s.JointDoF() {
		return referenceframe.NewIncorrectDoFError(len(joints), s.JointDoF())
	}
	if len(branch) != len(ee.branch) {
		return referenceframe.NewIncorrectDoFError(len(branch), len(ee.branch))
	}
	for i, id := range ee.branch {
		joints[id] = branch[i]
	}
	return nil
}
