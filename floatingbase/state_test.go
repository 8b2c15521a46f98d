package floatingbase

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"go.viam.com/test"

	"go.viam.com/floatingbase/logging"
	"go.viam.com/floatingbase/referenceframe"
)

func randomVector(rnd *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rnd.NormFloat64()
	}
	return v
}

func TestGeneralizedRoundTrip(t *testing.T) {
	sys := loadQuadruped(t)
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		var base [6]float64
		copy(base[:], randomVector(rnd, 6))
		joints := randomVector(rnd, 8)

		gen, err := sys.ToGeneralizedJointState(base, joints)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, gen, test.ShouldHaveLength, 14)
		test.That(t, gen[:6], test.ShouldResemble, base[:])
		test.That(t, gen[6:], test.ShouldResemble, joints)

		gotBase, gotJoints, err := sys.FromGeneralizedJointState(gen)
		test.That(t, err, test.ShouldBeNil)
		if diff := cmp.Diff(base, gotBase); diff != "" {
			t.Fatalf("base mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(joints, gotJoints); diff != "" {
			t.Fatalf("joints mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestGeneralizedDimensionMismatch(t *testing.T) {
	sys := loadQuadruped(t)
	_, err := sys.ToGeneralizedJointState([6]float64{}, make([]float64, 7))
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
	_, err = sys.ToGeneralizedJointState([6]float64{}, nil)
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)

	for _, n := range []int{0, 5, 13, 15} {
		_, _, err = sys.FromGeneralizedJointState(make([]float64, n))
		test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
	}
}

func TestWholeBodyStateScenario(t *testing.T) {
	sys := loadQuadruped(t)
	ws := sys.NewWholeBodyState()
	test.That(t, ws.JointDoF(), test.ShouldEqual, 8)
	test.That(t, ws.JointPositions(), test.ShouldResemble, sys.DefaultPosture())

	hfe, err := sys.JointID("lf_hfe_joint")
	test.That(t, err, test.ShouldBeNil)
	kfe, err := sys.JointID("lf_kfe_joint")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ws.SetJointPosition(0.75, hfe), test.ShouldBeNil)
	test.That(t, ws.SetJointPosition(-1.5, kfe), test.ShouldBeNil)

	q, err := ws.JointPosition(hfe)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q, test.ShouldEqual, 0.75)
	q, err = ws.JointPosition(kfe)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q, test.ShouldEqual, -1.5)

	ws.SetBasePosition(r3.Vector{X: 1, Y: 2, Z: 0.5})
	ws.SetBaseRPY(r3.Vector{Z: 0.3})
	ws.SetBaseVelocityW(r3.Vector{X: 0.2})
	test.That(t, ws.SetJointVelocity(1.25, kfe), test.ShouldBeNil)

	pos, err := sys.GeneralizedPositions(ws)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pos[:6], test.ShouldResemble, []float64{1, 2, 0.5, 0, 0, 0.3})
	test.That(t, pos[6+hfe], test.ShouldEqual, 0.75)
	test.That(t, pos[6+kfe], test.ShouldEqual, -1.5)

	vel, err := sys.GeneralizedVelocities(ws)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, vel[0], test.ShouldEqual, 0.2)
	test.That(t, vel[6+kfe], test.ShouldEqual, 1.25)

	other := sys.NewWholeBodyState()
	other.SetJointDoF(2)
	test.That(t, sys.SetGeneralizedState(other, pos, vel), test.ShouldBeNil)
	test.That(t, other.JointDoF(), test.ShouldEqual, 8)
	test.That(t, other.BasePos(), test.ShouldResemble, ws.BasePos())
	test.That(t, other.BaseVel(), test.ShouldResemble, ws.BaseVel())
	test.That(t, other.JointPositions(), test.ShouldResemble, ws.JointPositions())
	test.That(t, other.JointVelocities(), test.ShouldResemble, ws.JointVelocities())

	test.That(t, sys.SetGeneralizedState(other, pos, nil), test.ShouldBeNil)
	err = sys.SetGeneralizedState(other, pos[:10], nil)
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
	err = sys.SetGeneralizedState(other, pos, vel[:3])
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
}

func TestBranchRoundTrip(t *testing.T) {
	sys := loadQuadruped(t)
	rnd := rand.New(rand.NewSource(11))

	for _, foot := range []string{"lf_foot", "lh_foot", "rf_foot", "rh_foot"} {
		joints := randomVector(rnd, 8)
		orig := append([]float64(nil), joints...)
		branch := randomVector(rnd, 2)

		test.That(t, sys.SetBranchState(joints, branch, foot), test.ShouldBeNil)
		got, err := sys.GetBranchState(joints, foot)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldResemble, branch)

		ids, err := sys.BranchJoints(foot)
		test.That(t, err, test.ShouldBeNil)
		onBranch := map[int]bool{}
		for _, id := range ids {
			onBranch[id] = true
		}
		for id := range joints {
			if !onBranch[id] {
				test.That(t, joints[id], test.ShouldEqual, orig[id])
			}
		}
	}
}

func TestBranchJoints(t *testing.T) {
	sys := loadQuadruped(t)
	ids, err := sys.BranchJoints("rh_foot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ids, test.ShouldResemble, []int{6, 7})
	names, err := sys.BranchJointNames("lh_foot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, names, test.ShouldResemble, []string{"lh_hfe_joint", "lh_kfe_joint"})

	joints := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	got, err := sys.GetBranchState(joints, "rf_foot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, []float64{4, 5})
}

func TestBranchErrors(t *testing.T) {
	sys := loadQuadruped(t)
	joints := []float64{0, 1, 2, 3, 4, 5, 6, 7}

	_, err := sys.GetBranchState(joints, "tail")
	test.That(t, errors.Is(err, referenceframe.ErrUnknownEndEffector), test.ShouldBeTrue)
	err = sys.SetBranchState(joints, []float64{1, 2}, "tail")
	test.That(t, errors.Is(err, referenceframe.ErrUnknownEndEffector), test.ShouldBeTrue)
	_, err = sys.BranchJoints("trunk")
	test.That(t, errors.Is(err, referenceframe.ErrUnknownEndEffector), test.ShouldBeTrue)

	err = sys.SetBranchState(joints, []float64{9}, "lf_foot")
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
	err = sys.SetBranchState(joints[:4], []float64{9, 9}, "lf_foot")
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
	_, err = sys.GetBranchState(joints[:4], "lf_foot")
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
	test.That(t, joints, test.ShouldResemble, []float64{0, 1, 2, 3, 4, 5, 6, 7})
}

func TestEndEffectors(t *testing.T) {
	sys := loadQuadruped(t)
	test.That(t, sys.EndEffectors(), test.ShouldResemble, map[string]int{
		"lf_foot": 0, "lh_foot": 1, "rf_foot": 2, "rh_foot": 3,
	})
	test.That(t, sys.EndEffectorNames(), test.ShouldResemble, []string{"lf_foot", "lh_foot", "rf_foot", "rh_foot"})
	test.That(t, sys.NumberOfEndEffectors(), test.ShouldEqual, 4)
	test.That(t, sys.NumberOfEndEffectors(Foot), test.ShouldEqual, 4)
	test.That(t, sys.NumberOfEndEffectors(Hand, Tool), test.ShouldEqual, 0)
	test.That(t, sys.EndEffectorNames(Hand), test.ShouldBeEmpty)

	id, err := sys.EndEffectorID("rf_foot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, id, test.ShouldEqual, 2)
	_, err = sys.EndEffectorID("tail")
	test.That(t, errors.Is(err, referenceframe.ErrUnknownEndEffector), test.ShouldBeTrue)
	_, err = sys.EndEffectorType("tail")
	test.That(t, errors.Is(err, referenceframe.ErrUnknownEndEffector), test.ShouldBeTrue)
}

func TestEndEffectorConfig(t *testing.T) {
	// leaves become tools when nothing is configured
	sys, err := NewSystem(quadrupedModel(t), nil, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sys.NumberOfEndEffectors(Tool), test.ShouldEqual, 4)
	test.That(t, sys.NumberOfEndEffectors(Foot), test.ShouldEqual, 0)

	// configured end-effectors are numbered in traversal order, not config order
	cfg, err := UnmarshalConfig([]byte("end_effectors:\n  rh_lowerleg: hand\n  lf_foot: foot\n"))
	test.That(t, err, test.ShouldBeNil)
	sys, err = NewSystem(quadrupedModel(t), cfg, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sys.EndEffectorNames(), test.ShouldResemble, []string{"lf_foot", "rh_lowerleg"})
	test.That(t, sys.EndEffectorNames(Hand), test.ShouldResemble, []string{"rh_lowerleg"})
	ids, err := sys.BranchJoints("rh_lowerleg")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ids, test.ShouldResemble, []int{6, 7})

	cfg, err = UnmarshalConfig([]byte("end_effectors:\n  tail: tool\n"))
	test.That(t, err, test.ShouldBeNil)
	_, err = NewSystem(quadrupedModel(t), cfg, logging.NewTestLogger(t))
	test.That(t, errors.Is(err, referenceframe.ErrParse), test.ShouldBeTrue)
}
