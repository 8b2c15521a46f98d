package kinematics

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/spatialmath"
)

func TestForwardKinematicsZero(t *testing.T) {
	tree := loadQuadruped(t)
	kin, err := tree.ForwardKinematics(spatialmath.NewZeroPose(), make([]float64, 8))
	test.That(t, err, test.ShouldBeNil)

	foot, err := tree.GetBody("lf_foot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(kin.BodyPose(foot).Point(), r3.Vector{X: 0.35, Y: 0.2, Z: -0.6}, 1e-9),
		test.ShouldBeTrue)

	lower, err := tree.GetBody("rh_lowerleg")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(kin.CoM(lower), r3.Vector{X: -0.35, Y: -0.2, Z: -0.45}, 1e-9),
		test.ShouldBeTrue)

	test.That(t, spatialmath.R3VectorAlmostEqual(kin.JointOrigin(1), r3.Vector{X: 0.35, Y: 0.2, Z: -0.3}, 1e-9),
		test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(kin.JointAxis(1), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestForwardKinematicsBent(t *testing.T) {
	tree := loadQuadruped(t)
	q := make([]float64, 8)
	q[0] = math.Pi / 2

	base := spatialmath.NewPoseFromPoint(r3.Vector{X: 1, Y: 2, Z: 0.5})
	kin, err := tree.ForwardKinematics(base, q)
	test.That(t, err, test.ShouldBeNil)

	// a quarter turn about y swings the leg from -z to -x
	foot, err := tree.GetBody("lf_foot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(kin.BodyPose(foot).Point(), r3.Vector{X: 1.35 - 0.6, Y: 2.2, Z: 0.5}, 1e-9),
		test.ShouldBeTrue)

	// other legs are untouched
	other, err := tree.GetBody("lh_foot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(kin.BodyPose(other).Point(), r3.Vector{X: 0.65, Y: 2.2, Z: -0.1}, 1e-9),
		test.ShouldBeTrue)

	// yawing the base carries every body with it
	yawed := spatialmath.NewPoseFromOrientation(&spatialmath.EulerAngles{Yaw: math.Pi / 2})
	kin, err = tree.ForwardKinematics(yawed, make([]float64, 8))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(kin.BodyPose(foot).Point(), r3.Vector{X: -0.2, Y: 0.35, Z: -0.6}, 1e-9),
		test.ShouldBeTrue)
}

func TestForwardKinematicsDimension(t *testing.T) {
	tree := loadQuadruped(t)
	_, err := tree.ForwardKinematics(spatialmath.NewZeroPose(), make([]float64, 7))
	test.That(t, errors.Is(err, referenceframe.ErrDimensionMismatch), test.ShouldBeTrue)
	test.That(t, err, test.ShouldBeError, referenceframe.NewIncorrectDoFError(7, 8))
}

func TestPrismaticTransform(t *testing.T) {
	tree, err := NewTree(&referenceframe.ModelConfig{
		Bodies: []referenceframe.BodyConfig{{ID: "rail", Mass: 1}, {ID: "carriage", Mass: 1, Parent: "slide"}},
		Joints: []referenceframe.JointConfig{{
			ID: "slide", Type: referenceframe.PrismaticJoint, Parent: "rail",
			Origin: &referenceframe.PoseConfig{Translation: r3.Vector{Z: 1}},
			Axis:   &referenceframe.AxisConfig{X: 1},
		}},
	})
	test.That(t, err, test.ShouldBeNil)
	kin, err := tree.ForwardKinematics(spatialmath.NewZeroPose(), []float64{0.4})
	test.That(t, err, test.ShouldBeNil)
	carriage, err := tree.GetBody("carriage")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(kin.BodyPose(carriage).Point(), r3.Vector{X: 0.4, Z: 1}, 1e-12), test.ShouldBeTrue)

	jac := kin.PointJacobian(carriage, kin.CoM(carriage))
	test.That(t, jac.At(0, 0), test.ShouldAlmostEqual, 1)
	test.That(t, jac.At(1, 0), test.ShouldAlmostEqual, 0)
	test.That(t, jac.At(2, 0), test.ShouldAlmostEqual, 0)
}

func TestPointJacobianMatchesFiniteDifference(t *testing.T) {
	tree := loadQuadruped(t)
	base := spatialmath.NewPose(r3.Vector{X: 0.1, Z: 0.4}, &spatialmath.EulerAngles{Roll: 0.1, Pitch: -0.2, Yaw: 0.3})
	q := []float64{0.3, -0.8, -0.2, 0.7, 0.5, -1.1, -0.4, 1.0}

	kin, err := tree.ForwardKinematics(base, q)
	test.That(t, err, test.ShouldBeNil)
	lower, err := tree.GetBody("rf_lowerleg")
	test.That(t, err, test.ShouldBeNil)
	jac := kin.PointJacobian(lower, kin.CoM(lower))
	rows, cols := jac.Dims()
	test.That(t, rows, test.ShouldEqual, 3)
	test.That(t, cols, test.ShouldEqual, 8)

	const h = 1e-6
	for i := range q {
		plus := append([]float64(nil), q...)
		minus := append([]float64(nil), q...)
		plus[i] += h
		minus[i] -= h
		kp, err := tree.ForwardKinematics(base, plus)
		test.That(t, err, test.ShouldBeNil)
		km, err := tree.ForwardKinematics(base, minus)
		test.That(t, err, test.ShouldBeNil)
		fd := kp.CoM(lower).Sub(km.CoM(lower)).Mul(1 / (2 * h))
		test.That(t, jac.At(0, i), test.ShouldAlmostEqual, fd.X, 1e-6)
		test.That(t, jac.At(1, i), test.ShouldAlmostEqual, fd.Y, 1e-6)
		test.That(t, jac.At(2, i), test.ShouldAlmostEqual, fd.Z, 1e-6)
	}
}
