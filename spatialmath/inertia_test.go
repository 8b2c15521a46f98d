package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestRotateInertia(t *testing.T) {
	in := NewInertiaTensor(1, 0, 0, 2, 0, 3)
	test.That(t, in.At(1, 1), test.ShouldEqual, 2.0)

	// a quarter turn about z swaps the x and y moments
	out := RotateInertia((&EulerAngles{Yaw: math.Pi / 2}).RotationMatrix(), in)
	test.That(t, out.At(0, 0), test.ShouldAlmostEqual, 2)
	test.That(t, out.At(1, 1), test.ShouldAlmostEqual, 1)
	test.That(t, out.At(2, 2), test.ShouldAlmostEqual, 3)
	test.That(t, out.At(0, 1), test.ShouldAlmostEqual, 0)

	// the trace is invariant under rotation
	skewed := RotateInertia((&EulerAngles{Roll: 0.4, Pitch: 0.2, Yaw: -0.9}).RotationMatrix(), NewInertiaTensor(1, 0.1, 0, 2, 0.05, 3))
	test.That(t, skewed.At(0, 0)+skewed.At(1, 1)+skewed.At(2, 2), test.ShouldAlmostEqual, 6)
	test.That(t, skewed.At(0, 2), test.ShouldEqual, skewed.At(2, 0))
}
