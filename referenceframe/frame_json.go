package referenceframe

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/floatingbase/spatialmath"
)

// World is the name reserved for the fixed world frame. No body or joint may use it.
const World = "world"

// The following are joint types we treat as constants.
const (
	FixedJoint      = "fixed"
	ContinuousJoint = "continuous"
	PrismaticJoint  = "prismatic"
	RevoluteJoint   = "revolute"
	FloatingJoint   = "floating"
)

// BodyConfig describes a rigid body. Parent names the joint that attaches this body to the tree; it is empty
// only for the root (floating-base) body.
type BodyConfig struct {
	ID      string         `json:"id"`
	Mass    float64        `json:"mass"`
	CoM     r3.Vector      `json:"com"`
	Inertia *InertiaConfig `json:"inertia,omitempty"`
	Parent  string         `json:"parent,omitempty"`
}

// InertiaConfig holds the six independent entries of a body's inertia tensor about its CoM, in the body frame.
type InertiaConfig struct {
	IXX float64 `json:"ixx"`
	IXY float64 `json:"ixy"`
	IXZ float64 `json:"ixz"`
	IYY float64 `json:"iyy"`
	IYZ float64 `json:"iyz"`
	IZZ float64 `json:"izz"`
}

// Tensor returns the inertia as a symmetric matrix. A nil config is a zero tensor.
func (cfg *InertiaConfig) Tensor() *mat.SymDense {
	if cfg == nil {
		return spatialmath.NewInertiaTensor(0, 0, 0, 0, 0, 0)
	}
	return spatialmath.NewInertiaTensor(cfg.IXX, cfg.IXY, cfg.IXZ, cfg.IYY, cfg.IYZ, cfg.IZZ)
}

// PoseConfig is a translation plus roll-pitch-yaw rotation.
type PoseConfig struct {
	Translation r3.Vector               `json:"translation"`
	Orientation spatialmath.EulerAngles `json:"orientation"`
}

// Pose returns the pose described by the config. A nil config is the zero pose.
func (cfg *PoseConfig) Pose() spatialmath.Pose {
	if cfg == nil {
		return spatialmath.NewZeroPose()
	}
	o := cfg.Orientation
	return spatialmath.NewPose(cfg.Translation, &o)
}

// AxisConfig represents the configuration of a joint axis.
type AxisConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector returns the axis as a (not necessarily unit) vector.
func (cfg AxisConfig) Vector() r3.Vector {
	return r3.Vector{X: cfg.X, Y: cfg.Y, Z: cfg.Z}
}

// JointConfig describes a joint. Parent names the body the joint is mounted on; the child body is the one whose
// BodyConfig.Parent names this joint. Origin places the joint frame in the parent body frame.
type JointConfig struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	Parent  string       `json:"parent"`
	Origin  *PoseConfig  `json:"origin,omitempty"`
	Axis    *AxisConfig  `json:"axis,omitempty"`
	Limit   *LimitConfig `json:"limit,omitempty"`
	Default float64      `json:"default"`
}

// IsMovable reports whether the joint adds a degree of freedom.
func (cfg *JointConfig) IsMovable() bool {
	switch cfg.Type {
	case RevoluteJoint, ContinuousJoint, PrismaticJoint:
		return true
	default:
		return false
	}
}

// Limits returns the joint limits. Continuous joints never have position bounds.
func (cfg *JointConfig) Limits() Limit {
	lim := cfg.Limit.Limit()
	if cfg.Type == ContinuousJoint {
		lim.Lower, lim.Upper = math.Inf(-1), math.Inf(1)
	}
	return lim
}

// Validate checks the fields a body needs on its own; relationships are checked when the tree is built.
func (cfg *BodyConfig) Validate(path string) error {
	var err error
	if cfg.ID == "" {
		multierr.AppendInto(&err, NewParseError("%s: body id is required", path))
	}
	if cfg.ID == World {
		multierr.AppendInto(&err, NewParseError("%s: %q is a reserved name", path, World))
	}
	if cfg.Mass < 0 || math.IsNaN(cfg.Mass) || math.IsInf(cfg.Mass, 0) {
		multierr.AppendInto(&err, NewParseError("%s: mass %v must be a finite non-negative number", path, cfg.Mass))
	}
	return err
}

// Validate checks the fields a joint needs on its own.
func (cfg *JointConfig) Validate(path string) error {
	var err error
	if cfg.ID == "" {
		multierr.AppendInto(&err, NewParseError("%s: joint id is required", path))
	}
	if cfg.ID == World {
		multierr.AppendInto(&err, NewParseError("%s: %q is a reserved name", path, World))
	}
	if cfg.Parent == "" {
		multierr.AppendInto(&err, NewParseError("%s: joint %q needs a parent body", path, cfg.ID))
	}
	switch cfg.Type {
	case RevoluteJoint, ContinuousJoint, PrismaticJoint:
		if cfg.Axis == nil || cfg.Axis.Vector().Norm() == 0 {
			multierr.AppendInto(&err, NewParseError("%s: %s joint %q needs a non-zero axis", path, cfg.Type, cfg.ID))
		}
		lim := cfg.Limits()
		if lim.Lower > lim.Upper {
			multierr.AppendInto(&err, NewParseError("%s: joint %q lower limit %v exceeds upper limit %v",
				path, cfg.ID, lim.Lower, lim.Upper))
		}
	case FixedJoint:
	case "":
		multierr.AppendInto(&err, NewParseError("%s: joint %q needs a type", path, cfg.ID))
	default:
		multierr.AppendInto(&err, NewUnsupportedJointTypeError(cfg.Type))
	}
	return err
}

// NewUnsupportedJointTypeError is used when a joint type is not one of revolute, continuous, prismatic or fixed.
func NewUnsupportedJointTypeError(jointType string) error {
	return errors.Wrapf(ErrParse, "unsupported joint type %q", jointType)
}
