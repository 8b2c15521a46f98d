package referenceframe

import (
	"github.com/pkg/errors"
)

var (
	// ErrParse is the kind of every error raised while turning a description into a model.
	// Construction aborts on it and no partial model is exposed.
	ErrParse = errors.New("invalid model description")
	// ErrUnknownName is returned when a body or joint name is not part of the model.
	ErrUnknownName = errors.New("unknown name")
	// ErrUnknownJoint is returned when a joint name or identifier is not registered.
	ErrUnknownJoint = errors.New("unknown joint")
	// ErrUnknownEndEffector is returned when an end-effector name is not registered.
	ErrUnknownEndEffector = errors.New("unknown end-effector")
	// ErrDimensionMismatch is returned when an array length disagrees with the model's degrees of freedom.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// NewParseError wraps a description problem as a ParseError.
func NewParseError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrParse, format, args...)
}

// NewUnknownBodyError is used when a body lookup fails.
func NewUnknownBodyError(name string) error {
	return errors.Wrapf(ErrUnknownName, "body %q", name)
}

// NewUnknownJointNameError is used when a joint lookup on the tree fails.
func NewUnknownJointNameError(name string) error {
	return errors.Wrapf(ErrUnknownName, "joint %q", name)
}

// NewUnknownJointError is used when a joint is not registered as an actuated joint.
func NewUnknownJointError(name string) error {
	return errors.Wrapf(ErrUnknownJoint, "%q", name)
}

// NewUnknownJointIDError is used when a joint identifier is out of range.
func NewUnknownJointIDError(id, dof int) error {
	return errors.Wrapf(ErrUnknownJoint, "id %d is outside [0, %d)", id, dof)
}

// NewUnknownEndEffectorError is used when an end-effector lookup fails.
func NewUnknownEndEffectorError(name string) error {
	return errors.Wrapf(ErrUnknownEndEffector, "%q", name)
}

// NewIncorrectDoFError is returned when an array does not have the number of entries the model expects.
func NewIncorrectDoFError(actual, expected int) error {
	return errors.Wrapf(ErrDimensionMismatch, "number of inputs %d does not match degrees of freedom %d", actual, expected)
}
