package floatingbase

import (
	"strings"

	"go.viam.com/floatingbase/kinematics"
	"go.viam.com/floatingbase/referenceframe"
)

// BaseSlot is one of the six coordinates of a floating base, in generalized order.
type BaseSlot int

// The base slots in the order they appear in a generalized state.
const (
	BaseX BaseSlot = iota
	BaseY
	BaseZ
	BaseRoll
	BasePitch
	BaseYaw
)

// NumBaseSlots is the number of base coordinates in every generalized state, active or not.
const NumBaseSlots = 6

var slotNames = [NumBaseSlots]string{"x", "y", "z", "roll", "pitch", "yaw"}

func (s BaseSlot) String() string {
	if s < 0 || int(s) >= NumBaseSlots {
		return "unknown"
	}
	return slotNames[s]
}

// IsTranslation reports whether the slot is one of x, y or z.
func (s BaseSlot) IsTranslation() bool {
	return s >= BaseX && s <= BaseZ
}

// ParseBaseSlot returns the slot with the given name.
func ParseBaseSlot(name string) (BaseSlot, error) {
	for i, n := range slotNames {
		if strings.EqualFold(n, name) {
			return BaseSlot(i), nil
		}
	}
	return 0, referenceframe.NewParseError("unknown floating base slot %q, expected one of %s", name, strings.Join(slotNames[:], ", "))
}

// DefaultBaseJointName is the name a base joint gets when the configuration does not name it.
func DefaultBaseJointName(slot BaseSlot) string {
	return "floating_base_" + slot.String()
}

// FloatingBaseJoint describes one base coordinate. Inactive joints have no name and the identifier
// kinematics.NoID.
type FloatingBaseJoint struct {
	Slot   BaseSlot
	Active bool
	Name   string
	ID     int
}

// resolveBase decides which base slots are active and names them. Identifiers follow the actuated joints,
// in slot order.
func resolveBase(tree *kinematics.Tree, baseJointType string, cfg *Config) ([NumBaseSlots]FloatingBaseJoint, int, error) {
	var joints [NumBaseSlots]FloatingBaseJoint
	for i := range joints {
		joints[i] = FloatingBaseJoint{Slot: BaseSlot(i), ID: kinematics.NoID}
	}

	var names [NumBaseSlots]string
	switch {
	case cfg != nil && cfg.FloatingBase != nil:
		for slotName, name := range cfg.FloatingBase {
			slot, err := ParseBaseSlot(slotName)
			if err != nil {
				return joints, 0, err
			}
			names[slot] = name
		}
	case baseJointType == referenceframe.FixedJoint:
	default:
		for i := range names {
			names[i] = DefaultBaseJointName(BaseSlot(i))
		}
	}

	next := tree.Registry().JointDoF()
	dof := 0
	for i, name := range names {
		if name == "" {
			continue
		}
		if _, err := tree.GetJoint(name); err == nil {
			return joints, 0, referenceframe.NewParseError("floating base joint %q collides with a joint of the tree", name)
		}
		joints[i].Active = true
		joints[i].Name = name
		joints[i].ID = next
		next++
		dof++
	}
	return joints, dof, nil
}

// FloatingBaseJoint returns the base joint of the given slot, 0 through 5.
func (s *System) FloatingBaseJoint(slot BaseSlot) (FloatingBaseJoint, error) {
	if slot < 0 || int(slot) >= NumBaseSlots {
		return FloatingBaseJoint{}, referenceframe.NewIncorrectDoFError(int(slot), NumBaseSlots)
	}
	return s.base[slot], nil
}

// FloatingBaseJoints returns all six base joints in slot order.
func (s *System) FloatingBaseJoints() [NumBaseSlots]FloatingBaseJoint {
	return s.base
}

// FloatingJointNames returns the names of the active base joints in slot order.
func (s *System) FloatingJointNames() []string {
	var names []string
	for _, j := range s.base {
		if j.Active {
			names = append(names, j.Name)
		}
	}
	return names
}

// FloatingBaseDoF returns the number of active base joints.
func (s *System) FloatingBaseDoF() int {
	return s.baseDoF
}

// FloatingBaseName returns the name of the root body.
func (s *System) FloatingBaseName() string {
	return s.tree.Root().Name()
}

// IsFullyFloating reports whether all six base joints are active.
func (s *System) IsFullyFloating() bool {
	return s.baseDoF == NumBaseSlots
}

// SystemDoF returns the number of active base joints plus the number of actuated joints.
func (s *System) SystemDoF() int {
	return s.baseDoF + s.registry.JointDoF()
}
