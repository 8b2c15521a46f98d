package kinematics

import (
	"go.viam.com/floatingbase/referenceframe"
)

// JointRegistry maps the names of movable joints to their identifiers and stores per-joint limits and default
// positions. Identifiers are dense in [0, JointDoF()). Lookups by name are resolved once here so that hot paths can
// work on identifiers.
type JointRegistry struct {
	names    []string
	ids      map[string]int
	limits   []referenceframe.Limit
	defaults []float64
}

func newJointRegistry(t *Tree) *JointRegistry {
	r := &JointRegistry{ids: make(map[string]int, t.dof)}
	r.names = make([]string, t.dof)
	r.limits = make([]referenceframe.Limit, t.dof)
	r.defaults = make([]float64, t.dof)
	for _, j := range t.joints {
		if !j.IsMovable() {
			continue
		}
		r.names[j.id] = j.name
		r.ids[j.name] = j.id
		r.limits[j.id] = j.limit
		r.defaults[j.id] = j.dflt
	}
	return r
}

// JointID returns the identifier of the named movable joint.
func (r *JointRegistry) JointID(name string) (int, error) {
	id, ok := r.ids[name]
	if !ok {
		return 0, referenceframe.NewUnknownJointError(name)
	}
	return id, nil
}

// JointName returns the name of the joint with the given identifier.
func (r *JointRegistry) JointName(id int) (string, error) {
	if id < 0 || id >= len(r.names) {
		return "", referenceframe.NewUnknownJointIDError(id, len(r.names))
	}
	return r.names[id], nil
}

// JointDoF returns the number of movable joints.
func (r *JointRegistry) JointDoF() int {
	return len(r.names)
}

// JointNames returns the names of the movable joints in identifier order.
func (r *JointRegistry) JointNames() []string {
	return append([]string(nil), r.names...)
}

// Joints returns a mapping from joint name to identifier.
func (r *JointRegistry) Joints() map[string]int {
	out := make(map[string]int, len(r.ids))
	for k, v := range r.ids {
		out[k] = v
	}
	return out
}

// JointLimit returns the limits of the named joint.
func (r *JointRegistry) JointLimit(name string) (referenceframe.Limit, error) {
	id, err := r.JointID(name)
	if err != nil {
		return referenceframe.Limit{}, err
	}
	return r.limits[id], nil
}

// JointLimits returns the limits of every movable joint keyed by name.
func (r *JointRegistry) JointLimits() map[string]referenceframe.Limit {
	out := make(map[string]referenceframe.Limit, len(r.names))
	for id, name := range r.names {
		out[name] = r.limits[id]
	}
	return out
}

// LimitsByID returns the limits of every movable joint in identifier order.
func (r *JointRegistry) LimitsByID() []referenceframe.Limit {
	return append([]referenceframe.Limit(nil), r.limits...)
}

// DefaultPosture returns the default position of every movable joint in identifier order.
func (r *JointRegistry) DefaultPosture() []float64 {
	return append([]float64(nil), r.defaults...)
}
