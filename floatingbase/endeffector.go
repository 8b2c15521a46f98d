package floatingbase

import (
	"sort"

	"github.com/samber/lo"

	"go.viam.com/floatingbase/kinematics"
	"go.viam.com/floatingbase/referenceframe"
)

// EndEffectorType classifies an end-effector.
type EndEffectorType string

// The end-effector types.
const (
	Foot EndEffectorType = "foot"
	Hand EndEffectorType = "hand"
	Tool EndEffectorType = "tool"
)

func (t EndEffectorType) valid() bool {
	switch t {
	case Foot, Hand, Tool:
		return true
	default:
		return false
	}
}

// endEffector is a body at the end of a branch together with the identifiers of the movable joints between it
// and the root, ordered from the root outwards.
type endEffector struct {
	id     int
	typ    EndEffectorType
	body   *kinematics.Body
	branch []int
}

// resolveEndEffectors picks the end-effector bodies in traversal order and precomputes their branches.
func resolveEndEffectors(tree *kinematics.Tree, cfg *Config) ([]*endEffector, map[string]*endEffector, error) {
	types := map[string]EndEffectorType{}
	if cfg != nil && cfg.EndEffectors != nil {
		for name, typ := range cfg.EndEffectors {
			if _, err := tree.GetBody(name); err != nil {
				return nil, nil, referenceframe.NewParseError("end-effector %q is not a body", name)
			}
			types[name] = typ
		}
	} else {
		for _, leaf := range tree.Leaves() {
			types[leaf.Name()] = Tool
		}
	}

	bodies := lo.Filter(tree.Bodies(), func(b *kinematics.Body, _ int) bool {
		_, ok := types[b.Name()]
		return ok
	})
	list := make([]*endEffector, 0, len(bodies))
	byName := make(map[string]*endEffector, len(bodies))
	for i, b := range bodies {
		path, err := tree.Path(b.Name())
		if err != nil {
			return nil, nil, err
		}
		ee := &endEffector{
			id:   i,
			typ:  types[b.Name()],
			body: b,
			branch: lo.Map(path, func(j *kinematics.Joint, _ int) int {
				return j.ID()
			}),
		}
		list = append(list, ee)
		byName[b.Name()] = ee
	}
	return list, byName, nil
}

func (s *System) endEffector(name string) (*endEffector, error) {
	ee, ok := s.eeByName[name]
	if !ok {
		return nil, referenceframe.NewUnknownEndEffectorError(name)
	}
	return ee, nil
}

// EndEffectors maps the name of every end-effector to its identifier.
func (s *System) EndEffectors() map[string]int {
	return lo.SliceToMap(s.endEffectors, func(ee *endEffector) (string, int) {
		return ee.body.Name(), ee.id
	})
}

// EndEffectorNames returns the names of the end-effectors of the given types in identifier order. No types
// means every end-effector.
func (s *System) EndEffectorNames(types ...EndEffectorType) []string {
	return lo.FilterMap(s.endEffectors, func(ee *endEffector, _ int) (string, bool) {
		return ee.body.Name(), matches(ee, types)
	})
}

// NumberOfEndEffectors counts the end-effectors of the given types. No types means every end-effector.
func (s *System) NumberOfEndEffectors(types ...EndEffectorType) int {
	return lo.CountBy(s.endEffectors, func(ee *endEffector) bool {
		return matches(ee, types)
	})
}

// EndEffectorType returns the type of the named end-effector.
func (s *System) EndEffectorType(name string) (EndEffectorType, error) {
	ee, err := s.endEffector(name)
	if err != nil {
		return "", err
	}
	return ee.typ, nil
}

// EndEffectorID returns the identifier of the named end-effector.
func (s *System) EndEffectorID(name string) (int, error) {
	ee, err := s.endEffector(name)
	if err != nil {
		return 0, err
	}
	return ee.id, nil
}

// BranchJoints returns the identifiers of the actuated joints between the root and the named end-effector,
// ordered from the root outwards.
func (s *System) BranchJoints(endEffector string) ([]int, error) {
	ee, err := s.endEffector(endEffector)
	if err != nil {
		return nil, err
	}
	return append([]int(nil), ee.branch...), nil
}

// BranchJointNames is BranchJoints by name.
func (s *System) BranchJointNames(endEffector string) ([]string, error) {
	ids, err := s.BranchJoints(endEffector)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i], err = s.registry.JointName(id)
		if err != nil {
			return nil, err
		}
	}
	return names, nil
}

func matches(ee *endEffector, types []EndEffectorType) bool {
	return len(types) == 0 || lo.Contains(types, ee.typ)
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
