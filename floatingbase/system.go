// Package floatingbase implements the model of a floating-base rigid-body system: the floating base descriptor,
// conversions between whole-body and generalized states, and mass properties.
package floatingbase

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/floatingbase/kinematics"
	"go.viam.com/floatingbase/logging"
	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/referenceframe/urdf"
	"go.viam.com/floatingbase/utils"
)

// System is an immutable floating-base system model. It is safe for concurrent reads; whole-body states passed to
// it are never retained.
type System struct {
	tree     *kinematics.Tree
	registry *kinematics.JointRegistry

	base    [NumBaseSlots]FloatingBaseJoint
	baseDoF int

	endEffectors []*endEffector
	eeByName     map[string]*endEffector

	gravity        float64
	masses         []float64 // by body index
	totalMass      float64
	defaultPosture []float64

	logger logging.Logger
}

// NewSystem builds a system from a parsed description and an optional config. Either a complete system or an
// error is returned.
func NewSystem(model *referenceframe.ModelConfig, cfg *Config, logger logging.Logger) (*System, error) {
	if logger == nil {
		logger = logging.Global()
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tree, err := kinematics.NewTree(model)
	if err != nil {
		return nil, err
	}

	s := &System{
		tree:     tree,
		registry: tree.Registry(),
		gravity:  cfg.GravityAcceleration(),
		logger:   logger,
	}
	s.base, s.baseDoF, err = resolveBase(tree, model.BaseJointType, cfg)
	if err != nil {
		return nil, err
	}
	s.endEffectors, s.eeByName, err = resolveEndEffectors(tree, cfg)
	if err != nil {
		return nil, err
	}

	bodies := tree.Bodies()
	s.masses = make([]float64, len(bodies))
	for _, b := range bodies {
		s.masses[b.Index()] = b.Mass()
	}
	s.totalMass = floats.Sum(s.masses)

	s.defaultPosture = s.registry.DefaultPosture()
	for _, name := range sortedKeys(cfg.DefaultPosture) {
		id, err := s.registry.JointID(name)
		if err != nil {
			return nil, referenceframe.NewParseError("default_posture: %v", err)
		}
		s.defaultPosture[id] = cfg.DefaultPosture[name]
	}
	limits := s.registry.LimitsByID()
	for id, q := range s.defaultPosture {
		if !limits[id].Contains(q) {
			name, _ := s.registry.JointName(id)
			logger.Warnw("default position outside joint limits", "joint", name, "position", q, "limit", limits[id].String())
		}
	}

	logger.Debugw("loaded floating-base system",
		"name", tree.Name(),
		"root", tree.Root().Name(),
		"bodies", len(bodies),
		"joint_dof", s.registry.JointDoF(),
		"base_dof", s.baseDoF,
		"end_effectors", len(s.endEffectors),
		"total_mass", s.totalMass,
	)
	return s, nil
}

// NewSystemFromURDF reads a URDF description and an optional YAML config. An empty configPath means no config.
func NewSystemFromURDF(urdfPath, configPath string, logger logging.Logger) (*System, error) {
	model, err := urdf.ParseModelXMLFile(urdfPath, "")
	if err != nil {
		return nil, err
	}
	return newSystemWithConfigFile(model, configPath, logger)
}

// NewSystemFromJSON reads a JSON description and an optional YAML config. An empty configPath means no config.
func NewSystemFromJSON(jsonPath, configPath string, logger logging.Logger) (*System, error) {
	model, err := referenceframe.ParseModelJSONFile(jsonPath, "")
	if err != nil {
		return nil, err
	}
	return newSystemWithConfigFile(model, configPath, logger)
}

func newSystemWithConfigFile(model *referenceframe.ModelConfig, configPath string, logger logging.Logger) (*System, error) {
	var cfg *Config
	if configPath != "" {
		var err error
		if cfg, err = ReadConfig(configPath); err != nil {
			return nil, err
		}
	}
	return NewSystem(model, cfg, logger)
}

// Name returns the name of the system.
func (s *System) Name() string {
	return s.tree.Name()
}

// Tree returns the kinematic tree of the system.
func (s *System) Tree() *kinematics.Tree {
	return s.tree
}

// JointID returns the identifier of the named actuated joint.
func (s *System) JointID(name string) (int, error) {
	return s.registry.JointID(name)
}

// JointName returns the name of the actuated joint with the given identifier.
func (s *System) JointName(id int) (string, error) {
	return s.registry.JointName(id)
}

// JointDoF returns the number of actuated joints.
func (s *System) JointDoF() int {
	return s.registry.JointDoF()
}

// Joints maps the name of every actuated joint to its identifier.
func (s *System) Joints() map[string]int {
	return s.registry.Joints()
}

// JointNames returns the names of the actuated joints in identifier order.
func (s *System) JointNames() []string {
	return s.registry.JointNames()
}

// JointLimits returns the limits of every actuated joint keyed by name.
func (s *System) JointLimits() map[string]referenceframe.Limit {
	return s.registry.JointLimits()
}

// JointLimit returns the limits of the named actuated joint.
func (s *System) JointLimit(name string) (referenceframe.Limit, error) {
	return s.registry.JointLimit(name)
}

// DefaultPosture returns the default joint positions in identifier order.
func (s *System) DefaultPosture() []float64 {
	return append([]float64(nil), s.defaultPosture...)
}

// String prints a summary table of the system followed by one row per actuated joint.
func (s *System) String() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s (root %s, %.3f kg)", s.tree.Name(), s.tree.Root().Name(), s.totalMass))
	t.AppendHeader(table.Row{"ID", "Joint", "Type", "Lower", "Upper", "Velocity", "Effort", "Default"})
	for id, name := range s.registry.JointNames() {
		j, _ := s.tree.GetJoint(name)
		lim := j.Limit()
		t.AppendRow(table.Row{
			id, name, j.Type(),
			utils.FormatFloat(lim.Lower, 3), utils.FormatFloat(lim.Upper, 3),
			utils.FormatFloat(lim.Velocity, 3), utils.FormatFloat(lim.Effort, 3),
			utils.FormatFloat(s.defaultPosture[id], 3),
		})
	}
	for _, j := range s.base {
		if j.Active {
			t.AppendRow(table.Row{j.ID, j.Name, "floating " + j.Slot.String(), "", "", "", "", ""})
		}
	}
	t.AppendFooter(table.Row{"", "DoF", fmt.Sprintf("%d base + %d joints = %d", s.baseDoF, s.JointDoF(), s.SystemDoF())})
	return t.Render()
}
