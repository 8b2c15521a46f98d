// Package kinematics holds the kinematic tree of an articulated rigid-body system: its bodies, its joints and the
// parent/child graph between them, together with the joint registry and forward kinematics.
package kinematics

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"go.viam.com/floatingbase/referenceframe"
)

// Tree is an immutable kinematic tree. It has exactly one root body, it is acyclic and every non-root body has
// exactly one incoming joint. A Tree is safe for concurrent reads.
//
// Bodies and joints are ordered depth-first from the root, visiting the joints mounted on a body in the order they
// were declared. Movable joints are numbered in that order, so each limb occupies a contiguous id range.
type Tree struct {
	name     string
	root     *Body
	bodies   []*Body
	joints   []*Joint
	leaves   []*Body
	registry *JointRegistry
	dof      int

	bodiesByName map[string]*Body
	jointsByName map[string]*Joint
}

// NewTree builds a tree from a parsed description. Every problem found in the description is reported in the
// returned error, which is a ParseError; no partial tree is ever returned.
func NewTree(cfg *referenceframe.ModelConfig) (*Tree, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var err error
	bodyIdx := make(map[string]int, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		if _, ok := bodyIdx[b.ID]; ok {
			multierr.AppendInto(&err, referenceframe.NewParseError("duplicate body %q", b.ID))
			continue
		}
		bodyIdx[b.ID] = i
	}
	jointIdx := make(map[string]int, len(cfg.Joints))
	for i, j := range cfg.Joints {
		if _, ok := jointIdx[j.ID]; ok {
			multierr.AppendInto(&err, referenceframe.NewParseError("duplicate joint %q", j.ID))
			continue
		}
		jointIdx[j.ID] = i
	}
	if err != nil {
		return nil, err
	}

	// Resolve the child body of every joint and find the root
	childOf := make(map[string]string, len(cfg.Joints))
	var roots []string
	for _, b := range cfg.Bodies {
		if b.Parent == "" {
			roots = append(roots, b.ID)
			continue
		}
		if _, ok := jointIdx[b.Parent]; !ok {
			multierr.AppendInto(&err, referenceframe.NewParseError("body %q: parent joint %q is not defined", b.ID, b.Parent))
			continue
		}
		if other, ok := childOf[b.Parent]; ok {
			multierr.AppendInto(&err, referenceframe.NewParseError("joint %q moves both %q and %q", b.Parent, other, b.ID))
			continue
		}
		childOf[b.Parent] = b.ID
	}
	for _, j := range cfg.Joints {
		if _, ok := bodyIdx[j.Parent]; !ok {
			multierr.AppendInto(&err, referenceframe.NewParseError("joint %q: parent body %q is not defined", j.ID, j.Parent))
		}
		child, ok := childOf[j.ID]
		if !ok {
			multierr.AppendInto(&err, referenceframe.NewParseError("joint %q does not move any body", j.ID))
		} else if child == j.Parent {
			multierr.AppendInto(&err, referenceframe.NewParseError("joint %q connects body %q to itself", j.ID, child))
		}
	}
	if len(roots) != 1 {
		multierr.AppendInto(&err, referenceframe.NewParseError("need exactly one root body, have %v", roots))
	}
	if err != nil {
		return nil, err
	}

	g := simple.NewDirectedGraph()
	for i := range cfg.Bodies {
		g.AddNode(simple.Node(i))
	}
	for _, j := range cfg.Joints {
		g.SetEdge(g.NewEdge(simple.Node(bodyIdx[j.Parent]), simple.Node(bodyIdx[childOf[j.ID]])))
	}
	if _, err := topo.Sort(g); err != nil {
		return nil, errors.Wrapf(referenceframe.ErrParse, "kinematic description is not a tree: %v", err)
	}

	t := &Tree{
		name:         cfg.Name,
		bodiesByName: make(map[string]*Body, len(cfg.Bodies)),
		jointsByName: make(map[string]*Joint, len(cfg.Joints)),
	}
	mounted := make(map[string][]int, len(cfg.Bodies))
	for i, j := range cfg.Joints {
		mounted[j.Parent] = append(mounted[j.Parent], i)
	}
	t.root = t.addBody(&cfg.Bodies[bodyIdx[roots[0]]], nil)
	t.build(cfg, t.root, mounted, bodyIdx, childOf)

	if len(t.bodies) != len(cfg.Bodies) {
		return nil, referenceframe.NewParseError("%d of %d bodies are not reachable from root %q",
			len(cfg.Bodies)-len(t.bodies), len(cfg.Bodies), t.root.name)
	}
	t.registry = newJointRegistry(t)
	return t, nil
}

// build recursively goes down each branch of the tree to its end, numbering bodies and movable joints on the way.
func (t *Tree) build(
	cfg *referenceframe.ModelConfig,
	body *Body,
	mounted map[string][]int,
	bodyIdx map[string]int,
	childOf map[string]string,
) {
	for _, ji := range mounted[body.name] {
		jc := &cfg.Joints[ji]
		joint := &Joint{
			name:      jc.ID,
			id:        NoID,
			jointType: jc.Type,
			origin:    jc.Origin.Pose(),
			limit:     jc.Limits(),
			dflt:      jc.Default,
			parent:    body,
		}
		if jc.IsMovable() {
			joint.id = t.dof
			t.dof++
			joint.axis = jc.Axis.Vector().Normalize()
		}
		t.joints = append(t.joints, joint)
		t.jointsByName[joint.name] = joint
		body.children = append(body.children, joint)

		child := t.addBody(&cfg.Bodies[bodyIdx[childOf[jc.ID]]], joint)
		joint.child = child
		t.build(cfg, child, mounted, bodyIdx, childOf)
	}
	if body.IsLeaf() {
		t.leaves = append(t.leaves, body)
	}
}

func (t *Tree) addBody(bc *referenceframe.BodyConfig, parent *Joint) *Body {
	b := &Body{
		name:    bc.ID,
		index:   len(t.bodies),
		mass:    bc.Mass,
		com:     bc.CoM,
		inertia: bc.Inertia.Tensor(),
		parent:  parent,
	}
	t.bodies = append(t.bodies, b)
	t.bodiesByName[b.name] = b
	return b
}

// Name returns the name of the described system.
func (t *Tree) Name() string {
	return t.name
}

// Root returns the root (floating-base) body.
func (t *Tree) Root() *Body {
	return t.root
}

// GetBody returns the body with the given name.
func (t *Tree) GetBody(name string) (*Body, error) {
	b, ok := t.bodiesByName[name]
	if !ok {
		return nil, referenceframe.NewUnknownBodyError(name)
	}
	return b, nil
}

// GetJoint returns the joint with the given name, movable or fixed.
func (t *Tree) GetJoint(name string) (*Joint, error) {
	j, ok := t.jointsByName[name]
	if !ok {
		return nil, referenceframe.NewUnknownJointNameError(name)
	}
	return j, nil
}

// Bodies lists all bodies in traversal order.
func (t *Tree) Bodies() []*Body {
	return append([]*Body(nil), t.bodies...)
}

// Joints lists all joints, movable and fixed, in traversal order.
func (t *Tree) Joints() []*Joint {
	return append([]*Joint(nil), t.joints...)
}

// BodyNames lists the names of all bodies in traversal order.
func (t *Tree) BodyNames() []string {
	names := make([]string, len(t.bodies))
	for i, b := range t.bodies {
		names[i] = b.name
	}
	return names
}

// JointNames lists the names of all joints in traversal order.
func (t *Tree) JointNames() []string {
	names := make([]string, len(t.joints))
	for i, j := range t.joints {
		names[i] = j.name
	}
	return names
}

// Leaves returns the bodies with no joint mounted on them, in traversal order.
func (t *Tree) Leaves() []*Body {
	return append([]*Body(nil), t.leaves...)
}

// Registry returns the registry of movable joints.
func (t *Tree) Registry() *JointRegistry {
	return t.registry
}

// Path returns the movable joints between the root and the named body, ordered from the root outwards.
func (t *Tree) Path(bodyName string) ([]*Joint, error) {
	b, err := t.GetBody(bodyName)
	if err != nil {
		return nil, err
	}
	var path []*Joint
	for j := b.parent; j != nil; j = j.parent.parent {
		if j.IsMovable() {
			path = append(path, j)
		}
	}
	for i, k := 0, len(path)-1; i < k; i, k = i+1, k-1 {
		path[i], path[k] = path[k], path[i]
	}
	return path, nil
}

func (t *Tree) String() string {
	return fmt.Sprintf("%s: %d bodies, %d joints (%d movable), root %q",
		t.name, len(t.bodies), len(t.joints), t.dof, t.root.name)
}
