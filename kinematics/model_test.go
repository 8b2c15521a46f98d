package kinematics

import (
	"errors"
	"testing"

	"go.viam.com/test"

	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/referenceframe/urdf"
	"go.viam.com/floatingbase/utils"
)

func loadQuadruped(t *testing.T) *Tree {
	t.Helper()
	cfg, err := urdf.ParseModelXMLFile(utils.ResolveFile("robots/quadruped/quadruped.urdf"), "")
	test.That(t, err, test.ShouldBeNil)
	tree, err := NewTree(cfg)
	test.That(t, err, test.ShouldBeNil)
	return tree
}

func revolute(id, parent string) referenceframe.JointConfig {
	return referenceframe.JointConfig{
		ID:     id,
		Type:   referenceframe.RevoluteJoint,
		Parent: parent,
		Axis:   &referenceframe.AxisConfig{Z: 1},
	}
}

func TestQuadrupedTree(t *testing.T) {
	tree := loadQuadruped(t)
	test.That(t, tree.Name(), test.ShouldEqual, "quadruped")
	test.That(t, tree.Root().Name(), test.ShouldEqual, "trunk")
	test.That(t, tree.Root().Index(), test.ShouldEqual, 0)
	test.That(t, tree.Root().ParentJoint(), test.ShouldBeNil)
	test.That(t, len(tree.Bodies()), test.ShouldEqual, 13)
	test.That(t, len(tree.Joints()), test.ShouldEqual, 12)
	test.That(t, tree.Registry().JointDoF(), test.ShouldEqual, 8)

	test.That(t, tree.BodyNames()[:4], test.ShouldResemble, []string{"trunk", "lf_upperleg", "lf_lowerleg", "lf_foot"})

	leaves := tree.Leaves()
	test.That(t, leaves, test.ShouldHaveLength, 4)
	for i, name := range []string{"lf_foot", "lh_foot", "rf_foot", "rh_foot"} {
		test.That(t, leaves[i].Name(), test.ShouldEqual, name)
		test.That(t, leaves[i].IsLeaf(), test.ShouldBeTrue)
	}

	foot, err := tree.GetJoint("lf_foot_joint")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, foot.IsMovable(), test.ShouldBeFalse)
	test.That(t, foot.ID(), test.ShouldEqual, NoID)

	kfe, err := tree.GetJoint("lh_kfe_joint")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, kfe.ID(), test.ShouldEqual, 3)
	test.That(t, kfe.Parent().Name(), test.ShouldEqual, "lh_upperleg")
	test.That(t, kfe.Child().Name(), test.ShouldEqual, "lh_lowerleg")
	test.That(t, kfe.Type(), test.ShouldEqual, referenceframe.RevoluteJoint)
	test.That(t, kfe.Limit().Lower, test.ShouldEqual, 0.3)
	test.That(t, kfe.Limit().Upper, test.ShouldEqual, 2.4)

	trunk, err := tree.GetBody("trunk")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, trunk.Mass(), test.ShouldEqual, 20.0)
	test.That(t, trunk.ChildJoints(), test.ShouldHaveLength, 4)
	test.That(t, trunk.Inertia().At(1, 1), test.ShouldAlmostEqual, 0.9)
}

func TestTreeLookups(t *testing.T) {
	tree := loadQuadruped(t)

	_, err := tree.GetBody("tail")
	test.That(t, errors.Is(err, referenceframe.ErrUnknownName), test.ShouldBeTrue)
	_, err = tree.GetJoint("tail_joint")
	test.That(t, errors.Is(err, referenceframe.ErrUnknownName), test.ShouldBeTrue)

	path, err := tree.Path("rf_foot")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldHaveLength, 2)
	test.That(t, path[0].Name(), test.ShouldEqual, "rf_hfe_joint")
	test.That(t, path[1].Name(), test.ShouldEqual, "rf_kfe_joint")
	test.That(t, path[1].ID(), test.ShouldEqual, path[0].ID()+1)

	path, err = tree.Path("trunk")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, path, test.ShouldBeEmpty)

	_, err = tree.Path("tail")
	test.That(t, errors.Is(err, referenceframe.ErrUnknownName), test.ShouldBeTrue)

	test.That(t, tree.String(), test.ShouldContainSubstring, "13 bodies")
}

func TestNewTreeErrors(t *testing.T) {
	t.Run("empty description", func(t *testing.T) {
		_, err := NewTree(&referenceframe.ModelConfig{})
		test.That(t, errors.Is(err, referenceframe.ErrParse), test.ShouldBeTrue)
		_, err = NewTree(nil)
		test.That(t, errors.Is(err, referenceframe.ErrParse), test.ShouldBeTrue)
	})

	t.Run("two roots", func(t *testing.T) {
		_, err := NewTree(&referenceframe.ModelConfig{
			Bodies: []referenceframe.BodyConfig{{ID: "a"}, {ID: "b"}},
		})
		test.That(t, errors.Is(err, referenceframe.ErrParse), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "exactly one root")
	})

	t.Run("missing parent joint", func(t *testing.T) {
		_, err := NewTree(&referenceframe.ModelConfig{
			Bodies: []referenceframe.BodyConfig{{ID: "a"}, {ID: "b", Parent: "j"}},
		})
		test.That(t, errors.Is(err, referenceframe.ErrParse), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, `parent joint "j" is not defined`)
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := NewTree(&referenceframe.ModelConfig{
			Bodies: []referenceframe.BodyConfig{{ID: "a"}, {ID: "a"}},
		})
		test.That(t, errors.Is(err, referenceframe.ErrParse), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "duplicate body")
	})

	t.Run("joint without axis", func(t *testing.T) {
		j := revolute("j", "a")
		j.Axis = nil
		_, err := NewTree(&referenceframe.ModelConfig{
			Bodies: []referenceframe.BodyConfig{{ID: "a"}, {ID: "b", Parent: "j"}},
			Joints: []referenceframe.JointConfig{j},
		})
		test.That(t, errors.Is(err, referenceframe.ErrParse), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "non-zero axis")
	})

	t.Run("cycle", func(t *testing.T) {
		// r is the root; a and b hang off each other and are never reached from it
		_, err := NewTree(&referenceframe.ModelConfig{
			Bodies: []referenceframe.BodyConfig{{ID: "r"}, {ID: "a", Parent: "ba"}, {ID: "b", Parent: "ab"}},
			Joints: []referenceframe.JointConfig{revolute("ab", "a"), revolute("ba", "b")},
		})
		test.That(t, errors.Is(err, referenceframe.ErrParse), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "not a tree")
	})

	t.Run("every problem is reported", func(t *testing.T) {
		_, err := NewTree(&referenceframe.ModelConfig{
			Bodies: []referenceframe.BodyConfig{{ID: "a", Mass: -1}, {ID: ""}},
		})
		test.That(t, err.Error(), test.ShouldContainSubstring, "non-negative")
		test.That(t, err.Error(), test.ShouldContainSubstring, "body id is required")
	})
}

func TestIdentifiersFollowDeclarationOrder(t *testing.T) {
	// b2 is declared before b1 on the root so its subtree is numbered first
	tree, err := NewTree(&referenceframe.ModelConfig{
		Name: "fork",
		Bodies: []referenceframe.BodyConfig{
			{ID: "root", Mass: 1},
			{ID: "b1", Mass: 1, Parent: "j1"},
			{ID: "b2", Mass: 1, Parent: "j2"},
			{ID: "b3", Mass: 1, Parent: "j3"},
		},
		Joints: []referenceframe.JointConfig{revolute("j2", "root"), revolute("j1", "root"), revolute("j3", "b2")},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.Registry().JointNames(), test.ShouldResemble, []string{"j2", "j3", "j1"})
	test.That(t, tree.BodyNames(), test.ShouldResemble, []string{"root", "b2", "b3", "b1"})
}
