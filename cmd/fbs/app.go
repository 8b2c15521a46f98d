package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/floatingbase/floatingbase"
	"go.viam.com/floatingbase/logging"
	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/utils"
)

const (
	// Flags.
	flagURDF    = "urdf"
	flagJSON    = "json"
	flagConfig  = "config"
	flagDebug   = "debug"
	flagJoint   = "joint"
	flagBase    = "base"
	flagDegrees = "degrees"
)

// state is filled in by Before and shared by every command.
type state struct {
	logger logging.Logger
	sys    *floatingbase.System
}

func newApp() *cli.App {
	st := &state{}
	configurationFlags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:  flagJoint,
			Usage: "set a joint position as `NAME=VALUE` (radians or meters), defaults to the default posture",
		},
		&cli.Float64SliceFlag{
			Name:  flagBase,
			Usage: "base coordinates `X,Y,Z,ROLL,PITCH,YAW`",
		},
	}
	return &cli.App{
		Name:  "fbs",
		Usage: "inspect a floating-base rigid-body system",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagURDF,
				Usage: "load the kinematic description from URDF `FILE`",
			},
			&cli.StringFlag{
				Name:  flagJSON,
				Usage: "load the kinematic description from JSON `FILE`",
			},
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load the system configuration from YAML `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				st.logger = logging.NewDebugLogger("fbs")
			} else {
				st.logger = logging.NewNopLogger("fbs")
			}
			// help and unknown commands need no system
			if c.Args().Len() == 0 || c.Args().First() == "help" {
				return nil
			}
			var err error
			switch {
			case c.String(flagURDF) != "" && c.String(flagJSON) != "":
				return errors.New("use only one of --urdf and --json")
			case c.String(flagURDF) != "":
				st.sys, err = floatingbase.NewSystemFromURDF(c.String(flagURDF), c.String(flagConfig), st.logger)
			case c.String(flagJSON) != "":
				st.sys, err = floatingbase.NewSystemFromJSON(c.String(flagJSON), c.String(flagConfig), st.logger)
			default:
				return errors.New("one of --urdf or --json is required")
			}
			return err
		},
		Commands: []*cli.Command{
			{
				Name:   "info",
				Usage:  "print the joints, floating base and end-effectors of the system",
				Action: st.infoAction,
			},
			{
				Name:  "limits",
				Usage: "print the joint limits",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  flagDegrees,
						Usage: "print revolute limits in degrees",
					},
				},
				Action: st.limitsAction,
			},
			{
				Name:   "com",
				Usage:  "print mass properties and the system center of mass at a configuration",
				Flags:  configurationFlags,
				Action: st.comAction,
			},
			{
				Name:      "branch",
				Usage:     "print the joints of the branch ending at an end-effector",
				ArgsUsage: "END_EFFECTOR",
				Flags:     configurationFlags,
				Action:    st.branchAction,
			},
		},
	}
}

func (st *state) infoAction(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, st.sys.String())

	t := table.NewWriter()
	t.SetTitle("end-effectors")
	t.AppendHeader(table.Row{"ID", "Name", "Type", "Branch"})
	for _, name := range st.sys.EndEffectorNames() {
		id, err := st.sys.EndEffectorID(name)
		if err != nil {
			return err
		}
		typ, err := st.sys.EndEffectorType(name)
		if err != nil {
			return err
		}
		branch, err := st.sys.BranchJointNames(name)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{id, name, typ, strings.Join(branch, " -> ")})
	}
	fmt.Fprintln(c.App.Writer, t.Render())
	return nil
}

func (st *state) limitsAction(c *cli.Context) error {
	limits := st.sys.JointLimits()
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Joint", "Lower", "Upper", "Velocity", "Effort"})
	for _, name := range st.sys.JointNames() {
		lim := limits[name]
		lower, upper := lim.Lower, lim.Upper
		if c.Bool(flagDegrees) {
			if j, err := st.sys.Tree().GetJoint(name); err == nil && j.Type() != referenceframe.PrismaticJoint {
				lower, upper = utils.RadToDeg(lower), utils.RadToDeg(upper)
			}
		}
		t.AppendRow(table.Row{
			name,
			utils.FormatFloat(lower, 3), utils.FormatFloat(upper, 3),
			utils.FormatFloat(lim.Velocity, 3), utils.FormatFloat(lim.Effort, 3),
		})
	}
	fmt.Fprintln(c.App.Writer, t.Render())
	return nil
}

func (st *state) comAction(c *cli.Context) error {
	base, joints, err := st.configuration(c)
	if err != nil {
		return err
	}
	com, err := st.sys.SystemCoM(base, joints)
	if err != nil {
		return err
	}
	fbCoM := st.sys.FloatingBaseCoM()

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Quantity", "Value"})
	t.AppendRows([]table.Row{
		{"total mass", fmt.Sprintf("%.4f kg", st.sys.TotalMass())},
		{"gravity", fmt.Sprintf("%.4f m/s^2", st.sys.GravityAcceleration())},
		{"floating-base CoM", fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", fbCoM.X, fbCoM.Y, fbCoM.Z)},
		{"system CoM", fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", com.X, com.Y, com.Z)},
	})
	fmt.Fprintln(c.App.Writer, t.Render())
	return nil
}

func (st *state) branchAction(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return errors.New("expected exactly one end-effector name")
	}
	name := c.Args().First()
	_, joints, err := st.configuration(c)
	if err != nil {
		return err
	}
	ids, err := st.sys.BranchJoints(name)
	if err != nil {
		return err
	}
	values, err := st.sys.GetBranchState(joints, name)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetTitle(name)
	t.AppendHeader(table.Row{"ID", "Joint", "Position"})
	for i, id := range ids {
		jointName, err := st.sys.JointName(id)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{id, jointName, utils.FormatFloat(values[i], 4)})
	}
	fmt.Fprintln(c.App.Writer, t.Render())
	return nil
}

// configuration reads the base and joint flags, starting from the default posture.
func (st *state) configuration(c *cli.Context) ([floatingbase.NumBaseSlots]float64, []float64, error) {
	var base [floatingbase.NumBaseSlots]float64
	if vals := c.Float64Slice(flagBase); len(vals) > 0 {
		if len(vals) != floatingbase.NumBaseSlots {
			return base, nil, errors.Errorf("--%s needs %d values, got %d", flagBase, floatingbase.NumBaseSlots, len(vals))
		}
		copy(base[:], vals)
	}
	joints, err := parseJointAssignments(st.sys, c.StringSlice(flagJoint))
	return base, joints, err
}

// parseJointAssignments applies NAME=VALUE assignments on top of the default posture.
func parseJointAssignments(sys *floatingbase.System, assignments []string) ([]float64, error) {
	joints := sys.DefaultPosture()
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return nil, errors.Errorf("joint assignment %q is not NAME=VALUE", a)
		}
		id, err := sys.JointID(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "joint %s", name)
		}
		joints[id] = v
	}
	return joints, nil
}
