package urdf

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/spatialmath"
)

type frame struct {
	Link string `xml:"link,attr"`
}

// limit attributes are optional here; a missing one is an unbounded limit.
type limit struct {
	XMLName  xml.Name `xml:"limit"`
	Lower    *float64 `xml:"lower,attr"` // translation limits are in meters, revolute limits are in radians
	Upper    *float64 `xml:"upper,attr"`
	Effort   *float64 `xml:"effort,attr"`
	Velocity *float64 `xml:"velocity,attr"`
}

func (l *limit) config() *referenceframe.LimitConfig {
	return &referenceframe.LimitConfig{Lower: l.Lower, Upper: l.Upper, Velocity: l.Velocity, Effort: l.Effort}
}

type axis struct {
	XMLName xml.Name `xml:"axis"`
	XYZ     string   `xml:"xyz,attr"`
}

// parse returns the joint axis, defaulting to the x axis as URDF does.
func (a *axis) parse() (referenceframe.AxisConfig, error) {
	if a == nil || strings.TrimSpace(a.XYZ) == "" {
		return referenceframe.AxisConfig{X: 1}, nil
	}
	v, err := parseTriple(a.XYZ)
	if err != nil {
		return referenceframe.AxisConfig{}, err
	}
	return referenceframe.AxisConfig{X: v.X, Y: v.Y, Z: v.Z}, nil
}

type pose struct {
	XMLName xml.Name `xml:"origin"`
	RPY     string   `xml:"rpy,attr"` // Fixed frame angle "r p y" format, in radians
	XYZ     string   `xml:"xyz,attr"` // "x y z" format, in meters
}

func (p *pose) config() (*referenceframe.PoseConfig, error) {
	cfg := &referenceframe.PoseConfig{}
	if p == nil {
		return cfg, nil
	}
	if strings.TrimSpace(p.XYZ) != "" {
		xyz, err := parseTriple(p.XYZ)
		if err != nil {
			return nil, err
		}
		cfg.Translation = xyz
	}
	if strings.TrimSpace(p.RPY) != "" {
		rpy, err := parseTriple(p.RPY)
		if err != nil {
			return nil, err
		}
		cfg.Orientation = spatialmath.EulerAngles{Roll: rpy.X, Pitch: rpy.Y, Yaw: rpy.Z}
	}
	return cfg, nil
}

func (p *pose) parse() (spatialmath.Pose, error) {
	cfg, err := p.config()
	if err != nil {
		return spatialmath.Pose{}, err
	}
	return cfg.Pose(), nil
}

type inertial struct {
	XMLName xml.Name `xml:"inertial"`
	Origin  *pose    `xml:"origin,omitempty"`
	Mass    *struct {
		Value float64 `xml:"value,attr"`
	} `xml:"mass,omitempty"`
	Inertia *inertia `xml:"inertia,omitempty"`
}

type inertia struct {
	IXX float64 `xml:"ixx,attr"`
	IXY float64 `xml:"ixy,attr"`
	IXZ float64 `xml:"ixz,attr"`
	IYY float64 `xml:"iyy,attr"`
	IYZ float64 `xml:"iyz,attr"`
	IZZ float64 `xml:"izz,attr"`
}

// parseTriple splits up a space-delimited field such as xyz or rpy into a vector.
func parseTriple(s string) (r3.Vector, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return r3.Vector{}, referenceframe.NewParseError("expected 3 values, got %q", s)
	}
	var out [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return r3.Vector{}, referenceframe.NewParseError("value %q is not a number", f)
		}
		out[i] = v
	}
	return r3.Vector{X: out[0], Y: out[1], Z: out[2]}, nil
}
