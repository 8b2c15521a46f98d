// Package urdf converts *.urdf documents into model descriptions.
package urdf

import (
	"encoding/xml"
	"os"

	"github.com/pkg/errors"

	"go.viam.com/floatingbase/referenceframe"
	"go.viam.com/floatingbase/spatialmath"
)

// Extension is the file extension associated with URDF files.
const Extension string = "urdf"

// ModelConfig represents all supported fields in a Universal Robot Description Format (URDF) file.
type ModelConfig struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []link   `xml:"link"`
	Joints  []joint  `xml:"joint"`
}

// link is a struct which details the XML used in a URDF link element.
type link struct {
	XMLName  xml.Name  `xml:"link"`
	Name     string    `xml:"name,attr"`
	Inertial *inertial `xml:"inertial,omitempty"`
}

// joint is a struct which details the XML used in a URDF joint element.
type joint struct {
	XMLName xml.Name `xml:"joint"`
	Name    string   `xml:"name,attr"`
	Type    string   `xml:"type,attr"`
	Parent  frame    `xml:"parent"`
	Child   frame    `xml:"child"`
	Origin  *pose    `xml:"origin,omitempty"`
	Axis    *axis    `xml:"axis,omitempty"`
	Limit   *limit   `xml:"limit,omitempty"`
}

// UnmarshalModelXML will transfer the given URDF XML data into an equivalent referenceframe.ModelConfig.
// URDF attaches bodies through the child side of each joint, so the relationship is inverted here:
// every child link gets the joint as its parent.
func UnmarshalModelXML(xmlData []byte, modelName string) (*referenceframe.ModelConfig, error) {
	if len(xmlData) == 0 {
		return nil, referenceframe.ErrNoModelInformation
	}

	urdf := &ModelConfig{}
	if err := xml.Unmarshal(xmlData, urdf); err != nil {
		return nil, errors.Wrapf(referenceframe.ErrParse, "failed to convert URDF data to equivalent URDFConfig struct: %v", err)
	}

	// Use default name if none is provided
	if modelName == "" {
		modelName = urdf.Name
	}

	mc := &referenceframe.ModelConfig{
		Name:         modelName,
		OriginalFile: &referenceframe.ModelFile{Bytes: xmlData, Extension: Extension},
	}

	// Read all links first, keeping their declaration order
	bodyIdx := make(map[string]int, len(urdf.Links))
	for _, linkElem := range urdf.Links {
		// Skip any world links
		if linkElem.Name == referenceframe.World {
			continue
		}
		body, err := linkElem.toBodyConfig()
		if err != nil {
			return nil, err
		}
		bodyIdx[linkElem.Name] = len(mc.Bodies)
		mc.Bodies = append(mc.Bodies, *body)
	}

	// Read the joints next
	for _, jointElem := range urdf.Joints {
		if jointElem.Parent.Link == referenceframe.World {
			// the joint to the world says how the root moves; it is not part of the tree
			switch jointElem.Type {
			case referenceframe.FloatingJoint, referenceframe.FixedJoint:
				mc.BaseJointType = jointElem.Type
			default:
				return nil, referenceframe.NewParseError("joint %q: unsupported world joint type %q", jointElem.Name, jointElem.Type)
			}
			continue
		}

		jointCfg, err := jointElem.toJointConfig()
		if err != nil {
			return nil, err
		}
		mc.Joints = append(mc.Joints, *jointCfg)

		// Point the child link to this joint
		idx, ok := bodyIdx[jointElem.Child.Link]
		if !ok {
			return nil, referenceframe.NewParseError("joint %q: child link %q is not defined", jointElem.Name, jointElem.Child.Link)
		}
		if mc.Bodies[idx].Parent != "" {
			return nil, referenceframe.NewParseError("link %q is the child of both %q and %q",
				jointElem.Child.Link, mc.Bodies[idx].Parent, jointElem.Name)
		}
		mc.Bodies[idx].Parent = jointElem.Name
	}

	if err := mc.Validate(); err != nil {
		return nil, err
	}
	return mc, nil
}

// ParseModelXMLFile will read a given file and parse the contained URDF XML data into an equivalent description.
func ParseModelXMLFile(filename, modelName string) (*referenceframe.ModelConfig, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return UnmarshalModelXML(xmlData, modelName)
}

func (l *link) toBodyConfig() (*referenceframe.BodyConfig, error) {
	body := &referenceframe.BodyConfig{ID: l.Name}
	if l.Inertial == nil {
		return body, nil
	}
	if l.Inertial.Mass != nil {
		body.Mass = l.Inertial.Mass.Value
	}
	origin, err := l.Inertial.Origin.parse()
	if err != nil {
		return nil, errors.Wrapf(err, "link %q inertial origin", l.Name)
	}
	body.CoM = origin.Point()
	if in := l.Inertial.Inertia; in != nil {
		// URDF gives the tensor in the inertial frame; store it in the link frame
		rotated := spatialmath.RotateInertia(origin.Orientation(),
			spatialmath.NewInertiaTensor(in.IXX, in.IXY, in.IXZ, in.IYY, in.IYZ, in.IZZ))
		body.Inertia = &referenceframe.InertiaConfig{
			IXX: rotated.At(0, 0), IXY: rotated.At(0, 1), IXZ: rotated.At(0, 2),
			IYY: rotated.At(1, 1), IYZ: rotated.At(1, 2), IZZ: rotated.At(2, 2),
		}
	}
	return body, nil
}

func (j *joint) toJointConfig() (*referenceframe.JointConfig, error) {
	cfg := &referenceframe.JointConfig{
		ID:     j.Name,
		Type:   j.Type,
		Parent: j.Parent.Link,
	}
	origin, err := j.Origin.config()
	if err != nil {
		return nil, errors.Wrapf(err, "joint %q origin", j.Name)
	}
	cfg.Origin = origin

	switch j.Type {
	case referenceframe.ContinuousJoint, referenceframe.RevoluteJoint, referenceframe.PrismaticJoint:
		ax, err := j.Axis.parse()
		if err != nil {
			return nil, errors.Wrapf(err, "joint %q axis", j.Name)
		}
		cfg.Axis = &ax
		if j.Limit != nil {
			cfg.Limit = j.Limit.config()
		}
	case referenceframe.FixedJoint:
	default:
		return nil, referenceframe.NewUnsupportedJointTypeError(j.Type)
	}
	return cfg, nil
}
