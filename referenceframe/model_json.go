package referenceframe

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ErrNoModelInformation is used when there is no model information.
var ErrNoModelInformation = errors.Wrap(ErrParse, "no model information")

// ModelConfig is the parsed description of an articulated system: the shape every description loader
// (JSON, URDF) produces and the kinematic tree consumes.
type ModelConfig struct {
	Name   string        `json:"name"`
	Bodies []BodyConfig  `json:"bodies"`
	Joints []JointConfig `json:"joints"`
	// BaseJointType records how the root body is attached to the world when the description says so:
	// FloatingJoint, FixedJoint, or empty when unspecified.
	BaseJointType string     `json:"base_joint_type,omitempty"`
	OriginalFile  *ModelFile `json:"-"`
}

// ModelFile is a struct that stores the raw bytes of the file used to create the model as well as its extension,
// which is useful for knowing how to unmarshal it.
type ModelFile struct {
	Bytes     []byte
	Extension string
}

// Validate checks every body and joint on its own and reports all problems at once.
func (cfg *ModelConfig) Validate() error {
	if cfg == nil || (len(cfg.Bodies) == 0 && len(cfg.Joints) == 0) {
		return ErrNoModelInformation
	}
	var err error
	for i := range cfg.Bodies {
		multierr.AppendInto(&err, cfg.Bodies[i].Validate(fmt.Sprintf("bodies.%d", i)))
	}
	for i := range cfg.Joints {
		multierr.AppendInto(&err, cfg.Joints[i].Validate(fmt.Sprintf("joints.%d", i)))
	}
	switch cfg.BaseJointType {
	case "", FloatingJoint, FixedJoint:
	default:
		multierr.AppendInto(&err, NewParseError("unsupported base joint type %q", cfg.BaseJointType))
	}
	return err
}

// Joint returns the joint config with the given id.
func (cfg *ModelConfig) Joint(id string) (*JointConfig, bool) {
	for i := range cfg.Joints {
		if cfg.Joints[i].ID == id {
			return &cfg.Joints[i], true
		}
	}
	return nil, false
}

// UnmarshalModelJSON will parse the given JSON data into a model description. modelName sets the name of the
// model, the name from the JSON is used if it is empty.
func UnmarshalModelJSON(jsonData []byte, modelName string) (*ModelConfig, error) {
	// empty data probably means that the robot has no model information
	if len(jsonData) == 0 {
		return nil, ErrNoModelInformation
	}

	m := &ModelConfig{}
	if err := json.Unmarshal(jsonData, m); err != nil {
		return nil, errors.Wrapf(ErrParse, "failed to unmarshal json file: %v", err)
	}
	if modelName != "" {
		m.Name = modelName
	}
	m.OriginalFile = &ModelFile{Bytes: jsonData, Extension: "json"}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseModelJSONFile will read a given file and then parse the contained JSON data.
func ParseModelJSONFile(filename, modelName string) (*ModelConfig, error) {
	//nolint:gosec
	jsonData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read json file")
	}
	return UnmarshalModelJSON(jsonData, modelName)
}
