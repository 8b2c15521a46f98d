package floatingbase

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"go.viam.com/floatingbase/referenceframe"
)

// DefaultGravity is the gravity acceleration used when none is configured, in m/s^2.
const DefaultGravity = 9.81

// Config holds the system properties that a kinematic description does not carry.
type Config struct {
	// Gravity is the magnitude of the gravity acceleration. Nil means DefaultGravity.
	Gravity *float64 `yaml:"gravity,omitempty"`
	// FloatingBase maps the slots x, y, z, roll, pitch and yaw to the names of the base joints. Slots that are not
	// listed are fixed. A nil map leaves the base to the description.
	FloatingBase map[string]string `yaml:"floating_base,omitempty"`
	// EndEffectors maps body names to foot, hand or tool. A nil map makes every leaf body a tool.
	EndEffectors map[string]EndEffectorType `yaml:"end_effectors,omitempty"`
	// DefaultPosture overrides the default positions given by the description.
	DefaultPosture map[string]float64 `yaml:"default_posture,omitempty"`
}

// Validate checks the fields of the config that do not depend on a model.
func (cfg *Config) Validate() error {
	var err error
	if cfg.Gravity != nil && (*cfg.Gravity < 0 || math.IsNaN(*cfg.Gravity) || math.IsInf(*cfg.Gravity, 0)) {
		multierr.AppendInto(&err, referenceframe.NewParseError("gravity %v must be a non-negative number", *cfg.Gravity))
	}
	names := make(map[string]string, len(cfg.FloatingBase))
	slots := make(map[BaseSlot]string, len(cfg.FloatingBase))
	for _, slot := range sortedKeys(cfg.FloatingBase) {
		name := cfg.FloatingBase[slot]
		parsed, perr := ParseBaseSlot(slot)
		if perr != nil {
			multierr.AppendInto(&err, perr)
			continue
		}
		if other, ok := slots[parsed]; ok {
			multierr.AppendInto(&err, referenceframe.NewParseError("floating_base: %s and %s name the same slot", other, slot))
			continue
		}
		slots[parsed] = slot
		if name == "" {
			multierr.AppendInto(&err, referenceframe.NewParseError("floating_base.%s: joint name is required", slot))
			continue
		}
		if other, ok := names[name]; ok {
			multierr.AppendInto(&err, referenceframe.NewParseError("floating_base: %q names both %s and %s", name, other, slot))
		}
		names[name] = slot
	}
	for name, typ := range cfg.EndEffectors {
		if !typ.valid() {
			multierr.AppendInto(&err, referenceframe.NewParseError(
				"end_effectors.%s: type %q must be one of %s, %s or %s", name, typ, Foot, Hand, Tool))
		}
	}
	for name, v := range cfg.DefaultPosture {
		if math.IsNaN(v) {
			multierr.AppendInto(&err, referenceframe.NewParseError("default_posture.%s is not a number", name))
		}
	}
	return err
}

// GravityAcceleration returns the configured gravity, or DefaultGravity.
func (cfg *Config) GravityAcceleration() float64 {
	if cfg == nil || cfg.Gravity == nil {
		return DefaultGravity
	}
	return *cfg.Gravity
}

// UnmarshalConfig parses a YAML system config. Empty data is the zero config.
func UnmarshalConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(referenceframe.ErrParse, "failed to unmarshal system config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfig reads and parses a YAML system config file.
func ReadConfig(path string) (*Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read system config")
	}
	cfg, err := UnmarshalConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "system config %s", path)
	}
	return cfg, nil
}
