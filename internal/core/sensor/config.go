package sensor

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
	"gopkg.in/yaml.v3"
)

// Defaults applied to omitted fields of a sensor description.
const (
	DefaultLength     = 1.0
	DefaultThin       = 1.0
	DefaultResolution = 5
	DefaultArcAngle   = math.Pi * 1.5
	DefaultArcRadius  = 0.5
)

// Config parameterizes a scan. Scan never mutates it.
type Config struct {
	// Mask selects the collider layers the sensor sees.
	Mask physics.Mask
	// Length is the maximum query distance from the pose origin.
	Length float64
	Shape  Shape
}

func (c Config) Validate() error {
	if c.Shape == nil {
		return fmt.Errorf("%w: shape is required", ErrInvalidConfig)
	}
	if !nonNegative(c.Length) {
		return fmt.Errorf("%w: length %v", ErrInvalidConfig, c.Length)
	}
	return c.Shape.validate()
}

// Kind returns the kind of the configured shape.
func (c Config) Kind() Kind {
	if c.Shape == nil {
		return KindLineCast
	}
	return c.Shape.Kind()
}

// File is the on-disk description of a set of sensors.
type File struct {
	Sensors []Definition `json:"sensors" yaml:"sensors"`
}

// Definition describes one sensor. Omitted numeric fields take the Default values;
// omitted layers mean every layer.
type Definition struct {
	Name                string         `json:"name" yaml:"name"`
	Type                string         `json:"type" yaml:"type"`
	Length              *float64       `json:"length,omitempty" yaml:"length,omitempty"`
	Thin                *float64       `json:"thin,omitempty" yaml:"thin,omitempty"`
	CustomThinDimension bool           `json:"custom_thin_dimension,omitempty" yaml:"custom_thin_dimension,omitempty"`
	ThinDimension       [2]float64     `json:"thin_dimension,omitempty" yaml:"thin_dimension,omitempty"`
	Resolution          *int           `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	ArcAngle            *float64       `json:"arc_angle,omitempty" yaml:"arc_angle,omitempty"`
	Radius              *float64       `json:"radius,omitempty" yaml:"radius,omitempty"`
	Layers              []int          `json:"layers,omitempty" yaml:"layers,omitempty"`
	Pose                PoseDefinition `json:"pose" yaml:"pose"`
}

// PoseDefinition places a sensor. Rotation holds Euler angles in degrees (pitch, yaw, roll).
type PoseDefinition struct {
	Position [3]float64 `json:"position" yaml:"position"`
	Rotation [3]float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// LoadJSON loads a sensor file from a JSON reader.
func LoadJSON(r io.Reader) (*File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadYAML loads a sensor file from a YAML reader.
func LoadYAML(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Config converts the description into a validated Config.
func (s Definition) Config() (Config, error) {
	kind, err := ParseKind(s.Type)
	if err != nil {
		return Config{}, err
	}

	section := Uniform(valueOr(s.Thin, DefaultThin))
	if s.CustomThinDimension {
		section = Custom(s.ThinDimension[0], s.ThinDimension[1])
	}

	var shape Shape
	switch kind {
	case KindLineCast:
		shape = LineCast{}
	case KindBoxCast:
		shape = BoxCast{Section: section}
	case KindFullBoxCast:
		shape = FullBoxCast{Section: section}
	case KindCheckBox:
		shape = CheckBox{Section: section}
	case KindSphereCast:
		shape = SphereCast{Radius: valueOr(s.Thin, DefaultThin)}
	case KindCurvedCast:
		shape = CurvedCast{
			Resolution: valueOr(s.Resolution, DefaultResolution),
			ArcAngle:   valueOr(s.ArcAngle, DefaultArcAngle),
			Radius:     valueOr(s.Radius, DefaultArcRadius),
		}
	}

	mask := physics.AllLayers
	if s.Layers != nil {
		mask = physics.LayerMask(s.Layers...)
	}

	cfg := Config{Mask: mask, Length: valueOr(s.Length, DefaultLength), Shape: shape}
	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("sensor %q: %w", s.Name, err)
	}
	return cfg, nil
}

// Transform returns the pose described by the definition.
func (s Definition) Transform() *physics.Transform3D {
	r := s.Pose.Rotation
	return physics.TransformFromEuler(mgl64.Vec3(s.Pose.Position), r[0], r[1], r[2])
}

// Validate checks every definition and rejects missing or duplicate names.
func (f *File) Validate() error {
	seen := make(map[string]struct{}, len(f.Sensors))
	for i, def := range f.Sensors {
		if def.Name == "" {
			return fmt.Errorf("%w: sensor %d has no name", ErrInvalidConfig, i)
		}
		if _, dup := seen[def.Name]; dup {
			return fmt.Errorf("%w: duplicate sensor name %q", ErrInvalidConfig, def.Name)
		}
		seen[def.Name] = struct{}{}
		if _, err := def.Config(); err != nil {
			return err
		}
	}
	return nil
}

// Build creates one Sensor per definition, each posed by its own transform and
// querying backend.
func (f *File) Build(backend physics.Backend, opts ...Option) ([]*Sensor, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	sensors := make([]*Sensor, 0, len(f.Sensors))
	for _, def := range f.Sensors {
		cfg, _ := def.Config()
		s, err := New(def.Name, cfg, def.Transform(), backend, opts...)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, s)
	}
	return sensors, nil
}
