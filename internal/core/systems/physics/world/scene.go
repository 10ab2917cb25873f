package world

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
	"gopkg.in/yaml.v3"
)

// Scene is the file description of a world.
type Scene struct {
	Name      string           `json:"name,omitempty" yaml:"name,omitempty"`
	Colliders []ColliderConfig `json:"colliders" yaml:"colliders"`
}

// ColliderConfig describes one collider. Rotation holds Euler angles in
// degrees (pitch, yaw, roll).
type ColliderConfig struct {
	ID          string     `json:"id,omitempty" yaml:"id,omitempty"`
	Kind        string     `json:"kind" yaml:"kind"`
	Center      [3]float64 `json:"center" yaml:"center"`
	HalfExtents [3]float64 `json:"half_extents,omitempty" yaml:"half_extents,omitempty"`
	Radius      float64    `json:"radius,omitempty" yaml:"radius,omitempty"`
	Rotation    [3]float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Layer       int        `json:"layer,omitempty" yaml:"layer,omitempty"`
	Trigger     bool       `json:"trigger,omitempty" yaml:"trigger,omitempty"`
}

// LoadSceneJSON loads a scene from a JSON reader.
func LoadSceneJSON(r io.Reader) (*Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSceneYAML loads a scene from a YAML reader.
func LoadSceneYAML(r io.Reader) (*Scene, error) {
	var s Scene
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Collider converts the description into a Collider.
func (cc ColliderConfig) Collider() (Collider, error) {
	kind, err := ParseKind(cc.Kind)
	if err != nil {
		return Collider{}, err
	}
	rot := physics.TransformFromEuler(mgl64.Vec3{}, cc.Rotation[0], cc.Rotation[1], cc.Rotation[2]).Rot
	c := Collider{
		ID:          cc.ID,
		Kind:        kind,
		Center:      mgl64.Vec3(cc.Center),
		Rotation:    rot,
		HalfExtents: mgl64.Vec3(cc.HalfExtents),
		Radius:      cc.Radius,
		Layer:       cc.Layer,
		Trigger:     cc.Trigger,
	}
	return c, c.Validate()
}

// Validate checks every collider and rejects duplicate IDs.
func (s *Scene) Validate() error {
	seen := make(map[string]struct{}, len(s.Colliders))
	for i, cc := range s.Colliders {
		if _, err := cc.Collider(); err != nil {
			return fmt.Errorf("%w: collider %d: %w", ErrInvalidScene, i, err)
		}
		if cc.ID == "" {
			continue
		}
		if _, dup := seen[cc.ID]; dup {
			return fmt.Errorf("%w: duplicate collider id %q", ErrInvalidScene, cc.ID)
		}
		seen[cc.ID] = struct{}{}
	}
	return nil
}

// Build creates a World populated with the scene colliders.
func (s *Scene) Build(opts ...Option) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w := New(opts...)
	for _, cc := range s.Colliders {
		c, _ := cc.Collider()
		if _, err := w.Add(c); err != nil {
			return nil, err
		}
	}
	return w, nil
}
