package sensor

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics/world"
)

const sensorsYAML = `
sensors:
  - name: front
    type: LineCast
    length: 10
    layers: [1, 2]
  - name: bumper
    type: BoxCast
    length: 6
    custom_thin_dimension: true
    thin_dimension: [2, 0.5]
  - name: ball
    type: SphereCast
    thin: 0.25
  - name: arc
    type: CurvedCast
    resolution: 8
    arc_angle: 3.14
    radius: 2
    pose:
      position: [0, 1, 0]
      rotation: [0, 90, 0]
  - name: zone
    type: CheckBox
  - name: all
    type: FullBoxCast
    length: 12
`

func TestLoadYAML(t *testing.T) {
	f, err := LoadYAML(strings.NewReader(sensorsYAML))
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	require.Len(t, f.Sensors, 6)

	tests := []struct {
		name  string
		check func(t *testing.T, cfg Config)
	}{
		{"front", func(t *testing.T, cfg Config) {
			require.Equal(t, LineCast{}, cfg.Shape)
			require.Equal(t, 10.0, cfg.Length)
			require.Equal(t, physics.LayerMask(1, 2), cfg.Mask)
		}},
		{"bumper", func(t *testing.T, cfg Config) {
			require.Equal(t, BoxCast{Section: Custom(2, 0.5)}, cfg.Shape)
		}},
		{"ball", func(t *testing.T, cfg Config) {
			require.Equal(t, SphereCast{Radius: 0.25}, cfg.Shape)
			require.Equal(t, DefaultLength, cfg.Length)
		}},
		{"arc", func(t *testing.T, cfg Config) {
			require.Equal(t, CurvedCast{Resolution: 8, ArcAngle: 3.14, Radius: 2}, cfg.Shape)
		}},
		{"zone", func(t *testing.T, cfg Config) {
			require.Equal(t, CheckBox{Section: Uniform(DefaultThin)}, cfg.Shape)
			require.Equal(t, physics.AllLayers, cfg.Mask)
		}},
		{"all", func(t *testing.T, cfg Config) {
			require.Equal(t, KindFullBoxCast, cfg.Kind())
		}},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := f.Sensors[i]
			require.Equal(t, tt.name, def.Name)
			cfg, err := def.Config()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}

	arc := f.Sensors[3].Transform()
	requireVec(t, mgl64.Vec3{0, 1, 0}, arc.Position())
	requireVec(t, mgl64.Vec3{1, 0, 0}, arc.Forward())
}

func TestLoadJSON(t *testing.T) {
	f, err := LoadJSON(strings.NewReader(`{"sensors":[{"name":"a","type":"CurvedCast"}]}`))
	require.NoError(t, err)

	cfg, err := f.Sensors[0].Config()
	require.NoError(t, err)
	require.Equal(t, CurvedCast{
		Resolution: DefaultResolution,
		ArcAngle:   DefaultArcAngle,
		Radius:     DefaultArcRadius,
	}, cfg.Shape)

	_, err = LoadJSON(strings.NewReader(`{"sensors":`))
	require.Error(t, err)
}

func TestFile_Validate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown type", "sensors: [{name: a, type: ConeCast}]"},
		{"missing name", "sensors: [{type: LineCast}]"},
		{"duplicate name", "sensors: [{name: a, type: LineCast}, {name: a, type: BoxCast}]"},
		{"negative length", "sensors: [{name: a, type: LineCast, length: -1}]"},
		{"negative thin", "sensors: [{name: a, type: BoxCast, thin: -0.5}]"},
		{"negative custom", "sensors: [{name: a, type: BoxCast, custom_thin_dimension: true, thin_dimension: [1, -1]}]"},
		{"negative resolution", "sensors: [{name: a, type: CurvedCast, resolution: -1}]"},
		{"arc too wide", "sensors: [{name: a, type: CurvedCast, arc_angle: 7}]"},
		{"negative radius", "sensors: [{name: a, type: CurvedCast, radius: -2}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := LoadYAML(strings.NewReader(tt.yaml))
			require.NoError(t, err)
			require.ErrorIs(t, f.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, Config{Length: 0, Shape: LineCast{}}.Validate())
	require.NoError(t, Config{Length: 1, Shape: CurvedCast{ArcAngle: 2 * math.Pi}}.Validate())
	require.ErrorIs(t, Config{Length: math.NaN(), Shape: LineCast{}}.Validate(), ErrInvalidConfig)
	require.ErrorIs(t, Config{Length: math.Inf(1), Shape: LineCast{}}.Validate(), ErrInvalidConfig)
	require.ErrorIs(t, Config{Length: 1, Shape: SphereCast{Radius: -1}}.Validate(), ErrInvalidConfig)
}

func TestParseKind(t *testing.T) {
	for _, shape := range allShapes() {
		k, err := ParseKind(shape.Kind().String())
		require.NoError(t, err)
		require.Equal(t, shape.Kind(), k)
	}

	_, err := ParseKind("linecast")
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.Equal(t, "Kind(42)", Kind(42).String())
}

func TestFile_Build(t *testing.T) {
	w := newWorld(t, world.NewBox(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{1, 1, 1}).OnLayer(2))

	f, err := LoadYAML(strings.NewReader(sensorsYAML))
	require.NoError(t, err)

	sensors, err := f.Build(w)
	require.NoError(t, err)
	require.Len(t, sensors, 6)

	front := sensors[0]
	require.Equal(t, "front", front.Name())
	require.True(t, front.Scan())
	require.InDelta(t, 0.6, front.Percent(), 1e-9)

	zone := sensors[4]
	require.Equal(t, "zone", zone.Name())
	require.False(t, zone.Scan())

	_, err = f.Build(nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
