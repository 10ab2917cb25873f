package physics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func requireVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestTransform3D_Axes(t *testing.T) {
	t.Run("identity", func(t *testing.T) {
		tr := NewTransform3D(mgl64.Vec3{1, 2, 3}, mgl64.Quat{})
		requireVec(t, AxisForward, tr.Forward())
		requireVec(t, AxisUp, tr.Up())
		requireVec(t, mgl64.Vec3{1, 2, 3}, tr.Position())
	})

	t.Run("yaw 90", func(t *testing.T) {
		tr := TransformFromEuler(mgl64.Vec3{}, 0, 90, 0)
		requireVec(t, AxisRight, tr.Forward())
		requireVec(t, AxisUp, tr.Up())
	})

	t.Run("pitch up", func(t *testing.T) {
		tr := TransformFromEuler(mgl64.Vec3{}, -90, 0, 0)
		requireVec(t, AxisUp, tr.Forward())
		requireVec(t, mgl64.Vec3{0, 0, -1}, tr.Up())
	})
}

func TestSnapshot(t *testing.T) {
	tr := TransformFromEuler(mgl64.Vec3{4, 0, 0}, 0, 90, 0)
	f := Snapshot(tr)
	requireVec(t, tr.Position(), f.Position)
	requireVec(t, tr.Forward(), f.Forward)
	requireVec(t, tr.Up(), f.Up)
	require.Equal(t, tr.Rotation(), f.Rotation)
}

func TestMask(t *testing.T) {
	m := LayerMask(0, 3, 31, 32, -1)
	require.True(t, m.Has(0))
	require.True(t, m.Has(3))
	require.True(t, m.Has(31))
	require.False(t, m.Has(1))
	require.False(t, m.Has(32))
	require.Equal(t, []int{0, 3, 31}, m.Layers())
	require.True(t, AllLayers.Has(17))
	require.False(t, NoLayers.Has(0))
}

func TestFilter_Accepts(t *testing.T) {
	f := Filter{Mask: LayerMask(2), Triggers: TriggerIgnore}
	require.True(t, f.Accepts(2, false))
	require.False(t, f.Accepts(2, true))
	require.False(t, f.Accepts(1, false))

	f.Triggers = TriggerCollide
	require.True(t, f.Accepts(2, true))
}

func TestDistanceAndNormalize(t *testing.T) {
	require.InDelta(t, 5.0, Distance(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 4, 0}), 1e-12)
	require.Equal(t, mgl64.Vec3{}, SafeNormalize(mgl64.Vec3{}))
	requireVec(t, AxisUp, SafeNormalize(mgl64.Vec3{0, 7, 0}))
}

func TestHitRecord_JSONNonFiniteDistance(t *testing.T) {
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		rec := HitRecord{Point: mgl64.Vec3{1, 2, 3}, Normal: AxisUp, Distance: d, Collider: "wall"}
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		require.Contains(t, string(data), `"distance":null`)

		var back HitRecord
		require.NoError(t, json.Unmarshal(data, &back))
		require.True(t, math.IsNaN(back.Distance))
		require.Equal(t, rec.Point, back.Point)
		require.Equal(t, "wall", back.Collider)
	}
}

func TestHitRecord_JSONRoundTrip(t *testing.T) {
	rec := HitRecord{Point: mgl64.Vec3{0, 0, 4}, Normal: AxisForward.Mul(-1), Distance: 4}
	data, err := json.Marshal([]HitRecord{rec})
	require.NoError(t, err)
	require.NotContains(t, string(data), "collider")

	var back []HitRecord
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, []HitRecord{rec}, back)
}
