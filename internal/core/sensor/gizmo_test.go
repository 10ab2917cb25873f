package sensor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics/world"
)

func countType(gizmos []Gizmo, typ GizmoType) int {
	n := 0
	for _, g := range gizmos {
		if g.Type == typ {
			n++
		}
	}
	return n
}

func TestGizmos_LineCast(t *testing.T) {
	w := newWorld(t, world.NewBox(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{1, 1, 1}))
	s := lineSensor(t, origin, w, 10)

	idle := s.Gizmos()
	require.Len(t, idle, 3)
	require.Equal(t, ColorIdle, idle[0].Color)
	requireVec(t, mgl64.Vec3{0, 0, 10}, idle[0].To)

	require.True(t, s.Scan())
	gizmos := s.Gizmos()
	require.Len(t, gizmos, 3)

	require.Equal(t, GizmoLine, gizmos[0].Type)
	require.Equal(t, ColorHit, gizmos[0].Color)
	requireVec(t, mgl64.Vec3{0, 0, 4}, gizmos[0].To)
	require.Equal(t, ColorStart, gizmos[1].Color)
	require.Equal(t, ColorEnd, gizmos[2].Color)
	requireVec(t, mgl64.Vec3{0, 0, 4}, gizmos[2].Center)
}

func TestGizmos_ModelPlacesSensorSpace(t *testing.T) {
	pose := physics.TransformFromEuler(mgl64.Vec3{1, 2, 3}, 0, 90, 0)
	s := lineSensor(t, pose, world.New(), 3)
	require.False(t, s.Scan())

	line := s.Gizmos()[0]
	requireVec(t, mgl64.Vec3{1, 2, 3}, line.World(line.From))
	requireVec(t, mgl64.Vec3{4, 2, 3}, line.World(line.To))
}

func TestGizmos_Shapes(t *testing.T) {
	frame := physics.Snapshot(origin)
	miss := Result{Scanned: true, Segment: -1}

	t.Run("box", func(t *testing.T) {
		cfg := Config{Length: 6, Shape: BoxCast{Section: Custom(2, 3)}}
		hit := Result{Scanned: true, Kind: KindBoxCast, Hit: true, HasRecord: true, Info: physics.HitRecord{Distance: 2}, Segment: -1}

		gizmos := Gizmos(cfg, frame, hit)
		require.Len(t, gizmos, 3)
		require.Equal(t, GizmoWireCube, gizmos[0].Type)
		require.Equal(t, mgl64.Vec3{2, 3, 2}, gizmos[0].Size)
		require.Equal(t, mgl64.Vec3{0, 0, 1}, gizmos[0].Center)
		require.Equal(t, mgl64.Vec3{0, 0, 2}, gizmos[2].Center)
	})

	t.Run("check box", func(t *testing.T) {
		gizmos := Gizmos(Config{Length: 4, Shape: CheckBox{Section: Uniform(1)}}, frame, miss)
		require.Len(t, gizmos, 1)
		require.Equal(t, mgl64.Vec3{1, 1, 4}, gizmos[0].Size)
		require.Equal(t, ColorIdle, gizmos[0].Color)
	})

	t.Run("sphere", func(t *testing.T) {
		cfg := Config{Length: 10, Shape: SphereCast{Radius: 0.5}}
		require.Len(t, Gizmos(cfg, frame, miss), 6)

		hit := Result{
			Scanned:   true,
			Kind:      KindSphereCast,
			Hit:       true,
			HasRecord: true,
			Info:      physics.HitRecord{Point: mgl64.Vec3{0, 0, 4}, Normal: mgl64.Vec3{0, 0, -1}, Distance: 3.5},
			Segment:   -1,
		}
		gizmos := Gizmos(cfg, frame, hit)
		require.Len(t, gizmos, 7)
		require.Equal(t, 2, countType(gizmos, GizmoWireSphere))
		requireVec(t, mgl64.Vec3{0, 0, 3.5}, gizmos[5].Center)

		normal := gizmos[6]
		requireVec(t, mgl64.Vec3{0, 0, 4}, normal.From)
		requireVec(t, mgl64.Vec3{0, 0, 3.75}, normal.To)
	})

	t.Run("curved", func(t *testing.T) {
		shape := CurvedCast{Resolution: 5, ArcAngle: DefaultArcAngle, Radius: DefaultArcRadius}
		cfg := Config{Length: 1, Shape: shape}

		gizmos := Gizmos(cfg, frame, miss)
		require.Len(t, gizmos, 6)
		require.Equal(t, 5, countType(gizmos, GizmoLine))
		require.Equal(t, mgl64.Ident4(), gizmos[0].Model)

		point := mgl64.Vec3{0, 0.43, -0.4}
		hit := Result{
			Scanned:   true,
			Kind:      KindCurvedCast,
			Hit:       true,
			HasRecord: true,
			Info:      physics.HitRecord{Point: point, Normal: mgl64.Vec3{0, 0, 1}},
			Segment:   1,
		}
		gizmos = Gizmos(cfg, frame, hit)
		require.Len(t, gizmos, 4)
		require.Equal(t, point, gizmos[1].To)
		require.Equal(t, ColorHit, gizmos[1].Color)
		require.Equal(t, ColorEnd, gizmos[3].Color)
	})

	t.Run("box without finite distance", func(t *testing.T) {
		cfg := Config{Length: 6, Shape: FullBoxCast{Section: Uniform(1)}}
		hit := Result{Scanned: true, Kind: KindFullBoxCast, Hit: true, HasRecord: true, Info: physics.HitRecord{Distance: math.NaN()}, Segment: -1}

		gizmos := Gizmos(cfg, frame, hit)
		require.Equal(t, mgl64.Vec3{1, 1, 6}, gizmos[0].Size)
		require.Equal(t, ColorHit, gizmos[0].Color)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		cfg := Config{Length: 10, Shape: LineCast{}}
		arcHit := Result{
			Scanned:   true,
			Kind:      KindCurvedCast,
			Hit:       true,
			HasRecord: true,
			Info:      physics.HitRecord{Point: mgl64.Vec3{0, 0.43, -0.4}, Normal: mgl64.Vec3{0, 0, 1}},
			Segment:   1,
		}

		gizmos := Gizmos(cfg, frame, arcHit)
		require.Len(t, gizmos, 3)
		require.Equal(t, ColorIdle, gizmos[0].Color)
		requireVec(t, mgl64.Vec3{0, 0, 10}, gizmos[0].To)
	})

	t.Run("zero resolution", func(t *testing.T) {
		require.Empty(t, Gizmos(Config{Length: 1, Shape: CurvedCast{}}, frame, miss))
	})
}
