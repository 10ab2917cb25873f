package sensor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
)

// BoxSlices divides the sweep length into the depth of the box swept by
// BoxCast and FullBoxCast. More slices give a thinner box along the sweep
// axis and a more precise hit distance; the box is swept
// Length - (Length/BoxSlices)/2 so it does not overshoot the configured length.
const BoxSlices = 12

// Segment is one straight piece of a CurvedCast arc.
type Segment struct {
	From mgl64.Vec3 `json:"from"`
	To   mgl64.Vec3 `json:"to"`
}

// Scan runs the query described by cfg from the pose against backend and
// returns the outcome. The pose is read once. A miss is a normal result
// with Hit == false.
func Scan(cfg Config, pose physics.Pose, backend physics.Backend) Result {
	frame := physics.Snapshot(pose)
	res := Result{
		Scanned: true,
		Kind:    cfg.Kind(),
		Origin:  frame.Position,
		Length:  cfg.Length,
		Frame:   frame,
		Segment: -1,
	}
	filter := physics.Filter{Mask: cfg.Mask, Triggers: physics.TriggerIgnore}

	switch shape := cfg.Shape.(type) {
	case LineCast:
		to := frame.Position.Add(frame.Forward.Mul(cfg.Length))
		res.record(backend.LineCast(frame.Position, to, filter))

	case BoxCast:
		res.record(backend.BoxCast(boxQuery(frame, shape.Section, cfg.Length, filter)))

	case FullBoxCast:
		hits := backend.BoxCastAll(boxQuery(frame, shape.Section, cfg.Length, filter))
		if len(hits) > 0 {
			SortHits(hits)
			res.Hits = hits
			res.record(hits[0], true)
		}

	case SphereCast:
		res.record(backend.SphereCast(physics.SphereQuery{
			Origin:      frame.Position,
			Direction:   frame.Forward,
			Radius:      shape.Radius,
			MaxDistance: cfg.Length,
			Filter:      filter,
		}))

	case CheckBox:
		res.Hit = backend.CheckBox(physics.OverlapQuery{
			Center:      frame.Position,
			HalfExtents: CheckBoxHalfExtents(shape.Section, cfg.Length),
			Orientation: frame.Rotation,
			Filter:      filter,
		})

	case CurvedCast:
		for i, seg := range ArcSegments(frame, shape) {
			if hit, ok := backend.LineCast(seg.From, seg.To, filter); ok {
				res.record(hit, true)
				res.Segment = i
				break
			}
		}
	}

	return res
}

// BoxHalfExtents returns the half extents of the box swept by BoxCast and FullBoxCast.
func BoxHalfExtents(section CrossSection, length float64) mgl64.Vec3 {
	x, y := section.Extent()
	return mgl64.Vec3{x, y, length / BoxSlices}.Mul(0.5)
}

// BoxSweepDistance returns how far BoxCast and FullBoxCast move their box.
func BoxSweepDistance(length float64) float64 {
	return length - (length/BoxSlices)/2
}

// CheckBoxHalfExtents returns the half extents of the CheckBox overlap box.
func CheckBoxHalfExtents(section CrossSection, length float64) mgl64.Vec3 {
	x, y := section.Extent()
	return mgl64.Vec3{x, y, length}.Mul(0.5)
}

func boxQuery(frame physics.Frame, section CrossSection, length float64, filter physics.Filter) physics.BoxQuery {
	return physics.BoxQuery{
		Center:      frame.Position,
		HalfExtents: BoxHalfExtents(section, length),
		Direction:   frame.Forward,
		Orientation: frame.Rotation,
		MaxDistance: BoxSweepDistance(length),
		Filter:      filter,
	}
}

// ArcSegments returns the segments of a CurvedCast in the order they are
// cast. A zero resolution yields no segments.
func ArcSegments(frame physics.Frame, shape CurvedCast) []Segment {
	if shape.Resolution <= 0 {
		return nil
	}

	step := shape.ArcAngle / float64(shape.Resolution)
	center := frame.Position.Sub(frame.Forward.Mul(shape.Radius))
	at := func(angle float64) mgl64.Vec3 {
		dir := frame.Forward.Mul(math.Cos(angle)).Add(frame.Up.Mul(math.Sin(angle)))
		return center.Add(dir.Mul(shape.Radius))
	}

	segments := make([]Segment, shape.Resolution)
	for i := range segments {
		segments[i] = Segment{
			From: at(step * float64(i)),
			To:   at(step * float64(i+1)),
		}
	}
	return segments
}
