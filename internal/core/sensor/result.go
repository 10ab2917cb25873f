package sensor

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
)

// Result is the outcome of one scan.
type Result struct {
	// Scanned is false for the zero Result, before any scan ran.
	Scanned bool `json:"scanned"`
	Kind    Kind `json:"kind"`
	Hit     bool `json:"hit"`
	// Info is the closest hit. Only meaningful when HasRecord is set.
	Info      physics.HitRecord `json:"info"`
	HasRecord bool              `json:"has_record"`
	// Hits lists every FullBoxCast hit by ascending distance.
	Hits []physics.HitRecord `json:"hits,omitempty"`
	// Segment is the index of the CurvedCast segment that hit, or -1.
	Segment int `json:"segment"`

	Origin mgl64.Vec3    `json:"origin"`
	Length float64       `json:"length"`
	Frame  physics.Frame `json:"-"`
}

func (r *Result) record(hit physics.HitRecord, ok bool) {
	if !ok {
		return
	}
	r.Hit = true
	r.HasRecord = true
	r.Info = hit
}

// Primary returns the closest hit record, if the scan produced one.
func (r Result) Primary() (physics.HitRecord, bool) {
	return r.Info, r.Hit && r.HasRecord
}

// DistanceFromStart returns the distance between the hit point and the pose
// origin at scan time. It fails with an error wrapping ErrInvalidState when
// there is no hit record to measure.
func (r Result) DistanceFromStart() (float64, error) {
	switch {
	case !r.Scanned:
		return 0, ErrNotScanned
	case !r.Hit:
		return 0, ErrNothingHit
	case !r.HasRecord:
		return 0, ErrNoHitRecord
	}
	return physics.Distance(r.Origin, r.Info.Point), nil
}

// Percent maps the hit position onto [0, 1] over the configured length:
// 1 at the origin, approaching 0 at the far end. It returns 0 when nothing
// was hit, when the hit has no record and when the length is zero.
func (r Result) Percent() float64 {
	if !r.Hit || !r.HasRecord || r.Length == 0 {
		return 0
	}
	p := (r.Length - physics.Distance(r.Origin, r.Info.Point)) / r.Length
	if math.IsNaN(p) {
		return 0
	}
	return p
}

// SortHits orders hits by ascending distance. NaN distances sort after all
// numbers so the first element is always the closest real hit when one exists.
func SortHits(hits []physics.HitRecord) {
	slices.SortFunc(hits, compareDistance)
}

func compareDistance(a, b physics.HitRecord) int {
	aNaN, bNaN := math.IsNaN(a.Distance), math.IsNaN(b.Distance)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	}
	return cmp.Compare(a.Distance, b.Distance)
}
