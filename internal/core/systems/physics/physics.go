package physics

import (
	"encoding/json"
	"fmt"
	"math"
	"math/bits"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	AxisRight   = mgl64.Vec3{1, 0, 0}
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, 1}
)

// Transform3D is a plain position + rotation pose.
type Transform3D struct {
	Pos mgl64.Vec3
	Rot mgl64.Quat
}

var _ Pose = (*Transform3D)(nil)

// NewTransform3D creates a transform at pos with rotation rot. A zero
// quaternion is replaced with the identity.
func NewTransform3D(pos mgl64.Vec3, rot mgl64.Quat) *Transform3D {
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	return &Transform3D{Pos: pos, Rot: rot.Normalize()}
}

// TransformFromEuler builds a transform from Euler angles in degrees,
// applied as yaw (Y), pitch (X), roll (Z).
func TransformFromEuler(pos mgl64.Vec3, pitch, yaw, roll float64) *Transform3D {
	rot := mgl64.AnglesToQuat(
		mgl64.DegToRad(yaw),
		mgl64.DegToRad(pitch),
		mgl64.DegToRad(roll),
		mgl64.YXZ,
	)
	return NewTransform3D(pos, rot)
}

func (t *Transform3D) Position() mgl64.Vec3 { return t.Pos }
func (t *Transform3D) Rotation() mgl64.Quat { return t.Rot }
func (t *Transform3D) Forward() mgl64.Vec3  { return t.Rot.Rotate(AxisForward) }
func (t *Transform3D) Up() mgl64.Vec3       { return t.Rot.Rotate(AxisUp) }

// Frame is a pose read once, so a whole query sees consistent values.
type Frame struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Forward  mgl64.Vec3
	Up       mgl64.Vec3
}

// Snapshot reads every component of p.
func Snapshot(p Pose) Frame {
	return Frame{
		Position: p.Position(),
		Rotation: p.Rotation(),
		Forward:  p.Forward(),
		Up:       p.Up(),
	}
}

// HitRecord describes one intersection.
type HitRecord struct {
	Point    mgl64.Vec3 `json:"point"`
	Normal   mgl64.Vec3 `json:"normal"`
	Distance float64    `json:"distance"`
	// Collider identifies what was hit; empty when the backend does not track it.
	Collider string `json:"collider,omitempty"`
}

// hitRecordJSON carries a nullable distance; JSON has no NaN or infinity.
type hitRecordJSON struct {
	Point    mgl64.Vec3 `json:"point"`
	Normal   mgl64.Vec3 `json:"normal"`
	Distance *float64   `json:"distance"`
	Collider string     `json:"collider,omitempty"`
}

// MarshalJSON writes a non-finite distance as null.
func (h HitRecord) MarshalJSON() ([]byte, error) {
	out := hitRecordJSON{Point: h.Point, Normal: h.Normal, Collider: h.Collider}
	if !math.IsNaN(h.Distance) && !math.IsInf(h.Distance, 0) {
		out.Distance = &h.Distance
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a null distance back as NaN.
func (h *HitRecord) UnmarshalJSON(data []byte) error {
	var in hitRecordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*h = HitRecord{Point: in.Point, Normal: in.Normal, Distance: math.NaN(), Collider: in.Collider}
	if in.Distance != nil {
		h.Distance = *in.Distance
	}
	return nil
}

func (h HitRecord) String() string {
	return fmt.Sprintf("hit(%s at %.3f point=%v normal=%v)", h.Collider, h.Distance, h.Point, h.Normal)
}

// Mask is a bit set of collider layers 0..31.
type Mask uint32

const (
	NoLayers  Mask = 0
	AllLayers Mask = math.MaxUint32
	MaxLayer       = 31
)

// LayerMask builds a mask from layer indices. Indices outside 0..31 are ignored.
func LayerMask(layers ...int) Mask {
	var m Mask
	for _, l := range layers {
		if l < 0 || l > MaxLayer {
			continue
		}
		m |= 1 << uint(l)
	}
	return m
}

func (m Mask) Has(layer int) bool {
	if layer < 0 || layer > MaxLayer {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// Layers lists the set layer indices in increasing order.
func (m Mask) Layers() []int {
	out := make([]int, 0, bits.OnesCount32(uint32(m)))
	for l := 0; l <= MaxLayer; l++ {
		if m.Has(l) {
			out = append(out, l)
		}
	}
	return out
}

// TriggerInteraction decides whether trigger colliders take part in a query.
type TriggerInteraction uint8

const (
	TriggerIgnore TriggerInteraction = iota
	TriggerCollide
)

func (t TriggerInteraction) String() string {
	switch t {
	case TriggerIgnore:
		return "ignore"
	case TriggerCollide:
		return "collide"
	default:
		return "unknown"
	}
}

// Filter selects the colliders a query considers.
type Filter struct {
	Mask     Mask
	Triggers TriggerInteraction
}

// Accepts reports whether a collider on layer, with the given trigger flag, passes the filter.
func (f Filter) Accepts(layer int, trigger bool) bool {
	if trigger && f.Triggers == TriggerIgnore {
		return false
	}
	return f.Mask.Has(layer)
}

// BoxQuery sweeps an oriented box from Center along Direction.
type BoxQuery struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Direction   mgl64.Vec3
	Orientation mgl64.Quat
	MaxDistance float64
	Filter      Filter
}

// SphereQuery sweeps a sphere from Origin along Direction.
type SphereQuery struct {
	Origin      mgl64.Vec3
	Direction   mgl64.Vec3
	Radius      float64
	MaxDistance float64
	Filter      Filter
}

// OverlapQuery tests a static oriented box.
type OverlapQuery struct {
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Orientation mgl64.Quat
	Filter      Filter
}

// Distance computes the Euclidean distance between two points.
func Distance(a, b mgl64.Vec3) float64 { return b.Sub(a).Len() }

// SafeNormalize returns the unit vector of v, or the zero vector if v has no length.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
