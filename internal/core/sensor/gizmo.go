package sensor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
)

type GizmoType uint8

const (
	GizmoLine GizmoType = iota
	GizmoWireCube
	GizmoWireSphere
)

var gizmoTypeNames = [...]string{
	GizmoLine:       "line",
	GizmoWireCube:   "wire_cube",
	GizmoWireSphere: "wire_sphere",
}

func (t GizmoType) String() string {
	if int(t) < len(gizmoTypeNames) {
		return gizmoTypeNames[t]
	}
	return fmt.Sprintf("GizmoType(%d)", uint8(t))
}

func (t GizmoType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *GizmoType) UnmarshalText(text []byte) error {
	for i, name := range gizmoTypeNames {
		if name == string(text) {
			*t = GizmoType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown gizmo type %q", text)
}

type Color [4]float32

var (
	ColorIdle  = Color{1, 1, 1, 1}
	ColorHit   = Color{1, 0, 0, 1}
	ColorStart = Color{0, 0, 0, 1}
	ColorEnd   = Color{0, 1, 0, 1}
)

// Gizmo is a debug primitive in the space given by Model.
//
// Line: From -> To. WireCube: Center with full Size. WireSphere: Center with Radius.
type Gizmo struct {
	Type   GizmoType  `json:"type"`
	Color  Color      `json:"color"`
	Model  mgl64.Mat4 `json:"model"`
	From   mgl64.Vec3 `json:"from"`
	To     mgl64.Vec3 `json:"to"`
	Center mgl64.Vec3 `json:"center"`
	Size   mgl64.Vec3 `json:"size"`
	Radius float64    `json:"radius,omitempty"`
}

// World transforms a point from gizmo space to world space.
func (g Gizmo) World(p mgl64.Vec3) mgl64.Vec3 {
	return g.Model.Mul4x1(p.Vec4(1)).Vec3()
}

var markerSize = mgl64.Vec3{0.02, 0.02, 0.02}

type gizmoBuilder struct {
	model mgl64.Mat4
	color Color
	out   []Gizmo
}

func (b *gizmoBuilder) line(from, to mgl64.Vec3) {
	b.out = append(b.out, Gizmo{Type: GizmoLine, Color: b.color, Model: b.model, From: from, To: to})
}

func (b *gizmoBuilder) cube(center, size mgl64.Vec3) {
	b.out = append(b.out, Gizmo{Type: GizmoWireCube, Color: b.color, Model: b.model, Center: center, Size: size})
}

func (b *gizmoBuilder) sphere(center mgl64.Vec3, radius float64) {
	b.out = append(b.out, Gizmo{Type: GizmoWireSphere, Color: b.color, Model: b.model, Center: center, Radius: radius})
}

// Gizmos lays out the sweep geometry of cfg placed at frame, shortened to the
// hit of res. Everything is drawn in sensor space (+Z forward) except the
// CurvedCast arc and hit normals, which use world space. The sweep is drawn
// in ColorHit when res hit, ColorIdle otherwise. A result scanned with
// another shape kind than cfg is drawn as a miss.
func Gizmos(cfg Config, frame physics.Frame, res Result) []Gizmo {
	if res.Scanned && res.Kind != cfg.Kind() {
		res = Result{}
	}
	rot := frame.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	p := frame.Position
	b := &gizmoBuilder{
		model: mgl64.Translate3D(p[0], p[1], p[2]).Mul4(rot.Mat4()),
		color: ColorIdle,
	}
	if res.Hit {
		b.color = ColorHit
	}

	forward := physics.AxisForward
	length := cfg.Length
	info, hasInfo := res.Primary()

	switch shape := cfg.Shape.(type) {
	case LineCast:
		if hasInfo {
			length = physics.Distance(p, info.Point)
		}
		b.line(mgl64.Vec3{}, forward.Mul(length))
		b.color = ColorStart
		b.cube(mgl64.Vec3{}, markerSize)
		b.color = ColorEnd
		b.cube(forward.Mul(length), markerSize)

	case BoxCast:
		boxGizmos(b, shape.Section, length, info, hasInfo)

	case FullBoxCast:
		boxGizmos(b, shape.Section, length, info, hasInfo)

	case CheckBox:
		x, y := shape.Section.Extent()
		b.cube(mgl64.Vec3{}, mgl64.Vec3{x, y, length})

	case SphereCast:
		r := shape.Radius
		b.sphere(mgl64.Vec3{}, r)
		if hasInfo {
			ballCenter := info.Point.Add(info.Normal.Mul(r))
			length = physics.Distance(p, ballCenter)
		}
		for _, side := range []mgl64.Vec3{physics.AxisUp, physics.AxisUp.Mul(-1), physics.AxisRight, physics.AxisRight.Mul(-1)} {
			from := side.Mul(r)
			b.line(from, from.Add(forward.Mul(length)))
		}
		b.sphere(forward.Mul(length), r)
		if hasInfo {
			b.model = mgl64.Ident4()
			b.line(info.Point, info.Point.Add(info.Normal.Mul(r/2)))
		}

	case CurvedCast:
		b.model = mgl64.Ident4()
		segments := ArcSegments(frame, shape)
		for i, seg := range segments {
			if hasInfo && i == res.Segment {
				b.line(seg.From, info.Point)
				b.color = ColorEnd
				b.line(info.Point, info.Point.Add(info.Normal.Mul(0.1)))
				b.cube(info.Point, markerSize)
				break
			}
			b.line(seg.From, seg.To)
			if i == len(segments)-1 {
				b.color = ColorEnd
				b.cube(seg.To, markerSize)
			}
		}
	}

	return b.out
}

// boxGizmos draws the swept volume plus start and end slices.
func boxGizmos(b *gizmoBuilder, section CrossSection, length float64, info physics.HitRecord, hasInfo bool) {
	if hasInfo && !math.IsNaN(info.Distance) && !math.IsInf(info.Distance, 0) {
		length = info.Distance
	}
	x, y := section.Extent()
	slice := mgl64.Vec3{x, y, 0.1}
	if !section.Custom {
		slice = mgl64.Vec3{1, 1, 0.1}.Mul(section.Thin)
	}
	forward := physics.AxisForward

	b.cube(forward.Mul(length/2), mgl64.Vec3{x, y, length})
	b.color = ColorStart
	b.cube(mgl64.Vec3{}, slice)
	b.color = ColorEnd
	b.cube(forward.Mul(length), slice)
}
