package sensor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind names a sweep shape.
type Kind uint8

const (
	KindLineCast Kind = iota
	KindBoxCast
	KindSphereCast
	KindCheckBox
	KindCurvedCast
	KindFullBoxCast
)

var kindNames = [...]string{
	KindLineCast:    "LineCast",
	KindBoxCast:     "BoxCast",
	KindSphereCast:  "SphereCast",
	KindCheckBox:    "CheckBox",
	KindCurvedCast:  "CurvedCast",
	KindFullBoxCast: "FullBoxCast",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind accepts the shape names as printed by Kind.String, case sensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown sweep shape %q", ErrInvalidConfig, s)
}

// Shape is one of LineCast, BoxCast, SphereCast, CheckBox, CurvedCast or
// FullBoxCast. The set is closed; Scan switches over it exhaustively.
type Shape interface {
	Kind() Kind
	validate() error
}

// CrossSection is the footprint of box shapes perpendicular to the sweep.
// When Custom is set Dimension replaces the uniform Thin value.
type CrossSection struct {
	Thin      float64
	Custom    bool
	Dimension mgl64.Vec2
}

// Uniform returns a square cross section of side thin.
func Uniform(thin float64) CrossSection { return CrossSection{Thin: thin} }

// Custom returns a cross section of width x and height y.
func Custom(x, y float64) CrossSection {
	return CrossSection{Custom: true, Dimension: mgl64.Vec2{x, y}}
}

// Extent returns the width and height of the cross section.
func (c CrossSection) Extent() (x, y float64) {
	if c.Custom {
		return c.Dimension[0], c.Dimension[1]
	}
	return c.Thin, c.Thin
}

func (c CrossSection) validate() error {
	x, y := c.Extent()
	if !nonNegative(x) || !nonNegative(y) {
		return fmt.Errorf("%w: cross section %vx%v", ErrInvalidConfig, x, y)
	}
	return nil
}

// LineCast is a single ray along the forward axis.
type LineCast struct{}

// BoxCast sweeps a thin box slice along the forward axis and keeps the closest hit.
type BoxCast struct {
	Section CrossSection
}

// FullBoxCast sweeps the same box as BoxCast and keeps every hit.
type FullBoxCast struct {
	Section CrossSection
}

// SphereCast sweeps a sphere. Only a uniform size applies to spheres.
type SphereCast struct {
	Radius float64
}

// CheckBox tests a static box reaching Length along the forward axis,
// centered on the pose. It answers hit or no hit only.
type CheckBox struct {
	Section CrossSection
}

// CurvedCast approximates an arc of Radius spanning ArcAngle radians with
// Resolution straight segments. The arc center sits Radius behind the pose
// and bends from the forward axis towards the up axis.
type CurvedCast struct {
	Resolution int
	ArcAngle   float64
	Radius     float64
}

func (LineCast) Kind() Kind    { return KindLineCast }
func (BoxCast) Kind() Kind     { return KindBoxCast }
func (FullBoxCast) Kind() Kind { return KindFullBoxCast }
func (SphereCast) Kind() Kind  { return KindSphereCast }
func (CheckBox) Kind() Kind    { return KindCheckBox }
func (CurvedCast) Kind() Kind  { return KindCurvedCast }

func (LineCast) validate() error      { return nil }
func (s BoxCast) validate() error     { return s.Section.validate() }
func (s FullBoxCast) validate() error { return s.Section.validate() }
func (s CheckBox) validate() error    { return s.Section.validate() }

func (s SphereCast) validate() error {
	if !nonNegative(s.Radius) {
		return fmt.Errorf("%w: sphere radius %v", ErrInvalidConfig, s.Radius)
	}
	return nil
}

func (s CurvedCast) validate() error {
	if s.Resolution < 0 {
		return fmt.Errorf("%w: arc resolution %d", ErrInvalidConfig, s.Resolution)
	}
	if !nonNegative(s.ArcAngle) || s.ArcAngle > 2*math.Pi {
		return fmt.Errorf("%w: arc angle %v outside [0, 2π]", ErrInvalidConfig, s.ArcAngle)
	}
	if !nonNegative(s.Radius) {
		return fmt.Errorf("%w: arc radius %v", ErrInvalidConfig, s.Radius)
	}
	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
