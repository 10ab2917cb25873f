package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
)

// Kind is the collider primitive.
type Kind uint8

const (
	KindBox Kind = iota
	KindSphere
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindSphere:
		return "sphere"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind maps a scene file kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "box":
		return KindBox, nil
	case "sphere":
		return KindSphere, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidCollider, s)
	}
}

// Collider is a static shape registered with a World.
type Collider struct {
	ID          string
	Kind        Kind
	Center      mgl64.Vec3
	Rotation    mgl64.Quat
	HalfExtents mgl64.Vec3 // box only
	Radius      float64    // sphere only
	Layer       int
	Trigger     bool
}

// NewBox describes an axis aligned box collider on layer 0.
func NewBox(center, halfExtents mgl64.Vec3) Collider {
	return Collider{Kind: KindBox, Center: center, Rotation: mgl64.QuatIdent(), HalfExtents: halfExtents}
}

// NewSphere describes a sphere collider on layer 0.
func NewSphere(center mgl64.Vec3, radius float64) Collider {
	return Collider{Kind: KindSphere, Center: center, Rotation: mgl64.QuatIdent(), Radius: radius}
}

func (c Collider) OnLayer(layer int) Collider {
	c.Layer = layer
	return c
}

func (c Collider) AsTrigger() Collider {
	c.Trigger = true
	return c
}

func (c Collider) Rotated(rot mgl64.Quat) Collider {
	c.Rotation = rot
	return c
}

func (c Collider) WithID(id string) Collider {
	c.ID = id
	return c
}

// Validate checks dimensions and layer.
func (c Collider) Validate() error {
	if c.Layer < 0 || c.Layer > physics.MaxLayer {
		return fmt.Errorf("%w: layer %d out of range", ErrInvalidCollider, c.Layer)
	}
	switch c.Kind {
	case KindBox:
		for i := 0; i < 3; i++ {
			if !(c.HalfExtents[i] >= 0) || math.IsInf(c.HalfExtents[i], 0) {
				return fmt.Errorf("%w: box half extents %v", ErrInvalidCollider, c.HalfExtents)
			}
		}
	case KindSphere:
		if !(c.Radius >= 0) || math.IsInf(c.Radius, 0) {
			return fmt.Errorf("%w: sphere radius %v", ErrInvalidCollider, c.Radius)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidCollider, c.Kind)
	}
	return nil
}

func (c Collider) toLocal(p mgl64.Vec3) mgl64.Vec3 {
	return c.Rotation.Inverse().Rotate(p.Sub(c.Center))
}

func (c Collider) dirToLocal(d mgl64.Vec3) mgl64.Vec3 {
	return c.Rotation.Inverse().Rotate(d)
}

func (c Collider) toWorld(p mgl64.Vec3) mgl64.Vec3 {
	return c.Rotation.Rotate(p).Add(c.Center)
}

// closestPoint returns the point on the collider surface or volume nearest to p.
func (c Collider) closestPoint(p mgl64.Vec3) mgl64.Vec3 {
	switch c.Kind {
	case KindSphere:
		dir := physics.SafeNormalize(p.Sub(c.Center))
		return c.Center.Add(dir.Mul(c.Radius))
	default:
		return c.toWorld(clampToBox(c.toLocal(p), c.HalfExtents))
	}
}

// raycast intersects the ray o + d*t (d unit length) with the collider.
// Rays starting inside the collider do not hit it.
func (c Collider) raycast(o, d mgl64.Vec3, maxDistance float64) (physics.HitRecord, bool) {
	switch c.Kind {
	case KindSphere:
		t, inside, ok := sphereHit(o, d, c.Center, c.Radius)
		if !ok || inside || t > maxDistance {
			return physics.HitRecord{}, false
		}
		point := o.Add(d.Mul(t))
		return physics.HitRecord{
			Point:    point,
			Normal:   physics.SafeNormalize(point.Sub(c.Center)),
			Distance: t,
			Collider: c.ID,
		}, true
	default:
		h := c.HalfExtents
		hit, ok := slab(c.toLocal(o), c.dirToLocal(d), h.Mul(-1), h)
		if !ok || hit.inside || hit.tNear > maxDistance {
			return physics.HitRecord{}, false
		}
		return physics.HitRecord{
			Point:    o.Add(d.Mul(hit.tNear)),
			Normal:   c.Rotation.Rotate(hit.normal),
			Distance: hit.tNear,
			Collider: c.ID,
		}, true
	}
}
