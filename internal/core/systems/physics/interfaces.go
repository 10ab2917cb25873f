package physics

//go:generate mockgen -source=interfaces.go -destination=mock/backend.go -package=mock

import "github.com/go-gl/mathgl/mgl64"

// Query abstractions consumed by sensors. Implementations own the world
// geometry; callers only read it.

// Pose provides the placement of a probe. Forward is local +Z, Up is local +Y.
type Pose interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	Forward() mgl64.Vec3
	Up() mgl64.Vec3
}

// Backend answers sweep and overlap queries against a physics world.
// A miss is reported as ok == false or an empty slice, never as an error.
type Backend interface {
	// LineCast returns the first collider crossed by the segment from -> to.
	LineCast(from, to mgl64.Vec3, filter Filter) (HitRecord, bool)
	// BoxCast sweeps an oriented box and returns the closest hit.
	BoxCast(query BoxQuery) (HitRecord, bool)
	// BoxCastAll sweeps an oriented box and returns every collider it touches, in no particular order.
	BoxCastAll(query BoxQuery) []HitRecord
	// SphereCast sweeps a sphere and returns the closest hit.
	SphereCast(query SphereQuery) (HitRecord, bool)
	// CheckBox reports whether an oriented box overlaps any collider.
	CheckBox(query OverlapQuery) bool
}
