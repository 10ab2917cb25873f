package world

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/zeusync/sweepsensor/internal/core/observability/log"
	"github.com/zeusync/sweepsensor/internal/core/systems/physics"
)

// World is an in-memory collection of static colliders answering sensor
// queries. Colliders may be added and removed between scans; queries take a
// read lock and never modify the world.
type World struct {
	mu        sync.RWMutex
	colliders []Collider
	index     map[string]int
	logger    log.Log
}

var _ physics.Backend = (*World)(nil)

type Option func(*World)

func WithLogger(l log.Log) Option {
	return func(w *World) { w.logger = l }
}

func New(opts ...Option) *World {
	w := &World{
		index:  make(map[string]int),
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Add registers a collider and returns its ID. A random ID is assigned when c.ID is empty.
func (w *World) Add(c Collider) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	c.Rotation = orientation(c.Rotation)
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.index[c.ID]; exists {
		return "", fmt.Errorf("%w: %s", ErrColliderExists, c.ID)
	}
	w.index[c.ID] = len(w.colliders)
	w.colliders = append(w.colliders, c)

	w.logger.Debug("collider added",
		log.String("id", c.ID),
		log.Stringer("kind", c.Kind),
		log.Vec3("center", c.Center),
		log.Int("layer", c.Layer),
		log.Bool("trigger", c.Trigger),
	)
	return c.ID, nil
}

// Remove unregisters a collider.
func (w *World) Remove(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, ok := w.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrColliderNotFound, id)
	}
	w.colliders = append(w.colliders[:idx], w.colliders[idx+1:]...)
	delete(w.index, id)
	for i := idx; i < len(w.colliders); i++ {
		w.index[w.colliders[i].ID] = i
	}

	w.logger.Debug("collider removed", log.String("id", id))
	return nil
}

func (w *World) Get(id string) (Collider, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	idx, ok := w.index[id]
	if !ok {
		return Collider{}, false
	}
	return w.colliders[idx], true
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.colliders)
}

// Colliders returns a copy of the registered colliders in insertion order.
func (w *World) Colliders() []Collider {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]Collider, len(w.colliders))
	copy(out, w.colliders)
	return out
}

// each calls fn for every collider accepted by filter, under the read lock.
func (w *World) each(filter physics.Filter, fn func(c *Collider)) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for i := range w.colliders {
		c := &w.colliders[i]
		if !filter.Accepts(c.Layer, c.Trigger) {
			continue
		}
		fn(c)
	}
}

func (w *World) LineCast(from, to mgl64.Vec3, filter physics.Filter) (physics.HitRecord, bool) {
	seg := to.Sub(from)
	length := seg.Len()
	if length == 0 {
		return physics.HitRecord{}, false
	}
	dir := seg.Mul(1 / length)

	var (
		best  physics.HitRecord
		found bool
	)
	w.each(filter, func(c *Collider) {
		hit, ok := c.raycast(from, dir, length)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	})
	return best, found
}

func (w *World) SphereCast(q physics.SphereQuery) (physics.HitRecord, bool) {
	dir := physics.SafeNormalize(q.Direction)
	if dir.Len() == 0 || q.MaxDistance < 0 {
		return physics.HitRecord{}, false
	}

	var (
		best  physics.HitRecord
		found bool
	)
	w.each(q.Filter, func(c *Collider) {
		hit, ok := sweepSphere(q, dir, c)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	})
	return best, found
}

// sweepSphere ignores colliders the sphere starts inside of.
func sweepSphere(q physics.SphereQuery, dir mgl64.Vec3, c *Collider) (physics.HitRecord, bool) {
	var (
		t      float64
		normal mgl64.Vec3
	)
	switch c.Kind {
	case KindSphere:
		hitT, inside, ok := sphereHit(q.Origin, dir, c.Center, c.Radius+q.Radius)
		if !ok || inside {
			return physics.HitRecord{}, false
		}
		t = hitT
		normal = physics.SafeNormalize(q.Origin.Add(dir.Mul(t)).Sub(c.Center))
	default:
		// box inflated by the radius; corners are square, so the result is conservative
		h := c.HalfExtents.Add(splat(q.Radius))
		hit, ok := slab(c.toLocal(q.Origin), c.dirToLocal(dir), h.Mul(-1), h)
		if !ok || hit.inside {
			return physics.HitRecord{}, false
		}
		t = hit.tNear
		normal = c.Rotation.Rotate(hit.normal)
	}

	if t > q.MaxDistance {
		return physics.HitRecord{}, false
	}
	center := q.Origin.Add(dir.Mul(t))
	return physics.HitRecord{
		Point:    c.closestPoint(center),
		Normal:   normal,
		Distance: t,
		Collider: c.ID,
	}, true
}

func (w *World) BoxCast(q physics.BoxQuery) (physics.HitRecord, bool) {
	q.Orientation = orientation(q.Orientation)
	dir := physics.SafeNormalize(q.Direction)
	if dir.Len() == 0 || q.MaxDistance < 0 {
		return physics.HitRecord{}, false
	}

	var (
		best  physics.HitRecord
		found bool
	)
	w.each(q.Filter, func(c *Collider) {
		hit, overlapping, ok := sweepBox(q, dir, c)
		if !ok || overlapping {
			return
		}
		if !found || hit.Distance < best.Distance {
			best, found = hit, true
		}
	})
	return best, found
}

// BoxCastAll reports every collider touched by the sweep in insertion order.
// Colliders overlapping the box at the start are included with distance 0,
// the query center as point and a normal opposite to the sweep direction.
func (w *World) BoxCastAll(q physics.BoxQuery) []physics.HitRecord {
	q.Orientation = orientation(q.Orientation)
	dir := physics.SafeNormalize(q.Direction)
	if dir.Len() == 0 || q.MaxDistance < 0 {
		return nil
	}

	var hits []physics.HitRecord
	w.each(q.Filter, func(c *Collider) {
		hit, _, ok := sweepBox(q, dir, c)
		if ok {
			hits = append(hits, hit)
		}
	})
	return hits
}

func startOverlap(q physics.BoxQuery, dir mgl64.Vec3, c *Collider) physics.HitRecord {
	return physics.HitRecord{
		Point:    q.Center,
		Normal:   dir.Mul(-1),
		Distance: 0,
		Collider: c.ID,
	}
}

// sweepBox moves the query box along dir and reports the first contact with c.
func sweepBox(q physics.BoxQuery, dir mgl64.Vec3, c *Collider) (hit physics.HitRecord, overlapping, ok bool) {
	var (
		t      float64
		normal mgl64.Vec3
	)

	switch c.Kind {
	case KindBox:
		tFirst, tLast, n := sweptSAT(q.Center, q.HalfExtents, q.Orientation, dir, c)
		if tFirst > tLast || tLast < 0 {
			return physics.HitRecord{}, false, false
		}
		if tFirst < 0 {
			return startOverlap(q, dir, c), true, true
		}
		t, normal = tFirst, n
	default:
		// sphere against the probe box, solved in probe space as a ray from the
		// sphere center moving opposite to the sweep; square corners make it conservative
		inv := q.Orientation.Inverse()
		center := inv.Rotate(c.Center.Sub(q.Center))
		motion := inv.Rotate(dir).Mul(-1)
		h := q.HalfExtents.Add(splat(c.Radius))
		s, hitOK := slab(center, motion, h.Mul(-1), h)
		if !hitOK {
			return physics.HitRecord{}, false, false
		}
		if s.inside {
			return startOverlap(q, dir, c), true, true
		}
		// face normal on the probe points at the sphere; the contact normal points back at the probe
		t, normal = s.tNear, q.Orientation.Rotate(s.normal).Mul(-1)
	}

	if t > q.MaxDistance {
		return physics.HitRecord{}, false, false
	}
	at := q.Center.Add(dir.Mul(t))
	return physics.HitRecord{
		Point:    c.closestPoint(at),
		Normal:   normal,
		Distance: t,
		Collider: c.ID,
	}, false, true
}

// sweptSAT runs the separating axis test over time for a box moving along dir
// against a static box collider. It returns the contact interval and the
// collider normal at first contact; tFirst > tLast means the boxes never meet.
func sweptSAT(center, half mgl64.Vec3, rot mgl64.Quat, dir mgl64.Vec3, c *Collider) (tFirst, tLast float64, normal mgl64.Vec3) {
	var au, bu [3]mgl64.Vec3
	for i := 0; i < 3; i++ {
		var axis mgl64.Vec3
		axis[i] = 1
		au[i] = rot.Rotate(axis)
		bu[i] = c.Rotation.Rotate(axis)
	}

	axes := make([]mgl64.Vec3, 0, 15)
	axes = append(axes, au[:]...)
	axes = append(axes, bu[:]...)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cross := au[i].Cross(bu[j])
			if cross.Len() < 1e-9 {
				continue
			}
			axes = append(axes, cross.Normalize())
		}
	}

	tFirst, tLast = math.Inf(-1), math.Inf(1)
	rel := c.Center.Sub(center)
	for _, axis := range axes {
		radius := 0.0
		for i := 0; i < 3; i++ {
			radius += half[i]*math.Abs(au[i].Dot(axis)) + c.HalfExtents[i]*math.Abs(bu[i].Dot(axis))
		}
		s0 := rel.Dot(axis)
		v := dir.Dot(axis)

		if math.Abs(v) < parallelEpsilon {
			if math.Abs(s0) > radius {
				return 1, 0, mgl64.Vec3{}
			}
			continue
		}

		enter, exit := (s0-radius)/v, (s0+radius)/v
		if enter > exit {
			enter, exit = exit, enter
		}
		if enter > tFirst {
			tFirst = enter
			if v > 0 {
				normal = axis.Mul(-1)
			} else {
				normal = axis
			}
		}
		tLast = math.Min(tLast, exit)
		if tFirst > tLast {
			return tFirst, tLast, normal
		}
	}
	return tFirst, tLast, normal
}

func (w *World) CheckBox(q physics.OverlapQuery) bool {
	rot := orientation(q.Orientation)

	overlap := false
	w.each(q.Filter, func(c *Collider) {
		if overlap {
			return
		}
		switch c.Kind {
		case KindSphere:
			local := rot.Inverse().Rotate(c.Center.Sub(q.Center))
			closest := clampToBox(local, absVec(q.HalfExtents))
			overlap = closest.Sub(local).Len() <= c.Radius
		default:
			overlap = obbOverlap(q.Center, absVec(q.HalfExtents), rot, c.Center, c.HalfExtents, c.Rotation)
		}
	})
	return overlap
}

// orientation treats the zero quaternion as "no rotation".
func orientation(q mgl64.Quat) mgl64.Quat {
	if q.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}
