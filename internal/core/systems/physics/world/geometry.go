package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const parallelEpsilon = 1e-12

// slabHit is the parametric interval a ray spends inside a box.
type slabHit struct {
	tNear, tFar float64
	// normal of the face the ray enters through, in the box's space
	normal mgl64.Vec3
	// origin already inside the box
	inside bool
}

// slab intersects the ray o + d*t with the box [lo, hi] using the slab method.
// Rays that only leave the box behind the origin are misses.
func slab(o, d, lo, hi mgl64.Vec3) (slabHit, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	var normal mgl64.Vec3

	for axis := 0; axis < 3; axis++ {
		if math.Abs(d[axis]) < parallelEpsilon {
			// parallel to this slab
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return slabHit{}, false
			}
			continue
		}

		inv := 1.0 / d[axis]
		t1 := (lo[axis] - o[axis]) * inv
		t2 := (hi[axis] - o[axis]) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}

		if t1 > tNear {
			tNear = t1
			normal = mgl64.Vec3{}
			normal[axis] = sign
		}
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return slabHit{}, false
		}
	}

	if tFar < 0 {
		return slabHit{}, false
	}
	return slabHit{tNear: tNear, tFar: tFar, normal: normal, inside: tNear < 0}, true
}

// sphereHit intersects the ray o + d*t (d unit length) with a sphere.
// inside is set when o already lies within the sphere.
func sphereHit(o, d, center mgl64.Vec3, radius float64) (t float64, inside, ok bool) {
	oc := o.Sub(center)
	halfB := oc.Dot(d)
	c := oc.Dot(oc) - radius*radius
	if c <= 0 {
		return 0, true, true
	}

	disc := halfB*halfB - c
	if disc < 0 {
		return 0, false, false
	}

	t = -halfB - math.Sqrt(disc)
	if t < 0 {
		return 0, false, false
	}
	return t, false, true
}

// obbOverlap tests two oriented boxes with the separating axis theorem
// (15 axes: 3 + 3 face normals and 9 edge cross products). Touching boxes overlap.
func obbOverlap(ca, ha mgl64.Vec3, ra mgl64.Quat, cb, hb mgl64.Vec3, rb mgl64.Quat) bool {
	var au, bu [3]mgl64.Vec3
	for i := 0; i < 3; i++ {
		var axis mgl64.Vec3
		axis[i] = 1
		au[i] = ra.Rotate(axis)
		bu[i] = rb.Rotate(axis)
	}

	var r, absR [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = au[i].Dot(bu[j])
			// epsilon keeps near-parallel edge axes from producing false separations
			absR[i][j] = math.Abs(r[i][j]) + 1e-9
		}
	}

	d := cb.Sub(ca)
	t := mgl64.Vec3{d.Dot(au[0]), d.Dot(au[1]), d.Dot(au[2])}

	for i := 0; i < 3; i++ {
		rA := ha[i]
		rB := hb[0]*absR[i][0] + hb[1]*absR[i][1] + hb[2]*absR[i][2]
		if math.Abs(t[i]) > rA+rB {
			return false
		}
	}

	for j := 0; j < 3; j++ {
		rA := ha[0]*absR[0][j] + ha[1]*absR[1][j] + ha[2]*absR[2][j]
		rB := hb[j]
		if math.Abs(t[0]*r[0][j]+t[1]*r[1][j]+t[2]*r[2][j]) > rA+rB {
			return false
		}
	}

	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			rA := ha[i1]*absR[i2][j] + ha[i2]*absR[i1][j]
			rB := hb[j1]*absR[i][j2] + hb[j2]*absR[i][j1]
			if math.Abs(t[i2]*r[i1][j]-t[i1]*r[i2][j]) > rA+rB {
				return false
			}
		}
	}

	return true
}

// clampToBox returns the point of the box [-h, h] closest to p.
func clampToBox(p, h mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p[0], -h[0], h[0]),
		mgl64.Clamp(p[1], -h[1], h[1]),
		mgl64.Clamp(p[2], -h[2], h[2]),
	}
}

func splat(v float64) mgl64.Vec3 { return mgl64.Vec3{v, v, v} }

func absVec(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])}
}
