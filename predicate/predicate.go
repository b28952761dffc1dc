// Package predicate declares the opaque narrow-phase-adjacent AABB
// predicates the broad phase consumes as the final admission check on a
// candidate pair. Their internals (exact geometric CCD, thickness handling)
// are out of scope here; the engine only ever calls them through this set
// of function types.
package predicate

import "github.com/go-gl/mathgl/mgl64"

// PointEdgeCD reports whether a point and an edge's static AABBs overlap
// under radius r.
type PointEdgeCD func(p, e0, e1 mgl64.Vec3, r float64) bool

// PointEdgeCCD is the swept form of PointEdgeCD, over [t0, t1].
type PointEdgeCCD func(p0, e00, e10, p1, e01, e11 mgl64.Vec3, r float64) bool

// EdgeEdgeCD reports whether two edges' static AABBs overlap under radius r.
type EdgeEdgeCD func(a0, a1, b0, b1 mgl64.Vec3, r float64) bool

// EdgeEdgeCCD is the swept form of EdgeEdgeCD, over [t0, t1].
type EdgeEdgeCCD func(a00, a10, b00, b10, a01, a11, b01, b11 mgl64.Vec3, r float64) bool

// PointTriangleCD reports whether a point and a triangle's static AABBs
// overlap under radius r.
type PointTriangleCD func(p, t0, t1, t2 mgl64.Vec3, r float64) bool

// PointTriangleCCD is the swept form of PointTriangleCD, over [t0, t1].
type PointTriangleCCD func(p0, t00, t10, t20, p1, t01, t11, t21 mgl64.Vec3, r float64) bool

// Set bundles the six predicates the candidate enumerator needs. The
// engine treats every field as opaque and never inspects beyond calling it.
type Set struct {
	PointEdgeCD      PointEdgeCD
	PointEdgeCCD     PointEdgeCCD
	EdgeEdgeCD       EdgeEdgeCD
	EdgeEdgeCCD      EdgeEdgeCCD
	PointTriangleCD  PointTriangleCD
	PointTriangleCCD PointTriangleCCD
}

// DefaultSet returns a Set whose predicates are plain AABB-overlap tests —
// a conservative stand-in usable when no narrow-phase-adjacent geometry
// library is wired in. It is deliberately the loosest possible predicate:
// anything it rejects is provably not a candidate.
func DefaultSet() Set {
	return Set{
		PointEdgeCD: func(p, e0, e1 mgl64.Vec3, r float64) bool {
			return aabbFromPoints(r, p).Intersects(aabbFromPoints(r, e0, e1))
		},
		PointEdgeCCD: func(p0, e00, e10, p1, e01, e11 mgl64.Vec3, r float64) bool {
			return aabbFromPoints(r, p0, p1).Intersects(aabbFromPoints(r, e00, e10, e01, e11))
		},
		EdgeEdgeCD: func(a0, a1, b0, b1 mgl64.Vec3, r float64) bool {
			return aabbFromPoints(r, a0, a1).Intersects(aabbFromPoints(r, b0, b1))
		},
		EdgeEdgeCCD: func(a00, a10, b00, b10, a01, a11, b01, b11 mgl64.Vec3, r float64) bool {
			return aabbFromPoints(r, a00, a10, a01, a11).Intersects(aabbFromPoints(r, b00, b10, b01, b11))
		},
		PointTriangleCD: func(p, t0, t1, t2 mgl64.Vec3, r float64) bool {
			return aabbFromPoints(r, p).Intersects(aabbFromPoints(r, t0, t1, t2))
		},
		PointTriangleCCD: func(p0, t00, t10, t20, p1, t01, t11, t21 mgl64.Vec3, r float64) bool {
			return aabbFromPoints(r, p0, p1).Intersects(aabbFromPoints(r, t00, t10, t20, t01, t11, t21))
		},
	}
}

type boundedBox struct{ min, max mgl64.Vec3 }

func (b boundedBox) Intersects(o boundedBox) bool {
	return b.min.X() <= o.max.X() && o.min.X() <= b.max.X() &&
		b.min.Y() <= o.max.Y() && o.min.Y() <= b.max.Y() &&
		b.min.Z() <= o.max.Z() && o.min.Z() <= b.max.Z()
}

func aabbFromPoints(r float64, pts ...mgl64.Vec3) boundedBox {
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < min[axis] {
				min[axis] = p[axis]
			}
			if p[axis] > max[axis] {
				max[axis] = p[axis]
			}
		}
	}
	return boundedBox{
		min: mgl64.Vec3{min.X() - r, min.Y() - r, min.Z() - r},
		max: mgl64.Vec3{max.X() + r, max.Y() + r, max.Z() + r},
	}
}
