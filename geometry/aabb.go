// Package geometry provides the axis-aligned bounding box primitive and the
// batch builders that turn mesh vertices, edges and faces into per-primitive
// boxes.
package geometry

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// maxVertexIDs bounds the contributing-vertex list kept on every AABB: a
// face box unions at most three vertex boxes, so four slots (with room for
// one more union level) is always enough.
const maxVertexIDs = 4

// AABB is a 3D axis-aligned bounding box, carrying the small set of vertex
// IDs that contributed to it.
type AABB struct {
	Min, Max  mgl64.Vec3
	VertexIDs []int32
}

// FromPoint builds the static box around a single point, inflated by r.
func FromPoint(p mgl64.Vec3, r float64, vertexID int32) AABB {
	return AABB{
		Min:       mgl64.Vec3{p.X() - r, p.Y() - r, p.Z() - r},
		Max:       mgl64.Vec3{p.X() + r, p.Y() + r, p.Z() + r},
		VertexIDs: []int32{vertexID},
	}
}

// FromSweptPoint builds the box enclosing a point's linear motion from p0 to
// p1, inflated by r.
func FromSweptPoint(p0, p1 mgl64.Vec3, r float64, vertexID int32) AABB {
	min := componentMin(p0, p1)
	max := componentMax(p0, p1)
	return AABB{
		Min:       mgl64.Vec3{min.X() - r, min.Y() - r, min.Z() - r},
		Max:       mgl64.Vec3{max.X() + r, max.Y() + r, max.Z() + r},
		VertexIDs: []int32{vertexID},
	}
}

// Union returns the box containing both a and b, with vertex IDs merged,
// sorted and truncated to maxVertexIDs.
func Union(a, b AABB) AABB {
	return AABB{
		Min:       componentMin(a.Min, b.Min),
		Max:       componentMax(a.Max, b.Max),
		VertexIDs: mergeVertexIDs(a.VertexIDs, b.VertexIDs),
	}
}

// Union3 is Union for three boxes at once, used by the face builder. It is
// computed as two successive two-way unions.
func Union3(a, b, c AABB) AABB {
	return Union(Union(a, b), c)
}

// Intersects reports whether a and b overlap, using <= so touching boxes
// count as overlapping: the candidate set must stay conservative.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() <= b.Max.X() && b.Min.X() <= a.Max.X() &&
		a.Min.Y() <= b.Max.Y() && b.Min.Y() <= a.Max.Y() &&
		a.Min.Z() <= b.Max.Z() && b.Min.Z() <= a.Max.Z()
}

// ConservativeInflate widens [min, max] by at least r on every axis, adding
// a relative epsilon on top of r so the result still strictly contains every
// point within distance r of the original box under round-to-nearest double
// arithmetic.
func ConservativeInflate(min, max mgl64.Vec3, r float64) (mgl64.Vec3, mgl64.Vec3) {
	inflate := func(lo, hi float64) (float64, float64) {
		eps := (math.Abs(lo) + math.Abs(hi) + r) * 1e-10
		return lo - r - eps, hi + r + eps
	}
	minX, maxX := inflate(min.X(), max.X())
	minY, maxY := inflate(min.Y(), max.Y())
	minZ, maxZ := inflate(min.Z(), max.Z())
	return mgl64.Vec3{minX, minY, minZ}, mgl64.Vec3{maxX, maxY, maxZ}
}

func componentMin(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()), math.Min(a.Z(), b.Z())}
}

func componentMax(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())}
}

// mergeVertexIDs returns sort(unique(a ∪ b)), truncated to maxVertexIDs.
func mergeVertexIDs(a, b []int32) []int32 {
	seen := make(map[int32]struct{}, len(a)+len(b))
	merged := make([]int32, 0, len(a)+len(b))
	for _, id := range a {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i] < merged[j] })
	if len(merged) > maxVertexIDs {
		merged = merged[:maxVertexIDs]
	}
	return merged
}
