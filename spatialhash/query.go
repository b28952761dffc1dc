package spatialhash

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ipcgrid/meshhash/geometry"
)

// PrimitivesByClass partitions a query's matches by primitive class.
type PrimitivesByClass struct {
	Vertices []int32
	Edges    []int32
	Faces    []int32
}

// queryBox is the shared template every world-space query follows: derive
// the inflated interval, clamp to cell-index range, walk the enclosed
// cells, and collect the ids that pass filter, deduplicated and sorted.
func (h *VoxelHash) queryBox(min, max mgl64.Vec3, filter func(id int32) bool) []int32 {
	lo, hi := h.axisRange(min, max)
	seen := make(map[int32]struct{})
	var out []int32
	h.forEachCell(lo, hi, func(idx int64) {
		for _, id := range h.Voxel[idx] {
			if !filter(id) {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// queryOccupancy is the fast path of §4.4: instead of deriving a world-space
// box, it walks the precomputed cell list of primID directly.
func (h *VoxelHash) queryOccupancy(primID int32, filter func(id int32) bool) []int32 {
	seen := make(map[int32]struct{})
	var out []int32
	for _, idx := range h.Occupancy[primID] {
		for _, id := range h.Voxel[idx] {
			if !filter(id) {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func inflatedBounds(r float64, pts ...mgl64.Vec3) (min, max mgl64.Vec3) {
	min, max = pts[0], pts[0]
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
	return mgl64.Vec3{min.X() - r, min.Y() - r, min.Z() - r},
		mgl64.Vec3{max.X() + r, max.Y() + r, max.Z() + r}
}

func isFace(h *VoxelHash) func(int32) bool {
	return func(id int32) bool { return id >= h.TriStart }
}

func isPrimitiveBelowTri(h *VoxelHash) func(int32) bool {
	return func(id int32) bool { return id < h.TriStart }
}

func isEdge(h *VoxelHash) func(int32) bool {
	return func(id int32) bool { return id >= h.EdgeStart && id < h.TriStart }
}

func isVertex(h *VoxelHash) func(int32) bool {
	return func(id int32) bool { return id < h.EdgeStart }
}

// QueryPointForTriangles returns the face ids whose cells the (possibly
// inflated) point p touches.
func (h *VoxelHash) QueryPointForTriangles(p mgl64.Vec3, r float64) []int32 {
	min, max := inflatedBounds(r, p)
	return h.queryBox(min, max, isFace(h))
}

// QueryPointForTrianglesSwept is the swept form, over the point's motion
// from p0 to p1. The source's swept overload omits the radius inflation
// here; this implementation applies it, since the candidate set's
// conservativeness guarantee depends on every swept query inflating by r.
func (h *VoxelHash) QueryPointForTrianglesSwept(p0, p1 mgl64.Vec3, r float64) []int32 {
	min, max := inflatedBounds(r, p0, p1)
	return h.queryBox(min, max, isFace(h))
}

// QueryPointForPrimitives returns every primitive (of any class) whose
// cells overlap the point's motion from p0 to p1, partitioned by class.
// The source's swept overload takes no radius at all; this implementation
// inflates by r for the same conservativeness reason as
// QueryPointForTrianglesSwept. Pass p0 == p1 for the static case.
func (h *VoxelHash) QueryPointForPrimitives(p0, p1 mgl64.Vec3, r float64) PrimitivesByClass {
	min, max := inflatedBounds(r, p0, p1)
	ids := h.queryBox(min, max, func(int32) bool { return true })

	var out PrimitivesByClass
	for _, id := range ids {
		switch h.classOf(id) {
		case classVertex:
			out.Vertices = append(out.Vertices, id)
		case classEdge:
			out.Edges = append(out.Edges, id)
		case classFace:
			out.Faces = append(out.Faces, id)
		}
	}
	return out
}

// QueryEdgeForVerticesAndEdges returns the vertex and edge ids whose cells
// overlap the static edge [e0, e1], inflated by r.
func (h *VoxelHash) QueryEdgeForVerticesAndEdges(e0, e1 mgl64.Vec3, r float64) (vertices, edges []int32) {
	min, max := inflatedBounds(r, e0, e1)
	ids := h.queryBox(min, max, isPrimitiveBelowTri(h))
	return splitVertexEdge(h, ids)
}

// QueryEdgeForVerticesAndEdgesSwept is the swept form, over the edge's
// motion from [e00,e10] at t0 to [e01,e11] at t1.
func (h *VoxelHash) QueryEdgeForVerticesAndEdgesSwept(e00, e10, e01, e11 mgl64.Vec3, r float64) (vertices, edges []int32) {
	min, max := inflatedBounds(r, e00, e10, e01, e11)
	ids := h.queryBox(min, max, isPrimitiveBelowTri(h))
	return splitVertexEdge(h, ids)
}

func splitVertexEdge(h *VoxelHash, ids []int32) (vertices, edges []int32) {
	for _, id := range ids {
		if id < h.EdgeStart {
			vertices = append(vertices, id)
		} else {
			edges = append(edges, id)
		}
	}
	return vertices, edges
}

// QueryEdgeForEdges is the occupancy fast path of §4.4: given eai, the
// originating edge's own primitive id, it returns the other edge ids
// sharing a cell with it. The eai tie-break (id > eai) ensures
// each unordered edge pair is visited at most once across all edge-origin
// queries. Requires a swept build (Occupancy populated).
func (h *VoxelHash) QueryEdgeForEdges(eai int32) []int32 {
	return h.queryOccupancy(eai, func(id int32) bool {
		return id >= h.EdgeStart && id < h.TriStart && id-h.EdgeStart > eai-h.EdgeStart
	})
}

// QueryEdgeForEdgesWorld is the general (non-occupancy) form of
// QueryEdgeForEdges, for static builds: a0, a1 are the query edge's own
// endpoints, inflated by r.
func (h *VoxelHash) QueryEdgeForEdgesWorld(a0, a1 mgl64.Vec3, r float64, eai int32) []int32 {
	min, max := inflatedBounds(r, a0, a1)
	return h.queryBox(min, max, func(id int32) bool {
		return id >= h.EdgeStart && id < h.TriStart && id-h.EdgeStart > eai-h.EdgeStart
	})
}

// QueryEdgeForEdgesWorldSwept is QueryEdgeForEdgesWorld over a swept query
// edge, from [a00,a10] at t0 to [a01,a11] at t1.
func (h *VoxelHash) QueryEdgeForEdgesWorldSwept(a00, a10, a01, a11 mgl64.Vec3, r float64, eai int32) []int32 {
	min, max := inflatedBounds(r, a00, a10, a01, a11)
	return h.queryBox(min, max, func(id int32) bool {
		return id >= h.EdgeStart && id < h.TriStart && id-h.EdgeStart > eai-h.EdgeStart
	})
}

// QueryEdgeForEdgesBBoxChecked re-filters a coarse edge-edge candidate list,
// keeping only the ids whose own world-space box (from edgeBoxes, indexed
// by edge id - EdgeStart) overlaps queryBox. Voxel-cell coincidence is
// coarser than AABB overlap, so this catches cases where two edges share a
// cell without their boxes actually touching.
func (h *VoxelHash) QueryEdgeForEdgesBBoxChecked(candidates []int32, queryBox geometry.AABB, edgeBoxes []geometry.AABB) []int32 {
	out := candidates[:0:0]
	for _, ebi := range candidates {
		if edgeBoxes[ebi-h.EdgeStart].Intersects(queryBox) {
			out = append(out, ebi)
		}
	}
	return out
}

// QueryPointForTrianglesBBoxChecked re-filters a coarse point-triangle
// candidate list, keeping only the ids whose own world-space box (from
// faceBoxes, indexed by face id - TriStart) overlaps queryBox. This is the
// FV analog of QueryEdgeForEdgesBBoxChecked: voxel-cell coincidence is
// coarser than AABB overlap, so this catches cases where a vertex and a
// face share a cell without their boxes actually touching.
func (h *VoxelHash) QueryPointForTrianglesBBoxChecked(candidates []int32, queryBox geometry.AABB, faceBoxes []geometry.AABB) []int32 {
	out := candidates[:0:0]
	for _, fi := range candidates {
		if faceBoxes[fi-h.TriStart].Intersects(queryBox) {
			out = append(out, fi)
		}
	}
	return out
}

// QueryTriangleForPoints returns the vertex ids whose cells overlap the
// static triangle [t0,t1,t2], inflated by r.
func (h *VoxelHash) QueryTriangleForPoints(t0, t1, t2 mgl64.Vec3, r float64) []int32 {
	min, max := inflatedBounds(r, t0, t1, t2)
	return h.queryBox(min, max, isVertex(h))
}

// QueryTriangleForPointsSwept is the swept form, over the triangle's motion
// from [t00,t10,t20] at t0 to [t01,t11,t21] at t1.
func (h *VoxelHash) QueryTriangleForPointsSwept(t00, t10, t20, t01, t11, t21 mgl64.Vec3, r float64) []int32 {
	min, max := inflatedBounds(r, t00, t10, t20, t01, t11, t21)
	return h.queryBox(min, max, isVertex(h))
}

// QueryTriangleForEdges returns the edge ids whose cells overlap the
// triangle [t0,t1,t2], inflated by r.
func (h *VoxelHash) QueryTriangleForEdges(t0, t1, t2 mgl64.Vec3, r float64) []int32 {
	min, max := inflatedBounds(r, t0, t1, t2)
	return h.queryBox(min, max, isEdge(h))
}

// QueryEdgeForTriangles returns the face ids whose cells overlap the edge
// [e0,e1], inflated by r.
func (h *VoxelHash) QueryEdgeForTriangles(e0, e1 mgl64.Vec3, r float64) []int32 {
	min, max := inflatedBounds(r, e0, e1)
	return h.queryBox(min, max, isFace(h))
}

// QueryPointForEdges is the occupancy fast path of §4.4: given vi, the
// vertex's own primitive id, it returns the edge ids sharing a cell with
// it. Requires a swept build (Occupancy populated).
func (h *VoxelHash) QueryPointForEdges(vi int32) []int32 {
	return h.queryOccupancy(vi, isEdge(h))
}

// QueryPointForEdgesWorld is the general (non-occupancy) form of
// QueryPointForEdges, for static builds: p is the vertex's own position,
// inflated by r.
func (h *VoxelHash) QueryPointForEdgesWorld(p mgl64.Vec3, r float64) []int32 {
	min, max := inflatedBounds(r, p)
	return h.queryBox(min, max, isEdge(h))
}
