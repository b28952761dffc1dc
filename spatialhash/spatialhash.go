// Package spatialhash implements the uniform voxel-hash spatial index: a
// grid that maps mesh vertices, edges and faces (in one unified ID space)
// into cells, and answers point/edge/triangle proximity queries against
// that grid, static or linearly swept between two time samples.
package spatialhash

import "github.com/go-gl/mathgl/mgl64"

// axis is a 3D integer cell coordinate.
type axis [3]int

// VoxelHash is a uniform-grid spatial index over a mesh's vertices, edges
// and faces. Primitive IDs share one numbering: [0, EdgeStart) are
// vertices, [EdgeStart, TriStart) are edges, [TriStart, ...) are faces.
type VoxelHash struct {
	LeftBottom, RightTop mgl64.Vec3
	VoxelSize            float64
	InvVoxelSize         float64
	VoxelCount           axis
	NxNy                 int
	EdgeStart, TriStart  int32

	// Voxel maps a linear cell index to the insertion-ordered list of
	// primitive IDs touching that cell.
	Voxel map[int64][]int32

	// Occupancy maps a primitive ID < TriStart to the cells it occupies.
	// Populated only for swept builds; nil for static ones.
	Occupancy [][]int64

	swept bool
}

// Swept reports whether this index was built over two time samples, and so
// carries a populated Occupancy table.
func (h *VoxelHash) Swept() bool { return h.swept }

// linearIndex computes ix + iy*nx + iz*nx*ny, the encoding the contract
// fixes because cell iteration recomputes it inline rather than looking it
// up.
func (h *VoxelHash) linearIndex(a axis) int64 {
	return int64(a[0]) + int64(a[1])*int64(h.VoxelCount[0]) + int64(a[2])*int64(h.NxNy)
}

// locateAxis maps a world point to its (unclamped) per-axis cell index.
func (h *VoxelHash) locateAxis(p mgl64.Vec3) axis {
	return axis{
		int((p.X() - h.LeftBottom.X()) * h.InvVoxelSize),
		int((p.Y() - h.LeftBottom.Y()) * h.InvVoxelSize),
		int((p.Z() - h.LeftBottom.Z()) * h.InvVoxelSize),
	}
}

// clamp bounds a per-axis cell index to [0, VoxelCount[axis]-1], the range
// every query clamps into before iterating cells.
func (h *VoxelHash) clamp(a axis) axis {
	for i := 0; i < 3; i++ {
		if a[i] < 0 {
			a[i] = 0
		} else if a[i] >= h.VoxelCount[i] {
			a[i] = h.VoxelCount[i] - 1
		}
	}
	return a
}

// axisRange returns the clamped per-axis cell index range covering the
// world-space box [min, max].
func (h *VoxelHash) axisRange(min, max mgl64.Vec3) (lo, hi axis) {
	return h.clamp(h.locateAxis(min)), h.clamp(h.locateAxis(max))
}

// forEachCell invokes fn for every linear cell index in the inclusive box
// [lo, hi].
func (h *VoxelHash) forEachCell(lo, hi axis, fn func(idx int64)) {
	for iz := lo[2]; iz <= hi[2]; iz++ {
		for iy := lo[1]; iy <= hi[1]; iy++ {
			for ix := lo[0]; ix <= hi[0]; ix++ {
				fn(h.linearIndex(axis{ix, iy, iz}))
			}
		}
	}
}

// classOf reports which primitive class id belongs to.
type class int

const (
	classVertex class = iota
	classEdge
	classFace
)

func (h *VoxelHash) classOf(id int32) class {
	switch {
	case id < h.EdgeStart:
		return classVertex
	case id < h.TriStart:
		return classEdge
	default:
		return classFace
	}
}
