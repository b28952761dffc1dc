package spatialhash

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/ipcgrid/meshhash/internal/parallel"
	"github.com/ipcgrid/meshhash/internal/stats"
	"github.com/ipcgrid/meshhash/mesh"
)

// Build constructs a VoxelHash over m. voxelSize <= 0 triggers auto-sizing
// from the mesh's own edge lengths (and, for swept builds, displacement
// lengths) plus the inflation radius r, per the standing auto-sizing
// decision recorded in DESIGN.md. workers bounds the parallelism used for
// the per-primitive cell-enumeration pass.
func Build(m *mesh.Mesh, voxelSize, r float64, workers int) *VoxelHash {
	m.Validate()
	swept := m.Swept()

	size := voxelSize
	if size <= 0 {
		if swept {
			size = 2*math.Max(
				stats.AverageEdgeLength(m.V, m.V1, m.E),
				stats.AverageDisplacementLength(m.V, m.V1),
			) + r
		} else {
			size = 2*stats.AverageEdgeLength(m.V, nil, m.E) + r
		}
		if size <= 0 {
			size = 1
		}
	}

	h := &VoxelHash{
		EdgeStart: m.EdgeStart(),
		TriStart:  m.TriStart(),
		swept:     swept,
	}
	h.LeftBottom, h.RightTop = boundingExtent(m)
	h.setVoxelSize(size)

	vertexLo, vertexHi := vertexAxisRanges(h, m)

	triCount := len(m.F)
	h.Voxel = make(map[int64][]int32)
	if swept {
		h.Occupancy = make([][]int64, h.TriStart)
	}

	type localInsert struct {
		cells []int64
		id    int32
	}

	// Per-primitive cell enumeration runs in parallel into disjoint
	// output slots; the shared Voxel map (and Occupancy table) is
	// populated in a single serial pass afterward to avoid map-mutation
	// races, matching the construction's fork-join/serial-insert split.
	total := len(m.V) + len(m.E) + triCount
	perPrimitive := make([]localInsert, total)
	parallel.For(total, workers, func(i int) {
		var id int32
		var lo, hi axis
		switch {
		case i < len(m.V):
			id = int32(i)
			lo, hi = vertexLo[id], vertexHi[id]
		case i < len(m.V)+len(m.E):
			ei := i - len(m.V)
			id = h.EdgeStart + int32(ei)
			e := m.E[ei]
			lo = minAxis(vertexLo[e[0]], vertexLo[e[1]])
			hi = maxAxis(vertexHi[e[0]], vertexHi[e[1]])
		default:
			fi := i - len(m.V) - len(m.E)
			id = h.TriStart + int32(fi)
			f := m.F[fi]
			lo = minAxis3(vertexLo[f[0]], vertexLo[f[1]], vertexLo[f[2]])
			hi = maxAxis3(vertexHi[f[0]], vertexHi[f[1]], vertexHi[f[2]])
		}
		cells := make([]int64, 0, cellCount(lo, hi))
		h.forEachCell(lo, hi, func(idx int64) { cells = append(cells, idx) })
		perPrimitive[i] = localInsert{cells: cells, id: id}
	})

	for _, ins := range perPrimitive {
		for _, cell := range ins.cells {
			h.Voxel[cell] = append(h.Voxel[cell], ins.id)
		}
		if swept && ins.id < h.TriStart {
			h.Occupancy[ins.id] = ins.cells
		}
	}

	return h
}

// setVoxelSize installs s (or the single-cell degenerate fallback, if the
// resulting voxel count would overflow or be non-positive on any axis).
func (h *VoxelHash) setVoxelSize(s float64) {
	h.VoxelSize = s
	h.InvVoxelSize = 1 / s

	extent := h.RightTop.Sub(h.LeftBottom)
	count := axis{
		int(math.Ceil(extent.X() * h.InvVoxelSize)),
		int(math.Ceil(extent.Y() * h.InvVoxelSize)),
		int(math.Ceil(extent.Z() * h.InvVoxelSize)),
	}

	degenerate := count[0] <= 0 || count[1] <= 0 || count[2] <= 0
	const overflowGuard = 1 << 20 // per-axis cap; nx*ny stays within 2^40, well inside the int64 linear index
	if !degenerate {
		overflow := count[0] > overflowGuard || count[1] > overflowGuard ||
			int64(count[0])*int64(count[1]) > overflowGuard*overflowGuard
		degenerate = overflow
	}

	if degenerate {
		maxRange := math.Max(extent.X(), math.Max(extent.Y(), extent.Z()))
		if maxRange <= 0 {
			maxRange = 1
		}
		h.InvVoxelSize = 1 / (maxRange * 1.01)
		count = axis{1, 1, 1}
	}

	h.VoxelCount = count
	h.NxNy = count[0] * count[1]
}

func boundingExtent(m *mesh.Mesh) (min, max mgl64.Vec3) {
	min = toVec3(m.V[0])
	max = min
	grow := func(p [3]float64) {
		v := toVec3(p)
		min = componentMin(min, v)
		max = componentMax(max, v)
	}
	for _, p := range m.V {
		grow(p)
	}
	if m.V1 != nil {
		for _, p := range m.V1 {
			grow(p)
		}
	}
	return min, max
}

// vertexAxisRanges computes, per vertex, the inclusive cell-index range it
// occupies: a single cell for static builds, or the cells spanning its
// motion from V to V1 for swept ones.
func vertexAxisRanges(h *VoxelHash, m *mesh.Mesh) (lo, hi []axis) {
	n := len(m.V)
	lo = make([]axis, n)
	hi = make([]axis, n)
	for i := 0; i < n; i++ {
		a0 := h.clamp(h.locateAxis(toVec3(m.V[i])))
		if m.V1 == nil {
			lo[i], hi[i] = a0, a0
			continue
		}
		a1 := h.clamp(h.locateAxis(toVec3(m.V1[i])))
		lo[i], hi[i] = minAxis(a0, a1), maxAxis(a0, a1)
	}
	return lo, hi
}

func cellCount(lo, hi axis) int {
	n := 1
	for i := 0; i < 3; i++ {
		n *= hi[i] - lo[i] + 1
	}
	return n
}

func minAxis(a, b axis) axis {
	var r axis
	for i := 0; i < 3; i++ {
		r[i] = min(a[i], b[i])
	}
	return r
}

func maxAxis(a, b axis) axis {
	var r axis
	for i := 0; i < 3; i++ {
		r[i] = max(a[i], b[i])
	}
	return r
}

func minAxis3(a, b, c axis) axis { return minAxis(minAxis(a, b), c) }
func maxAxis3(a, b, c axis) axis { return maxAxis(maxAxis(a, b), c) }

func componentMin(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Min(a.X(), b.X()), math.Min(a.Y(), b.Y()), math.Min(a.Z(), b.Z())}
}

func componentMax(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Max(a.X(), b.X()), math.Max(a.Y(), b.Y()), math.Max(a.Z(), b.Z())}
}

func toVec3(p [3]float64) mgl64.Vec3 { return mgl64.Vec3{p[0], p[1], p[2]} }
