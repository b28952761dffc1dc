package spatialhash

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ipcgrid/meshhash/mesh"
)

func crossingSegmentsMesh() *mesh.Mesh {
	return &mesh.Mesh{
		V: [][3]float64{
			{-1, -1, 0},
			{1, -1, 0},
			{0, 1, 1},
			{0, 1, -1},
		},
		E: [][2]int32{{0, 1}, {2, 3}},
	}
}

func TestBuild_DegenerateGeometryFallsBackToSingleCell(t *testing.T) {
	m := &mesh.Mesh{
		V: [][3]float64{{0, 0, 0}, {0, 0, 0}},
		E: [][2]int32{{0, 1}},
	}
	h := Build(m, 0, 0, 1)
	if h.VoxelCount != (axis{1, 1, 1}) {
		t.Fatalf("VoxelCount = %v, want single cell {1,1,1}", h.VoxelCount)
	}
	if len(h.Voxel) == 0 {
		t.Fatalf("expected the single cell to be populated")
	}
}

func TestBuild_VoxelCoverage(t *testing.T) {
	m := crossingSegmentsMesh()
	h := Build(m, 0.5, 0, 2)

	// Every vertex's own cell must contain that vertex's id.
	for vi := range m.V {
		a := h.clamp(h.locateAxis(toVec3(m.V[vi])))
		idx := h.linearIndex(a)
		if !containsID(h.Voxel[idx], int32(vi)) {
			t.Errorf("vertex %d missing from its own cell %d", vi, idx)
		}
	}
}

func TestQueryEdgeForEdgesWorld_CrossingSegments(t *testing.T) {
	m := crossingSegmentsMesh()
	// Auto-sized: the two edges' combined extent collapses to a single
	// voxel cell, matching the scenario this mirrors in
	// broadphase.TestQueryMeshForCandidates_CrossingSegmentsStatic.
	h := Build(m, 0, 0, 1)

	a0, a1 := toVec3(m.V[0]), toVec3(m.V[1])
	got := h.QueryEdgeForEdgesWorld(a0, a1, 0, h.EdgeStart+0)

	want := []int32{h.EdgeStart + 1}
	if diff := diffInt32(got, want); diff != "" {
		t.Errorf("QueryEdgeForEdgesWorld() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryEdgeForEdgesWorld_ParallelNonCrossingSegments(t *testing.T) {
	m := &mesh.Mesh{
		V: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		E: [][2]int32{{0, 1}, {2, 3}},
	}
	h := Build(m, 0.3, 0.1, 1)

	a0, a1 := toVec3(m.V[0]), toVec3(m.V[1])
	got := h.QueryEdgeForEdgesWorld(a0, a1, 0.1, h.EdgeStart+0)
	if len(got) != 0 {
		t.Errorf("QueryEdgeForEdgesWorld() = %v, want empty (boxes don't overlap)", got)
	}
}

func TestQueryPointForTriangles_PointAboveTriangle(t *testing.T) {
	m := &mesh.Mesh{
		V: [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0.3, 0.3, 0.05}},
		F: [][3]int32{{0, 1, 2}},
	}
	h := Build(m, 0.5, 0.1, 1)

	p := toVec3(m.V[3])
	got := h.QueryPointForTriangles(p, 0.1)
	want := []int32{h.TriStart}
	if diff := diffInt32(got, want); diff != "" {
		t.Errorf("QueryPointForTriangles() mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryPointForEdges_OccupancyFastPath(t *testing.T) {
	m := crossingSegmentsMesh()
	m.V1 = m.V // zero displacement: swept with no motion
	h := Build(m, 0.5, 0, 1)
	if !h.Swept() {
		t.Fatalf("expected a swept build")
	}

	got := h.QueryPointForEdges(0)
	want := []int32{h.EdgeStart}
	if diff := diffInt32(got, want); diff != "" {
		t.Errorf("QueryPointForEdges() mismatch (-want +got):\n%s", diff)
	}
}

func TestSetVoxelSize_CountMatchesExtent(t *testing.T) {
	h := &VoxelHash{LeftBottom: mgl64.Vec3{0, 0, 0}, RightTop: mgl64.Vec3{10, 10, 10}}
	h.setVoxelSize(2.5)
	if h.VoxelCount != (axis{4, 4, 4}) {
		t.Errorf("VoxelCount = %v, want {4,4,4}", h.VoxelCount)
	}
	if h.NxNy != 16 {
		t.Errorf("NxNy = %d, want 16", h.NxNy)
	}
}

func containsID(ids []int32, id int32) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// diffInt32 reports a structural diff between two id sets, order
// independent.
func diffInt32(got, want []int32) string {
	return cmp.Diff(want, got, cmpopts.SortSlices(func(a, b int32) bool { return a < b }))
}
