package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
)

func TestAABBIntersects_Separated(t *testing.T) {
	tests := []struct {
		name string
		a, b AABB
	}{
		{
			name: "separated on X",
			a:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			b:    AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}},
		},
		{
			name: "separated on Y",
			a:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			b:    AABB{Min: mgl64.Vec3{0, -3, 0}, Max: mgl64.Vec3{1, -2, 1}},
		},
		{
			name: "separated on Z",
			a:    AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}},
			b:    AABB{Min: mgl64.Vec3{0, 0, 5}, Max: mgl64.Vec3{1, 1, 6}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.Intersects(tt.b) {
				t.Errorf("expected no intersection")
			}
			if tt.b.Intersects(tt.a) {
				t.Errorf("expected no intersection (symmetry)")
			}
		})
	}
}

func TestAABBIntersects_Touching(t *testing.T) {
	// Boxes sharing exactly a face, edge or corner must count as
	// intersecting: the candidate set has to stay conservative.
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}
	b := AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{2, 2, 2}}
	if !a.Intersects(b) {
		t.Errorf("touching boxes must be treated as overlapping")
	}
	if !b.Intersects(a) {
		t.Errorf("touching boxes must be treated as overlapping (symmetry)")
	}
}

func TestAABBIntersects_Reflexive(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{-1, -2, -3}, Max: mgl64.Vec3{4, 5, 6}}
	if !a.Intersects(a) {
		t.Errorf("a box must intersect itself")
	}
}

func TestAABBIntersects_Overlapping(t *testing.T) {
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{2, 2, 2}}
	b := AABB{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{3, 3, 3}}
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Errorf("expected overlap")
	}
}

func TestFromPoint(t *testing.T) {
	box := FromPoint(mgl64.Vec3{1, 2, 3}, 0.5, 7)
	want := AABB{
		Min:       mgl64.Vec3{0.5, 1.5, 2.5},
		Max:       mgl64.Vec3{1.5, 2.5, 3.5},
		VertexIDs: []int32{7},
	}
	if diff := cmp.Diff(want, box); diff != "" {
		t.Errorf("FromPoint() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSweptPoint(t *testing.T) {
	box := FromSweptPoint(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{2, -1, 0}, 0.1, 3)
	want := AABB{
		Min:       mgl64.Vec3{-0.1, -1.1, -0.1},
		Max:       mgl64.Vec3{2.1, 0.1, 0.1},
		VertexIDs: []int32{3},
	}
	if diff := cmp.Diff(want, box); diff != "" {
		t.Errorf("FromSweptPoint() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnion_ContainsBothSources(t *testing.T) {
	// For every point contained in a or b, it must be contained in
	// union(a,b).
	a := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}, VertexIDs: []int32{0}}
	b := AABB{Min: mgl64.Vec3{2, -1, 3}, Max: mgl64.Vec3{3, 0, 4}, VertexIDs: []int32{1}}
	u := Union(a, b)

	points := []mgl64.Vec3{a.Min, a.Max, b.Min, b.Max}
	for _, p := range points {
		pointBox := AABB{Min: p, Max: p}
		if !u.Intersects(pointBox) {
			t.Errorf("union does not contain point %v from a source box", p)
		}
	}
}

func TestUnion_VertexIDsMergedSortedUnique(t *testing.T) {
	a := AABB{VertexIDs: []int32{5, 1, 1}}
	b := AABB{VertexIDs: []int32{3, 5}}
	u := Union(a, b)
	want := []int32{1, 3, 5}
	if diff := cmp.Diff(want, u.VertexIDs); diff != "" {
		t.Errorf("Union() vertex ids mismatch (-want +got):\n%s", diff)
	}
}

func TestUnion_VertexIDsTruncatedToCapacity(t *testing.T) {
	a := AABB{VertexIDs: []int32{1, 2, 3}}
	b := AABB{VertexIDs: []int32{4, 5, 6}}
	u := Union(a, b)
	if len(u.VertexIDs) != maxVertexIDs {
		t.Errorf("Union() produced %d vertex ids, want capped at %d", len(u.VertexIDs), maxVertexIDs)
	}
}

func TestConservativeInflate_CoversRadius(t *testing.T) {
	min, max := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}
	r := 0.25
	iMin, iMax := ConservativeInflate(min, max, r)

	// Every axis must widen by at least r.
	for axis := 0; axis < 3; axis++ {
		if min[axis]-iMin[axis] < r {
			t.Errorf("axis %d: min inflated by %v, want >= %v", axis, min[axis]-iMin[axis], r)
		}
		if iMax[axis]-max[axis] < r {
			t.Errorf("axis %d: max inflated by %v, want >= %v", axis, iMax[axis]-max[axis], r)
		}
	}
}
