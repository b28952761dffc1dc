package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ipcgrid/meshhash/internal/parallel"
)

func toVec3(p [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{p[0], p[1], p[2]}
}

// BuildVertexBoxes returns one box per row of V, static (v1 == nil) or
// swept over [V, V1], inflated by r. The per-vertex work is embarrassingly
// parallel, so each worker owns a disjoint slice of the output.
func BuildVertexBoxes(v, v1 [][3]float64, r float64, workers int) []AABB {
	boxes := make([]AABB, len(v))
	parallel.For(len(v), workers, func(i int) {
		p0 := toVec3(v[i])
		if v1 == nil {
			boxes[i] = FromPoint(p0, r, int32(i))
			return
		}
		boxes[i] = FromSweptPoint(p0, toVec3(v1[i]), r, int32(i))
	})
	return boxes
}

// BuildEdgeBoxes returns, for each edge, the union of its two endpoint
// vertex boxes.
func BuildEdgeBoxes(vertexBoxes []AABB, e [][2]int32) []AABB {
	boxes := make([]AABB, len(e))
	parallel.For(len(e), defaultWorkers(len(e)), func(i int) {
		edge := e[i]
		boxes[i] = Union(vertexBoxes[edge[0]], vertexBoxes[edge[1]])
	})
	return boxes
}

// BuildFaceBoxes returns, for each face, the union of its three vertex
// boxes.
func BuildFaceBoxes(vertexBoxes []AABB, f [][3]int32) []AABB {
	boxes := make([]AABB, len(f))
	parallel.For(len(f), defaultWorkers(len(f)), func(i int) {
		face := f[i]
		boxes[i] = Union3(vertexBoxes[face[0]], vertexBoxes[face[1]], vertexBoxes[face[2]])
	})
	return boxes
}

func defaultWorkers(n int) int {
	const maxWorkers = 8
	if n < maxWorkers {
		return 1
	}
	return maxWorkers
}
