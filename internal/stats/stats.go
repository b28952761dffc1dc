// Package stats implements the small numeric helpers used to auto-size a
// voxel grid when the caller doesn't supply an explicit cell size.
package stats

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/stat"
)

// AverageEdgeLength returns the mean length of edges E over vertex set V0
// (static) or the mean of the swept edge's two endpoint lengths averaged
// over V0 and V1 (swept). Passing V1 == nil computes the static form.
func AverageEdgeLength(v0, v1 [][3]float64, e [][2]int32) float64 {
	if len(e) == 0 {
		return 0
	}
	lengths := make([]float64, 0, len(e))
	for _, edge := range e {
		a0, b0 := toVec3(v0[edge[0]]), toVec3(v0[edge[1]])
		lengths = append(lengths, a0.Sub(b0).Len())
		if v1 != nil {
			a1, b1 := toVec3(v1[edge[0]]), toVec3(v1[edge[1]])
			lengths = append(lengths, a1.Sub(b1).Len())
		}
	}
	return stat.Mean(lengths, nil)
}

// AverageDisplacementLength returns the mean magnitude of the per-vertex
// displacement vectors v1[i]-v0[i].
func AverageDisplacementLength(v0, v1 [][3]float64) float64 {
	if len(v0) == 0 {
		return 0
	}
	lengths := make([]float64, len(v0))
	for i := range v0 {
		lengths[i] = toVec3(v1[i]).Sub(toVec3(v0[i])).Len()
	}
	return stat.Mean(lengths, nil)
}

func toVec3(p [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{p[0], p[1], p[2]}
}
