// Package broadphase implements the parallel candidate enumerator: it
// walks a mesh's vertices and edges, queries the spatial index for nearby
// primitives, filters by incidence and by the opaque AABB predicate, and
// assembles the three candidate-pair lists the narrow phase consumes.
package broadphase

import (
	"github.com/ipcgrid/meshhash/geometry"
	"github.com/ipcgrid/meshhash/internal/parallel"
	"github.com/ipcgrid/meshhash/mesh"
	"github.com/ipcgrid/meshhash/predicate"
	"github.com/ipcgrid/meshhash/spatialhash"
)

// EVPair is an (edge, vertex) candidate.
type EVPair struct{ Edge, Vertex int32 }

// EEPair is an (edge, edge) candidate with EdgeA < EdgeB.
type EEPair struct{ EdgeA, EdgeB int32 }

// FVPair is a (face, vertex) candidate.
type FVPair struct{ Face, Vertex int32 }

// Candidates is the merged output of one enumeration pass. The order
// within each slice is unspecified: downstream consumers must treat it as
// a set-valued sequence, not a deterministic ordering.
type Candidates struct {
	EV []EVPair
	EE []EEPair
	FV []FVPair
}

// Flags selects which candidate categories to enumerate.
type Flags struct {
	EV, EE, FV bool
}

// Boxes carries the precomputed per-primitive AABBs used by the "BBox
// check" precision filter (§4.3): Edge backs the edge-edge filter, Vertex
// and Face together back the point-triangle filter. Leaving a field nil
// skips that filter, falling back to the coarser cell-coincidence result.
type Boxes struct {
	Vertex, Edge, Face []geometry.AABB
}

// localBuffer is the per-worker thread-local accumulator: each parallel
// region owns a disjoint *localBuffer, written without synchronization,
// and the final concatenation into Candidates happens in one serial pass.
type localBuffer struct {
	ev []EVPair
	ee []EEPair
	fv []FVPair
}

// QueryMeshForCandidates is the top-level entry point: given a built
// spatial index and the mesh it was built from, enumerate every enabled
// candidate category and return the merged result.
func QueryMeshForCandidates(
	h *spatialhash.VoxelHash,
	m *mesh.Mesh,
	boxes Boxes,
	r float64,
	flags Flags,
	preds predicate.Set,
	workers int,
) Candidates {
	var out Candidates

	if flags.EV || flags.FV {
		buffers := parallel.Gather(len(m.V), workers, func() *localBuffer { return &localBuffer{} },
			func(vi int, local *localBuffer) {
				enumerateFromVertex(h, m, boxes, r, flags, preds, int32(vi), local)
			})
		for _, b := range buffers {
			out.EV = append(out.EV, b.ev...)
			out.FV = append(out.FV, b.fv...)
		}
	}

	if flags.EE {
		buffers := parallel.Gather(len(m.E), workers, func() *localBuffer { return &localBuffer{} },
			func(eai int, local *localBuffer) {
				enumerateFromEdge(h, m, boxes, r, int32(eai), preds, local)
			})
		for _, b := range buffers {
			out.EE = append(out.EE, b.ee...)
		}
	}

	return out
}
