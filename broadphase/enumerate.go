package broadphase

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ipcgrid/meshhash/mesh"
	"github.com/ipcgrid/meshhash/predicate"
	"github.com/ipcgrid/meshhash/spatialhash"
)

// enumerateFromVertex handles both the EV and FV categories for vertex vi,
// since both walk vertices and both admit through the opaque predicate.
func enumerateFromVertex(
	h *spatialhash.VoxelHash,
	m *mesh.Mesh,
	boxes Boxes,
	r float64,
	flags Flags,
	preds predicate.Set,
	vi int32,
	local *localBuffer,
) {
	p0 := vec3(m.V[vi])
	var p1 mgl64.Vec3
	if m.V1 != nil {
		p1 = vec3(m.V1[vi])
	}

	if flags.EV {
		var edgeIDs []int32
		if h.Swept() {
			edgeIDs = h.QueryPointForEdges(vi)
		} else {
			edgeIDs = h.QueryPointForEdgesWorld(p0, r)
		}
		for _, ei := range edgeIDs {
			e := m.E[ei-h.EdgeStart]
			// Corrected incidence filter: reject whenever vi is either
			// endpoint. The source's static path reads
			// "vi == E(ei,0) && vi != E(ei,1)", which admits almost
			// nothing it should and lets through pairs it shouldn't;
			// the swept/CCD path already uses this all-!= form.
			if vi == e[0] || vi == e[1] {
				continue
			}
			if admitPointEdge(m, preds, p0, p1, e, r) {
				local.ev = append(local.ev, EVPair{Edge: ei - h.EdgeStart, Vertex: vi})
			}
		}
	}

	if flags.FV {
		var faceIDs []int32
		if h.Swept() {
			faceIDs = h.QueryPointForTrianglesSwept(p0, p1, r)
		} else {
			faceIDs = h.QueryPointForTriangles(p0, r)
		}
		if len(boxes.Face) > 0 {
			faceIDs = h.QueryPointForTrianglesBBoxChecked(faceIDs, boxes.Vertex[vi], boxes.Face)
		}
		for _, fi := range faceIDs {
			f := m.F[fi-h.TriStart]
			// Corrected incidence filter: reject whenever vi is any of
			// the triangle's three vertices. The source's static path
			// duplicates the check against F(fi,1) instead of also
			// checking F(fi,2), and additionally requires equality
			// against F(fi,0) rather than inequality; the swept/CCD
			// path already uses this all-!= form.
			if vi == f[0] || vi == f[1] || vi == f[2] {
				continue
			}
			if admitPointTriangle(m, preds, p0, p1, f, r) {
				local.fv = append(local.fv, FVPair{Face: fi - h.TriStart, Vertex: vi})
			}
		}
	}
}

// enumerateFromEdge handles the EE category for edge eai.
func enumerateFromEdge(
	h *spatialhash.VoxelHash,
	m *mesh.Mesh,
	boxes Boxes,
	r float64,
	eai int32,
	preds predicate.Set,
	local *localBuffer,
) {
	a := m.E[eai]
	a0, a1 := vec3(m.V[a[0]]), vec3(m.V[a[1]])
	var a01, a11 mgl64.Vec3
	if m.V1 != nil {
		a01, a11 = vec3(m.V1[a[0]]), vec3(m.V1[a[1]])
	}

	eaID := h.EdgeStart + eai
	var edgeIDs []int32
	if h.Swept() {
		edgeIDs = h.QueryEdgeForEdges(eaID)
	} else if m.V1 != nil {
		edgeIDs = h.QueryEdgeForEdgesWorldSwept(a0, a1, a01, a11, r, eaID)
	} else {
		edgeIDs = h.QueryEdgeForEdgesWorld(a0, a1, r, eaID)
	}

	if len(boxes.Edge) > 0 {
		queryBox := boxes.Edge[eai]
		edgeIDs = h.QueryEdgeForEdgesBBoxChecked(edgeIDs, queryBox, boxes.Edge)
	}

	for _, ebID := range edgeIDs {
		ebi := ebID - h.EdgeStart
		b := m.E[ebi]
		// Corrected incidence filter: reject whenever the two edges
		// share any vertex (all four !=). The source's static path
		// conjoins != and == inconsistently; the swept/CCD path
		// already uses this all-!= form.
		if a[0] == b[0] || a[0] == b[1] || a[1] == b[0] || a[1] == b[1] {
			continue
		}
		b0, b1 := vec3(m.V[b[0]]), vec3(m.V[b[1]])
		if admitEdgeEdge(m, preds, a0, a1, a01, a11, b[0], b[1], b0, b1, r) {
			local.ee = append(local.ee, EEPair{EdgeA: eai, EdgeB: ebi})
		}
	}
}

func admitPointEdge(m *mesh.Mesh, preds predicate.Set, p0, p1 mgl64.Vec3, e [2]int32, r float64) bool {
	e0, e1 := vec3(m.V[e[0]]), vec3(m.V[e[1]])
	if m.V1 == nil {
		return preds.PointEdgeCD(p0, e0, e1, r)
	}
	e01, e11 := vec3(m.V1[e[0]]), vec3(m.V1[e[1]])
	return preds.PointEdgeCCD(p0, e0, e1, p1, e01, e11, r)
}

func admitPointTriangle(m *mesh.Mesh, preds predicate.Set, p0, p1 mgl64.Vec3, f [3]int32, r float64) bool {
	t0, t1, t2 := vec3(m.V[f[0]]), vec3(m.V[f[1]]), vec3(m.V[f[2]])
	if m.V1 == nil {
		return preds.PointTriangleCD(p0, t0, t1, t2, r)
	}
	t01, t11, t21 := vec3(m.V1[f[0]]), vec3(m.V1[f[1]]), vec3(m.V1[f[2]])
	return preds.PointTriangleCCD(p0, t0, t1, t2, p1, t01, t11, t21, r)
}

func admitEdgeEdge(m *mesh.Mesh, preds predicate.Set, a0, a1, a01, a11 mgl64.Vec3, b0i, b1i int32, b0, b1 mgl64.Vec3, r float64) bool {
	if m.V1 == nil {
		return preds.EdgeEdgeCD(a0, a1, b0, b1, r)
	}
	b01, b11 := vec3(m.V1[b0i]), vec3(m.V1[b1i])
	return preds.EdgeEdgeCCD(a0, a1, b0, b1, a01, a11, b01, b11, r)
}

func vec3(p [3]float64) mgl64.Vec3 { return mgl64.Vec3{p[0], p[1], p[2]} }
