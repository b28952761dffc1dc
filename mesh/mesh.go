// Package mesh holds the geometry container shared by every package in this
// module: vertex positions (optionally at two time samples), edges and
// triangular faces.
package mesh

import "fmt"

// Mesh is a triangulated mesh, optionally swept linearly from V to V1
// between two time samples. V1 == nil means the mesh is static.
type Mesh struct {
	V, V1 [][3]float64
	E     [][2]int32
	F     [][3]int32
}

// Swept reports whether the mesh carries a second time sample.
func (m *Mesh) Swept() bool {
	return m.V1 != nil
}

// Validate checks the preconditions every other operation in this module
// assumes: matching V/V1 shapes, in-range edge and face indices, non-empty
// vertex set. Violations are programmer errors, so it panics rather than
// returning an error — there is nothing a caller could usefully recover
// from, per the broad-phase's "halts execution via assertion" contract.
func (m *Mesh) Validate() {
	mustf(len(m.V) > 0, "mesh: V must not be empty")
	if m.V1 != nil {
		mustf(len(m.V1) == len(m.V), "mesh: V1 has %d vertices, want %d", len(m.V1), len(m.V))
	}
	n := int32(len(m.V))
	for i, e := range m.E {
		mustf(e[0] >= 0 && e[0] < n && e[1] >= 0 && e[1] < n,
			"mesh: edge %d references out-of-range vertex %v (have %d vertices)", i, e, n)
	}
	for i, f := range m.F {
		mustf(f[0] >= 0 && f[0] < n && f[1] >= 0 && f[1] < n && f[2] >= 0 && f[2] < n,
			"mesh: face %d references out-of-range vertex %v (have %d vertices)", i, f, n)
	}
}

// EdgeStart and TriStart give the mesh's contribution to the unified
// primitive ID space: vertices occupy [0, EdgeStart), edges occupy
// [EdgeStart, TriStart), faces occupy [TriStart, TriStart+len(F)).
func (m *Mesh) EdgeStart() int32 { return int32(len(m.V)) }
func (m *Mesh) TriStart() int32  { return m.EdgeStart() + int32(len(m.E)) }

func mustf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
