package mesh

import "fmt"

// ValidationError describes a single broken invariant found by Validate.
type ValidationError struct {
	Kind    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("mesh: %s: %s", e.Kind, e.Message)
}

// Validate checks the four half-edge directory invariants from the data
// model contract against the mesh's current state:
//
//  1. For every face with cycle (v0, ..., vk-1), the directory maps
//     (vi -> v(i+1 mod k)) to that face.
//  2. Every directed edge present in the directory has a twin also present.
//  3. No directed edge maps to two distinct faces.
//  4. No vertex appears twice in any face's cycle.
//
// It returns the first violation found, or nil if the mesh is consistent.
func (m *Mesh) Validate() error {
	for fkey, f := range m.faces {
		n := len(f.cycle)
		seen := make(map[VertexKey]bool, n)
		for i, v := range f.cycle {
			if seen[v] {
				return ValidationError{"duplicate-vertex", fmt.Sprintf("face %d repeats vertex %d", fkey, v)}
			}
			seen[v] = true

			w := f.cycle[(i+1)%n]
			got, ok := m.HalfEdgeFace(v, w)
			if !ok {
				return ValidationError{"missing-edge", fmt.Sprintf("face %d edge (%d->%d) missing from directory", fkey, v, w)}
			}
			if got != fkey {
				return ValidationError{"wrong-face", fmt.Sprintf("face %d edge (%d->%d) maps to face %d in directory", fkey, v, w, got)}
			}
		}
	}

	for u, row := range m.half {
		for v := range row {
			if _, ok := m.half[v][u]; !ok {
				return ValidationError{"missing-twin", fmt.Sprintf("edge (%d->%d) has no twin entry (%d->%d)", u, v, v, u)}
			}
		}
	}

	return nil
}
