package loader

import (
	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
	"github.com/arl/meshdist/status"
)

// parseOFF parses the OFF format (spec.md §4.1): header "OFF", then
// "nv nf ne", nv vertex lines (trailing fields ignored), nf face lines
// of the form "order i j k" where order must be 3.
func parseOFF(t *tokenizer) (*mesh.Mesh, error) {
	magic, err := t.next()
	if err != nil || magic != "OFF" {
		return nil, status.Errf(status.BadFF, "OFF: missing magic header")
	}
	nv, err := t.nextInt()
	if err != nil {
		return nil, status.Errf(status.Corrupted, "OFF header: %v", err)
	}
	nf, err := t.nextInt()
	if err != nil {
		return nil, status.Errf(status.Corrupted, "OFF header: %v", err)
	}
	if _, err := t.nextInt(); err != nil { // ne, unused
		return nil, status.Errf(status.Corrupted, "OFF header: %v", err)
	}
	if nv < 3 || nf <= 0 {
		return nil, status.Errf(status.ModelError, "OFF header: nv=%d nf=%d out of range", nv, nf)
	}

	m := &mesh.Mesh{Verts: make([]geom.Vec3, nv), Faces: make([]mesh.Face, nf)}
	for i := 0; i < nv; i++ {
		v, err := t.nextVec3()
		if err != nil {
			return nil, status.Errf(status.Corrupted, "OFF vertex %d: %v", i, err)
		}
		m.Verts[i] = v
		if err := t.skipRestOfLine(); err != nil {
			return nil, status.Errf(status.Corrupted, "OFF vertex %d: %v", i, err)
		}
	}
	for i := 0; i < nf; i++ {
		order, err := t.nextInt()
		if err != nil {
			return nil, status.Errf(status.Corrupted, "OFF face %d: %v", i, err)
		}
		if order != 3 {
			return nil, status.Errf(status.NotTriag, "OFF face %d has %d vertices", i, order)
		}
		f, err := t.nextFace(false)
		if err != nil {
			return nil, err
		}
		m.Faces[i] = f
		if err := t.skipRestOfLine(); err != nil {
			return nil, status.Errf(status.Corrupted, "OFF face %d: %v", i, err)
		}
	}
	return m, nil
}
