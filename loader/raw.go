package loader

import (
	"strconv"
	"strings"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
	"github.com/arl/meshdist/status"
)

// parseRAW parses the ASCII RAW format (spec.md §4.1, §6): a header
// line "nv nf [nvn [nfn]]", nv vertex lines, nf face lines, then
// optional vertex-normal and face-normal blocks.
func parseRAW(t *tokenizer) (*mesh.Mesh, error) {
	header, err := t.readLine()
	if err != nil {
		return nil, status.Errf(status.Corrupted, "RAW header: %v", err)
	}
	fields := strings.Fields(header)
	if len(fields) < 2 || len(fields) > 4 {
		return nil, status.Errf(status.Corrupted, "RAW header: expected 2 to 4 fields, got %d", len(fields))
	}
	counts := make([]int, len(fields))
	for i, f := range fields {
		n, perr := strconv.Atoi(f)
		if perr != nil {
			return nil, status.Errf(status.Corrupted, "RAW header: %q is not an integer", f)
		}
		counts[i] = n
	}
	nv, nf := counts[0], counts[1]
	if nv < 3 || nf <= 0 {
		return nil, status.Errf(status.ModelError, "RAW header: nv=%d nf=%d out of range", nv, nf)
	}
	hasNvn, hasNfn := len(counts) >= 3, len(counts) >= 4
	var nvnCount, nfnCount int
	if hasNvn {
		nvnCount = counts[2]
	}
	if hasNfn {
		nfnCount = counts[3]
	}

	m := &mesh.Mesh{}
	m.Verts = make([]geom.Vec3, nv)
	for i := 0; i < nv; i++ {
		v, err := t.nextVec3()
		if err != nil {
			return nil, status.Errf(status.Corrupted, "RAW vertex %d: %v", i, err)
		}
		m.Verts[i] = v
	}

	m.Faces = make([]mesh.Face, nf)
	for i := 0; i < nf; i++ {
		f, err := t.nextFace(false)
		if err != nil {
			return nil, err
		}
		m.Faces[i] = f
	}

	if hasNvn {
		if nvnCount != nv {
			return nil, status.Errf(status.ModelError, "RAW: %d vertex normals declared for %d vertices", nvnCount, nv)
		}
		m.VertNormals = make([]geom.Vec3, nvnCount)
		for i := 0; i < nvnCount; i++ {
			n, err := t.nextVec3()
			if err != nil {
				return nil, status.Errf(status.Corrupted, "RAW vertex normal %d: %v", i, err)
			}
			m.VertNormals[i] = n
		}
	}
	if hasNfn {
		if nfnCount != nf {
			return nil, status.Errf(status.ModelError, "RAW: %d face normals declared for %d faces", nfnCount, nf)
		}
		m.FaceNormals = make([]geom.Vec3, nfnCount)
		for i := 0; i < nfnCount; i++ {
			n, err := t.nextVec3()
			if err != nil {
				return nil, status.Errf(status.Corrupted, "RAW face normal %d: %v", i, err)
			}
			m.FaceNormals[i] = n
		}
	}
	return m, nil
}
