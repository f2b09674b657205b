package loader

import (
	"io"

	"github.com/arl/meshdist/mesh"
	"github.com/arl/meshdist/status"
)

// parseSMF parses the line-oriented SMF format (spec.md §4.1): "v x y
// z" vertices, "f i j k" faces with 1-based indices, every other
// prefix skipped to end of line.
func parseSMF(t *tokenizer) (*mesh.Mesh, error) {
	m := &mesh.Mesh{}
	maxFaceIdx := int32(-1)

	for {
		tok, err := t.next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, status.Errf(status.Corrupted, "SMF: %v", err)
		}
		switch tok {
		case "v":
			v, err := t.nextVec3()
			if err != nil {
				return nil, status.Errf(status.Corrupted, "SMF vertex %d: %v", len(m.Verts), err)
			}
			m.Verts = append(m.Verts, v)
		case "f":
			f, err := t.nextFace(true)
			if err != nil {
				return nil, err
			}
			m.Faces = append(m.Faces, f)
			maxFaceIdx = max3(maxFaceIdx, f.V0, f.V1, f.V2)
		default:
			if err := t.skipRestOfLine(); err != nil && err != io.EOF {
				return nil, status.Errf(status.Corrupted, "SMF: %v", err)
			}
		}
	}

	if maxFaceIdx >= int32(len(m.Verts)) {
		return nil, status.Errf(status.ModelError, "SMF: face references vertex %d but only %d declared", maxFaceIdx, len(m.Verts))
	}
	return m, nil
}

func max3(a, b, c, d int32) int32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	if d > m {
		m = d
	}
	return m
}
