package loader

import (
	"io"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
	"github.com/arl/meshdist/status"
)

// parseInventor parses the Inventor subset (spec.md §4.1): only
// Coordinate3/point and IndexedFaceSet/coordIndex are consumed,
// exactly one of each expected. Reuses the VRML2 tokenizer settings
// (comma-as-whitespace, bracket tokens) since Inventor's ASCII syntax
// is a superset VRML2 was itself derived from.
func parseInventor(t *tokenizer) (*mesh.Mesh, error) {
	t.vrml = true

	var (
		verts      []geom.Vec3
		coordIndex []int32
	)
	for {
		tok, err := t.next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, status.Errf(status.Corrupted, "Inventor: %v", err)
		}
		switch tok {
		case "Coordinate3":
			pts, err := parseInventorPointField(t)
			if err != nil {
				return nil, err
			}
			verts = pts
		case "IndexedFaceSet":
			idx, err := parseInventorCoordIndexField(t)
			if err != nil {
				return nil, err
			}
			coordIndex = idx
		}
	}

	if verts == nil {
		return nil, status.Errf(status.ModelError, "Inventor: missing Coordinate3 node")
	}
	if coordIndex == nil {
		return nil, status.Errf(status.ModelError, "Inventor: missing IndexedFaceSet node")
	}
	faces, err := facesFromCoordIndex(coordIndex)
	if err != nil {
		return nil, err
	}
	for _, f := range faces {
		if !inRange(f.V0, len(verts)) || !inRange(f.V1, len(verts)) || !inRange(f.V2, len(verts)) {
			return nil, status.Errf(status.ModelError, "Inventor: coordIndex references vertex beyond declared point count")
		}
	}
	return &mesh.Mesh{Verts: verts, Faces: faces}, nil
}

// parseInventorPointField parses "{ point [ ... ] }".
func parseInventorPointField(t *tokenizer) ([]geom.Vec3, error) {
	if err := expectTokens(t, "{", "point", "["); err != nil {
		return nil, err
	}
	floats, err := parseBareFloatArray(t)
	if err != nil {
		return nil, status.Errf(status.Corrupted, "Coordinate3 point: %v", err)
	}
	if len(floats)%3 != 0 {
		return nil, status.Errf(status.ModelError, "Coordinate3 point: %d values is not a multiple of 3", len(floats))
	}
	if tok, err := t.next(); err != nil || tok != "}" {
		return nil, status.Errf(status.Corrupted, "Coordinate3: expected closing '}'")
	}
	verts := make([]geom.Vec3, len(floats)/3)
	for i := range verts {
		verts[i] = geom.New(floats[i*3], floats[i*3+1], floats[i*3+2])
	}
	return verts, nil
}

// parseInventorCoordIndexField parses "{ coordIndex [ ... ] }".
func parseInventorCoordIndexField(t *tokenizer) ([]int32, error) {
	if err := expectTokens(t, "{", "coordIndex"); err != nil {
		return nil, err
	}
	idx, err := parseBareIntArray(t)
	if err != nil {
		return nil, status.Errf(status.Corrupted, "coordIndex: %v", err)
	}
	if tok, err := t.next(); err != nil || tok != "}" {
		return nil, status.Errf(status.Corrupted, "IndexedFaceSet: expected closing '}'")
	}
	return idx, nil
}
