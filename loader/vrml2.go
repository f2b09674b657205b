package loader

import (
	"io"
	"strconv"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
	"github.com/arl/meshdist/status"
)

// parseVRML2 scans the whole token stream for IndexedFaceSet nodes
// nested at any depth inside any node context (spec.md §4.1: "only
// IndexedFaceSet nodes are consumed, inside any number of nested node
// contexts"). Everything else -- DEF names, Transform/Shape/Group
// wrappers, unrecognized fields -- is skipped by generic bracket/brace
// depth tracking (spec.md §9's "small state machine").
func parseVRML2(t *tokenizer, concat bool) (*mesh.Mesh, error) {
	t.vrml = true
	list, err := readIndexedFaceSets(t)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, status.Errf(status.ModelError, "VRML2: no IndexedFaceSet node found")
	}
	if !concat {
		return list[0], nil
	}
	return mesh.Concat(list), nil
}

// readIndexedFaceSets walks the entire VRML2 token stream and returns
// one *mesh.Mesh per IndexedFaceSet node encountered (spec.md §4.1
// "Multiple IndexedFaceSets").
func readIndexedFaceSets(t *tokenizer) ([]*mesh.Mesh, error) {
	var list []*mesh.Mesh
	for {
		tok, err := t.next()
		if err != nil {
			if err == io.EOF {
				return list, nil
			}
			return nil, status.Errf(status.Corrupted, "VRML2: %v", err)
		}
		if tok == "IndexedFaceSet" {
			m, err := parseIndexedFaceSet(t)
			if err != nil {
				return nil, err
			}
			list = append(list, m)
		}
	}
}

// parseIndexedFaceSet parses one "{ ... }" IndexedFaceSet body,
// consuming exactly the tokens that belong to it.
func parseIndexedFaceSet(t *tokenizer) (*mesh.Mesh, error) {
	if tok, err := t.next(); err != nil || tok != "{" {
		return nil, status.Errf(status.Corrupted, "IndexedFaceSet: expected '{'")
	}

	var (
		verts           []geom.Vec3
		coordIndex      []int32
		normals         []geom.Vec3
		normalIndex     []int32
		normalPerVertex = true
		haveNormal      bool
	)

	depth := 1
	for depth > 0 {
		tok, err := t.next()
		if err != nil {
			return nil, status.Errf(status.Corrupted, "IndexedFaceSet: %v", err)
		}
		switch tok {
		case "{", "[":
			depth++
		case "}", "]":
			depth--
		case "coord":
			pts, err := parseCoordinateField(t)
			if err != nil {
				return nil, err
			}
			verts = pts
		case "coordIndex":
			idx, err := parseBareIntArray(t)
			if err != nil {
				return nil, status.Errf(status.Corrupted, "coordIndex: %v", err)
			}
			coordIndex = idx
		case "normal":
			vecs, err := parseNormalField(t)
			if err != nil {
				return nil, err
			}
			normals = vecs
			haveNormal = true
		case "normalIndex":
			idx, err := parseBareIntArray(t)
			if err != nil {
				return nil, status.Errf(status.Corrupted, "normalIndex: %v", err)
			}
			normalIndex = idx
		case "normalPerVertex":
			v, err := t.next()
			if err != nil {
				return nil, status.Errf(status.Corrupted, "normalPerVertex: %v", err)
			}
			normalPerVertex = v == "TRUE" || v == "true" || v == "1"
		}
	}

	if verts == nil {
		return nil, status.Errf(status.ModelError, "IndexedFaceSet: missing coord field")
	}
	faces, err := facesFromCoordIndex(coordIndex)
	if err != nil {
		return nil, err
	}
	for _, f := range faces {
		if !inRange(f.V0, len(verts)) || !inRange(f.V1, len(verts)) || !inRange(f.V2, len(verts)) {
			return nil, status.Errf(status.ModelError, "IndexedFaceSet: coordIndex references vertex beyond declared coord count")
		}
	}

	m := &mesh.Mesh{Verts: verts, Faces: faces}
	if haveNormal {
		applyNormals(m, normals, normalIndex, normalPerVertex, coordIndex)
	}
	return m, nil
}

// facesFromCoordIndex groups a -1-terminated MFInt32 array into
// triangles (spec.md §4.1: "each triangle is three non-negative
// indices followed by a -1 terminator; any face with >3 pre-terminator
// indices is status.NotTriag").
func facesFromCoordIndex(idx []int32) ([]mesh.Face, error) {
	var faces []mesh.Face
	var cur []int32
	for _, v := range idx {
		if v == -1 {
			if len(cur) != 3 {
				return nil, status.Errf(status.NotTriag, "IndexedFaceSet face has %d vertices, want 3", len(cur))
			}
			faces = append(faces, mesh.Face{V0: cur[0], V1: cur[1], V2: cur[2]})
			cur = cur[:0]
			continue
		}
		if v < 0 {
			return nil, status.Errf(status.ModelError, "IndexedFaceSet: negative coordIndex entry %d", v)
		}
		cur = append(cur, v)
		if len(cur) > 3 {
			return nil, status.Errf(status.NotTriag, "IndexedFaceSet face has more than 3 vertices")
		}
	}
	if len(cur) != 0 {
		return nil, status.Errf(status.Corrupted, "coordIndex: missing trailing -1 terminator")
	}
	return faces, nil
}

// applyNormals converts the parsed normal/normalIndex/normalPerVertex
// triple into either per-vertex or per-face normals on m (spec.md
// §4.1: "parsed and optionally converted to per-vertex or per-face
// normals").
func applyNormals(m *mesh.Mesh, normals []geom.Vec3, normalIndex []int32, perVertex bool, coordIndex []int32) {
	if !perVertex {
		// One normal index (or implicit normal) per face, no -1 terminators.
		faceNormals := make([]geom.Vec3, len(m.Faces))
		for i := range m.Faces {
			if len(normalIndex) > i {
				if idx := normalIndex[i]; idx >= 0 && int(idx) < len(normals) {
					faceNormals[i] = normals[idx]
				}
			} else if i < len(normals) {
				faceNormals[i] = normals[i]
			}
		}
		m.FaceNormals = faceNormals
		return
	}
	if len(normalIndex) == 0 {
		if len(normals) == len(m.Verts) {
			m.VertNormals = normals
		}
		return
	}
	// normalIndex mirrors coordIndex's per-face grouping (both
	// -1-terminated with identical face structure): walk them in
	// lock-step and assign each referenced vertex the corresponding
	// normal-array entry.
	vertNormals := make([]geom.Vec3, len(m.Verts))
	var ci, nj int
	for ci < len(coordIndex) {
		v := coordIndex[ci]
		if v == -1 {
			ci++
			nj++
			continue
		}
		if nj < len(normalIndex) {
			n := normalIndex[nj]
			if n >= 0 && int(n) < len(normals) && int(v) < len(vertNormals) {
				vertNormals[v] = normals[n]
			}
		}
		ci++
		nj++
	}
	m.VertNormals = vertNormals
}

// parseCoordinateField parses "Coordinate { point [ ... ] }".
func parseCoordinateField(t *tokenizer) ([]geom.Vec3, error) {
	if err := expectTokens(t, "Coordinate", "{", "point", "["); err != nil {
		return nil, err
	}
	floats, err := parseBareFloatArray(t)
	if err != nil {
		return nil, status.Errf(status.Corrupted, "Coordinate point: %v", err)
	}
	if len(floats)%3 != 0 {
		return nil, status.Errf(status.ModelError, "Coordinate point: %d values is not a multiple of 3", len(floats))
	}
	if tok, err := t.next(); err != nil || tok != "}" {
		return nil, status.Errf(status.Corrupted, "Coordinate: expected closing '}'")
	}
	verts := make([]geom.Vec3, len(floats)/3)
	for i := range verts {
		verts[i] = geom.New(floats[i*3], floats[i*3+1], floats[i*3+2])
	}
	return verts, nil
}

// parseNormalField parses "Normal { vector [ ... ] }".
func parseNormalField(t *tokenizer) ([]geom.Vec3, error) {
	if err := expectTokens(t, "Normal", "{", "vector", "["); err != nil {
		return nil, err
	}
	floats, err := parseBareFloatArray(t)
	if err != nil {
		return nil, status.Errf(status.Corrupted, "Normal vector: %v", err)
	}
	if len(floats)%3 != 0 {
		return nil, status.Errf(status.ModelError, "Normal vector: %d values is not a multiple of 3", len(floats))
	}
	if tok, err := t.next(); err != nil || tok != "}" {
		return nil, status.Errf(status.Corrupted, "Normal: expected closing '}'")
	}
	verts := make([]geom.Vec3, len(floats)/3)
	for i := range verts {
		verts[i] = geom.New(floats[i*3], floats[i*3+1], floats[i*3+2])
	}
	return verts, nil
}

func expectTokens(t *tokenizer, toks ...string) error {
	for _, want := range toks {
		got, err := t.next()
		if err != nil {
			return status.Errf(status.Corrupted, "expected %q: %v", want, err)
		}
		if got != want {
			return status.Errf(status.Corrupted, "expected %q, got %q", want, got)
		}
	}
	return nil
}

// parseBareFloatArray reads floats up to (and consuming) the closing
// "]" -- the "[" has already been consumed by the caller.
func parseBareFloatArray(t *tokenizer) ([]float32, error) {
	var vals []float32
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		if tok == "]" {
			return vals, nil
		}
		f, perr := strconv.ParseFloat(tok, 32)
		if perr != nil {
			return nil, status.Errf(status.Corrupted, "expected number, got %q", tok)
		}
		vals = append(vals, float32(f))
	}
}

// parseBareIntArray reads a "[ ... ]" MFInt32 array; unlike
// parseBareFloatArray it also consumes the opening bracket, since
// coordIndex/normalIndex fields are written as "name [ ... ]" directly
// (no wrapping node).
func parseBareIntArray(t *tokenizer) ([]int32, error) {
	if tok, err := t.next(); err != nil || tok != "[" {
		return nil, status.Errf(status.Corrupted, "expected '['")
	}
	var vals []int32
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		if tok == "]" {
			return vals, nil
		}
		n, perr := strconv.Atoi(tok)
		if perr != nil {
			return nil, status.Errf(status.Corrupted, "expected integer, got %q", tok)
		}
		vals = append(vals, int32(n))
	}
}
