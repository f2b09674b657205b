// Package loader parses triangular meshes from ASCII RAW, VRML2
// (IndexedFaceSet subset), Inventor (subset), SMF and OFF streams into
// the canonical mesh.Mesh representation (spec.md §4.1).
package loader

import (
	"bufio"
	"bytes"
	"io"

	"github.com/arl/meshdist/mesh"
	"github.com/arl/meshdist/status"
)

// Format identifies a mesh file format.
type Format int

const (
	// AutoDetect inspects the stream's leading tokens to pick a format.
	AutoDetect Format = iota
	RAW
	VRML2
	Inventor
	SMF
	OFF
	ply // detected, never returned as supported
)

// ReadModel parses a mesh from r. When hint is AutoDetect the format is
// inferred from the stream's leading bytes (spec.md §4.1).
func ReadModel(r io.Reader, hint Format) (*mesh.Mesh, error) {
	br := bufio.NewReaderSize(r, bufSize)

	format := hint
	if format == AutoDetect {
		f, err := detectFormat(br)
		if err != nil {
			return nil, err
		}
		format = f
	}

	var (
		m   *mesh.Mesh
		err error
	)
	switch format {
	case RAW:
		m, err = parseRAW(wrapTokenizer(br))
	case OFF:
		m, err = parseOFF(wrapTokenizer(br))
	case SMF:
		m, err = parseSMF(wrapTokenizer(br))
	case VRML2:
		m, err = parseVRML2(wrapTokenizer(br), true)
	case Inventor:
		m, err = parseInventor(wrapTokenizer(br))
	case ply:
		return nil, status.Errf(status.BadFF, "PLY format is detected but unsupported")
	default:
		return nil, status.Errf(status.BadFF, "unknown or unsupported format")
	}
	if err != nil {
		return nil, err
	}
	if len(m.Faces) < 1 || len(m.Verts) < 3 {
		return nil, status.Errf(status.ModelError, "mesh must have at least 3 vertices and 1 face")
	}
	for _, f := range m.Faces {
		if !inRange(f.V0, len(m.Verts)) || !inRange(f.V1, len(m.Verts)) || !inRange(f.V2, len(m.Verts)) {
			return nil, status.Errf(status.ModelError, "face references out-of-range vertex index")
		}
	}
	m.CalcBounds()
	return m, nil
}

// ReadVRML2List parses every IndexedFaceSet in r as its own mesh,
// without concatenating them (spec.md §4.1: "otherwise return them as
// a list").
func ReadVRML2List(r io.Reader) ([]*mesh.Mesh, error) {
	br := bufio.NewReaderSize(r, bufSize)
	t := wrapTokenizer(br)
	t.vrml = true
	list, err := readIndexedFaceSets(t)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, status.Errf(status.ModelError, "VRML2: no IndexedFaceSet node found")
	}
	for _, m := range list {
		m.CalcBounds()
	}
	return list, nil
}

func inRange(idx int32, n int) bool {
	return idx >= 0 && int(idx) < n
}

// detectFormat inspects the leading bytes of br without permanently
// consuming more than necessary for classification; the bufio.Reader
// is shared with the eventual parser so detection never discards
// input (spec.md §4.1 "Autodetection").
func detectFormat(br *bufio.Reader) (Format, error) {
	head, _ := br.Peek(64)
	if len(head) == 0 {
		return 0, status.Errf(status.Corrupted, "empty input")
	}
	switch {
	case bytes.HasPrefix(head, []byte("#VRML V2.0 utf8")):
		return VRML2, nil
	case bytes.HasPrefix(head, []byte("#Inventor V2")):
		return Inventor, nil
	case bytes.HasPrefix(head, []byte("ply")):
		return ply, nil
	case bytes.HasPrefix(bytes.TrimLeft(head, " \t\r\n"), []byte("OFF")):
		return OFF, nil
	}

	// Peek at the first non-comment, non-whitespace byte without
	// consuming it, so the real parser still sees the full stream from
	// byte 0: SMF starts with a line whose first character is one of
	// v/f/b/c; RAW starts with an integer.
	c, ok := peekFirstSignificantByte(br)
	if !ok {
		return 0, status.Errf(status.Corrupted, "could not read first token")
	}
	switch c {
	case 'v', 'f', 'b', 'c':
		return SMF, nil
	}
	if isDigit(c) {
		return RAW, nil
	}
	return 0, status.Errf(status.BadFF, "could not autodetect format from leading byte %q", c)
}

// peekFirstSignificantByte looks ahead (without consuming) past
// whitespace and '#'-to-end-of-line comments and returns the first
// remaining byte.
func peekFirstSignificantByte(br *bufio.Reader) (byte, bool) {
	for n := 256; n <= bufSize; n *= 4 {
		buf, _ := br.Peek(n)
		i := 0
		for i < len(buf) {
			b := buf[i]
			if isSpace(b, false) {
				i++
				continue
			}
			if b == '#' {
				for i < len(buf) && buf[i] != '\n' {
					i++
				}
				continue
			}
			return b, true
		}
		if len(buf) < n {
			break // reached EOF before finding a significant byte
		}
	}
	return 0, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
