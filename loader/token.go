package loader

import (
	"bufio"
	"io"
	"strconv"

	"github.com/arl/meshdist/geom"
	"github.com/arl/meshdist/mesh"
	"github.com/arl/meshdist/status"
)

// bufSize mirrors the ~16KiB refill chunk from spec.md §6. bufio.Reader
// already implements the "buffer, refill on demand, support one byte of
// pushback" contract the spec describes by hand for the original tool's
// ad-hoc scanner; there's no third-party scanning library in the pack
// that does mesh-grammar tokenization, so this wraps the standard
// library reader instead of reimplementing its buffering logic.
const bufSize = 16 * 1024

// vrmlDelims is the VRML2 field delimiter set from spec.md §6.
const vrmlDelims = "{}[]\"\\#"

// tokenizer is a hand-rolled scanner over a buffered byte stream,
// shared by every format parser (spec.md §9: "compose a common
// tokenizer with format-specific recognizers").
type tokenizer struct {
	r    *bufio.Reader
	vrml bool // when true, ',' is whitespace and brackets are 1-char tokens
}

func newTokenizer(r io.Reader) *tokenizer {
	return &tokenizer{r: bufio.NewReaderSize(r, bufSize)}
}

// wrapTokenizer builds a tokenizer over an already-buffered reader, so
// that bytes consumed by format autodetection (which peeks into the
// same *bufio.Reader) are not re-buffered or lost.
func wrapTokenizer(br *bufio.Reader) *tokenizer {
	return &tokenizer{r: br}
}

func isSpace(b byte, vrml bool) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	case ',':
		return vrml
	}
	return false
}

func isBracket(b byte) bool {
	switch b {
	case '{', '}', '[', ']':
		return true
	}
	return false
}

// skipSpaceAndComments advances past whitespace and '#'-to-end-of-line
// comments.
func (t *tokenizer) skipSpaceAndComments() error {
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case isSpace(b, t.vrml):
			continue
		case b == '#':
			if err := t.skipToEOL(); err != nil {
				return err
			}
		default:
			return t.r.UnreadByte()
		}
	}
}

// skipRestOfLine discards any remaining tokens up to and including the
// next newline, used by OFF to ignore trailing per-vertex fields
// (spec.md §4.1: "ignore trailing fields on the line").
func (t *tokenizer) skipRestOfLine() error {
	err := t.skipToEOL()
	if err == io.EOF {
		return nil
	}
	return err
}

func (t *tokenizer) skipToEOL() error {
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

// skipQuotedString consumes a "..." string (with \" escapes), assuming
// the opening quote has already been consumed.
func (t *tokenizer) skipQuotedString() error {
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			return err
		}
		if b == '\\' {
			if _, err := t.r.ReadByte(); err != nil {
				return err
			}
			continue
		}
		if b == '"' {
			return nil
		}
	}
}

// next returns the next token: a bracket/brace as a 1-character token
// in VRML mode, or a maximal run of non-whitespace, non-bracket,
// non-comment bytes otherwise. Quoted strings are skipped whole and
// never returned as tokens (spec.md §6).
func (t *tokenizer) next() (string, error) {
	if err := t.skipSpaceAndComments(); err != nil {
		return "", err
	}
	b, err := t.r.ReadByte()
	if err != nil {
		return "", err
	}
	if t.vrml && isBracket(b) {
		return string(b), nil
	}
	if b == '"' {
		if err := t.skipQuotedString(); err != nil {
			return "", err
		}
		return t.next()
	}
	buf := []byte{b}
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return "", err
		}
		if isSpace(b, t.vrml) || b == '#' || (t.vrml && isBracket(b)) {
			t.r.UnreadByte()
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

// peekNonSpace skips whitespace and comments, then returns the next
// byte without consuming it.
func (t *tokenizer) peekNonSpace() (byte, error) {
	if err := t.skipSpaceAndComments(); err != nil {
		return 0, err
	}
	b, err := t.r.ReadByte()
	if err != nil {
		return 0, err
	}
	return b, t.r.UnreadByte()
}

func (t *tokenizer) nextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	n, perr := strconv.Atoi(tok)
	if perr != nil {
		return 0, status.Errf(status.Corrupted, "expected integer, got %q", tok)
	}
	return n, nil
}

func (t *tokenizer) nextFloat32() (float32, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	f, perr := strconv.ParseFloat(tok, 32)
	if perr != nil {
		return 0, status.Errf(status.Corrupted, "expected number, got %q", tok)
	}
	return float32(f), nil
}

// nextVec3 reads three consecutive floats as a vertex or normal.
func (t *tokenizer) nextVec3() (geom.Vec3, error) {
	x, err := t.nextFloat32()
	if err != nil {
		return geom.Vec3{}, err
	}
	y, err := t.nextFloat32()
	if err != nil {
		return geom.Vec3{}, err
	}
	z, err := t.nextFloat32()
	if err != nil {
		return geom.Vec3{}, err
	}
	return geom.New(x, y, z), nil
}

// nextFace reads three consecutive vertex indices as a face. When
// oneBased is true the indices are converted from 1-based (SMF, spec.md
// §4.1) to the mesh's 0-based convention.
func (t *tokenizer) nextFace(oneBased bool) (mesh.Face, error) {
	i0, err := t.nextInt()
	if err != nil {
		return mesh.Face{}, status.Errf(status.Corrupted, "face index: %v", err)
	}
	i1, err := t.nextInt()
	if err != nil {
		return mesh.Face{}, status.Errf(status.Corrupted, "face index: %v", err)
	}
	i2, err := t.nextInt()
	if err != nil {
		return mesh.Face{}, status.Errf(status.Corrupted, "face index: %v", err)
	}
	if oneBased {
		i0, i1, i2 = i0-1, i1-1, i2-1
	}
	return mesh.Face{V0: int32(i0), V1: int32(i1), V2: int32(i2)}, nil
}

// readLine skips leading whitespace/comments, then returns the raw
// text up to (not including) the next newline. Used for the RAW
// format's header line, whose optional trailing fields (spec.md §4.1)
// can only be told apart from the following vertex block by counting
// how many integers appear on that one line.
func (t *tokenizer) readLine() (string, error) {
	if err := t.skipSpaceAndComments(); err != nil {
		return "", err
	}
	var buf []byte
	for {
		b, err := t.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				break
			}
			return "", err
		}
		if b == '\n' {
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}
