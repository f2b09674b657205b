package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/meshdist/status"
)

func TestParseSMFBasic(t *testing.T) {
	src := `# a comment line
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	m, err := parseSMF(newTokenizer(strings.NewReader(src)))
	assert.NoError(t, err)
	assert.Equal(t, 3, m.NumVerts())
	assert.Equal(t, 1, m.NumFaces())
	assert.Equal(t, int32(0), m.Faces[0].V0) // converted from 1-based
}

func TestParseSMFSkipsUnknownLines(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
c 1.0 0.0 0.0
bind v 1
f 1 2 3
`
	m, err := parseSMF(newTokenizer(strings.NewReader(src)))
	assert.NoError(t, err)
	assert.Equal(t, 1, m.NumFaces())
}

func TestParseSMFOutOfRangeFace(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 5\n"
	_, err := parseSMF(newTokenizer(strings.NewReader(src)))
	var se *status.Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, status.ModelError, se.Kind)
}
