package loader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/meshdist/status"
)

const inventorTriangle = `#Inventor V2.1 ascii

Separator {
  Coordinate3 {
    point [ 0 0 0, 1 0 0, 0 1 0 ]
  }
  IndexedFaceSet {
    coordIndex [ 0, 1, 2, -1 ]
  }
}
`

func TestParseInventorBasic(t *testing.T) {
	m, err := parseInventor(newTokenizer(strings.NewReader(inventorTriangle)))
	assert.NoError(t, err)
	assert.Equal(t, 3, m.NumVerts())
	assert.Equal(t, 1, m.NumFaces())
}

func TestParseInventorMissingCoordinate3(t *testing.T) {
	src := `Separator {
  IndexedFaceSet { coordIndex [ 0, 1, 2, -1 ] }
}
`
	_, err := parseInventor(newTokenizer(strings.NewReader(src)))
	var se *status.Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, status.ModelError, se.Kind)
}

func TestParseInventorMissingIndexedFaceSet(t *testing.T) {
	src := `Separator {
  Coordinate3 { point [ 0 0 0, 1 0 0, 0 1 0 ] }
}
`
	_, err := parseInventor(newTokenizer(strings.NewReader(src)))
	var se *status.Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, status.ModelError, se.Kind)
}

func TestParseInventorFaceIndexOutOfRange(t *testing.T) {
	src := `Separator {
  Coordinate3 { point [ 0 0 0, 1 0 0, 0 1 0 ] }
  IndexedFaceSet { coordIndex [ 0, 1, 5, -1 ] }
}
`
	_, err := parseInventor(newTokenizer(strings.NewReader(src)))
	var se *status.Error
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, status.ModelError, se.Kind)
}
