package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arl/meshdist/engine"
)

func TestMarshalUnmarshalYAMLFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	in := engine.Settings{Frequency: 6, RelativeSampling: true, RelativeStep: 0.05, Symmetric: true}

	assert.NoError(t, marshalYAMLFile(path, in))

	var out engine.Settings
	assert.NoError(t, unmarshalYAMLFile(path, &out))
	assert.Equal(t, in, out)
}

func TestConfirmIfExistsReturnsTrueWhenFileAbsent(t *testing.T) {
	ok, err := confirmIfExists(filepath.Join(t.TempDir(), "nope.yaml"), "overwrite?")
	assert.NoError(t, err)
	assert.True(t, ok)
}
