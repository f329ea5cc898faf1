package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPageSize_UnmarshalPreset(t *testing.T) {
	var opts Options
	err := yaml.Unmarshal([]byte("page:\n  size: a4\n"), &opts)
	require.NoError(t, err)
	assert.Equal(t, pagePresets["a4"], opts.Page.Size)
}

func TestPageSize_UnmarshalExplicit(t *testing.T) {
	var opts Options
	err := yaml.Unmarshal([]byte("page:\n  size:\n    width: 1000\n    height: 2000\n"), &opts)
	require.NoError(t, err)
	assert.Equal(t, PageSize{Width: 1000, Height: 2000}, opts.Page.Size)
}

func TestPageSize_UnmarshalUnknownPreset(t *testing.T) {
	var opts Options
	err := yaml.Unmarshal([]byte("page:\n  size: tabloid\n"), &opts)
	assert.Error(t, err)
}

func TestParsePageSizeToken(t *testing.T) {
	sz, err := ParsePageSizeToken("letter")
	require.NoError(t, err)
	assert.Equal(t, pagePresets["letter"], sz)

	sz, err = ParsePageSizeToken("500x700")
	require.NoError(t, err)
	assert.Equal(t, PageSize{Width: 500, Height: 700}, sz)

	_, err = ParsePageSizeToken("nonsense")
	assert.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, pagePresets["a4"], o.Page.Size)
	assert.False(t, o.Score.JustifyFinalBarline)
}
