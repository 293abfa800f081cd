package binding

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData() map[string]any {
	return map[string]any{
		"w": 150.0,
		"score": map[string]any{
			"title": "Etude",
			"voices": []any{
				map[string]any{"slur": "480mm"},
				map[string]any{"slur": "12mm"},
			},
		},
		"tags": []string{"a", "b"},
	}
}

func TestInterpolate(t *testing.T) {
	data := testData()
	assert.Equal(t, "150mm", Interpolate("${w}mm", data))
	assert.Equal(t, "Etude: 12mm", Interpolate("${score.title}: ${ score.voices[1].slur }", data))
	assert.Equal(t, "b", Interpolate("${tags[1]}", data))
	assert.Equal(t, "${missing}", Interpolate("${missing}", data))
	assert.Equal(t, "${w}", Interpolate("${w}", nil))
	assert.Equal(t, "plain", Interpolate("plain", data))
}

func TestResolveReportsMissingPath(t *testing.T) {
	out, err := Resolve("${score.voices[3].slur}", testData())
	require.Error(t, err)
	var ue *UnresolvedError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "score.voices[3].slur", ue.Path)
	assert.Equal(t, "${score.voices[3].slur}", out)

	out, err = Resolve("${score.voices[0].slur}", testData())
	require.NoError(t, err)
	assert.Equal(t, "480mm", out)
}

func TestLookupRejectsMalformedPaths(t *testing.T) {
	for _, path := range []string{"score..title", "tags[x]", "tags[0", "tags]0["} {
		_, ok := Lookup(testData(), path)
		assert.False(t, ok, path)
	}
}

func TestHasPlaceholder(t *testing.T) {
	assert.True(t, HasPlaceholder("a ${b} c"))
	assert.False(t, HasPlaceholder("$b"))
}
