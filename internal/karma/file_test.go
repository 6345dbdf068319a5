package karma

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFile_JSONForms(t *testing.T) {
	data, err := json.Marshal([]File{Pattern("a.js"), ServedOnly("b.map")})
	require.NoError(t, err)
	assert.JSONEq(t, `["a.js",{"pattern":"b.map","included":false,"served":true}]`, string(data))

	var files []File
	require.NoError(t, json.Unmarshal([]byte(`["x.js",{"pattern":"y.js","watched":false}]`), &files))
	assert.Equal(t, []File{Pattern("x.js"), {Pattern: "y.js", Included: true, Served: true, Descriptor: true}}, files)
}

func TestFile_JSONRejectsInvalid(t *testing.T) {
	var f File
	assert.Error(t, json.Unmarshal([]byte(`42`), &f))
	assert.Error(t, json.Unmarshal([]byte(`{"included":true}`), &f))
}

func TestFile_YAMLForms(t *testing.T) {
	doc := `
- dist/omnipath.min.js
- pattern: dist/*.map
  included: false
- pattern: test/data/*.json
  served: false
`
	var files []File
	require.NoError(t, yaml.Unmarshal([]byte(doc), &files))
	assert.Equal(t, []File{
		Pattern("dist/omnipath.min.js"),
		ServedOnly("dist/*.map"),
		{Pattern: "test/data/*.json", Included: true, Served: false, Descriptor: true},
	}, files)

	in := []File{Pattern("a.js"), ServedOnly("b.map")}
	out, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(out), "- a.js\n")

	var back []File
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, in, back)
}

func TestFile_YAMLRejectsSequence(t *testing.T) {
	var files []File
	err := yaml.Unmarshal([]byte("- [a, b]\n"), &files)
	assert.ErrorContains(t, err, "must be a string or a mapping")
}
