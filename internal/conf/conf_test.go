package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600)
	require.NoError(t, err)
}

func TestMerge(t *testing.T) {
	base := map[string]any{
		"vm": map[string]any{
			"a":    1,
			"name": "qwer",
			"c":    3,
		},
	}
	overlay := map[string]any{
		"vm": map[string]any{
			"name": "tzui",
		},
	}
	Merge(base, overlay)

	want := map[string]any{
		"vm": map[string]any{
			"a":    1,
			"name": "tzui",
			"c":    3,
		},
	}
	assert.Equal(t, want, base)
}

func TestMergeListReplaced(t *testing.T) {
	base := map[string]any{"roles": []any{"a", "b"}}
	overlay := map[string]any{"roles": []any{"c"}}
	Merge(base, overlay)
	assert.Equal(t, []any{"c"}, base["roles"])
}

func TestLoaderOverlay(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "cfme_data", `
management_systems:
  vsphere5:
    name: vsphere 5
    type: virtualcenter
    ipaddress: 10.0.0.1
`)
	writeYAML(t, dir, "cfme_data.local", `
management_systems:
  vsphere5:
    ipaddress: 10.0.0.99
`)

	loader := NewLoader(dir)
	got, err := loader.Load("cfme_data")
	require.NoError(t, err)

	systems := got["management_systems"].(map[string]any)
	vsphere := systems["vsphere5"].(map[string]any)
	assert.Equal(t, "vsphere 5", vsphere["name"])
	assert.Equal(t, "10.0.0.99", vsphere["ipaddress"])
}

func TestLoaderCaching(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, "env", `base_url: https://example.com`)

	loader := NewLoader(dir)
	first, err := loader.Load("env")
	require.NoError(t, err)

	// a change on disk is invisible until the cache is reset
	writeYAML(t, dir, "env", `base_url: https://changed.example.com`)
	second, err := loader.Load("env")
	require.NoError(t, err)
	assert.Equal(t, first["base_url"], second["base_url"])

	loader.Reset()
	third, err := loader.Load("env")
	require.NoError(t, err)
	assert.Equal(t, "https://changed.example.com", third["base_url"])
}

func TestLoaderNotFound(t *testing.T) {
	loader := NewLoader(t.TempDir())
	_, err := loader.Load("nope")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.Name)
}
