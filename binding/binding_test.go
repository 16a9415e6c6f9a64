package binding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData(t *testing.T) any {
	t.Helper()
	data, err := Load(`{"user":{"name":"Ada","tags":["a","b"]},"items":[{"title":"Pen","price":3},{"title":"Ink","price":2.5}]}`)
	require.NoError(t, err)
	return data
}

func TestLookup(t *testing.T) {
	data := sampleData(t)
	tests := map[string]string{
		"user.name":      "Ada",
		"user.tags[1]":   "b",
		"items[0].title": "Pen",
		"items[0].price": "3",
		"items[1].price": "2.5",
		" user.name ":    "Ada",
	}
	for path, want := range tests {
		got, err := Lookup(data, path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestLookupErrors(t *testing.T) {
	data := sampleData(t)
	for _, path := range []string{"user.age", "items[5].title", "user.name.first", "user.tags[x]", "items[0", ""} {
		_, err := Lookup(data, path)
		require.Error(t, err, path)
		var pe *PathError
		assert.ErrorAs(t, err, &pe, path)
	}
	_, err := Lookup(data, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestExpand 缺失的路径保留原占位符。
func TestExpand(t *testing.T) {
	data := sampleData(t)
	assert.Equal(t, "Hi Ada, Pen x3", Expand("Hi ${user.name}, ${items[0].title} x${ items[0].price }", data))
	assert.Equal(t, "Hi ${user.age}", Expand("Hi ${user.age}", data))
	assert.Equal(t, "Hi ${user.name}", Expand("Hi ${user.name}", nil))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "data.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("title = \"报告\"\n\n[[rows]]\nname = \"x\"\n"), 0o644))
	data, err := Load(tomlPath)
	require.NoError(t, err)
	got, err := Lookup(data, "rows[0].name")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
	got, err = Lookup(data, "title")
	require.NoError(t, err)
	assert.Equal(t, "报告", got)

	jsonPath := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"n": 1}`), 0o644))
	data, err = Load(jsonPath)
	require.NoError(t, err)
	got, err = Lookup(data, "n")
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	data, err = Load("  ")
	require.NoError(t, err)
	assert.Nil(t, data)
}
