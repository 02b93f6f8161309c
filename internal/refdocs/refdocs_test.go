package refdocs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecs(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "platform_specs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStoreLoadsFromFile(t *testing.T) {
	path := writeSpecs(t, t.TempDir(), `[
		{"platform":"instagram","max_caption_length":2200,"max_media_items":10,"allowed_kinds":["ad","video"]},
		{"platform":"pinterest","max_caption_length":500,"max_media_items":5,"allowed_kinds":["ad"]}
	]`)

	store := NewStore(path)
	specs := store.Specs()

	spec, ok := specs.Get("pinterest")
	require.True(t, ok)
	assert.Equal(t, 500, spec.MaxCaptionLength)
	assert.Equal(t, 5, spec.MaxMediaItems)
	assert.True(t, spec.AllowsKind("ad"))
	assert.False(t, spec.AllowsKind("video"))

	_, ok = specs.Get("myspace")
	assert.False(t, ok)

	assert.Len(t, specs.Platforms(), 2)
}

func TestStoreFallsBackToBuiltins(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	specs := store.Specs()

	spec, ok := specs.Get("instagram")
	require.True(t, ok)
	assert.Equal(t, 2200, spec.MaxCaptionLength)

	_, ok = specs.Get("x")
	assert.True(t, ok)
}

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writeSpecs(t, dir, `[{"platform":"instagram","max_caption_length":2200,"max_media_items":10,"allowed_kinds":["ad"]}]`)

	store := NewStore(path)
	_, ok := store.Specs().Get("tiktok")
	require.False(t, ok)

	writeSpecs(t, dir, `[
		{"platform":"instagram","max_caption_length":2200,"max_media_items":10,"allowed_kinds":["ad"]},
		{"platform":"tiktok","max_caption_length":2200,"max_media_items":10,"allowed_kinds":["video"]}
	]`)
	require.NoError(t, store.Reload())

	_, ok = store.Specs().Get("tiktok")
	assert.True(t, ok)
}

func TestStoreReloadKeepsSnapshotOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeSpecs(t, dir, `[{"platform":"instagram","max_caption_length":2200,"max_media_items":10,"allowed_kinds":["ad"]}]`)

	store := NewStore(path)
	_, ok := store.Specs().Get("instagram")
	require.True(t, ok)

	writeSpecs(t, dir, `{broken`)
	require.Error(t, store.Reload())

	_, ok = store.Specs().Get("instagram")
	assert.True(t, ok, "a failed reload keeps serving the previous snapshot")
}
