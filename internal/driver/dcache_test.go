package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newick/internal/diag"
	"newick/internal/project"
	"newick/internal/tree"
)

func TestDiskCachePutGet(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)

	key := project.StringDigest("key")
	payload := &DiskPayload{
		Path:        "a.nwk",
		ContentHash: project.StringDigest("(A,B)"),
		Tokens:      4,
		Tree:        tree.ToWire(tree.NewNode(tree.NewLeaf("A"), tree.NewLeaf("B"))),
	}
	require.NoError(t, cache.Put(key, payload))

	var got DiskPayload
	ok, err := cache.Get(key, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, diskCacheSchemaVersion, got.Schema)
	assert.Equal(t, payload.ContentHash, got.ContentHash)
	back, err := tree.FromWire(got.Tree)
	require.NoError(t, err)
	assert.Equal(t, "(A,B)", tree.Render(back))

	ok, err = cache.Get(project.StringDigest("other"), &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Clear())
	ok, err = cache.Get(key, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)
	key := project.StringDigest("broken")
	p := cache.pathFor(key)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte{0xc1}, 0o600))

	var got DiskPayload
	ok, err := cache.Get(key, &got)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestNilDiskCache(t *testing.T) {
	var cache *DiskCache
	require.NoError(t, cache.Put(project.Digest{}, &DiskPayload{}))
	ok, err := cache.Get(project.Digest{}, &DiskPayload{})
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestParseUsesCache(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)
	path := writeTree(t, t.TempDir(), "a.nwk", "(A,(B,C))")

	first, err := Parse(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	require.NoError(t, first.Err)
	assert.False(t, first.Cached)

	second, err := Parse(context.Background(), path, Options{Cache: cache})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, tree.Equal(first.Tree, second.Tree))
	assert.Equal(t, first.Tokens, second.Tokens)

	// другие опции дают другой ключ
	third, err := Parse(context.Background(), path, Options{Cache: cache, MaxDepth: 1})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	require.Error(t, third.Err)
	assert.Equal(t, diag.SynNestingTooDeep, third.Bag.Items()[0].Code)
}

func TestParseDoesNotCacheFailures(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)
	path := writeTree(t, t.TempDir(), "bad.nwk", "(A")

	for range 2 {
		res, err := Parse(context.Background(), path, Options{Cache: cache})
		require.NoError(t, err)
		assert.False(t, res.Cached)
		assert.Error(t, res.Err)
	}
}
