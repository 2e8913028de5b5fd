package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.em", "*b* a\\")
	cache, err := OpenDiskCache("emblem", filepath.Join(dir, "cache"))
	require.NoError(t, err)
	opts := Options{Cache: cache}

	first, err := ParseFiles(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	second, err := ParseFiles(context.Background(), []string{path}, opts)
	require.NoError(t, err)

	cold, warm := first.Files[0], second.Files[0]
	assert.False(t, cold.Cached)
	assert.True(t, warm.Cached)
	assert.Nil(t, warm.Builder)
	assert.Equal(t, cold.Stats, warm.Stats)

	require.Equal(t, 1, cold.Bag.Len())
	require.Equal(t, cold.Bag.Len(), warm.Bag.Len())
	for i, want := range cold.Bag.Items() {
		got := warm.Bag.Items()[i]
		assert.Equal(t, want.Code, got.Code)
		assert.Equal(t, want.Severity, got.Severity)
		assert.Equal(t, want.Message, got.Message)
		assert.Equal(t, want.Primary, got.Primary)
		assert.Equal(t, len(want.Notes), len(got.Notes))
	}
	assert.False(t, warm.Failed())
	assert.Equal(t, map[string]int{"bf": 1}, warm.Stats.Calls)

	// другие опции разбора - другой ключ
	third, err := ParseFiles(context.Background(), []string{path}, Options{Cache: cache, Bold: []string{"**"}})
	require.NoError(t, err)
	assert.False(t, third.Files[0].Cached)
}

func TestFingerprint(t *testing.T) {
	base := Options{}
	assert.Equal(t, base.fingerprint(), Options{}.fingerprint())
	assert.NotEqual(t, base.fingerprint(), Options{Italic: []string{}}.fingerprint())
	assert.NotEqual(t, base.fingerprint(), Options{Italic: []string{"_"}}.fingerprint())
	assert.NotEqual(t, base.fingerprint(), Options{Recover: true}.fingerprint())
	assert.NotEqual(t, Options{Italic: []string{"a", "b"}}.fingerprint(), Options{Italic: []string{"ab"}}.fingerprint())
	// scheduling and rendering options do not matter
	assert.Equal(t, base.fingerprint(), Options{Jobs: 4, Timings: true}.fingerprint())
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := OpenDiskCache("emblem", t.TempDir())
	require.NoError(t, err)

	var key Digest
	key[0] = 1
	require.NoError(t, cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}))

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestDiskCacheDropAll(t *testing.T) {
	root := filepath.Join(t.TempDir(), "c")
	cache, err := OpenDiskCache("emblem", root)
	require.NoError(t, err)

	var key Digest
	require.NoError(t, cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion, Path: "x.em"}))
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, "x.em", out.Path)

	require.NoError(t, cache.DropAll())
	hit, err = cache.Get(key, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	_, err = os.Stat(root)
	assert.NoError(t, err)
}

func TestOpenDiskCacheXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	cache, err := OpenDiskCache("emblem", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "emblem"), cache.Dir())

	var nilCache *DiskCache
	hit, err := nilCache.Get(Digest{}, &DiskPayload{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, nilCache.Put(Digest{}, &DiskPayload{}))
}
