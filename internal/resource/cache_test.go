// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipforge/snipctl/internal/decode"
)

// countingFs counts file opens so tests can assert how many reads an
// operation performed.
type countingFs struct {
	afero.Fs
	opens int
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.opens++
	return c.Fs.Open(name)
}

func newCountingFs(t *testing.T, files map[string]string) *countingFs {
	t.Helper()

	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0o644))
	}
	return &countingFs{Fs: mem}
}

func newTable(fs afero.Fs, root, path string) *Cache[map[string]int] {
	return New(root, decode.JSON[map[string]int](),
		WithPath[map[string]int](path),
		WithFs[map[string]int](fs),
	)
}

func TestGet_LazyLoadAndHit(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": 1}`,
	})
	c := newTable(fs, "/proj", "a.json")

	assert.Equal(t, Empty, c.State())

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, v)
	assert.Equal(t, Loaded, c.State())
	assert.Equal(t, 1, fs.opens)

	// Second call is a pure cache hit: identical value, no second read.
	v2, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, v, v2)
	assert.Equal(t, 1, fs.opens)
}

func TestGet_Unconfigured(t *testing.T) {
	fs := newCountingFs(t, nil)
	c := New("/proj", decode.JSON[map[string]int](),
		WithFs[map[string]int](fs))

	assert.Equal(t, Unconfigured, c.State())

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 0, fs.opens)
	assert.Equal(t, Unconfigured, c.State())
}

func TestGet_NotFound(t *testing.T) {
	fs := newCountingFs(t, nil)
	c := newTable(fs, "/proj", "missing.json")

	_, err := c.Get(context.Background())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, Empty, c.State())
}

func TestGet_DecodeError(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": `,
	})
	c := newTable(fs, "/proj", "a.json")

	_, err := c.Get(context.Background())
	require.Error(t, err)

	var derr *decode.Error
	require.ErrorAs(t, err, &derr)
	assert.False(t, IsNotFound(err))
	assert.Equal(t, Empty, c.State())
}

func TestGet_LastKnownGood(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": 1}`,
	})
	c := newTable(fs, "/proj", "a.json")

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, v)

	// Corrupt the backing file. Get keeps serving the cached copy.
	require.NoError(t, afero.WriteFile(fs, "/proj/a.json", []byte(`{"x": `), 0o644))

	v, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, v)
	assert.Equal(t, Loaded, c.State())
}

func TestReload_PicksUpChanges(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": 1}`,
	})
	c := newTable(fs, "/proj", "a.json")

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, v)

	// Rewrite the backing file. Get still serves the cached copy;
	// Reload returns the new content.
	require.NoError(t, afero.WriteFile(fs, "/proj/a.json", []byte(`{"x": 2}`), 0o644))

	v, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, v)

	v, err = c.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 2}, v)
}

func TestReload_FailureDropsValue(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": 1}`,
	})
	c := newTable(fs, "/proj", "a.json")

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	// Reload deliberately does not preserve last-known-good.
	require.NoError(t, afero.WriteFile(fs, "/proj/a.json", []byte(`{"x": `), 0o644))

	_, err = c.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, Empty, c.State())

	// A later fix is picked up again.
	require.NoError(t, afero.WriteFile(fs, "/proj/a.json", []byte(`{"x": 3}`), 0o644))

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 3}, v)
}

func TestReload_Unconfigured(t *testing.T) {
	fs := newCountingFs(t, nil)
	c := New("/proj", decode.JSON[map[string]int](),
		WithFs[map[string]int](fs))

	_, err := c.Reload(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 0, fs.opens)
}

func TestUnload(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": 1}`,
	})
	c := newTable(fs, "/proj", "a.json")

	_, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fs.opens)

	c.Unload()
	assert.Equal(t, Empty, c.State())

	// Idempotent.
	c.Unload()
	assert.Equal(t, Empty, c.State())

	// Unload followed by Get triggers exactly one fresh read.
	_, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fs.opens)
}

func TestSetPath_NoValueCached(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/b.json": `{"y": 9}`,
	})
	c := newTable(fs, "/proj", "a.json")

	// No value cached: the path is simply replaced, no I/O.
	require.NoError(t, c.SetPath(context.Background(), "b.json"))
	assert.Equal(t, "b.json", c.Path())
	assert.Equal(t, Empty, c.State())
	assert.Equal(t, 0, fs.opens)

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"y": 9}, v)
}

func TestSetPath_Unconfigured(t *testing.T) {
	fs := newCountingFs(t, nil)
	c := New("/proj", decode.JSON[map[string]int](),
		WithFs[map[string]int](fs))

	require.NoError(t, c.SetPath(context.Background(), "a.json"))
	assert.Equal(t, Empty, c.State())
}

func TestSetPath_ValueCachedReloads(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": 1}`,
		"/proj/b.json": `{"y": 2}`,
	})
	c := newTable(fs, "/proj", "a.json")

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	// A cached value forces an immediate reload against the new path.
	require.NoError(t, c.SetPath(context.Background(), "b.json"))
	assert.Equal(t, Loaded, c.State())

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"y": 2}, v)
}

func TestSetPath_ReloadFailureCommitsPath(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": 1}`,
		"/proj/b.json": `{"y": `,
	})
	c := newTable(fs, "/proj", "a.json")

	_, err := c.Get(context.Background())
	require.NoError(t, err)

	// The new path is committed and the old value discarded even though
	// the reload fails.
	err = c.SetPath(context.Background(), "b.json")
	require.Error(t, err)
	assert.Equal(t, "b.json", c.Path())
	assert.Equal(t, Empty, c.State())

	_, err = c.Get(context.Background())
	require.Error(t, err)
}

func TestSetRoot(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json":  `{"x": 1}`,
		"/other/a.json": `{"x": 2}`,
	})
	c := newTable(fs, "/proj", "a.json")

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, v)

	// A root change does not invalidate the cached value...
	require.NoError(t, c.SetRoot("/other"))
	v, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, v)

	// ...it only affects subsequent resolutions.
	v, err = c.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 2}, v)
}

func TestSetRoot_MissingRootRejected(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/a.json": `{"x": 1}`,
	})
	c := newTable(fs, "/proj", "a.json")

	err := c.SetRoot("/does/not/exist")
	assert.ErrorIs(t, err, ErrPathInvalid)
	assert.Equal(t, "/proj", c.Root())

	// A subsequent Get still resolves against the old root.
	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, v)
}

func TestGet_ResolvesRootParentFirst(t *testing.T) {
	// Working root /proj/ext, configured data.json; only /proj/data.json
	// exists, so the parent copy is the one that loads.
	fs := newCountingFs(t, map[string]string{
		"/proj/data.json": `{"x": 7}`,
	})
	c := newTable(fs, "/proj/ext", "data.json")

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 7}, v)
}

func TestGet_TextDecoder(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/proj/banner.txt": "###\n# #\n###",
	})
	c := New("/proj", decode.Text(),
		WithPath[string]("banner.txt"),
		WithFs[string](fs),
	)

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "###\n# #\n###", v)
}

func TestGet_AbsolutePath(t *testing.T) {
	fs := newCountingFs(t, map[string]string{
		"/elsewhere/a.json": `{"x": 4}`,
	})
	c := newTable(fs, "/proj", "/elsewhere/a.json")

	v, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 4}, v)
	assert.Equal(t, "/elsewhere/a.json", filepath.Clean(c.Resolver().Resolve(c.Path())))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unconfigured", Unconfigured.String())
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "loaded", Loaded.String())
}
