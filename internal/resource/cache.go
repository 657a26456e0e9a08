// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/apex/log"
	"github.com/spf13/afero"

	"github.com/snipforge/snipctl/internal/decode"
	"github.com/snipforge/snipctl/internal/respath"
)

// ErrNotConfigured is returned by Get and Reload when no path has ever
// been configured on the cache. No I/O is performed in that case.
var ErrNotConfigured = errors.New("no resource path configured")

// ErrPathInvalid is returned by SetRoot when the new working root does
// not exist.
var ErrPathInvalid = respath.ErrPathInvalid

// State is the cache lifecycle state. It is tracked explicitly and never
// inferred from the payload: an empty-but-valid decoded value is still
// Loaded.
type State int

const (
	// Unconfigured means no path has ever been set.
	Unconfigured State = iota
	// Empty means a path is set but no value is cached.
	Empty
	// Loaded means a decoded value is cached.
	Loaded
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case Empty:
		return "empty"
	case Loaded:
		return "loaded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Cache lazily loads and holds one decoded value of type T.
type Cache[T any] struct {
	fs       afero.Fs
	resolver *respath.Resolver
	decoder  decode.Decoder[T]
	path     string
	value    T
	state    State
}

// Option configures a Cache at construction.
type Option[T any] func(*Cache[T])

// WithPath sets the configured path; the cache starts Empty instead of
// Unconfigured.
func WithPath[T any](path string) Option[T] {
	return func(c *Cache[T]) {
		c.path = path
		c.state = Empty
	}
}

// WithFs overrides the filesystem for both reads and path resolution.
func WithFs[T any](fsys afero.Fs) Option[T] {
	return func(c *Cache[T]) { c.fs = fsys }
}

// New constructs a cache rooted at root that decodes with decoder. With
// no WithPath option the cache is Unconfigured.
func New[T any](root string, decoder decode.Decoder[T], opts ...Option[T]) *Cache[T] {
	c := &Cache[T]{
		fs:      afero.NewOsFs(),
		decoder: decoder,
		state:   Unconfigured,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resolver = respath.New(root, respath.WithFs(c.fs))
	return c
}

// State returns the current lifecycle state.
func (c *Cache[T]) State() State {
	return c.state
}

// Path returns the configured path, which may be empty when Unconfigured.
func (c *Cache[T]) Path() string {
	return c.path
}

// Root returns the current working root.
func (c *Cache[T]) Root() string {
	return c.resolver.Root()
}

// Resolver exposes the cache's path resolver for callers that need to
// audit resolution candidates.
func (c *Cache[T]) Resolver() *respath.Resolver {
	return c.resolver
}

// Get returns the cached value, loading it on first use. A hit performs
// no I/O. A failed load leaves the cache Empty; a previously cached value
// is never evicted by a failed Get.
func (c *Cache[T]) Get(ctx context.Context) (T, error) {
	switch c.state {
	case Unconfigured:
		var zero T
		c.event(log.WarnLevel, "get failed", "", ErrNotConfigured)
		return zero, ErrNotConfigured
	case Loaded:
		// No resolution on a hit either; Resolve probes the disk.
		c.event(log.InfoLevel, "cache hit", "", nil)
		return c.value, nil
	}

	value, resolved, err := c.load(ctx)
	if err != nil {
		var zero T
		c.event(levelFor(err), "load failed", resolved, err)
		return zero, err
	}

	c.value = value
	c.state = Loaded
	c.event(log.InfoLevel, "loaded", resolved, nil)
	return c.value, nil
}

// Reload drops any cached value and re-reads from disk. It never returns
// a stale value: a failed reload leaves the cache Empty rather than
// restoring the previous value.
func (c *Cache[T]) Reload(ctx context.Context) (T, error) {
	if c.state == Unconfigured {
		var zero T
		c.event(log.WarnLevel, "reload failed", "", ErrNotConfigured)
		return zero, ErrNotConfigured
	}

	var zero T
	c.value = zero
	c.state = Empty

	value, resolved, err := c.load(ctx)
	if err != nil {
		c.event(levelFor(err), "reload failed", resolved, err)
		return zero, err
	}

	c.value = value
	c.state = Loaded
	c.event(log.InfoLevel, "reloaded", resolved, nil)
	return c.value, nil
}

// Unload drops any cached value. Idempotent; Unconfigured stays
// Unconfigured.
func (c *Cache[T]) Unload() {
	var zero T
	c.value = zero
	if c.state == Loaded {
		c.state = Empty
	}
	c.event(log.InfoLevel, "unloaded", "", nil)
}

// SetPath replaces the configured path. With no value cached the path is
// simply committed and the cache is Empty. With a value cached the new
// path is committed and a reload against it is attempted immediately; on
// failure the cache is Empty under the new path and the error is
// returned.
func (c *Cache[T]) SetPath(ctx context.Context, newPath string) error {
	wasLoaded := c.state == Loaded

	c.path = newPath
	if c.state == Unconfigured {
		c.state = Empty
	}

	if !wasLoaded {
		c.event(log.InfoLevel, "path updated", "", nil)
		return nil
	}

	_, err := c.Reload(ctx)
	return err
}

// SetRoot replaces the working root after validating that it exists. It
// does not invalidate a cached value; the new root only affects
// subsequent resolutions.
func (c *Cache[T]) SetRoot(newRoot string) error {
	if err := c.resolver.SetRoot(newRoot); err != nil {
		c.event(log.WarnLevel, "root update rejected", newRoot, err)
		return err
	}
	c.event(log.InfoLevel, "root updated", newRoot, nil)
	return nil
}

// load resolves, reads, and decodes the configured path. The only
// suspension point is the read.
func (c *Cache[T]) load(ctx context.Context) (T, string, error) {
	var zero T

	resolved := c.resolver.Resolve(c.path)

	if err := ctx.Err(); err != nil {
		return zero, resolved, err
	}

	data, err := afero.ReadFile(c.fs, resolved)
	if err != nil {
		return zero, resolved, fmt.Errorf("failed to read %s: %w", resolved, err)
	}

	value, err := c.decoder(data, resolved)
	if err != nil {
		return zero, resolved, err
	}

	return value, resolved, nil
}

// event emits the one structured diagnostic for an operation. Events
// never affect cache control flow.
func (c *Cache[T]) event(level log.Level, msg, resolved string, err error) {
	entry := log.WithFields(log.Fields{
		"path":  c.path,
		"root":  c.resolver.Root(),
		"state": c.state.String(),
	})
	if resolved != "" {
		entry = entry.WithField("resolved", resolved)
	}
	if err != nil {
		entry = entry.WithError(err)
	}

	switch level {
	case log.InfoLevel:
		entry.Info(msg)
	case log.WarnLevel:
		entry.Warn(msg)
	default:
		entry.Error(msg)
	}
}

// levelFor maps a load failure to its event level: malformed content is
// an error, everything else (missing file, I/O) a warning.
func levelFor(err error) log.Level {
	var derr *decode.Error
	if errors.As(err, &derr) {
		return log.ErrorLevel
	}
	return log.WarnLevel
}

// IsNotFound reports whether err is a missing-file read failure, as
// opposed to another I/O error or a decode failure.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
