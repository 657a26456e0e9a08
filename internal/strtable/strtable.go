// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: Apache-2.0

// Package strtable looks up localized strings from per-locale JSON tables
// under the working root. Locale fallback is an explicit ordered
// candidate list: the exact tag, the bare language, then "default". Each
// candidate file is served by its own lazy cache, so a broken table for
// one locale does not poison the others.
package strtable

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/afero"

	"github.com/snipforge/snipctl/internal/decode"
	"github.com/snipforge/snipctl/internal/resource"
)

// DefaultLocale is the last candidate of every fallback chain.
const DefaultLocale = "default"

// KeyNotFoundError reports a key missing from every probed locale table.
type KeyNotFoundError struct {
	Key     string
	Locales []string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found in locales %v", e.Key, e.Locales)
}

// Table serves localized strings for one locale (plus its fallbacks).
type Table struct {
	fs     afero.Fs
	root   string
	dir    string
	locale string
	caches map[string]*resource.Cache[map[string]string]
}

// Option configures a Table.
type Option func(*Table)

// WithFs overrides the filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(t *Table) { t.fs = fsys }
}

// WithDir sets the table directory relative to the working root. The
// default is "strings".
func WithDir(dir string) Option {
	return func(t *Table) { t.dir = dir }
}

// New returns a Table rooted at root for the given locale tag
// (e.g. "de_DE"). Table files are named strings.<locale>.json.
func New(root, locale string, opts ...Option) *Table {
	t := &Table{
		fs:     afero.NewOsFs(),
		root:   root,
		dir:    "strings",
		locale: locale,
		caches: map[string]*resource.Cache[map[string]string]{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Candidates returns the ordered locale fallback chain for tag.
func Candidates(tag string) []string {
	out := []string{}
	if tag != "" && tag != DefaultLocale {
		out = append(out, tag)
		if lang, _, found := strings.Cut(tag, "_"); found && lang != "" {
			out = append(out, lang)
		}
	}
	return append(out, DefaultLocale)
}

// Lookup returns the string for key from the first locale table in the
// fallback chain that loads and contains it.
func (t *Table) Lookup(ctx context.Context, key string) (string, error) {
	locales := Candidates(t.locale)

	for _, locale := range locales {
		table, err := t.cacheFor(locale).Get(ctx)
		if err != nil {
			// A missing or broken table is just a failed candidate.
			log.WithError(err).Debugf("locale %s unavailable", locale)
			continue
		}
		if s, ok := table[key]; ok {
			return s, nil
		}
	}

	return "", &KeyNotFoundError{Key: key, Locales: locales}
}

func (t *Table) cacheFor(locale string) *resource.Cache[map[string]string] {
	if c, ok := t.caches[locale]; ok {
		return c
	}

	path := filepath.Join(t.dir, "strings."+locale+".json")
	c := resource.New(t.root, decode.JSON[map[string]string](),
		resource.WithPath[map[string]string](path),
		resource.WithFs[map[string]string](t.fs),
	)
	t.caches[locale] = c
	return c
}
