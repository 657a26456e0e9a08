// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

// Package respath resolves configured asset paths against a working root.
//
// Resolution is an ordered list of strategies, each with its own accept
// predicate, so the fallback order is auditable and testable on its own:
//
//  1. absolute     - an absolute configured path is returned unchanged.
//  2. root-parent  - root/../configured, accepted if it exists on disk.
//  3. root         - root/configured, always accepted.
//
// Resolution never fails and never touches file contents; whether the
// resolved path is actually readable is discovered at read time.
package respath

import (
	"errors"
	"path/filepath"

	"github.com/apex/log"
	"github.com/spf13/afero"
)

// ErrPathInvalid is returned when a working root update names a directory
// that does not exist.
var ErrPathInvalid = errors.New("working root does not exist")

// Candidate is one resolution candidate produced for a configured path.
type Candidate struct {
	Strategy string
	Path     string
	Accepted bool
}

type strategy struct {
	name      string
	candidate func(root, configured string) string
	accept    func(fs afero.Fs, candidate string) bool
}

var strategies = []strategy{
	{
		name:      "absolute",
		candidate: func(_, configured string) string { return configured },
		accept:    func(_ afero.Fs, c string) bool { return filepath.IsAbs(c) },
	},
	{
		name:      "root-parent",
		candidate: func(root, configured string) string { return filepath.Join(root, "..", configured) },
		accept:    exists,
	},
	{
		name:      "root",
		candidate: func(root, configured string) string { return filepath.Join(root, configured) },
		accept:    func(afero.Fs, string) bool { return true },
	},
}

// Resolver resolves configured paths against its working root.
type Resolver struct {
	fs   afero.Fs
	root string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFs overrides the filesystem, typically with an in-memory one in tests.
func WithFs(fs afero.Fs) Option {
	return func(r *Resolver) { r.fs = fs }
}

// New returns a Resolver rooted at root. The root is not validated here;
// use SetRoot to change it with validation.
func New(root string, opts ...Option) *Resolver {
	r := &Resolver{
		fs:   afero.NewOsFs(),
		root: root,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the current working root.
func (r *Resolver) Root() string {
	return r.root
}

// SetRoot replaces the working root. It fails with ErrPathInvalid if
// newRoot does not exist, in which case the prior root stays in effect.
func (r *Resolver) SetRoot(newRoot string) error {
	if !r.Exists(newRoot) {
		return ErrPathInvalid
	}
	r.root = newRoot
	return nil
}

// Resolve turns a configured path into one absolute-or-rooted candidate
// path using the strategy order above. It never fails.
func (r *Resolver) Resolve(configured string) string {
	for _, s := range strategies {
		c := s.candidate(r.root, configured)
		if s.accept(r.fs, c) {
			log.WithFields(log.Fields{
				"strategy": s.name,
				"path":     c,
			}).Debugf("resolved %s", configured)
			return c
		}
	}
	// The root strategy always accepts; this is unreachable.
	return filepath.Join(r.root, configured)
}

// Candidates reports every candidate the strategies would produce for
// configured, with each predicate's verdict. Resolve picks the first
// accepted entry.
func (r *Resolver) Candidates(configured string) []Candidate {
	out := make([]Candidate, 0, len(strategies))
	for _, s := range strategies {
		c := s.candidate(r.root, configured)
		out = append(out, Candidate{
			Strategy: s.name,
			Path:     c,
			Accepted: s.accept(r.fs, c),
		})
	}
	return out
}

// Exists probes for path. Any I/O error collapses to false.
func (r *Resolver) Exists(path string) bool {
	return exists(r.fs, path)
}

func exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
