// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

// Package manifest builds the files.json / files.min.json manifests that
// describe one directory of editor assets. Entries embed text content as
// lines and structured content as the parsed value; anything else is
// referenced by relative path.
package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/snipforge/snipctl/internal/decode"
)

const (
	// FileName is the indented manifest written next to the assets.
	FileName = "files.json"
	// MinFileName is the minified copy.
	MinFileName = "files.min.json"
)

// Entry kinds. Kind "path" means the content is referenced, not embedded;
// structured assets that fail to parse degrade to "path" so one broken
// table does not sink the whole manifest.
const (
	KindDir     = "dir"
	KindFile    = "file"
	KindJSON    = "json"
	KindPath    = "path"
	KindUnknown = "Unknown"
)

// Entry is one asset in the manifest. The JSON keys are the manifest
// wire format consumed by the editor side.
type Entry struct {
	Name    string `json:"fileName"`
	Content any    `json:"fileContent"`
	Kind    string `json:"fileType"`
	Parent  string `json:"fileParentDirectory"`
}

// Row is one line of the human listing for an entry.
type Row struct {
	Name     string
	Kind     string
	Size     string
	Modified string
}

// Builder scans one asset directory and produces manifest entries.
type Builder struct {
	fs  afero.Fs
	dir string
}

// Option configures a Builder.
type Option func(*Builder)

// WithFs overrides the filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(b *Builder) { b.fs = fsys }
}

// NewBuilder returns a Builder for the asset directory dir.
func NewBuilder(dir string, opts ...Option) *Builder {
	b := &Builder{
		fs:  afero.NewOsFs(),
		dir: dir,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build scans the directory (one level, like the manifests the editor
// consumes) and returns entries sorted by name. The manifest's own
// outputs are skipped.
func (b *Builder) Build() ([]Entry, error) {
	infos, err := afero.ReadDir(b.fs, b.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset directory %s: %w", b.dir, err)
	}

	parent := filepath.Base(b.dir)

	// Non-nil so an assetless directory still marshals as [].
	entries := []Entry{}
	for _, info := range infos {
		name := info.Name()
		if name == FileName || name == MinFileName {
			continue
		}

		entry := Entry{
			Name:   name,
			Parent: parent,
		}

		switch {
		case info.IsDir():
			entry.Content = ""
			entry.Kind = KindDir
		case info.Mode().IsRegular():
			entry.Content, entry.Kind = b.classify(name, parent)
		default:
			entry.Content = ""
			entry.Kind = KindUnknown
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// classify embeds or references one regular file's content.
func (b *Builder) classify(name, parent string) (any, string) {
	full := filepath.Join(b.dir, name)
	ref := filepath.Join(parent, name)

	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case ext == ".txt":
		data, err := afero.ReadFile(b.fs, full)
		if err != nil {
			return ref, KindPath
		}
		return strings.Split(string(data), "\n"), KindFile
	case decode.IsStructured(ext):
		data, err := afero.ReadFile(b.fs, full)
		if err != nil {
			return ref, KindPath
		}
		out := decode.Decode(data, full)
		if out.Kind != decode.Structured {
			return ref, KindPath
		}
		return out.Value, KindJSON
	default:
		return ref, KindPath
	}
}

// Write emits files.json (4-space indent) and files.min.json into the
// asset directory.
func (b *Builder) Write(entries []Entry) error {
	indented, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := afero.WriteFile(b.fs, filepath.Join(b.dir, FileName), append(indented, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", FileName, err)
	}

	minified, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := afero.WriteFile(b.fs, filepath.Join(b.dir, MinFileName), append(minified, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", MinFileName, err)
	}

	return nil
}

// Rows stats each entry and renders the human listing with humanized
// sizes and ages. Directories and vanished files get "-" placeholders.
func (b *Builder) Rows(entries []Entry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		row := Row{
			Name:     e.Name,
			Kind:     e.Kind,
			Size:     "-",
			Modified: "-",
		}
		if info, err := b.fs.Stat(filepath.Join(b.dir, e.Name)); err == nil && !info.IsDir() {
			row.Size = humanize.Bytes(uint64(info.Size()))
			row.Modified = humanize.Time(info.ModTime())
		}
		rows = append(rows, row)
	}
	return rows
}
