// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/decode"
	"github.com/snipforge/snipctl/internal/meta"
	"github.com/snipforge/snipctl/internal/resource"
)

// SortCommandAction rewrites a structured asset with its keys in
// alphabetical order. Three siblings land next to the source: a
// reorganised copy (4-space indent, sorted keys), a minified copy in the
// source key order, and a minified reorganised copy.
func SortCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("no asset path specified")
	}

	cache := resource.New(m.RootDir, decode.Auto(),
		resource.WithPath[decode.Outcome](path))

	out, err := cache.Get(ctx)
	if err != nil {
		if resource.IsNotFound(err) {
			return fmt.Errorf("asset not found: %s", path)
		}
		return err
	}
	if out.Kind != decode.Structured {
		return fmt.Errorf("%s is not a structured asset; nothing to sort", path)
	}

	// encoding/json emits map keys sorted, so re-marshaling the decoded
	// value is the reorganisation.
	sorted, err := json.MarshalIndent(out.Value, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	sortedMin, err := json.Marshal(out.Value)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	// The plain minified copy keeps the source key order, which the
	// decoded map has lost, so it comes from the raw bytes.
	resolved := cache.Resolver().Resolve(path)
	raw, err := os.ReadFile(resolved)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", resolved, err)
	}
	if strings.EqualFold(filepath.Ext(resolved), ".jsonc") {
		raw = jsonc.ToJSON(raw)
	}

	outputs := []struct {
		name string
		data []byte
	}{
		{siblingName(resolved, "_reorganised"), sorted},
		{siblingName(resolved, ".min"), pretty.Ugly(raw)},
		{siblingName(resolved, "_reorganised.min"), sortedMin},
	}
	for _, o := range outputs {
		if err := os.WriteFile(o.name, append(o.data, '\n'), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", o.name, err)
		}
		fmt.Printf("wrote %s\n", o.name)
	}

	return nil
}

// siblingName tags the base name of path, keeping the full extension
// chain: "tables.v1.json" tagged "_reorganised" becomes
// "tables_reorganised.v1.json".
func siblingName(path, tag string) string {
	dir, base := filepath.Split(path)
	name, rest, found := strings.Cut(base, ".")
	out := name + tag
	if found {
		out += "." + rest
	}
	return filepath.Join(dir, out)
}

// SortCommandBuilder constructs the cli.Command for "sort".
func SortCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "rewrite a structured asset with sorted keys",
		UsageText: `snipctl sort [RootDir] PATH [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: NewGlobalFlags("sort"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := SortCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return SortCommandAction(ctx, cmd)
		},
	}
}

// SortCommandValidator performs validation for "sort" and delegates to
// GlobalFlagsValidator.
func SortCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
