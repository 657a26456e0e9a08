// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/decode"
	"github.com/snipforge/snipctl/internal/differ"
	"github.com/snipforge/snipctl/internal/meta"
	"github.com/snipforge/snipctl/internal/output"
	"github.com/snipforge/snipctl/internal/respath"
)

// DiffCommandAction compares the two relative resolution candidates of
// an asset path: the root-parent copy (which resolution would prefer)
// against the in-root copy it shadows.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("no asset path specified")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("diff needs a relative path; %s has only one candidate", path)
	}

	r := respath.New(m.RootDir)

	var parent, inRoot string
	for _, c := range r.Candidates(path) {
		switch c.Strategy {
		case "root-parent":
			if c.Accepted {
				parent = c.Path
			}
		case "root":
			if r.Exists(c.Path) {
				inRoot = c.Path
			}
		}
	}

	if parent == "" || inRoot == "" {
		fmt.Println("no shadow copy; nothing to diff")
		return nil
	}

	left, err := os.ReadFile(parent)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", parent, err)
	}
	right, err := os.ReadFile(inRoot)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inRoot, err)
	}

	structured := decode.IsStructured(strings.ToLower(filepath.Ext(path)))
	report, err := differ.Diff(left, right, structured, output.Colorized(cmd))
	if err != nil {
		return err
	}

	if !report.Changed {
		fmt.Printf("%s and %s match\n", parent, inRoot)
		return nil
	}

	fmt.Printf("%s shadows %s:\n", parent, inRoot)
	if report.Detail != "" {
		fmt.Print(report.Detail)
	} else {
		fmt.Println("content differs")
	}

	return nil
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "compare an asset's resolution candidates",
		UsageText: `snipctl diff [RootDir] PATH [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: NewGlobalFlags("diff"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := DiffCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return DiffCommandAction(ctx, cmd)
		},
	}
}

// DiffCommandValidator performs validation for "diff" and delegates to
// GlobalFlagsValidator.
func DiffCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
