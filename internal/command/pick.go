// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/manifest"
	"github.com/snipforge/snipctl/internal/meta"
	"github.com/snipforge/snipctl/internal/picker"
)

// PickCommandAction shows the interactive picker over the asset
// directory and prints the chosen asset.
func PickCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	dir := filepath.Join(m.RootDir, cmd.String("assets"))
	b := manifest.NewBuilder(dir)

	entries, err := b.Build()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no assets under %s", dir)
	}

	choice, err := picker.Run(filepath.Base(dir), entries)
	if err != nil {
		return err
	}
	if choice == nil {
		return nil
	}

	return printEntry(*choice)
}

// printEntry renders a manifest entry the way cat renders the underlying
// asset: embedded lines joined, structured content pretty-printed,
// references printed as their path.
func printEntry(e manifest.Entry) error {
	switch e.Kind {
	case manifest.KindFile:
		if lines, ok := e.Content.([]string); ok {
			fmt.Println(strings.Join(lines, "\n"))
			return nil
		}
		fmt.Println(e.Content)
	case manifest.KindJSON:
		raw, err := json.MarshalIndent(e.Content, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", e.Name, err)
		}
		fmt.Println(string(raw))
	default:
		fmt.Println(e.Content)
	}
	return nil
}

// PickCommandBuilder constructs the cli.Command for "pick".
func PickCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pick",
		Usage:     "pick an asset interactively",
		UsageText: `snipctl pick [RootDir] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewAssetsFlag("pick"),
		}, NewGlobalFlags("pick")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := PickCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return PickCommandAction(ctx, cmd)
		},
	}
}

// PickCommandValidator performs validation for "pick" and delegates to
// GlobalFlagsValidator.
func PickCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
