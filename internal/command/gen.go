// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/manifest"
	"github.com/snipforge/snipctl/internal/meta"
)

// GenCommandAction builds files.json and files.min.json for the asset
// directory.
func GenCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	dir := filepath.Join(m.RootDir, cmd.String("assets"))
	b := manifest.NewBuilder(dir)

	entries, err := b.Build()
	if err != nil {
		return err
	}

	if err := b.Write(entries); err != nil {
		return err
	}

	fmt.Printf("wrote %s and %s (%d entries)\n",
		filepath.Join(dir, manifest.FileName),
		filepath.Join(dir, manifest.MinFileName),
		len(entries))

	return nil
}

// GenCommandBuilder constructs the cli.Command for "gen".
func GenCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "generate asset manifests",
		UsageText: `snipctl gen [RootDir] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewAssetsFlag("gen"),
		}, NewGlobalFlags("gen")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := GenCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return GenCommandAction(ctx, cmd)
		},
	}
}

// GenCommandValidator performs validation for "gen" and delegates to
// GlobalFlagsValidator.
func GenCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
