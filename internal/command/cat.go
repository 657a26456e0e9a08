// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/decode"
	"github.com/snipforge/snipctl/internal/meta"
	"github.com/snipforge/snipctl/internal/resource"
)

// CatCommandAction loads one asset through a resource cache and prints
// it: structured assets pretty-printed, text verbatim.
func CatCommandAction(ctx context.Context, cmd *cli.Command) error {
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

	switch out.Kind {
	case decode.Structured:
		raw, err := json.MarshalIndent(out.Value, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
		fmt.Fprintln(os.Stdout, string(raw))
	default:
		fmt.Fprint(os.Stdout, out.Text)
	}

	return nil
}

// CatCommandBuilder constructs the cli.Command for "cat".
func CatCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cat",
		Usage:     "print one asset",
		UsageText: `snipctl cat [RootDir] PATH [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: NewGlobalFlags("cat"),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := CatCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return CatCommandAction(ctx, cmd)
		},
	}
}

// CatCommandValidator performs validation for "cat" and delegates to
// GlobalFlagsValidator.
func CatCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
