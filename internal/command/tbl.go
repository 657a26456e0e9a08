// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/config"
	"github.com/snipforge/snipctl/internal/meta"
	"github.com/snipforge/snipctl/internal/strtable"
)

// TblCommandAction looks up a key in the localized string tables using
// the locale fallback chain.
func TblCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	key := cmd.Args().First()
	if key == "" {
		return fmt.Errorf("no table key specified")
	}

	dir, _ := config.GetString("tables.dir", "strings")
	t := strtable.New(m.RootDir, cmd.String("locale"), strtable.WithDir(dir))

	s, err := t.Lookup(ctx, key)
	if err != nil {
		var nf *strtable.KeyNotFoundError
		if errors.As(err, &nf) {
			return fmt.Errorf("%s (tables under %s)", nf.Error(), dir)
		}
		return err
	}

	fmt.Println(s)
	return nil
}

// TblCommandBuilder constructs the cli.Command for "tbl".
func TblCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "tbl",
		Usage:     "look up a localized string",
		UsageText: `snipctl tbl [RootDir] KEY [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewLocaleFlag("tbl"),
		}, NewGlobalFlags("tbl")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := TblCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return TblCommandAction(ctx, cmd)
		},
	}
}

// TblCommandValidator performs validation for "tbl" and delegates to
// GlobalFlagsValidator.
func TblCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}
