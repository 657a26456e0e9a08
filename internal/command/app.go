// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/config"
	"github.com/snipforge/snipctl/internal/meta"
	"github.com/snipforge/snipctl/internal/util"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// Save the CWD at startup and then defer restoring it so we're tidy.
	sd, _ := os.Getwd()
	defer func() {
		if err := os.Chdir(sd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to restore directory: %v\n", err)
		}
	}()

	// The arg[1] immediately following the binary (arg[0]) is the snipctl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	// See if the arg immediately following the command might be a directory.
	// This is determined by whether or not it begins with - or --. If it does,
	// it's a flag and the working root is the starting directory. If it's not,
	// we assume we have a directory spec of some sort and need to parse it.
	if len(args) > 2 && !strings.HasPrefix(args[2], "-") {
		if wd, profile, err := util.ParseRootDir(args[2]); err == nil {
			meta.RootDir = wd
			meta.Profile = profile
		} else {
			return nil, fmt.Errorf("failed to parse rootDir (%s): %w", args[2], err)
		}
	} else {
		meta.RootDir = sd
	}

	app := &cli.Command{
		Name:  "snipctl",
		Usage: "Snippet and asset library control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "snipctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CatCommandBuilder(app, meta),
		DiffCommandBuilder(app, meta),
		GenCommandBuilder(app, meta),
		LsCommandBuilder(app, meta),
		PickCommandBuilder(app, meta),
		SortCommandBuilder(app, meta),
		TblCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
