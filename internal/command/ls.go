// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/manifest"
	"github.com/snipforge/snipctl/internal/meta"
	"github.com/snipforge/snipctl/internal/output"
)

var lsCols = []string{"name", "kind", "size", "modified"}

// LsCommandAction lists the asset directory as manifest rows.
func LsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	dir := filepath.Join(m.RootDir, cmd.String("assets"))
	b := manifest.NewBuilder(dir)

	entries, err := b.Build()
	if err != nil {
		return err
	}

	entries = filterKinds(entries, cmd.String("kind"))

	resultSet := make([]map[string]interface{}, 0, len(entries))
	for _, row := range b.Rows(entries) {
		resultSet = append(resultSet, map[string]interface{}{
			"name":     row.Name,
			"kind":     row.Kind,
			"size":     row.Size,
			"modified": row.Modified,
		})
	}

	return output.Spit(resultSet, lsCols, cmd, os.Stdout)
}

// LsCommandBuilder constructs the cli.Command for "ls".
func LsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list assets",
		UsageText: `snipctl ls [RootDir] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewAssetsFlag("ls"),
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "comma-separated list of entry kinds to include",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("ls.kind", altsrc.StringSourcer(cfg.Source)),
				),
			},
		}, NewGlobalFlags("ls")...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := LsCommandValidator(ctx, cmd); err != nil {
				return err
			}
			return LsCommandAction(ctx, cmd)
		},
	}
}

// LsCommandValidator performs validation for "ls" and delegates to
// GlobalFlagsValidator.
func LsCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}

// filterKinds keeps entries whose kind appears in the comma-separated
// spec. An empty spec keeps everything.
func filterKinds(entries []manifest.Entry, spec string) []manifest.Entry {
	if spec == "" {
		return entries
	}

	want := map[string]bool{}
	for _, k := range strings.Split(spec, ",") {
		want[strings.TrimSpace(k)] = true
	}

	var out []manifest.Entry
	for _, e := range entries {
		if want[e.Kind] {
			out = append(out, e)
		}
	}
	return out
}
