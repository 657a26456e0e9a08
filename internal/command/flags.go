// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/config"
	"github.com/snipforge/snipctl/internal/output"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// NewGlobalFlags builds the flags shared by every command, with YAML
// value sources namespaced to the command (ns.flag) before the global
// key (flag).
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value:     "text",
			Validator: output.ValidFormat,
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewAssetsFlag constructs the "assets" flag naming the asset directory
// beneath the working root.
func NewAssetsFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "assets",
		Aliases: []string{"d"},
		Usage:   "asset directory beneath the working root",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SNIPCTL_ASSETS"),
			yaml.YAML(ns+"."+"assets", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("assets.dir", altsrc.StringSourcer(cfg.Source)),
		),
		Value: ".",
	}
}

// NewLocaleFlag constructs the "locale" flag used by table lookups.
func NewLocaleFlag(ns string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "locale",
		Aliases: []string{"l"},
		Usage:   "locale tag for string table lookups",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("SNIPCTL_LOCALE"),
			yaml.YAML(ns+"."+"locale", altsrc.StringSourcer(cfg.Source)),
			yaml.YAML("locale", altsrc.StringSourcer(cfg.Source)),
		),
		Value: "default",
	}
}
