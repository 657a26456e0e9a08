// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/snipforge/snipctl/internal/meta"
)

// GetMeta pulls the Meta options carried through the command metadata.
func GetMeta(cmd *cli.Command) meta.Meta {
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// GlobalFlagsValidator validates the flags shared by every command.
// Flag-level validators run first; this is the hook for cross-flag rules.
func GlobalFlagsValidator(_ context.Context, _ *cli.Command) error {
	return nil
}
