// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/snipforge/snipctl/internal/config"
)

type RootDirSpec struct {
	RootDir string
	Profile string
}

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	RootDirSpec
	StartingDir string
}
