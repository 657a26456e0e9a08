// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

// Package output renders command result sets as text tables, JSON, or
// YAML, honoring the --output, --color and --titles flags.
package output
