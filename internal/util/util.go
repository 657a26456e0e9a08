// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

// Package util holds small helpers shared across commands.
package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ParseRootDir parses a root-dir spec of the form "dir" or "dir@profile"
// and returns the absolute directory and the profile name. The directory
// must exist.
func ParseRootDir(spec string) (string, string, error) {
	dir := spec
	profile := ""

	if at := strings.LastIndex(spec, "@"); at > 0 {
		dir = spec[:at]
		profile = spec[at+1:]
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve rootDir (%s): %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", "", fmt.Errorf("rootDir does not exist (%s): %w", abs, err)
	}
	if !info.IsDir() {
		return "", "", fmt.Errorf("rootDir is not a directory (%s)", abs)
	}

	return abs, profile, nil
}
