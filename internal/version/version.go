// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version string, overridden at link time
// via -ldflags "-X github.com/snipforge/snipctl/internal/version.Version=...".
package version

// Version is the snipctl release version.
var Version = "dev"
