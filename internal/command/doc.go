// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

// Package command defines the CLI command set for snipctl. It wires
// flags, YAML value sources, validators, and actions for the
// subcommands, and carries the shared Meta options through the command
// metadata.
package command
