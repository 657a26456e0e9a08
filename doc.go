// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

// snipctl is the main package for the snipctl command line tool. It wires
// the CLI, delegates to internal packages, and serves as the entry point.
package main
