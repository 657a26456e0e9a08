// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

// Package resource provides a lazy single-value content cache. Each Cache
// owns at most one decoded value, loaded on first use and replaced
// wholesale on reload. A cache is exclusively owned by one logical
// caller; it is not safe for concurrent use and performs no single-flight
// de-duplication.
package resource
