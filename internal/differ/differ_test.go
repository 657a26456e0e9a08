// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_RawText(t *testing.T) {
	r, err := Diff([]byte("a\nb"), []byte("a\nb"), false, false)
	require.NoError(t, err)
	assert.False(t, r.Changed)

	r, err = Diff([]byte("a\nb"), []byte("a\nc"), false, false)
	require.NoError(t, err)
	assert.True(t, r.Changed)
	assert.Empty(t, r.Detail)
}

func TestDiff_Objects(t *testing.T) {
	left := []byte(`{"x": 1, "y": "same"}`)
	right := []byte(`{"x": 2, "y": "same"}`)

	r, err := Diff(left, right, true, false)
	require.NoError(t, err)
	assert.True(t, r.Changed)
	assert.Contains(t, r.Detail, "x")
}

func TestDiff_ObjectsUnchanged(t *testing.T) {
	left := []byte(`{"x": 1}`)
	// Formatting differences are not drift.
	right := []byte("{\n  \"x\": 1\n}")

	r, err := Diff(left, right, true, false)
	require.NoError(t, err)
	assert.False(t, r.Changed)
	assert.Empty(t, r.Detail)
}

func TestDiff_Arrays(t *testing.T) {
	left := []byte(`[{"fileName": "a.txt"}]`)
	right := []byte(`[{"fileName": "b.txt"}]`)

	r, err := Diff(left, right, true, false)
	require.NoError(t, err)
	assert.True(t, r.Changed)
}

func TestDiff_MismatchedShapes(t *testing.T) {
	// Object vs array degrades to a byte-equality verdict.
	r, err := Diff([]byte(`{"x": 1}`), []byte(`[1]`), true, false)
	require.NoError(t, err)
	assert.True(t, r.Changed)
	assert.Empty(t, r.Detail)
}

func TestDiff_InvalidJSON(t *testing.T) {
	_, err := Diff([]byte(`{"x": `), []byte(`{"x": 1}`), true, false)
	assert.Error(t, err)
}
