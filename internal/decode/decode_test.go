// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Structured(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want any
	}{
		{
			name: "json object",
			path: "/assets/table.json",
			data: `{"x": 1}`,
			want: map[string]any{"x": float64(1)},
		},
		{
			name: "json array",
			path: "/assets/files.json",
			data: `[1, 2]`,
			want: []any{float64(1), float64(2)},
		},
		{
			name: "jsonc line comments stripped",
			path: "/assets/table.jsonc",
			data: "{\n// a comment\n\"x\": 1\n}",
			want: map[string]any{"x": float64(1)},
		},
		{
			name: "jsonc block comments stripped",
			path: "/assets/table.jsonc",
			data: `{"x": /* inline */ 1}`,
			want: map[string]any{"x": float64(1)},
		},
		{
			name: "extension case-insensitive",
			path: "/assets/TABLE.JSON",
			data: `{"x": 1}`,
			want: map[string]any{"x": float64(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Decode([]byte(tt.data), tt.path)
			require.Equal(t, Structured, out.Kind)
			assert.Equal(t, tt.want, out.Value)
			assert.Nil(t, out.Err)
		})
	}
}

func TestDecode_Raw(t *testing.T) {
	// Unrecognized extensions return the bytes verbatim. This branch
	// cannot fail, even for content that happens to be broken JSON.
	tests := []struct {
		name string
		path string
		data string
	}{
		{name: "txt", path: "/assets/banner.txt", data: "line one\nline two"},
		{name: "no extension", path: "/assets/README", data: "hello"},
		{name: "broken json under txt extension", path: "/assets/odd.txt", data: `{"x":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Decode([]byte(tt.data), tt.path)
			require.Equal(t, Raw, out.Kind)
			assert.Equal(t, tt.data, out.Text)
		})
	}
}

func TestDecode_Failed(t *testing.T) {
	// A malformed structured asset is a hard failure, never a raw-text
	// fallback.
	out := Decode([]byte(`{"x": `), "/assets/broken.json")

	require.Equal(t, Failed, out.Kind)
	require.NotNil(t, out.Err)
	assert.Equal(t, "/assets/broken.json", out.Err.Path)
	assert.NotEmpty(t, out.Err.Reason)
	assert.Empty(t, out.Text)
}

func TestJSON(t *testing.T) {
	type table struct {
		X int `json:"x"`
	}

	dec := JSON[table]()

	v, err := dec([]byte(`{"x": 2}`), "/assets/t.json")
	require.NoError(t, err)
	assert.Equal(t, table{X: 2}, v)

	v, err = dec([]byte("{\n// comment\n\"x\": 3\n}"), "/assets/t.jsonc")
	require.NoError(t, err)
	assert.Equal(t, table{X: 3}, v)
}

func TestJSON_Failure(t *testing.T) {
	dec := JSON[map[string]string]()

	_, err := dec([]byte(`{"x": `), "/assets/t.json")
	require.Error(t, err)

	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "/assets/t.json", derr.Path)
	assert.Contains(t, derr.Error(), "/assets/t.json")
}

func TestText(t *testing.T) {
	dec := Text()

	v, err := dec([]byte("raw bytes"), "/assets/banner.txt")
	require.NoError(t, err)
	assert.Equal(t, "raw bytes", v)
}

func TestAuto(t *testing.T) {
	dec := Auto()

	out, err := dec([]byte(`{"x": 1}`), "/assets/t.json")
	require.NoError(t, err)
	assert.Equal(t, Structured, out.Kind)

	out, err = dec([]byte("art"), "/assets/a.txt")
	require.NoError(t, err)
	assert.Equal(t, Raw, out.Kind)
	assert.Equal(t, "art", out.Text)

	_, err = dec([]byte(`{"x":`), "/assets/t.json")
	var derr *Error
	require.ErrorAs(t, err, &derr)
}

func TestIsStructured(t *testing.T) {
	assert.True(t, IsStructured(".json"))
	assert.True(t, IsStructured(".jsonc"))
	assert.False(t, IsStructured(".txt"))
	assert.False(t, IsStructured(""))
}
