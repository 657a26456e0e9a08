// Copyright (c) 2025 snipforge authors.
// SPDX-License-Identifier: Apache-2.0

// Package decode turns raw asset bytes into values, keyed by file
// extension. Structured extensions (.json, .jsonc) are parsed; .jsonc has
// its line and block comments stripped first. Every other extension is
// returned verbatim as text and cannot fail. A structured asset that does
// not parse is a hard *Error; there is no fallback to raw text.
package decode

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// Kind tags an Outcome.
type Kind int

const (
	// Structured means the bytes parsed into a typed value.
	Structured Kind = iota
	// Raw means the bytes were returned verbatim as text.
	Raw
	// Failed means a structured parse failed.
	Failed
)

// Outcome is the tagged result of extension-sensitive decoding. Exactly
// one of Value, Text, Err is meaningful, selected by Kind.
type Outcome struct {
	Kind  Kind
	Value any
	Text  string
	Err   *Error
}

// Error describes a structured-parse failure. It carries the original
// parser error text and the source path for diagnostics.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to decode %s: %s", e.Path, e.Reason)
}

// Decoder turns raw bytes read from path into a typed value. Cache
// instances are parametrized over a Decoder rather than inspecting types
// at runtime.
type Decoder[T any] func(data []byte, path string) (T, error)

// IsStructured reports whether the lowercased extension names a
// structured content type.
func IsStructured(ext string) bool {
	return ext == ".json" || ext == ".jsonc"
}

// Decode applies extension-sensitive decoding to data read from path.
func Decode(data []byte, path string) Outcome {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsStructured(ext) {
		return Outcome{Kind: Raw, Text: string(data)}
	}

	var value any
	if err := structured(data, path, ext, &value); err != nil {
		return Outcome{Kind: Failed, Err: err.(*Error)}
	}
	return Outcome{Kind: Structured, Value: value}
}

// JSON returns a Decoder that parses JSON or JSONC (chosen by extension)
// into T.
func JSON[T any]() Decoder[T] {
	return func(data []byte, path string) (T, error) {
		var v T
		ext := strings.ToLower(filepath.Ext(path))
		if err := structured(data, path, ext, &v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// Text returns a Decoder that yields the bytes verbatim. It cannot fail.
func Text() Decoder[string] {
	return func(data []byte, _ string) (string, error) {
		return string(data), nil
	}
}

// Auto returns a Decoder producing the full tagged Outcome, for callers
// that serve both structured and text assets from one cache.
func Auto() Decoder[Outcome] {
	return func(data []byte, path string) (Outcome, error) {
		out := Decode(data, path)
		if out.Kind == Failed {
			return Outcome{}, out.Err
		}
		return out, nil
	}
}

func structured(data []byte, path, ext string, v any) error {
	if ext == ".jsonc" {
		data = jsonc.ToJSON(data)
	}

	// Cheap validity probe first so obviously broken content reports a
	// syntax failure even when T would tolerate it.
	if !gjson.ValidBytes(data) {
		if err := json.Unmarshal(data, v); err != nil {
			return &Error{Path: path, Reason: err.Error()}
		}
		return &Error{Path: path, Reason: "invalid JSON"}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return &Error{Path: path, Reason: err.Error()}
	}
	return nil
}
