// Copyright © 2025 snipforge authors
// SPDX-License-Identifier: MIT

// Package differ reports drift between two renditions of the same asset,
// typically the root-parent and root resolution candidates of a shadowed
// path. Structured assets get a field-level diff; raw text gets a
// changed/unchanged verdict.
package differ

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	diff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Report is the outcome of one comparison.
type Report struct {
	Changed bool
	// Detail is a human-readable field-level diff. Empty for raw text
	// and for unchanged structured content.
	Detail string
}

// Diff compares two byte renditions of an asset. Structured is true when
// both sides should be treated as JSON; coloring applies to the detail
// output only.
func Diff(left, right []byte, structured, coloring bool) (Report, error) {
	if !structured {
		return Report{Changed: !bytes.Equal(left, right)}, nil
	}
	return diffJSON(left, right, coloring)
}

func diffJSON(left, right []byte, coloring bool) (Report, error) {
	lr := gjson.ParseBytes(left)
	rr := gjson.ParseBytes(right)

	// gojsondiff compares objects and arrays; mismatched or scalar
	// top-levels degrade to a byte-equality verdict.
	switch {
	case lr.IsObject() && rr.IsObject():
		var lhs, rhs map[string]interface{}
		if err := json.Unmarshal(left, &lhs); err != nil {
			return Report{}, fmt.Errorf("failed to parse left side: %w", err)
		}
		if err := json.Unmarshal(right, &rhs); err != nil {
			return Report{}, fmt.Errorf("failed to parse right side: %w", err)
		}
		return format(lhs, diff.New().CompareObjects(lhs, rhs), coloring)
	case lr.IsArray() && rr.IsArray():
		var lhs, rhs []interface{}
		if err := json.Unmarshal(left, &lhs); err != nil {
			return Report{}, fmt.Errorf("failed to parse left side: %w", err)
		}
		if err := json.Unmarshal(right, &rhs); err != nil {
			return Report{}, fmt.Errorf("failed to parse right side: %w", err)
		}
		return format(lhs, diff.New().CompareArrays(lhs, rhs), coloring)
	default:
		return Report{Changed: !bytes.Equal(left, right)}, nil
	}
}

func format(lhs interface{}, d diff.Diff, coloring bool) (Report, error) {
	if !d.Modified() {
		return Report{}, nil
	}

	f := formatter.NewAsciiFormatter(lhs, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	})
	detail, err := f.Format(d)
	if err != nil {
		return Report{}, fmt.Errorf("failed to format diff: %w", err)
	}

	return Report{Changed: true, Detail: detail}, nil
}
