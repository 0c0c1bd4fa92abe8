// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package span

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsValid_WellFormed verifies ordering and boundary validation.
func TestIsValid_WellFormed(t *testing.T) {
	assert.True(t, New(1, 0, 1, 0).IsValid(), "point span at origin")
	assert.True(t, New(2, 3, 2, 6).IsValid(), "single-line span")
	assert.True(t, New(4, 9, 10, 10).IsValid(), "multi-line span")

	assert.False(t, New(0, 0, 1, 0).IsValid(), "line numbers are 1-based")
	assert.False(t, New(2, 5, 2, 3).IsValid(), "end column before start column")
	assert.False(t, New(3, 0, 2, 0).IsValid(), "end line before start line")
	assert.False(t, New(1, -1, 1, 0).IsValid(), "columns are non-negative")
}

// TestIsPoint verifies point span detection.
func TestIsPoint(t *testing.T) {
	assert.True(t, Point(5, 2).IsPoint())
	assert.False(t, New(5, 2, 5, 3).IsPoint())
}

// TestStartBefore verifies lexicographic (line, column) comparison.
func TestStartBefore(t *testing.T) {
	a := New(2, 9, 2, 18)
	b := New(4, 0, 4, 10)
	c := New(2, 11, 2, 20)

	assert.True(t, a.StartBefore(b), "earlier line wins")
	assert.True(t, a.StartBefore(c), "same line, earlier column wins")
	assert.False(t, c.StartBefore(a))
	assert.False(t, a.StartBefore(a), "comparison is strict")
}

// TestContainsPosition verifies inclusive containment with boundary columns.
func TestContainsPosition(t *testing.T) {
	s := New(4, 9, 10, 10)

	assert.True(t, s.ContainsPosition(5, 0), "interior line, any column")
	assert.True(t, s.ContainsPosition(4, 9), "start boundary")
	assert.True(t, s.ContainsPosition(10, 10), "end boundary")

	assert.False(t, s.ContainsPosition(4, 8), "before start column")
	assert.False(t, s.ContainsPosition(10, 11), "after end column")
	assert.False(t, s.ContainsPosition(3, 50), "before start line")
	assert.False(t, s.ContainsPosition(11, 0), "after end line")
}

// TestSizeHelpers verifies the line count and column width used for
// smallest-node tie-breaking.
func TestSizeHelpers(t *testing.T) {
	assert.Equal(t, 1, New(3, 0, 3, 9).LineCount())
	assert.Equal(t, 7, New(4, 9, 10, 10).LineCount())
	assert.Equal(t, 9, New(3, 0, 3, 9).ColumnWidth())
}

// TestJSONShape verifies field names and that reserved zero offsets are
// emitted rather than omitted.
func TestJSONShape(t *testing.T) {
	data, err := json.Marshal(New(2, 3, 2, 6))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"start_offset": 0,
		"end_offset": 0,
		"start_line": 2,
		"start_column": 3,
		"end_line": 2,
		"end_column": 6
	}`, string(data))

	var back Info
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, New(2, 3, 2, 6), back)
}

// TestString verifies the diagnostic format.
func TestString(t *testing.T) {
	assert.Equal(t, "2:3-2:6", New(2, 3, 2, 6).String())
}
