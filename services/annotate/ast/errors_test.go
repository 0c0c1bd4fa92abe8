// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseError_Formats verifies the three location formats.
func TestParseError_Formats(t *testing.T) {
	full := &ParseError{FilePath: "main.rs", Line: 10, Column: 5, Message: "bad token"}
	assert.Equal(t, "main.rs:10:5: bad token", full.Error())

	lineOnly := &ParseError{FilePath: "main.rs", Line: 10, Message: "bad token"}
	assert.Equal(t, "main.rs:10: bad token", lineOnly.Error())

	bare := &ParseError{FilePath: "main.rs", Message: "bad token"}
	assert.Equal(t, "main.rs: bad token", bare.Error())
}

// TestParseError_Unwrap verifies errors.Is works through the wrapper.
func TestParseError_Unwrap(t *testing.T) {
	wrapped := &ParseError{FilePath: "main.rs", Message: "too big", Cause: ErrFileTooLarge}
	assert.ErrorIs(t, wrapped, ErrFileTooLarge)
}

// TestWrapParseError verifies wrapping behavior, including the pass-through
// for errors that already carry location context.
func TestWrapParseError(t *testing.T) {
	assert.NoError(t, WrapParseError(nil, "main.rs"))

	err := WrapParseError(ErrInvalidContent, "main.rs")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "main.rs", parseErr.FilePath)
	assert.ErrorIs(t, err, ErrInvalidContent)

	again := WrapParseError(err, "other.rs")
	assert.Equal(t, err, again, "location context is never double-wrapped")

	var target *ParseError
	require.True(t, errors.As(again, &target))
	assert.Equal(t, "main.rs", target.FilePath)
}
