// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ast

import (
	"errors"
	"fmt"
)

// Sentinel errors for complete parse failures. Partial failures are
// reported in Result.Errors instead; check these with errors.Is().
var (
	// ErrUnsupportedLanguage indicates no parser is registered for the
	// requested language or file extension.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrParseFailed indicates parsing produced no usable result at all.
	ErrParseFailed = errors.New("parse failed")

	// ErrInvalidContent indicates the content cannot be processed,
	// typically because it is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")

	// ErrFileTooLarge indicates the content exceeds the parser's
	// configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum size limit")
)

// ParseError wraps a parse failure with its source location.
//
// It implements the error interface and unwraps to the underlying cause,
// so errors.Is and errors.As work through it.
type ParseError struct {
	// FilePath is the file where the failure occurred.
	FilePath string

	// Line is the 1-indexed line, 0 when unknown.
	Line int

	// Column is the 0-indexed column, 0 when unknown.
	Column int

	// Message describes the failure.
	Message string

	// Cause is the underlying error, nil for primary failures.
	Cause error
}

// Error formats the failure with whatever location is available:
// "file.rs:10:5: message", "file.rs:10: message", or "file.rs: message".
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// WrapParseError attaches file context to an error. ParseErrors pass
// through unchanged so location information is never double-wrapped.
func WrapParseError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}

	return &ParseError{
		FilePath: filePath,
		Message:  err.Error(),
		Cause:    err,
	}
}
