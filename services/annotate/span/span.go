// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package span provides serializable source-position records.
//
// A span identifies where a construct or comment begins and ends in source
// text using 1-based line numbers and 0-based column numbers. Byte offsets
// are carried for wire compatibility but are reserved: they are always zero
// when the underlying position source cannot supply them.
package span

import "fmt"

// Info is a serializable representation of a source span.
//
// Description:
//
//	Info preserves location information from the original source code.
//	Line numbers are 1-based, columns are 0-based. A well-formed span
//	satisfies (EndLine, EndColumn) >= (StartLine, StartColumn)
//	lexicographically; a point span has start == end.
//
//	StartOffset and EndOffset are reserved fields. Position sources that
//	do not expose byte offsets must leave them zero; consumers must
//	preserve them either way so the wire format stays stable.
//
// Thread Safety:
//
//	Info is an immutable value type. Copies are safe to share.
type Info struct {
	// StartOffset is the byte offset of the start of the span.
	// Zero when the position source does not supply offsets.
	StartOffset int `json:"start_offset"`

	// EndOffset is the byte offset of the end of the span.
	// Zero when the position source does not supply offsets.
	EndOffset int `json:"end_offset"`

	// StartLine is the 1-based line number of the start of the span.
	StartLine int `json:"start_line"`

	// StartColumn is the 0-based column of the start of the span.
	StartColumn int `json:"start_column"`

	// EndLine is the 1-based line number of the end of the span.
	EndLine int `json:"end_line"`

	// EndColumn is the 0-based column of the end of the span.
	EndColumn int `json:"end_column"`
}

// New creates a span from start and end line/column positions.
// Byte offsets are left at their reserved zero value.
func New(startLine, startColumn, endLine, endColumn int) Info {
	return Info{
		StartLine:   startLine,
		StartColumn: startColumn,
		EndLine:     endLine,
		EndColumn:   endColumn,
	}
}

// Point creates a zero-width span at the given position.
func Point(line, column int) Info {
	return New(line, column, line, column)
}

// IsValid reports whether the span is well-formed: lines are at least 1,
// columns are non-negative, and the end does not precede the start.
func (s Info) IsValid() bool {
	if s.StartLine < 1 || s.EndLine < 1 {
		return false
	}
	if s.StartColumn < 0 || s.EndColumn < 0 {
		return false
	}
	return !positionLess(s.EndLine, s.EndColumn, s.StartLine, s.StartColumn)
}

// IsPoint reports whether the span starts and ends at the same position.
func (s Info) IsPoint() bool {
	return s.StartLine == s.EndLine && s.StartColumn == s.EndColumn
}

// StartBefore reports whether this span's start position precedes the
// other span's start position, comparing by line then column.
func (s Info) StartBefore(other Info) bool {
	return positionLess(s.StartLine, s.StartColumn, other.StartLine, other.StartColumn)
}

// LineCount returns the number of lines the span touches, inclusive.
// Returns 0 for malformed spans whose end line precedes the start line.
func (s Info) LineCount() int {
	if s.EndLine < s.StartLine {
		return 0
	}
	return s.EndLine - s.StartLine + 1
}

// ColumnWidth returns the column distance between start and end.
// Only meaningful as a tie-breaker between spans of equal line count.
func (s Info) ColumnWidth() int {
	w := s.EndColumn - s.StartColumn
	if w < 0 {
		return 0
	}
	return w
}

// ContainsLine reports whether the given 1-based line falls within
// [StartLine, EndLine].
func (s Info) ContainsLine(line int) bool {
	return line >= s.StartLine && line <= s.EndLine
}

// ContainsPosition reports whether the given position lies within the span,
// treating the span as inclusive on both ends.
//
// On the start line the position must be at or after StartColumn; on the
// end line it must be at or before EndColumn. Interior lines match at any
// column.
func (s Info) ContainsPosition(line, column int) bool {
	if !s.ContainsLine(line) {
		return false
	}
	if line == s.StartLine && column < s.StartColumn {
		return false
	}
	if line == s.EndLine && column > s.EndColumn {
		return false
	}
	return true
}

// String formats the span as "start_line:start_col-end_line:end_col".
func (s Info) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

// positionLess compares two (line, column) positions lexicographically.
func positionLess(aLine, aCol, bLine, bCol int) bool {
	if aLine != bLine {
		return aLine < bLine
	}
	return aCol < bCol
}
