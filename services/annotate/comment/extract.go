// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package comment

import (
	"sort"
	"strings"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/span"
)

// Comment delimiters recognized by the extractor.
const (
	lineMarker  = "//"
	blockOpen   = "/*"
	blockClose  = "*/"
	markerWidth = 2
)

// Extract scans raw source text and returns every comment it can recover,
// ordered by ascending (line, column).
//
// Description:
//
//	Extract works one physical line at a time, left to right. On each line
//	it looks for the first // marker and for any number of /* */ pairs that
//	open and close on that same line. A candidate marker is rejected when a
//	single-pass quote tracker determines it sits inside a live quoted
//	string or character literal; the tracker handles backslash escapes but
//	does not carry state across lines, so multi-line string literals are
//	not recognized.
//
//	Block comments whose closing marker is not found on the same line are
//	silently skipped. That is a documented limitation, not an error: the
//	extractor favors under-detection, since misidentifying code as a
//	comment is more damaging downstream than missing a rare comment.
//
// Inputs:
//   - source: Complete raw source text. No incremental variant exists.
//
// Outputs:
//   - []Comment: All recovered comments in ascending (line, column) order.
//     The result is exactly reproducible for a given input.
//
// Thread Safety:
//
//	Extract is a pure function and safe for concurrent use.
func Extract(source string) []Comment {
	var comments []Comment

	for lineIndex, line := range splitLines(source) {
		lineNumber := lineIndex + 1

		if c, ok := extractLineComment(line, lineNumber); ok {
			comments = append(comments, c)
		}

		comments = append(comments, extractBlockComments(line, lineNumber)...)
	}

	// Line comments are found before block comments on the same line, so a
	// /* */ that precedes a // would otherwise come out of column order.
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].Span.StartBefore(comments[j].Span)
	})

	return comments
}

// extractLineComment finds the first // marker on the line that is not
// inside a quoted region and returns the remainder of the line as a comment.
func extractLineComment(line string, lineNumber int) (Comment, bool) {
	start := strings.Index(line, lineMarker)
	if start < 0 || insideStringLiteral(line, start) {
		return Comment{}, false
	}

	return Comment{
		Text: strings.TrimSpace(line[start+markerWidth:]),
		Span: span.New(lineNumber, start, lineNumber, len(line)),
		Kind: KindLine,
	}, true
}

// extractBlockComments finds every /* */ pair that opens and closes on the
// given line. Scanning resumes immediately after each consumed close marker
// so multiple block comments per line are supported. The quote check is
// re-run independently for each candidate open marker.
func extractBlockComments(line string, lineNumber int) []Comment {
	var comments []Comment

	searchStart := 0
	for {
		rel := strings.Index(line[searchStart:], blockOpen)
		if rel < 0 {
			break
		}
		open := searchStart + rel

		if insideStringLiteral(line, open) {
			searchStart = open + 1
			continue
		}

		relClose := strings.Index(line[open:], blockClose)
		if relClose < 0 {
			// Close marker is on a later line; multi-line block comments
			// are unsupported, so the rest of the line is abandoned.
			break
		}
		closeStart := open + relClose

		comments = append(comments, Comment{
			Text: strings.TrimSpace(line[open+markerWidth : closeStart]),
			Span: span.New(lineNumber, open, lineNumber, closeStart+markerWidth),
			Kind: KindBlock,
		})

		searchStart = closeStart + markerWidth
	}

	return comments
}

// insideStringLiteral reports whether the byte position pos on the line
// falls inside a live quoted region.
//
// The tracker recognizes " and ' delimiters and backslash escapes within a
// quoted region. It is single-line only: quoting state never carries over
// from a previous line. Unterminated quotes leave the tracker in-string,
// which errs on the side of treating later markers as non-comments.
func insideStringLiteral(line string, pos int) bool {
	inString := false
	escaped := false
	var quote rune

	for i, c := range line {
		if i >= pos {
			break
		}

		switch {
		case (c == '"' || c == '\'') && !escaped:
			if inString {
				if c == quote {
					inString = false
				}
			} else {
				inString = true
				quote = c
			}
		case c == '\\' && inString:
			escaped = !escaped
			continue
		}

		escaped = false
	}

	return inString
}

// splitLines splits source into physical lines without their terminators.
// A trailing newline does not produce a final empty line, matching the
// line numbering the rest of the engine expects.
func splitLines(source string) []string {
	if source == "" {
		return nil
	}
	source = strings.TrimSuffix(source, "\n")
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
