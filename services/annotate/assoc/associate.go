// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package assoc

import (
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/comment"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/span"
)

// Associate maps each comment to at most one node identifier.
//
// Description:
//
//	Each comment is matched independently against the full NodeSpan set;
//	comments never affect each other's matching. The result maps node
//	identifiers to the comments they claimed, in source order. A comment
//	appears in at most one entry, and a comment no node claims appears in
//	no entry - the caller retains unclaimed comments at the document level
//	(see Apply), they are never discarded here and never duplicated.
//
//	The scan is exhaustive per comment, proportional to comments x spans.
//	That is acceptable for source-file-sized inputs; indexing the spans by
//	start line would only be worthwhile for much larger units.
//
// Inputs:
//   - comments: Extracted comments in source order.
//   - nodeSpans: Collected spans in document order.
//   - policy: The matching heuristic (see Policy).
//
// Outputs:
//   - map[string][]comment.Comment: Claimed comments per node identifier.
//     Identifiers with no claimed comments are absent.
//
// Thread Safety:
//
//	Associate is a pure function and safe for concurrent use.
func Associate(comments []comment.Comment, nodeSpans []NodeSpan, policy Policy) map[string][]comment.Comment {
	associations := make(map[string][]comment.Comment)

	for _, c := range comments {
		var id string
		var ok bool
		switch policy {
		case PolicyNearest:
			id, ok = matchNearest(c, nodeSpans)
		default:
			id, ok = matchConservative(c, nodeSpans)
		}
		if ok {
			associations[id] = append(associations[id], c)
		}
	}

	return associations
}

// matchConservative implements the priority-ordered containment policy.
//
// Block nodes are checked before declaration nodes: an inner comment
// always prefers its enclosing block over the outer declaration. If no
// rule fires the comment stays unassociated.
func matchConservative(c comment.Comment, nodeSpans []NodeSpan) (string, bool) {
	// Rule 1: comment lies inside a body block.
	for _, n := range nodeSpans {
		if n.IsBlock() && insideBlock(c, n.Span) {
			return n.ID, true
		}
	}

	// Rule 2: comment trails a declaration.
	for _, n := range nodeSpans {
		if n.IsBlock() {
			continue
		}
		if trailsDeclaration(c, n, nodeSpans) {
			return n.ID, true
		}
	}

	return "", false
}

// insideBlock reports whether the comment is strictly inside the block
// span: on a line strictly between the delimiters, or on the start line
// strictly after the start column ("{ // comment"), or on the end line
// strictly before the end column ("// comment }").
func insideBlock(c comment.Comment, blockSpan span.Info) bool {
	line := c.Span.StartLine
	column := c.Span.StartColumn

	if line > blockSpan.StartLine && line < blockSpan.EndLine {
		return true
	}
	if line == blockSpan.StartLine && column > blockSpan.StartColumn {
		return true
	}
	if line == blockSpan.EndLine && column < blockSpan.EndColumn {
		return true
	}
	return false
}

// trailsDeclaration reports whether the comment belongs to the
// declaration's trailing region: on the declaration's own line starting
// after its end column, or on a line strictly between the declaration and
// its corresponding block's opening delimiter.
func trailsDeclaration(c comment.Comment, decl NodeSpan, all []NodeSpan) bool {
	line := c.Span.StartLine
	column := c.Span.StartColumn

	if line == decl.Span.StartLine {
		return column > decl.Span.EndColumn
	}

	blockStart, ok := blockStartLine(decl.ID, all)
	if !ok {
		return false
	}
	return line > decl.Span.StartLine && line < blockStart
}

// blockStartLine finds the start line of the declaration's own body block.
func blockStartLine(declID string, all []NodeSpan) (int, bool) {
	want := BlockID(declID)
	for _, n := range all {
		if n.ID == want {
			return n.Span.StartLine, true
		}
	}
	return 0, false
}

// matchNearest implements the nearest-enclosing policy with an adjacency
// fallback, in priority order:
//
//  1. A node whose start or end line coincides with the comment's line
//     and whose span contains the comment's start position.
//  2. A node starting exactly one line below the comment - the comment is
//     treated as that node's leading comment.
//  3. The smallest node containing the comment, by line-span size with
//     column-span size as the tie-breaker.
//
// Ties within a rule resolve to the first node in document order, which
// keeps the result deterministic.
func matchNearest(c comment.Comment, nodeSpans []NodeSpan) (string, bool) {
	line := c.Span.StartLine
	column := c.Span.StartColumn

	// Rule 1: same-line positional match.
	for _, n := range nodeSpans {
		if line != n.Span.StartLine && line != n.Span.EndLine {
			continue
		}
		if n.Span.ContainsPosition(line, column) {
			return n.ID, true
		}
	}

	// Rule 2: leading comment immediately above a node.
	for _, n := range nodeSpans {
		if n.Span.StartLine == line+1 {
			return n.ID, true
		}
	}

	// Rule 3: smallest containing node.
	best := -1
	for i, n := range nodeSpans {
		if !n.Span.ContainsPosition(line, column) {
			continue
		}
		if best < 0 || smallerSpan(n.Span, nodeSpans[best].Span) {
			best = i
		}
	}
	if best >= 0 {
		return nodeSpans[best].ID, true
	}

	return "", false
}

// smallerSpan reports whether a is strictly smaller than b by line count,
// with column width breaking ties.
func smallerSpan(a, b span.Info) bool {
	if a.LineCount() != b.LineCount() {
		return a.LineCount() < b.LineCount()
	}
	return a.ColumnWidth() < b.ColumnWidth()
}
