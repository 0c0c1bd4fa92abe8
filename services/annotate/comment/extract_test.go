// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/span"
)

const testRustLineComments = `// Line 1
fn foo() // Line 2
{
    let x; // Line 4
}
`

// TestExtract_LineComments verifies //-comment detection with exact spans:
// the span runs from the marker column to the end of the line, and the
// text is trimmed with the delimiter stripped.
func TestExtract_LineComments(t *testing.T) {
	comments := Extract(testRustLineComments)
	require.Len(t, comments, 3)

	assert.Equal(t, Comment{
		Text: "Line 1",
		Span: span.New(1, 0, 1, 9),
		Kind: KindLine,
	}, comments[0], "full-line comment starts at column 0")

	assert.Equal(t, Comment{
		Text: "Line 2",
		Span: span.New(2, 9, 2, 18),
		Kind: KindLine,
	}, comments[1], "trailing comment starts at the marker, not the line")

	assert.Equal(t, Comment{
		Text: "Line 4",
		Span: span.New(4, 11, 4, 20),
		Kind: KindLine,
	}, comments[2])
}

// TestExtract_BlockComment verifies single-line /* */ detection; the span
// includes both delimiters.
func TestExtract_BlockComment(t *testing.T) {
	comments := Extract(`/* block comment */`)
	require.Len(t, comments, 1)

	assert.Equal(t, Comment{
		Text: "block comment",
		Span: span.New(1, 0, 1, 19),
		Kind: KindBlock,
	}, comments[0])
}

// TestExtract_MultipleBlocksPerLine verifies that scanning resumes after
// each closed block so several /* */ pairs on one line are all found.
func TestExtract_MultipleBlocksPerLine(t *testing.T) {
	comments := Extract(`/* a */ /* b */ code();`)
	require.Len(t, comments, 2)

	assert.Equal(t, "a", comments[0].Text)
	assert.Equal(t, span.New(1, 0, 1, 7), comments[0].Span)
	assert.Equal(t, "b", comments[1].Text)
	assert.Equal(t, span.New(1, 8, 1, 15), comments[1].Span)
}

// TestExtract_MarkerInsideString verifies the quote tracker: markers inside
// string or character literals are not comments.
func TestExtract_MarkerInsideString(t *testing.T) {
	assert.Empty(t, Extract(`let s = "// not a comment";`))
	assert.Empty(t, Extract(`let url = "https://example.com";`))
	assert.Empty(t, Extract(`let s = "/* also not */";`))
}

// TestExtract_EscapedQuote verifies that a backslash-escaped quote does not
// close the string early and a real trailing comment is still found.
func TestExtract_EscapedQuote(t *testing.T) {
	comments := Extract(`let s = "a\"b"; // trailing`)
	require.Len(t, comments, 1)

	assert.Equal(t, "trailing", comments[0].Text)
	assert.Equal(t, span.New(1, 16, 1, 27), comments[0].Span)
}

// TestExtract_UnterminatedQuote verifies that an unclosed quote poisons the
// rest of the line: the tracker stays in-string and suppresses the marker.
func TestExtract_UnterminatedQuote(t *testing.T) {
	assert.Empty(t, Extract(`let s = "unterminated // not a comment`))
}

// TestExtract_MultiLineBlockSkipped verifies that block comments whose close
// marker sits on a later line are skipped entirely, per the single-line
// extraction model.
func TestExtract_MultiLineBlockSkipped(t *testing.T) {
	source := "/* opens here\n   still inside\n*/\nfn f() {}\n"
	assert.Empty(t, Extract(source))
}

// TestExtract_OrderedOutput verifies ascending (line, column) order even
// when a block comment precedes a line comment on the same line, since the
// two scans run separately.
func TestExtract_OrderedOutput(t *testing.T) {
	comments := Extract(`/* first */ x = 1; // second`)
	require.Len(t, comments, 2)

	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, KindBlock, comments[0].Kind)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, KindLine, comments[1].Kind)
	assert.True(t, comments[0].Span.StartBefore(comments[1].Span))
}

// TestExtract_CRLF verifies that carriage returns are stripped before
// column arithmetic so Windows line endings do not inflate end columns.
func TestExtract_CRLF(t *testing.T) {
	comments := Extract("// a\r\n// b\r\n")
	require.Len(t, comments, 2)

	assert.Equal(t, span.New(1, 0, 1, 4), comments[0].Span)
	assert.Equal(t, span.New(2, 0, 2, 4), comments[1].Span)
}

// TestExtract_Deterministic verifies that repeated extraction of the same
// source yields identical results.
func TestExtract_Deterministic(t *testing.T) {
	first := Extract(testRustLineComments)
	second := Extract(testRustLineComments)
	assert.Equal(t, first, second)
}

// TestExtract_Empty verifies the degenerate inputs.
func TestExtract_Empty(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("fn main() {}\n"))
}

// TestKind_JSONRoundTrip verifies the wire names for comment kinds.
func TestKind_JSONRoundTrip(t *testing.T) {
	data, err := KindLine.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"line"`, string(data))

	data, err = KindBlock.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"block"`, string(data))

	var k Kind
	require.NoError(t, k.UnmarshalJSON([]byte(`"block"`)))
	assert.Equal(t, KindBlock, k)

	assert.Error(t, k.UnmarshalJSON([]byte(`"doc"`)), "unknown kinds are rejected")
}
