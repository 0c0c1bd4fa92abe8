// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package comment provides the comment model and the lexical extractor
// that recovers comments and their spans from raw source text.
//
// The extractor is deliberately lexical, not grammar-aware: it operates on
// one physical line at a time and never consults the parsed tree. Comments
// that span multiple lines (multi-line block comments, comments inside
// multi-line string literals) are outside its scope.
package comment

import (
	"encoding/json"
	"fmt"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/span"
)

// Kind distinguishes line comments from block comments.
type Kind int

const (
	// KindLine is a comment introduced by // running to end of line.
	KindLine Kind = iota

	// KindBlock is a comment enclosed in /* */ on a single line.
	KindBlock
)

// String returns the lowercase wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its lowercase wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes the kind from its lowercase wire name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "line":
		*k = KindLine
	case "block":
		*k = KindBlock
	default:
		return fmt.Errorf("unknown comment kind %q", s)
	}
	return nil
}

// Comment is a single comment recovered from source text.
//
// Description:
//
//	Text holds the comment content with delimiters stripped and surrounding
//	whitespace trimmed. Span covers the comment including its delimiters:
//	for a line comment, from the // marker to the end of the line; for a
//	block comment, from /* through the closing */.
//
//	Comments are immutable once extracted. Ownership passes from the
//	extractor to the associator to the applier; they are never aliased.
type Comment struct {
	// Text is the comment content without delimiters, trimmed.
	Text string `json:"text"`

	// Span is the source location of the comment including delimiters.
	Span span.Info `json:"span"`

	// Kind reports whether this was a line or block comment.
	Kind Kind `json:"kind"`
}
