// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package assoc implements the comment-association pipeline: span
// collection over the parsed tree, the matching policies that decide which
// construct owns each comment, and the applier that mutates the tree.
//
// All stages are pure, synchronous, single-pass transformations over one
// source unit. They share no mutable state and must run in strict order:
// each stage consumes the prior stage's complete output.
package assoc

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/span"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/syntax"
)

// blockSuffix derives a body block's identifier from its declaration's.
const blockSuffix = "_block"

// NodeSpan pairs a structurally derived node identifier with its span.
//
// Identifiers are positional: the Nth top-level item is "item_N" and its
// body block, when delimited, is "item_N_block". Identity is never
// reference-based, so collection and application can address the same
// node without sharing pointers.
type NodeSpan struct {
	// ID is the derived node identifier ("item_N" or "item_N_block").
	ID string

	// Span is the node's recorded source range.
	Span span.Info
}

// IsBlock reports whether the identifier names a body block rather than
// a declaration.
func (n NodeSpan) IsBlock() bool {
	return strings.HasSuffix(n.ID, blockSuffix)
}

// ItemID returns the positional identifier for the Nth top-level item.
func ItemID(index int) string {
	return fmt.Sprintf("item_%d", index)
}

// BlockID returns the derived identifier for an item's body block.
func BlockID(itemID string) string {
	return itemID + blockSuffix
}

// Collect walks the file's top-level items in document order and returns
// one NodeSpan per span-bearing construct.
//
// Description:
//
//	For each item whose parser recorded a declaration span, Collect appends
//	a NodeSpan keyed by the item's positional identifier. For items with a
//	delimited body, it additionally appends the block's own delimiter span
//	under the derived block identifier. The two entries are independent:
//	a block span can be present without a declaration span and vice versa.
//
//	Items with no recorded span are skipped. They simply cannot receive
//	comments - a known, accepted coverage gap, not an error.
//
// Outputs:
//   - []NodeSpan: Document-order sequence. Order is not significant for
//     matching but is stable, which keeps the association deterministic.
//
// Thread Safety:
//
//	Collect only reads the file and is safe for concurrent use.
func Collect(file *syntax.File) []NodeSpan {
	if file == nil {
		return nil
	}

	var spans []NodeSpan
	for i, item := range file.Items {
		if item == nil {
			continue
		}
		id := ItemID(i)
		if item.Span != nil {
			spans = append(spans, NodeSpan{ID: id, Span: *item.Span})
		}
		if item.Block != nil && item.Block.Span != nil {
			spans = append(spans, NodeSpan{ID: BlockID(id), Span: *item.Block.Span})
		}
	}
	return spans
}
