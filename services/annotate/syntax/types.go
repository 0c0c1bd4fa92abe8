// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package syntax defines the serializable mirror tree the annotation
// engine operates on.
//
// The tree is produced by an external grammar parser (see the ast package)
// and mutated by the annotation pipeline (see the assoc package). It is a
// flat, order-preserving container of top-level items: item identity is
// positional ("item_N", "item_N_block"), never reference-based, so the
// collection and application stages can address nodes without sharing
// mutable references.
//
// Design principles follow the rest of the codebase:
//   - Language-agnostic construct kinds with explicit capability tables
//   - No map[string]interface{} - concrete types only
//   - JSON field names stable across versions; empty comment lists omitted
package syntax

import (
	"encoding/json"
	"fmt"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/comment"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/span"
)

// ItemKind represents the kind of a top-level construct.
//
// The set mirrors the declaration forms of the source grammar. Which kinds
// record spans and which can hold comments is governed by the capability
// tables below, not by the kind itself.
type ItemKind int

const (
	// ItemKindUnknown indicates an unrecognized construct.
	ItemKindUnknown ItemKind = iota

	// ItemKindFn is a function declaration with a brace-delimited body.
	ItemKindFn

	// ItemKindStruct is a struct declaration.
	ItemKindStruct

	// ItemKindEnum is an enum declaration.
	ItemKindEnum

	// ItemKindUnion is a union declaration.
	ItemKindUnion

	// ItemKindTrait is a trait declaration.
	ItemKindTrait

	// ItemKindTraitAlias is a trait alias declaration.
	ItemKindTraitAlias

	// ItemKindImpl is an impl block.
	ItemKindImpl

	// ItemKindMod is a module declaration.
	ItemKindMod

	// ItemKindForeignMod is an extern block.
	ItemKindForeignMod

	// ItemKindUse is a use declaration.
	ItemKindUse

	// ItemKindConst is a constant declaration.
	ItemKindConst

	// ItemKindStatic is a static declaration.
	ItemKindStatic

	// ItemKindTypeAlias is a type alias declaration.
	ItemKindTypeAlias

	// ItemKindMacro is a macro definition or top-level macro invocation.
	ItemKindMacro

	// ItemKindExternCrate is an extern crate declaration.
	ItemKindExternCrate

	// ItemKindVerbatim is source text the parser passed through unparsed.
	ItemKindVerbatim
)

// itemKindNames maps ItemKind values to their wire names.
var itemKindNames = map[ItemKind]string{
	ItemKindUnknown:     "unknown",
	ItemKindFn:          "fn",
	ItemKindStruct:      "struct",
	ItemKindEnum:        "enum",
	ItemKindUnion:       "union",
	ItemKindTrait:       "trait",
	ItemKindTraitAlias:  "trait_alias",
	ItemKindImpl:        "impl",
	ItemKindMod:         "mod",
	ItemKindForeignMod:  "foreign_mod",
	ItemKindUse:         "use",
	ItemKindConst:       "const",
	ItemKindStatic:      "static",
	ItemKindTypeAlias:   "type",
	ItemKindMacro:       "macro",
	ItemKindExternCrate: "extern_crate",
	ItemKindVerbatim:    "verbatim",
}

// String returns the wire name of the kind, or "unknown".
func (k ItemKind) String() string {
	if name, ok := itemKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON serializes the kind as a JSON string (e.g., "fn") rather
// than a number for readability and forward compatibility.
func (k ItemKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts both string values (e.g., "fn") and numeric
// values for backward compatibility.
func (k *ItemKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = ParseItemKind(s)
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return fmt.Errorf("ItemKind must be string or int: %w", err)
	}
	*k = ItemKind(i)
	return nil
}

// ParseItemKind converts a wire name to an ItemKind.
//
// Returns ItemKindUnknown if the string is not recognized.
func ParseItemKind(s string) ItemKind {
	for kind, name := range itemKindNames {
		if name == s {
			return kind
		}
	}
	return ItemKindUnknown
}

// Block is a brace-delimited body belonging to an item.
//
// Its span runs from the opening delimiter to the closing delimiter and is
// independent of the owning declaration's span. A block owns its own
// comment list: a comment inside the braces belongs to the block, not to
// the declaration.
type Block struct {
	// Span covers the body from open delimiter to close delimiter.
	// Nil when the parser recorded no position for the block.
	Span *span.Info `json:"span,omitempty"`

	// Comments are the comments associated with the block's interior,
	// in source order. Omitted from JSON when empty.
	Comments []comment.Comment `json:"comments,omitempty"`
}

// Item is a single top-level construct in the tree.
//
// Description:
//
//	Span is the declaration's own span - by convention the span of the
//	declared identifier, which is what the position source records. It is
//	nil for kinds outside the span capability table; such items simply
//	cannot receive comments (an accepted coverage gap, not an error).
//
//	Comments is only ever populated for kinds in the comment capability
//	table. The applier consults the table before attaching; for other
//	kinds the attachment is a silent no-op.
type Item struct {
	// Kind identifies the construct form.
	Kind ItemKind `json:"kind"`

	// Ident is the declared name, empty for unnamed constructs
	// (impl blocks, use declarations, verbatim text).
	Ident string `json:"ident,omitempty"`

	// Span is the declaration span, nil when the parser recorded none.
	Span *span.Info `json:"span,omitempty"`

	// Block is the brace-delimited body, non-nil only for function items.
	Block *Block `json:"block,omitempty"`

	// Comments are the comments associated with the declaration,
	// in source order. Omitted from JSON when empty.
	Comments []comment.Comment `json:"comments,omitempty"`
}

// File is the root of the mirror tree for one source unit.
type File struct {
	// Items are the top-level constructs in document order.
	Items []*Item `json:"items"`

	// Comments is the document-level residual list: every extracted
	// comment that no construct claimed, in source order. Omitted from
	// JSON when empty.
	Comments []comment.Comment `json:"comments,omitempty"`
}

// spanCapability enumerates the kinds for which the parser records a
// declaration span. Kinds outside this table are collected without
// position metadata and therefore never receive comments.
//
// This is an explicit capability table: extending span coverage to a new
// kind is a deliberate format change, not a parser tweak.
var spanCapability = map[ItemKind]bool{
	ItemKindFn:        true,
	ItemKindEnum:      true,
	ItemKindTrait:     true,
	ItemKindImpl:      true,
	ItemKindUse:       true,
	ItemKindConst:     true,
	ItemKindStatic:    true,
	ItemKindTypeAlias: true,
}

// commentCapability enumerates the kinds whose items carry a comment
// list. Attaching to any other kind is a silent no-op: the comments that
// would have matched are dropped by the applier, a modeling limitation
// rather than a runtime failure.
var commentCapability = map[ItemKind]bool{
	ItemKindFn:         true,
	ItemKindEnum:       true,
	ItemKindUnion:      true,
	ItemKindTrait:      true,
	ItemKindImpl:       true,
	ItemKindForeignMod: true,
	ItemKindUse:        true,
	ItemKindConst:      true,
	ItemKindStatic:     true,
	ItemKindTypeAlias:  true,
}

// HasSpanCapability reports whether the parser records a declaration span
// for items of this kind.
func (k ItemKind) HasSpanCapability() bool {
	return spanCapability[k]
}

// CanHoldComments reports whether items of this kind carry a comment list.
func (k ItemKind) CanHoldComments() bool {
	return commentCapability[k]
}

// HasBody reports whether items of this kind own a brace-delimited body
// block with its own span and comment list.
func (k ItemKind) HasBody() bool {
	return k == ItemKindFn
}
