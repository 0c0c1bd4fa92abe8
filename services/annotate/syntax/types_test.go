// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package syntax

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/comment"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/span"
)

// TestItemKind_WireNames verifies the string form of every kind, including
// the two that differ from their Go identifier ("type", "trait_alias").
func TestItemKind_WireNames(t *testing.T) {
	cases := map[ItemKind]string{
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

	for kind, name := range cases {
		assert.Equal(t, name, kind.String())
		assert.Equal(t, kind, ParseItemKind(name), "wire name must round-trip")
	}

	assert.Equal(t, ItemKindUnknown, ParseItemKind("closure"), "unrecognized names parse as unknown")
}

// TestItemKind_JSONRoundTrip verifies string encoding plus the numeric
// fallback kept for older payloads.
func TestItemKind_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(ItemKindTypeAlias)
	require.NoError(t, err)
	assert.Equal(t, `"type"`, string(data))

	var k ItemKind
	require.NoError(t, json.Unmarshal([]byte(`"fn"`), &k))
	assert.Equal(t, ItemKindFn, k)

	require.NoError(t, json.Unmarshal([]byte(`3`), &k))
	assert.Equal(t, ItemKindEnum, k, "numeric payloads use the raw enum value")

	assert.Error(t, json.Unmarshal([]byte(`true`), &k))
}

// TestCapabilityTables verifies the span and comment capability sets.
//
// The two tables are deliberately different: a union or extern block can
// hold comments but records no span, while struct and mod have neither
// capability and silently drop any comment that would match them.
func TestCapabilityTables(t *testing.T) {
	spanKinds := []ItemKind{
		ItemKindFn, ItemKindEnum, ItemKindTrait, ItemKindImpl,
		ItemKindUse, ItemKindConst, ItemKindStatic, ItemKindTypeAlias,
	}
	for _, k := range spanKinds {
		assert.True(t, k.HasSpanCapability(), "%s should record a span", k)
		assert.True(t, k.CanHoldComments(), "%s should hold comments", k)
	}

	for _, k := range []ItemKind{ItemKindUnion, ItemKindForeignMod} {
		assert.False(t, k.HasSpanCapability(), "%s records no span", k)
		assert.True(t, k.CanHoldComments(), "%s still holds comments", k)
	}

	noCapability := []ItemKind{
		ItemKindUnknown, ItemKindStruct, ItemKindMod, ItemKindTraitAlias,
		ItemKindMacro, ItemKindExternCrate, ItemKindVerbatim,
	}
	for _, k := range noCapability {
		assert.False(t, k.HasSpanCapability(), "%s records no span", k)
		assert.False(t, k.CanHoldComments(), "%s drops comments", k)
	}
}

// TestItemKind_HasBody verifies that only functions own a body block.
func TestItemKind_HasBody(t *testing.T) {
	assert.True(t, ItemKindFn.HasBody())
	assert.False(t, ItemKindImpl.HasBody())
	assert.False(t, ItemKindTrait.HasBody())
}

// TestFile_JSONShape verifies the wire contract: empty comment lists are
// omitted, nil spans are omitted, and populated fields use the documented
// names.
func TestFile_JSONShape(t *testing.T) {
	declSpan := span.New(2, 3, 2, 6)
	file := &File{
		Items: []*Item{
			{
				Kind:  ItemKindFn,
				Ident: "foo",
				Span:  &declSpan,
				Block: &Block{},
				Comments: []comment.Comment{
					{Text: "note", Span: span.New(1, 0, 1, 7), Kind: comment.KindLine},
				},
			},
			{Kind: ItemKindStruct, Ident: "Bar"},
		},
	}

	data, err := EncodeFile(file, false)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"items": [
			{
				"kind": "fn",
				"ident": "foo",
				"span": {
					"start_offset": 0, "end_offset": 0,
					"start_line": 2, "start_column": 3,
					"end_line": 2, "end_column": 6
				},
				"block": {},
				"comments": [
					{
						"text": "note",
						"span": {
							"start_offset": 0, "end_offset": 0,
							"start_line": 1, "start_column": 0,
							"end_line": 1, "end_column": 7
						},
						"kind": "line"
					}
				]
			},
			{"kind": "struct", "ident": "Bar"}
		]
	}`, string(data))

	back, err := DecodeFile(data)
	require.NoError(t, err)
	assert.Equal(t, file, back, "decode must invert encode")
}

// TestEncodeFile_NilFile verifies that a nil tree is rejected.
func TestEncodeFile_NilFile(t *testing.T) {
	_, err := EncodeFile(nil, false)
	assert.Error(t, err)
}
