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
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/syntax"
)

// Apply mutates the file so each construct carries its associated
// comments, and appends every comment no construct claimed to the file's
// document-level residual list.
//
// Description:
//
//	For every top-level item, Apply looks up the item's positional
//	identifier in the association map and sets the item's comment list;
//	for items with a body block it separately looks up the derived block
//	identifier and sets the block's own list.
//
//	Attachment consults the kind's comment capability: kinds that
//	structurally cannot carry a comment list silently drop the comments
//	that matched them. That is a modeling limitation of the capability
//	table, not a runtime failure, so no error surfaces.
//
//	Residual handling is cardinality-preserving over the rest: extracted
//	comments that appear in no association entry go, in source order, to
//	file.Comments. Only capability drops remove comments from the output.
//
// Inputs:
//   - file: The parsed tree to mutate. Nil is a no-op.
//   - extracted: The full extractor output in source order, used to
//     compute the residual list.
//   - associations: The Associate output mapping identifiers to comments.
//
// Thread Safety:
//
//	Apply mutates file and must not run concurrently with other access
//	to the same tree.
func Apply(file *syntax.File, extracted []comment.Comment, associations map[string][]comment.Comment) {
	if file == nil {
		return
	}

	claimed := make(map[comment.Comment]bool)

	for i, item := range file.Items {
		if item == nil {
			continue
		}
		id := ItemID(i)

		if comments, ok := associations[id]; ok {
			for _, c := range comments {
				claimed[c] = true
			}
			if item.Kind.CanHoldComments() {
				item.Comments = comments
			}
		}

		if comments, ok := associations[BlockID(id)]; ok {
			for _, c := range comments {
				claimed[c] = true
			}
			if item.Block != nil {
				item.Block.Comments = comments
			}
		}
	}

	for _, c := range extracted {
		if !claimed[c] {
			file.Comments = append(file.Comments, c)
		}
	}
}
