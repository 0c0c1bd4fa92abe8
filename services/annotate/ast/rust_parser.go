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
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/span"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/syntax"
)

// File size constants for input validation.
const (
	// DefaultMaxFileSize is the maximum file size the parser will accept (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024

	// WarnFileSize is the threshold at which a warning is logged (1MB).
	WarnFileSize = 1 * 1024 * 1024
)

// RustParserOption configures a RustParser instance.
type RustParserOption func(*RustParser)

// WithMaxFileSize sets the maximum file size the parser will accept.
func WithMaxFileSize(bytes int64) RustParserOption {
	return func(p *RustParser) {
		if bytes > 0 {
			p.maxFileSize = bytes
		}
	}
}

// RustParser implements the Parser interface for Rust source code.
//
// Description:
//
//	RustParser uses tree-sitter with the Rust grammar to recover the
//	top-level constructs of a source file into a syntax.File. Declaration
//	spans are the spans of the declared identifier; a function's body
//	block gets its own delimiter span, independent of the declaration's.
//
//	Spans are recorded only for kinds in the syntax package's span
//	capability table, mirroring the wire format's coverage: kinds outside
//	the table are collected without position metadata and cannot receive
//	comments downstream.
//
// Thread Safety:
//
//	RustParser instances are safe for concurrent use. Each Parse call
//	creates its own tree-sitter parser internally.
type RustParser struct {
	maxFileSize int64
}

// NewRustParser creates a RustParser with the given options.
func NewRustParser(opts ...RustParserOption) *RustParser {
	p := &RustParser{
		maxFileSize: DefaultMaxFileSize,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Language returns "rust".
func (p *RustParser) Language() string {
	return "rust"
}

// Extensions returns the file extensions this parser handles.
func (p *RustParser) Extensions() []string {
	return []string{".rs"}
}

// Parse recovers the top-level constructs of Rust source code.
//
// Description:
//
//	Parse validates the input (size limit, UTF-8), runs tree-sitter, and
//	maps the root's children to syntax items in document order. It is
//	error-tolerant: syntactically invalid code produces partial results
//	with diagnostics in Result.Errors rather than a failure.
//
// Inputs:
//   - ctx: Context for cancellation; checked before and after the parse.
//     Tree-sitter itself cannot be interrupted mid-parse.
//   - content: Raw Rust source bytes. Must be valid UTF-8.
//   - filePath: Path for diagnostics. Not resolved against the filesystem.
//
// Outputs:
//   - *Result: The mirror tree plus metadata. Never nil on success.
//   - error: Non-nil only for complete failures: ErrFileTooLarge,
//     ErrInvalidContent, or a canceled context.
//
// Thread Safety:
//
//	Safe for concurrent use.
func (p *RustParser) Parse(ctx context.Context, content []byte, filePath string) (*Result, error) {
	ctx, sp := startParseSpan(ctx, "rust", filePath, len(content))
	defer sp.End()

	start := time.Now()

	if err := ctx.Err(); err != nil {
		recordParseMetrics(ctx, "rust", time.Since(start), 0, false)
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	if int64(len(content)) > p.maxFileSize {
		recordParseMetrics(ctx, "rust", time.Since(start), 0, false)
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), p.maxFileSize)
	}

	if len(content) > WarnFileSize {
		slog.Warn("parsing large file",
			slog.String("file", filePath),
			slog.Int("size_bytes", len(content)))
	}

	if !utf8.Valid(content) {
		recordParseMetrics(ctx, "rust", time.Since(start), 0, false)
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	hash := sha256.Sum256(content)

	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		recordParseMetrics(ctx, "rust", time.Since(start), 0, false)
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	if err := ctx.Err(); err != nil {
		recordParseMetrics(ctx, "rust", time.Since(start), 0, false)
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	result := &Result{
		File:          &syntax.File{Items: make([]*syntax.Item, 0)},
		FilePath:      filePath,
		Language:      "rust",
		Hash:          hex.EncodeToString(hash[:]),
		ParsedAtMilli: time.Now().UnixMilli(),
	}

	root := tree.RootNode()
	if root == nil {
		result.Errors = append(result.Errors, "tree-sitter returned nil root node")
		return result, nil
	}
	if root.HasError() {
		result.Errors = append(result.Errors, "source contains syntax errors")
	}

	p.extractItems(root, content, result)

	setParseSpanResult(sp, len(result.File.Items), len(result.Errors))
	recordParseMetrics(ctx, "rust", time.Since(start), len(result.File.Items), true)

	return result, nil
}

// itemKindByNodeType maps top-level tree-sitter node types to construct
// kinds. Node types absent from this table are not declarations
// (attributes, comments, stray tokens) and are skipped.
var itemKindByNodeType = map[string]syntax.ItemKind{
	"function_item":            syntax.ItemKindFn,
	"function_signature_item":  syntax.ItemKindFn,
	"struct_item":              syntax.ItemKindStruct,
	"enum_item":                syntax.ItemKindEnum,
	"union_item":               syntax.ItemKindUnion,
	"trait_item":               syntax.ItemKindTrait,
	"impl_item":                syntax.ItemKindImpl,
	"mod_item":                 syntax.ItemKindMod,
	"foreign_mod_item":         syntax.ItemKindForeignMod,
	"use_declaration":          syntax.ItemKindUse,
	"const_item":               syntax.ItemKindConst,
	"static_item":              syntax.ItemKindStatic,
	"type_item":                syntax.ItemKindTypeAlias,
	"macro_definition":         syntax.ItemKindMacro,
	"macro_invocation":         syntax.ItemKindMacro,
	"extern_crate_declaration": syntax.ItemKindExternCrate,
}

// extractItems maps the root's children to syntax items in document order.
func (p *RustParser) extractItems(root *sitter.Node, content []byte, result *Result) {
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}

		kind, ok := itemKindByNodeType[child.Type()]
		if !ok {
			continue
		}

		item := &syntax.Item{Kind: kind}

		if ident := declarationNode(child, kind); ident != nil {
			item.Ident = string(content[ident.StartByte():ident.EndByte()])
			if kind.HasSpanCapability() {
				s := nodeSpan(ident)
				item.Span = &s
			}
		}

		if kind.HasBody() {
			if body := child.ChildByFieldName("body"); body != nil {
				s := nodeSpan(body)
				item.Block = &syntax.Block{Span: &s}
			}
		}

		result.File.Items = append(result.File.Items, item)
	}
}

// declarationNode returns the node whose span stands for the declaration:
// the declared identifier where the grammar has one, the implemented type
// for impl blocks, and the imported path for use declarations.
func declarationNode(node *sitter.Node, kind syntax.ItemKind) *sitter.Node {
	switch kind {
	case syntax.ItemKindImpl:
		return node.ChildByFieldName("type")
	case syntax.ItemKindUse:
		return node.ChildByFieldName("argument")
	default:
		return node.ChildByFieldName("name")
	}
}

// nodeSpan converts a tree-sitter node position to a span.Info.
//
// Tree-sitter rows are 0-based and columns are 0-based byte offsets, so
// rows shift to the 1-based line convention and columns carry over. This
// position source does supply byte offsets, so the offset fields are
// populated rather than left at their reserved zero.
func nodeSpan(node *sitter.Node) span.Info {
	return span.Info{
		StartOffset: int(node.StartByte()),
		EndOffset:   int(node.EndByte()),
		StartLine:   int(node.StartPoint().Row) + 1,
		StartColumn: int(node.StartPoint().Column),
		EndLine:     int(node.EndPoint().Row) + 1,
		EndColumn:   int(node.EndPoint().Column),
	}
}
