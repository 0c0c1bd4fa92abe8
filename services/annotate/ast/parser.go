// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ast provides the grammar front end: language parsers that turn
// raw source text into the serializable mirror tree the annotation engine
// consumes (see the syntax package).
//
// The annotation core treats parsers as black boxes. The only interface
// points it relies on are the capability queries in the syntax package:
// whether a construct kind records a span, and whether it has a delimited
// body with a span of its own.
package ast

import (
	"context"
	"sync"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/syntax"
)

// Result is the output of one parse.
//
// Syntax errors do not fail the parse: parsers are error-tolerant and
// report diagnostics in Errors while still returning the constructs they
// could recover.
type Result struct {
	// File is the mirror tree of top-level constructs. Never nil on a
	// successful parse.
	File *syntax.File `json:"file"`

	// FilePath is the path the content was read from, as given by the
	// caller. Used for diagnostics, not resolved against the filesystem.
	FilePath string `json:"file_path"`

	// Language is the canonical language name (e.g., "rust").
	Language string `json:"language"`

	// Hash is the hex-encoded sha256 of the parsed content.
	Hash string `json:"hash"`

	// ParsedAtMilli is the parse timestamp as int64 UnixMilli,
	// per project conventions.
	ParsedAtMilli int64 `json:"parsed_at_milli"`

	// Errors holds human-readable diagnostics for partial failures.
	Errors []string `json:"errors,omitempty"`
}

// Parser is the contract for language-specific grammar front ends.
//
// Description:
//
//	Implementations parse one source unit and produce a syntax.File with
//	whatever position metadata the grammar makes available. Parsers must
//	be error-tolerant: syntactically invalid input yields partial results
//	plus diagnostics, not a failure.
//
// Thread Safety:
//
//	Implementations must be safe for concurrent use; each Parse call
//	should create its own grammar parser instance internally.
type Parser interface {
	// Parse turns raw source bytes into a Result.
	//
	// Returns a non-nil error only for complete failures (oversized or
	// non-UTF-8 content, canceled context). Syntax errors are reported
	// in Result.Errors.
	Parse(ctx context.Context, content []byte, filePath string) (*Result, error)

	// Language returns the canonical lowercase language name.
	Language() string

	// Extensions returns the file extensions this parser handles,
	// lowercase and including the leading dot.
	Extensions() []string
}

// Registry manages parser instances by language and file extension.
//
// Thread Safety:
//
//	Registry is fully thread-safe. Registration takes the write lock,
//	lookups take the read lock.
type Registry struct {
	mu sync.RWMutex

	byLanguage  map[string]Parser
	byExtension map[string]Parser
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]Parser),
		byExtension: make(map[string]Parser),
	}
}

// DefaultRegistry returns a Registry with every built-in parser
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewRustParser())
	return r
}

// Register adds a parser under its language name and all its extensions,
// overwriting any previous registration. Nil parsers are ignored.
func (r *Registry) Register(p Parser) {
	if p == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLanguage[p.Language()] = p
	for _, ext := range p.Extensions() {
		r.byExtension[ext] = p
	}
}

// ByLanguage returns the parser registered for the language name.
func (r *Registry) ByLanguage(language string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byLanguage[language]
	return p, ok
}

// ByExtension returns the parser registered for the file extension
// (including the leading dot).
func (r *Registry) ByExtension(ext string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byExtension[ext]
	return p, ok
}

// Languages returns the registered language names, in no particular order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	languages := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		languages = append(languages, lang)
	}
	return languages
}
