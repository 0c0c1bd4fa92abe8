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
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/AleutianAI/AleutianAnnotate/services/annotate/comment"
	"github.com/AleutianAI/AleutianAnnotate/services/annotate/syntax"
)

// ErrNilFile is returned when the annotation pipeline is given no tree.
var ErrNilFile = errors.New("annotate: nil file")

// Option configures an annotation run.
type Option func(*options)

type options struct {
	policy Policy
}

// WithPolicy selects the association policy for the run.
//
// The default is PolicyConservative. Callers must keep the choice
// consistent across runs over the same corpus for round-trip stability.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// Stats summarizes one annotation run.
type Stats struct {
	// Comments is the number of comments the extractor recovered.
	Comments int

	// NodeSpans is the number of span-bearing constructs collected.
	NodeSpans int

	// Associated is the number of comments some construct claimed.
	Associated int

	// Residual is the number of comments retained at the document root.
	Residual int

	// Policy is the policy the run used.
	Policy Policy
}

// Annotate runs the full pipeline over one source unit: extract comments
// from the raw text, collect node spans from the parsed tree, associate
// each comment with at most one construct, and mutate the tree so each
// construct carries its comments. Unclaimed comments end up on the file's
// document-level residual list.
//
// Description:
//
//	The four stages execute in strict order; each consumes the prior
//	stage's complete output, so there is no partial or streaming variant.
//	The run is CPU-bound and synchronous. The context is used for tracing
//	and metrics, not for cancellation: a caller wanting bounded latency
//	should bound the surrounding parse-this-file operation instead.
//
// Inputs:
//   - ctx: Context for tracing and metric recording.
//   - file: The parsed tree, mutated in place. Must not be nil.
//   - source: The raw source text the tree was parsed from.
//   - opts: Optional configuration (WithPolicy).
//
// Outputs:
//   - Stats: Counts for the run. The cardinality invariant holds:
//     Associated + Residual == Comments minus capability drops.
//   - error: ErrNilFile when file is nil. The pipeline itself degrades
//     gracefully rather than failing.
//
// Thread Safety:
//
//	Annotate mutates file; do not share the tree across concurrent runs.
//	Distinct source units may be annotated concurrently.
func Annotate(ctx context.Context, file *syntax.File, source string, opts ...Option) (Stats, error) {
	o := options{policy: PolicyConservative}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := startAnnotateSpan(ctx, o.policy, len(source))
	defer span.End()

	start := time.Now()

	if file == nil {
		return Stats{Policy: o.policy}, ErrNilFile
	}

	comments := comment.Extract(source)
	nodeSpans := Collect(file)
	associations := Associate(comments, nodeSpans, o.policy)
	Apply(file, comments, associations)

	stats := Stats{
		Comments:  len(comments),
		NodeSpans: len(nodeSpans),
		Residual:  len(file.Comments),
		Policy:    o.policy,
	}
	for _, claimed := range associations {
		stats.Associated += len(claimed)
	}

	slog.Debug("annotation run complete",
		slog.String("policy", o.policy.String()),
		slog.Int("comments", stats.Comments),
		slog.Int("node_spans", stats.NodeSpans),
		slog.Int("associated", stats.Associated),
		slog.Int("residual", stats.Residual))

	setAnnotateSpanResult(span, stats)
	recordAnnotateMetrics(ctx, o.policy, time.Since(start), stats)

	return stats, nil
}
