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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for comment association.
var (
	tracer = otel.Tracer("aleutian.annotate.assoc")
	meter  = otel.Meter("aleutian.annotate.assoc")
)

// Metrics for annotation pipeline runs.
var (
	annotateLatency   metric.Float64Histogram
	annotateTotal     metric.Int64Counter
	commentsExtracted metric.Int64Histogram
	commentsClaimed   metric.Int64Counter
	commentsResidual  metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		annotateLatency, err = meter.Float64Histogram(
			"annotate_duration_seconds",
			metric.WithDescription("Duration of annotation pipeline runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		annotateTotal, err = meter.Int64Counter(
			"annotate_total",
			metric.WithDescription("Total number of annotation runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		commentsExtracted, err = meter.Int64Histogram(
			"annotate_comments_extracted",
			metric.WithDescription("Number of comments extracted per run"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		commentsClaimed, err = meter.Int64Counter(
			"annotate_comments_claimed_total",
			metric.WithDescription("Total comments claimed by a construct"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		commentsResidual, err = meter.Int64Counter(
			"annotate_comments_residual_total",
			metric.WithDescription("Total comments retained at the document root"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordAnnotateMetrics records metrics for one pipeline run.
func recordAnnotateMetrics(ctx context.Context, policy Policy, duration time.Duration, stats Stats) {
	if err := initMetrics(); err != nil {
		return // Silently skip if metrics init failed
	}

	attrs := metric.WithAttributes(
		attribute.String("policy", policy.String()),
	)

	annotateLatency.Record(ctx, duration.Seconds(), attrs)
	annotateTotal.Add(ctx, 1, attrs)
	commentsExtracted.Record(ctx, int64(stats.Comments), attrs)
	commentsClaimed.Add(ctx, int64(stats.Associated), attrs)
	commentsResidual.Add(ctx, int64(stats.Residual), attrs)
}

// startAnnotateSpan creates a span for one pipeline run.
//
// The caller must call span.End().
func startAnnotateSpan(ctx context.Context, policy Policy, sourceSize int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Annotate",
		trace.WithAttributes(
			attribute.String("annotate.policy", policy.String()),
			attribute.Int("annotate.source_size", sourceSize),
		),
	)
}

// setAnnotateSpanResult sets the result attributes on a pipeline span.
func setAnnotateSpanResult(span trace.Span, stats Stats) {
	span.SetAttributes(
		attribute.Int("annotate.comment_count", stats.Comments),
		attribute.Int("annotate.node_span_count", stats.NodeSpans),
		attribute.Int("annotate.associated_count", stats.Associated),
		attribute.Int("annotate.residual_count", stats.Residual),
	)
}
