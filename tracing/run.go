package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	RunSpanName    = "progress.run"
	ExportSpanName = "progress.export"
)

// StartRunSpan starts the span covering one reporter run, from Start or
// Resume until its loops exit.
func StartRunSpan(ctx context.Context, runID string, workloads int, expectedItems uint64) (context.Context, trace.Span) {
	return StartNewSpan(ctx, RunSpanName,
		attribute.String("run.id", runID),
		attribute.Int("workloads", workloads),
		attribute.Int64("expected.items", int64(expectedItems)),
	)
}

// EndRunSpan records whether the run finished its workloads and ends span.
func EndRunSpan(span trace.Span, finished bool, err error) {
	span.SetAttributes(attribute.Bool("finished", finished))
	EndSpan(span, err)
}

// StartExportSpan starts the span around the export of the completion stats.
func StartExportSpan(ctx context.Context, successCount, failureCount uint64) (context.Context, trace.Span) {
	return StartNewSpan(ctx, ExportSpanName,
		attribute.Int64("success.count", int64(successCount)),
		attribute.Int64("failure.count", int64(failureCount)),
	)
}

// EndSpan marks span as failed when err is set, then ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
