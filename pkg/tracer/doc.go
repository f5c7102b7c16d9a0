// Package tracer provides distributed tracing functionality using OpenTelemetry.
//
// It abstracts away the complexity of OpenTelemetry to provide a clean API for
// creating spans, recording errors, and attaching attributes. Export to an
// OTLP backend is optional and controlled by configuration; when disabled,
// spans still exist in-process so context propagation keeps working.
//
// Basic usage:
//
//	ctx, span := tracerClient.StartSpan(ctx, "sync-create")
//	defer span.End()
//
//	if err != nil {
//		tracerClient.RecordErrorOnSpan(span, err)
//		return err
//	}
//
// All methods on the Tracer type are safe for concurrent use by multiple
// goroutines.
package tracer
