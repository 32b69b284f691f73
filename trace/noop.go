// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ava-labs/avalanchego/trace"

	oteltrace "go.opentelemetry.io/otel/trace"
)

var (
	_ trace.Tracer = (*noOpTracer)(nil)

	// Noop records nothing. It is the ledger's tracer unless tracing is
	// enabled.
	Noop trace.Tracer = noOpTracer{Tracer: noop.NewTracerProvider().Tracer(DefaultAppName)}
)

// noOpTracer is an implementation of trace.Tracer that does nothing.
type noOpTracer struct {
	oteltrace.Tracer
}

func (noOpTracer) Close() error {
	return nil
}
