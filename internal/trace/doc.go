// Package trace records what the compilation pipeline does.
//
// A tracer receives span and point events from the pipeline: one span per run,
// one span per stage, and a point per lowered statement. Tracing is off unless
// a tracer is attached to the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "liveness", parentID)
//	defer span.End("")
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelError: nothing routine; reserved for crash dumps
//   - LevelPhase: pipeline runs
//   - LevelDetail: runs and stages
//   - LevelDebug: everything, statements included
package trace
