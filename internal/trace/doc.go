// Package trace records driver, pass and per-file spans of a newick run.
//
// Enable tracing via command-line flags:
//
//	newick check --trace=- --trace-level=detail trees/
//
// Levels:
//
//   - LevelOff: no tracing
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file spans
//
// Tracers are propagated via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
