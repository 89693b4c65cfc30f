// Package trace records what the combdiag driver does while loading and
// rendering replay files.
//
// Enable tracing from the command line:
//
//	combdiag batch --trace=- --trace-level=detail ./captures
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: placeholder reports only
//   - LevelPhase: driver boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including per-report events
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "load", parent)
//	defer span.End("")
package trace
