// Package trace records what the ztc driver does and how long it takes.
//
// Enable it from the command line:
//
//	ztc --trace=- --trace-level=detail --file intro.txt
//
// A StreamTracer writes every event as soon as it is emitted, either as text
// or as NDJSON. When tracing is off the Nop tracer is used and spans cost a
// single interface call.
//
// Levels select scopes:
//
//   - LevelPhase: driver and pass boundaries (load, normalize, compile, write)
//   - LevelDetail: per-file events inside a bundle build
//   - LevelDebug: everything
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "compile", 0)
//	defer span.End("")
package trace
