// Package diag defines the error value instrumented parser functions return
// and turns it into an annotated report.
//
// # Purpose
//
//   - Carry the captured FunctionContext of a failing function together with
//     the input being parsed and the originating file.
//   - Compose with the host combinator library: low-level error kinds are
//     discarded, and the first context-carrying Error always wins.
//   - Reduce an Error to a diagfmt.Report: the function signature as context,
//     the failing invocation's source line with an underline, and the input as
//     a footer.
//
// # Build modes
//
// The package has two build variants fixed at compile time:
//
//   - default: diagnostics enabled. Error stores the context and file, and
//     Render/Report/Error() produce the annotated report.
//   - -tags nodiag: diagnostics disabled. The context and file fields do not
//     exist, setters are no-ops, and every render entry point returns empty
//     output.
//
// Enabled reports which variant was compiled.
//
// # Fallbacks
//
// When no invocation was captured, or the selected invocation spans several
// source lines, Report returns a placeholder with a fixed title and no
// snippets. Rendering never fails; a capture whose columns were never set is
// a contract violation and panics.
//
// # Emitting
//
// Rendering is pure. Writing the text to a sink is the caller's job; a
// Reporter (WriterReporter, DedupReporter) does that for callers that emit
// more than one report.
package diag
