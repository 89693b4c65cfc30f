// Package capture records fragments of original source text and stitches
// them back into one source line.
//
// # Data model
//
//   - Capture – one fragment: its text, 1-based line and 0-based column
//     extent. A capture is empty until Build (or a first Merge) fills it.
//   - Invocation – the fragments of one combinator call site: an optional
//     destructuring binding, the identifier, the call expression and the
//     input expression.
//   - FunctionContext – one function's signature plus the invocations
//     recognised in its body, in source order.
//
// # Merging
//
// Merge appends a fragment to an aggregate only when the fragment sits on
// the target line. The first fragment is left-padded with spaces up to its
// start column so the aggregate lines up with the original source; later
// fragments are appended as-is. Fragments must be merged left to right.
//
// Combine applies the merge to one invocation of a FunctionContext, picked by
// a Selector. FirstInvocation is the default selector; FailedInvocation
// consults FunctionContext.FailureIndex instead.
//
// All types are plain values. Clone before sharing a value across owners.
package capture
