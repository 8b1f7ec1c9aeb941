// Package explain models solver output as data.
//
// Solvers never build prose. They append Step records (operation, operands,
// result) to an Explanation and hand it back; text is produced only at the
// boundary by Render, using a per-solver Templates table.
//
// # Failures
//
// An Explanation carries at most one Failure. Input problems (malformed
// token counts, zero modulus, unparseable expressions) use FailInput and
// render as
//
//	❌ <message>
//
// while unexpected failures recovered by the dispatcher use FailInternal
// and render as
//
//	⚠️ Error: <message>
//
// Steps recorded before the failure are still rendered, so partial work
// (for example the system of congruences) stays visible.
package explain
