/*
   shaderdbg/vm - error taxonomy (§7)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import (
	"fmt"
	"log/slog"
)

// Error taxonomy is kinds, not types (§7): traps and recoverable
// warnings are both logged through slog.Default() and never unwind the
// interpreter. There is no exception channel; Step always returns a
// well-formed successor State.

// logTrap records a fatal-class error: write to a read-only operand, an
// unhandled opcode, an unsupported 64-bit immediate literal, or a
// vector width outside {1,4}. The step that triggers one may leave
// state unchanged.
func logTrap(format string, args ...any) {
	slog.Default().Error("trap: " + fmt.Sprintf(format, args...))
}

// logRecoverable records a warning-class error: an out-of-bounds
// register/cbuffer/indexable-temp index (clamped to a zero value), a
// derivative opcode run without a quad, an out-of-range sample index,
// or a sample-eval cache miss. Execution continues.
func logRecoverable(format string, args ...any) {
	slog.Default().Warn("recoverable: " + fmt.Sprintf(format, args...))
}

// logDebugMessage mirrors ApiWrapper.AddDebugMessage for core-originated
// diagnostics that don't go through the wrapper (e.g. a sample-eval
// cache miss falling back to the center interpolant, §7).
func logDebugMessage(format string, args ...any) {
	slog.Default().Debug(fmt.Sprintf(format, args...))
}
