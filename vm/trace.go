/*
   shaderdbg/vm - opcode/lane trace gating

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import "github.com/rcornwell/shaderdbg/util/trace"

// DebugMask is the set of trace levels a harness has enabled, OR'd
// together from the constants below. Zero (the default) disables all
// tracing regardless of whether a log file is open.
var DebugMask int

const (
	// TraceStep logs every non-control-flow opcode dispatch.
	TraceStep = 1 << iota
	// TraceLane logs sibling-lane reads made by derivative and
	// implicit-derivative sample evaluation.
	TraceLane
)

func traceStep(pc int, op Opcode) {
	trace.DebugStepf(pc, DebugMask, TraceStep, "dispatch %s", op)
}

func traceLane(quadIndex int, format string, a ...interface{}) {
	trace.DebugLanef(quadIndex, DebugMask, TraceLane, format, a...)
}
