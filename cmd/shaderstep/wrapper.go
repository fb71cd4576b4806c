/*
   shaderdbg/cmd/shaderstep - null host-graphics shim

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package main

import (
	"log/slog"

	"github.com/rcornwell/shaderdbg/vm"
)

// nullWrapper is a vm.ApiWrapper that answers every delegated call
// with failure and a log line. The real texture sampler, rasterizer
// and transcendental-math backend are host-graphics concerns out of
// this core's scope (§1 "OUT OF SCOPE"); this stub lets the stepper
// run programs that never reach SAMPLE*/math intrinsics, and makes the
// "delegated failure halts the step" behaviour (§7) observable for
// programs that do.
type nullWrapper struct {
	pc int
}

func (w *nullWrapper) SetCurrentInstruction(i int) { w.pc = i }

func (w *nullWrapper) CalculateMathIntrinsic(op vm.Opcode, src vm.ShaderVariable) (vm.ShaderVariable, vm.ShaderVariable, bool) {
	slog.Warn("no math backend wired in", "pc", w.pc, "opcode", op)
	return vm.ShaderVariable{}, vm.ShaderVariable{}, false
}

func (w *nullWrapper) CalculateSampleGather(op vm.Opcode, resource vm.SampleGatherResourceData,
	sampler vm.SampleGatherSamplerData, uv vm.ShaderVariable, ddx, ddy vm.ShaderVariable,
	texelOffset [3]int32, sampleIndex int, lodOrCompare float32, swizzle [4]uint8,
	gatherChannel int, debugStr string) (vm.ShaderVariable, bool) {
	slog.Warn("no sample backend wired in", "pc", w.pc, "opcode", op, "slot", resource.Slot)
	return vm.ShaderVariable{}, false
}

func (w *nullWrapper) GetSampleInfo(operandType vm.OperandType, isAbsolute bool, slot uint32, debugStr string) (uint32, bool) {
	return 0, false
}

func (w *nullWrapper) GetBufferInfo(slot uint32, isUAV bool) (uint32, bool) {
	return 0, false
}

func (w *nullWrapper) GetResourceInfo(slot uint32, isUAV bool, mipLevel uint32) (uint32, uint32, uint32, uint32, vm.ResourceDimension, bool) {
	return 0, 0, 0, 0, vm.DimUnknown, false
}

func (w *nullWrapper) AddDebugMessage(category, severity, source, text string) {
	slog.Debug(text, "category", category, "severity", severity, "source", source)
}
