/*
   shaderdbg/vm/config - end-to-end fixture+program pipeline test

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package config

import (
	"strings"
	"testing"

	"github.com/rcornwell/shaderdbg/vm"
)

// nullWrapper answers every delegated call with zero/false; this
// pipeline test never reaches a sample/math opcode, so the wrapper is
// never actually consulted for anything but SetCurrentInstruction.
type nullWrapper struct{}

func (nullWrapper) SetCurrentInstruction(i int) {}
func (nullWrapper) CalculateMathIntrinsic(op vm.Opcode, src vm.ShaderVariable) (vm.ShaderVariable, vm.ShaderVariable, bool) {
	return vm.ShaderVariable{}, vm.ShaderVariable{}, false
}
func (nullWrapper) CalculateSampleGather(op vm.Opcode, resource vm.SampleGatherResourceData, sampler vm.SampleGatherSamplerData,
	uv vm.ShaderVariable, ddx, ddy vm.ShaderVariable, texelOffset [3]int32, sampleIndex int,
	lodOrCompare float32, swizzle [4]uint8, gatherChannel int, debugStr string) (vm.ShaderVariable, bool) {
	return vm.ShaderVariable{}, false
}
func (nullWrapper) GetSampleInfo(operandType vm.OperandType, isAbsolute bool, slot uint32, debugStr string) (uint32, bool) {
	return 0, false
}
func (nullWrapper) GetBufferInfo(slot uint32, isUAV bool) (uint32, bool) { return 0, false }
func (nullWrapper) GetResourceInfo(slot uint32, isUAV bool, mipLevel uint32) (uint32, uint32, uint32, uint32, vm.ResourceDimension, bool) {
	return 0, 0, 0, 0, vm.DimUnknown, false
}
func (nullWrapper) AddDebugMessage(category, severity, source, text string) {}

// TestFixtureAndProgramPipeline drives a fixture + textual program all
// the way through vm.Init/vm.Step: r0 is seeded from a constant buffer
// then added to a member of a second constant buffer, verifying the
// loader, container and core
// agree on operand/decl shapes end to end.
func TestFixtureAndProgramPipeline(t *testing.T) {
	fixture, err := Parse(strings.NewReader(`temps 2
cbuffer 0 10 20 30 40
cbuffer 1 1 1 1 1
`))
	if err != nil {
		t.Fatalf("fixture parse error: %v", err)
	}
	cont := NewContainer(fixture)

	program, err := ParseProgram(strings.NewReader(`mov r0.xyzw, cb0[0].xyzw
iadd r1.xyzw, r0.xyzw, cb1[0].xyzw
ret
`))
	if err != nil {
		t.Fatalf("program parse error: %v", err)
	}
	for _, op := range program {
		cont.AddInstruction(op)
	}

	s := &vm.State{}
	vm.Init(s, cont)
	g := vm.NewGlobal()
	api := nullWrapper{}

	for !vm.Finished(s, cont.NumInstructions()) {
		vm.Step(s, g, api, cont, nil)
	}

	if !s.Done {
		t.Fatalf("expected the program to reach RET and set Done")
	}
	want := [4]uint32{11, 21, 31, 41}
	if s.Registers[1].Words != want {
		t.Errorf("expected r1=%v, got %v", want, s.Registers[1].Words)
	}
}
