/*
   shaderdbg/vm - external host-graphics collaborator

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// SampleGatherResourceData describes the resource a SAMPLE/LD/GATHER4
// opcode is bound to, built from the matching resource declaration and
// operand slot (§4.6).
type SampleGatherResourceData struct {
	Slot       uint32
	Dim        ResourceDimension
	ReturnType [4]CompType
}

// SampleGatherSamplerData describes the sampler state bound to a
// SAMPLE opcode.
type SampleGatherSamplerData struct {
	Slot     uint32
	Comparison bool
}

// ApiWrapper is the host-graphics shim: texture sampling, gathers,
// transcendental math and resource-info queries the core delegates to
// rather than implementing itself (§1, §6). A false return from a math
// or sample call halts the current step without advancing the program
// counter (§7 "Delegated failure").
type ApiWrapper interface {
	SetCurrentInstruction(i int)

	// CalculateMathIntrinsic evaluates RCP/RSQ/SQRT/EXP/LOG/SINCOS and
	// similar transcendentals. outB is only meaningful for two-output
	// opcodes such as SINCOS.
	CalculateMathIntrinsic(op Opcode, src ShaderVariable) (outA, outB ShaderVariable, ok bool)

	// CalculateSampleGather evaluates SAMPLE*/LD*/GATHER4*/LOD.
	CalculateSampleGather(op Opcode, resource SampleGatherResourceData, sampler SampleGatherSamplerData,
		uv ShaderVariable, ddx, ddy ShaderVariable, texelOffset [3]int32, sampleIndex int,
		lodOrCompare float32, swizzle [4]uint8, gatherChannel int, debugStr string) (ShaderVariable, bool)

	// GetSampleInfo answers SAMPLE_INFO (sample count for a resource or
	// the current render target).
	GetSampleInfo(operandType OperandType, isAbsolute bool, slot uint32, debugStr string) (uint32, bool)

	// GetBufferInfo answers BUFINFO (element count of a buffer resource).
	GetBufferInfo(slot uint32, isUAV bool) (uint32, bool)

	// GetResourceInfo answers RESINFO (mip-level width/height/depth/mip
	// count plus the resource's dimensionality).
	GetResourceInfo(slot uint32, isUAV bool, mipLevel uint32) (width, height, depth, numMips uint32, dim ResourceDimension, ok bool)

	AddDebugMessage(category, severity, source, text string)
}
