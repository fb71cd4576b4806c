/*
   shaderdbg/vm - texture sample, gather and resource-info opcodes (§4.6)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

func registerSampleOps(t map[Opcode]opHandler) {
	t[OpSample] = opSample
	t[OpSampleL] = opSampleL
	t[OpSampleB] = opSampleB
	t[OpSampleD] = opSampleD
	t[OpSampleC] = opSampleC
	t[OpSampleCLz] = opSampleCLz
	t[OpLd] = opLd
	t[OpLdMS] = opLdMS
	t[OpGather4] = opGather4
	t[OpGather4C] = opGather4C
	t[OpGather4Po] = opGather4Po
	t[OpGather4PoC] = opGather4PoC
	t[OpLod] = opLod

	t[OpSampleInfo] = opSampleInfo
	t[OpSamplePos] = opSamplePos
	t[OpBufInfo] = opBufInfo
	t[OpResInfo] = opResInfo
}

// resourceSlot resolves operand to a raw bind slot. The decoded
// container (§6) does not surface resource/sampler dimensionality or
// return-type declarations, so SampleGatherResourceData/SamplerData
// below are built with slot-only fidelity; ApiWrapper is the actual
// authority on a bound resource's shape and format.
func (c *evalCtx) resourceSlot(operand *Operand) uint32 {
	idx := c.resolveIndices(operand)
	if len(idx) == 0 {
		return 0
	}
	return uint32(idx[0])
}

func (c *evalCtx) resourceData(operand *Operand) SampleGatherResourceData {
	return SampleGatherResourceData{
		Slot:       c.resourceSlot(operand),
		Dim:        DimUnknown,
		ReturnType: [4]CompType{CompFloat, CompFloat, CompFloat, CompFloat},
	}
}

func (c *evalCtx) samplerData(operand *Operand, comparison bool) SampleGatherSamplerData {
	return SampleGatherSamplerData{Slot: c.resourceSlot(operand), Comparison: comparison}
}

// gatherChannel reads the single swizzled component off the resource
// operand (DXBC encodes GATHER4's channel selection there); default to
// the red channel when the operand carries no swizzle.
func gatherChannel(operand *Operand) int {
	if operand.Comps[0] == unusedComponent {
		return 0
	}
	return int(operand.Comps[0])
}

func resultSwizzle(operand *Operand) [4]uint8 {
	return operand.Comps
}

// doSampleGather evaluates coord and issues the delegated call shared
// by every SAMPLE*/GATHER4*/LD*/LOD opcode; callers pass in ddx/ddy.
func (c *evalCtx) doSampleGather(dst, coordOp, resourceOp *Operand, sampler SampleGatherSamplerData,
	ddx, ddy ShaderVariable, texelOffset [3]int32, sampleIndex int, lodOrCompare float32, channel int) bool {
	coord := c.getSrc(coordOp)
	resource := c.resourceData(resourceOp)
	out, ok := c.api.CalculateSampleGather(c.op.Opcode, resource, sampler, coord, ddx, ddy,
		texelOffset, sampleIndex, lodOrCompare, resultSwizzle(resourceOp), channel, c.op.Str)
	if !ok {
		return false
	}
	c.setDst(dst, out)
	return true
}

// opSample: operand[0]=dst, operand[1]=coord, operand[2]=resource,
// operand[3]=sampler. Implicit derivatives use coarse form (§4.6, §4.7).
func opSample(c *evalCtx) bool {
	ddx, ddy, ok := c.coarseDerivatives(&c.op.Operands[1])
	if !ok {
		logRecoverable("sample: no quad available for implicit derivatives")
	}
	sampler := c.samplerData(&c.op.Operands[3], false)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ddx, ddy, c.op.TexelOffset, 0, 0, gatherChannel(&c.op.Operands[2]))
}

// opSampleL: operand[4]=explicit LOD.
func opSampleL(c *evalCtx) bool {
	lod := c.getSrc(&c.op.Operands[4]).Float(0)
	sampler := c.samplerData(&c.op.Operands[3], false)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ShaderVariable{}, ShaderVariable{}, c.op.TexelOffset, 0, lod, gatherChannel(&c.op.Operands[2]))
}

// opSampleB: operand[4]=LOD bias applied atop the implicit coarse LOD.
func opSampleB(c *evalCtx) bool {
	ddx, ddy, ok := c.coarseDerivatives(&c.op.Operands[1])
	if !ok {
		logRecoverable("sample_b: no quad available for implicit derivatives")
	}
	bias := c.getSrc(&c.op.Operands[4]).Float(0)
	sampler := c.samplerData(&c.op.Operands[3], false)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ddx, ddy, c.op.TexelOffset, 0, bias, gatherChannel(&c.op.Operands[2]))
}

// opSampleD: operand[4]/[5]=explicit ddx/ddy.
func opSampleD(c *evalCtx) bool {
	ddx := c.getSrc(&c.op.Operands[4])
	ddy := c.getSrc(&c.op.Operands[5])
	sampler := c.samplerData(&c.op.Operands[3], false)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ddx, ddy, c.op.TexelOffset, 0, 0, gatherChannel(&c.op.Operands[2]))
}

// opSampleC: operand[4]=comparison value, coarse implicit derivatives.
func opSampleC(c *evalCtx) bool {
	ddx, ddy, ok := c.coarseDerivatives(&c.op.Operands[1])
	if !ok {
		logRecoverable("sample_c: no quad available for implicit derivatives")
	}
	compare := c.getSrc(&c.op.Operands[4]).Float(0)
	sampler := c.samplerData(&c.op.Operands[3], true)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ddx, ddy, c.op.TexelOffset, 0, compare, gatherChannel(&c.op.Operands[2]))
}

// opSampleCLz: comparison sample pinned to LOD 0, no implicit derivatives.
func opSampleCLz(c *evalCtx) bool {
	compare := c.getSrc(&c.op.Operands[4]).Float(0)
	sampler := c.samplerData(&c.op.Operands[3], true)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ShaderVariable{}, ShaderVariable{}, c.op.TexelOffset, 0, compare, gatherChannel(&c.op.Operands[2]))
}

// opLd: operand[0]=dst, operand[1]=coord (.w = mip level), operand[2]=
// resource. A buffer-typed resource bypasses the wrapper and reads the
// raw bytes via the format codec, same as LD_UAV_TYPED (§4.6).
func opLd(c *evalCtx) bool {
	resourceOp := &c.op.Operands[2]
	if srv, ok := c.global.SRVs[c.resourceSlot(resourceOp)]; ok && !srv.IsTexture {
		return opLdBuffer(c, &c.op.Operands[0], &c.op.Operands[1], srv.Data, srv.Format)
	}
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], resourceOp,
		SampleGatherSamplerData{}, ShaderVariable{}, ShaderVariable{}, c.op.TexelOffset, 0, 0, 0)
}

func opLdBuffer(c *evalCtx, dst, coordOp *Operand, data []byte, fd Format) bool {
	coord := c.getSrc(coordOp)
	addr := int(int32(coord.Words[0])) * fd.ElementStride()
	count := destComponentCount(dst)
	words, ok := readTypedComponents(data, addr, fd, count)
	if !ok {
		logRecoverable("ld: buffer coordinate out of bounds")
	}
	var out ShaderVariable
	out.Type = TypeUInt
	out.Words = words
	c.setDst(dst, out)
	return true
}

// opLdMS: operand[3]=sample index.
func opLdMS(c *evalCtx) bool {
	sampleIndex := int(c.getSrc(&c.op.Operands[3]).UInt(0))
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2],
		SampleGatherSamplerData{}, ShaderVariable{}, ShaderVariable{}, c.op.TexelOffset, sampleIndex, 0, 0)
}

func opGather4(c *evalCtx) bool {
	sampler := c.samplerData(&c.op.Operands[3], false)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ShaderVariable{}, ShaderVariable{}, c.op.TexelOffset, 0, 0, gatherChannel(&c.op.Operands[2]))
}

func opGather4C(c *evalCtx) bool {
	compare := c.getSrc(&c.op.Operands[4]).Float(0)
	sampler := c.samplerData(&c.op.Operands[3], true)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ShaderVariable{}, ShaderVariable{}, c.op.TexelOffset, 0, compare, gatherChannel(&c.op.Operands[2]))
}

// opGather4Po: operand[4]=per-invocation texel offset (overrides the
// instruction's immediate TexelOffset).
func opGather4Po(c *evalCtx) bool {
	offset := c.getSrc(&c.op.Operands[4])
	texelOffset := [3]int32{int32(offset.Words[0]), int32(offset.Words[1]), int32(offset.Words[2])}
	sampler := c.samplerData(&c.op.Operands[3], false)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ShaderVariable{}, ShaderVariable{}, texelOffset, 0, 0, gatherChannel(&c.op.Operands[2]))
}

func opGather4PoC(c *evalCtx) bool {
	offset := c.getSrc(&c.op.Operands[4])
	texelOffset := [3]int32{int32(offset.Words[0]), int32(offset.Words[1]), int32(offset.Words[2])}
	compare := c.getSrc(&c.op.Operands[5]).Float(0)
	sampler := c.samplerData(&c.op.Operands[3], true)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ShaderVariable{}, ShaderVariable{}, texelOffset, 0, compare, gatherChannel(&c.op.Operands[2]))
}

// opLod: returns zero for dimensions other than 1D/2D/3D/Cube and
// array variants (§4.6); since the core never knows the bound
// dimension, it always delegates and trusts ApiWrapper to apply that
// rule.
func opLod(c *evalCtx) bool {
	sampler := c.samplerData(&c.op.Operands[3], false)
	return c.doSampleGather(&c.op.Operands[0], &c.op.Operands[1], &c.op.Operands[2], sampler,
		ShaderVariable{}, ShaderVariable{}, [3]int32{}, 0, 0, 0)
}

// opSampleInfo: operand[0]=dst, operand[1]=resource or rasterizer. A
// rasterizer operand asks for the current render target's sample
// count; a resource operand asks for that resource's own count
// (isAbsolute distinguishes the two for ApiWrapper, §6).
func opSampleInfo(c *evalCtx) bool {
	operand := &c.op.Operands[1]
	isAbsolute := operand.Type != OperandRasterizer
	slot := uint32(0)
	if isAbsolute {
		slot = c.resourceSlot(operand)
	}
	count, ok := c.api.GetSampleInfo(operand.Type, isAbsolute, slot, c.op.Str)
	if !ok {
		logRecoverable("sample_info: query failed")
		count = 0
	}
	c.setDst(&c.op.Operands[0], ShaderVariable{Type: TypeUInt, Words: [4]uint32{count, count, count, count}})
	return true
}

// samplePositions16ths holds the standardized D3D11 multisample
// position patterns, expressed in 16ths of a pixel relative to center,
// for the sample counts SAMPLE_POS supports (§4.6).
var samplePositions16ths = map[uint32][][2]int8{
	2: {{4, 4}, {-4, -4}},
	4: {{-2, -6}, {6, -2}, {-6, 2}, {2, 6}},
	8: {{1, -3}, {-1, 3}, {5, 1}, {-3, -5}, {-5, 5}, {-7, -1}, {3, 7}, {7, -7}},
	16: {
		{1, 1}, {-1, -3}, {-3, 2}, {4, -1},
		{-5, -2}, {2, 5}, {5, 3}, {3, -5},
		{-2, 6}, {0, -7}, {-4, -6}, {-6, 4},
		{-8, 0}, {7, -4}, {6, 7}, {-7, -8},
	},
}

// opSamplePos: operand[0]=dst, operand[1]=resource, operand[2]=sample
// index. Unsupported counts and out-of-bounds indices return zero
// (§4.6, §7 "Recoverable warning").
func opSamplePos(c *evalCtx) bool {
	slot := c.resourceSlot(&c.op.Operands[1])
	count, ok := c.api.GetSampleInfo(c.op.Operands[1].Type, true, slot, c.op.Str)
	idx := c.getSrc(&c.op.Operands[2]).UInt(0)
	var x, y float32
	if ok {
		if table, found := samplePositions16ths[count]; found && idx < uint32(len(table)) {
			x = float32(table[idx][0]) / 16
			y = float32(table[idx][1]) / 16
		} else {
			logRecoverable("sample_pos: unsupported sample count %d or index %d", count, idx)
		}
	}
	var out ShaderVariable
	out.Type = TypeFloat
	out.SetFloat(0, x)
	out.SetFloat(1, y)
	c.setDst(&c.op.Operands[0], out)
	return true
}

// opBufInfo: operand[0]=dst, operand[1]=resource.
func opBufInfo(c *evalCtx) bool {
	operand := &c.op.Operands[1]
	isUAV := operand.Type == OperandUnorderedAccessView
	n, ok := c.api.GetBufferInfo(c.resourceSlot(operand), isUAV)
	if !ok {
		logRecoverable("bufinfo: query failed")
		n = 0
	}
	c.setDst(&c.op.Operands[0], ShaderVariable{Type: TypeUInt, Words: [4]uint32{n, n, n, n}})
	return true
}

// opResInfo: operand[0]=dst, operand[1]=mip level, operand[2]=resource.
// ResInfoRetType selects UInt, Float, or reciprocal-float applied to
// the width/height/depth lanes; mip count (lane .w) is always returned
// as a plain count (§4.6).
func opResInfo(c *evalCtx) bool {
	operand := &c.op.Operands[2]
	isUAV := operand.Type == OperandUnorderedAccessView
	mip := c.getSrc(&c.op.Operands[1]).UInt(0)
	width, height, depth, numMips, _, ok := c.api.GetResourceInfo(c.resourceSlot(operand), isUAV, mip)
	if !ok {
		logRecoverable("resinfo: query failed")
	}
	var out ShaderVariable
	switch c.op.ResInfoRetType {
	case ResInfoUInt:
		out.Type = TypeUInt
		out.Words = [4]uint32{width, height, depth, numMips}
	case ResInfoRcpFloat:
		out.Type = TypeFloat
		out.SetFloat(0, reciprocalOrZero(width))
		out.SetFloat(1, reciprocalOrZero(height))
		out.SetFloat(2, reciprocalOrZero(depth))
		out.Words[3] = numMips
	default:
		out.Type = TypeFloat
		out.SetFloat(0, float32(width))
		out.SetFloat(1, float32(height))
		out.SetFloat(2, float32(depth))
		out.Words[3] = numMips
	}
	c.setDst(&c.op.Operands[0], out)
	return true
}

func reciprocalOrZero(v uint32) float32 {
	if v == 0 {
		return 0
	}
	return 1 / float32(v)
}
