/*
   shaderdbg/vm - attribute-interpolation evaluation opcodes (§3, §7)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

func registerEvalOps(t map[Opcode]opHandler) {
	t[OpEvalSampleIndex] = opEvalSampleIndex
	t[OpEvalSnapped] = opEvalSnapped
	t[OpEvalCentroid] = opEvalCentroid
}

// evalInputKey builds the key naming one EVAL_* lookup: the quad lane,
// the input register, the swizzle's first selected component and
// component count, plus whichever of sample/offset the caller supplies
// (§3 "sample_eval_cache keyed by...").
func (c *evalCtx) evalInputKey(input *Operand, sample, offsetX, offsetY int) SampleEvalKey {
	idx := c.resolveIndices(input)
	reg := 0
	if len(idx) > 0 {
		reg = int(idx[0])
	}
	first := 0
	for i := 0; i < 4; i++ {
		if input.Comps[i] != unusedComponent {
			first = int(input.Comps[i])
			break
		}
	}
	return SampleEvalKey{
		QuadIndex:      c.state.Semantics.QuadIndex,
		InputRegister:  reg,
		FirstComponent: first,
		NumComponents:  destComponentCount(input),
		Sample:         sample,
		OffsetX:        offsetX,
		OffsetY:        offsetY,
	}
}

// evalSample looks up key in the global sample-eval cache, which a host
// rasterizer may have pre-populated through Global before stepping.
// On a miss, this core has no multisample/snapped interpolation data of
// its own, so it falls back to the interpolant already sitting in this
// invocation's own input register (the pixel-centre value) and logs a
// debug message in place of the ApiWrapper call a real backend would
// make (§3, §7 "sample-eval cache miss").
func (c *evalCtx) evalSample(input *Operand, key SampleEvalKey) ShaderVariable {
	if v, ok := c.global.SampleEvalCache[key]; ok {
		return v
	}
	logDebugMessage("eval: sample-eval cache miss for v%d, falling back to pixel-center interpolant", key.InputRegister)
	return c.getSrc(input)
}

// opEvalSampleIndex: operand[0]=dst, operand[1]=input, operand[2]=
// sample index.
func opEvalSampleIndex(c *evalCtx) bool {
	input := &c.op.Operands[1]
	sample := int(c.getSrc(&c.op.Operands[2]).UInt(0))
	key := c.evalInputKey(input, sample, 0, 0)
	c.setDst(&c.op.Operands[0], c.evalSample(input, key))
	return true
}

// opEvalSnapped: operand[0]=dst, operand[1]=input, operand[2]=packed
// signed (offsetX, offsetY) in words 0 and 1.
func opEvalSnapped(c *evalCtx) bool {
	input := &c.op.Operands[1]
	offset := c.getSrc(&c.op.Operands[2])
	offsetX := int(int32(offset.Words[0]))
	offsetY := int(int32(offset.Words[1]))
	key := c.evalInputKey(input, -1, offsetX, offsetY)
	c.setDst(&c.op.Operands[0], c.evalSample(input, key))
	return true
}

// opEvalCentroid: operand[0]=dst, operand[1]=input.
func opEvalCentroid(c *evalCtx) bool {
	input := &c.op.Operands[1]
	key := c.evalInputKey(input, -1, 0, 0)
	c.setDst(&c.op.Operands[0], c.evalSample(input, key))
	return true
}
