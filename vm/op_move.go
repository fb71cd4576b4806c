/*
   shaderdbg/vm - move and conditional-move opcodes (§4.5)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

func registerMoveOps(t map[Opcode]opHandler) {
	t[OpMov] = opMov
	t[OpDMov] = opMov
	t[OpMovC] = opMovC
	t[OpDMovC] = opDMovC
	t[OpSwapC] = opSwapC
}

// opMov copies the source verbatim; MOV/DMOV are excluded from the
// denormal-flushing set (§3, §4.5), so no flush applies even though
// getSrc may have already produced a flushed value for a flushing
// opcode upstream (it will not be, here).
func opMov(c *evalCtx) bool {
	src := c.getSrc(&c.op.Operands[1])
	c.setDst(&c.op.Operands[0], src)
	return true
}

// opMovC: operand[0]=dst, operand[1]=predicate, operand[2]=value if
// nonzero, operand[3]=value if zero, per lane (§4.5).
func opMovC(c *evalCtx) bool {
	pred := c.getSrc(&c.op.Operands[1])
	a := c.getSrc(&c.op.Operands[2])
	b := c.getSrc(&c.op.Operands[3])
	var out ShaderVariable
	out.Type = operationType(c.op.Opcode)
	for i := 0; i < 4; i++ {
		if pred.Words[i] != 0 {
			out.Words[i] = a.Words[i]
		} else {
			out.Words[i] = b.Words[i]
		}
	}
	c.setDst(&c.op.Operands[0], out)
	return true
}

// opDMovC mirrors opMovC for double pairs: predicate lane .x drives
// pair 0 (.xy), predicate lane .y drives pair 1 (.zw) (§4.5).
func opDMovC(c *evalCtx) bool {
	pred := c.getSrc(&c.op.Operands[1])
	a := c.getSrc(&c.op.Operands[2])
	b := c.getSrc(&c.op.Operands[3])
	var out ShaderVariable
	out.Type = TypeDouble
	if pred.Words[0] != 0 {
		out.SetDouble(0, a.Double(0))
	} else {
		out.SetDouble(0, b.Double(0))
	}
	if pred.Words[1] != 0 {
		out.SetDouble(1, a.Double(1))
	} else {
		out.SetDouble(1, b.Double(1))
	}
	c.setDst(&c.op.Operands[0], out)
	return true
}

// opSwapC: operand[0]/[1]=outputs, operand[2]=predicate,
// operand[3]/[4]=sources. Per lane, a true predicate swaps which
// source feeds which output (§4.5).
func opSwapC(c *evalCtx) bool {
	pred := c.getSrc(&c.op.Operands[2])
	src0 := c.getSrc(&c.op.Operands[3])
	src1 := c.getSrc(&c.op.Operands[4])
	var out0, out1 ShaderVariable
	out0.Type, out1.Type = TypeUInt, TypeUInt
	for i := 0; i < 4; i++ {
		if pred.Words[i] != 0 {
			out0.Words[i] = src1.Words[i]
			out1.Words[i] = src0.Words[i]
		} else {
			out0.Words[i] = src0.Words[i]
			out1.Words[i] = src1.Words[i]
		}
	}
	c.setDst(&c.op.Operands[0], out0)
	c.setDst(&c.op.Operands[1], out1)
	return true
}
