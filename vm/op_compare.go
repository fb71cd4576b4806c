/*
   shaderdbg/vm - comparison opcodes (§4.5)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

const allOnes uint32 = 0xFFFFFFFF

func registerCompareOps(t map[Opcode]opHandler) {
	t[OpEq] = opCompareFloat(func(a, b float32) bool { return a == b })
	t[OpNe] = opCompareFloat(func(a, b float32) bool { return a != b })
	t[OpLt] = opCompareFloat(func(a, b float32) bool { return a < b })
	t[OpGe] = opCompareFloat(func(a, b float32) bool { return a >= b })

	t[OpIEq] = opCompareSInt(func(a, b int32) bool { return a == b })
	t[OpINe] = opCompareSInt(func(a, b int32) bool { return a != b })
	t[OpILt] = opCompareSInt(func(a, b int32) bool { return a < b })
	t[OpIGe] = opCompareSInt(func(a, b int32) bool { return a >= b })

	t[OpULt] = opCompareUInt(func(a, b uint32) bool { return a < b })
	t[OpUGe] = opCompareUInt(func(a, b uint32) bool { return a >= b })

	t[OpDEq] = opCompareDouble(func(a, b float64) bool { return a == b })
	t[OpDNe] = opCompareDouble(func(a, b float64) bool { return a != b })
	t[OpDLt] = opCompareDouble(func(a, b float64) bool { return a < b })
	t[OpDGe] = opCompareDouble(func(a, b float64) bool { return a >= b })
}

func boolWord(v bool) uint32 {
	if v {
		return allOnes
	}
	return 0
}

func opCompareFloat(fn func(a, b float32) bool) opHandler {
	return func(c *evalCtx) bool {
		a := c.getSrc(&c.op.Operands[1])
		b := c.getSrc(&c.op.Operands[2])
		var out ShaderVariable
		out.Type = TypeUInt
		for i := 0; i < 4; i++ {
			out.Words[i] = boolWord(fn(a.Float(i), b.Float(i)))
		}
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

func opCompareSInt(fn func(a, b int32) bool) opHandler {
	return func(c *evalCtx) bool {
		a := c.getSrc(&c.op.Operands[1])
		b := c.getSrc(&c.op.Operands[2])
		var out ShaderVariable
		out.Type = TypeUInt
		for i := 0; i < 4; i++ {
			out.Words[i] = boolWord(fn(a.Int(i), b.Int(i)))
		}
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

func opCompareUInt(fn func(a, b uint32) bool) opHandler {
	return func(c *evalCtx) bool {
		a := c.getSrc(&c.op.Operands[1])
		b := c.getSrc(&c.op.Operands[2])
		var out ShaderVariable
		out.Type = TypeUInt
		for i := 0; i < 4; i++ {
			out.Words[i] = boolWord(fn(a.Words[i], b.Words[i]))
		}
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

// opCompareDouble steers its two boolean results to destination lanes
// .x and .y, following the same mask-steering rule as DTOI/DTOU/DTOF
// (§4.5).
func opCompareDouble(fn func(a, b float64) bool) opHandler {
	return func(c *evalCtx) bool {
		a := c.getSrc(&c.op.Operands[1])
		b := c.getSrc(&c.op.Operands[2])
		var out ShaderVariable
		out.Type = TypeUInt
		out.Words[0] = boolWord(fn(a.Double(0), b.Double(0)))
		out.Words[1] = boolWord(fn(a.Double(1), b.Double(1)))
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}
