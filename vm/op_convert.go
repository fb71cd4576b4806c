/*
   shaderdbg/vm - numeric conversion opcodes (§4.5)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import (
	"math"

	"github.com/rcornwell/shaderdbg/format"
)

func registerConvertOps(t map[Opcode]opHandler) {
	t[OpIToF] = opUnaryFloatFromInt(func(n int32) float32 { return float32(n) })
	t[OpUToF] = opUnaryFloatFromUInt(func(n uint32) float32 { return float32(n) })
	t[OpFToI] = opUnaryIntFromFloat(func(f float32) int32 { return int32(math.Trunc(float64(f))) })
	t[OpFToU] = opUnaryUIntFromFloat(func(f float32) uint32 {
		if f < 0 {
			return 0
		}
		return uint32(math.Trunc(float64(f)))
	})

	t[OpIToD] = opToDouble(func(w uint32) float64 { return float64(int32(w)) })
	t[OpUToD] = opToDouble(func(w uint32) float64 { return float64(w) })
	t[OpFToD] = opToDouble(func(w uint32) float64 { return float64(math.Float32frombits(w)) })

	t[OpDToI] = opFromDouble(func(d float64) uint32 { return uint32(int32(math.Trunc(d))) })
	t[OpDToU] = opFromDouble(func(d float64) uint32 { return uint32(uint64(math.Trunc(d))) })
	t[OpDToF] = opFromDouble(func(d float64) uint32 { return math.Float32bits(float32(d)) })

	// F16TOF32/F32TOF16 flush denormals by hand rather than through the
	// generic flushing-opcode pipeline: the half-precision side flushes
	// inside format.F16ToF32/F32ToF16, and the float32 side is flushed
	// explicitly here before/after the conversion (§4.5).
	t[OpF16ToF32] = opUnaryUInt(func(w uint32) uint32 {
		return floatBits(flushDenormFloat(format.F16ToF32(uint16(w))))
	})
	t[OpF32ToF16] = opUnaryUInt(func(w uint32) uint32 {
		return uint32(format.F32ToF16(flushDenormFloat(asFloat(w))))
	})
}

func opUnaryFloatFromInt(fn func(int32) float32) opHandler {
	return func(c *evalCtx) bool {
		src := c.getSrc(&c.op.Operands[1])
		var out ShaderVariable
		out.Type = TypeFloat
		for i := 0; i < 4; i++ {
			out.SetFloat(i, fn(src.Int(i)))
		}
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

func opUnaryFloatFromUInt(fn func(uint32) float32) opHandler {
	return func(c *evalCtx) bool {
		src := c.getSrc(&c.op.Operands[1])
		var out ShaderVariable
		out.Type = TypeFloat
		for i := 0; i < 4; i++ {
			out.SetFloat(i, fn(src.Words[i]))
		}
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

func opUnaryIntFromFloat(fn func(float32) int32) opHandler {
	return func(c *evalCtx) bool {
		src := c.getSrc(&c.op.Operands[1])
		var out ShaderVariable
		out.Type = TypeSInt
		for i := 0; i < 4; i++ {
			out.SetInt(i, fn(src.Float(i)))
		}
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

func opUnaryUIntFromFloat(fn func(float32) uint32) opHandler {
	return func(c *evalCtx) bool {
		src := c.getSrc(&c.op.Operands[1])
		var out ShaderVariable
		out.Type = TypeUInt
		for i := 0; i < 4; i++ {
			out.Words[i] = fn(src.Float(i))
		}
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

// opToDouble converts one source value per destination double lane:
// pair 0 always reads source lane .x; pair 1 reads source lane .z
// unless the operand's z swizzle component is unused, in which case
// lane .x is copied into lane 1's slot too (§4.5).
func opToDouble(fn func(uint32) float64) opHandler {
	return func(c *evalCtx) bool {
		operand := &c.op.Operands[1]
		src := c.getSrc(operand)
		lane1 := src.Words[2]
		if operand.Comps[2] == unusedComponent {
			lane1 = src.Words[0]
		}
		var out ShaderVariable
		out.Type = TypeDouble
		out.SetDouble(0, fn(src.Words[0]))
		out.SetDouble(1, fn(lane1))
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

// opFromDouble converts double pairs 0 and 1 into destination lanes .x
// and .y respectively; the destination write mask then steers which
// pair's result is actually committed (§4.5).
func opFromDouble(fn func(float64) uint32) opHandler {
	return func(c *evalCtx) bool {
		src := c.getSrc(&c.op.Operands[1])
		var out ShaderVariable
		out.Type = TypeUInt
		out.Words[0] = fn(src.Double(0))
		out.Words[1] = fn(src.Double(1))
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}
