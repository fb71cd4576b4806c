/*
   shaderdbg/vm - numeric conversion opcode tests

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import "testing"

func floatOperand(vals ...float32) Operand {
	var v [4]uint32
	for i, f := range vals {
		v[i] = floatBits(f)
	}
	return Operand{Type: OperandImmediate32, Values: v, Comps: [4]uint8{0, 1, 2, 3}, NumComponents: NumComponents4}
}

func TestFToUNegativeClampsToZero(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpFToU, Operands: []Operand{tempOperand(0), floatOperand(-3.5, 2.9, 0, 0)}}
	table[OpFToU](c)
	r := c.state.Registers[0]
	if r.Words[0] != 0 {
		t.Errorf("FToU(-3.5) should clamp to 0, got %d", r.Words[0])
	}
	if r.Words[1] != 2 {
		t.Errorf("FToU(2.9) should truncate to 2, got %d", r.Words[1])
	}
}

func TestFToITruncatesTowardZero(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpFToI, Operands: []Operand{tempOperand(0), floatOperand(-3.9, 3.9, 0, 0)}}
	table[OpFToI](c)
	r := c.state.Registers[0]
	if int32(r.Words[0]) != -3 {
		t.Errorf("FToI(-3.9) should truncate to -3, got %d", int32(r.Words[0]))
	}
	if int32(r.Words[1]) != 3 {
		t.Errorf("FToI(3.9) should truncate to 3, got %d", int32(r.Words[1]))
	}
}

func TestIToFAndUToF(t *testing.T) {
	c := newArithCtx()
	neg5 := int32(-5)
	c.op = ASMOperation{Opcode: OpIToF, Operands: []Operand{tempOperand(0), uintVec(uint32(neg5), 0, 0, 0)}}
	table[OpIToF](c)
	if got := c.state.Registers[0].Float(0); got != -5.0 {
		t.Errorf("IToF(-5) expected -5.0, got %v", got)
	}

	c.op = ASMOperation{Opcode: OpUToF, Operands: []Operand{tempOperand(0), uintVec(5, 0, 0, 0)}}
	table[OpUToF](c)
	if got := c.state.Registers[0].Float(0); got != 5.0 {
		t.Errorf("UToF(5) expected 5.0, got %v", got)
	}
}

// TestToDoubleFallsBackToLaneXWhenZUnused covers opToDouble's fallback:
// when the source operand's .z swizzle component is unused, pair 1
// reads lane .x again instead of lane .z.
func TestToDoubleFallsBackToLaneXWhenZUnused(t *testing.T) {
	c := newArithCtx()
	src := uintVec(7, 0, 13, 0)
	src.Comps = [4]uint8{0, 1, unusedComponent, 3}
	c.op = ASMOperation{Opcode: OpUToD, Operands: []Operand{tempOperand(0), src}}
	table[OpUToD](c)
	out := c.state.Registers[0]
	if out.Double(0) != 7 {
		t.Errorf("pair 0 should read lane .x=7, got %v", out.Double(0))
	}
	if out.Double(1) != 7 {
		t.Errorf("pair 1 should fall back to lane .x=7 since .z is unused, got %v", out.Double(1))
	}
}

func TestToDoubleUsesLaneZWhenPresent(t *testing.T) {
	c := newArithCtx()
	src := uintVec(7, 0, 13, 0)
	src.Comps = [4]uint8{0, 1, 2, 3}
	c.op = ASMOperation{Opcode: OpUToD, Operands: []Operand{tempOperand(0), src}}
	table[OpUToD](c)
	out := c.state.Registers[0]
	if out.Double(1) != 13 {
		t.Errorf("pair 1 should read lane .z=13, got %v", out.Double(1))
	}
}

func TestF16RoundTripPreservesValue(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpF32ToF16, Operands: []Operand{tempOperand(0), floatOperand(1.5, 0, 0, 0)}}
	table[OpF32ToF16](c)
	half := c.state.Registers[0].Words[0]

	c.op = ASMOperation{Opcode: OpF16ToF32, Operands: []Operand{tempOperand(1), uintVec(half, half, half, half)}}
	table[OpF16ToF32](c)
	if got := c.state.Registers[1].Float(0); got != 1.5 {
		t.Errorf("f32->f16->f32 round trip of 1.5 should be exact, got %v", got)
	}
}
