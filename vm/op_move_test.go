/*
   shaderdbg/vm - move/conditional-move opcode tests

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import "testing"

func TestMovCopiesVerbatimNoDenormFlush(t *testing.T) {
	c := newArithCtx()
	subnormal := uint32(1) // smallest positive subnormal float32 bit pattern
	c.op = ASMOperation{Opcode: OpMov, Operands: []Operand{tempOperand(0), uintVec(subnormal, 0, 0, 0)}}
	table[OpMov](c)
	if got := c.state.Registers[0].Words[0]; got != subnormal {
		t.Errorf("MOV must not flush denormals, expected %x, got %x", subnormal, got)
	}
}

func TestMovCSelectsPerLaneByPredicate(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpMovC, Operands: []Operand{
		tempOperand(0),
		uintVec(1, 0, 1, 0),
		uintVec(100, 200, 300, 400),
		uintVec(900, 800, 700, 600),
	}}
	table[OpMovC](c)
	want := [4]uint32{100, 800, 300, 600}
	if c.state.Registers[0].Words != want {
		t.Errorf("expected %v, got %v", want, c.state.Registers[0].Words)
	}
}

func TestSwapCExchangesWhenPredicateTrue(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpSwapC, Operands: []Operand{
		tempOperand(0),
		tempOperand(1),
		uintVec(1, 0, 0, 0),
		uintVec(11, 22, 33, 44),
		uintVec(99, 88, 77, 66),
	}}
	table[OpSwapC](c)
	out0 := c.state.Registers[0].Words
	out1 := c.state.Registers[1].Words
	if out0[0] != 99 || out1[0] != 11 {
		t.Errorf("lane 0 (predicate true) should swap: out0=%d out1=%d", out0[0], out1[0])
	}
	if out0[1] != 22 || out1[1] != 88 {
		t.Errorf("lane 1 (predicate false) should not swap: out0=%d out1=%d", out0[1], out1[1])
	}
}

func TestDMovCSelectsPerPairByPredicate(t *testing.T) {
	c := newArithCtx()
	var a, b ShaderVariable
	a.Type, b.Type = TypeDouble, TypeDouble
	a.SetDouble(0, 1.5)
	a.SetDouble(1, 2.5)
	b.SetDouble(0, -1.5)
	b.SetDouble(1, -2.5)
	c.op = ASMOperation{Opcode: OpDMovC, Operands: []Operand{
		tempOperand(0),
		uintVec(0, 1, 0, 0),
		{Type: OperandImmediate32, Values: a.Words, Comps: [4]uint8{0, 1, 2, 3}, NumComponents: NumComponents4},
		{Type: OperandImmediate32, Values: b.Words, Comps: [4]uint8{0, 1, 2, 3}, NumComponents: NumComponents4},
	}}
	table[OpDMovC](c)
	out := c.state.Registers[0]
	if out.Double(0) != -1.5 {
		t.Errorf("pair 0 predicate false should select b=-1.5, got %v", out.Double(0))
	}
	if out.Double(1) != 2.5 {
		t.Errorf("pair 1 predicate true should select a=2.5, got %v", out.Double(1))
	}
}
