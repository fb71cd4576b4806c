/*
   shaderdbg/vm - bitwise opcode tests

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import "testing"

func TestAndOrXorNot(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpAnd, Operands: []Operand{tempOperand(0), uintVec(0xF0, 0, 0, 0), uintVec(0x0F, 0, 0, 0)}}
	table[OpAnd](c)
	if got := c.state.Registers[0].Words[0]; got != 0 {
		t.Errorf("0xF0 & 0x0F: expected 0, got %x", got)
	}

	c.op = ASMOperation{Opcode: OpOr, Operands: []Operand{tempOperand(0), uintVec(0xF0, 0, 0, 0), uintVec(0x0F, 0, 0, 0)}}
	table[OpOr](c)
	if got := c.state.Registers[0].Words[0]; got != 0xFF {
		t.Errorf("0xF0 | 0x0F: expected 0xFF, got %x", got)
	}

	c.op = ASMOperation{Opcode: OpXor, Operands: []Operand{tempOperand(0), uintVec(0xFF, 0, 0, 0), uintVec(0x0F, 0, 0, 0)}}
	table[OpXor](c)
	if got := c.state.Registers[0].Words[0]; got != 0xF0 {
		t.Errorf("0xFF ^ 0x0F: expected 0xF0, got %x", got)
	}

	c.op = ASMOperation{Opcode: OpNot, Operands: []Operand{tempOperand(0), uintVec(0, 0, 0, 0)}}
	table[OpNot](c)
	if got := c.state.Registers[0].Words[0]; got != 0xFFFFFFFF {
		t.Errorf("^0: expected 0xFFFFFFFF, got %x", got)
	}
}
