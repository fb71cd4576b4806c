/*
   shaderdbg/vm - integer opcode tests

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import "testing"

func newArithCtx() *evalCtx {
	s := &State{Registers: make([]ShaderVariable, 4)}
	return &evalCtx{state: s, global: NewGlobal()}
}

func uintVec(words ...uint32) Operand {
	var v [4]uint32
	copy(v[:], words)
	return Operand{Type: OperandImmediate32, Values: v, Comps: [4]uint8{0, 1, 2, 3}, NumComponents: NumComponents4}
}

func TestUDivByZeroYieldsAllOnes(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpUDiv, Operands: []Operand{
		tempOperand(0), tempOperand(1), uintVec(10, 7, 9, 100), uintVec(3, 0, 0, 10),
	}}
	if !table[OpUDiv](c) {
		t.Fatalf("handler returned false")
	}
	quot := c.state.Registers[0]
	rem := c.state.Registers[1]
	if quot.Words[0] != 3 || rem.Words[0] != 1 {
		t.Errorf("lane 0: expected quot=3 rem=1, got quot=%d rem=%d", quot.Words[0], rem.Words[0])
	}
	if quot.Words[1] != 0xFFFFFFFF || rem.Words[1] != 0xFFFFFFFF {
		t.Errorf("lane 1 (div by zero): expected all-ones, got quot=%x rem=%x", quot.Words[1], rem.Words[1])
	}
	if quot.Words[3] != 10 || rem.Words[3] != 0 {
		t.Errorf("lane 3: expected quot=10 rem=0, got quot=%d rem=%d", quot.Words[3], rem.Words[3])
	}
}

func TestIBfeSignExtends(t *testing.T) {
	c := newArithCtx()
	// value = 0x8 (bottom 4 bits = 1000b = -8 in 4-bit two's complement)
	c.op = ASMOperation{Opcode: OpIBfe, Operands: []Operand{
		tempOperand(0), uintVec(4, 4, 4, 4), uintVec(0, 0, 0, 0), uintVec(0x8, 0x8, 0x8, 0x8),
	}}
	if !table[OpIBfe](c) {
		t.Fatalf("handler returned false")
	}
	got := int32(c.state.Registers[0].Words[0])
	if got != -8 {
		t.Errorf("expected sign-extended -8, got %d", got)
	}
}

func TestUBfeDoesNotSignExtend(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpUBfe, Operands: []Operand{
		tempOperand(0), uintVec(4, 4, 4, 4), uintVec(0, 0, 0, 0), uintVec(0x8, 0x8, 0x8, 0x8),
	}}
	if !table[OpUBfe](c) {
		t.Fatalf("handler returned false")
	}
	got := c.state.Registers[0].Words[0]
	if got != 8 {
		t.Errorf("expected unsigned 8, got %d", got)
	}
}

func TestBfeZeroWidthYieldsZero(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpUBfe, Operands: []Operand{
		tempOperand(0), uintVec(0, 0, 0, 0), uintVec(3, 3, 3, 3), uintVec(0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF),
	}}
	table[OpUBfe](c)
	if c.state.Registers[0].Words[0] != 0 {
		t.Errorf("width=0 should yield 0, got %d", c.state.Registers[0].Words[0])
	}
}

func TestFirstBitHiAndLo(t *testing.T) {
	c := newArithCtx()
	c.op = ASMOperation{Opcode: OpFirstBitHi, Operands: []Operand{tempOperand(0), uintVec(0, 1, 0x80000000, 0)}}
	table[OpFirstBitHi](c)
	r := c.state.Registers[0]
	if r.Words[0] != 0xFFFFFFFF {
		t.Errorf("all-zero should yield 0xFFFFFFFF, got %x", r.Words[0])
	}
	if r.Words[1] != 31 {
		t.Errorf("bit 0 set: expected MSB-first index 31, got %d", r.Words[1])
	}
	if r.Words[2] != 0 {
		t.Errorf("bit 31 set: expected MSB-first index 0, got %d", r.Words[2])
	}

	c.op = ASMOperation{Opcode: OpFirstBitLo, Operands: []Operand{tempOperand(1), uintVec(0, 1, 0x80000000, 0)}}
	table[OpFirstBitLo](c)
	rl := c.state.Registers[1]
	if rl.Words[0] != 0xFFFFFFFF {
		t.Errorf("all-zero should yield 0xFFFFFFFF, got %x", rl.Words[0])
	}
	if rl.Words[1] != 0 {
		t.Errorf("bit 0 set: expected LSB-first index 0, got %d", rl.Words[1])
	}
	if rl.Words[2] != 31 {
		t.Errorf("bit 31 set: expected LSB-first index 31, got %d", rl.Words[2])
	}
}

func TestFirstBitSHiInvertsNegativeValues(t *testing.T) {
	c := newArithCtx()
	// 0xFFFFFFFE has sign bit set; inverted is 0x00000001, first-bit-hi(1) = 31.
	c.op = ASMOperation{Opcode: OpFirstBitSHi, Operands: []Operand{tempOperand(0), uintVec(0xFFFFFFFE, 0, 0, 0)}}
	table[OpFirstBitSHi](c)
	if got := c.state.Registers[0].Words[0]; got != 31 {
		t.Errorf("expected 31, got %d", got)
	}
}

func TestBfrevRoundTripOnLow16Bits(t *testing.T) {
	c := newArithCtx()
	x := uint32(0x1234)
	c.op = ASMOperation{Opcode: OpBfRev, Operands: []Operand{tempOperand(0), uintVec(x, x, x, x)}}
	table[OpBfRev](c)
	once := c.state.Registers[0].Words[0] >> 16

	c2 := newArithCtx()
	c2.op = ASMOperation{Opcode: OpBfRev, Operands: []Operand{tempOperand(0), uintVec(once, once, once, once)}}
	table[OpBfRev](c2)
	twice := c2.state.Registers[0].Words[0] >> 16

	if twice != x&0xFFFF {
		t.Errorf("bfrev(bfrev(x)>>16)>>16 should equal x&0xFFFF, got %x want %x", twice, x&0xFFFF)
	}
}
