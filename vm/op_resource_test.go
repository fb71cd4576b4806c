/*
   shaderdbg/vm - structured/raw resource opcode tests

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import (
	"encoding/binary"
	"testing"
)

func newResourceCtx(byteLen int) (*evalCtx, *UAV) {
	uav := &UAV{Data: make([]byte, byteLen), FirstElement: 0, NumElements: uint32(byteLen / 16)}
	g := NewGlobal()
	g.UAVs[0] = uav
	s := &State{Registers: make([]ShaderVariable, 4)}
	return &evalCtx{state: s, global: g}, uav
}

// TestStoreStructuredByteOffsetArithmetic reproduces the literal scenario:
// a structured store of a 4-word value at element 5, byte-offset 4,
// stride 16 writes from byte (first_element+5)*16+4; the first three
// words are checked.
func TestStoreStructuredByteOffsetArithmetic(t *testing.T) {
	c, uav := newResourceCtx(16 * 8)
	c.op = ASMOperation{
		Opcode: OpStoreStructured,
		Stride: 16,
		Operands: []Operand{
			uavOperand(0),
			imm(5),
			imm(4),
			uintVec(0xAAAAAAAA, 0xBBBBBBBB, 0xCCCCCCCC, 0),
		},
	}
	table[OpStoreStructured](c)

	base := (0+5)*16 + 4
	for i, want := range []uint32{0xAAAAAAAA, 0xBBBBBBBB, 0xCCCCCCCC} {
		got := binary.LittleEndian.Uint32(uav.Data[base+i*4 : base+i*4+4])
		if got != want {
			t.Errorf("byte %d: expected %x, got %x", base+i*4, want, got)
		}
	}
}

func TestStoreStructuredOutOfBoundsElementIsNoOp(t *testing.T) {
	c, uav := newResourceCtx(16 * 2)
	before := append([]byte(nil), uav.Data...)
	c.op = ASMOperation{
		Opcode: OpStoreStructured,
		Stride: 16,
		Operands: []Operand{
			uavOperand(0),
			imm(99),
			imm(0),
			uintVec(1, 2, 3, 4),
		},
	}
	table[OpStoreStructured](c)
	for i := range uav.Data {
		if uav.Data[i] != before[i] {
			t.Fatalf("out-of-bounds structured store must be a no-op, byte %d changed", i)
		}
	}
}

func TestLdStructuredRoundTrip(t *testing.T) {
	c, uav := newResourceCtx(16 * 4)
	binary.LittleEndian.PutUint32(uav.Data[2*16:], 111)
	binary.LittleEndian.PutUint32(uav.Data[2*16+4:], 222)

	c.op = ASMOperation{
		Opcode: OpLdStructured,
		Stride: 16,
		Operands: []Operand{
			tempOperand(0),
			imm(2),
			imm(0),
			uavOperand(0),
		},
	}
	dst := &c.op.Operands[0]
	dst.Comps = [4]uint8{0, 1, unusedComponent, unusedComponent}
	table[OpLdStructured](c)

	r := c.state.Registers[0]
	if r.Words[0] != 111 || r.Words[1] != 222 {
		t.Errorf("expected (111,222), got (%d,%d)", r.Words[0], r.Words[1])
	}
}

func TestLdStructuredOutOfBoundsElementYieldsZero(t *testing.T) {
	c, _ := newResourceCtx(16 * 2)
	c.op = ASMOperation{
		Opcode: OpLdStructured,
		Stride: 16,
		Operands: []Operand{
			tempOperand(0),
			imm(40),
			imm(0),
			uavOperand(0),
		},
	}
	table[OpLdStructured](c)
	if c.state.Registers[0].Words != [4]uint32{0, 0, 0, 0} {
		t.Errorf("expected zeroed destination, got %v", c.state.Registers[0].Words)
	}
}

func TestStoreRawThenLdRawRoundTrip(t *testing.T) {
	c, uav := newResourceCtx(32)
	uav.NumElements = 32 // byte-addressed raw view: rawUnit defaults to 4 per element
	c.op = ASMOperation{
		Opcode: OpStoreRaw,
		Operands: []Operand{
			uavOperand(0),
			imm(8),
			uintVec(0xDEADBEEF, 0, 0, 0),
		},
	}
	table[OpStoreRaw](c)
	c.op = ASMOperation{
		Opcode: OpLdRaw,
		Operands: []Operand{
			tempOperand(0),
			imm(8),
			uavOperand(0),
		},
	}
	c.op.Operands[0].Comps = [4]uint8{0, unusedComponent, unusedComponent, unusedComponent}
	table[OpLdRaw](c)
	if got := c.state.Registers[0].Words[0]; got != 0xDEADBEEF {
		t.Errorf("expected round-tripped 0xDEADBEEF, got %x", got)
	}
}

func TestStoreUAVTypedThenLdRoundTrip(t *testing.T) {
	c, uav := newResourceCtx(64)
	uav.Format = Format{ByteWidth: 4, CompType: CompUInt, NumComps: 1}
	uav.NumElements = 16

	val := uintVec(7, 0, 0, 0)
	val.Comps = [4]uint8{0, unusedComponent, unusedComponent, unusedComponent}
	c.op = ASMOperation{
		Opcode: OpStoreUAVTyped,
		Operands: []Operand{
			uavOperand(0),
			uintVec(2, 0, 0, 0),
			val,
		},
	}
	table[OpStoreUAVTyped](c)

	c.op = ASMOperation{
		Opcode: OpLdUAVTyped,
		Operands: []Operand{
			tempOperand(0),
			uintVec(2, 0, 0, 0),
			uavOperand(0),
		},
	}
	c.op.Operands[0].Comps = [4]uint8{0, unusedComponent, unusedComponent, unusedComponent}
	table[OpLdUAVTyped](c)

	if got := c.state.Registers[0].Words[0]; got != 7 {
		t.Errorf("expected round-tripped value 7, got %d", got)
	}
}

// TestLdUAVTypedHonorsRowPitch reproduces a non-zero-row texel: STORE_UAV_TYPED
// and LD_UAV_TYPED must compute the same byte address (element stride plus
// y*row_pitch), or a round trip through a row other than 0 silently reads
// the wrong texel.
func TestLdUAVTypedHonorsRowPitch(t *testing.T) {
	c, uav := newResourceCtx(128)
	uav.Format = Format{ByteWidth: 4, CompType: CompUInt, NumComps: 1}
	uav.IsTexture = true
	uav.RowPitch = 16
	uav.NumElements = 32

	val := uintVec(0xCAFEF00D, 0, 0, 0)
	val.Comps = [4]uint8{0, unusedComponent, unusedComponent, unusedComponent}
	c.op = ASMOperation{
		Opcode: OpStoreUAVTyped,
		Operands: []Operand{
			uavOperand(0),
			uintVec(2, 1, 0, 0),
			val,
		},
	}
	table[OpStoreUAVTyped](c)

	c.op = ASMOperation{
		Opcode: OpLdUAVTyped,
		Operands: []Operand{
			tempOperand(0),
			uintVec(2, 1, 0, 0),
			uavOperand(0),
		},
	}
	c.op.Operands[0].Comps = [4]uint8{0, unusedComponent, unusedComponent, unusedComponent}
	table[OpLdUAVTyped](c)

	if got := c.state.Registers[0].Words[0]; got != 0xCAFEF00D {
		t.Errorf("expected row-pitched round trip to read back 0xCAFEF00D, got %x", got)
	}
}

func TestStoreStructuredAndLdStructuredOnGroupShared(t *testing.T) {
	g := NewGlobal()
	g.GroupShared[0] = &GroupShared{Data: make([]byte, 16*4), Count: 4, ByteStride: 16, Structured: true}
	s := &State{Registers: make([]ShaderVariable, 4)}
	c := &evalCtx{state: s, global: g}

	c.op = ASMOperation{
		Opcode: OpStoreStructured,
		Stride: 16,
		Operands: []Operand{
			gsOperand(0),
			imm(1),
			imm(0),
			uintVec(0x1111, 0x2222, 0, 0),
		},
	}
	table[OpStoreStructured](c)

	c.op = ASMOperation{
		Opcode: OpLdStructured,
		Stride: 16,
		Operands: []Operand{
			tempOperand(0),
			imm(1),
			imm(0),
			gsOperand(0),
		},
	}
	c.op.Operands[0].Comps = [4]uint8{0, 1, unusedComponent, unusedComponent}
	table[OpLdStructured](c)

	r := c.state.Registers[0]
	if r.Words[0] != 0x1111 || r.Words[1] != 0x2222 {
		t.Errorf("expected groupshared structured round trip (0x1111,0x2222), got (%x,%x)", r.Words[0], r.Words[1])
	}
}

func TestStoreRawOutOfBoundsIsNoOp(t *testing.T) {
	c, uav := newResourceCtx(16)
	uav.NumElements = 16
	before := append([]byte(nil), uav.Data...)
	c.op = ASMOperation{
		Opcode: OpStoreRaw,
		Operands: []Operand{
			uavOperand(0),
			imm(1000),
			uintVec(1, 2, 3, 4),
		},
	}
	table[OpStoreRaw](c)
	for i := range uav.Data {
		if uav.Data[i] != before[i] {
			t.Fatalf("out-of-bounds raw store must be a no-op, byte %d changed", i)
		}
	}
}
