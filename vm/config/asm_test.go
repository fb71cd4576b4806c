/*
   shaderdbg/vm/config - textual program loader tests

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package config

import (
	"strings"
	"testing"

	"github.com/rcornwell/shaderdbg/vm"
)

func TestParseProgramBasicMov(t *testing.T) {
	prog, err := ParseProgram(strings.NewReader("mov r0.xyzw, r1.xyzw\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(prog))
	}
	op := prog[0]
	if op.Opcode != vm.OpMov {
		t.Fatalf("expected OpMov, got %v", op.Opcode)
	}
	if len(op.Operands) != 2 {
		t.Fatalf("expected 2 operands, got %d", len(op.Operands))
	}
	dst := op.Operands[0]
	if dst.Type != vm.OperandTemp || dst.Indices[0].Absolute != 0 {
		t.Errorf("unexpected dst operand: %+v", dst)
	}
	src := op.Operands[1]
	if src.Type != vm.OperandTemp || src.Indices[0].Absolute != 1 {
		t.Errorf("unexpected src operand: %+v", src)
	}
}

func TestParseProgramSkipsCommentsAndBlankLines(t *testing.T) {
	src := `# a full-line comment
mov r0.x, r1.x  # trailing comment

mov r2.x, r3.x
`
	prog, err := ParseProgram(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog) != 2 {
		t.Fatalf("expected 2 instructions, got %d", len(prog))
	}
}

func TestParseProgramSaturateSuffix(t *testing.T) {
	prog, err := ParseProgram(strings.NewReader("add_sat r0.xyzw, r1.xyzw, r2.xyzw\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !prog[0].Saturate {
		t.Errorf("expected Saturate to be set")
	}
	if prog[0].Opcode != vm.OpAdd {
		t.Errorf("expected OpAdd, got %v", prog[0].Opcode)
	}
}

func TestParseProgramPolaritySuffix(t *testing.T) {
	progNZ, err := ParseProgram(strings.NewReader("if_nz r0.x\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !progNZ[0].NonZero {
		t.Errorf("if_nz should set NonZero true")
	}

	progZ, err := ParseProgram(strings.NewReader("if_z r0.x\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progZ[0].NonZero {
		t.Errorf("if_z should leave NonZero false")
	}
}

func TestParseProgramImmediateLiterals(t *testing.T) {
	prog, err := ParseProgram(strings.NewReader("mov r0.xyzw, l(1.0,2.0,3.0,4.0)\nmov r1.x, l(5.0)\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vec := prog[0].Operands[1]
	if vec.Type != vm.OperandImmediate32 || vec.NumComponents != vm.NumComponents4 {
		t.Errorf("unexpected vector immediate: %+v", vec)
	}
	scalar := prog[1].Operands[1]
	if scalar.Type != vm.OperandImmediate32 || scalar.NumComponents != vm.NumComponents1 {
		t.Errorf("unexpected scalar immediate: %+v", scalar)
	}
}

func TestParseProgramOperandModifiers(t *testing.T) {
	prog, err := ParseProgram(strings.NewReader("mov r0.x, -r1.x\nmov r0.x, abs(r1.x)\nmov r0.x, -abs(r1.x)\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog[0].Operands[1].Modifier != vm.ModNeg {
		t.Errorf("expected ModNeg, got %v", prog[0].Operands[1].Modifier)
	}
	if prog[1].Operands[1].Modifier != vm.ModAbs {
		t.Errorf("expected ModAbs, got %v", prog[1].Operands[1].Modifier)
	}
	if prog[2].Operands[1].Modifier != vm.ModAbsNeg {
		t.Errorf("expected ModAbsNeg, got %v", prog[2].Operands[1].Modifier)
	}
}

func TestParseProgramTrailingTokens(t *testing.T) {
	prog, err := ParseProgram(strings.NewReader(
		"ld_structured r0.xyzw, r1.x, t0.xyzw stride=16\n" +
			"ld r0.xyzw, r1.xyzw, t0.xyzw offset=(1,-2,0)\n" +
			"resinfo r0.xyzw, r1.x, t0.xyzw resinfo_uint\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog[0].Stride != 16 {
		t.Errorf("expected stride 16, got %d", prog[0].Stride)
	}
	if prog[1].TexelOffset != [3]int32{1, -2, 0} {
		t.Errorf("unexpected texel offset: %v", prog[1].TexelOffset)
	}
	if prog[2].ResInfoRetType != vm.ResInfoUInt {
		t.Errorf("expected ResInfoUInt, got %v", prog[2].ResInfoRetType)
	}
}

func TestParseProgramIndexableTempAndConstantBuffer(t *testing.T) {
	prog, err := ParseProgram(strings.NewReader("mov r0[1].xyzw, cb2[3].xyzw\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dst := prog[0].Operands[0]
	if dst.Type != vm.OperandIndexableTemp || dst.Indices[0].Absolute != 0 || dst.Indices[1].Absolute != 1 {
		t.Errorf("unexpected indexable temp operand: %+v", dst)
	}
	src := prog[0].Operands[1]
	if src.Type != vm.OperandConstantBuffer || src.Indices[0].Absolute != 2 || src.Indices[1].Absolute != 3 {
		t.Errorf("unexpected constant buffer operand: %+v", src)
	}
}

func TestParseProgramUnknownMnemonic(t *testing.T) {
	_, err := ParseProgram(strings.NewReader("frobnicate r0.x\n"))
	if err == nil {
		t.Fatalf("expected an error for an unknown mnemonic")
	}
	if !strings.Contains(err.Error(), "unknown mnemonic") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseProgramMalformedOperand(t *testing.T) {
	_, err := ParseProgram(strings.NewReader("mov r0.x, ???\n"))
	if err == nil {
		t.Fatalf("expected an error for a malformed operand")
	}
}
