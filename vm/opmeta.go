/*
   shaderdbg/vm - per-opcode arithmetic type and denormal-flush policy

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// operationType names the arithmetic type an opcode's operand
// modifiers (ABS/NEG) and saturate are applied under (§4.3, §4.4).
// This is a simplification of the full ISA's per-opcode declared type
// table, covering every opcode family this core implements; opcodes not
// listed default to TypeFloat, the most common case.
var operationTypeTable = map[Opcode]VarType{
	OpDAdd: TypeDouble, OpDMul: TypeDouble, OpDDiv: TypeDouble, OpDMad: TypeDouble, OpDRcp: TypeDouble,
	OpDMov: TypeDouble, OpDMovC: TypeDouble,
	OpDEq: TypeDouble, OpDNe: TypeDouble, OpDLt: TypeDouble, OpDGe: TypeDouble,
	OpDToI: TypeDouble, OpDToU: TypeDouble, OpDToF: TypeDouble,

	OpIAdd: TypeSInt, OpIMul: TypeSInt, OpIMad: TypeSInt,
	OpIShl: TypeSInt, OpIShr: TypeSInt, OpIBfe: TypeSInt, OpFirstBitSHi: TypeSInt,
	OpIEq: TypeSInt, OpINe: TypeSInt, OpILt: TypeSInt, OpIGe: TypeSInt,
	OpIToF: TypeSInt, OpIToD: TypeSInt,

	OpUMul: TypeUInt, OpUDiv: TypeUInt, OpUMad: TypeUInt, OpUAddC: TypeUInt, OpUSubB: TypeUInt,
	OpUShr: TypeUInt, OpUBfe: TypeUInt, OpBfi: TypeUInt, OpBfRev: TypeUInt,
	OpCountBits: TypeUInt, OpFirstBitHi: TypeUInt, OpFirstBitLo: TypeUInt,
	OpULt: TypeUInt, OpUGe: TypeUInt,
	OpUToF: TypeUInt, OpUToD: TypeUInt,
	OpAnd: TypeUInt, OpOr: TypeUInt, OpXor: TypeUInt, OpNot: TypeUInt,

	OpFToI: TypeFloat, OpFToU: TypeFloat, OpFToD: TypeFloat,
}

// operationType returns the arithmetic type of op for modifier/saturate
// composition (§4.3 step 4, §4.4 step 3).
func operationType(op Opcode) VarType {
	if t, ok := operationTypeTable[op]; ok {
		return t
	}
	return TypeFloat
}

// flushingOpcodes lists every opcode whose source/destination floats are
// denormal-flushed (§4.1, §4.3 step 5, §4.4 step 5). MOV/DMOV are
// deliberately excluded: the ISA requires MOV preserve denormals (§4.5).
// MOVC/SWAPC are excluded too: they select whole lane bit patterns.
var flushingOpcodes = map[Opcode]bool{
	OpAdd: true, OpMul: true, OpDiv: true, OpMad: true,
	OpDp2: true, OpDp3: true, OpDp4: true, OpFrc: true,
	OpRcp: true, OpRsq: true, OpSqrt: true, OpExp: true, OpLog: true, OpSinCos: true,
	OpRoundPI: true, OpRoundNI: true, OpRoundZ: true, OpRoundNE: true,
	OpEq: true, OpNe: true, OpLt: true, OpGe: true,
	OpFToI: true, OpFToU: true, OpFToD: true,
}

// operationFlushing reports whether op denormal-flushes its floats.
func operationFlushing(op Opcode) bool {
	return flushingOpcodes[op]
}

// isFlushableOperandType reports whether an operand's source carries a
// real numeric value that denormal flush applies to. Degenerate
// placeholders (the opcode's own slot index) never flush (§4.3 step 2).
func isFlushableOperandType(t OperandType) bool {
	switch t {
	case OperandThreadGroupSharedMemory, OperandResource, OperandSampler,
		OperandUnorderedAccessView, OperandNull, OperandRasterizer:
		return false
	default:
		return true
	}
}
