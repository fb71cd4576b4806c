/*
   shaderdbg/vm - opcode mnemonics

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// Opcode names one of the dispatcher's handled instructions. The
// numeric values are local to this interpreter; the external container
// parser maps the wire encoding to these mnemonics.
type Opcode int

const (
	OpNop Opcode = iota

	// Arithmetic.
	OpAdd
	OpMul
	OpDiv
	OpMad
	OpDp2
	OpDp3
	OpDp4
	OpFrc
	OpRcp
	OpRsq
	OpSqrt
	OpExp
	OpLog
	OpSinCos
	OpRoundPI
	OpRoundNI
	OpRoundZ
	OpRoundNE
	OpDAdd
	OpDMul
	OpDDiv
	OpDMad
	OpDRcp

	// Integer.
	OpIAdd
	OpIMul
	OpUMul
	OpUDiv
	OpIMad
	OpUMad
	OpUAddC
	OpUSubB
	OpIShl
	OpIShr
	OpUShr
	OpIBfe
	OpUBfe
	OpBfi
	OpBfRev
	OpCountBits
	OpFirstBitHi
	OpFirstBitLo
	OpFirstBitSHi

	// Conversions.
	OpIToF
	OpUToF
	OpFToI
	OpFToU
	OpIToD
	OpUToD
	OpFToD
	OpDToI
	OpDToU
	OpDToF
	OpF16ToF32
	OpF32ToF16

	// Comparisons.
	OpEq
	OpNe
	OpLt
	OpGe
	OpIEq
	OpINe
	OpILt
	OpIGe
	OpULt
	OpUGe
	OpDEq
	OpDNe
	OpDLt
	OpDGe

	// Bitwise.
	OpAnd
	OpOr
	OpXor
	OpNot

	// Move.
	OpMov
	OpDMov
	OpMovC
	OpDMovC
	OpSwapC

	// Resource / memory.
	OpLdRaw
	OpStoreRaw
	OpLdStructured
	OpStoreStructured
	OpLdUAVTyped
	OpStoreUAVTyped

	// Atomics (no return).
	OpAtomicIAdd
	OpAtomicIMax
	OpAtomicIMin
	OpAtomicUMax
	OpAtomicUMin
	OpAtomicAnd
	OpAtomicOr
	OpAtomicXor
	OpAtomicCmpStore

	// Atomics (with before-value return).
	OpImmAtomicIAdd
	OpImmAtomicIMax
	OpImmAtomicIMin
	OpImmAtomicUMax
	OpImmAtomicUMin
	OpImmAtomicAnd
	OpImmAtomicOr
	OpImmAtomicXor
	OpImmAtomicExch
	OpImmAtomicCmpExch
	OpImmAtomicAlloc
	OpImmAtomicConsume

	// Sample / gather / resource info.
	OpSample
	OpSampleL
	OpSampleB
	OpSampleD
	OpSampleC
	OpSampleCLz
	OpLd
	OpLdMS
	OpGather4
	OpGather4C
	OpGather4Po
	OpGather4PoC
	OpLod
	OpSampleInfo
	OpSamplePos
	OpBufInfo
	OpResInfo

	// Derivatives.
	OpDDXCoarse
	OpDDXFine
	OpDDYCoarse
	OpDDYFine

	// Attribute-interpolation evaluation.
	OpEvalSampleIndex
	OpEvalSnapped
	OpEvalCentroid

	// Control flow.
	OpIf
	OpElse
	OpEndIf
	OpSwitch
	OpCase
	OpDefault
	OpEndSwitch
	OpLoop
	OpEndLoop
	OpBreak
	OpBreakC
	OpContinue
	OpContinueC
	OpRet
	OpRetC
	OpDiscard
)

var opcodeNames = map[Opcode]string{
	OpNop: "nop", OpAdd: "add", OpMul: "mul", OpDiv: "div", OpMad: "mad",
	OpDp2: "dp2", OpDp3: "dp3", OpDp4: "dp4", OpFrc: "frc",
	OpRcp: "rcp", OpRsq: "rsq", OpSqrt: "sqrt", OpExp: "exp", OpLog: "log",
	OpSinCos: "sincos", OpRoundPI: "round_pi", OpRoundNI: "round_ni",
	OpRoundZ: "round_z", OpRoundNE: "round_ne",
	OpDAdd: "dadd", OpDMul: "dmul", OpDDiv: "ddiv", OpDMad: "dmad", OpDRcp: "drcp",
	OpIAdd: "iadd", OpIMul: "imul", OpUMul: "umul", OpUDiv: "udiv",
	OpIMad: "imad", OpUMad: "umad", OpUAddC: "uaddc", OpUSubB: "usubb",
	OpIShl: "ishl", OpIShr: "ishr", OpUShr: "ushr",
	OpIBfe: "ibfe", OpUBfe: "ubfe", OpBfi: "bfi", OpBfRev: "bfrev",
	OpCountBits: "countbits", OpFirstBitHi: "firstbit_hi",
	OpFirstBitLo: "firstbit_lo", OpFirstBitSHi: "firstbit_shi",
	OpIToF: "itof", OpUToF: "utof", OpFToI: "ftoi", OpFToU: "ftou",
	OpIToD: "itod", OpUToD: "utod", OpFToD: "ftod",
	OpDToI: "dtoi", OpDToU: "dtou", OpDToF: "dtof",
	OpF16ToF32: "f16tof32", OpF32ToF16: "f32tof16",
	OpEq: "eq", OpNe: "ne", OpLt: "lt", OpGe: "ge",
	OpIEq: "ieq", OpINe: "ine", OpILt: "ilt", OpIGe: "ige",
	OpULt: "ult", OpUGe: "uge",
	OpDEq: "deq", OpDNe: "dne", OpDLt: "dlt", OpDGe: "dge",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not",
	OpMov: "mov", OpDMov: "dmov", OpMovC: "movc", OpDMovC: "dmovc", OpSwapC: "swapc",
	OpLdRaw: "ld_raw", OpStoreRaw: "store_raw",
	OpLdStructured: "ld_structured", OpStoreStructured: "store_structured",
	OpLdUAVTyped: "ld_uav_typed", OpStoreUAVTyped: "store_uav_typed",
	OpAtomicIAdd: "atomic_iadd", OpAtomicIMax: "atomic_imax", OpAtomicIMin: "atomic_imin",
	OpAtomicUMax: "atomic_umax", OpAtomicUMin: "atomic_umin",
	OpAtomicAnd: "atomic_and", OpAtomicOr: "atomic_or", OpAtomicXor: "atomic_xor",
	OpAtomicCmpStore: "atomic_cmp_store",
	OpImmAtomicIAdd: "imm_atomic_iadd", OpImmAtomicIMax: "imm_atomic_imax",
	OpImmAtomicIMin: "imm_atomic_imin", OpImmAtomicUMax: "imm_atomic_umax",
	OpImmAtomicUMin: "imm_atomic_umin", OpImmAtomicAnd: "imm_atomic_and",
	OpImmAtomicOr: "imm_atomic_or", OpImmAtomicXor: "imm_atomic_xor",
	OpImmAtomicExch: "imm_atomic_exch", OpImmAtomicCmpExch: "imm_atomic_cmp_exch",
	OpImmAtomicAlloc: "imm_atomic_alloc", OpImmAtomicConsume: "imm_atomic_consume",
	OpSample: "sample", OpSampleL: "sample_l", OpSampleB: "sample_b",
	OpSampleD: "sample_d", OpSampleC: "sample_c", OpSampleCLz: "sample_c_lz",
	OpLd: "ld", OpLdMS: "ld_ms", OpGather4: "gather4", OpGather4C: "gather4_c",
	OpGather4Po: "gather4_po", OpGather4PoC: "gather4_po_c", OpLod: "lod",
	OpSampleInfo: "sample_info", OpSamplePos: "sample_pos",
	OpBufInfo: "bufinfo", OpResInfo: "resinfo",
	OpDDXCoarse: "deriv_rtx_coarse", OpDDXFine: "deriv_rtx_fine",
	OpDDYCoarse: "deriv_rty_coarse", OpDDYFine: "deriv_rty_fine",
	OpEvalSampleIndex: "eval_sample_index", OpEvalSnapped: "eval_snapped",
	OpEvalCentroid: "eval_centroid",
	OpIf: "if", OpElse: "else", OpEndIf: "endif",
	OpSwitch: "switch", OpCase: "case", OpDefault: "default", OpEndSwitch: "endswitch",
	OpLoop: "loop", OpEndLoop: "endloop", OpBreak: "break", OpBreakC: "breakc",
	OpContinue: "continue", OpContinueC: "continuec",
	OpRet: "ret", OpRetC: "retc", OpDiscard: "discard",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "unk"
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		m[name] = op
	}
	return m
}()

// OpcodeByName reverse-looks-up a mnemonic printed by Opcode.String,
// for textual program loaders outside this package (vm/config).
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}
