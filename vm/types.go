/*
   shaderdbg/vm - operand and opcode enumerations

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// VarType describes how a ShaderVariable's four 32-bit words should be
// interpreted. It never changes the underlying storage: all four words
// are always valid bit patterns regardless of Type.
type VarType int

const (
	TypeFloat VarType = iota
	TypeSInt
	TypeUInt
	TypeDouble
)

func (t VarType) String() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeSInt:
		return "int"
	case TypeUInt:
		return "uint"
	case TypeDouble:
		return "double"
	default:
		return "unknown"
	}
}

// Modifier is a source-operand absolute-value/negation pair, applied
// after swizzle and before denormal flush (§4.3).
type Modifier int

const (
	ModNone Modifier = iota
	ModNeg
	ModAbs
	ModAbsNeg
)

// NumComponents constrains an operand to a scalar or 4-vector result.
// Any other width is a Trap (§7).
type NumComponents int

const (
	NumNone NumComponents = iota
	NumComponents1
	NumComponents4
)

// OperandType names where a source or destination operand's data lives.
type OperandType int

const (
	OperandTemp OperandType = iota
	OperandIndexableTemp
	OperandInput
	OperandOutput
	OperandConstantBuffer
	OperandImmediateConstantBuffer
	OperandImmediate32
	OperandImmediate64
	OperandInputThreadGroupID
	OperandInputThreadID
	OperandInputThreadIDInGroup
	OperandInputThreadIDInGroupFlattened
	OperandInputCoverageMask
	OperandInputPrimitiveID
	OperandThreadGroupSharedMemory
	OperandResource
	OperandSampler
	OperandUnorderedAccessView
	OperandNull
	OperandRasterizer
)

// unusedComponent marks a swizzle/mask slot as not selecting a lane.
const unusedComponent uint8 = 0xff

// OperandIndex resolves to a register/array/buffer index. When Relative
// is non-nil it is itself a source operand whose lane .x is added to
// Absolute as a dynamic offset (§4.3 step 1).
type OperandIndex struct {
	Absolute uint32
	Relative *Operand
}

// Operand is one source or destination slot of an ASMOperation.
type Operand struct {
	Type          OperandType
	Indices       []OperandIndex
	Comps         [4]uint8 // swizzle (src) or write-mask (dst); unusedComponent = not selected
	NumComponents NumComponents
	Modifier      Modifier
	Values        [4]uint32 // IMMEDIATE32/64 literal bits
}

// ResInfoType selects RESINFO's return interpretation.
type ResInfoType int

const (
	ResInfoFloat ResInfoType = iota
	ResInfoUInt
	ResInfoRcpFloat
)

// ResourceDimension names a resource's shape, used by LOD/RESINFO.
type ResourceDimension int

const (
	DimUnknown ResourceDimension = iota
	DimBuffer
	DimTexture1D
	DimTexture1DArray
	DimTexture2D
	DimTexture2DArray
	DimTexture2DMS
	DimTexture2DMSArray
	DimTexture3D
	DimTextureCube
	DimTextureCubeArray
)

// ASMOperation is one decoded instruction, produced by the external
// container parser (§3, §6). The core never mutates it.
type ASMOperation struct {
	Opcode         Opcode
	Operands       []Operand
	Saturate       bool
	NonZero        bool // predicate polarity for IF/BREAKC/CONTINUEC/DISCARD
	Stride         uint32
	TexelOffset    [3]int32
	ResInfoRetType ResInfoType
	Str            string
}
