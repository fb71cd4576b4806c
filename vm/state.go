/*
   shaderdbg/vm - per-invocation state

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import "math"

// ShaderVariable is one 4-lane SIMD register. The four words are always
// valid storage; Type only describes how a reader should interpret them
// (§3). Doubles reinterpret (.x,.y) as double lane 0 and (.z,.w) as
// double lane 1.
type ShaderVariable struct {
	Name    string
	Rows    int
	Columns int
	Type    VarType
	Words   [4]uint32
}

// NewShaderVariable returns a zeroed 4-component variable of the given type.
func NewShaderVariable(name string, t VarType) ShaderVariable {
	return ShaderVariable{Name: name, Rows: 1, Columns: 4, Type: t}
}

// Float reads lane i as a float32 bit pattern.
func (v ShaderVariable) Float(i int) float32 { return math.Float32frombits(v.Words[i]) }

// SetFloat writes lane i from a float32.
func (v *ShaderVariable) SetFloat(i int, f float32) { v.Words[i] = math.Float32bits(f) }

// Int reads lane i as a signed 32-bit int.
func (v ShaderVariable) Int(i int) int32 { return int32(v.Words[i]) }

// SetInt writes lane i from a signed 32-bit int.
func (v *ShaderVariable) SetInt(i int, n int32) { v.Words[i] = uint32(n) }

// UInt reads lane i as an unsigned 32-bit int.
func (v ShaderVariable) UInt(i int) uint32 { return v.Words[i] }

// SetUInt writes lane i from an unsigned 32-bit int.
func (v *ShaderVariable) SetUInt(i int, n uint32) { v.Words[i] = n }

// Double reads double-lane pair (0 = .xy, 1 = .zw) as a float64.
func (v ShaderVariable) Double(pair int) float64 {
	lo, hi := v.Words[pair*2], v.Words[pair*2+1]
	return math.Float64frombits(uint64(hi)<<32 | uint64(lo))
}

// SetDouble writes double-lane pair (0 = .xy, 1 = .zw) from a float64.
func (v *ShaderVariable) SetDouble(pair int, d float64) {
	bits := math.Float64bits(d)
	v.Words[pair*2] = uint32(bits)
	v.Words[pair*2+1] = uint32(bits >> 32)
}

// IndexableTemp is one DCL_INDEXABLE_TEMP-declared array of registers.
type IndexableTemp struct {
	Members []ShaderVariable
}

// ConstantBuffer is one declared cbuffer, looked up by RegisterNumber
// (the declared register, not its position in the slice) per §4.3.
type ConstantBuffer struct {
	RegisterNumber uint32
	Members        []ShaderVariable
}

// SignatureEntry maps an output index to a system-value semantic.
type SignatureEntry struct {
	Index       int
	SystemValue string
}

// Semantics carries the per-invocation identity the shader can read:
// thread/group ids, coverage mask, primitive id and this lane's quad
// position (bit 0 = x, bit 1 = y).
type Semantics struct {
	ThreadID        [3]uint32
	GroupID         [3]uint32
	ThreadIDInGroup [3]uint32
	GroupSize       [3]uint32 // declared DCL_THREAD_GROUP size, for flattening
	CoverageMask    uint32
	PrimitiveID     uint32
	QuadIndex       int
}

// ThreadIDInGroupFlattened computes z*X*Y + y*X + x using the declared
// group size (§4.3).
func (s *Semantics) ThreadIDInGroupFlattened() uint32 {
	x, y := s.GroupSize[0], s.GroupSize[1]
	t := s.ThreadIDInGroup
	return t[2]*x*y + t[1]*x + t[0]
}

// Flags is the per-step status bitset (§3).
type Flags uint32

const (
	FlagGeneratedNaNOrInf Flags = 1 << iota
	FlagSampleLoadGather
)

// RegisterClass names which array a ModifiedEntry refers to.
type RegisterClass int

const (
	RegClassTemp RegisterClass = iota
	RegClassIndexableTemp
	RegClassOutput
)

// ModifiedEntry records one register/component write made by the last
// step, for trace consumers (§3, §8).
type ModifiedEntry struct {
	Class     RegisterClass
	Index     int
	Component int
}

// State is one invocation's machine state, mutated only by Step (§3).
type State struct {
	PC                      int
	Registers               []ShaderVariable
	IndexableTemps          []IndexableTemp
	Outputs                 []ShaderVariable
	Inputs                  []ShaderVariable
	ConstantBuffers         []ConstantBuffer
	ImmediateConstantBuffer []uint32
	OutputSignature         []SignatureEntry

	Semantics Semantics
	Flags     Flags
	Done      bool
	Modified  []ModifiedEntry
}

// Finished reports whether the invocation has stopped: RET/RETC/DISCARD
// taken, or the program counter has run off the end of the instruction
// table (§6).
func Finished(s *State, numInstructions int) bool {
	return s.Done || s.PC >= numInstructions
}

// clearModified resets the per-step trace list; called once at the top
// of Step.
func (s *State) clearModified() {
	s.Modified = s.Modified[:0]
}

// recordModified appends one write to the trace list.
func (s *State) recordModified(class RegisterClass, index, component int) {
	s.Modified = append(s.Modified, ModifiedEntry{Class: class, Index: index, Component: component})
}

// cbufferByRegister performs the linear search by declared register
// number the ISA requires (§4.3, design notes §9).
func (s *State) cbufferByRegister(reg uint32) *ConstantBuffer {
	for i := range s.ConstantBuffers {
		if s.ConstantBuffers[i].RegisterNumber == reg {
			return &s.ConstantBuffers[i]
		}
	}
	return nil
}
