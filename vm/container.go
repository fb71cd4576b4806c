/*
   shaderdbg/vm - external decoder collaborator

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// DeclKind names a declaration the external container parser produced.
// Only the kinds Init actually consumes are enumerated; any other kind
// the decoder emits (resource/sampler/UAV declarations, global flags,
// and so on) is out of scope for the core and ignored by Init.
type DeclKind int

const (
	DeclTemps DeclKind = iota
	DeclIndexableTemp
	DeclThreadGroup
)

// Decl is one entry from the container's declaration table (§6).
type Decl struct {
	Kind DeclKind

	// DeclTemps
	NumTemps uint32

	// DeclIndexableTemp
	TempReg       uint32
	NumElements   uint32
	NumComponents uint32

	// DeclThreadGroup
	GroupSize [3]uint32
}

// DxbcContainer is the decoded instruction/declaration table the
// external binary container parser produces. The core only reads it; it
// never mutates or owns it (§1, §6).
type DxbcContainer interface {
	NumDeclarations() int
	Declaration(i int) Decl

	NumInstructions() int
	Instruction(i int) ASMOperation

	OutputSignature() []SignatureEntry
	CBuffers() []ConstantBuffer
	ImmediateConstantBuffer() []uint32
}
