/*
   shaderdbg/vm/config - in-memory DxbcContainer built from a Fixture

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package config

import "github.com/rcornwell/shaderdbg/vm"

// Container is a minimal vm.DxbcContainer backed by a parsed Fixture
// plus a program the caller appends to directly. Decoding an actual
// binary instruction stream is out of scope (§1 "OUT OF SCOPE"); this
// exists so cmd/shaderstep and tests can drive the core without a real
// decoder.
type Container struct {
	decls        []vm.Decl
	instructions []vm.ASMOperation
	outputSig    []vm.SignatureEntry
	cbuffers     []vm.ConstantBuffer
	icb          []uint32
}

// NewContainer builds a Container from a parsed Fixture.
func NewContainer(f *Fixture) *Container {
	c := &Container{}
	if f.NumTemps > 0 {
		c.decls = append(c.decls, vm.Decl{Kind: vm.DeclTemps, NumTemps: f.NumTemps})
	}
	for _, it := range f.IndexableTemps {
		c.decls = append(c.decls, vm.Decl{
			Kind: vm.DeclIndexableTemp, TempReg: it.TempReg,
			NumElements: it.NumElements, NumComponents: it.NumComponents,
		})
	}
	if f.GroupSize != [3]uint32{} {
		c.decls = append(c.decls, vm.Decl{Kind: vm.DeclThreadGroup, GroupSize: f.GroupSize})
	}
	for _, cb := range f.CBuffers {
		members := make([]vm.ShaderVariable, 0, len(cb.Words)/4)
		for i := 0; i+3 < len(cb.Words); i += 4 {
			members = append(members, vm.ShaderVariable{
				Type:  vm.TypeUInt,
				Words: [4]uint32{cb.Words[i], cb.Words[i+1], cb.Words[i+2], cb.Words[i+3]},
			})
		}
		c.cbuffers = append(c.cbuffers, vm.ConstantBuffer{RegisterNumber: cb.Register, Members: members})
	}
	return c
}

// AddInstruction appends one decoded instruction, returning its index
// in the program (the value a jump/scan target would reference).
func (c *Container) AddInstruction(op vm.ASMOperation) int {
	c.instructions = append(c.instructions, op)
	return len(c.instructions) - 1
}

// SetOutputSignature replaces the output-index-to-semantic map.
func (c *Container) SetOutputSignature(sig []vm.SignatureEntry) { c.outputSig = sig }

// SetImmediateConstantBuffer replaces the raw ICB word block.
func (c *Container) SetImmediateConstantBuffer(words []uint32) { c.icb = words }

func (c *Container) NumDeclarations() int      { return len(c.decls) }
func (c *Container) Declaration(i int) vm.Decl { return c.decls[i] }

func (c *Container) NumInstructions() int             { return len(c.instructions) }
func (c *Container) Instruction(i int) vm.ASMOperation { return c.instructions[i] }

func (c *Container) OutputSignature() []vm.SignatureEntry { return c.outputSig }
func (c *Container) CBuffers() []vm.ConstantBuffer        { return c.cbuffers }
func (c *Container) ImmediateConstantBuffer() []uint32    { return c.icb }
