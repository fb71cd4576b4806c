/*
   shaderdbg/vm - opcode dispatch table and step entry points (§6)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// opHandler executes one non-control-flow instruction against c. It
// returns false only for a delegated failure (ApiWrapper declined the
// math/sample call): the step then leaves the program counter where it
// was and state otherwise unchanged (§7 "Delegated failure").
type opHandler func(c *evalCtx) bool

// table maps every opcode this core implements to its handler. Control
// flow opcodes are dispatched separately through execControl, since
// they decide the next program counter rather than writing a
// destination and falling through to pc+1.
var table = buildTable()

func buildTable() map[Opcode]opHandler {
	t := make(map[Opcode]opHandler)
	registerArithOps(t)
	registerIntegerOps(t)
	registerConvertOps(t)
	registerCompareOps(t)
	registerBitwiseOps(t)
	registerMoveOps(t)
	registerResourceOps(t)
	registerAtomicOps(t)
	registerSampleOps(t)
	registerDerivativeOps(t)
	registerEvalOps(t)
	return t
}

func isControlFlowOp(op Opcode) bool {
	switch op {
	case OpIf, OpElse, OpEndIf, OpSwitch, OpCase, OpDefault, OpEndSwitch,
		OpLoop, OpEndLoop, OpBreak, OpBreakC, OpContinue, OpContinueC,
		OpRet, OpRetC, OpDiscard:
		return true
	default:
		return false
	}
}

// Init builds a State from a container's declarations: the temp
// register file, indexable-temp arrays, output array (sized from the
// output signature) and the read-only cbuffer/immediate-constant-buffer
// data (§6 "init").
func Init(s *State, c DxbcContainer) {
	s.OutputSignature = c.OutputSignature()
	s.ConstantBuffers = c.CBuffers()
	s.ImmediateConstantBuffer = c.ImmediateConstantBuffer()
	s.Outputs = make([]ShaderVariable, len(s.OutputSignature))

	for i := 0; i < c.NumDeclarations(); i++ {
		decl := c.Declaration(i)
		switch decl.Kind {
		case DeclTemps:
			s.Registers = make([]ShaderVariable, decl.NumTemps)
		case DeclIndexableTemp:
			for int(decl.TempReg) >= len(s.IndexableTemps) {
				s.IndexableTemps = append(s.IndexableTemps, IndexableTemp{})
			}
			s.IndexableTemps[decl.TempReg] = IndexableTemp{
				Members: make([]ShaderVariable, decl.NumElements),
			}
		case DeclThreadGroup:
			s.Semantics.GroupSize = decl.GroupSize
		}
	}
}

// Step executes the instruction at s.PC and returns s mutated into its
// successor state (§3, §6). Modified and Flags are per-step and are
// cleared at entry; Done and PC persist across steps.
func Step(s *State, g *Global, api ApiWrapper, cont DxbcContainer, quad *Quad) *State {
	if Finished(s, cont.NumInstructions()) {
		return s
	}

	s.clearModified()
	s.Flags = 0

	instr := cont.Instruction(s.PC)
	api.SetCurrentInstruction(s.PC)
	traceStep(s.PC, instr.Opcode)

	c := &evalCtx{state: s, global: g, api: api, quad: quad, op: instr, cont: cont}

	if isControlFlowOp(instr.Opcode) {
		s.PC = c.execControl(s.PC, instr)
		return s
	}

	handler, ok := table[instr.Opcode]
	if !ok {
		logTrap("dispatch: unhandled opcode %s", instr.Opcode)
		s.PC++
		return s
	}

	if !handler(c) {
		return s
	}
	s.PC++
	return s
}
