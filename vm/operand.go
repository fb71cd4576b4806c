/*
   shaderdbg/vm - source operand evaluator (§4.3)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// evalCtx bundles everything an opcode handler or operand evaluation
// needs for one step: the invocation's own state, the shared resource
// backing stores, the host-graphics collaborator, this lane's quad
// siblings (for derivatives) and the instruction being executed.
type evalCtx struct {
	state  *State
	global *Global
	api    ApiWrapper
	quad   *Quad
	op     ASMOperation
	cont   DxbcContainer
}

// Quad is a loan of the four sibling invocations' states for the
// duration of a derivative or implicit-derivative sample step (§3).
// Lane indices follow quadIndex: bit 0 = x, bit 1 = y.
type Quad [4]*State

// resolveIndex evaluates one OperandIndex: the declared absolute value,
// plus the .x lane of its relative sub-operand if present (§4.3 step 1).
func (c *evalCtx) resolveIndex(idx OperandIndex) uint32 {
	v := idx.Absolute
	if idx.Relative != nil {
		rel := c.getSrc(idx.Relative)
		v += rel.UInt(0)
	}
	return v
}

func (c *evalCtx) resolveIndices(operand *Operand) []uint32 {
	out := make([]uint32, len(operand.Indices))
	for i, idx := range operand.Indices {
		out[i] = c.resolveIndex(idx)
	}
	return out
}

// getSrc resolves the value of a source operand: index resolution,
// data sourcing by operand type, swizzle, modifier, then denormal flush
// (§4.3).
func (c *evalCtx) getSrc(operand *Operand) ShaderVariable {
	raw := c.sourceValue(operand)
	swizzled := applySwizzle(raw, operand)
	modified := applyModifier(swizzled, operand.Modifier, operationType(c.op.Opcode))
	if operationFlushing(c.op.Opcode) && isFlushableOperandType(operand.Type) {
		flushLanes(&modified)
	}
	return modified
}

// sourceValue implements §4.3 step 2: fetch raw lane data by operand
// type, before swizzle/modifier/flush are applied.
func (c *evalCtx) sourceValue(operand *Operand) ShaderVariable {
	s := c.state
	switch operand.Type {
	case OperandTemp:
		idx := c.resolveIndices(operand)
		return s.boundRegister(idx[0])

	case OperandIndexableTemp:
		idx := c.resolveIndices(operand)
		return s.boundIndexableTemp(idx[0], idx[1])

	case OperandInput:
		idx := c.resolveIndices(operand)
		return s.boundInput(idx[0])

	case OperandOutput:
		idx := c.resolveIndices(operand)
		return s.boundOutput(idx[0])

	case OperandConstantBuffer:
		idx := c.resolveIndices(operand)
		cb := s.cbufferByRegister(idx[0])
		if cb == nil || int(idx[1]) >= len(cb.Members) {
			logRecoverable("operand: constant buffer index out of bounds, register=%d index=%d", idx[0], idx[1])
			return ShaderVariable{Type: TypeFloat}
		}
		return cb.Members[idx[1]]

	case OperandImmediateConstantBuffer:
		idx := c.resolveIndices(operand)
		base := int(idx[0]) * 4
		var v ShaderVariable
		v.Type = TypeFloat
		for i := 0; i < 4; i++ {
			if base+i < len(s.ImmediateConstantBuffer) {
				v.Words[i] = s.ImmediateConstantBuffer[base+i]
			}
		}
		return v

	case OperandImmediate32, OperandImmediate64:
		var v ShaderVariable
		v.Type = TypeFloat
		if operand.NumComponents == NumComponents1 {
			v.Words[0] = operand.Values[0]
			v.Columns = 1
		} else {
			v.Words = operand.Values
		}
		return v

	case OperandInputThreadGroupID:
		return uintVector(s.Semantics.GroupID)

	case OperandInputThreadID:
		return uintVector(s.Semantics.ThreadID)

	case OperandInputThreadIDInGroup:
		return uintVector(s.Semantics.ThreadIDInGroup)

	case OperandInputThreadIDInGroupFlattened:
		var v ShaderVariable
		v.Type = TypeUInt
		v.Words[0] = s.Semantics.ThreadIDInGroupFlattened()
		v.Columns = 1
		return v

	case OperandInputCoverageMask:
		var v ShaderVariable
		v.Type = TypeUInt
		v.Words[0] = s.Semantics.CoverageMask
		v.Columns = 1
		return v

	case OperandInputPrimitiveID:
		var v ShaderVariable
		v.Type = TypeUInt
		v.Words[0] = s.Semantics.PrimitiveID
		v.Columns = 1
		return v

	case OperandThreadGroupSharedMemory, OperandResource, OperandSampler,
		OperandUnorderedAccessView, OperandNull, OperandRasterizer:
		idx := c.resolveIndices(operand)
		var v ShaderVariable
		v.Type = TypeUInt
		slot := uint32(0)
		if len(idx) > 0 {
			slot = idx[0]
		}
		for i := range v.Words {
			v.Words[i] = slot
		}
		return v

	default:
		logTrap("operand: unhandled source operand type %d", operand.Type)
		return ShaderVariable{}
	}
}

// boundRegister fetches registers[index], clamping with a logged
// warning on an out-of-bounds index (§7 Recoverable warning).
func (s *State) boundRegister(index uint32) ShaderVariable {
	if int(index) >= len(s.Registers) {
		logRecoverable("operand: temp register %d out of bounds (have %d)", index, len(s.Registers))
		return ShaderVariable{Type: TypeFloat}
	}
	return s.Registers[index]
}

func (s *State) boundIndexableTemp(reg, elem uint32) ShaderVariable {
	if int(reg) >= len(s.IndexableTemps) {
		logRecoverable("operand: indexable temp array %d out of bounds", reg)
		return ShaderVariable{Type: TypeFloat}
	}
	members := s.IndexableTemps[reg].Members
	if int(elem) >= len(members) {
		logRecoverable("operand: indexable temp %d element %d out of bounds (have %d)", reg, elem, len(members))
		return ShaderVariable{Type: TypeFloat}
	}
	return members[elem]
}

func (s *State) boundInput(index uint32) ShaderVariable {
	if int(index) >= len(s.Inputs) {
		logRecoverable("operand: input %d out of bounds", index)
		return ShaderVariable{Type: TypeFloat}
	}
	return s.Inputs[index]
}

func (s *State) boundOutput(index uint32) ShaderVariable {
	if int(index) >= len(s.Outputs) {
		logRecoverable("operand: output %d out of bounds", index)
		return ShaderVariable{Type: TypeFloat}
	}
	return s.Outputs[index]
}

func uintVector(words [3]uint32) ShaderVariable {
	var v ShaderVariable
	v.Type = TypeUInt
	v.Words[0], v.Words[1], v.Words[2] = words[0], words[1], words[2]
	return v
}

// applySwizzle applies the 4-component swizzle: lane i of the result is
// lane comps[i] of source, or lane i itself if comps[i] is unused. If
// only comps[0] is used the result is marked scalar (§4.3 step 3).
func applySwizzle(src ShaderVariable, operand *Operand) ShaderVariable {
	out := src
	onlyScalar := operand.Comps[0] != unusedComponent
	for i := 1; i < 4 && onlyScalar; i++ {
		if operand.Comps[i] != unusedComponent {
			onlyScalar = false
		}
	}
	for i := 0; i < 4; i++ {
		lane := i
		if operand.Comps[i] != unusedComponent {
			lane = int(operand.Comps[i])
		}
		out.Words[i] = src.Words[lane]
	}
	if onlyScalar {
		out.Columns = 1
	}
	return out
}

// applyModifier applies ABS and/or NEG under the opcode's declared
// arithmetic type. ABSNEG composes as NEG(ABS(x)) (§4.3 step 4, §8).
func applyModifier(v ShaderVariable, mod Modifier, t VarType) ShaderVariable {
	if mod == ModNone {
		return v
	}
	out := v
	doAbs := mod == ModAbs || mod == ModAbsNeg
	doNeg := mod == ModNeg || mod == ModAbsNeg
	if t == TypeDouble {
		for pair := 0; pair < 2; pair++ {
			d := out.Double(pair)
			if doAbs && d < 0 {
				d = -d
			}
			if doNeg {
				d = -d
			}
			out.SetDouble(pair, d)
		}
		return out
	}
	for i := 0; i < 4; i++ {
		out.Words[i] = applyModifierLane(out.Words[i], t, doAbs, doNeg)
	}
	return out
}

func applyModifierLane(word uint32, t VarType, doAbs, doNeg bool) uint32 {
	switch t {
	case TypeFloat:
		f := asFloat(word)
		if doAbs {
			f = absFloat(f)
		}
		if doNeg {
			f = negFloat(f)
		}
		return floatBits(f)
	case TypeSInt:
		n := int32(word)
		if doAbs && n < 0 {
			n = -n
		}
		if doNeg {
			n = -n
		}
		return uint32(n)
	default: // UInt, Double (double modifiers apply per 64-bit lane pair elsewhere)
		return word
	}
}
