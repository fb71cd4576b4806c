/*
   shaderdbg/vm - destination writer (§4.4)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// destCell is a located, mutable destination register: the per-lane
// getter/setter pair plus enough identity to record a Modified entry.
type destCell struct {
	class RegisterClass
	index int
	get   func(lane int) uint32
	set   func(lane int, word uint32)
}

// locateDst resolves a destination operand to a destCell (§4.4 step 2).
// TYPE_NULL returns (nil, true): a silent discard. A read-only operand
// type is a Trap and also returns (nil, true) since there is nothing to
// write.
func (c *evalCtx) locateDst(operand *Operand) (*destCell, bool) {
	s := c.state
	switch operand.Type {
	case OperandNull:
		return nil, true

	case OperandTemp:
		idx := c.resolveIndices(operand)[0]
		if int(idx) >= len(s.Registers) {
			logRecoverable("dest: temp register %d out of bounds", idx)
			return nil, true
		}
		i := int(idx)
		return &destCell{
			class: RegClassTemp, index: i,
			get: func(lane int) uint32 { return s.Registers[i].Words[lane] },
			set: func(lane int, w uint32) { s.Registers[i].Words[lane] = w },
		}, false

	case OperandIndexableTemp:
		idx := c.resolveIndices(operand)
		reg, elem := idx[0], idx[1]
		if int(reg) >= len(s.IndexableTemps) || int(elem) >= len(s.IndexableTemps[reg].Members) {
			logRecoverable("dest: indexable temp %d[%d] out of bounds", reg, elem)
			return nil, true
		}
		return &destCell{
			class: RegClassIndexableTemp, index: int(reg)*0x10000 + int(elem),
			get: func(lane int) uint32 { return s.IndexableTemps[reg].Members[elem].Words[lane] },
			set: func(lane int, w uint32) { s.IndexableTemps[reg].Members[elem].Words[lane] = w },
		}, false

	case OperandOutput:
		idx := c.resolveIndices(operand)[0]
		if int(idx) >= len(s.Outputs) {
			logRecoverable("dest: output %d out of bounds", idx)
			return nil, true
		}
		i := int(idx)
		return &destCell{
			class: RegClassOutput, index: i,
			get: func(lane int) uint32 { return s.Outputs[i].Words[lane] },
			set: func(lane int, w uint32) { s.Outputs[i].Words[lane] = w },
		}, false

	case OperandInput, OperandConstantBuffer, OperandImmediateConstantBuffer,
		OperandImmediate32, OperandImmediate64, OperandResource, OperandSampler,
		OperandRasterizer:
		logTrap("dest: write to read-only operand type %d", operand.Type)
		return nil, true

	default:
		logTrap("dest: unhandled destination operand type %d", operand.Type)
		return nil, true
	}
}

// setDst writes value into dst through the component write-mask,
// applying saturate and denormal flush, and records every lane actually
// changed (§4.4).
func (c *evalCtx) setDst(dst *Operand, value ShaderVariable) {
	cell, discard := c.locateDst(dst)
	if discard {
		return
	}

	if c.op.Saturate {
		value = saturate(value, operationType(c.op.Opcode))
	}

	for _, lane := range writeLanes(dst, isDoublePairSteered(c.op.Opcode)) {
		srcLane := lane.src
		newWord := value.Words[srcLane]

		if isNonFiniteBits(newWord) && operationType(c.op.Opcode) != TypeSInt && operationType(c.op.Opcode) != TypeUInt {
			c.state.Flags |= FlagGeneratedNaNOrInf
		}
		if operationFlushing(c.op.Opcode) && value.Type == TypeFloat {
			newWord = flushDenorm(newWord)
		}

		old := cell.get(lane.dst)
		if old != newWord {
			cell.set(lane.dst, newWord)
			c.state.recordModified(cell.class, cell.index, lane.dst)
		}
	}
}

// saturate clamps value under the opcode's declared arithmetic type
// (§4.4 step 3, §4.1, §8).
func saturate(v ShaderVariable, t VarType) ShaderVariable {
	out := v
	switch t {
	case TypeFloat:
		for i := 0; i < 4; i++ {
			out.Words[i] = floatBits(saturateFloat(asFloat(out.Words[i])))
		}
	case TypeUInt:
		for i := 0; i < 4; i++ {
			out.Words[i] = saturateUInt(out.Words[i])
		}
	case TypeSInt:
		for i := 0; i < 4; i++ {
			out.Words[i] = uint32(saturateSInt(int32(out.Words[i])))
		}
	case TypeDouble:
		for pair := 0; pair < 2; pair++ {
			d := out.Double(pair)
			d = minDouble(1, maxDouble(0, d))
			out.SetDouble(pair, d)
		}
	}
	return out
}

type laneWrite struct{ src, dst int }

// isDoublePairSteered reports whether op computes two independent
// double-pair results, lane 0 feeding mask bit 0 and lane 1 feeding
// mask bit 1, rather than the ordinary scalar-to-masked convention
// (§4.5 "destination mask steers double lane 0 to mask bit 0 and
// double lane 1 to mask bit 1").
func isDoublePairSteered(op Opcode) bool {
	switch op {
	case OpDToI, OpDToU, OpDToF, OpDEq, OpDNe, OpDLt, OpDGe:
		return true
	default:
		return false
	}
}

// writeLanes implements §4.4 step 4: if the mask selects exactly one
// component, source lane 0 drives that single destination lane
// (scalar-to-masked); otherwise every masked destination lane copies
// the matching source lane. A mask with no bits set copies lane 0 into
// lane 0. doublePairSteered overrides the single-component case for
// DTOx/double-compare results, whose two meaningful lanes (0 and 1)
// must each steer to their own mask bit rather than always lane 0.
func writeLanes(dst *Operand, doublePairSteered bool) []laneWrite {
	set := 0
	only := -1
	for i := 0; i < 4; i++ {
		if dst.Comps[i] != unusedComponent {
			set++
			only = i
		}
	}
	switch set {
	case 0:
		return []laneWrite{{src: 0, dst: 0}}
	case 1:
		src := 0
		if doublePairSteered {
			src = only
		}
		return []laneWrite{{src: src, dst: only}}
	default:
		lanes := make([]laneWrite, 0, 4)
		for i := 0; i < 4; i++ {
			if dst.Comps[i] != unusedComponent {
				lanes = append(lanes, laneWrite{src: i, dst: i})
			}
		}
		return lanes
	}
}
