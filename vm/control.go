/*
   shaderdbg/vm - control-flow scanner (§4.8)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

// The instruction stream is flat: IF/ELSE/ENDIF, SWITCH/CASE/DEFAULT/
// ENDSWITCH, LOOP/ENDLOOP, BREAK(C), CONTINUE(C), RET(C), DISCARD are
// ordinary instructions in the table, not a pre-built CFG. Every branch
// decision re-scans the table at the moment it is taken, tracking
// nesting depth as it goes. This is deliberately re-derived on every
// branch rather than cached; a pre-pass label-match table is a valid
// optimization the spec allows but does not require.

// skipToElseOrEndIf scans forward from just after an untaken IF,
// tracking nested IF/ENDIF, and returns the index to land on: the
// instruction immediately after the matching ELSE (if depth-1 ELSE is
// found first) or immediately after the matching ENDIF.
func skipToElseOrEndIf(c DxbcContainer, from int) int {
	depth := 1
	for i := from; i < c.NumInstructions(); i++ {
		switch c.Instruction(i).Opcode {
		case OpIf:
			depth++
		case OpElse:
			if depth == 1 {
				return i + 1
			}
		case OpEndIf:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	logTrap("control: IF at instruction without matching ENDIF")
	return c.NumInstructions()
}

// skipToEndIf scans forward from an ELSE to its matching ENDIF.
func skipToEndIf(c DxbcContainer, from int) int {
	depth := 1
	for i := from; i < c.NumInstructions(); i++ {
		switch c.Instruction(i).Opcode {
		case OpIf:
			depth++
		case OpEndIf:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	logTrap("control: ELSE without matching ENDIF")
	return c.NumInstructions()
}

// switchTarget implements the SWITCH scan: track nested SWITCH/
// ENDSWITCH, remember the first DEFAULT at depth 1, take the first
// equal-value CASE at depth 1 if one exists, else the remembered
// DEFAULT, else the position just after ENDSWITCH.
func switchTarget(c DxbcContainer, from int, value uint32) int {
	depth := 1
	defaultIdx := -1
	for i := from; i < c.NumInstructions(); i++ {
		instr := c.Instruction(i)
		switch instr.Opcode {
		case OpSwitch:
			depth++
		case OpEndSwitch:
			depth--
			if depth == 0 {
				if defaultIdx >= 0 {
					return skipLabels(c, defaultIdx)
				}
				return skipLabels(c, i+1)
			}
		case OpDefault:
			if depth == 1 && defaultIdx < 0 {
				defaultIdx = i
			}
		case OpCase:
			if depth == 1 && len(instr.Operands) > 0 {
				caseVal := instr.Operands[0].Values[0]
				if caseVal == value {
					return skipLabels(c, i+1)
				}
			}
		}
	}
	logTrap("control: SWITCH without matching ENDSWITCH")
	return c.NumInstructions()
}

// skipLabels advances past a contiguous run of CASE/DEFAULT labels to
// the next real instruction (§4.8 SWITCH).
func skipLabels(c DxbcContainer, from int) int {
	i := from
	for i < c.NumInstructions() {
		op := c.Instruction(i).Opcode
		if op != OpCase && op != OpDefault {
			break
		}
		i++
	}
	return i
}

// skipLoopOrSwitch implements BREAK/BREAKC: scan forward tracking
// nested (LOOP|SWITCH)/(ENDLOOP|ENDSWITCH) and land just past the
// matching end, whichever construct opened at depth 1 first.
func skipLoopOrSwitch(c DxbcContainer, from int) int {
	depth := 1
	for i := from; i < c.NumInstructions(); i++ {
		switch c.Instruction(i).Opcode {
		case OpLoop, OpSwitch:
			depth++
		case OpEndLoop, OpEndSwitch:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	logTrap("control: BREAK without an enclosing LOOP/SWITCH")
	return c.NumInstructions()
}

// loopHead implements CONTINUE/CONTINUEC/ENDLOOP: scan backward
// tracking nested ENDLOOP/LOOP and position on the matching LOOP itself
// so the next step re-enters the loop body.
func loopHead(c DxbcContainer, from int) int {
	depth := 1
	for i := from; i >= 0; i-- {
		switch c.Instruction(i).Opcode {
		case OpEndLoop:
			depth++
		case OpLoop:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	logTrap("control: CONTINUE without an enclosing LOOP")
	return 0
}

// execControl runs one control-flow instruction, returning the next
// program counter. It is the only place Step's dispatch consults for
// these opcodes (§4.8).
func (c *evalCtx) execControl(pc int, instr ASMOperation) int {
	s := c.state
	cont := c.cont

	switch instr.Opcode {
	case OpIf:
		taken := c.predicate(instr, 0)
		if taken {
			return pc + 1
		}
		return skipToElseOrEndIf(cont, pc+1)

	case OpElse:
		return skipToEndIf(cont, pc+1)

	case OpEndIf, OpDefault, OpCase, OpEndSwitch:
		return pc + 1

	case OpSwitch:
		value := c.getSrc(&instr.Operands[0]).UInt(0)
		return switchTarget(cont, pc+1, value)

	case OpLoop:
		return pc + 1

	case OpEndLoop:
		return loopHead(cont, pc-1)

	case OpBreak:
		return skipLoopOrSwitch(cont, pc+1)

	case OpBreakC:
		if c.predicate(instr, 0) {
			return skipLoopOrSwitch(cont, pc+1)
		}
		return pc + 1

	case OpContinue:
		return loopHead(cont, pc-1)

	case OpContinueC:
		if c.predicate(instr, 0) {
			return loopHead(cont, pc-1)
		}
		return pc + 1

	case OpRet:
		s.Done = true
		return pc

	case OpRetC:
		if c.predicate(instr, 0) {
			s.Done = true
		}
		return pc + 1

	case OpDiscard:
		if c.predicate(instr, 0) {
			s.Done = true
		}
		return pc + 1

	default:
		logTrap("control: unhandled control-flow opcode %s", instr.Opcode)
		return pc + 1
	}
}

// predicate reads operand[idx] as the single-component predicate bit
// pattern and applies op.nonzero polarity: nonzero=true means "taken
// when the bit pattern is zero", nonzero=false means "taken when the
// bit pattern is nonzero" (§4.8 IF/BREAKC/CONTINUEC/RETC/DISCARD all
// share this convention; §8 testable property 7 fixes the direction).
func (c *evalCtx) predicate(instr ASMOperation, idx int) bool {
	v := c.getSrc(&instr.Operands[idx])
	nonzero := v.Words[0] != 0
	if instr.NonZero {
		return !nonzero
	}
	return nonzero
}
