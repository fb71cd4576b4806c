/*
   shaderdbg/vm - screen-space derivative opcodes (§4.7)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

func registerDerivativeOps(t map[Opcode]opHandler) {
	t[OpDDXCoarse] = opDerivative(true)
	t[OpDDXFine] = opDerivative(true)
	t[OpDDYCoarse] = opDerivative(false)
	t[OpDDYFine] = opDerivative(false)
}

// quadLaneValue evaluates operand against a sibling lane's own State,
// for derivative and implicit-derivative sample opcodes that must read
// another invocation's registers (read-only, §3, §5).
func (c *evalCtx) quadLaneValue(qi int, operand *Operand) (ShaderVariable, bool) {
	if c.quad == nil || c.quad[qi] == nil {
		return ShaderVariable{}, false
	}
	traceLane(qi, "read by lane %d", c.state.Semantics.QuadIndex)
	lane := &evalCtx{state: c.quad[qi], global: c.global, api: c.api, quad: c.quad, op: c.op, cont: c.cont}
	return lane.getSrc(operand), true
}

// opDerivative implements DDX(Coarse/Fine) and DDY(Coarse/Fine) as the
// high-minus-low difference of the lane pair derivativePair selects
// (§4.7, §9).
func opDerivative(horizontal bool) opHandler {
	return func(c *evalCtx) bool {
		lo, hi, ok := c.derivativePair(horizontal, &c.op.Operands[1])
		if !ok {
			logRecoverable("derivative: opcode executed without a quad")
			return true
		}
		var out ShaderVariable
		out.Type = TypeFloat
		for i := 0; i < 4; i++ {
			out.SetFloat(i, hi.Float(i)-lo.Float(i))
		}
		c.setDst(&c.op.Operands[0], out)
		return true
	}
}

// derivativePair resolves the low/high sibling values for a DDX/DDY
// evaluation of operand, without writing a destination; sample opcodes
// needing implicit coarse derivatives reuse this. Fine forms pair this
// lane with its own row/column neighbour; coarse forms (and sample
// opcodes) always use the pair that contains lane 0.
func (c *evalCtx) derivativePair(horizontal bool, operand *Operand) (lo, hi ShaderVariable, ok bool) {
	if c.quad == nil {
		return ShaderVariable{}, ShaderVariable{}, false
	}
	qi := 0
	if c.op.Opcode == OpDDXFine || c.op.Opcode == OpDDYFine {
		qi = c.state.Semantics.QuadIndex
	}
	var loIdx, hiIdx int
	if horizontal {
		loIdx, hiIdx = qi&^1, qi|1
	} else {
		loIdx, hiIdx = qi&^2, qi|2
	}
	lo, ok1 := c.quadLaneValue(loIdx, operand)
	hi, ok2 := c.quadLaneValue(hiIdx, operand)
	if !ok1 || !ok2 {
		return ShaderVariable{}, ShaderVariable{}, false
	}
	return lo, hi, true
}

// coarseDerivatives computes ddx/ddy for an implicit-derivative sample
// opcode (§4.7 "Sample opcodes that need implicit derivatives use
// coarse form").
func (c *evalCtx) coarseDerivatives(uvOperand *Operand) (ddx, ddy ShaderVariable, ok bool) {
	loX, hiX, okX := c.derivativePair(true, uvOperand)
	loY, hiY, okY := c.derivativePair(false, uvOperand)
	if !okX || !okY {
		return ShaderVariable{}, ShaderVariable{}, false
	}
	ddx.Type, ddy.Type = TypeFloat, TypeFloat
	for i := 0; i < 4; i++ {
		ddx.SetFloat(i, hiX.Float(i)-loX.Float(i))
		ddy.SetFloat(i, hiY.Float(i)-loY.Float(i))
	}
	return ddx, ddy, true
}
