/*
   shaderdbg/vm/config - textual program loader

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rcornwell/shaderdbg/vm"
)

// ParseProgram reads a human-typed instruction list, one instruction
// per line, and returns the decoded ASMOperation sequence. This is the
// debugger's own convenience syntax for describing a small test
// program; it is not a decoder for the real compiled wire format (that
// binary container parser stays an external collaborator, §1 "OUT OF
// SCOPE").
//
// Line grammar:
//
//	<mnemonic>[_sat][_z|_nz] <operand> [, <operand> ...] [stride=N] [offset=(X,Y,Z)]
//
// Operand forms: r0.xyzw (temp), r0[1].xyzw (indexable temp),
// o0.xyzw (output), cb2[3].xyzw (constant buffer register 2, member 3),
// icb[4] (immediate constant buffer slice), u0/t0/s0 (UAV/SRV/sampler
// slot), l(1.0,2.0,3.0,4.0) or l(1.0) (immediate literal), null,
// vThreadID/vThreadIDInGroup/vThreadGroupID/vThreadIDInGroupFlattened/
// vCoverage/vPrimitiveID (semantic inputs), rasterizer. -operand
// negates; abs(operand) takes the absolute value; -abs(operand) is
// ABSNEG.
func ParseProgram(r io.Reader) ([]vm.ASMOperation, error) {
	var program []vm.ASMOperation
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}
		op, err := parseInstruction(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		program = append(program, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return program, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func parseInstruction(line string) (vm.ASMOperation, error) {
	head, rest, _ := strings.Cut(line, " ")
	mnemonic, saturate, nonZero, hasPolarity := stripMnemonicSuffixes(head)

	op, ok := vm.OpcodeByName(mnemonic)
	if !ok {
		return vm.ASMOperation{}, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}

	tokens := splitTopLevel(strings.TrimSpace(rest))
	// Trailing stride=/offset=/resinfo_* tags follow the last operand
	// after whitespace rather than a comma; peel them into their own tokens.
	if n := len(tokens); n > 0 {
		fields := strings.Fields(tokens[n-1])
		k := len(fields)
		for k > 1 && (strings.HasPrefix(fields[k-1], "stride=") || strings.HasPrefix(fields[k-1], "offset=") || strings.HasPrefix(fields[k-1], "resinfo_")) {
			k--
		}
		if k < len(fields) {
			tokens = append(append(tokens[:n-1], strings.Join(fields[:k], " ")), fields[k:]...)
		}
	}
	asm := vm.ASMOperation{Opcode: op, Saturate: saturate, Str: line}
	if hasPolarity {
		asm.NonZero = nonZero
	}

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		switch {
		case strings.HasPrefix(tok, "stride="):
			n, err := parseUint(strings.TrimPrefix(tok, "stride="))
			if err != nil {
				return vm.ASMOperation{}, err
			}
			asm.Stride = n
		case strings.HasPrefix(tok, "offset="):
			offs, err := parseTexelOffset(strings.TrimPrefix(tok, "offset="))
			if err != nil {
				return vm.ASMOperation{}, err
			}
			asm.TexelOffset = offs
		case strings.HasPrefix(tok, "resinfo_"):
			rt, err := parseResInfoType(tok)
			if err != nil {
				return vm.ASMOperation{}, err
			}
			asm.ResInfoRetType = rt
		default:
			operand, err := parseOperand(tok)
			if err != nil {
				return vm.ASMOperation{}, err
			}
			asm.Operands = append(asm.Operands, operand)
		}
	}
	return asm, nil
}

// stripMnemonicSuffixes peels "_sat" and a trailing "_z"/"_nz"
// polarity marker off an opcode mnemonic (§4.3 "nonzero"), since the
// base opcode table (vm.OpcodeByName) only knows the bare name.
func stripMnemonicSuffixes(head string) (mnemonic string, saturate, nonZero, hasPolarity bool) {
	mnemonic = head
	if strings.HasSuffix(mnemonic, "_sat") {
		saturate = true
		mnemonic = strings.TrimSuffix(mnemonic, "_sat")
	}
	switch {
	case strings.HasSuffix(mnemonic, "_nz"):
		nonZero, hasPolarity = true, true
		mnemonic = strings.TrimSuffix(mnemonic, "_nz")
	case strings.HasSuffix(mnemonic, "_z"):
		hasPolarity = true
		mnemonic = strings.TrimSuffix(mnemonic, "_z")
	}
	return mnemonic, saturate, nonZero, hasPolarity
}

// splitTopLevel splits s on commas that aren't nested inside
// parentheses or brackets (operands like "l(1.0,2.0)" and "r0[1]"
// carry their own commas/brackets).
func splitTopLevel(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func parseResInfoType(tok string) (vm.ResInfoType, error) {
	switch tok {
	case "resinfo_uint":
		return vm.ResInfoUInt, nil
	case "resinfo_float":
		return vm.ResInfoFloat, nil
	case "resinfo_rcpfloat":
		return vm.ResInfoRcpFloat, nil
	default:
		return 0, fmt.Errorf("unknown resinfo return-type tag %q", tok)
	}
}

func parseTexelOffset(s string) ([3]int32, error) {
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]int32{}, fmt.Errorf("texel offset needs 3 components, got %q", s)
	}
	var out [3]int32
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 0, 32)
		if err != nil {
			return [3]int32{}, fmt.Errorf("invalid texel offset component %q: %w", p, err)
		}
		out[i] = int32(n)
	}
	return out, nil
}

var componentLetters = map[byte]uint8{'x': 0, 'y': 1, 'z': 2, 'w': 3}

// parseComps turns a swizzle/mask suffix like "xyzw" or "yyyy" into
// Operand.Comps; "" leaves every lane unused (the identity default for
// sources; callers that need a full dst write-mask must pass "xyzw"
// explicitly).
func parseComps(s string) ([4]uint8, error) {
	var comps [4]uint8
	for i := range comps {
		comps[i] = 0xff
	}
	if s == "" {
		return comps, nil
	}
	if len(s) > 4 {
		return comps, fmt.Errorf("swizzle/mask %q too long", s)
	}
	for i := 0; i < len(s); i++ {
		lane, ok := componentLetters[s[i]]
		if !ok {
			return comps, fmt.Errorf("invalid component letter %q", s[i])
		}
		comps[i] = lane
	}
	return comps, nil
}

func parseOperand(tok string) (vm.Operand, error) {
	tok = strings.TrimSpace(tok)

	modifier := vm.ModNone
	if strings.HasPrefix(tok, "-abs(") && strings.HasSuffix(tok, ")") {
		modifier = vm.ModAbsNeg
		tok = strings.TrimSuffix(strings.TrimPrefix(tok, "-abs("), ")")
	} else if strings.HasPrefix(tok, "abs(") && strings.HasSuffix(tok, ")") {
		modifier = vm.ModAbs
		tok = strings.TrimSuffix(strings.TrimPrefix(tok, "abs("), ")")
	} else if strings.HasPrefix(tok, "-") {
		modifier = vm.ModNeg
		tok = strings.TrimPrefix(tok, "-")
	}

	operand, err := parseOperandBody(tok)
	if err != nil {
		return vm.Operand{}, err
	}
	operand.Modifier = modifier
	return operand, nil
}

// parseOperandBody parses everything but a leading modifier: base
// (register/binding/literal) plus an optional ".swizzle" suffix. A
// dst operand's write-mask and a src operand's swizzle share the same
// contiguous-from-.x letter syntax in this text format (".xyzw",
// ".xy"), which parseComps represents correctly for both: writeLanes
// (§4.4 step 4) only checks which lanes are unused, not the letter
// values, for a multi-lane mask.
func parseOperandBody(tok string) (vm.Operand, error) {
	if strings.HasPrefix(tok, "l(") && strings.HasSuffix(tok, ")") {
		return parseImmediate(tok)
	}
	base, suffix, hasSuffix := strings.Cut(tok, ".")
	comps, err := parseComps(stripIf(hasSuffix, suffix))
	if err != nil {
		return vm.Operand{}, err
	}

	switch {
	case base == "null":
		return vm.Operand{Type: vm.OperandNull}, nil
	case base == "rasterizer":
		return vm.Operand{Type: vm.OperandRasterizer}, nil
	case base == "vThreadGroupID":
		return vm.Operand{Type: vm.OperandInputThreadGroupID, Comps: comps, NumComponents: vm.NumComponents4}, nil
	case base == "vThreadID":
		return vm.Operand{Type: vm.OperandInputThreadID, Comps: comps, NumComponents: vm.NumComponents4}, nil
	case base == "vThreadIDInGroup":
		return vm.Operand{Type: vm.OperandInputThreadIDInGroup, Comps: comps, NumComponents: vm.NumComponents4}, nil
	case base == "vThreadIDInGroupFlattened":
		return vm.Operand{Type: vm.OperandInputThreadIDInGroupFlattened, NumComponents: vm.NumComponents1}, nil
	case base == "vCoverage":
		return vm.Operand{Type: vm.OperandInputCoverageMask, NumComponents: vm.NumComponents1}, nil
	case base == "vPrimitiveID":
		return vm.Operand{Type: vm.OperandInputPrimitiveID, NumComponents: vm.NumComponents1}, nil
	case strings.HasPrefix(base, "l(") && strings.HasSuffix(base, ")"):
		return parseImmediate(base)
	case strings.HasPrefix(base, "icb["):
		idx, err := parseBracketIndex(base, "icb")
		if err != nil {
			return vm.Operand{}, err
		}
		return vm.Operand{Type: vm.OperandImmediateConstantBuffer, Indices: []vm.OperandIndex{{Absolute: idx}}}, nil
	case strings.HasPrefix(base, "cb"):
		return parseConstantBuffer(base, comps)
	case strings.HasPrefix(base, "r") && strings.Contains(base, "["):
		return parseIndexableTempOperand(base, comps)
	case strings.HasPrefix(base, "r"):
		idx, err := parseSlotIndex(base, "r")
		if err != nil {
			return vm.Operand{}, err
		}
		return vm.Operand{Type: vm.OperandTemp, Indices: []vm.OperandIndex{{Absolute: idx}}, Comps: comps, NumComponents: vm.NumComponents4}, nil
	case strings.HasPrefix(base, "o"):
		idx, err := parseSlotIndex(base, "o")
		if err != nil {
			return vm.Operand{}, err
		}
		return vm.Operand{Type: vm.OperandOutput, Indices: []vm.OperandIndex{{Absolute: idx}}, Comps: comps, NumComponents: vm.NumComponents4}, nil
	case strings.HasPrefix(base, "u"):
		idx, err := parseSlotIndex(base, "u")
		if err != nil {
			return vm.Operand{}, err
		}
		return vm.Operand{Type: vm.OperandUnorderedAccessView, Indices: []vm.OperandIndex{{Absolute: idx}}, Comps: comps}, nil
	case strings.HasPrefix(base, "t"):
		idx, err := parseSlotIndex(base, "t")
		if err != nil {
			return vm.Operand{}, err
		}
		return vm.Operand{Type: vm.OperandResource, Indices: []vm.OperandIndex{{Absolute: idx}}, Comps: comps}, nil
	case strings.HasPrefix(base, "s"):
		idx, err := parseSlotIndex(base, "s")
		if err != nil {
			return vm.Operand{}, err
		}
		return vm.Operand{Type: vm.OperandSampler, Indices: []vm.OperandIndex{{Absolute: idx}}}, nil
	default:
		return vm.Operand{}, fmt.Errorf("unrecognised operand %q", tok)
	}
}

func stripIf(has bool, s string) string {
	if !has {
		return ""
	}
	return s
}

func parseSlotIndex(base, prefix string) (uint32, error) {
	return parseUint(strings.TrimPrefix(base, prefix))
}

func parseBracketIndex(base, prefix string) (uint32, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(base, prefix+"["), "]")
	return parseUint(inner)
}

func parseIndexableTempOperand(base string, comps [4]uint8) (vm.Operand, error) {
	reg, rest, _ := strings.Cut(strings.TrimPrefix(base, "r"), "[")
	regIdx, err := parseUint(reg)
	if err != nil {
		return vm.Operand{}, err
	}
	elemStr := strings.TrimSuffix(rest, "]")
	elemIdx, err := parseUint(elemStr)
	if err != nil {
		return vm.Operand{}, err
	}
	return vm.Operand{
		Type:    vm.OperandIndexableTemp,
		Indices: []vm.OperandIndex{{Absolute: regIdx}, {Absolute: elemIdx}},
		Comps:   comps, NumComponents: vm.NumComponents4,
	}, nil
}

func parseConstantBuffer(base string, comps [4]uint8) (vm.Operand, error) {
	reg, rest, ok := strings.Cut(strings.TrimPrefix(base, "cb"), "[")
	if !ok {
		return vm.Operand{}, fmt.Errorf("constant buffer operand needs [member]: %q", base)
	}
	regIdx, err := parseUint(reg)
	if err != nil {
		return vm.Operand{}, err
	}
	memberStr := strings.TrimSuffix(rest, "]")
	memberIdx, err := parseUint(memberStr)
	if err != nil {
		return vm.Operand{}, err
	}
	return vm.Operand{
		Type:    vm.OperandConstantBuffer,
		Indices: []vm.OperandIndex{{Absolute: regIdx}, {Absolute: memberIdx}},
		Comps:   comps, NumComponents: vm.NumComponents4,
	}, nil
}

func parseImmediate(base string) (vm.Operand, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(base, "l("), ")")
	parts := strings.Split(inner, ",")
	var values [4]uint32
	numComponents := vm.NumComponents4
	if len(parts) == 1 {
		numComponents = vm.NumComponents1
	} else if len(parts) != 4 {
		return vm.Operand{}, fmt.Errorf("immediate literal needs 1 or 4 values, got %d", len(parts))
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return vm.Operand{}, fmt.Errorf("invalid immediate literal %q: %w", p, err)
		}
		values[i] = math.Float32bits(float32(f))
	}
	return vm.Operand{Type: vm.OperandImmediate32, Values: values, NumComponents: numComponents}, nil
}
