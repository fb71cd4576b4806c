/*
   shaderdbg/vm - numeric helpers: denormal flush, NaN-aware min/max,
   banker's rounding, double lane packing (§4.1)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import "math"

const float32ExpMask uint32 = 0x7f800000

// flushDenorm replaces a subnormal float32 (zero exponent, nonzero
// mantissa) with a signed zero of matching sign. NaN and infinity
// (nonzero exponent) pass through unchanged.
func flushDenorm(bits uint32) uint32 {
	if bits&float32ExpMask != 0 {
		return bits
	}
	return bits & 0x80000000
}

// flushDenormFloat is the float32 convenience wrapper around flushDenorm.
func flushDenormFloat(f float32) float32 {
	return math.Float32frombits(flushDenorm(math.Float32bits(f)))
}

// minFloat is NaN-aware: if exactly one operand is NaN the other is
// returned; if both are NaN either may be returned. Consequently
// sat(NaN) == 0, not NaN (§8).
func minFloat(a, b float32) float32 {
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// maxFloat mirrors minFloat for the upper bound.
func maxFloat(a, b float32) float32 {
	if math.IsNaN(float64(a)) {
		return b
	}
	if math.IsNaN(float64(b)) {
		return a
	}
	if a >= b {
		return a
	}
	return b
}

// minDouble/maxDouble are the float64 analogs, used by double
// saturation.
func minDouble(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func maxDouble(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	if a >= b {
		return a
	}
	return b
}

// roundNE is banker's rounding: round to nearest, ties to even. NaN and
// infinity pass through unchanged.
func roundNE(x float32) float32 {
	xf := float64(x)
	if math.IsNaN(xf) || math.IsInf(xf, 0) {
		return x
	}
	return float32(xf - math.Remainder(xf, 1))
}

// saturateFloat clamps a float result to [0,1] with NaN mapped to 0 via
// the min/max composition (§4.4, §8).
func saturateFloat(x float32) float32 {
	return minFloat(1, maxFloat(0, x))
}

// saturateSInt clamps a signed integer "boolean" result to {0,1}.
func saturateSInt(x int32) int32 {
	if x <= 0 {
		return 0
	}
	return 1
}

// saturateUInt maps a nonzero unsigned value to 1, zero to 0.
func saturateUInt(x uint32) uint32 {
	if x != 0 {
		return 1
	}
	return 0
}

// packDouble/unpackDouble restate ShaderVariable.Double/SetDouble as
// free functions for call sites that only have raw lane words.
func packDouble(lo, hi uint32) float64 {
	return math.Float64frombits(uint64(hi)<<32 | uint64(lo))
}

func unpackDouble(d float64) (lo, hi uint32) {
	bits := math.Float64bits(d)
	return uint32(bits), uint32(bits >> 32)
}

// isNonFiniteBits reports whether a float32 bit pattern is NaN or infinite,
// used to raise GeneratedNanOrInf on write (§4.4 step 5).
func isNonFiniteBits(bits uint32) bool {
	f := math.Float32frombits(bits)
	return math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)
}

// asFloat/floatBits are bit-pattern <-> float32 shorthands used by the
// operand modifier and destination-write paths.
func asFloat(bits uint32) float32  { return math.Float32frombits(bits) }
func floatBits(f float32) uint32   { return math.Float32bits(f) }
func absFloat(f float32) float32   { return float32(math.Abs(float64(f))) }
func negFloat(f float32) float32   { return -f }

// flushLanes denormal-flushes all four lanes of v in place, under the
// float32 interpretation (§4.3 step 5, §4.4 step 5).
func flushLanes(v *ShaderVariable) {
	for i := 0; i < 4; i++ {
		v.Words[i] = flushDenorm(v.Words[i])
	}
}
