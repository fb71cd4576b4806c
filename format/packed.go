package format

// PackR10G10B10A2 packs four lane words (UInt or UNorm interpretation,
// per kind) into one 10/10/10/2-bit value (§4.2).
func PackR10G10B10A2(words [4]uint32, kind Kind) uint32 {
	r := StoreComponent(words[0], 10, kind)
	g := StoreComponent(words[1], 10, kind)
	b := StoreComponent(words[2], 10, kind)
	a := StoreComponent(words[3], 2, kind)
	return uint32(r) | uint32(g)<<10 | uint32(b)<<20 | uint32(a)<<30
}

// UnpackR10G10B10A2 unpacks a 10/10/10/2-bit value into four lane
// words under the given kind (UInt or UNorm).
func UnpackR10G10B10A2(packed uint32, kind Kind) [4]uint32 {
	return [4]uint32{
		LoadComponent(uint64(packed), 10, kind),
		LoadComponent(uint64(packed>>10), 10, kind),
		LoadComponent(uint64(packed>>20), 10, kind),
		LoadComponent(uint64(packed>>30), 2, kind),
	}
}

// UnpackR11G11B10 unpacks an 11/11/10-bit unsigned-float packed value
// into three float32 lane words. Per §4.2/§9 this format is load-only;
// there is no PackR11G11B10.
func UnpackR11G11B10(packed uint32) [3]uint32 {
	r := unpackUFloat(packed&0x7ff, 6)
	g := unpackUFloat((packed>>11)&0x7ff, 6)
	b := unpackUFloat((packed>>22)&0x3ff, 5)
	return [3]uint32{r, g, b}
}

// unpackUFloat decodes an unsigned mini-float with a 5-bit exponent and
// the given mantissa bit width (6 for R11G11B10's R/G channels, 5 for
// its B channel) into a standard float32 bit pattern.
func unpackUFloat(v uint32, mantBits uint) uint32 {
	exp := v >> mantBits
	mant := v & ((1 << mantBits) - 1)

	if exp == 0 {
		if mant == 0 {
			return 0
		}
		// Subnormal: normalize by shifting the mantissa up until the
		// implicit leading bit would be set, adjusting the exponent.
		e := int32(1)
		for mant&(1<<mantBits) == 0 {
			mant <<= 1
			e--
		}
		mant &= (1 << mantBits) - 1
		return assembleF32(e-15+127, mant, mantBits)
	}
	if exp == 0x1f {
		if mant == 0 {
			return 0x7f800000 // +Inf
		}
		return 0x7fc00000 // NaN
	}
	return assembleF32(int32(exp)-15+127, mant, mantBits)
}

func assembleF32(exp32 int32, mant uint32, mantBits uint) uint32 {
	shifted := mant << (23 - mantBits)
	return uint32(exp32)<<23 | shifted
}
