package format

import "math"

// Kind is a packed component's numeric encoding.
type Kind int

const (
	KindUInt Kind = iota
	KindSInt
	KindUNorm
	KindUNormSRGB
	KindSNorm
	KindFloat
	KindHalfFloat
)

// mask returns the low `width` bits set.
func mask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

// LoadComponent decodes a width-bit raw field (already zero-extended
// into the low bits of raw) into a 32-bit SIMD lane word: an integer
// bit pattern for UInt/SInt, or a float32 bit pattern for
// UNorm/UNormSRGB/SNorm/Float/HalfFloat (§4.2).
func LoadComponent(raw uint64, width int, kind Kind) uint32 {
	raw &= mask(width)
	switch kind {
	case KindUInt:
		return uint32(raw)
	case KindSInt:
		return uint32(signExtend(raw, width))
	case KindUNorm:
		return math.Float32bits(loadUNorm(raw, width))
	case KindUNormSRGB:
		return math.Float32bits(srgbToLinear(loadUNorm(raw, width)))
	case KindSNorm:
		return math.Float32bits(loadSNorm(raw, width))
	case KindFloat:
		return uint32(raw)
	case KindHalfFloat:
		return math.Float32bits(f16ToF32(uint16(raw)))
	default:
		return 0
	}
}

// StoreComponent encodes a 32-bit SIMD lane word (an integer bit
// pattern for UInt/SInt, a float32 bit pattern otherwise) into a
// width-bit raw field, right-justified in the returned value (§4.2).
func StoreComponent(word uint32, width int, kind Kind) uint64 {
	switch kind {
	case KindUInt:
		return uint64(word) & mask(width)
	case KindSInt:
		return storeSInt(int32(word), width)
	case KindUNorm:
		return storeUNorm(math.Float32frombits(word), width)
	case KindUNormSRGB:
		return storeUNorm(linearToSRGB(math.Float32frombits(word)), width)
	case KindSNorm:
		return storeSNorm(math.Float32frombits(word), width)
	case KindFloat:
		return uint64(word) & mask(width)
	case KindHalfFloat:
		return uint64(f32ToF16(math.Float32frombits(word)))
	default:
		return 0
	}
}

func signExtend(raw uint64, width int) int32 {
	signBit := uint64(1) << uint(width-1)
	if raw&signBit != 0 {
		return int32(raw) - int32(uint64(1)<<uint(width))
	}
	return int32(raw)
}

// loadUNorm divides by 2^width-1, per §4.2.
func loadUNorm(raw uint64, width int) float32 {
	maxVal := float32(mask(width))
	return float32(raw) / maxVal
}

// storeUNorm clamps to [0,1], multiplies by 2^width-1, adds 0.5 and
// truncates (§4.2).
func storeUNorm(f float32, width int) uint64 {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	maxVal := float32(mask(width))
	return uint64(f*maxVal + 0.5)
}

// loadSNorm maps the most-negative representable value to -1.0;
// otherwise divides by 2^(width-1)-1 (§4.2).
func loadSNorm(raw uint64, width int) float32 {
	signed := signExtend(raw, width)
	minVal := -(int32(1) << uint(width-1))
	if signed == minVal {
		return -1.0
	}
	maxVal := float32((int32(1) << uint(width-1)) - 1)
	return float32(signed) / maxVal
}

// storeSNorm clamps to [-1,1], multiplies by 2^(width-1)-1 and rounds
// to nearest away from zero (§4.2).
func storeSNorm(f float32, width int) uint64 {
	if f < -1 {
		f = -1
	}
	if f > 1 {
		f = 1
	}
	maxVal := float32((int32(1) << uint(width-1)) - 1)
	scaled := f * maxVal
	var rounded int32
	if scaled >= 0 {
		rounded = int32(scaled + 0.5)
	} else {
		rounded = int32(scaled - 0.5)
	}
	return uint64(uint32(rounded)) & mask(width)
}

// storeSInt saturate-clamps into the destination's signed range (§4.2).
func storeSInt(v int32, width int) uint64 {
	maxVal := int64(1)<<uint(width-1) - 1
	minVal := -(int64(1) << uint(width-1))
	vv := int64(v)
	if vv > maxVal {
		vv = maxVal
	}
	if vv < minVal {
		vv = minVal
	}
	return uint64(uint32(vv)) & mask(width)
}

// srgbToLinear/linearToSRGB implement the standard sRGB transfer
// function used by UNormSRGB formats.
func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow(float64((c+0.055)/1.055), 2.4))
}

func linearToSRGB(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return float32(1.055*math.Pow(float64(c), 1.0/2.4) - 0.055)
}
