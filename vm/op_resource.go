/*
   shaderdbg/vm - resource and memory opcodes (§4.6)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import (
	"encoding/binary"

	"github.com/rcornwell/shaderdbg/format"
)

func registerResourceOps(t map[Opcode]opHandler) {
	t[OpLdRaw] = opLdRaw
	t[OpStoreRaw] = opStoreRaw
	t[OpLdStructured] = opLdStructured
	t[OpStoreStructured] = opStoreStructured
	t[OpLdUAVTyped] = opLdUAVTyped
	t[OpStoreUAVTyped] = opStoreUAVTyped
}

// resolveReadable resolves either a t#-bound SRV or a u#-bound UAV for
// a read. Returns the backing bytes, the element-unit bounds and the
// declared format.
func (c *evalCtx) resolveReadable(operand *Operand) (data []byte, firstElement, numElements uint32, fd Format, ok bool) {
	idx := c.resolveIndices(operand)
	if len(idx) == 0 {
		logTrap("resource: missing resource slot index")
		return nil, 0, 0, Format{}, false
	}
	slot := idx[0]
	switch operand.Type {
	case OperandUnorderedAccessView:
		uav, found := c.global.UAVs[slot]
		if !found {
			logRecoverable("resource: UAV u%d not bound", slot)
			return nil, 0, 0, Format{}, false
		}
		return uav.Data, uav.FirstElement, uav.NumElements, uav.Format, true
	case OperandResource:
		srv, found := c.global.SRVs[slot]
		if !found {
			logRecoverable("resource: SRV t%d not bound", slot)
			return nil, 0, 0, Format{}, false
		}
		return srv.Data, srv.FirstElement, srv.NumElements, srv.Format, true
	case OperandThreadGroupSharedMemory:
		gs, found := c.global.GroupShared[slot]
		if !found {
			logRecoverable("resource: groupshared g%d not declared", slot)
			return nil, 0, 0, Format{}, false
		}
		return gs.Data, 0, gs.Count, Format{}, true
	default:
		logTrap("resource: operand type %d is not a resource binding", operand.Type)
		return nil, 0, 0, Format{}, false
	}
}

// resolveWritable resolves either a u#-bound UAV or a g#-bound
// groupshared allocation as a STORE_STRUCTURED target: groupshared
// memory is mutated by structured load/store and atomics exactly like
// a UAV, just without a hidden append/consume counter (§3, §4.6).
func (c *evalCtx) resolveWritable(operand *Operand) (data []byte, firstElement, numElements uint32, ok bool) {
	idx := c.resolveIndices(operand)
	if len(idx) == 0 {
		logTrap("resource: missing resource slot index")
		return nil, 0, 0, false
	}
	slot := idx[0]
	switch operand.Type {
	case OperandUnorderedAccessView:
		uav, found := c.global.UAVs[slot]
		if !found {
			logRecoverable("resource: UAV u%d not bound", slot)
			return nil, 0, 0, false
		}
		return uav.Data, uav.FirstElement, uav.NumElements, true
	case OperandThreadGroupSharedMemory:
		gs, found := c.global.GroupShared[slot]
		if !found {
			logRecoverable("resource: groupshared g%d not declared", slot)
			return nil, 0, 0, false
		}
		return gs.Data, 0, gs.Count, true
	default:
		logTrap("resource: operand type %d is not a writable resource binding", operand.Type)
		return nil, 0, 0, false
	}
}

func (c *evalCtx) resolveUAV(operand *Operand) (*UAV, bool) {
	idx := c.resolveIndices(operand)
	if len(idx) == 0 {
		logTrap("resource: missing UAV slot index")
		return nil, false
	}
	uav, ok := c.global.UAVs[idx[0]]
	if !ok {
		logRecoverable("resource: UAV u%d not bound", idx[0])
		return nil, false
	}
	return uav, true
}

// rawUnit is min(4, format.byte_width), the byte multiplier LD_RAW/
// STORE_RAW apply to element-unit bounds (§4.6).
func rawUnit(f Format) int {
	w := f.ByteWidth
	if w <= 0 || w > 4 {
		return 4
	}
	return w
}

// destComponentCount counts the contiguous selected components from .x
// (§4.6 "mask is contiguous from .x"); zero selected components still
// means one word is transferred.
func destComponentCount(operand *Operand) int {
	count := 0
	for i := 0; i < 4; i++ {
		if operand.Comps[i] == unusedComponent {
			break
		}
		count++
	}
	if count == 0 {
		count = 1
	}
	return count
}

func opLdRaw(c *evalCtx) bool {
	dst := &c.op.Operands[0]
	addr := int(c.getSrc(&c.op.Operands[1]).UInt(0))
	data, firstElement, numElements, fd, ok := c.resolveReadable(&c.op.Operands[2])
	if !ok {
		return true
	}
	unit := rawUnit(fd)
	low, high := int(firstElement)*unit, int(firstElement+numElements)*unit
	count := destComponentCount(dst)
	var out ShaderVariable
	out.Type = TypeUInt
	for i := 0; i < count; i++ {
		byteAddr := addr + i*4
		if byteAddr < low || byteAddr+4 > high || byteAddr+4 > len(data) || byteAddr < 0 {
			logRecoverable("ld_raw: byte address %d out of bounds", byteAddr)
			continue
		}
		out.Words[i] = binary.LittleEndian.Uint32(data[byteAddr : byteAddr+4])
	}
	c.setDst(dst, out)
	return true
}

func opStoreRaw(c *evalCtx) bool {
	if c.state.Done {
		return true
	}
	uav, ok := c.resolveUAV(&c.op.Operands[0])
	if !ok {
		return true
	}
	addr := int(c.getSrc(&c.op.Operands[1]).UInt(0))
	valOperand := &c.op.Operands[2]
	val := c.getSrc(valOperand)
	unit := rawUnit(uav.Format)
	low, high := int(uav.FirstElement)*unit, int(uav.FirstElement+uav.NumElements)*unit
	count := destComponentCount(valOperand)
	for i := 0; i < count; i++ {
		byteAddr := addr + i*4
		if byteAddr < low || byteAddr+4 > high || byteAddr+4 > len(uav.Data) || byteAddr < 0 {
			continue // out-of-bounds structured/raw store: undefined, must not fault (§4.6)
		}
		binary.LittleEndian.PutUint32(uav.Data[byteAddr:byteAddr+4], val.Words[i])
	}
	return true
}

// structuredAddress computes (first_element+element)*stride + byteOffset (§4.6).
func structuredAddress(firstElement uint32, element int, stride int, byteOffset int) int {
	return (int(firstElement)+element)*stride + byteOffset
}

func opLdStructured(c *evalCtx) bool {
	dst := &c.op.Operands[0]
	element := int(c.getSrc(&c.op.Operands[1]).UInt(0))
	byteOffset := int(c.getSrc(&c.op.Operands[2]).UInt(0))
	data, firstElement, numElements, _, ok := c.resolveReadable(&c.op.Operands[3])
	if !ok {
		return true
	}
	if element < 0 || element >= int(numElements) {
		c.setDst(dst, ShaderVariable{Type: TypeUInt})
		return true
	}
	base := structuredAddress(firstElement, element, int(c.op.Stride), byteOffset)
	count := destComponentCount(dst)
	var out ShaderVariable
	out.Type = TypeUInt
	for i := 0; i < count; i++ {
		addr := base + i*4
		if addr < 0 || addr+4 > len(data) {
			continue
		}
		out.Words[i] = binary.LittleEndian.Uint32(data[addr : addr+4])
	}
	c.setDst(dst, out)
	return true
}

func opStoreStructured(c *evalCtx) bool {
	if c.state.Done {
		return true
	}
	data, firstElement, numElements, ok := c.resolveWritable(&c.op.Operands[0])
	if !ok {
		return true
	}
	element := int(c.getSrc(&c.op.Operands[1]).UInt(0))
	byteOffset := int(c.getSrc(&c.op.Operands[2]).UInt(0))
	valOperand := &c.op.Operands[3]
	val := c.getSrc(valOperand)
	if element < 0 || element >= int(numElements) {
		return true // out-of-bounds structured store: undefined, no-op (§4.6)
	}
	base := structuredAddress(firstElement, element, int(c.op.Stride), byteOffset)
	count := destComponentCount(valOperand)
	for i := 0; i < count; i++ {
		addr := base + i*4
		if addr < 0 || addr+4 > len(data) {
			continue
		}
		binary.LittleEndian.PutUint32(data[addr:addr+4], val.Words[i])
	}
	return true
}

func compTypeToKind(t CompType) format.Kind {
	switch t {
	case CompUInt:
		return format.KindUInt
	case CompSInt:
		return format.KindSInt
	case CompUNorm:
		return format.KindUNorm
	case CompUNormSRGB:
		return format.KindUNormSRGB
	case CompSNorm:
		return format.KindSNorm
	case CompHalfFloat:
		return format.KindHalfFloat
	default:
		return format.KindFloat
	}
}

// typedAddress computes the byte offset of a LD_UAV_TYPED/
// STORE_UAV_TYPED coordinate: row/depth pitch for textures, a
// structured-style element stride for buffers (§4.6).
func typedAddress(coord [3]int, isTexture bool, fd Format, rowPitch, depthPitch uint32) int {
	if isTexture {
		return coord[0]*fd.ElementStride() + coord[1]*int(rowPitch) + coord[2]*int(depthPitch)
	}
	return coord[0] * fd.ElementStride()
}

func readTypedComponents(data []byte, addr int, fd Format, count int) ([4]uint32, bool) {
	var out [4]uint32
	kind := compTypeToKind(fd.CompType)
	width := fd.ByteWidth * 8
	for i := 0; i < count; i++ {
		off := addr + i*fd.ByteWidth
		if off < 0 || off+fd.ByteWidth > len(data) {
			return out, false
		}
		var raw uint64
		for b := 0; b < fd.ByteWidth; b++ {
			raw |= uint64(data[off+b]) << uint(8*b)
		}
		out[i] = format.LoadComponent(raw, width, kind)
	}
	return out, true
}

func writeTypedComponents(data []byte, addr int, fd Format, words [4]uint32, count int) bool {
	kind := compTypeToKind(fd.CompType)
	width := fd.ByteWidth * 8
	for i := 0; i < count; i++ {
		off := addr + i*fd.ByteWidth
		if off < 0 || off+fd.ByteWidth > len(data) {
			continue
		}
		raw := format.StoreComponent(words[i], width, kind)
		for b := 0; b < fd.ByteWidth; b++ {
			data[off+b] = byte(raw >> uint(8*b))
		}
	}
	return true
}

func opLdUAVTyped(c *evalCtx) bool {
	dst := &c.op.Operands[0]
	coordV := c.getSrc(&c.op.Operands[1])
	coord := [3]int{int(int32(coordV.Words[0])), int(int32(coordV.Words[1])), int(int32(coordV.Words[2]))}
	data, _, _, fd, ok := c.resolveReadable(&c.op.Operands[2])
	if !ok {
		return true
	}
	isTexture := false
	var rowPitch, depthPitch uint32
	if uav, uok := c.global.UAVs[c.resolveIndices(&c.op.Operands[2])[0]]; uok && c.op.Operands[2].Type == OperandUnorderedAccessView {
		isTexture = uav.IsTexture
		rowPitch, depthPitch = uav.RowPitch, uav.DepthPitch
	}
	addr := typedAddress(coord, isTexture, fd, rowPitch, depthPitch)
	count := destComponentCount(dst)
	words, inBounds := readTypedComponents(data, addr, fd, count)
	if !inBounds {
		logRecoverable("ld_uav_typed: coordinate out of bounds")
	}
	var out ShaderVariable
	out.Type = TypeUInt
	out.Words = words
	c.setDst(dst, out)
	return true
}

func opStoreUAVTyped(c *evalCtx) bool {
	if c.state.Done {
		return true
	}
	uav, ok := c.resolveUAV(&c.op.Operands[0])
	if !ok {
		return true
	}
	coordV := c.getSrc(&c.op.Operands[1])
	coord := [3]int{int(int32(coordV.Words[0])), int(int32(coordV.Words[1])), int(int32(coordV.Words[2]))}
	valOperand := &c.op.Operands[2]
	val := c.getSrc(valOperand)
	addr := typedAddress(coord, uav.IsTexture, uav.Format, uav.RowPitch, uav.DepthPitch)
	count := destComponentCount(valOperand)
	writeTypedComponents(uav.Data, addr, uav.Format, val.Words, count)
	return true
}
