/*
   shaderdbg/vm - atomic read-modify-write opcodes (§4.6)

   Copyright (c) 2026, shaderdbg contributors. See doc.go for license.
*/

package vm

import "encoding/binary"

func registerAtomicOps(t map[Opcode]opHandler) {
	t[OpAtomicIAdd] = opAtomicRMW(func(cur, v int32) uint32 { return uint32(cur + v) })
	t[OpAtomicIMax] = opAtomicRMW(func(cur, v int32) uint32 { return uint32(maxI32(cur, v)) })
	t[OpAtomicIMin] = opAtomicRMW(func(cur, v int32) uint32 { return uint32(minI32(cur, v)) })
	t[OpAtomicUMax] = opAtomicRMWU(func(cur, v uint32) uint32 {
		if cur > v {
			return cur
		}
		return v
	})
	t[OpAtomicUMin] = opAtomicRMWU(func(cur, v uint32) uint32 {
		if cur < v {
			return cur
		}
		return v
	})
	t[OpAtomicAnd] = opAtomicRMWU(func(cur, v uint32) uint32 { return cur & v })
	t[OpAtomicOr] = opAtomicRMWU(func(cur, v uint32) uint32 { return cur | v })
	t[OpAtomicXor] = opAtomicRMWU(func(cur, v uint32) uint32 { return cur ^ v })
	t[OpAtomicCmpStore] = opAtomicCmpStore

	t[OpImmAtomicIAdd] = opImmAtomicRMW(func(cur, v int32) uint32 { return uint32(cur + v) })
	t[OpImmAtomicIMax] = opImmAtomicRMW(func(cur, v int32) uint32 { return uint32(maxI32(cur, v)) })
	t[OpImmAtomicIMin] = opImmAtomicRMW(func(cur, v int32) uint32 { return uint32(minI32(cur, v)) })
	t[OpImmAtomicUMax] = opImmAtomicRMWU(func(cur, v uint32) uint32 {
		if cur > v {
			return cur
		}
		return v
	})
	t[OpImmAtomicUMin] = opImmAtomicRMWU(func(cur, v uint32) uint32 {
		if cur < v {
			return cur
		}
		return v
	})
	t[OpImmAtomicAnd] = opImmAtomicRMWU(func(cur, v uint32) uint32 { return cur & v })
	t[OpImmAtomicOr] = opImmAtomicRMWU(func(cur, v uint32) uint32 { return cur | v })
	t[OpImmAtomicXor] = opImmAtomicRMWU(func(cur, v uint32) uint32 { return cur ^ v })
	t[OpImmAtomicExch] = opImmAtomicExch
	t[OpImmAtomicCmpExch] = opImmAtomicCmpExch
	t[OpImmAtomicAlloc] = opImmAtomicAlloc
	t[OpImmAtomicConsume] = opImmAtomicConsume
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// resolveAtomicTarget resolves a u#-bound UAV or g#-bound groupshared
// allocation as an ATOMIC_*/IMM_ATOMIC_* target. Groupshared memory is
// mutated by atomics exactly like a UAV (§3, §5); it just has no
// hidden append/consume counter, so IMM_ATOMIC_ALLOC/CONSUME stay
// UAV-only.
func (c *evalCtx) resolveAtomicTarget(operand *Operand) (data []byte, firstElement uint32, ok bool) {
	idx := c.resolveIndices(operand)
	if len(idx) == 0 {
		logTrap("resource: missing atomic target slot index")
		return nil, 0, false
	}
	slot := idx[0]
	switch operand.Type {
	case OperandUnorderedAccessView:
		uav, found := c.global.UAVs[slot]
		if !found {
			logRecoverable("resource: UAV u%d not bound", slot)
			return nil, 0, false
		}
		return uav.Data, uav.FirstElement, true
	case OperandThreadGroupSharedMemory:
		gs, found := c.global.GroupShared[slot]
		if !found {
			logRecoverable("resource: groupshared g%d not declared", slot)
			return nil, 0, false
		}
		return gs.Data, 0, true
	default:
		logTrap("resource: operand type %d is not a valid atomic target", operand.Type)
		return nil, 0, false
	}
}

// atomicAddress resolves the byte address of an ATOMIC_*/IMM_ATOMIC_*
// target: a raw word address when the instruction carries no
// structured stride, else a structured (element, byteOffset) pair read
// from the address operand's .x and .y lanes (§4.6).
func (c *evalCtx) atomicAddress(firstElement uint32, addrOperand *Operand) int {
	addr := c.getSrc(addrOperand)
	if c.op.Stride == 0 {
		return int(addr.UInt(0))
	}
	return structuredAddress(firstElement, int(addr.UInt(0)), int(c.op.Stride), int(addr.UInt(1)))
}

func atomicLoad(data []byte, addr int) (uint32, bool) {
	if addr < 0 || addr+4 > len(data) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[addr : addr+4]), true
}

func atomicStore(data []byte, addr int, word uint32) {
	if addr < 0 || addr+4 > len(data) {
		return
	}
	binary.LittleEndian.PutUint32(data[addr:addr+4], word)
}

// opAtomicRMW builds a no-return signed-integer atomic: operand[0]=
// resource, operand[1]=address, operand[2]=value (§4.6).
func opAtomicRMW(fn func(cur, v int32) uint32) opHandler {
	return func(c *evalCtx) bool {
		if c.state.Done {
			return true
		}
		data, firstElement, ok := c.resolveAtomicTarget(&c.op.Operands[0])
		if !ok {
			return true
		}
		addr := c.atomicAddress(firstElement, &c.op.Operands[1])
		value := int32(c.getSrc(&c.op.Operands[2]).UInt(0))
		c.global.WithLock(func() {
			cur, loaded := atomicLoad(data, addr)
			if !loaded {
				return
			}
			atomicStore(data, addr, fn(int32(cur), value))
		})
		return true
	}
}

func opAtomicRMWU(fn func(cur, v uint32) uint32) opHandler {
	return func(c *evalCtx) bool {
		if c.state.Done {
			return true
		}
		data, firstElement, ok := c.resolveAtomicTarget(&c.op.Operands[0])
		if !ok {
			return true
		}
		addr := c.atomicAddress(firstElement, &c.op.Operands[1])
		value := c.getSrc(&c.op.Operands[2]).UInt(0)
		c.global.WithLock(func() {
			cur, loaded := atomicLoad(data, addr)
			if !loaded {
				return
			}
			atomicStore(data, addr, fn(cur, value))
		})
		return true
	}
}

// opAtomicCmpStore: operand[0]=resource, operand[1]=address,
// operand[2]=compare, operand[3]=value; stores only on equality, no
// return (§4.6).
func opAtomicCmpStore(c *evalCtx) bool {
	if c.state.Done {
		return true
	}
	data, firstElement, ok := c.resolveAtomicTarget(&c.op.Operands[0])
	if !ok {
		return true
	}
	addr := c.atomicAddress(firstElement, &c.op.Operands[1])
	compare := c.getSrc(&c.op.Operands[2]).UInt(0)
	value := c.getSrc(&c.op.Operands[3]).UInt(0)
	c.global.WithLock(func() {
		cur, loaded := atomicLoad(data, addr)
		if !loaded || cur != compare {
			return
		}
		atomicStore(data, addr, value)
	})
	return true
}

// helperLaneAtomicResult is the value returned to a done/helper lane by
// IMM_ATOMIC_*: any value is acceptable so long as it doesn't mutate
// shared storage (§5).
func helperLaneAtomicResult() ShaderVariable {
	return ShaderVariable{Type: TypeUInt}
}

// opImmAtomicRMW: operand[0]=dst (prior value), operand[1]=resource,
// operand[2]=address, operand[3]=value (§4.6).
func opImmAtomicRMW(fn func(cur, v int32) uint32) opHandler {
	return func(c *evalCtx) bool {
		if c.state.Done {
			c.setDst(&c.op.Operands[0], helperLaneAtomicResult())
			return true
		}
		data, firstElement, ok := c.resolveAtomicTarget(&c.op.Operands[1])
		if !ok {
			return true
		}
		addr := c.atomicAddress(firstElement, &c.op.Operands[2])
		value := int32(c.getSrc(&c.op.Operands[3]).UInt(0))
		var prior uint32
		c.global.WithLock(func() {
			cur, loaded := atomicLoad(data, addr)
			if !loaded {
				return
			}
			prior = cur
			atomicStore(data, addr, fn(int32(cur), value))
		})
		c.setDst(&c.op.Operands[0], ShaderVariable{Type: TypeUInt, Words: [4]uint32{prior, prior, prior, prior}})
		return true
	}
}

func opImmAtomicRMWU(fn func(cur, v uint32) uint32) opHandler {
	return func(c *evalCtx) bool {
		if c.state.Done {
			c.setDst(&c.op.Operands[0], helperLaneAtomicResult())
			return true
		}
		data, firstElement, ok := c.resolveAtomicTarget(&c.op.Operands[1])
		if !ok {
			return true
		}
		addr := c.atomicAddress(firstElement, &c.op.Operands[2])
		value := c.getSrc(&c.op.Operands[3]).UInt(0)
		var prior uint32
		c.global.WithLock(func() {
			cur, loaded := atomicLoad(data, addr)
			if !loaded {
				return
			}
			prior = cur
			atomicStore(data, addr, fn(cur, value))
		})
		c.setDst(&c.op.Operands[0], ShaderVariable{Type: TypeUInt, Words: [4]uint32{prior, prior, prior, prior}})
		return true
	}
}

// opImmAtomicExch: operand[0]=dst, operand[1]=resource,
// operand[2]=address, operand[3]=value.
func opImmAtomicExch(c *evalCtx) bool {
	if c.state.Done {
		c.setDst(&c.op.Operands[0], helperLaneAtomicResult())
		return true
	}
	data, firstElement, ok := c.resolveAtomicTarget(&c.op.Operands[1])
	if !ok {
		return true
	}
	addr := c.atomicAddress(firstElement, &c.op.Operands[2])
	value := c.getSrc(&c.op.Operands[3]).UInt(0)
	var prior uint32
	c.global.WithLock(func() {
		cur, loaded := atomicLoad(data, addr)
		if !loaded {
			return
		}
		prior = cur
		atomicStore(data, addr, value)
	})
	c.setDst(&c.op.Operands[0], ShaderVariable{Type: TypeUInt, Words: [4]uint32{prior, prior, prior, prior}})
	return true
}

// opImmAtomicCmpExch: operand[0]=dst, operand[1]=resource,
// operand[2]=address, operand[3]=compare, operand[4]=value. Returns
// the prior value regardless of whether the store happened.
func opImmAtomicCmpExch(c *evalCtx) bool {
	if c.state.Done {
		c.setDst(&c.op.Operands[0], helperLaneAtomicResult())
		return true
	}
	data, firstElement, ok := c.resolveAtomicTarget(&c.op.Operands[1])
	if !ok {
		return true
	}
	addr := c.atomicAddress(firstElement, &c.op.Operands[2])
	compare := c.getSrc(&c.op.Operands[3]).UInt(0)
	value := c.getSrc(&c.op.Operands[4]).UInt(0)
	var prior uint32
	c.global.WithLock(func() {
		cur, loaded := atomicLoad(data, addr)
		if !loaded {
			return
		}
		prior = cur
		if cur == compare {
			atomicStore(data, addr, value)
		}
	})
	c.setDst(&c.op.Operands[0], ShaderVariable{Type: TypeUInt, Words: [4]uint32{prior, prior, prior, prior}})
	return true
}

// opImmAtomicAlloc: operand[0]=dst, operand[1]=resource. Post-increments
// the UAV's hidden counter, returning the prior value (§4.6, GLOSSARY
// "Hidden counter").
func opImmAtomicAlloc(c *evalCtx) bool {
	if c.state.Done {
		c.setDst(&c.op.Operands[0], helperLaneAtomicResult())
		return true
	}
	uav, ok := c.resolveUAV(&c.op.Operands[1])
	if !ok {
		return true
	}
	var prior uint32
	c.global.WithLock(func() {
		prior = uav.HiddenCounter
		uav.HiddenCounter++
	})
	c.setDst(&c.op.Operands[0], ShaderVariable{Type: TypeUInt, Words: [4]uint32{prior, prior, prior, prior}})
	return true
}

// opImmAtomicConsume: operand[0]=dst, operand[1]=resource.
// Pre-decrements the hidden counter, returning the new value.
func opImmAtomicConsume(c *evalCtx) bool {
	if c.state.Done {
		c.setDst(&c.op.Operands[0], helperLaneAtomicResult())
		return true
	}
	uav, ok := c.resolveUAV(&c.op.Operands[1])
	if !ok {
		return true
	}
	var after uint32
	c.global.WithLock(func() {
		uav.HiddenCounter--
		after = uav.HiddenCounter
	})
	c.setDst(&c.op.Operands[0], ShaderVariable{Type: TypeUInt, Words: [4]uint32{after, after, after, after}})
	return true
}
