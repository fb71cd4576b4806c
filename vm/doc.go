/*
   shaderdbg/vm - core instruction-stepping interpreter

   Copyright (c) 2026, shaderdbg contributors

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
   THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// Package vm implements the core of a shader-debugger interpreter for a
// 4-wide SIMD, register-based GPU bytecode ISA. It advances a program
// counter through a decoded instruction stream one step at a time,
// updating temporary registers, indexable temp arrays, per-invocation
// inputs/outputs, constant buffers and resource-view backing stores.
//
// The interpreter operates on a cooperative quad of four sibling
// invocations so that screen-space derivative instructions can be
// evaluated from neighbours. Decoding the instruction stream itself, and
// sampling/transcendental math, are external collaborators: see
// DxbcContainer and ApiWrapper.
package vm
