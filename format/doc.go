/*
   shaderdbg/format - packed resource format codec

   Copyright (c) 2026, shaderdbg contributors. See vm/doc.go for license.
*/

// Package format implements load/store for the packed resource formats
// typed UAV/SRV views use (§4.2): 32-bit integer components, 16/8-bit
// integer and normalized variants, half-float, R10G10B10A2 and
// R11G11B10 (load only).
package format
