//
// Copyright 2022 FRAGATA COMPUTER SYSTEMS AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package sema implements the `allocate` collaborator the code generator
// depends on (EXTERNAL INTERFACES, §6): by the time Allocate returns,
// every local and parameter Symbol of a Function carries its final,
// negative stack offset, and Function.StackSize holds the 16-byte-aligned
// frame size the generator's prologue fixup needs.
//
// Name resolution and type checking already happened in internal/parser
// (a conventional single-pass C front end resolves both while building
// the tree); this package's only remaining job is layout.
package sema

import (
	"github.com/anushaKankipati/Simple-C-Compiler/internal/ast"
)

const (
	sizeofReg      = 8
	paramOffset    = 2 * sizeofReg // saved %rbp + return address
	stackAlignment = 16
)

func alignTo(n, align int) int {
	return (n + align - 1) / align * align
}

// Allocate assigns a stack slot to every parameter and local of fn. It
// walks downward from %rbp over parameters then locals, aligning each
// slot to its own size, and sets StackSize to the depth reached rounded
// up to 16; StackSize is what the generator actually needs.
//
// Simple C passes every parameter in a register (function definitions
// are capped at 6 parameters by the parser), so — unlike a full System V
// front end — there is no positive, stack-passed-parameter region above
// %rbp+16; paramOffset is retained purely as the named constant the spec
// calls out, and every symbol, parameter or local, gets a negative slot.
func Allocate(fn *ast.Function) {
	_ = paramOffset // documented as the nominal starting point; see above

	bottom := 0
	assign := func(sym *ast.Symbol) {
		size := sym.Type.Size()
		align := size
		bottom += size
		bottom = alignTo(bottom, align)
		sym.Offset = -bottom
	}

	for _, sym := range fn.Params {
		assign(sym)
	}
	for _, sym := range fn.Locals {
		assign(sym)
	}

	fn.StackSize = alignTo(bottom, stackAlignment)
}

// AllocateProgram runs Allocate over every function definition in prog.
func AllocateProgram(prog *ast.Program) {
	for _, fn := range prog.Functions {
		Allocate(fn)
	}
}
