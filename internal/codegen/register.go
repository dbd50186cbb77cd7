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

// Package codegen is the code generator core: the register file and its
// allocator, the operand writer, the per-expression-kind emitter, and the
// statement/function emitter that lowers control flow and the System V
// call sequence. This is the hardest part of the compiler (PURPOSE &
// SCOPE) and the only part that talks directly to the assembler text.
package codegen

import "github.com/anushaKankipati/Simple-C-Compiler/internal/ast"

// Register is one entry of the fixed general-purpose register file. It
// carries three operand spellings (DATA MODEL, §3) and, while occupied,
// a back-pointer to the expression node whose value it holds.
//
// node is the only field on Register that changes after construction,
// and assign (alloc.go) is the only place in the package that writes it,
// keeping the reg<->node bijection consistent (DESIGN NOTES: "the only
// place that writes either field").
type Register struct {
	name8, name4, name1 string
	node                ast.Expr
}

func (r *Register) name(size int) string {
	switch size {
	case 1:
		return r.name1
	case 4:
		return r.name4
	default:
		return r.name8
	}
}

// newRegisterFile builds the fixed, ordered register set the allocator
// walks deterministically (§4.1): rax first (return/scratch register),
// then the six parameter registers, then r10/r11 as extra scratch.
func newRegisterFile() []*Register {
	return []*Register{
		{name8: "%rax", name4: "%eax", name1: "%al"},
		{name8: "%rdi", name4: "%edi", name1: "%dil"},
		{name8: "%rsi", name4: "%esi", name1: "%sil"},
		{name8: "%rdx", name4: "%edx", name1: "%dl"},
		{name8: "%rcx", name4: "%ecx", name1: "%cl"},
		{name8: "%r8", name4: "%r8d", name1: "%r8b"},
		{name8: "%r9", name4: "%r9d", name1: "%r9b"},
		{name8: "%r10", name4: "%r10d", name1: "%r10b"},
		{name8: "%r11", name4: "%r11d", name1: "%r11b"},
	}
}

// paramRegs is the subset of the register file used for the first six
// integer arguments, in System V parameter-register order.
func (e *Emitter) paramRegs() []*Register {
	return e.regs[1:7]
}

const numParamRegs = 6

// suffix maps an operand size to the AT&T mnemonic size suffix.
func suffix(size int) string {
	switch size {
	case 1:
		return "b"
	case 4:
		return "l"
	default:
		return "q"
	}
}
