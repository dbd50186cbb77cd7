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

package codegen

import "github.com/anushaKankipati/Simple-C-Compiler/internal/ast"

// emitCall lowers a call expression to the System V sequence (§4.5).
// Placing an argument straight into its destination register with load
// is safe even when that register is already live with some other
// argument's value: load spills whatever it displaces to a fresh stack
// slot first, so nothing already materialized is lost, only possibly
// spilled and immediately reloaded in a later, unrelated expression.
func (e *Emitter) emitCall(n *ast.Call) {
	regArgs, stackArgs := n.Args, []ast.Expr(nil)
	if len(n.Args) > numParamRegs {
		regArgs = n.Args[:numParamRegs]
		stackArgs = n.Args[numParamRegs:]
	}

	for i := len(n.Args) - 1; i >= 0; i-- {
		e.emit(n.Args[i])
	}

	// The stack region for arg count - 6 pushes is naturally 16-byte
	// aligned only when that count is even; an odd count needs one
	// 8-byte pad slot up front so the stack is aligned at `call`.
	numBytes := 0
	if len(stackArgs)%2 == 1 {
		numBytes = paramAlignment
		e.printf("  subq $%d, %%rsp", numBytes)
	}

	for i := len(stackArgs) - 1; i >= 0; i-- {
		arg := stackArgs[i]
		e.load(arg, e.rax())
		if arg.Type().Size() == 1 {
			e.printf("  movsbl %s, %s", e.rax().name1, e.rax().name4)
		}
		e.printf("  pushq %%rax")
		e.detach(arg)
		numBytes += paramAlignment
	}

	for i := len(regArgs) - 1; i >= 0; i-- {
		arg := regArgs[i]
		dst := e.paramRegs()[i]
		e.load(arg, dst)
		if arg.Type().Size() == 1 {
			e.printf("  movsbl %s, %s", dst.name1, dst.name4)
		}
		e.detach(arg)
	}

	// Every register is caller-saved in this ABI subset (DESIGN NOTES,
	// Open Questions): anything still resident at this point belongs to
	// an outer expression, not to one of this call's own arguments —
	// those were already detached above — so it is safe to spill
	// unconditionally before the call clobbers the whole file.
	for _, reg := range e.regs {
		e.load(nil, reg)
	}

	if n.Variadic {
		e.printf("  movl $0, %%eax")
	}
	e.printf("  call %s%s", globalPrefix, n.Callee.Sym.Name)

	if numBytes > 0 {
		e.printf("  addq $%d, %%rsp", numBytes)
	}

	e.assign(n, e.rax())
}
