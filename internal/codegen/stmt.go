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

// stmt is the exhaustive dispatch over statement kinds (§4.4). Every
// branch that emits an expression is followed by detaching it: a
// statement's expression value, unlike a nested expression's, is never
// read again.
func (e *Emitter) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		e.emit(n.X)
		e.detach(n.X)
	case *ast.Block:
		e.block(n)
	case *ast.If:
		e.ifStmt(n)
	case *ast.While:
		e.whileStmt(n)
	case *ast.For:
		e.forStmt(n)
	case *ast.Break:
		e.breakStmt()
	case *ast.Return:
		e.returnStmt(n)
	default:
		panic("codegen: unhandled statement kind")
	}
}

// block emits every statement in sequence. Between statements the
// register file must be entirely free (DATA MODEL, §3: no expression's
// value survives past the end of its enclosing statement); this is the
// one place the generator can cheaply assert that invariant rather than
// silently let a leaked register corrupt a later statement's allocation.
func (e *Emitter) block(b *ast.Block) {
	for _, s := range b.Stmts {
		e.stmt(s)
		for _, reg := range e.regs {
			if reg.node != nil {
				panic("codegen: register file not empty at statement boundary")
			}
		}
	}
}

func (e *Emitter) ifStmt(n *ast.If) {
	elseLabel := e.newLabel()
	e.test(n.Cond, elseLabel, false)
	e.stmt(n.Then)

	if n.Else == nil {
		e.printf("%s:", elseLabel)
		return
	}

	endLabel := e.newLabel()
	e.printf("  jmp %s", endLabel)
	e.printf("%s:", elseLabel)
	e.stmt(n.Else)
	e.printf("%s:", endLabel)
}

func (e *Emitter) whileStmt(n *ast.While) {
	begin := e.newLabel()
	end := e.newLabel()

	e.breakStack = append(e.breakStack, end)
	defer e.popBreak()

	e.printf("%s:", begin)
	e.test(n.Cond, end, false)
	e.stmt(n.Body)
	e.printf("  jmp %s", begin)
	e.printf("%s:", end)
}

func (e *Emitter) forStmt(n *ast.For) {
	begin := e.newLabel()
	end := e.newLabel()

	e.breakStack = append(e.breakStack, end)
	defer e.popBreak()

	if n.Init != nil {
		e.stmt(n.Init)
	}
	e.printf("%s:", begin)
	if n.Cond != nil {
		e.test(n.Cond, end, false)
	}
	e.stmt(n.Body)
	if n.Incr != nil {
		e.stmt(n.Incr)
	}
	e.printf("  jmp %s", begin)
	e.printf("%s:", end)
}

func (e *Emitter) popBreak() {
	e.breakStack = e.breakStack[:len(e.breakStack)-1]
}

// breakStmt jumps to the innermost enclosing loop's exit label. The
// parser guarantees breakStack is non-empty by the time this runs (DATA
// MODEL, §3; ast.Break's doc comment).
func (e *Emitter) breakStmt() {
	target := e.breakStack[len(e.breakStack)-1]
	e.printf("  jmp %s", target)
}

// returnStmt loads the return value into %rax, if any, and jumps to the
// function's shared epilogue label rather than emitting the epilogue
// inline — every return in a function, however it's nested, converges on
// the same `movq %rbp, %rsp`/`popq %rbp`/`ret` sequence (§4.4
// "Function::generate").
func (e *Emitter) returnStmt(n *ast.Return) {
	if n.X != nil {
		e.emit(n.X)
		e.load(n.X, e.rax())
		e.detach(n.X)
	}
	e.printf("  jmp %s%s.exit", globalPrefix, e.funcName)
}

func alignTo(n, align int) int {
	return (n + align - 1) / align * align
}

// function emits one complete function definition (§4.4): the prologue
// with a deferred frame-size fixup symbol, the parameter-register spill,
// the body, and the shared epilogue.
//
// The prologue loads the not-yet-defined <name>.size symbol into %eax
// and subtracts that: sema.Allocate only knows the locals' footprint,
// and how much further the allocator spills during this function's body
// isn't known until that body has actually been emitted. The trailing
// `.set` fixes up the symbol once the true depth is final; the assembler
// resolves the forward reference used in the prologue when it assembles
// the whole file.
func (e *Emitter) function(fn *ast.Function) {
	e.funcName = fn.Name
	e.frameOffset = -fn.StackSize
	sizeSym := fn.Name + ".size"

	e.printf("%s%s%s:", globalPrefix, fn.Name, globalSuffix)
	e.printf("  pushq %%rbp")
	e.printf("  movq %%rsp, %%rbp")
	e.printf("  movl $%s, %%eax", sizeSym)
	e.printf("  subq %%rax, %%rsp")

	for i, p := range fn.Params {
		src := e.paramRegs()[i]
		e.printf("  mov%s %s, %d(%%rbp)", suffix(p.Type.Size()), src.name(p.Type.Size()), p.Offset)
	}

	e.block(fn.Body)

	e.printf("%s%s.exit:", globalPrefix, fn.Name)
	e.printf("  movq %%rbp, %%rsp")
	e.printf("  popq %%rbp")
	e.printf("  ret")
	e.printf("  .set %s, %d", sizeSym, alignTo(-e.frameOffset, stackAlignment))
	e.printf("  .globl %s%s%s", globalPrefix, fn.Name, globalSuffix)
}
