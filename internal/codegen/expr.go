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

// Named accessors into the fixed register file (register.go), used by the
// rules that hard-code a physical register rather than acquiring one
// through getreg — division's %rax/%rdx/%rcx and the call sequence's
// parameter registers.
func (e *Emitter) rax() *Register { return e.regs[0] }
func (e *Emitter) rdx() *Register { return e.regs[3] }
func (e *Emitter) rcx() *Register { return e.regs[4] }

// emit is the exhaustive dispatch over expression kinds (DESIGN NOTES:
// a tagged-union AST with exhaustive dispatch, not virtual methods). Its
// contract (§4.3) is that after it returns, node's value resides either
// in a register or at its spill slot.
func (e *Emitter) emit(node ast.Expr) {
	switch n := node.(type) {
	case *ast.Number, *ast.Ident, *ast.String:
		// No instruction needed: the operand writer (§4.2) can address
		// any of these directly at the point of use.
		return
	case *ast.Unary:
		e.emitUnary(n)
	case *ast.Binary:
		e.emitBinary(n)
	case *ast.Assign:
		e.emitAssign(n)
	case *ast.Cast:
		e.emitCast(n)
	case *ast.Call:
		e.emitCall(n)
	default:
		panic("codegen: unhandled expression kind")
	}
}

func (e *Emitter) emitUnary(n *ast.Unary) {
	switch n.Op {
	case ast.Neg:
		e.emit(n.X)
		reg := e.ensure(n.X)
		sz := n.X.Type().Size()
		e.printf("  neg%s %s", suffix(sz), reg.name(sz))
		e.assign(n, reg)
	case ast.Not:
		e.emit(n.X)
		reg := e.ensure(n.X)
		sz := n.X.Type().Size()
		e.printf("  cmp%s $0, %s", suffix(sz), reg.name(sz))
		e.detach(n.X)
		result := e.getreg()
		e.printf("  sete %s", result.name1)
		e.printf("  movzbl %s, %s", result.name1, result.name4)
		e.assign(n, result)
	case ast.Addr:
		e.emitAddr(n)
	case ast.Deref:
		e.emit(n.X)
		reg := e.ensure(n.X)
		sz := n.Typ.Size()
		e.printf("  mov%s (%s), %s", suffix(sz), reg.name8, reg.name(sz))
		e.assign(n, reg)
	default:
		panic("codegen: unhandled unary operator")
	}
}

// emitAddr implements &x (§4.3). &*p elides both the dereference and
// the address-of: p's already-materialized register is simply handed to
// the address-of node, rather than loading through the pointer and then
// re-taking its address.
func (e *Emitter) emitAddr(n *ast.Unary) {
	if deref, ok := n.X.(*ast.Unary); ok && deref.Op == ast.Deref {
		e.emit(deref.X)
		reg := e.ensure(deref.X)
		e.assign(n, reg)
		return
	}

	reg := e.getreg()
	e.printf("  leaq %s, %s", e.operand(n.X), reg.name8)
	e.assign(n, reg)
}

func (e *Emitter) emitBinary(n *ast.Binary) {
	switch n.Op {
	case ast.Add, ast.Sub, ast.Mul:
		e.emitArith(n)
	case ast.Div, ast.Mod:
		e.emitDivMod(n)
	case ast.Lt, ast.Gt, ast.Le, ast.Ge, ast.Eq, ast.Ne:
		e.emitCompare(n)
	case ast.LogAnd:
		e.emitShortCircuit(n, false)
	case ast.LogOr:
		e.emitShortCircuit(n, true)
	default:
		panic("codegen: unhandled binary operator")
	}
}

func arithMnemonic(op ast.BinOp) string {
	switch op {
	case ast.Add:
		return "add"
	case ast.Sub:
		return "sub"
	case ast.Mul:
		return "imul"
	}
	panic("codegen: not an arithmetic operator")
}

func (e *Emitter) emitArith(n *ast.Binary) {
	e.emit(n.L)
	e.emit(n.R)
	reg := e.ensure(n.L)
	sz := n.L.Type().Size()
	e.printf("  %s%s %s, %s", arithMnemonic(n.Op), suffix(sz), e.operand(n.R), reg.name(sz))
	e.detach(n.R)
	e.assign(n, reg)
}

func (e *Emitter) emitDivMod(n *ast.Binary) {
	e.emit(n.L)
	e.emit(n.R)

	sz := n.L.Type().Size()
	e.load(n.L, e.rax())
	e.load(nil, e.rdx())
	e.load(n.R, e.rcx())

	if sz == sizeofReg {
		e.printf("  cqto")
	} else {
		e.printf("  cltd")
	}
	e.printf("  idiv%s %s", suffix(sz), e.rcx().name(sz))

	e.detach(n.L)
	e.detach(n.R)
	if n.Op == ast.Div {
		e.assign(n, e.rax())
	} else {
		e.assign(n, e.rdx())
	}
}

func ccFor(op ast.BinOp) string {
	switch op {
	case ast.Eq:
		return "e"
	case ast.Ne:
		return "ne"
	case ast.Lt:
		return "l"
	case ast.Le:
		return "le"
	case ast.Gt:
		return "g"
	case ast.Ge:
		return "ge"
	}
	panic("codegen: not a comparison operator")
}

func (e *Emitter) emitCompare(n *ast.Binary) {
	e.emit(n.L)
	e.emit(n.R)
	reg := e.ensure(n.L)
	sz := n.L.Type().Size()
	e.printf("  cmp%s %s, %s", suffix(sz), e.operand(n.R), reg.name(sz))
	e.detach(n.L)
	e.detach(n.R)

	result := e.getreg()
	e.printf("  set%s %s", ccFor(n.Op), result.name1)
	e.printf("  movzb%s %s, %s", suffix(4), result.name1, result.name4)
	e.assign(n, result)
}

// emitShortCircuit implements && and || (§4.3). isOr selects between the
// two symmetric lowerings; both allocate the result register lazily,
// after the short-circuit tests, so evaluating L and R never pins down a
// register the tests themselves don't need.
func (e *Emitter) emitShortCircuit(n *ast.Binary, isOr bool) {
	l1 := e.newLabel()
	l2 := e.newLabel()

	e.test(n.L, l1, isOr)
	e.test(n.R, l1, isOr)

	result := e.getreg()
	if isOr {
		e.printf("  movl $0, %s", result.name4)
		e.printf("  jmp %s", l2)
		e.printf("%s:", l1)
		e.printf("  movl $1, %s", result.name4)
	} else {
		e.printf("  movl $1, %s", result.name4)
		e.printf("  jmp %s", l2)
		e.printf("%s:", l1)
		e.printf("  movl $0, %s", result.name4)
	}
	e.printf("%s:", l2)
	e.assign(n, result)
}

// test emits node, ensures it occupies a register, compares it to zero,
// and branches to label: jne when ifTrue, je otherwise (§4.3). node is
// detached after the branch — by the time control reaches either side of
// the branch, node's register is free again.
func (e *Emitter) test(node ast.Expr, label Label, ifTrue bool) {
	e.emit(node)
	reg := e.ensure(node)
	sz := node.Type().Size()
	e.printf("  cmp%s $0, %s", suffix(sz), reg.name(sz))
	e.detach(node)
	if ifTrue {
		e.printf("  jne %s", label)
	} else {
		e.printf("  je %s", label)
	}
}

// castSuffix picks the sign-extension mnemonic for a widening integer
// cast; narrowing and same-size casts need no instruction at all (§4.3).
func castSuffix(from, to int) string {
	switch {
	case from == 1 && to == 4:
		return "movsbl"
	case from == 1 && to == 8:
		return "movsbq"
	case from == 4 && to == 8:
		return "movslq"
	}
	return ""
}

func (e *Emitter) emitCast(n *ast.Cast) {
	e.emit(n.X)
	reg := e.ensure(n.X)

	from, to := n.X.Type().Size(), n.Target.Size()
	if insn := castSuffix(from, to); insn != "" {
		e.printf("  %s %s, %s", insn, reg.name(from), reg.name(to))
	}
	e.assign(n, reg)
}

// emitAssign implements simple assignment. When the left side is a
// dereference, the right side is generated *before* the pointer, and the
// pointer is ensured only after both are generated: if the right side is
// a call, its own argument/call
// lowering (call.go) evicts every register, including whichever one the
// pointer was sitting in, so the pointer must be re-ensured afterward or
// the store addresses stale, possibly reused, register contents. This
// mirrors the evaluation order of the original Assignment::generate
// (right-hand side first, then the pointer). Both sides are detached
// after the store; DESIGN NOTES flags that this does not re-detach the
// pointer register if it happened to already be held elsewhere, a
// precondition the parser's disjoint-subtree guarantee is responsible
// for preserving.
func (e *Emitter) emitAssign(n *ast.Assign) {
	if deref, ok := n.L.(*ast.Unary); ok && deref.Op == ast.Deref {
		e.emit(n.R)
		e.emit(deref.X)
		ptr := e.ensure(deref.X)
		val := e.ensure(n.R)

		sz := n.Typ.Size()
		e.printf("  mov%s %s, (%s)", suffix(sz), val.name(sz), ptr.name8)

		e.detach(deref.X)
		e.detach(n.R)
		e.assign(n, val)
		return
	}

	e.emit(n.R)
	val := e.ensure(n.R)
	sz := n.Typ.Size()
	e.printf("  mov%s %s, %s", suffix(sz), val.name(sz), e.operand(n.L))
	e.detach(n.R)
	e.assign(n, val)
}
