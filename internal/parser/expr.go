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

package parser

import (
	"github.com/anushaKankipati/Simple-C-Compiler/internal/ast"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/token"
)

// resultType resolves the type of a binary arithmetic/comparison result.
// Simple C's type rules are deliberately thin (Non-goals exclude most of
// the usual arithmetic-conversion machinery): char operands promote to
// int, and pointer arithmetic is untyped (no scaling by pointee
// size) — a pointer simply behaves as
// an 8-byte integer wherever one operand of + or - is a pointer.
func resultType(l, r *ast.Type) *ast.Type {
	if l.IsPointer() {
		return l
	}
	if r.IsPointer() {
		return r
	}
	return ast.TyInt
}

func (p *Parser) expr() ast.Expr {
	return p.assign()
}

func (p *Parser) assign() ast.Expr {
	x := p.logOr()
	if p.at("=") {
		p.advance()
		rhs := p.assign()
		return &ast.Assign{L: x, R: rhs, Typ: x.Type()}
	}
	return x
}

func (p *Parser) logOr() ast.Expr {
	x := p.logAnd()
	for p.at("||") {
		p.advance()
		rhs := p.logAnd()
		x = &ast.Binary{Op: ast.LogOr, L: x, R: rhs, Typ: ast.TyInt}
	}
	return x
}

func (p *Parser) logAnd() ast.Expr {
	x := p.equality()
	for p.at("&&") {
		p.advance()
		rhs := p.equality()
		x = &ast.Binary{Op: ast.LogAnd, L: x, R: rhs, Typ: ast.TyInt}
	}
	return x
}

func (p *Parser) equality() ast.Expr {
	x := p.relational()
	for p.at("==") || p.at("!=") {
		op := ast.Eq
		if p.at("!=") {
			op = ast.Ne
		}
		p.advance()
		rhs := p.relational()
		x = &ast.Binary{Op: op, L: x, R: rhs, Typ: ast.TyInt}
	}
	return x
}

func (p *Parser) relational() ast.Expr {
	x := p.additive()
	for p.at("<") || p.at(">") || p.at("<=") || p.at(">=") {
		var op ast.BinOp
		switch {
		case p.at("<"):
			op = ast.Lt
		case p.at(">"):
			op = ast.Gt
		case p.at("<="):
			op = ast.Le
		default:
			op = ast.Ge
		}
		p.advance()
		rhs := p.additive()
		x = &ast.Binary{Op: op, L: x, R: rhs, Typ: ast.TyInt}
	}
	return x
}

func (p *Parser) additive() ast.Expr {
	x := p.multiplicative()
	for p.at("+") || p.at("-") {
		op := ast.Add
		if p.at("-") {
			op = ast.Sub
		}
		p.advance()
		rhs := p.multiplicative()
		x = &ast.Binary{Op: op, L: x, R: rhs, Typ: resultType(x.Type(), rhs.Type())}
	}
	return x
}

func (p *Parser) multiplicative() ast.Expr {
	x := p.unary()
	for p.at("*") || p.at("/") || p.at("%") {
		var op ast.BinOp
		switch {
		case p.at("*"):
			op = ast.Mul
		case p.at("/"):
			op = ast.Div
		default:
			op = ast.Mod
		}
		p.advance()
		rhs := p.unary()
		x = &ast.Binary{Op: op, L: x, R: rhs, Typ: ast.TyInt}
	}
	return x
}

// isCastAhead reports whether the parser is looking at "(" typename ")",
// as opposed to a parenthesized expression. Like chibicc, we decide this
// by a one-token lookahead past the "(".
func (p *Parser) isCastAhead() bool {
	if !p.at("(") {
		return false
	}
	next := p.toks[p.pos+1]
	return next.Kind == token.KEYWORD && (next.Text == "int" || next.Text == "char" || next.Text == "void")
}

func (p *Parser) unary() ast.Expr {
	switch {
	case p.at("-"):
		p.advance()
		x := p.unary()
		return &ast.Unary{Op: ast.Neg, X: x, Typ: x.Type()}
	case p.at("!"):
		p.advance()
		x := p.unary()
		return &ast.Unary{Op: ast.Not, X: x, Typ: ast.TyInt}
	case p.at("&"):
		p.advance()
		x := p.unary()
		return &ast.Unary{Op: ast.Addr, X: x, Typ: ast.PointerTo(x.Type())}
	case p.at("*"):
		p.advance()
		x := p.unary()
		base := ast.TyInt
		if x.Type().IsPointer() {
			base = x.Type().Base
		} else {
			p.errorf("cannot dereference a non-pointer expression")
		}
		return &ast.Unary{Op: ast.Deref, X: x, Typ: base}
	case p.isCastAhead():
		p.advance() // "("
		base := p.baseType()
		target := p.pointerSuffix(base)
		p.expectPunct(")")
		x := p.unary()
		return &ast.Cast{Target: target, X: x}
	default:
		return p.postfix()
	}
}

func (p *Parser) postfix() ast.Expr {
	x := p.primary()
	for p.at("(") {
		ident, ok := x.(*ast.Ident)
		if !ok {
			p.errorf("called object is not a function")
		}
		x = p.call(ident)
	}
	return x
}

func (p *Parser) call(callee *ast.Ident) ast.Expr {
	p.advance() // "("
	var args []ast.Expr
	for !p.at(")") {
		args = append(args, p.assign())
		if !p.at(",") {
			break
		}
		p.advance()
	}
	p.expectPunct(")")

	retTy := ast.TyInt
	variadic := false
	if callee != nil && callee.Sym != nil && callee.Sym.Type.IsFunc() {
		retTy = callee.Sym.Type.Base
	}
	if callee != nil && callee.Sym != nil && callee.Sym.Type.IsFunc() && isKnownVariadic(callee.Sym.Name) {
		variadic = true
	}
	return &ast.Call{Callee: callee, Args: args, Typ: retTy, Variadic: variadic}
}

// isKnownVariadic recognizes the handful of libc entry points Simple C
// programs call without a declaration in scope (no headers: preprocessing
// is out of scope). Only these need %eax primed with an FP-argument count
// before `call` (CALL LOWERING, §4.5 step 5); every other undeclared call
// is treated as an ordinary implicit int-returning function, matching
// classic K&R behavior.
func isKnownVariadic(name string) bool {
	switch name {
	case "printf", "fprintf", "sprintf", "scanf":
		return true
	}
	return false
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.tok().Kind == token.NUMBER:
		t := p.advance()
		return &ast.Number{Value: t.IVal}
	case p.tok().Kind == token.STRING:
		t := p.advance()
		return &ast.String{Value: []byte(t.Text)}
	case p.tok().Kind == token.IDENT:
		t := p.advance()
		sym := p.cur.lookup(t.Text)
		if sym == nil {
			// Implicit declaration: an undeclared identifier called as a
			// function is assumed to return int, matching the external
			// C runtime's library functions (CALL LOWERING, §4.5). Any
			// other use of an undeclared name is an error.
			if !p.at("(") {
				p.diag.Errorf(t.Line, "undeclared identifier %q", t.Text)
			}
			sym = &ast.Symbol{Name: t.Text, Type: ast.FuncType(ast.TyInt)}
			p.global.vars[t.Text] = sym
		}
		return &ast.Ident{Sym: sym}
	case p.at("("):
		p.advance()
		x := p.expr()
		p.expectPunct(")")
		return x
	}
	p.errorf("expected an expression, got %q", p.tok().Text)
	p.advance()
	return &ast.Number{Value: 0}
}
