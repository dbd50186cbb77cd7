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

// Package parser turns a Simple C token stream into a typed *ast.Program.
// Like the lexer, it is an external collaborator of the code generator
// (PURPOSE & SCOPE): scope resolution, type checking and parameter type
// inference happen here, not in internal/codegen.
package parser

import (
	"github.com/anushaKankipati/Simple-C-Compiler/internal/ast"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/diag"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/token"
)

type scope struct {
	vars   map[string]*ast.Symbol
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]*ast.Symbol), parent: parent}
}

func (s *scope) lookup(name string) *ast.Symbol {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.vars[name]; ok {
			return sym
		}
	}
	return nil
}

// Parser is a recursive-descent parser over a flat token slice, with
// operator-precedence climbing implemented as a chain of mutually
// recursive methods (assign -> logOr -> ... -> primary), the same shape
// as a conventional single-pass C front end.
type Parser struct {
	toks []token.Token
	pos  int
	diag *diag.Reporter

	global    *scope
	cur       *scope
	loopDepth int

	locals   []*ast.Symbol // accumulates for the function currently being parsed
}

// New creates a Parser over toks, reporting errors through r.
func New(toks []token.Token, r *diag.Reporter) *Parser {
	g := newScope(nil)
	return &Parser{toks: toks, diag: r, global: g, cur: g}
}

func (p *Parser) tok() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(punct string) bool {
	return p.tok().Is(punct)
}

func (p *Parser) atKeyword(word string) bool {
	return p.tok().IsKeyword(word)
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expectPunct(punct string) token.Token {
	if !p.at(punct) {
		p.errorf("expected %q, got %q", punct, p.tok().Text)
		return p.tok()
	}
	return p.advance()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.diag.Errorf(p.tok().Line, format, args...)
}

func (p *Parser) isTypeName() bool {
	t := p.tok()
	return t.Kind == token.KEYWORD && (t.Text == "int" || t.Text == "char" || t.Text == "void")
}

func (p *Parser) baseType() *ast.Type {
	switch {
	case p.atKeyword("int"):
		p.advance()
		return ast.TyInt
	case p.atKeyword("char"):
		p.advance()
		return ast.TyChar
	case p.atKeyword("void"):
		p.advance()
		return ast.TyVoid
	}
	p.errorf("expected a type, got %q", p.tok().Text)
	p.advance()
	return ast.TyInt
}

// pointerSuffix consumes any number of '*' and wraps base accordingly.
func (p *Parser) pointerSuffix(base *ast.Type) *ast.Type {
	for p.at("*") {
		p.advance()
		base = ast.PointerTo(base)
	}
	return base
}

func (p *Parser) enterScope() {
	p.cur = newScope(p.cur)
}

func (p *Parser) exitScope() {
	p.cur = p.cur.parent
}

// declareLocal binds name in the current scope and records the symbol
// so Parse can hand the function's full local list to the allocator.
func (p *Parser) declareLocal(name string, ty *ast.Type) *ast.Symbol {
	sym := &ast.Symbol{Name: name, Type: ty}
	if _, exists := p.cur.vars[name]; exists {
		p.errorf("redeclaration of %q", name)
	}
	p.cur.vars[name] = sym
	p.locals = append(p.locals, sym)
	return sym
}

// Parse consumes the whole token stream and returns the translation
// unit. By contract (EXTERNAL INTERFACES) every Identifier in the
// returned tree refers to a *Symbol with a final Type; only stack
// Offsets remain to be assigned, by internal/sema's allocator.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for p.tok().Kind != token.EOF {
		p.topLevel(prog)
	}
	return prog
}

func (p *Parser) topLevel(prog *ast.Program) {
	base := p.baseType()
	ty := p.pointerSuffix(base)

	if p.tok().Kind != token.IDENT {
		p.errorf("expected a declarator name, got %q", p.tok().Text)
		p.advance()
		return
	}
	name := p.advance().Text

	if p.at("(") {
		fn := p.function(name, ty)
		prog.Functions = append(prog.Functions, fn)
		return
	}

	sym := &ast.Symbol{Name: name, Type: ty}
	p.global.vars[name] = sym
	prog.Globals = append(prog.Globals, sym)
	p.expectPunct(";")
}

func (p *Parser) function(name string, retTy *ast.Type) *ast.Function {
	fn := &ast.Function{Name: name, ReturnType: retTy}
	p.global.vars[name] = &ast.Symbol{Name: name, Type: ast.FuncType(retTy)}

	p.expectPunct("(")
	p.enterScope()
	savedLocals := p.locals
	p.locals = nil

	for !p.at(")") {
		base := p.baseType()
		pty := p.pointerSuffix(base)
		if p.tok().Kind != token.IDENT {
			p.errorf("expected a parameter name, got %q", p.tok().Text)
			break
		}
		pname := p.advance().Text
		sym := p.declareLocal(pname, pty)
		fn.Params = append(fn.Params, sym)
		if !p.at(",") {
			break
		}
		p.advance()
	}
	p.expectPunct(")")

	if len(fn.Params) > 6 {
		p.errorf("function %q takes more than 6 parameters, unsupported", name)
	}

	fn.Body = p.block()

	// Everything declared in this function's scope that is not itself a
	// parameter is a local; the allocator assigns both kinds a stack slot.
	for _, sym := range p.locals {
		isParam := false
		for _, param := range fn.Params {
			if param == sym {
				isParam = true
				break
			}
		}
		if !isParam {
			fn.Locals = append(fn.Locals, sym)
		}
	}

	p.exitScope()
	p.locals = savedLocals
	return fn
}

func (p *Parser) block() *ast.Block {
	p.expectPunct("{")
	p.enterScope()
	blk := &ast.Block{}
	for !p.at("}") && p.tok().Kind != token.EOF {
		blk.Stmts = append(blk.Stmts, p.stmt())
	}
	p.expectPunct("}")
	p.exitScope()
	return blk
}

func (p *Parser) stmt() ast.Stmt {
	switch {
	case p.at("{"):
		return p.block()
	case p.atKeyword("if"):
		return p.ifStmt()
	case p.atKeyword("while"):
		return p.whileStmt()
	case p.atKeyword("for"):
		return p.forStmt()
	case p.atKeyword("return"):
		return p.returnStmt()
	case p.atKeyword("break"):
		return p.breakStmt()
	case p.at(";"):
		p.advance()
		return &ast.Block{}
	case p.isTypeName():
		return p.declStmt()
	default:
		x := p.expr()
		p.expectPunct(";")
		return &ast.ExprStmt{X: x}
	}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.advance()
	p.expectPunct("(")
	cond := p.expr()
	p.expectPunct(")")
	then := p.stmt()
	var els ast.Stmt
	if p.atKeyword("else") {
		p.advance()
		els = p.stmt()
	}
	return &ast.If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) whileStmt() ast.Stmt {
	p.advance()
	p.expectPunct("(")
	cond := p.expr()
	p.expectPunct(")")
	p.loopDepth++
	body := p.stmt()
	p.loopDepth--
	return &ast.While{Cond: cond, Body: body}
}

func (p *Parser) forStmt() ast.Stmt {
	p.advance()
	p.expectPunct("(")

	var init ast.Stmt
	if !p.at(";") {
		init = &ast.ExprStmt{X: p.expr()}
	}
	p.expectPunct(";")

	var cond ast.Expr
	if !p.at(";") {
		cond = p.expr()
	}
	p.expectPunct(";")

	var incr ast.Stmt
	if !p.at(")") {
		incr = &ast.ExprStmt{X: p.expr()}
	}
	p.expectPunct(")")

	p.loopDepth++
	body := p.stmt()
	p.loopDepth--
	return &ast.For{Init: init, Cond: cond, Incr: incr, Body: body}
}

func (p *Parser) returnStmt() ast.Stmt {
	p.advance()
	var x ast.Expr
	if !p.at(";") {
		x = p.expr()
	}
	p.expectPunct(";")
	return &ast.Return{X: x}
}

func (p *Parser) breakStmt() ast.Stmt {
	tok := p.advance()
	if p.loopDepth == 0 {
		p.diag.Errorf(tok.Line, "break statement not within a loop")
	}
	p.expectPunct(";")
	return &ast.Break{}
}

func (p *Parser) declStmt() ast.Stmt {
	base := p.baseType()
	blk := &ast.Block{}
	for {
		ty := p.pointerSuffix(base)
		if p.tok().Kind != token.IDENT {
			p.errorf("expected a declarator name, got %q", p.tok().Text)
			break
		}
		name := p.advance().Text
		sym := p.declareLocal(name, ty)

		if p.at("=") {
			p.advance()
			init := p.assign()
			blk.Stmts = append(blk.Stmts, &ast.ExprStmt{
				X: &ast.Assign{L: &ast.Ident{Sym: sym}, R: init, Typ: ty},
			})
		}

		if !p.at(",") {
			break
		}
		p.advance()
	}
	p.expectPunct(";")
	return blk
}
