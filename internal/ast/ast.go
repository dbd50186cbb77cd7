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

package ast

// Symbol is a name bound to a Type and, once the allocator collaborator
// (see internal/sema) has run, a stack offset. Offset 0 denotes a global,
// emitted by the generator as prefix+name+suffix; any other value denotes
// a local or parameter living at offset(%rbp).
type Symbol struct {
	Name   string
	Type   *Type
	Offset int
}

// Expr is any Simple C expression node. Every concrete type is a pointer
// so that identity comparison (used by the generator's node<->register
// side tables) is well-defined; see DESIGN NOTES on the register/node
// back-reference.
type Expr interface {
	Type() *Type
}

// Ident is a reference to a declared variable or function.
type Ident struct {
	Sym *Symbol
}

func (n *Ident) Type() *Type { return n.Sym.Type }

// Number is an integer literal, including character constants (which
// Simple C treats as int-typed, matching ordinary C integer promotion).
type Number struct {
	Value int64
}

func (n *Number) Type() *Type { return TyInt }

// String is a string literal. Its value has already been escape-decoded
// by the lexer (PURPOSE & SCOPE: escape parsing is outside the
// generator's concern); the generator interns Value in the string pool
// on first sight and otherwise treats the node like any other operand
// that resolves to a global address.
type String struct {
	Value []byte
}

func (n *String) Type() *Type { return PointerTo(TyChar) }

// UnaryOp enumerates unary operators that require dedicated lowering.
type UnaryOp int

const (
	Neg    UnaryOp = iota // -x
	Not                   // !x
	Addr                  // &x
	Deref                 // *x
)

type Unary struct {
	Op  UnaryOp
	X   Expr
	Typ *Type
}

func (n *Unary) Type() *Type { return n.Typ }

// BinOp enumerates binary operators. Logical && and || are modeled
// separately from the rest because they short-circuit (EXPRESSION
// EMITTER, §4.3).
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Lt
	Gt
	Le
	Ge
	Eq
	Ne
	LogAnd
	LogOr
)

type Binary struct {
	Op  BinOp
	L, R Expr
	Typ *Type
}

func (n *Binary) Type() *Type { return n.Typ }

// Assign is a simple (non-compound) assignment. The left side is either
// an *Ident or a *Unary{Op: Deref}; DESIGN NOTES flags that the parser
// must guarantee L and the address subexpression of a Deref LHS are
// disjoint subtrees, since the generator does not re-detach an
// already-held pointer register for the LHS.
type Assign struct {
	L, R Expr
	Typ  *Type
}

func (n *Assign) Type() *Type { return n.Typ }

// Call is a function call. Callee is resolved to the function's Ident;
// Variadic is set by the parser when the callee's name is one of a fixed
// list of libc variadic functions (parser.isKnownVariadic), controlling
// whether the lowering sets %eax to the floating-point argument count
// before `call` (CALL LOWERING, §4.5 step 5 — Simple C has no floating
// point arguments, so this is always zero, but the instruction is still
// emitted to match real compiler output for variadic callees like printf).
type Call struct {
	Callee   *Ident
	Args     []Expr
	Variadic bool
	Typ      *Type
}

func (n *Call) Type() *Type { return n.Typ }

// Cast is an explicit type cast. Only integer widenings require emitted
// instructions (EXPRESSION EMITTER, §4.3); narrowing and same-size casts
// are no-ops at the machine level.
type Cast struct {
	Target *Type
	X      Expr
}

func (n *Cast) Type() *Type { return n.Target }

// Stmt is any Simple C statement node.
type Stmt interface{}

type ExprStmt struct {
	X Expr
}

type Block struct {
	Stmts []Stmt
}

type If struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if there is no else-branch
}

type While struct {
	Cond Expr
	Body Stmt
}

type For struct {
	Init Stmt // nil, or an *ExprStmt
	Cond Expr // nil means "always true"
	Incr Stmt // nil, or an *ExprStmt
	Body Stmt
}

// Break targets the innermost enclosing loop. It is always well-formed
// by construction: the parser rejects break outside a loop, so the
// generator's exit-label stack is guaranteed non-empty (ERROR HANDLING
// DESIGN notes this as an otherwise-unchecked invariant).
type Break struct{}

type Return struct {
	X Expr // nil for a bare "return;" in a void function
}

// Function is a function definition. Params and Locals are disjoint;
// the allocator (internal/sema) assigns every symbol in both slices a
// negative stack offset before codegen runs.
type Function struct {
	Name       string
	Params     []*Symbol
	Locals     []*Symbol
	Body       *Block
	ReturnType *Type
	Variadic   bool

	// StackSize is the 16-byte-aligned frame size, filled in by the
	// allocator. The generator emits it as the `<name>.size` assembler
	// symbol used by the prologue's `sub` fixup.
	StackSize int
}

// Program is a whole translation unit: every global variable and every
// function definition, in source order.
type Program struct {
	Globals   []*Symbol
	Functions []*Function
}
