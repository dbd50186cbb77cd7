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

// Package ast defines the typed, symbol-resolved syntax tree the code
// generator consumes. Lexing, parsing and semantic analysis are external
// collaborators (PURPOSE & SCOPE): by the time a *Program reaches the
// generator, every expression carries a resolved *Type and every
// Identifier refers to a *Symbol with a final stack offset.
package ast

// Kind distinguishes the scalar types Simple C supports. Structures,
// unions and floating point are explicitly out of scope (Non-goals).
type Kind int

const (
	Int Kind = iota
	Char
	Void
	Ptr
	Func
)

// Type is a resolved type: a byte Size() in {1, 4, 8} plus an IsFunc
// flag, as required by the DATA MODEL. Pointer and function types carry
// a Base (pointee / return type respectively).
type Type struct {
	Kind Kind
	Base *Type // pointee for Ptr, return type for Func
}

var (
	TyInt  = &Type{Kind: Int}
	TyChar = &Type{Kind: Char}
	TyVoid = &Type{Kind: Void}
)

// PointerTo returns the pointer-to-base type. Pointer types are not
// interned: two PointerTo(TyInt) calls yield distinct *Type values, which
// is harmless since the generator only ever reads Size()/IsFunc().
func PointerTo(base *Type) *Type {
	return &Type{Kind: Ptr, Base: base}
}

// FuncType returns the type of a function returning ret.
func FuncType(ret *Type) *Type {
	return &Type{Kind: Func, Base: ret}
}

// Size returns the storage size of the type in bytes: 1 for char, 4 for
// int, 8 for any pointer. Function types have no storage size; callers
// must check IsFunc first.
func (t *Type) Size() int {
	switch t.Kind {
	case Char:
		return 1
	case Int:
		return 4
	case Ptr:
		return 8
	case Void:
		return 0
	}
	panic("ast: Size() of a function type")
}

// IsFunc reports whether t names a function (as opposed to a value that
// can occupy a register or stack slot).
func (t *Type) IsFunc() bool {
	return t.Kind == Func
}

// IsPointer reports whether t is a pointer type.
func (t *Type) IsPointer() bool {
	return t.Kind == Ptr
}
