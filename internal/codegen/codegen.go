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

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/anushaKankipati/Simple-C-Compiler/internal/ast"
)

// Platform constants (EXTERNAL INTERFACES, §6). Linux ELF uses empty
// global symbol decoration; a Windows or macOS backend would override
// globalPrefix/globalSuffix, but cross-platform ABI support is an
// explicit Non-goal.
const (
	stackAlignment = 16
	paramAlignment = 8
	sizeofReg      = 8
	globalPrefix   = ""
	globalSuffix   = ""
)

// Label is an opaque, monotonically numbered identifier. Two Labels are
// equal only if they are the same value (DATA MODEL, §3: "equal by
// identity").
type Label int

func (l Label) String() string {
	return fmt.Sprintf(".L%d", int(l))
}

// poolEntry is one interned string literal. The pool is keyed by an
// xxhash of the decoded payload rather than the payload itself: Simple C
// programs that embed sizeable string tables (format strings, error
// tables) benefit from a cheap 64-bit map key instead of hashing the
// full byte slice on every lookup, the same tradeoff gbc's own test
// harness makes when content-addressing source files.
type poolEntry struct {
	payload []byte
	label   Label
}

// Emitter holds all per-translation-unit and per-function mutable state
// the generator needs: the register file, the node<->register and
// node<->spill-offset side tables (DESIGN NOTES: bundling the C++
// original's global mutable state into a single context threaded
// explicitly through emission, rather than storing register/offset
// fields on the AST nodes themselves), the string pool, and the
// break-target stack.
type Emitter struct {
	out io.Writer

	regs []*Register

	// nodeReg is the node->register half of the reg<->node bijection
	// (Register.node is the other half) and nodeOffset is the
	// spill-offset table described in DATA MODEL, §3. assign (alloc.go)
	// is the only place nodeReg is mutated, alongside a Register's node
	// field; load (alloc.go) records spill offsets in nodeOffset.
	nodeReg    map[ast.Expr]*Register
	nodeOffset map[ast.Expr]int

	pool      map[uint64][]*poolEntry
	poolOrder []Label
	poolBytes map[Label][]byte

	labelNext int

	frameOffset int
	funcName    string
	breakStack  []Label
}

// New creates an Emitter that writes AT&T-syntax assembly to out.
func New(out io.Writer) *Emitter {
	return &Emitter{
		out:        out,
		regs:       newRegisterFile(),
		nodeReg:    make(map[ast.Expr]*Register),
		nodeOffset: make(map[ast.Expr]int),
		pool:       make(map[uint64][]*poolEntry),
		poolBytes:  make(map[Label][]byte),
	}
}

func (e *Emitter) printf(format string, args ...interface{}) {
	fmt.Fprintf(e.out, format, args...)
	fmt.Fprintf(e.out, "\n")
}

func (e *Emitter) newLabel() Label {
	e.labelNext++
	return Label(e.labelNext)
}

// Generate walks prog and writes the whole translation unit's assembly:
// every function definition (§4.4) followed by global/string-pool
// emission (§4.4 "Global emission"). By contract prog has already been
// through internal/sema's Allocate, so every symbol's Offset and every
// function's StackSize are final.
func Generate(prog *ast.Program, out io.Writer) {
	e := New(out)
	for _, fn := range prog.Functions {
		e.function(fn)
	}
	e.globals(prog)
}

// globals emits `.comm` for every non-function global and then flushes
// the string pool into `.data`, in first-use order (§4.4, EXTERNAL
// INTERFACES §6).
func (e *Emitter) globals(prog *ast.Program) {
	for _, sym := range prog.Globals {
		e.printf("  .comm %s%s%s, %d", globalPrefix, sym.Name, globalSuffix, sym.Type.Size())
	}

	if len(e.poolOrder) == 0 {
		return
	}

	e.printf("  .data")
	for _, label := range e.poolOrder {
		e.printf("%s:", label)
		e.printf("  .asciz %q", string(e.poolBytes[label]))
	}
}

// intern looks up payload in the string pool, creating a fresh label on
// first sight (OPERAND WRITER, §4.2). The hash-bucketed pool still
// compares full payload bytes on a hash hit, so hash collisions never
// cause two distinct literals to share a label.
func (e *Emitter) intern(payload []byte) Label {
	h := xxhash.Sum64(payload)
	for _, entry := range e.pool[h] {
		if string(entry.payload) == string(payload) {
			return entry.label
		}
	}
	label := e.newLabel()
	e.pool[h] = append(e.pool[h], &poolEntry{payload: payload, label: label})
	e.poolOrder = append(e.poolOrder, label)
	e.poolBytes[label] = payload
	return label
}
