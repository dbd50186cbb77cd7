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

// assign is the single point that writes both halves of the reg<->node
// bijection (DESIGN NOTES). Either argument may be nil: nil/nil is a
// no-op, nil-node clears a register without placing anything in it, and
// node/nil detaches a node from whatever register it held, if any.
func (e *Emitter) assign(node ast.Expr, reg *Register) {
	if node == nil && reg == nil {
		return
	}
	if reg != nil && reg.node != nil {
		delete(e.nodeReg, reg.node)
		reg.node = nil
	}
	if node != nil {
		if old := e.nodeReg[node]; old != nil {
			old.node = nil
			delete(e.nodeReg, node)
		}
	}
	if reg != nil {
		reg.node = node
	}
	if node != nil && reg != nil {
		e.nodeReg[node] = reg
	}
}

// load ensures node ends up in reg, spilling whatever reg currently holds
// first (§4.1). Passing a nil node evicts reg's current occupant without
// loading anything new, the idiom used to force a register free (e.g.
// clearing %rdx ahead of a division, or evicting caller-saved registers
// across a call).
func (e *Emitter) load(node ast.Expr, reg *Register) {
	if reg.node == node {
		return
	}

	if m := reg.node; m != nil {
		e.frameOffset -= m.Type().Size()
		e.nodeOffset[m] = e.frameOffset
		e.printf("  mov%s %s, %d(%%rbp)", suffix(m.Type().Size()), reg.name(m.Type().Size()), e.frameOffset)
	}

	if node != nil {
		e.printf("  mov%s %s, %s", suffix(node.Type().Size()), e.operand(node), reg.name(node.Type().Size()))
	}

	e.assign(node, reg)
}

// getreg returns a free register, spilling the deterministic choice
// registers[0] (%rax) if the file is full (§4.1). The spec calls out
// that this couples correctness to %rax never holding a long-lived value
// except across a call, where it is already evicted by the call
// sequence (DESIGN NOTES, Open Questions); we keep the accident rather
// than introduce a round-robin policy the teacher's own allocator never
// exercised.
func (e *Emitter) getreg() *Register {
	for _, r := range e.regs {
		if r.node == nil {
			return r
		}
	}
	e.load(nil, e.regs[0])
	return e.regs[0]
}

// ensure loads node into a register if it is currently spilled, and
// returns the register it now occupies. Many expression-emission rules
// phrase this as "ensure left is in a register" (§4.3); this is that
// operation.
func (e *Emitter) ensure(node ast.Expr) *Register {
	if reg, ok := e.nodeReg[node]; ok {
		return reg
	}
	reg := e.getreg()
	e.load(node, reg)
	return reg
}

// detach frees whatever register node occupies, if any, without
// spilling. It is the non-register-acquiring half of assign(node, nil),
// spelled out for readability at call sites that are clearing a node
// that is definitely done being read.
func (e *Emitter) detach(node ast.Expr) {
	e.assign(node, nil)
}
