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

	"github.com/anushaKankipati/Simple-C-Compiler/internal/ast"
)

// operand renders node as an AT&T assembly operand (§4.2): its register
// if it currently has one, otherwise a kind-specific spelling — an
// immediate for a literal, a global or %rbp-relative address for an
// identifier, a pool label for a string, or the node's own spill slot
// for anything else.
func (e *Emitter) operand(node ast.Expr) string {
	if reg, ok := e.nodeReg[node]; ok {
		return reg.name(node.Type().Size())
	}

	switch n := node.(type) {
	case *ast.Number:
		return fmt.Sprintf("$%d", n.Value)

	case *ast.Ident:
		if n.Sym.Offset == 0 {
			return globalPrefix + n.Sym.Name + globalSuffix
		}
		return fmt.Sprintf("%d(%%rbp)", n.Sym.Offset)

	case *ast.String:
		// A string literal's value is its pool label's address, not the
		// bytes stored there — the same $-immediate spelling a Number
		// uses, not the bare-symbol spelling a global Identifier's value
		// access uses.
		return fmt.Sprintf("$%s", e.intern(n.Value))
	}

	off, ok := e.nodeOffset[node]
	if !ok || off == 0 {
		panic("codegen: operand of a spilled node with no stack offset")
	}
	return fmt.Sprintf("%d(%%rbp)", off)
}
