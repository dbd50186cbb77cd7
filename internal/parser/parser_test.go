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
	"bytes"
	"testing"

	"github.com/anushaKankipati/Simple-C-Compiler/internal/ast"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/diag"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Reporter) {
	var buf bytes.Buffer
	r := diag.New(&buf, "<test>")
	toks := lexer.New([]byte(src), r).Lex()
	prog := New(toks, r).Parse()
	if r.Count() != 0 {
		t.Logf("diagnostics:\n%s", buf.String())
	}
	return prog, r
}

func TestParseSimpleFunction(t *testing.T) {
	prog, r := parse(t, `int main() { return 1 + 2 * 3; }`)
	if r.Count() != 0 {
		t.Fatalf("unexpected parse errors (Count=%d)", r.Count())
	}
	if len(prog.Functions) != 1 {
		t.Fatalf("len(Functions) = %d, want 1", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "main" {
		t.Errorf("Name = %q, want main", fn.Name)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("len(Body.Stmts) = %d, want 1", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("Stmts[0] is %T, want *ast.Return", fn.Body.Stmts[0])
	}
	bin, ok := ret.X.(*ast.Binary)
	if !ok || bin.Op != ast.Add {
		t.Fatalf("return expression root = %#v, want top-level Add", ret.X)
	}
}

func TestParseBreakOutsideLoopIsError(t *testing.T) {
	_, r := parse(t, `int main() { break; }`)
	if r.Count() == 0 {
		t.Fatalf("expected an error for break outside a loop")
	}
}

func TestParseBreakInsideLoopIsFine(t *testing.T) {
	_, r := parse(t, `
		int main() {
			int i;
			for (i = 0; i < 10; i = i + 1) {
				if (i == 5) break;
			}
			return i;
		}
	`)
	if r.Count() != 0 {
		t.Fatalf("unexpected errors, Count=%d", r.Count())
	}
}

func TestParsePointerDeref(t *testing.T) {
	prog, r := parse(t, `
		int main() {
			int x;
			int *p;
			p = &x;
			*p = *p + 1;
			return x;
		}
	`)
	if r.Count() != 0 {
		t.Fatalf("unexpected errors, Count=%d", r.Count())
	}
	fn := prog.Functions[0]
	if len(fn.Locals) != 2 {
		t.Fatalf("len(Locals) = %d, want 2", len(fn.Locals))
	}
}

func TestParseCallWithManyArguments(t *testing.T) {
	prog, r := parse(t, `int main() { return f(1,2,3,4,5,6,7,8); }`)
	if r.Count() != 0 {
		t.Fatalf("unexpected errors, Count=%d", r.Count())
	}
	ret := prog.Functions[0].Body.Stmts[0].(*ast.Return)
	call, ok := ret.X.(*ast.Call)
	if !ok {
		t.Fatalf("return expression is %T, want *ast.Call", ret.X)
	}
	if len(call.Args) != 8 {
		t.Errorf("len(Args) = %d, want 8", len(call.Args))
	}
}

func TestParseMoreThanSixParamsIsError(t *testing.T) {
	_, r := parse(t, `int f(int a, int b, int c, int d, int e, int f2, int g) { return 0; }`)
	if r.Count() == 0 {
		t.Fatalf("expected an error for a 7-parameter function definition")
	}
}
