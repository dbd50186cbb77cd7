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
	"bytes"
	"strings"
	"testing"

	"github.com/anushaKankipati/Simple-C-Compiler/internal/diag"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/lexer"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/parser"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/sema"
)

// compile runs the whole pipeline (lex, parse, stack layout, code
// generation) and returns the emitted assembly text. Tests fail loudly on
// any lex/parse diagnostic rather than silently compiling a malformed
// program.
func compile(t *testing.T, src string) string {
	t.Helper()
	var diagBuf bytes.Buffer
	r := diag.New(&diagBuf, "<test>")
	toks := lexer.New([]byte(src), r).Lex()
	prog := parser.New(toks, r).Parse()
	if r.Count() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diagBuf.String())
	}
	sema.AllocateProgram(prog)

	var out bytes.Buffer
	Generate(prog, &out)
	return out.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	out := compile(t, `int main() { return (1 + 2) * 3 - 4 / 2; }`)
	for _, want := range []string{"addl", "imull", "subl", "idivl"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShortCircuitAndEmitsTwoTests(t *testing.T) {
	out := compile(t, `int main() { int a; int b; return a && b; }`)
	if n := strings.Count(out, "je .L"); n != 2 {
		t.Errorf("je count = %d, want 2 (one per operand)\n%s", n, out)
	}
}

func TestShortCircuitOrEmitsTwoTests(t *testing.T) {
	out := compile(t, `int main() { int a; int b; return a || b; }`)
	if n := strings.Count(out, "jne .L"); n != 2 {
		t.Errorf("jne count = %d, want 2 (one per operand)\n%s", n, out)
	}
}

func TestLoopWithBreakEmitsJumpToExit(t *testing.T) {
	out := compile(t, `
		int main() {
			int i;
			for (i = 0; i < 10; i = i + 1) {
				if (i == 5) break;
			}
			return i;
		}
	`)
	if !strings.Contains(out, "jmp .L") {
		t.Errorf("expected a jmp to the loop's exit label:\n%s", out)
	}
	if strings.Count(out, "cmpl") < 2 {
		t.Errorf("expected at least two compares (loop condition + break condition):\n%s", out)
	}
}

func TestCallWithMoreThanSixArgumentsPadsStack(t *testing.T) {
	out := compile(t, `int main() { return f(1,2,3,4,5,6,7); }`)
	if !strings.Contains(out, "subq $8, %rsp") {
		t.Errorf("expected an 8-byte alignment pad before the single stack arg:\n%s", out)
	}
	if !strings.Contains(out, "addq $16, %rsp") {
		t.Errorf("expected a 16-byte teardown (8 pad + 1*8 pushed arg):\n%s", out)
	}
	if !strings.Contains(out, "call f") {
		t.Errorf("expected a call to f:\n%s", out)
	}
}

func TestCallWithExactlySixArgumentsNoStackAdjustment(t *testing.T) {
	out := compile(t, `int main() { return f(1,2,3,4,5,6); }`)
	// The frame prologue always subtracts a register ("subq %rax, %rsp"),
	// never an immediate; "subq $" only ever appears for stack-argument
	// alignment padding, which a <=6-argument call never needs.
	if strings.Contains(out, "subq $") {
		t.Errorf("expected no argument-padding subq for a 6-argument call:\n%s", out)
	}
}

func TestPointerDereferenceAndAssignment(t *testing.T) {
	out := compile(t, `
		int main() {
			int x;
			int *p;
			p = &x;
			*p = *p + 1;
			return x;
		}
	`)
	if !strings.Contains(out, "leaq") {
		t.Errorf("expected a leaq for &x:\n%s", out)
	}
	if !strings.Contains(out, ", (%r") {
		t.Errorf("expected a store through the pointer, e.g. \"movl %%eax, (%%rcx)\":\n%s", out)
	}
}

// TestDereferenceAssignmentFromCallReloadsPointer guards against storing
// through a pointer register that a call's own register eviction (§4.5
// step 4) has since spilled: the pointer must be re-ensured after the
// call, not read from a stale handle acquired before it.
func TestDereferenceAssignmentFromCallReloadsPointer(t *testing.T) {
	out := compile(t, `
		int *p;
		int x;
		int f() { return 9; }
		int main() {
			p = &x;
			*p = f();
			return x;
		}
	`)
	if !strings.Contains(out, "call f") {
		t.Fatalf("expected a call to f:\n%s", out)
	}

	var storeLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, ", (%r") {
			storeLine = line
		}
	}
	if storeLine == "" {
		t.Fatalf("expected a store through the pointer:\n%s", out)
	}
	if strings.Contains(storeLine, "(%rax)") {
		t.Errorf("store addresses (%%rax), the call's own result register, instead of p's reloaded register: %q\n%s", storeLine, out)
	}
}

func TestExplicitCastWideningSignExtends(t *testing.T) {
	out := compile(t, `int main() { char c; return (int)c; }`)
	if !strings.Contains(out, "movsbl") {
		t.Errorf("expected movsbl for a char->int cast:\n%s", out)
	}
}

func TestStringPoolDedupesIdenticalLiterals(t *testing.T) {
	out := compile(t, `
		int main() {
			printf("hi");
			printf("hi");
			printf("bye");
			return 0;
		}
	`)
	if strings.Count(out, `.asciz "hi"`) != 1 {
		t.Errorf("expected exactly one .asciz entry for the duplicated literal:\n%s", out)
	}
	if strings.Count(out, `.asciz "bye"`) != 1 {
		t.Errorf("expected exactly one .asciz entry for the distinct literal:\n%s", out)
	}
}

func TestFrameSizeSymbolIsSetAndAligned(t *testing.T) {
	out := compile(t, `int main() { return 0; }`)
	if !strings.Contains(out, "main.size") {
		t.Errorf("expected a main.size frame-size symbol:\n%s", out)
	}
	if !strings.Contains(out, ".set main.size,") {
		t.Errorf("expected a .set directive fixing up main.size:\n%s", out)
	}
	if !strings.Contains(out, ".set main.size, 0\n") {
		t.Errorf("expected main.size to be 0 (a multiple of 16) with no locals or spills:\n%s", out)
	}
}

func TestGlobalEmitsComm(t *testing.T) {
	out := compile(t, `
		int counter;
		int main() { counter = 1; return counter; }
	`)
	if !strings.Contains(out, ".comm counter, 4") {
		t.Errorf("expected a .comm directive for the global:\n%s", out)
	}
}
