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

package lexer

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/anushaKankipati/Simple-C-Compiler/internal/diag"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexBasicProgram(t *testing.T) {
	src := `int main() { return (1+2)*3 - 4/2; }`
	var buf bytes.Buffer
	r := diag.New(&buf, "<test>")
	toks := New([]byte(src), r).Lex()

	if r.Count() != 0 {
		t.Fatalf("unexpected lex errors: %s", buf.String())
	}

	want := []token.Kind{
		token.KEYWORD, token.IDENT, token.PUNCT, token.PUNCT, token.PUNCT,
		token.KEYWORD, token.PUNCT, token.NUMBER, token.PUNCT, token.NUMBER,
		token.PUNCT, token.PUNCT, token.NUMBER, token.PUNCT, token.NUMBER,
		token.PUNCT, token.NUMBER, token.PUNCT, token.PUNCT,
		token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexStringEscapes(t *testing.T) {
	src := `"a\nb\tc\\d"`
	var buf bytes.Buffer
	r := diag.New(&buf, "<test>")
	toks := New([]byte(src), r).Lex()

	if r.Count() != 0 {
		t.Fatalf("unexpected lex errors: %s", buf.String())
	}
	if len(toks) < 1 || toks[0].Kind != token.STRING {
		t.Fatalf("expected a STRING token, got %+v", toks)
	}
	want := "a\nb\tc\\d"
	if toks[0].Text != want {
		t.Errorf("decoded payload = %q, want %q", toks[0].Text, want)
	}
}

func TestLexUnterminatedStringReportsError(t *testing.T) {
	var buf bytes.Buffer
	r := diag.New(&buf, "<test>")
	New([]byte(`"abc`), r).Lex()
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
}

func TestLexCharLiteral(t *testing.T) {
	var buf bytes.Buffer
	r := diag.New(&buf, "<test>")
	toks := New([]byte(`'A'`), r).Lex()
	if r.Count() != 0 {
		t.Fatalf("unexpected lex errors: %s", buf.String())
	}
	if toks[0].IVal != 'A' {
		t.Errorf("IVal = %d, want %d", toks[0].IVal, 'A')
	}
}
