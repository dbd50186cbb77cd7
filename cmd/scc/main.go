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

// Command scc is the Simple C compiler driver: it reads a translation
// unit from standard input and writes x86-64 AT&T assembly to standard
// output (EXTERNAL INTERFACES, §6). It does not invoke an assembler or
// linker; a companion shell flow that does so is out of scope (PURPOSE &
// SCOPE).
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/goforj/godump"
	"golang.org/x/sys/unix"

	"github.com/anushaKankipati/Simple-C-Compiler/internal/codegen"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/config"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/diag"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/lexer"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/parser"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/sema"
	"github.com/anushaKankipati/Simple-C-Compiler/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A downstream consumer of our stdout (`scc | as ... | head`, a
	// truncated pipe in a build system) can close its read end early;
	// without this the resulting SIGPIPE kills the process before it
	// can report a clean exit status.
	signal.Ignore(unix.SIGPIPE)

	cfg := config.FromEnviron()
	sess := session.New()

	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scc: reading standard input: %s\n", err)
		return 1
	}

	var diagBuf bytes.Buffer
	reporter := diag.New(&diagBuf, "<stdin>")
	if cfg.Color {
		reporter.ForceColor(true)
	}

	toks := lexer.New(src, reporter).Lex()
	prog := parser.New(toks, reporter).Parse()

	if reporter.Count() != 0 {
		io.Copy(os.Stderr, &diagBuf)
		fmt.Fprintf(os.Stderr, "scc: %d error(s), no output generated\n", reporter.Count())
		return 1
	}

	sema.AllocateProgram(prog)

	if cfg.DumpAST {
		godump.Dump(prog)
	}

	var out bytes.Buffer
	codegen.Generate(prog, &out)

	if _, err := out.WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "scc: writing assembly: %s\n", err)
		return 1
	}

	if cfg.Stats {
		fmt.Fprintf(os.Stderr, "scc: %s functions=%d globals=%d output=%s\n",
			sess.Banner(), len(prog.Functions), len(prog.Globals), humanize.Bytes(uint64(out.Len())))
	}

	return 0
}
