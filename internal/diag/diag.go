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

// Package diag collects lex/parse/semantic errors in the
// "file:line: message" convention. The code generator never reports user-visible errors itself;
// by the time a *ast.Program reaches codegen, diag.Count() is assumed zero.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Reporter accumulates errors for one compilation unit and writes them to
// an output stream, coloring the message text red when that stream is a
// real terminal (or ForceColor is set) and truncating a message that would
// overrun the terminal's width.
type Reporter struct {
	out   io.Writer
	file  string
	count int
	color bool
	width int
}

// New returns a Reporter writing to w. file is the name shown in each
// diagnostic line (e.g. the input path, or "<stdin>").
func New(w io.Writer, file string) *Reporter {
	color := false
	width := 0
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		if n, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = n
		}
	}
	return &Reporter{out: w, file: file, color: color, width: width}
}

// Errorf reports an error at the given 1-based line and increments the
// error count. It does not abort; the driver consults Count() afterward.
// A message that would overrun a known terminal width is truncated rather
// than left to wrap mid-word.
func (r *Reporter) Errorf(line int, format string, args ...interface{}) {
	r.count++
	msg := fmt.Sprintf(format, args...)
	if r.width > 0 {
		prefixLen := len(r.file) + len(":N: ")
		if budget := r.width - prefixLen; budget > 3 && len(msg) > budget {
			msg = msg[:budget-3] + "..."
		}
	}
	if r.color {
		fmt.Fprintf(r.out, "%s:%d: \x1b[31m%s\x1b[0m\n", r.file, line, msg)
	} else {
		fmt.Fprintf(r.out, "%s:%d: %s\n", r.file, line, msg)
	}
}

// Count returns the number of errors reported so far. Codegen must not be
// invoked while Count() is positive.
func (r *Reporter) Count() int {
	return r.count
}

// ForceColor overrides the isatty probe New performed at construction.
// The driver needs this when diagnostics are first collected into a
// buffer (to gate code generation on Count()) and only flushed to the
// real terminal afterward, at which point the buffer itself no longer
// looks like a *os.File to New.
func (r *Reporter) ForceColor(color bool) {
	r.color = color
}
