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

// Package config holds the driver's environment-derived settings: the
// few knobs that make sense to flip without a recompile (colored
// diagnostics, the AST dump, the compile-stats banner) live here rather
// than as a pile of ad hoc os.Getenv calls scattered through cmd/scc.
package config

import "github.com/xyproto/env/v2"

// Config is the resolved set of driver options, read once at startup.
type Config struct {
	// Color forces diagnostic coloring on or off, overriding the
	// isatty probe internal/diag otherwise does on its own.
	Color bool

	// DumpAST requests an AST dump (a debug aid in cmd/scc, wired
	// through goforj/godump) before code generation runs.
	DumpAST bool

	// Stats requests a one-line compile-stats banner on stderr after a
	// successful compile.
	Stats bool
}

// FromEnviron resolves a Config from SCC_COLOR, SCC_DUMP_AST and
// SCC_STATS, each defaulting to false when unset or unparseable.
func FromEnviron() Config {
	return Config{
		Color:   env.Bool("SCC_COLOR"),
		DumpAST: env.Bool("SCC_DUMP_AST"),
		Stats:   env.Bool("SCC_STATS"),
	}
}
