// SPDX-License-Identifier: MIT

package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/effect"
	"github.com/dmbarbour/glas/interp"
	"github.com/dmbarbour/glas/program"
	"github.com/dmbarbour/glas/value"
)

// g0Compiler compiles a g0 source file's bytes into a program value.
// It is a slot rather than a fixed function so the g0 bootstrap can
// swap the native implementation for an interpreted one and recompile.
type g0Compiler func(src []byte) (value.Value, error)

// cacheEntry remembers one file path's already-computed module value
// or compile error, so a module imported from several places is only
// read and compiled once.
type cacheEntry struct {
	val value.Value
	err error
}

// Loader resolves module names to compiled values and implements
// effect.Handler so a running program can load modules itself. It is
// a plain struct with a mutable cache and loading stack rather than a
// tree of closures: the loader hands itself to the interpreter as the
// handler for every compile program it runs, so it must already exist
// as an addressable object before any of that running starts, and its
// g0 compiler slot is filled in after construction during bootstrap.
type Loader struct {
	globalDirs []string
	base       effect.Handler
	logger     *effect.TxLogger
	g0Compile  g0Compiler

	cache map[string]*cacheEntry
	stack []string
}

// New builds a Loader over the given global search directories,
// forwarding any effect besides log/load to base and flushing logged
// messages to sink on outermost commit.
func New(globalDirs []string, sink *zap.Logger, base effect.Handler) *Loader {
	return &Loader{
		globalDirs: globalDirs,
		base:       base,
		logger:     effect.NewTxLogger(sink, nil),
		g0Compile:  nil,
		cache:      make(map[string]*cacheEntry),
	}
}

// LoadGlobal resolves name against the configured global search path
// and returns its compiled module value.
func (l *Loader) LoadGlobal(name string) (value.Value, error) {
	path, suffixes, err := resolveInDirs(l.globalDirs, name)
	if err != nil {
		return value.Value{}, err
	}
	return l.compilePath(path, suffixes)
}

// LoadLocal resolves name relative to dir and returns its compiled
// module value.
func (l *Loader) LoadLocal(dir, name string) (value.Value, error) {
	path, suffixes, err := resolveInDir(dir, name)
	if err != nil {
		return value.Value{}, err
	}
	return l.compilePath(path, suffixes)
}

func (l *Loader) compilePath(path string, suffixes []string) (value.Value, error) {
	if e, ok := l.cache[path]; ok {
		return e.val, e.err
	}
	for _, p := range l.stack {
		if p == path {
			chain := append(append([]string(nil), l.stack...), path)
			err := errors.Wrapf(ErrCycle, "%s", strings.Join(chain, " -> "))
			l.cache[path] = &cacheEntry{err: err}
			return value.Value{}, err
		}
	}

	l.stack = append(l.stack, path)
	val, err := l.compileFresh(path, suffixes)
	l.stack = l.stack[:len(l.stack)-1]

	l.cache[path] = &cacheEntry{val: val, err: err}
	return val, err
}

func (l *Loader) compileFresh(path string, suffixes []string) (value.Value, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "loader: read %s", path)
	}
	val := value.OfBinary(raw)
	for _, ext := range suffixes {
		val, err = l.applyLanguage(ext, val)
		if err != nil {
			return value.Value{}, errors.Wrapf(err, "loader: compile %s", path)
		}
	}
	return val, nil
}

// applyLanguage runs the single compile step named by ext over val.
// g0 is special-cased to the loader's own g0Compile slot — every other
// extension is resolved as an ordinary language-<ext> module.
func (l *Loader) applyLanguage(ext string, val value.Value) (value.Value, error) {
	if ext == "g0" {
		if l.g0Compile == nil {
			return value.Value{}, errors.New("loader: g0 compiler not initialized")
		}
		raw, err := valueBytes(val)
		if err != nil {
			return value.Value{}, errors.Wrap(ErrBadCompiler, err.Error())
		}
		out, err := l.g0Compile(raw)
		if err != nil {
			return value.Value{}, errors.Wrap(err, "language-g0")
		}
		return out, nil
	}

	langName := "language-" + ext
	langVal, err := l.LoadGlobal(langName)
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "resolve %s", langName)
	}
	compileProg, ok := value.RecordLookup(value.ToKey(value.Symbol("compile")), langVal)
	if !ok {
		return value.Value{}, errors.Wrapf(ErrBadCompiler, "%s has no compile field", langName)
	}
	ast, err := program.Validate(compileProg)
	if err != nil {
		return value.Value{}, errors.Wrapf(ErrBadCompiler, "%s: %v", langName, err)
	}
	l.Try()
	out, runErr := interp.Compile(ast).Run(l, []value.Value{val})
	if runErr != nil {
		l.Abort()
		return value.Value{}, errors.Wrapf(runErr, "%s: compile program failed", langName)
	}
	if len(out) != 1 {
		l.Abort()
		return value.Value{}, errors.Wrapf(ErrArityMismatch, "%s: compile produced %d values, want 1", langName, len(out))
	}
	l.Commit()
	return out[0], nil
}

func valueBytes(v value.Value) ([]byte, error) {
	bits, ok := value.AsBits(v)
	if !ok {
		return nil, errors.New("value is not byte-aligned")
	}
	return bitstring.ToBytes(bits)
}

// currentDir reports the directory of the module currently being
// compiled, for resolving load:local: requests.
func (l *Loader) currentDir() (string, bool) {
	if len(l.stack) == 0 {
		return "", false
	}
	return filepath.Dir(l.stack[len(l.stack)-1]), true
}
