// SPDX-License-Identifier: MIT

// Package valueref parses and resolves the ValueRef syntax the CLI
// accepts for --extract/--run/--print/--arity: a module name, optionally
// local to the current directory, followed by zero or more dotted
// record-field labels.
package valueref

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/dmbarbour/glas/value"
)

// Ref is a parsed ValueRef: a module lookup plus a chain of record
// field labels to index into its value.
type Ref struct {
	Local      bool
	ModuleName string
	Path       []string
}

// ErrEmpty reports a ValueRef with no module name, such as "." or "".
var ErrEmpty = errors.New("valueref: empty module name")

// Parse splits s into a Ref. A leading "./" marks a local reference;
// everything after is a dot-separated module-name-then-labels chain.
func Parse(s string) (Ref, error) {
	local := false
	if strings.HasPrefix(s, "./") {
		local = true
		s = s[len("./"):]
	}
	parts := strings.Split(s, ".")
	if parts[0] == "" {
		return Ref{}, ErrEmpty
	}
	return Ref{Local: local, ModuleName: parts[0], Path: parts[1:]}, nil
}

func (r Ref) String() string {
	s := r.ModuleName
	if len(r.Path) > 0 {
		s += "." + strings.Join(r.Path, ".")
	}
	if r.Local {
		return "./" + s
	}
	return s
}

// ModuleLoader is the subset of loader.Loader a Resolve needs, kept
// narrow so this package does not need to import loader directly.
type ModuleLoader interface {
	LoadGlobal(name string) (value.Value, error)
	LoadLocal(dir, name string) (value.Value, error)
}

// Resolve loads r's module (from dir if r is local) and walks its
// dotted Path via record_lookup, failing if any label is absent.
func Resolve(l ModuleLoader, dir string, r Ref) (value.Value, error) {
	var v value.Value
	var err error
	if r.Local {
		v, err = l.LoadLocal(dir, r.ModuleName)
	} else {
		v, err = l.LoadGlobal(r.ModuleName)
	}
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "valueref: load %s", r.ModuleName)
	}
	for _, label := range r.Path {
		next, ok := value.RecordLookup(value.ToKey(value.Symbol(label)), v)
		if !ok {
			return value.Value{}, errors.Errorf("valueref: %s has no field %q", r, label)
		}
		v = next
	}
	return v, nil
}
