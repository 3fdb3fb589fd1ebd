// SPDX-License-Identifier: MIT

// Package interp compiles a validated program AST into a tree of Go
// closures and runs it against a data stack and an effect handler.
//
// Control operators that can repeat an unbounded number of times (loop)
// drive a plain Go for loop at run time rather than recursing once per
// iteration, so a long-running program never grows the host call stack
// in proportion to how many times it loops — only in proportion to how
// deeply the program text itself nests.
package interp

import (
	"github.com/pkg/errors"

	"github.com/dmbarbour/glas/effect"
	"github.com/dmbarbour/glas/program"
	"github.com/dmbarbour/glas/value"
)

// ErrFail is returned by Run when the compiled program fails outright
// rather than completing. A glas failure carries no payload of its own;
// it is "no value", not an exception with a message, so ErrFail is a
// bare sentinel.
var ErrFail = errors.New("interp: program failed")

// State is the interpreter's mutable runtime. dip's hidden value and
// env's effect-state are not tracked as separate named stacks here: dip
// hides its value in a local Go variable across a nested call, and each
// env installs a handler that closes over its own state, so the only
// stack that needs explicit representation is the data stack.
type State struct {
	Data    []value.Value
	Handler effect.Handler
}

func (s *State) push(v value.Value) { s.Data = append(s.Data, v) }

func (s *State) pop() value.Value {
	n := len(s.Data)
	v := s.Data[n-1]
	s.Data = s.Data[:n-1]
	return v
}

func (s *State) top() value.Value { return s.Data[len(s.Data)-1] }

// snapshot copies the data stack for a cond/loop transaction boundary.
// A full copy, not just a remembered length, is required: a later
// restore must not observe values some sibling branch pushed into the
// backing array slots a prior pop had freed.
func (s *State) snapshot() []value.Value {
	return append([]value.Value(nil), s.Data...)
}

func (s *State) restore(snap []value.Value) { s.Data = snap }

// op is one compiled program step: it runs against s and reports
// success. On failure the data stack is left in whatever shape the
// failing step happened to leave it; only the operators that can
// observe failure (dip, cond, loop) restore it, matching the
// propagate-until-caught failure model.
type op func(s *State) bool

// Program is a compiled, ready-to-run program.
type Program struct {
	run op
}

// Compile builds a Program from a. a must already have passed
// program.Validate; Compile trusts that and panics on a shape that
// validation should have rejected.
func Compile(a program.AST) Program {
	return Program{run: compile(a.Value())}
}

// Run executes p starting from input as the initial data stack (bottom
// first) and handler as the active effect handler. On success it
// returns the resulting data stack; on failure it returns ErrFail.
func (p Program) Run(handler effect.Handler, input []value.Value) ([]value.Value, error) {
	s := &State{Data: append([]value.Value(nil), input...), Handler: handler}
	if !p.run(s) {
		return nil, ErrFail
	}
	return s.Data, nil
}

func compile(v value.Value) op {
	if name, ok := value.AsOperator(v); ok {
		return compileOperator(name)
	}
	label, payload, ok := value.AsVariant(v)
	if !ok {
		panic("interp: value is not a validated program")
	}
	switch label {
	case "dip":
		return compileDip(payload)
	case "data":
		return compileData(payload)
	case "note":
		return func(s *State) bool { return true }
	case "seq":
		return compileSeq(payload)
	case "cond":
		return compileCond(payload)
	case "loop":
		return compileLoop(payload)
	case "env":
		return compileEnv(payload)
	case "prog":
		return compileProg(payload)
	default:
		panic("interp: value is not a validated program")
	}
}

func compileData(v value.Value) op {
	return func(s *State) bool { s.push(v); return true }
}

// compileDip hides the top of the data stack across p's run and
// restores it on top afterward, on success or failure alike.
func compileDip(p value.Value) op {
	inner := compile(p)
	return func(s *State) bool {
		hidden := s.pop()
		ok := inner(s)
		s.push(hidden)
		return ok
	}
}

func compileSeq(payload value.Value) op {
	elems, ok := value.AsListElems(payload)
	if !ok {
		panic("interp: seq payload is not a list")
	}
	ops := make([]op, len(elems))
	for i, e := range elems {
		ops[i] = compile(e)
	}
	return func(s *State) bool {
		for _, step := range ops {
			if !step(s) {
				return false
			}
		}
		return true
	}
}

func fieldValue(rec value.Value, name string) value.Value {
	v, ok := value.RecordLookup(value.ToKey(value.Symbol(name)), rec)
	if !ok {
		panic("interp: required program field missing after validation: " + name)
	}
	return v
}

func fieldValueOrNop(rec value.Value, name string) value.Value {
	if v, ok := value.RecordLookup(value.ToKey(value.Symbol(name)), rec); ok {
		return v
	}
	return program.Nop()
}

func compileCond(rec value.Value) op {
	tryOp := compile(fieldValue(rec, "try"))
	thenOp := compile(fieldValueOrNop(rec, "then"))
	elseOp := compile(fieldValueOrNop(rec, "else"))
	return func(s *State) bool {
		snap := s.snapshot()
		s.Handler.Try()
		if tryOp(s) {
			s.Handler.Commit()
			return thenOp(s)
		}
		s.Handler.Abort()
		s.restore(snap)
		return elseOp(s)
	}
}

func compileLoop(rec value.Value) op {
	whileOp := compile(fieldValue(rec, "while"))
	doOp := compile(fieldValue(rec, "do"))
	return func(s *State) bool {
		for {
			snap := s.snapshot()
			s.Handler.Try()
			if !whileOp(s) {
				s.Handler.Abort()
				s.restore(snap)
				return true
			}
			s.Handler.Commit()
			if !doOp(s) {
				return false
			}
		}
	}
}

func compileProg(rec value.Value) op {
	return compile(fieldValue(rec, "do"))
}
