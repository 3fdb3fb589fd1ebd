// SPDX-License-Identifier: MIT

// Package program validates program Values against the reserved
// operator vocabulary and recursive shape grammar, and statically
// infers their stack arity.
//
// A Program is just a Value (see the value package); this package adds
// no parallel tree representation, only a validated wrapper (AST) and
// pure functions over it, mirroring a validate-then-compile staging
// rather than re-parsing on every interpreter step.
package program

import (
	"github.com/pkg/errors"

	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/value"
)

// AST is a Value known to satisfy the program grammar (§3.5): every
// recursive position is one of the allowed shapes and every operator
// leaf is a recognized reserved label.
type AST struct {
	v value.Value
}

// Value returns the underlying program Value.
func (a AST) Value() value.Value { return a.v }

// reservedOps is the operator arity table (§6.1/§4.5). fail, which
// always fails, has the entry FailArity(0) like any other operator.
var reservedOps = map[string]Arity{
	"copy":  FixedArity(1, 2),
	"drop":  FixedArity(1, 0),
	"swap":  FixedArity(2, 2),
	"eq":    FixedArity(2, 0),
	"fail":  FailArity(0),
	"eff":   FixedArity(1, 1),
	"get":   FixedArity(2, 1),
	"put":   FixedArity(3, 1),
	"del":   FixedArity(2, 1),
	"pushl": FixedArity(2, 1),
	"popl":  FixedArity(1, 2),
	"pushr": FixedArity(2, 1),
	"popr":  FixedArity(1, 2),
	"join":  FixedArity(2, 1),
	"split": FixedArity(2, 2),
	"len":   FixedArity(1, 1),
	"bjoin": FixedArity(2, 1),
	"bsplit": FixedArity(2, 2),
	"blen":  FixedArity(1, 1),
	"bneg":  FixedArity(1, 1),
	"bmax":  FixedArity(2, 1),
	"bmin":  FixedArity(2, 1),
	"beq":   FixedArity(2, 0),
	"add":   FixedArity(2, 2),
	"mul":   FixedArity(2, 2),
	"sub":   FixedArity(2, 1),
	"div":   FixedArity(2, 2),
}

// IsReservedOp reports whether name is a recognized operator label.
func IsReservedOp(name string) bool {
	_, ok := reservedOps[name]
	return ok
}

// Nop is the canonical no-op program, seq:[].
func Nop() value.Value { return value.Variant("seq", value.OfList(nil)) }

func fieldKey(name string) bitstring.Bits { return value.ToKey(value.Symbol(name)) }

func field(record value.Value, name string) (value.Value, bool) {
	return value.RecordLookup(fieldKey(name), record)
}

// Validate checks v against the program grammar, returning an AST on
// success.
func Validate(v value.Value) (AST, error) {
	if err := validate(v); err != nil {
		return AST{}, err
	}
	return AST{v: v}, nil
}

func validate(v value.Value) error {
	if name, ok := value.AsOperator(v); ok {
		if !IsReservedOp(name) {
			return errors.Errorf("program: %q is not a reserved operator", name)
		}
		return nil
	}
	label, payload, ok := value.AsVariant(v)
	if !ok {
		return errors.New("program: value matches no recognized program shape")
	}
	switch label {
	case "dip":
		return errors.Wrap(validate(payload), "dip")
	case "data", "note":
		return nil
	case "seq":
		elems, ok := value.AsListElems(payload)
		if !ok {
			return errors.New("program: seq payload is not a list")
		}
		for i, p := range elems {
			if err := validate(p); err != nil {
				return errors.Wrapf(err, "seq[%d]", i)
			}
		}
		return nil
	case "cond":
		return validateCond(payload)
	case "loop":
		return validateLoop(payload)
	case "env":
		return validateEnv(payload)
	case "prog":
		return validateProg(payload)
	default:
		return errors.Errorf("program: unrecognized program variant %q", label)
	}
}

func validateCond(rec value.Value) error {
	tryP, ok := field(rec, "try")
	if !ok {
		return errors.New("program: cond missing required 'try' field")
	}
	if err := validate(tryP); err != nil {
		return errors.Wrap(err, "cond.try")
	}
	if thenP, ok := field(rec, "then"); ok {
		if err := validate(thenP); err != nil {
			return errors.Wrap(err, "cond.then")
		}
	}
	if elseP, ok := field(rec, "else"); ok {
		if err := validate(elseP); err != nil {
			return errors.Wrap(err, "cond.else")
		}
	}
	return nil
}

func validateLoop(rec value.Value) error {
	whileP, ok := field(rec, "while")
	if !ok {
		return errors.New("program: loop missing required 'while' field")
	}
	doP, ok := field(rec, "do")
	if !ok {
		return errors.New("program: loop missing required 'do' field")
	}
	if err := validate(whileP); err != nil {
		return errors.Wrap(err, "loop.while")
	}
	if err := validate(doP); err != nil {
		return errors.Wrap(err, "loop.do")
	}
	return nil
}

func validateEnv(rec value.Value) error {
	withP, ok := field(rec, "with")
	if !ok {
		return errors.New("program: env missing required 'with' field")
	}
	doP, ok := field(rec, "do")
	if !ok {
		return errors.New("program: env missing required 'do' field")
	}
	if err := validate(withP); err != nil {
		return errors.Wrap(err, "env.with")
	}
	if err := validate(doP); err != nil {
		return errors.Wrap(err, "env.do")
	}
	return nil
}

func validateProg(rec value.Value) error {
	doP, ok := field(rec, "do")
	if !ok {
		return errors.New("program: prog missing required 'do' field")
	}
	return errors.Wrap(validate(doP), "prog.do")
}

// InferArity computes a's static stack arity per §4.5's composite rules.
func InferArity(a AST) Arity { return inferArity(a.v) }

func inferArity(v value.Value) Arity {
	if name, ok := value.AsOperator(v); ok {
		if ar, known := reservedOps[name]; known {
			return ar
		}
		return DynArity
	}
	label, payload, ok := value.AsVariant(v)
	if !ok {
		return DynArity
	}
	switch label {
	case "dip":
		inner := inferArity(payload)
		switch inner.Kind {
		case Fixed:
			return FixedArity(inner.In+1, inner.Out+1)
		case Failing:
			return FailArity(inner.In + 1)
		default:
			return DynArity
		}
	case "data":
		return FixedArity(0, 1)
	case "note":
		return FixedArity(0, 0)
	case "seq":
		elems, ok := value.AsListElems(payload)
		if !ok {
			return DynArity
		}
		return inferSeq(elems)
	case "cond":
		return inferCond(payload)
	case "loop":
		return inferLoop(payload)
	case "env":
		return inferEnv(payload)
	case "prog":
		return inferProg(payload)
	default:
		return DynArity
	}
}

// inferSeq composes arities left to right: the aggregate input is the
// max required at any prefix, the aggregate output is the final
// remainder (§4.5).
func inferSeq(elems []value.Value) Arity {
	height := 0
	maxIn := 0
	for _, p := range elems {
		ar := inferArity(p)
		switch ar.Kind {
		case Dynamic:
			return DynArity
		case Failing:
			need := ar.In - height
			if need > maxIn {
				maxIn = need
			}
			return FailArity(maxIn)
		default:
			need := ar.In - height
			if need > maxIn {
				maxIn = need
			}
			height += ar.Net()
		}
	}
	return FixedArity(maxIn, maxIn+height)
}

func nopProgramValue() value.Value { return Nop() }

func inferCond(rec value.Value) Arity {
	tryP, _ := field(rec, "try")
	thenP, hasThen := field(rec, "then")
	if !hasThen {
		thenP = nopProgramValue()
	}
	elseP, hasElse := field(rec, "else")
	if !hasElse {
		elseP = nopProgramValue()
	}
	seqArity := inferSeq([]value.Value{tryP, thenP})
	elseArity := inferArity(elseP)
	if seqArity.Kind == Dynamic || elseArity.Kind == Dynamic {
		return DynArity
	}
	in := seqArity.In
	if elseArity.In > in {
		in = elseArity.In
	}
	switch {
	case seqArity.Kind == Fixed && elseArity.Kind == Fixed:
		if seqArity.Net() != elseArity.Net() {
			return DynArity
		}
		return FixedArity(in, in+seqArity.Net())
	case seqArity.Kind == Fixed:
		return FixedArity(in, in+seqArity.Net())
	case elseArity.Kind == Fixed:
		return FixedArity(in, in+elseArity.Net())
	default:
		return FailArity(in)
	}
}

func inferLoop(rec value.Value) Arity {
	whileP, _ := field(rec, "while")
	doP, _ := field(rec, "do")
	inner := inferSeq([]value.Value{whileP, doP})
	switch inner.Kind {
	case Fixed:
		if inner.In != inner.Out {
			return DynArity
		}
		return FixedArity(inner.In, inner.In)
	case Failing:
		return FixedArity(inner.In, inner.In)
	default:
		return DynArity
	}
}

func inferEnv(rec value.Value) Arity {
	withP, _ := field(rec, "with")
	doP, _ := field(rec, "do")
	withArity := inferArity(withP)
	netZero := withArity.Kind == Fixed &&
		((withArity.In == 1 && withArity.Out == 1) || (withArity.In == 2 && withArity.Out == 2))
	if !netZero {
		return DynArity
	}
	return inferArity(doP)
}

func inferProg(rec value.Value) Arity {
	doP, _ := field(rec, "do")
	inferred := inferArity(doP)
	annoRec, hasAnno := field(rec, "arity")
	if !hasAnno {
		return inferred
	}
	iv, okI := fieldNat(annoRec, "i")
	ov, okO := fieldNat(annoRec, "o")
	if !okI || !okO || inferred.Kind != Fixed {
		return DynArity
	}
	ip, op := int(iv), int(ov)
	if ip >= inferred.In && (op-ip) == inferred.Net() {
		return FixedArity(ip, op)
	}
	return DynArity
}

func fieldNat(rec value.Value, name string) (uint64, bool) {
	v, ok := field(rec, name)
	if !ok {
		return 0, false
	}
	bs, ok := value.AsBits(v)
	if !ok {
		return 0, false
	}
	n, err := bitstring.ToNat(bs)
	if err != nil {
		return 0, false
	}
	return n, true
}
