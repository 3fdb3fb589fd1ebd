// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/effect"
	"github.com/dmbarbour/glas/interp"
	"github.com/dmbarbour/glas/loader"
	"github.com/dmbarbour/glas/program"
	"github.com/dmbarbour/glas/value"
	"github.com/dmbarbour/glas/valueref"
)

// valueRefResult pairs a resolved value with the Ref it came from, so
// error messages can echo the ValueRef a user actually typed.
type valueRefResult struct {
	ref   valueref.Ref
	value value.Value
}

// runExtract implements --extract: v must be a binary-typed value, and
// its raw bytes are written to stdout unframed.
func runExtract(l *loader.Loader, cwd, raw string) error {
	res, err := resolveRef(l, cwd, raw)
	if err != nil {
		return err
	}
	b, err := valueToBytes(res.value)
	if err != nil {
		return errors.Wrapf(err, "glas: %s is not a binary value", res.ref)
	}
	_, err = os.Stdout.Write(b)
	return err
}

// runPrint implements --print: pretty-print any value.
func runPrint(l *loader.Loader, cwd, raw string) error {
	res, err := resolveRef(l, cwd, raw)
	if err != nil {
		return err
	}
	fmt.Println(res.value.DebugString())
	return nil
}

// runArity implements --arity: res.value must validate as a program.
func runArity(l *loader.Loader, cwd, raw string) error {
	res, err := resolveRef(l, cwd, raw)
	if err != nil {
		return err
	}
	ast, err := program.Validate(res.value)
	if err != nil {
		return errors.Wrapf(err, "glas: %s is not a valid program", res.ref)
	}
	fmt.Println(program.InferArity(ast).String())
	return nil
}

// runRunLoop implements --run: resolve ref to a program and thread its
// argv-derived initial state through runLoop.
func runRunLoop(l *loader.Loader, cwd, raw string, args []string) (int, error) {
	res, err := resolveRef(l, cwd, raw)
	if err != nil {
		return 0, err
	}
	ast, err := program.Validate(res.value)
	if err != nil {
		return 0, errors.Wrapf(err, "glas: %s is not a valid program", res.ref)
	}

	argVals := make([]value.Value, len(args))
	for i, a := range args {
		argVals[i] = value.OfString(a)
	}
	init := value.Variant("init", value.OfList(argVals))
	return runLoop(l, interp.Compile(ast), init)
}

// runLoop threads state through repeated prog.Run calls against h: on
// step:_ it continues with the new state, on halt:<bits> it converts
// the bits to an exit code, and anything else (including a failed run)
// exits nonzero. Each iteration is its own transaction so a TxLogger
// in the handler chain actually flushes per step instead of buffering
// across the whole run.
func runLoop(h effect.Handler, prog interp.Program, state value.Value) (int, error) {
	for {
		h.Try()
		out, runErr := prog.Run(h, []value.Value{state})
		if runErr != nil {
			h.Abort()
			return 1, nil
		}
		if len(out) != 1 {
			h.Abort()
			return 1, nil
		}
		h.Commit()

		tag, payload, ok := value.AsVariant(out[0])
		if !ok {
			return 1, nil
		}
		switch tag {
		case "step":
			state = payload
		case "halt":
			return haltExitCode(payload)
		default:
			return 1, nil
		}
	}
}

// haltExitCode converts up to the last (low-order) 32 bits of a halt
// payload into a process exit code, per §6.3; higher-order bits beyond
// those 32 are dropped.
func haltExitCode(payload value.Value) (int, error) {
	bits, ok := value.AsBits(payload)
	if !ok {
		return 1, nil
	}
	if bits.Len() > 32 {
		_, bits = bitstring.SplitAt(bits.Len()-32, bits)
	}
	n, err := bitstring.ToUint64(bits)
	if err != nil {
		return 1, nil
	}
	return int(n), nil
}

// valueToBytes decodes a binary-typed (list-of-bytes) value into a
// byte slice, failing if it is not byte-list shaped.
func valueToBytes(v value.Value) ([]byte, error) {
	if !v.IsBinary() {
		return nil, errors.New("value is not a binary value")
	}
	elems, ok := value.AsListElems(v)
	if !ok {
		return nil, errors.New("value is not list-shaped")
	}
	out := make([]byte, len(elems))
	for i, e := range elems {
		bits, ok := value.AsBits(e)
		if !ok {
			return nil, errors.Errorf("element %d is not byte-shaped", i)
		}
		b, err := bitstring.ToByte(bits)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = b
	}
	return out, nil
}
