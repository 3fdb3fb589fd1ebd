// SPDX-License-Identifier: MIT

package g0

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/dmbarbour/glas/program"
	"github.com/dmbarbour/glas/value"
)

// CompileTokens parses a single '.'-terminated block of tokens into a
// program Value. Bracketed groups nest as seq, reserved operator words
// become operator symbols, and %<digits> words become data literals.
// Anything after the first '.' is rejected — a g0 file defines exactly
// one block.
func CompileTokens(toks []Token) (value.Value, error) {
	frames := [][]value.Value{nil}
	for i, t := range toks {
		switch t.Kind {
		case TokLBracket:
			frames = append(frames, nil)
		case TokRBracket:
			if len(frames) < 2 {
				return value.Value{}, errors.Errorf("g0: unmatched ']' at token %d", i)
			}
			closed := frames[len(frames)-1]
			frames = frames[:len(frames)-1]
			term := value.Variant("seq", value.OfList(closed))
			frames[len(frames)-1] = append(frames[len(frames)-1], term)
		case TokDot:
			if len(frames) != 1 {
				return value.Value{}, errors.Errorf("g0: '[' left open at end of block")
			}
			if i != len(toks)-1 {
				return value.Value{}, errors.Errorf("g0: trailing content after '.' at token %d", i+1)
			}
			return value.Variant("seq", value.OfList(frames[0])), nil
		default:
			term, err := compileWord(t.Word)
			if err != nil {
				return value.Value{}, errors.Wrapf(err, "token %d", i)
			}
			frames[len(frames)-1] = append(frames[len(frames)-1], term)
		}
	}
	return value.Value{}, errUnterminated
}

func compileWord(w []byte) (value.Value, error) {
	name := string(w)
	if program.IsReservedOp(name) {
		return value.Symbol(name), nil
	}
	if len(w) > 1 && w[0] == '%' {
		n, err := strconv.ParseUint(string(w[1:]), 10, 64)
		if err != nil {
			return value.Value{}, errors.Wrapf(err, "bad numeral literal %q", name)
		}
		return value.Variant("data", value.OfNat(n)), nil
	}
	return value.Value{}, errors.Errorf("g0: %q is not a reserved operator or literal", name)
}

// Compile tokenizes and parses a complete g0 source file into a
// program Value.
func Compile(src []byte) (value.Value, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return value.Value{}, err
	}
	return CompileTokens(toks)
}
