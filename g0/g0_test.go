// SPDX-License-Identifier: MIT

package g0

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmbarbour/glas/value"
)

func TestTokenizeSplitsWordsAndPunctuation(t *testing.T) {
	toks, err := Tokenize([]byte("copy[drop %3]eq."))
	require.NoError(t, err)
	kinds := make([]TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{
		TokWord, TokLBracket, TokWord, TokWord, TokRBracket, TokWord, TokDot,
	}, kinds)
	assert.Equal(t, "copy", string(toks[0].Word))
	assert.Equal(t, "drop", string(toks[2].Word))
	assert.Equal(t, "%3", string(toks[3].Word))
}

func TestCompileFlatOperatorSequence(t *testing.T) {
	got, err := Compile([]byte("copy swap drop ."))
	require.NoError(t, err)
	want := value.Variant("seq", value.OfList([]value.Value{
		value.Symbol("copy"), value.Symbol("swap"), value.Symbol("drop"),
	}))
	assert.True(t, value.Equal(want, got))
}

func TestCompileNestedBracketsBuildSeq(t *testing.T) {
	got, err := Compile([]byte("[ copy eq ] drop ."))
	require.NoError(t, err)
	inner := value.Variant("seq", value.OfList([]value.Value{
		value.Symbol("copy"), value.Symbol("eq"),
	}))
	want := value.Variant("seq", value.OfList([]value.Value{inner, value.Symbol("drop")}))
	assert.True(t, value.Equal(want, got))
}

func TestCompileNumeralLiteral(t *testing.T) {
	got, err := Compile([]byte("%42 add ."))
	require.NoError(t, err)
	want := value.Variant("seq", value.OfList([]value.Value{
		value.Variant("data", value.OfNat(42)), value.Symbol("add"),
	}))
	assert.True(t, value.Equal(want, got))
}

func TestCompileRejectsUnknownWord(t *testing.T) {
	_, err := Compile([]byte("frobnicate ."))
	assert.Error(t, err)
}

func TestCompileRejectsUnmatchedBracket(t *testing.T) {
	_, err := Compile([]byte("[ copy ."))
	assert.Error(t, err)
}

func TestCompileRejectsTrailingContent(t *testing.T) {
	_, err := Compile([]byte("copy . drop"))
	assert.Error(t, err)
}

func TestCompileRejectsMissingTerminator(t *testing.T) {
	_, err := Compile([]byte("copy drop"))
	assert.Error(t, err)
}

func TestCompilerProgramIsIdentity(t *testing.T) {
	p := CompilerProgram()
	label, payload, ok := value.AsVariant(p)
	require.True(t, ok)
	assert.Equal(t, "seq", label)
	elems, ok := value.AsListElems(payload)
	require.True(t, ok)
	assert.Empty(t, elems)
}
