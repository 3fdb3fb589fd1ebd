// SPDX-License-Identifier: MIT

package program_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmbarbour/glas/program"
	"github.com/dmbarbour/glas/value"
)

func op(name string) value.Value { return value.Symbol(name) }

func seq(ps ...value.Value) value.Value { return value.Variant("seq", value.OfList(ps)) }

func recordOf(fields map[string]value.Value) value.Value {
	r := value.Unit()
	for k, v := range fields {
		r = value.RecordInsert(value.ToKey(value.Symbol(k)), v, r)
	}
	return r
}

func TestValidateReservedOp(t *testing.T) {
	_, err := program.Validate(op("copy"))
	require.NoError(t, err)
}

func TestValidateRejectsUnknownOp(t *testing.T) {
	_, err := program.Validate(value.Symbol("not-an-op"))
	require.Error(t, err)
}

func TestValidateNop(t *testing.T) {
	_, err := program.Validate(program.Nop())
	require.NoError(t, err)
}

func TestValidateSeq(t *testing.T) {
	p := seq(op("copy"), op("drop"))
	_, err := program.Validate(p)
	require.NoError(t, err)
}

func TestValidateSeqRejectsBadElement(t *testing.T) {
	p := seq(op("copy"), value.Symbol("bogus"))
	_, err := program.Validate(p)
	require.Error(t, err)
}

func TestValidateDip(t *testing.T) {
	p := value.Variant("dip", op("copy"))
	_, err := program.Validate(p)
	require.NoError(t, err)
}

func TestValidateData(t *testing.T) {
	p := value.Variant("data", value.OfNat(42))
	_, err := program.Validate(p)
	require.NoError(t, err)
}

func TestValidateCondRequiresTry(t *testing.T) {
	p := value.Variant("cond", recordOf(map[string]value.Value{"then": op("copy")}))
	_, err := program.Validate(p)
	require.Error(t, err)
}

func TestValidateCondWithDefaults(t *testing.T) {
	p := value.Variant("cond", recordOf(map[string]value.Value{"try": op("copy")}))
	_, err := program.Validate(p)
	require.NoError(t, err)
}

func TestValidateLoop(t *testing.T) {
	p := value.Variant("loop", recordOf(map[string]value.Value{
		"while": op("copy"),
		"do":    op("drop"),
	}))
	_, err := program.Validate(p)
	require.NoError(t, err)
}

func TestValidateEnv(t *testing.T) {
	p := value.Variant("env", recordOf(map[string]value.Value{
		"with": op("swap"),
		"do":   op("eff"),
	}))
	_, err := program.Validate(p)
	require.NoError(t, err)
}

func TestValidateNote(t *testing.T) {
	p := value.Variant("note", value.OfString("anything at all, not a program"))
	_, err := program.Validate(p)
	require.NoError(t, err)
}

func TestArityString(t *testing.T) {
	require.Equal(t, "1--2", program.FixedArity(1, 2).String())
	require.Equal(t, "0--FAIL", program.FailArity(0).String())
	require.Equal(t, "dynamic", program.DynArity.String())
}

func TestInferArityOperator(t *testing.T) {
	a, err := program.Validate(op("copy"))
	require.NoError(t, err)
	require.Equal(t, program.FixedArity(1, 2), program.InferArity(a))
}

func TestInferArityFail(t *testing.T) {
	a, err := program.Validate(op("fail"))
	require.NoError(t, err)
	got := program.InferArity(a)
	require.Equal(t, program.Failing, got.Kind)
}

func TestInferArityNop(t *testing.T) {
	a, err := program.Validate(program.Nop())
	require.NoError(t, err)
	require.Equal(t, program.FixedArity(0, 0), program.InferArity(a))
}

func TestInferAritySeqComposition(t *testing.T) {
	// copy (1->2) then drop (1->0): net stack effect 1->1, needs 1 input.
	p := seq(op("copy"), op("drop"))
	a, err := program.Validate(p)
	require.NoError(t, err)
	require.Equal(t, program.FixedArity(1, 1), program.InferArity(a))
}

func TestInferArityDipShiftsBothSides(t *testing.T) {
	p := value.Variant("dip", op("copy"))
	a, err := program.Validate(p)
	require.NoError(t, err)
	require.Equal(t, program.FixedArity(2, 3), program.InferArity(a))
}

func TestInferArityCondAgreeingBranches(t *testing.T) {
	// try: copy (1->2), then: drop (1->0) => seq net 1->1
	// else: nop (0->0) => net 0, same as the try/then net, so the cond is 1->1.
	p := value.Variant("cond", recordOf(map[string]value.Value{
		"try":  op("copy"),
		"then": op("drop"),
		"else": program.Nop(),
	}))
	a, err := program.Validate(p)
	require.NoError(t, err)
	got := program.InferArity(a)
	require.Equal(t, program.Fixed, got.Kind)
}

func TestInferArityLoopStackInvariant(t *testing.T) {
	p := value.Variant("loop", recordOf(map[string]value.Value{
		"while": op("copy"),
		"do":    op("drop"),
	}))
	a, err := program.Validate(p)
	require.NoError(t, err)
	got := program.InferArity(a)
	require.Equal(t, program.Fixed, got.Kind)
	require.Equal(t, got.In, got.Out)
}

func TestInferArityEnvRequiresNetZeroHandler(t *testing.T) {
	p := value.Variant("env", recordOf(map[string]value.Value{
		"with": op("drop"), // 1->0, not net-zero
		"do":   op("copy"),
	}))
	a, err := program.Validate(p)
	require.NoError(t, err)
	got := program.InferArity(a)
	require.Equal(t, program.Dynamic, got.Kind)
}

func TestInferArityProgInheritsDo(t *testing.T) {
	p := value.Variant("prog", recordOf(map[string]value.Value{"do": op("copy")}))
	a, err := program.Validate(p)
	require.NoError(t, err)
	require.Equal(t, program.FixedArity(1, 2), program.InferArity(a))
}
