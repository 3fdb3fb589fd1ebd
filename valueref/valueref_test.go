// SPDX-License-Identifier: MIT

package valueref_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmbarbour/glas/value"
	"github.com/dmbarbour/glas/valueref"
)

func TestParseGlobalRef(t *testing.T) {
	r, err := valueref.Parse("foo.bar.baz")
	require.NoError(t, err)
	assert.False(t, r.Local)
	assert.Equal(t, "foo", r.ModuleName)
	assert.Equal(t, []string{"bar", "baz"}, r.Path)
}

func TestParseLocalRef(t *testing.T) {
	r, err := valueref.Parse("./foo.bar")
	require.NoError(t, err)
	assert.True(t, r.Local)
	assert.Equal(t, "foo", r.ModuleName)
	assert.Equal(t, []string{"bar"}, r.Path)
}

func TestParseNoLabels(t *testing.T) {
	r, err := valueref.Parse("foo")
	require.NoError(t, err)
	assert.Empty(t, r.Path)
}

func TestParseEmptyModuleNameIsError(t *testing.T) {
	_, err := valueref.Parse("./")
	assert.ErrorIs(t, err, valueref.ErrEmpty)
}

func TestStringRoundTrips(t *testing.T) {
	for _, s := range []string{"foo", "foo.bar.baz", "./foo.bar"} {
		r, err := valueref.Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, r.String())
	}
}

type stubLoader struct {
	global map[string]value.Value
	local  map[string]value.Value
}

func (s stubLoader) LoadGlobal(name string) (value.Value, error) {
	v, ok := s.global[name]
	if !ok {
		return value.Value{}, assert.AnError
	}
	return v, nil
}

func (s stubLoader) LoadLocal(dir, name string) (value.Value, error) {
	v, ok := s.local[dir+"/"+name]
	if !ok {
		return value.Value{}, assert.AnError
	}
	return v, nil
}

func TestResolveGlobalWithLabels(t *testing.T) {
	inner := value.RecordInsert(value.ToKey(value.Symbol("y")), value.OfNat(7), value.Unit())
	outer := value.RecordInsert(value.ToKey(value.Symbol("x")), inner, value.Unit())
	l := stubLoader{global: map[string]value.Value{"mod": outer}}

	got, err := valueref.Resolve(l, "", valueref.Ref{ModuleName: "mod", Path: []string{"x", "y"}})
	require.NoError(t, err)
	assert.True(t, value.Equal(value.OfNat(7), got))
}

func TestResolveMissingLabelIsError(t *testing.T) {
	l := stubLoader{global: map[string]value.Value{"mod": value.Unit()}}
	_, err := valueref.Resolve(l, "", valueref.Ref{ModuleName: "mod", Path: []string{"missing"}})
	assert.Error(t, err)
}

func TestResolveLocalUsesCurrentDir(t *testing.T) {
	l := stubLoader{local: map[string]value.Value{"/cwd/mod": value.OfNat(9)}}
	got, err := valueref.Resolve(l, "/cwd", valueref.Ref{Local: true, ModuleName: "mod"})
	require.NoError(t, err)
	assert.True(t, value.Equal(value.OfNat(9), got))
}
