// SPDX-License-Identifier: MIT

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dmbarbour/glas/effect"
	"github.com/dmbarbour/glas/g0"
	"github.com/dmbarbour/glas/value"
)

func TestBootstrapReachesFixedPoint(t *testing.T) {
	l, err := Bootstrap(nil, zap.NewNop(), effect.NopHandler{})
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestBootstrapInterpretedCompilerMatchesIdentityProgram(t *testing.T) {
	l, err := Bootstrap(nil, zap.NewNop(), effect.NopHandler{})
	require.NoError(t, err)

	got, err := l.g0Compile([]byte("anything"))
	require.NoError(t, err)
	assert.True(t, value.Equal(value.OfBinary([]byte("anything")), got))
}

func TestLanguageG0ModuleExposesCompilerProgram(t *testing.T) {
	mod := languageG0Module(g0.CompilerProgram())
	got, ok := value.RecordLookup(compileKey, mod)
	require.True(t, ok)
	assert.True(t, value.Equal(g0.CompilerProgram(), got))
}

// TestLoadP0CompilesRealLanguageG0File pins down that P0 is not a
// hardcoded value: it comes from locating and compiling an actual
// language-g0.g0 file (the embedded g0.BootstrapSource, materialized to
// a real temp directory) through the native tokenizer/parser.
func TestLoadP0CompilesRealLanguageG0File(t *testing.T) {
	p0, err := loadP0(nil, zap.NewNop(), effect.NopHandler{})
	require.NoError(t, err)
	assert.True(t, value.Equal(g0.CompilerProgram(), p0))

	want, err := g0.Compile(g0.BootstrapSource)
	require.NoError(t, err)
	assert.True(t, value.Equal(want, p0))
}

// TestLoadP0PrefersCallerSuppliedLanguageG0 confirms loadP0 actually
// searches globalDirs before falling back to the embedded bootstrap
// copy: a caller-supplied language-g0.g0 in globalDirs is the one
// located and compiled, not the embedded stand-in.
func TestLoadP0PrefersCallerSuppliedLanguageG0(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "language-g0.g0"), []byte("copy ."), 0o644))

	p0, err := loadP0([]string{dir}, zap.NewNop(), effect.NopHandler{})
	require.NoError(t, err)

	want, err := g0.Compile([]byte("copy ."))
	require.NoError(t, err)
	assert.True(t, value.Equal(want, p0))
	assert.False(t, value.Equal(g0.CompilerProgram(), p0))
}
