// SPDX-License-Identifier: MIT

// Package loader resolves module names to compiled values: it finds a
// module's backing file via the configured search path, applies the
// chain of languages implied by the file's dotted extensions, and
// caches the result per file path. It also builds and bootstraps the
// g0 language itself (see Bootstrap), and exposes an effect.Handler so
// a running program can load modules as a side effect.
package loader

import "github.com/pkg/errors"

// Sentinel errors reported by module resolution and compilation.
// Wrap these with errors.Wrap/Wrapf for context; callers that need to
// distinguish failure kinds should use errors.Is against these values.
var (
	ErrNotFound            = errors.New("loader: module not found")
	ErrAmbiguous           = errors.New("loader: module name is ambiguous")
	ErrCycle               = errors.New("loader: dependency cycle")
	ErrBadCompiler         = errors.New("loader: language module has no usable compile field")
	ErrArityMismatch       = errors.New("loader: compile program did not produce exactly one value")
	ErrBootstrapFixedPoint = errors.New("loader: g0 bootstrap did not reach a fixed point")
)
