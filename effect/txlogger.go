// SPDX-License-Identifier: MIT

package effect

import (
	"go.uber.org/zap"

	"github.com/dmbarbour/glas/rope"
	"github.com/dmbarbour/glas/value"
)

// RecantFunc rewrites a logged message after the transaction that
// produced it aborts. The default marks it as recanted without
// discarding it, so downstream observers retain debugging information.
type RecantFunc func(value.Value) value.Value

func defaultRecant(v value.Value) value.Value {
	return value.Pair(value.Symbol("recanted"), v)
}

// TxLogger is the reference transactional logging handler (§4.6). It
// recognizes only the "log" effect request; every other request is
// unhandled (ok=false), so it is normally composed with OrElse ahead
// of a handler that does real work.
//
// A stack of pending message ropes tracks one rope per open
// transaction, plus a permanently-open base rope at index 0
// representing the outermost scope. Try pushes a new rope; Commit
// appends the innermost rope into its parent (flushing to sink when
// that parent is the base); Abort rewrites the innermost rope's
// messages before appending them, preserving the log trail through
// failed branches.
type TxLogger struct {
	sink    *zap.Logger
	pending []rope.Rope[value.Value]
	recant  RecantFunc
}

// NewTxLogger returns a TxLogger flushing to sink on every outermost
// commit. A nil recant uses the default "recanted" tag.
func NewTxLogger(sink *zap.Logger, recant RecantFunc) *TxLogger {
	if recant == nil {
		recant = defaultRecant
	}
	return &TxLogger{
		sink:    sink,
		pending: []rope.Rope[value.Value]{rope.Empty[value.Value]()},
		recant:  recant,
	}
}

func (t *TxLogger) Try() {
	t.pending = append(t.pending, rope.Empty[value.Value]())
}

func (t *TxLogger) Commit() {
	n := len(t.pending)
	if n < 2 {
		panic("effect: TxLogger.Commit without a matching Try")
	}
	top := t.pending[n-1]
	t.pending = t.pending[:n-1]
	t.pending[n-2] = rope.Append(t.pending[n-2], top)
	if len(t.pending) == 1 {
		t.flush()
	}
}

func (t *TxLogger) Abort() {
	n := len(t.pending)
	if n < 2 {
		panic("effect: TxLogger.Abort without a matching Try")
	}
	top := t.pending[n-1]
	t.pending = t.pending[:n-1]
	recanted := rope.Map(top, t.recant)
	t.pending[n-2] = rope.Append(t.pending[n-2], recanted)
	// Unlike Commit, Abort never flushes: only an outermost *commit*
	// makes messages externally visible (§4.6), so a top-level abort
	// just leaves the recanted messages pending for the next commit.
}

// Effect handles "log:<msg>" requests, appending msg to the innermost
// open transaction's pending rope.
func (t *TxLogger) Effect(req value.Value) (value.Value, bool) {
	label, msg, ok := value.AsVariant(req)
	if !ok || label != "log" {
		return value.Value{}, false
	}
	n := len(t.pending)
	t.pending[n-1] = rope.Snoc(t.pending[n-1], msg)
	return value.Unit(), true
}

// flush writes every message currently pending at the base level to
// the sink, in order, and clears it.
func (t *TxLogger) flush() {
	for _, m := range rope.ToSeq(t.pending[0]) {
		t.sink.Info("log", zap.String("message", m.DebugString()))
	}
	t.pending[0] = rope.Empty[value.Value]()
}

// Pending reports the number of currently open transactions, for tests
// and diagnostics.
func (t *TxLogger) Pending() int { return len(t.pending) - 1 }
