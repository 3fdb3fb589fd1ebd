// SPDX-License-Identifier: MIT

// Package effect defines the handler protocol the interpreter drives
// for every eff operation and transaction boundary, plus a reference
// or-else composition and a transactional logging handler.
package effect

import "github.com/dmbarbour/glas/value"

// Handler is the four-operation protocol a host exposes to the
// interpreter (§4.6). Callers must guarantee that each Try is
// eventually matched by exactly one Commit or Abort, including on
// every exceptional exit path; implementations may assume this and
// need not defend against unbalanced calls.
type Handler interface {
	// Try begins a child transaction.
	Try()
	// Commit concludes the innermost unconcluded transaction, merging
	// its effects into its parent (or, at the outermost level, making
	// them externally visible).
	Commit()
	// Abort concludes and undoes the innermost unconcluded transaction,
	// restoring externally observable state to the matching Try's
	// snapshot.
	Abort()
	// Effect attempts req against this handler. ok is false if the
	// request is unrecognized or fails.
	Effect(req value.Value) (resp value.Value, ok bool)
}

// orElse composes two handlers: Effect tries a first, then b. Try is
// forwarded to both in open order; Commit/Abort forward in the reverse
// (LIFO) order, so the handler opened last is always closed first.
type orElse struct {
	a, b Handler
}

// OrElse returns a handler that attempts a's effects before b's,
// forwarding transaction boundaries to both in nested (LIFO) order.
func OrElse(a, b Handler) Handler { return &orElse{a: a, b: b} }

func (h *orElse) Try() {
	h.a.Try()
	h.b.Try()
}

func (h *orElse) Commit() {
	h.b.Commit()
	h.a.Commit()
}

func (h *orElse) Abort() {
	h.b.Abort()
	h.a.Abort()
}

func (h *orElse) Effect(req value.Value) (value.Value, bool) {
	if resp, ok := h.a.Effect(req); ok {
		return resp, ok
	}
	return h.b.Effect(req)
}

// NopHandler recognizes no effects and keeps no transactional state,
// used as an identity element in handler composition and in tests.
type NopHandler struct{}

func (NopHandler) Try()    {}
func (NopHandler) Commit() {}
func (NopHandler) Abort()  {}
func (NopHandler) Effect(value.Value) (value.Value, bool) { return value.Value{}, false }
