// SPDX-License-Identifier: MIT

// Package host provides minimal reference handlers for the concrete
// external capabilities a running program can reach through eff:
// console logging, environment variable reads, wall-clock time, and
// cryptographically random numbers. None of these are part of the
// interpreter's correctness surface — they exist so --run has
// something real to execute against outside of tests. A filesystem
// handler is deliberately not included here; module loading is the
// only filesystem access this runtime performs.
package host

import (
	"crypto/rand"
	"encoding/binary"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/dmbarbour/glas/bitstring"
	"github.com/dmbarbour/glas/value"
)

// Handler answers console/env/time/random effect requests and
// recognizes nothing else, so it is normally the innermost link of an
// effect.OrElse chain behind the loader.
type Handler struct {
	sink *zap.Logger
}

// New returns a Handler that writes console messages to sink.
func New(sink *zap.Logger) *Handler {
	return &Handler{sink: sink}
}

func (h *Handler) Try()    {}
func (h *Handler) Commit() {}
func (h *Handler) Abort()  {}

// Effect dispatches log:, env:, time:, and random: requests; every
// other request is unrecognized.
func (h *Handler) Effect(req value.Value) (value.Value, bool) {
	label, payload, ok := value.AsVariant(req)
	if !ok {
		return value.Value{}, false
	}
	switch label {
	case "log":
		h.sink.Info("console", zap.String("message", payload.DebugString()))
		return value.Unit(), true
	case "env":
		return h.handleEnv(payload)
	case "time":
		return h.handleTime(payload)
	case "random":
		return h.handleRandom(payload)
	default:
		return value.Value{}, false
	}
}

// handleEnv answers env:get:<name>, returning the OS environment
// variable's bytes as a binary value, or failing if it is unset.
func (h *Handler) handleEnv(payload value.Value) (value.Value, bool) {
	kind, nameVal, ok := value.AsVariant(payload)
	if !ok || kind != "get" {
		return value.Value{}, false
	}
	bits, ok := value.AsBits(nameVal)
	if !ok {
		return value.Value{}, false
	}
	raw, err := bitstring.ToBytes(bits)
	if err != nil {
		return value.Value{}, false
	}
	val, present := os.LookupEnv(string(raw))
	if !present {
		return value.Value{}, false
	}
	return value.OfBinary([]byte(val)), true
}

// handleTime answers time:now with nanoseconds since the Unix epoch,
// encoded as a natural number.
func (h *Handler) handleTime(payload value.Value) (value.Value, bool) {
	name, ok := value.AsOperator(payload)
	if !ok || name != "now" {
		return value.Value{}, false
	}
	return value.OfNat(uint64(time.Now().UnixNano())), true
}

// handleRandom answers random:u64 with a cryptographically random
// 64-bit natural number. math/rand is never used here: a bootstrap
// runtime's randomness effect is a security-sensitive boundary.
func (h *Handler) handleRandom(payload value.Value) (value.Value, bool) {
	name, ok := value.AsOperator(payload)
	if !ok || name != "u64" {
		return value.Value{}, false
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return value.Value{}, false
	}
	return value.OfNat(binary.BigEndian.Uint64(buf[:])), true
}
