// SPDX-License-Identifier: MIT

// Package glas ties together the packages that make up the glas
// runtime: bitstring (the sole primitive datum), rope (the
// weight-balanced list backing), value (the structural Value type and
// its radix-tree records), program (the AST grammar and static arity
// inference), effect (the transactional handler protocol), interp (the
// compiled interpreter), loader (module resolution and the g0
// bootstrap), g0 and textree (front-end languages), valueref (the
// CLI's ValueRef syntax), and host (reference effect handlers for
// console, env, time, and random).
//
// cmd/glas is the command-line entry point; this root package exists
// only to host module-level documentation and the SPDX header expected
// of every source file in this tree, not any runtime code of its own.
package glas
