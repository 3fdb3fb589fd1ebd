// SPDX-License-Identifier: MIT

package interp

import (
	"github.com/dmbarbour/glas/effect"
	"github.com/dmbarbour/glas/value"
)

// envHandler is the handler env installs around do. It holds its own
// piece of state across effect calls and runs with against a private
// two-element stack rather than the caller's, so with's net 1->1 or
// 2->2 arity fully accounts for every value it touches.
//
// Effect always forwards to parent directly rather than swapping a
// shared handler pointer back and forth: since with runs on its own
// State, it naturally never observes this handler at all, which is
// exactly the "temporarily restore the parent handler" behavior the
// spec describes, without needing to mutate and later repair shared
// state.
type envHandler struct {
	parent effect.Handler
	state  value.Value
	with   op
}

func (h *envHandler) Try()    { h.parent.Try() }
func (h *envHandler) Commit() { h.parent.Commit() }
func (h *envHandler) Abort()  { h.parent.Abort() }

func (h *envHandler) Effect(req value.Value) (value.Value, bool) {
	sub := &State{Data: []value.Value{h.state, req}, Handler: h.parent}
	if !h.with(sub) {
		return value.Value{}, false
	}
	if len(sub.Data) != 2 {
		panic("interp: env's with left an unexpected stack shape")
	}
	h.state = sub.Data[0]
	return sub.Data[1], true
}

// compileEnv pops the initial handler state, installs an envHandler
// around do, and pushes the final state back once do completes.
func compileEnv(rec value.Value) op {
	withOp := compile(fieldValue(rec, "with"))
	doOp := compile(fieldValue(rec, "do"))
	return func(s *State) bool {
		initState := s.pop()
		h := &envHandler{parent: s.Handler, state: initState, with: withOp}
		outer := s.Handler
		s.Handler = h
		ok := doOp(s)
		s.Handler = outer
		s.push(h.state)
		return ok
	}
}
