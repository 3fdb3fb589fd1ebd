// SPDX-License-Identifier: MIT

package loader

import "github.com/dmbarbour/glas/value"

// Effect implements effect.Handler, intercepting load:local:, load:global:
// and log: requests (§6.6) and forwarding everything else to base.
func (l *Loader) Effect(req value.Value) (value.Value, bool) {
	label, payload, ok := value.AsVariant(req)
	if !ok {
		return l.base.Effect(req)
	}
	switch label {
	case "log":
		return l.logger.Effect(req)
	case "load":
		return l.handleLoad(payload)
	default:
		return l.base.Effect(req)
	}
}

func (l *Loader) handleLoad(payload value.Value) (value.Value, bool) {
	kind, nameVal, ok := value.AsVariant(payload)
	if !ok {
		return value.Value{}, false
	}
	name, ok := decodeModuleName(nameVal)
	if !ok {
		return value.Value{}, false
	}

	var val value.Value
	var err error
	switch kind {
	case "local":
		dir, have := l.currentDir()
		if !have {
			return value.Value{}, false
		}
		val, err = l.LoadLocal(dir, name)
	case "global":
		val, err = l.LoadGlobal(name)
	default:
		return value.Value{}, false
	}
	if err != nil {
		return value.Value{}, false
	}
	return val, true
}

func decodeModuleName(v value.Value) (string, bool) {
	raw, err := valueBytes(v)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// Try begins a child transaction on the logger and the base handler, in
// that open order — the mirror image of Commit/Abort's close order,
// matching effect.OrElse's convention for composed handlers.
func (l *Loader) Try() {
	l.logger.Try()
	l.base.Try()
}

// Commit closes the base handler's transaction before the logger's, so
// the handler opened last (base) is always closed first.
func (l *Loader) Commit() {
	l.base.Commit()
	l.logger.Commit()
}

// Abort mirrors Commit's LIFO order.
func (l *Loader) Abort() {
	l.base.Abort()
	l.logger.Abort()
}
