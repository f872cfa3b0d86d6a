//go:build js && wasm

package bridge

import (
	"encoding/json"
	"fmt"
	"syscall/js"
)

// juceTransport talks to window.__JUCE__.backend inside the host web view.
type juceTransport struct {
	backend js.Value
	json    js.Value
}

func detect() (Transport, bool) {
	juce := js.Global().Get("__JUCE__")
	if juce.IsUndefined() || juce.IsNull() {
		return nil, false
	}
	backend := juce.Get("backend")
	if backend.IsUndefined() || backend.IsNull() || backend.Get("emitEvent").Type() != js.TypeFunction {
		return nil, false
	}
	return &juceTransport{backend: backend, json: js.Global().Get("JSON")}, true
}

func (t *juceTransport) Emit(event string, payload any) error {
	if payload == nil {
		payload = Payload{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	t.backend.Call("emitEvent", event, t.json.Call("parse", string(data)))
	return nil
}

func (t *juceTransport) Listen(event string, deliver func(payload any)) func() {
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var payload any
		if len(args) > 0 && !args[0].IsUndefined() && !args[0].IsNull() {
			raw := t.json.Call("stringify", args[0]).String()
			// undecodable payloads are delivered as nil and read as zero values
			_ = json.Unmarshal([]byte(raw), &payload)
		}
		deliver(payload)
		return nil
	})
	token := t.backend.Call("addEventListener", event, fn)
	return func() {
		t.backend.Call("removeEventListener", token)
		fn.Release()
	}
}
