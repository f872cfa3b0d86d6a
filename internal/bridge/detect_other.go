//go:build !(js && wasm)

package bridge

// Outside the web view there is never a host transport.
func detect() (Transport, bool) { return nil, false }
