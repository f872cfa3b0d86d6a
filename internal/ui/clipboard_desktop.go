//go:build !js

package ui

import (
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipOnce sync.Once
	clipOK   bool
)

// readClipboard returns the system clipboard text, or "" when no
// clipboard is available (headless sessions, missing X/Wayland).
var readClipboard = func() string {
	clipOnce.Do(func() { clipOK = clipboard.Init() == nil })
	if !clipOK {
		return ""
	}
	return string(clipboard.Read(clipboard.FmtText))
}
