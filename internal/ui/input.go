package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	cursorPosition       = ebiten.CursorPosition
	isMouseButtonPressed = ebiten.IsMouseButtonPressed
	isKeyPressed         = ebiten.IsKeyPressed
	inputChars           = func() []rune { return ebiten.AppendInputChars(nil) }
	wheel                = ebiten.Wheel

	mouseJustPressed  = inpututil.IsMouseButtonJustPressed
	mouseJustReleased = inpututil.IsMouseButtonJustReleased
	keyJustPressed    = inpututil.IsKeyJustPressed
)

// SetInputForTest replaces input functions during tests and returns a function
// to restore the originals.
func SetInputForTest(
	cursor func() (int, int),
	mouse func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
	chars func() []rune,
	wh func() (float64, float64),
) func() {
	oldCursor := cursorPosition
	oldMouse := isMouseButtonPressed
	oldKey := isKeyPressed
	oldChars := inputChars
	oldWheel := wheel
	cursorPosition = cursor
	isMouseButtonPressed = mouse
	isKeyPressed = key
	inputChars = chars
	wheel = wh
	return func() {
		cursorPosition = oldCursor
		isMouseButtonPressed = oldMouse
		isKeyPressed = oldKey
		inputChars = oldChars
		wheel = oldWheel
	}
}

// SetEdgesForTest replaces the press/release edge detectors, which
// otherwise come from inpututil and need a running game.
func SetEdgesForTest(
	down func(ebiten.MouseButton) bool,
	up func(ebiten.MouseButton) bool,
	key func(ebiten.Key) bool,
) func() {
	oldDown, oldUp, oldKey := mouseJustPressed, mouseJustReleased, keyJustPressed
	mouseJustPressed, mouseJustReleased, keyJustPressed = down, up, key
	return func() {
		mouseJustPressed, mouseJustReleased, keyJustPressed = oldDown, oldUp, oldKey
	}
}

func modifierHeld() bool {
	return isKeyPressed(ebiten.KeyControl) || isKeyPressed(ebiten.KeyMeta)
}
