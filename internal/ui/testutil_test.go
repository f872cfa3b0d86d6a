package ui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/drift/core/surface"
	"github.com/ingyamilmolinar/drift/internal/config"
	game_log "github.com/ingyamilmolinar/drift/internal/log"
)

// fakeInput drives every input hook from plain fields. Edges are derived
// from the previous frame's state, as inpututil does.
type fakeInput struct {
	x, y     int
	down     bool
	prevDown bool
	keys     map[ebiten.Key]bool
	prevKeys map[ebiten.Key]bool
	chars    []rune
	wheelY   float64
}

func installInput(t *testing.T) *fakeInput {
	t.Helper()
	in := &fakeInput{keys: map[ebiten.Key]bool{}, prevKeys: map[ebiten.Key]bool{}}
	restore := SetInputForTest(
		func() (int, int) { return in.x, in.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && in.down },
		func(k ebiten.Key) bool { return in.keys[k] },
		func() []rune { c := in.chars; in.chars = nil; return c },
		func() (float64, float64) { w := in.wheelY; in.wheelY = 0; return 0, w },
	)
	restoreEdges := SetEdgesForTest(
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && in.down && !in.prevDown },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && !in.down && in.prevDown },
		func(k ebiten.Key) bool { return in.keys[k] && !in.prevKeys[k] },
	)
	oldFocused := isFocused
	isFocused = func() bool { return true }
	t.Cleanup(func() {
		restore()
		restoreEdges()
		isFocused = oldFocused
	})
	return in
}

// frame runs step with the current input, then latches edges.
func (in *fakeInput) frame(step func()) {
	step()
	in.prevDown = in.down
	in.prevKeys = map[ebiten.Key]bool{}
	for k, v := range in.keys {
		in.prevKeys[k] = v
	}
}

func (in *fakeInput) press(k ebiten.Key) { in.keys[k] = true }

func (in *fakeInput) release(k ebiten.Key) { delete(in.keys, k) }

func newTestApp(t *testing.T, cfg *config.Config) *surface.App {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	app := surface.NewApp(cfg, game_log.Discard())
	app.Start()
	t.Cleanup(app.Close)
	return app
}

// newActivatedGame returns a game whose surface is already mounted on an
// unlicensed synthetic host.
func newActivatedGame(t *testing.T) *Game {
	t.Helper()
	app := newTestApp(t, nil)
	app.Frame()
	if !app.Activated() {
		t.Fatalf("unlicensed host should activate immediately")
	}
	return New(app, game_log.Discard(), 760, 520)
}
