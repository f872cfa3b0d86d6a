package ui

import (
	"image"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// TextInput is a reusable editable text box with cursor support.
type TextInput struct {
	Rect        image.Rectangle
	Style       TextInputStyle
	Text        string
	Placeholder string
	// MaxLen caps the rune count; 0 means unlimited.
	MaxLen int
	// Filter maps typed and pasted runes; returning -1 drops the rune.
	Filter func(rune) rune
	// OnSubmit runs when Enter is pressed while focused.
	OnSubmit func(string)

	cursor   int
	focused  bool
	disabled bool
	anim     float64
	errAnim  float64
	blink    int
	repeat   map[ebiten.Key]int
}

// NewTextInput constructs a text input with the given rectangle and style.
func NewTextInput(r image.Rectangle, style TextInputStyle) *TextInput {
	return &TextInput{Rect: r, Style: style, repeat: make(map[ebiten.Key]int)}
}

// Focused reports whether the input currently has focus.
func (t *TextInput) Focused() bool { return t.focused }

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() {
	t.focused = true
	t.anim = 1
}

// SetDisabled blocks editing, for example while a request is in flight.
func (t *TextInput) SetDisabled(d bool) { t.disabled = d }

// Flash starts the error highlight.
func (t *TextInput) Flash() { t.errAnim = 1 }

// SetText sets the current text and resets the cursor to the end.
func (t *TextInput) SetText(s string) {
	t.Text = s
	t.cursor = utf8.RuneCountInString(s)
}

// Value returns the current text value.
func (t *TextInput) Value() string { return t.Text }

// Update processes mouse/keyboard input.
func (t *TextInput) Update() bool {
	mx, my := cursorPosition()
	consumed := false
	if isMouseButtonPressed(ebiten.MouseButtonLeft) {
		if image.Pt(mx, my).In(t.Rect) {
			t.Focus()
			consumed = true
		} else {
			t.focused = false
		}
	}

	t.errAnim *= 0.85
	if t.errAnim < 0.01 {
		t.errAnim = 0
	}

	if !t.focused || t.disabled {
		t.blink = 0
		if !t.focused {
			t.anim *= 0.85
			if t.anim < 0.01 {
				t.anim = 0
			}
		}
		return consumed
	}

	t.blink++
	if t.blink > 60 {
		t.blink = 0
	}

	if chars := inputChars(); len(chars) > 0 {
		for _, r := range chars {
			if r == '\n' || r == '\r' {
				continue
			}
			t.insert(r)
		}
	}

	if modifierHeld() && keyJustPressed(ebiten.KeyV) {
		t.Paste(readClipboard())
	}

	if t.keyRepeat(ebiten.KeyBackspace) {
		if t.cursor > 0 {
			bi := byteIndex(t.Text, t.cursor)
			prev := byteIndex(t.Text, t.cursor-1)
			t.Text = t.Text[:prev] + t.Text[bi:]
			t.cursor--
		}
	}
	if t.keyRepeat(ebiten.KeyLeft) {
		if t.cursor > 0 {
			t.cursor--
		}
	}
	if t.keyRepeat(ebiten.KeyRight) {
		if t.cursor < utf8.RuneCountInString(t.Text) {
			t.cursor++
		}
	}
	if keyJustPressed(ebiten.KeyEnter) || keyJustPressed(ebiten.KeyNumpadEnter) {
		if t.OnSubmit != nil {
			t.OnSubmit(t.Text)
		}
	}
	return consumed
}

// Paste inserts clipboard text at the cursor. Control characters and
// line breaks are dropped.
func (t *TextInput) Paste(s string) {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		t.insert(r)
	}
}

func (t *TextInput) insert(r rune) {
	if t.Filter != nil {
		if r = t.Filter(r); r < 0 {
			return
		}
	}
	if t.MaxLen > 0 && utf8.RuneCountInString(t.Text) >= t.MaxLen {
		return
	}
	before := t.Text[:byteIndex(t.Text, t.cursor)]
	after := t.Text[byteIndex(t.Text, t.cursor):]
	t.Text = before + string(r) + after
	t.cursor++
}

func (t *TextInput) keyRepeat(k ebiten.Key) bool {
	if isKeyPressed(k) {
		t.repeat[k]++
		d := t.repeat[k]
		if d == 1 || d > 15 && (d-15)%3 == 0 {
			return true
		}
	} else {
		t.repeat[k] = 0
	}
	return false
}

// byteIndex returns the byte index of rune i in s.
func byteIndex(s string, i int) int {
	if i <= 0 {
		return 0
	}
	bi := 0
	for n := 0; n < i && bi < len(s); n++ {
		_, sz := utf8.DecodeRuneInString(s[bi:])
		bi += sz
	}
	return bi
}

// visibleText returns substring that fits in the box and the index of the first rune shown.
func (t *TextInput) visibleText() (string, int) {
	pad := 4
	maxRunes := (t.Rect.Dx() - pad*2) / debugCharW
	total := utf8.RuneCountInString(t.Text)
	start := 0
	if total > maxRunes {
		start = total - maxRunes
	}
	bi := byteIndex(t.Text, start)
	return t.Text[bi:], start
}

// Draw renders the input.
func (t *TextInput) Draw(dst *ebiten.Image) {
	t.Style.DrawAnimated(dst, t.Rect, t.anim, t.errAnim)
	ty := t.Rect.Min.Y + (t.Rect.Dy()-debugCharH)/2
	if t.Text == "" && !t.focused {
		drawLabel(dst, t.Placeholder, t.Rect.Min.X+4, ty)
		return
	}
	txt, start := t.visibleText()
	ebitenutil.DebugPrintAt(dst, txt, t.Rect.Min.X+4, ty)
	if t.focused && !t.disabled && t.blink < 30 {
		cx := float64(t.Rect.Min.X + 4 + debugCharW*(t.cursor-start))
		cy := float64(ty)
		drawLine(dst, cx, cy, cx, cy+debugCharH-2, 1, colorWhite)
	}
}
