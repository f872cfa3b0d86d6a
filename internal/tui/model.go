// Package tui is a terminal preview of the control surface. It runs the
// same surface and activation core as the graphical front end and draws
// the scene with character cells.
package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ingyamilmolinar/drift/core/activation"
	"github.com/ingyamilmolinar/drift/core/beat"
	"github.com/ingyamilmolinar/drift/core/param"
	"github.com/ingyamilmolinar/drift/core/surface"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dce0eb"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#555a70"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8288a0"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#dce0eb"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	onStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#5ac8e6")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e65050"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#50d28c"))
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#30344a"))
)

// chrome is the number of rows outside the scene: header, knob rows,
// help line and the scene border.
const chrome = 7

type frameMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return frameMsg(t) })
}

type Model struct {
	app      *surface.App
	canvas   *Canvas
	knobs    []string
	selected int
	code     []rune
	interval time.Duration
	width    int
	height   int
	quitting bool
}

// NewModel wraps a started app. interval is the frame period.
func NewModel(app *surface.App, cols, rows int, interval time.Duration) *Model {
	m := &Model{app: app, interval: interval}
	for _, spec := range param.Catalog() {
		if spec.Kind == param.KindSlider {
			m.knobs = append(m.knobs, spec.ID)
		}
	}
	w, h := app.Surface.Engine.Size()
	m.canvas = NewCanvas(1, 1, w, h)
	m.resize(cols, rows)
	return m
}

func (m *Model) resize(cols, rows int) {
	m.width, m.height = cols, rows
	w, h := m.app.Surface.Engine.Size()
	m.canvas.Resize(cols-2, max(rows-chrome, 4), w, h)
}

// Selected is the ID of the parameter the arrow keys edit.
func (m *Model) Selected() string { return m.knobs[m.selected] }

// Code is the license key typed so far.
func (m *Model) Code() string { return string(m.code) }

func (m *Model) Init() tea.Cmd { return tick(m.interval) }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case frameMsg:
		m.app.Frame()
		if m.app.Activated() {
			m.app.Surface.Render(m.canvas)
		}
		return m, tick(m.interval)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.app.Activated() {
			return m, m.activationKey(msg)
		}
		return m, m.surfaceKey(msg)
	}
	return m, nil
}

func (m *Model) activationKey(msg tea.KeyMsg) tea.Cmd {
	ctrl := m.app.Activation
	switch ctrl.Machine().Screen() {
	case activation.Input:
		switch msg.Type {
		case tea.KeyEnter:
			ctrl.Submit(string(m.code))
		case tea.KeyBackspace:
			if len(m.code) > 0 {
				m.code = m.code[:len(m.code)-1]
			}
		case tea.KeyEsc:
			m.quitting = true
			return tea.Quit
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				if r = licenseRune(r); r >= 0 && len(m.code) < 32 {
					m.code = append(m.code, r)
				}
			}
		}
	case activation.Error:
		switch msg.Type {
		case tea.KeyEnter:
			ctrl.Retry()
		case tea.KeyEsc:
			m.quitting = true
			return tea.Quit
		}
	}
	return nil
}

func licenseRune(r rune) rune {
	switch {
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		return unicode.ToUpper(r)
	case r == '-':
		return r
	}
	return -1
}

func (m *Model) surfaceKey(msg tea.KeyMsg) tea.Cmd {
	s := m.app.Surface
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return tea.Quit
	case "h", "left":
		m.selected = (m.selected + len(m.knobs) - 1) % len(m.knobs)
	case "l", "right", "tab":
		m.selected = (m.selected + 1) % len(m.knobs)
	case "k", "up":
		s.Nudge(m.Selected(), 1)
	case "j", "down":
		s.Nudge(m.Selected(), -1)
	case "K", "shift+up": // coarse
		s.Nudge(m.Selected(), 10)
	case "J", "shift+down":
		s.Nudge(m.Selected(), -10)
	case "f":
		s.Toggle(param.Freeze)
	case "b":
		s.Toggle(param.Bypass)
	case "s":
		s.Toggle(param.Sync)
	case "[":
		s.StepDivision(-1)
	case "]":
		s.StepDivision(1)
	}
	return nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.app.Activated() {
		return m.activationView()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		frameStyle.Render(m.canvas.String()),
		m.knobView(),
		dimStyle.Render("←/→ select  ↑/↓ adjust (shift: coarse)  f freeze  b bypass  s sync  [ ] division  q quit"),
	)
}

func latch(label string, on bool) string {
	if on {
		return onStyle.Render("[" + label + "]")
	}
	return dimStyle.Render(" " + label + " ")
}

func (m *Model) headerView() string {
	s := m.app.Surface
	div := beat.At(s.Params.Get(param.Division).Index()).Name
	divView := dimStyle.Render(div)
	if s.Synced() {
		divView = valueStyle.Render(div)
	}
	beatLight := dimStyle.Render("○")
	if s.Synced() && s.Metronome.Phase() < 0.15 {
		beatLight = onStyle.Render("●")
	}
	return strings.Join([]string{
		titleStyle.Render("DRIFT"),
		latch("SYNC", s.Synced()),
		divView,
		beatLight,
		latch("FREEZE", s.Params.On(param.Freeze)),
		latch("BYPASS", s.Params.On(param.Bypass)),
	}, "  ")
}

func (m *Model) knobCell(i int, id string) string {
	s := m.app.Surface
	b := s.Params.Get(id)
	val := b.Spec().Format(b.Value())
	if id == param.Time {
		val = s.TimeLabel()
	}
	bar := meter(b.Normalized(), 8)
	cell := fmt.Sprintf("%-8s %s %s", b.Spec().Label, bar, val)
	if id == param.Time && s.Synced() {
		return dimStyle.Render(fmt.Sprintf("%-28s", cell))
	}
	if i == m.selected {
		return selectedStyle.Render(fmt.Sprintf("%-28s", cell))
	}
	return labelStyle.Render(fmt.Sprintf("%-8s ", b.Spec().Label)) + valueStyle.Render(fmt.Sprintf("%-19s", bar+" "+val))
}

func meter(n float64, width int) string {
	filled := int(n*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("▮", filled) + strings.Repeat("▯", width-filled)
}

func (m *Model) knobView() string {
	perRow := max(1, m.width/30)
	var rows []string
	var row []string
	for i, id := range m.knobs {
		row = append(row, m.knobCell(i, id))
		if len(row) == perRow {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) activationView() string {
	mc := m.app.Activation.Machine()
	var body string
	switch mc.Screen() {
	case activation.Checking:
		body = dimStyle.Render("Checking license...")
	case activation.Input:
		code := string(m.code)
		if code == "" {
			code = dimStyle.Render("XXXX-XXXX-XXXX-XXXX")
		}
		body = labelStyle.Render("Enter your license key") + "\n\n" + valueStyle.Render("> ") + code + "█\n\n" +
			dimStyle.Render("enter activate  esc quit")
	case activation.Activating:
		body = dimStyle.Render("Activating " + mc.Code() + "...")
	case activation.Success:
		body = successStyle.Render("Activated")
		if info := mc.Info(); info != nil && info.MaxActivations > 0 {
			body += "\n" + dimStyle.Render(fmt.Sprintf("%d of %d activations", info.CurrentActivations, info.MaxActivations))
		}
	case activation.Error:
		body = errorStyle.Render(mc.Message()) + "\n\n" + dimStyle.Render("enter try again  esc quit")
	}
	box := frameStyle.Padding(1, 3).Render(titleStyle.Render("DRIFT") + "\n\n" + body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
