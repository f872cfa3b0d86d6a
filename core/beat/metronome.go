package beat

import "time"

// Metronome fires OnBeat once per division length at BPM. It has no
// goroutine of its own; the owner calls Tick from its frame loop.
type Metronome struct {
	BPM      float64
	Division int
	OnBeat   func(count int)

	now     func() time.Time
	last    time.Time
	count   int
	running bool
}

func NewMetronome(bpm float64) *Metronome {
	return &Metronome{BPM: bpm, Division: DefaultIndex, now: time.Now}
}

// Start fires the first beat immediately and begins timing from now.
func (m *Metronome) Start() {
	if m.running {
		return
	}
	m.running = true
	m.count = 0
	m.last = m.now()
	m.fire()
}

func (m *Metronome) Stop() { m.running = false }

func (m *Metronome) Running() bool { return m.running }

// Tick fires at most one beat per call. Late ticks do not burst; the
// phase restarts from the tick that fired.
func (m *Metronome) Tick() {
	if !m.running {
		return
	}
	interval := At(m.Division).Duration(m.BPM)
	if interval <= 0 {
		return
	}
	now := m.now()
	if now.Sub(m.last) < interval {
		return
	}
	m.last = now
	m.fire()
}

// Phase is the position inside the current beat in [0,1).
func (m *Metronome) Phase() float64 {
	interval := At(m.Division).Duration(m.BPM)
	if !m.running || interval <= 0 {
		return 0
	}
	p := float64(m.now().Sub(m.last)) / float64(interval)
	if p >= 1 {
		return 0.999
	}
	if p < 0 {
		return 0
	}
	return p
}

func (m *Metronome) fire() {
	if m.OnBeat != nil {
		m.OnBeat(m.count)
	}
	m.count++
}
