package viz

// MaxParticles caps the live population.
const MaxParticles = 100

// Particle is one grain of light.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Alpha  float64
	Hue    float64
	Life   float64
}

// pool is a fixed-capacity particle set. The first n entries are live.
type pool struct {
	items [MaxParticles]Particle
	n     int
}

func (p *pool) full() bool { return p.n >= MaxParticles }

func (p *pool) add(pt Particle) bool {
	if p.full() {
		return false
	}
	p.items[p.n] = pt
	p.n++
	return true
}

// cull drops particles with no life left, preserving order.
func (p *pool) cull() {
	w := 0
	for i := 0; i < p.n; i++ {
		if p.items[i].Life > 0 {
			p.items[w] = p.items[i]
			w++
		}
	}
	p.n = w
}

func (p *pool) live() []Particle { return p.items[:p.n] }

func (p *pool) reset() { p.n = 0 }
