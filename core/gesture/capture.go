package gesture

// Capture is the registry of live pointer grabs. The front end feeds every
// pointer move and release through it regardless of what is under the
// pointer, so a drag stays attached after leaving its widget.
type Capture struct {
	grabs  map[int]*Grab
	nextID int
}

// Grab is one acquired capture. Release is idempotent and runs the
// release hook exactly once.
type Grab struct {
	id        int
	owner     string
	c         *Capture
	onMove    func(x, y float64)
	onRelease func()
	released  bool
}

func NewCapture() *Capture { return &Capture{grabs: map[int]*Grab{}} }

// Acquire installs move and release hooks until the returned grab is
// released. Either hook may be nil.
func (c *Capture) Acquire(owner string, onMove func(x, y float64), onRelease func()) *Grab {
	c.nextID++
	g := &Grab{id: c.nextID, owner: owner, c: c, onMove: onMove, onRelease: onRelease}
	c.grabs[g.id] = g
	return g
}

func (g *Grab) Owner() string { return g.owner }

func (g *Grab) Released() bool { return g.released }

func (g *Grab) Release() {
	if g.released {
		return
	}
	g.released = true
	delete(g.c.grabs, g.id)
	if g.onRelease != nil {
		g.onRelease()
	}
}

// Active is the number of unreleased grabs.
func (c *Capture) Active() int { return len(c.grabs) }

// Held reports whether owner holds a grab.
func (c *Capture) Held(owner string) bool {
	for _, g := range c.grabs {
		if g.owner == owner {
			return true
		}
	}
	return false
}

// ReleaseOwner releases every grab held by owner.
func (c *Capture) ReleaseOwner(owner string) {
	for _, g := range c.snapshot() {
		if g.owner == owner {
			g.Release()
		}
	}
}

// Move delivers a pointer position to every live grab.
func (c *Capture) Move(x, y float64) {
	for _, g := range c.snapshot() {
		if !g.released && g.onMove != nil {
			g.onMove(x, y)
		}
	}
}

// Up ends every live grab, as a pointer release does.
func (c *Capture) Up() { c.ReleaseAll() }

// ReleaseAll releases every grab. Unmount calls it so no gesture outlives
// the surface.
func (c *Capture) ReleaseAll() {
	for _, g := range c.snapshot() {
		g.Release()
	}
}

func (c *Capture) snapshot() []*Grab {
	out := make([]*Grab, 0, len(c.grabs))
	for _, g := range c.grabs {
		out = append(out, g)
	}
	return out
}
