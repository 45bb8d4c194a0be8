// Package particle implements the animated point-cloud that runs behind the
// HUD. The field owns a fixed pool of particles that is allocated once and
// recycled forever; it knows nothing about the narrative state.
package particle

import (
	"math"

	"pumpalien/internal/rng"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Default tuning.
const (
	DefaultPoolSize   = 80
	DefaultLinkRadius = 120.0
	DefaultWidth      = 800.0
	DefaultHeight     = 600.0

	maxSpeed      = 0.4 // per-axis |velocity| bound for a fresh particle
	linkOpacity   = 0.4 // opacity of a link between two touching particles
	linkStepUnits = 4.0 // one line sample every 4 field units
)

// Surface is anything the field can paint on. tcell.Screen satisfies it.
type Surface interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Bounds is the field's coordinate space, independent of the surface size.
type Bounds struct {
	W, H float64
}

// Config sizes the pool and the proximity links.
type Config struct {
	PoolSize   int
	Bounds     Bounds
	LinkRadius float64
}

// Particle is one recycled point. Age stays within [0, MaxAge].
type Particle struct {
	X, Y      float64
	VX, VY    float64
	Size      int // even, in field units
	Color     colorful.Color
	Alpha     float64
	Age       int
	MaxAge    int
	Pixelated bool
}

// Brightness is the particle's current opacity: it fades out as it ages.
func (p Particle) Brightness() float64 {
	if p.MaxAge <= 0 {
		return p.Alpha
	}
	return p.Alpha * (1 - float64(p.Age)/float64(p.MaxAge))
}

// Link is a pair of particles closer than the link radius.
type Link struct {
	A, B    int
	Dist    float64
	Opacity float64
}

// Field owns the particle pool.
type Field struct {
	surface   Surface
	cfg       Config
	src       *rng.Source
	particles []Particle
	frame     uint64
}

// New allocates cfg.PoolSize particles at random inside cfg.Bounds.
// A nil surface yields a field whose Tick, Render and Burst do nothing.
func New(surface Surface, cfg Config, src *rng.Source) *Field {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DefaultPoolSize
	}
	if cfg.Bounds.W <= 0 || cfg.Bounds.H <= 0 {
		cfg.Bounds = Bounds{W: DefaultWidth, H: DefaultHeight}
	}
	if cfg.LinkRadius <= 0 {
		cfg.LinkRadius = DefaultLinkRadius
	}
	if src == nil {
		src = rng.New(0)
	}
	f := &Field{
		surface:   surface,
		cfg:       cfg,
		src:       src,
		particles: make([]Particle, cfg.PoolSize),
	}
	for i := range f.particles {
		f.spawn(&f.particles[i])
	}
	return f
}

// Available reports whether the field has a surface to draw on.
func (f *Field) Available() bool { return f.surface != nil }

// Len returns the pool size. It never changes after New.
func (f *Field) Len() int { return len(f.particles) }

// Frame returns the number of ticks applied so far.
func (f *Field) Frame() uint64 { return f.frame }

// Bounds returns the field's coordinate space.
func (f *Field) Bounds() Bounds { return f.cfg.Bounds }

// Particles returns a copy of the pool.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Tick advances every particle by one frame.
func (f *Field) Tick() {
	if f.surface == nil {
		return
	}
	f.frame++
	b := f.cfg.Bounds
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY
		if p.X < 0 || p.X > b.W {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > b.H {
			p.VY = -p.VY
		}
		p.Age++
		if p.Age > p.MaxAge {
			f.respawn(p)
		}
	}
}

// Burst respawns up to n of the oldest particles at (x, y), flying outward.
// The pool size is unchanged.
func (f *Field) Burst(x, y float64, n int) {
	if f.surface == nil || n <= 0 {
		return
	}
	if n > len(f.particles) {
		n = len(f.particles)
	}
	x = clamp(x, 0, f.cfg.Bounds.W)
	y = clamp(y, 0, f.cfg.Bounds.H)
	for k, idx := range f.oldest(n) {
		p := &f.particles[idx]
		f.respawn(p)
		angle := 2 * math.Pi * float64(k) / float64(n)
		speed := f.src.Range(0.5, 1.5)
		p.X, p.Y = x, y
		p.VX, p.VY = math.Cos(angle)*speed, math.Sin(angle)*speed
	}
}

// Resize changes the coordinate space and pulls stray particles inside it.
func (f *Field) Resize(b Bounds) {
	if b.W <= 0 || b.H <= 0 {
		return
	}
	f.cfg.Bounds = b
	for i := range f.particles {
		p := &f.particles[i]
		p.X = clamp(p.X, 0, b.W)
		p.Y = clamp(p.Y, 0, b.H)
	}
}

// Links returns every pair closer than the link radius, with opacity falling
// off linearly with distance.
func (f *Field) Links() []Link {
	r := f.cfg.LinkRadius
	var links []Link
	for i := range f.particles {
		a := f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d < r {
				links = append(links, Link{A: i, B: j, Dist: d, Opacity: (r - d) / r * linkOpacity})
			}
		}
	}
	return links
}

func (f *Field) spawn(p *Particle) {
	b := f.cfg.Bounds
	*p = Particle{
		X:         f.src.Range(0, b.W),
		Y:         f.src.Range(0, b.H),
		VX:        f.src.Range(-maxSpeed, maxSpeed),
		VY:        f.src.Range(-maxSpeed, maxSpeed),
		Size:      f.src.IntRange(2, 5) * 2,
		Color:     colorful.Hsl(f.src.Range(180, 240), 1.0, 0.7),
		Alpha:     f.src.Range(0.4, 1.0),
		MaxAge:    f.src.IntRange(200, 499),
		Pixelated: f.src.Chance(0.5),
	}
}

// respawn recycles p in place: new position and velocity, age reset.
// Size, colour and lifetime stay with the slot.
func (f *Field) respawn(p *Particle) {
	b := f.cfg.Bounds
	p.X = f.src.Range(0, b.W)
	p.Y = f.src.Range(0, b.H)
	p.VX = f.src.Range(-maxSpeed, maxSpeed)
	p.VY = f.src.Range(-maxSpeed, maxSpeed)
	p.Age = 0
}

// oldest returns the indices of the n particles closest to expiry.
func (f *Field) oldest(n int) []int {
	idx := make([]int, len(f.particles))
	for i := range idx {
		idx[i] = i
	}
	// Partial selection sort; n is small.
	for k := 0; k < n; k++ {
		best := k
		for j := k + 1; j < len(idx); j++ {
			if f.lifeLeft(idx[j]) < f.lifeLeft(idx[best]) {
				best = j
			}
		}
		idx[k], idx[best] = idx[best], idx[k]
	}
	return idx[:n]
}

func (f *Field) lifeLeft(i int) int {
	return f.particles[i].MaxAge - f.particles[i].Age
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
