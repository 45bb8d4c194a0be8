package particle

import (
	"math"
	"testing"

	"pumpalien/internal/rng"

	"github.com/gdamore/tcell/v2"
)

var _ Surface = tcell.Screen(nil)

// recordSurface is a Surface that counts painted cells.
type recordSurface struct {
	w, h  int
	cells map[[2]int]rune
}

func newRecordSurface(w, h int) *recordSurface {
	return &recordSurface{w: w, h: h, cells: make(map[[2]int]rune)}
}

func (s *recordSurface) Size() (int, int) { return s.w, s.h }

func (s *recordSurface) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	s.cells[[2]int{x, y}] = r
}

func newTestField(pool int) (*Field, *recordSurface) {
	surf := newRecordSurface(80, 24)
	f := New(surf, Config{PoolSize: pool, Bounds: Bounds{W: 800, H: 600}, LinkRadius: 120}, rng.New(42))
	return f, surf
}

func TestNewAllocatesPoolInsideBounds(t *testing.T) {
	f, _ := newTestField(80)
	if f.Len() != 80 {
		t.Fatalf("Len = %d, want 80", f.Len())
	}
	for i, p := range f.Particles() {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Errorf("particle %d at (%.1f,%.1f) outside bounds", i, p.X, p.Y)
		}
		if p.Size%2 != 0 || p.Size < 4 || p.Size > 10 {
			t.Errorf("particle %d size %d, want even in [4,10]", i, p.Size)
		}
		if p.Alpha < 0.4 || p.Alpha >= 1 {
			t.Errorf("particle %d alpha %.2f out of [0.4,1)", i, p.Alpha)
		}
		if p.Age != 0 || p.MaxAge < 200 || p.MaxAge >= 500 {
			t.Errorf("particle %d age %d maxAge %d", i, p.Age, p.MaxAge)
		}
	}
}

func TestTickLongRunKeepsAgeBoundedAndPoolFixed(t *testing.T) {
	f, _ := newTestField(80)
	for range 10_000 {
		f.Tick()
		for i, p := range f.Particles() {
			if p.Age > p.MaxAge {
				t.Fatalf("frame %d: particle %d age %d exceeds max %d", f.Frame(), i, p.Age, p.MaxAge)
			}
		}
	}
	if f.Len() != 80 {
		t.Errorf("pool size changed to %d", f.Len())
	}
	if f.Frame() != 10_000 {
		t.Errorf("Frame = %d, want 10000", f.Frame())
	}
}

func TestTickBouncesOffWalls(t *testing.T) {
	f, _ := newTestField(1)
	f.particles[0].X, f.particles[0].Y = 799.9, 300
	f.particles[0].VX, f.particles[0].VY = 0.3, 0
	f.Tick()
	if f.particles[0].VX >= 0 {
		t.Errorf("VX = %v, want inverted after crossing the right wall", f.particles[0].VX)
	}
	f.particles[0].X, f.particles[0].Y = 400, 0.1
	f.particles[0].VX, f.particles[0].VY = 0, -0.3
	f.Tick()
	if f.particles[0].VY <= 0 {
		t.Errorf("VY = %v, want inverted after crossing the top wall", f.particles[0].VY)
	}
}

func TestTickRespawnsExpiredParticle(t *testing.T) {
	f, _ := newTestField(1)
	f.particles[0].Age = f.particles[0].MaxAge
	f.Tick()
	if got := f.particles[0].Age; got != 0 {
		t.Errorf("Age after expiry = %d, want 0", got)
	}
}

func TestLinksRespectRadius(t *testing.T) {
	f, _ := newTestField(3)
	f.particles[0].X, f.particles[0].Y = 100, 100
	f.particles[1].X, f.particles[1].Y = 160, 100 // 60 away
	f.particles[2].X, f.particles[2].Y = 500, 500 // far from both

	links := f.Links()
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1: %+v", len(links), links)
	}
	l := links[0]
	if l.A != 0 || l.B != 1 {
		t.Errorf("link = %d-%d, want 0-1", l.A, l.B)
	}
	if want := (120.0 - 60.0) / 120.0 * 0.4; math.Abs(l.Opacity-want) > 1e-9 {
		t.Errorf("opacity = %v, want %v", l.Opacity, want)
	}
}

func TestLinkOpacityFallsWithDistance(t *testing.T) {
	f, _ := newTestField(3)
	f.particles[0].X, f.particles[0].Y = 100, 100
	f.particles[1].X, f.particles[1].Y = 110, 100
	f.particles[2].X, f.particles[2].Y = 100, 210
	var near, far float64
	for _, l := range f.Links() {
		switch {
		case l.A == 0 && l.B == 1:
			near = l.Opacity
		case l.A == 0 && l.B == 2:
			far = l.Opacity
		}
	}
	if near <= far || far <= 0 {
		t.Errorf("near %.3f should exceed far %.3f > 0", near, far)
	}
}

func TestRenderPaintsParticles(t *testing.T) {
	f, surf := newTestField(80)
	f.Render()
	if len(surf.cells) == 0 {
		t.Fatal("Render painted nothing")
	}
	for pos := range surf.cells {
		if pos[0] < 0 || pos[1] < 0 || pos[0] >= 80 || pos[1] >= 24 {
			t.Fatalf("painted outside surface at %v", pos)
		}
	}
}

func TestRenderOnSimulationScreen(t *testing.T) {
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	ss.SetSize(80, 24)
	defer ss.Fini()
	f := New(ss, Config{PoolSize: 20}, rng.New(42))
	f.Tick()
	f.Render()
	ss.Show()
}

func TestNilSurfaceIsNoop(t *testing.T) {
	f := New(nil, Config{PoolSize: 10}, rng.New(1))
	before := f.Particles()
	f.Tick()
	f.Render()
	f.Burst(10, 10, 5)
	if f.Available() {
		t.Error("Available should be false without a surface")
	}
	if f.Frame() != 0 {
		t.Errorf("Frame = %d, want 0", f.Frame())
	}
	after := f.Particles()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d changed without a surface", i)
		}
	}
}

func TestBurstKeepsPoolSize(t *testing.T) {
	f, _ := newTestField(40)
	f.Burst(400, 300, 12)
	if f.Len() != 40 {
		t.Fatalf("Len = %d after burst", f.Len())
	}
	at := 0
	for _, p := range f.Particles() {
		if p.X == 400 && p.Y == 300 {
			at++
			if p.Age != 0 {
				t.Errorf("burst particle age %d, want 0", p.Age)
			}
		}
	}
	if at != 12 {
		t.Errorf("%d particles at burst origin, want 12", at)
	}
	f.Burst(0, 0, 1000)
	if f.Len() != 40 {
		t.Errorf("oversized burst changed pool to %d", f.Len())
	}
}

func TestResizeClampsPositions(t *testing.T) {
	f, _ := newTestField(50)
	f.Resize(Bounds{W: 100, H: 50})
	for i, p := range f.Particles() {
		if p.X > 100 || p.Y > 50 {
			t.Errorf("particle %d at (%.1f,%.1f) outside resized bounds", i, p.X, p.Y)
		}
	}
	f.Resize(Bounds{})
	if f.Bounds() != (Bounds{W: 100, H: 50}) {
		t.Errorf("zero resize should be ignored, bounds = %+v", f.Bounds())
	}
}

func TestSameSeedSameField(t *testing.T) {
	a, _ := newTestField(30)
	b, _ := newTestField(30)
	for range 500 {
		a.Tick()
		b.Tick()
	}
	pa, pb := a.Particles(), b.Particles()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d diverged", i)
		}
	}
}
