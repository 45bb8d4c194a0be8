// Package energy implements the bounded energy resource. The level only
// changes through Boost, TickRegeneration and Reset; threshold watchers are
// edge-triggered.
package energy

// Energy regenerates +0.5 per second by default, so an idle session fills
// in about 200 seconds.
const (
	Min            = 0.0
	Max            = 100.0
	DefaultRate    = 0.5
	historySamples = 20
)

// Status is a coarse band of the current level.
type Status uint8

const (
	StatusLow Status = iota
	StatusMedium
	StatusHigh
	StatusCritical
)

func (s Status) String() string {
	switch s {
	case StatusLow:
		return "low"
	case StatusMedium:
		return "medium"
	case StatusHigh:
		return "high"
	default:
		return "critical"
	}
}

// StatusOf maps a level to its band.
func StatusOf(level float64) Status {
	switch {
	case level < 30:
		return StatusLow
	case level < 60:
		return StatusMedium
	case level < 90:
		return StatusHigh
	default:
		return StatusCritical
	}
}

type watcher struct {
	threshold float64
	above     bool
	fn        func(level float64)
}

// Accumulator holds the level and its watchers.
type Accumulator struct {
	rate     float64
	level    float64
	history  []float64
	watchers []*watcher
}

// New creates an empty accumulator regenerating at rate per time unit.
// A non-positive rate falls back to DefaultRate.
func New(rate float64) *Accumulator {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Accumulator{rate: rate}
}

// Level returns the current value, always within [Min, Max].
func (a *Accumulator) Level() float64 { return a.level }

// Rate returns the regeneration rate per time unit.
func (a *Accumulator) Rate() float64 { return a.rate }

// Full reports whether the level sits at Max.
func (a *Accumulator) Full() bool { return a.level >= Max }

// Status returns the band of the current level.
func (a *Accumulator) Status() Status { return StatusOf(a.level) }

// History returns up to the last 20 distinct levels, oldest first.
func (a *Accumulator) History() []float64 {
	out := make([]float64, len(a.history))
	copy(out, a.history)
	return out
}

// Boost adds amount (which may be negative) and clamps the result.
func (a *Accumulator) Boost(amount float64) float64 {
	a.set(a.level + amount)
	return a.level
}

// TickRegeneration applies dt time units of passive regeneration. It returns
// false once the level is full so the caller can stop scheduling ticks.
func (a *Accumulator) TickRegeneration(dt float64) bool {
	if a.level >= Max {
		return false
	}
	if dt > 0 {
		a.set(a.level + a.rate*dt)
	}
	return a.level < Max
}

// OnThresholdCrossed registers fn to run each time the level rises to or
// through threshold. It does not fire again until the level has dropped
// below threshold first. A level already at or above threshold does not fire.
func (a *Accumulator) OnThresholdCrossed(threshold float64, fn func(level float64)) {
	if fn == nil {
		return
	}
	a.watchers = append(a.watchers, &watcher{
		threshold: threshold,
		above:     a.level >= threshold,
		fn:        fn,
	})
}

// Reset drops the level to Min, clears history and re-arms every watcher.
// Watchers stay registered.
func (a *Accumulator) Reset() {
	a.level = Min
	a.history = a.history[:0]
	for _, w := range a.watchers {
		w.above = a.level >= w.threshold
	}
}

func (a *Accumulator) set(v float64) {
	if v < Min {
		v = Min
	}
	if v > Max {
		v = Max
	}
	if v == a.level {
		return
	}
	a.level = v
	a.history = append(a.history, v)
	if len(a.history) > historySamples {
		a.history = a.history[len(a.history)-historySamples:]
	}
	for _, w := range a.watchers {
		now := v >= w.threshold
		if now && !w.above {
			w.above = true
			w.fn(v)
			continue
		}
		w.above = now
	}
}
