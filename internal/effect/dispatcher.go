// Package effect maps symbolic effect names to one-shot handlers, so the
// places that trigger an effect never need to know how it is drawn or logged.
package effect

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Handler performs one effect. Handlers close over whatever they mutate.
type Handler func()

// Errors returned while wiring handlers at startup.
var (
	ErrEmptyName  = errors.New("effect: empty name")
	ErrNilHandler = errors.New("effect: nil handler")
	ErrDuplicate  = errors.New("effect: already registered")
	ErrMissing    = errors.New("effect: not registered")
)

// Dispatcher holds the registered handlers.
type Dispatcher struct {
	handlers map[string]Handler
	logger   *slog.Logger
}

// New returns an empty Dispatcher. A nil logger uses slog.Default.
func New(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		handlers: make(map[string]Handler),
		logger:   logger,
	}
}

// Register binds name to h.
func (d *Dispatcher) Register(name string, h Handler) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if h == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, name)
	}
	if _, ok := d.handlers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	d.handlers[name] = h
	return nil
}

// MustRegister is Register for wiring code that cannot recover.
func (d *Dispatcher) MustRegister(name string, h Handler) {
	if err := d.Register(name, h); err != nil {
		panic(err)
	}
}

// Registered reports whether name has a handler.
func (d *Dispatcher) Registered(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

// Names returns the registered names, sorted.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for n := range d.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Require returns an error naming every effect in names that has no handler.
func (d *Dispatcher) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !d.Registered(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}
	return nil
}

// Dispatch runs the handler for name. Unknown names are ignored and a
// panicking handler is logged, never propagated. It reports whether a
// handler ran to completion.
func (d *Dispatcher) Dispatch(name string) (ok bool) {
	h, found := d.handlers[name]
	if !found {
		d.logger.Debug("effect: unknown name ignored", "effect", name)
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("effect: handler panicked", "effect", name, "panic", r)
			ok = false
		}
	}()
	h()
	return true
}
