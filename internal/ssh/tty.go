// Package ssh adapts a gliderlabs SSH session into a tcell terminal so each
// connection can run its own engine session.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// Fallback size for clients that report a zero-sized window.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// SessionTty implements tcell.Tty on top of one SSH channel.
type SessionTty struct {
	session gossh.Session
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func()

	watch     sync.Once
	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

// NewSessionTty wraps s. pty carries the initial window size and winCh the
// subsequent resizes.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
		done:    make(chan struct{}),
	}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the channel once; later calls return the first result.
func (t *SessionTty) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
		t.closeErr = t.session.Close()
	})
	return t.closeErr
}

// Start, Stop and Drain have nothing to do: the channel is opened and flushed
// by the SSH server.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize reports the last size the client sent.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	w, h := t.window.Width, t.window.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	return tcell.WindowSize{Width: w, Height: h}, nil
}

// NotifyResize replaces the resize callback. The window-change channel is
// drained by one goroutine until it closes or the tty is closed.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()
	t.watch.Do(func() { go t.watchResize() })
}

func (t *SessionTty) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.mu.Lock()
			t.window = win
			cb := t.cb
			t.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}
