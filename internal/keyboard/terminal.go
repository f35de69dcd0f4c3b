package keyboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/bioooz/typoer/internal/typing"
)

// Terminal types into an io.Writer and watches a raw key stream for the
// gate and abort keys. Key presses read from the stream are latched until
// IsPressed observes one of them.
type Terminal struct {
	mu        sync.Mutex
	out       io.Writer
	raw       bool
	erase     bool
	shift     bool
	latched   map[string]bool
	interrupt func()

	listening bool
	done      chan struct{}
	closers   []func() error
}

// TerminalOption customizes a Terminal.
type TerminalOption func(*Terminal)

// WithInterrupt registers a callback for Ctrl-C read from the key stream.
// Raw mode swallows SIGINT, so this is the only way to see it.
func WithInterrupt(fn func()) TerminalOption {
	return func(t *Terminal) {
		t.interrupt = fn
	}
}

// WithRawOutput makes newlines CRLF and backspace erase the cell, as a
// terminal in raw mode needs.
func WithRawOutput(raw bool) TerminalOption {
	return func(t *Terminal) {
		t.raw = raw
	}
}

// WithErasingBackspace makes backspace blank the cell it steps back over.
// Raw output implies it.
func WithErasingBackspace(erase bool) TerminalOption {
	return func(t *Terminal) {
		t.erase = erase
	}
}

// NewTerminal returns a Terminal writing to out.
func NewTerminal(out io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		out:     out,
		latched: map[string]bool{},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OpenTTY puts the controlling terminal in raw mode and listens to it for
// keys. Close restores the terminal.
func OpenTTY(out io.Writer, opts ...TerminalOption) (*Terminal, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open tty: %w", err)
	}
	// Going through the raw conn keeps the descriptor non-blocking, so
	// closing it unblocks the listener.
	conn, err := tty.SyscallConn()
	if err != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("failed to access tty: %w", err)
	}
	var (
		state  *term.State
		rawErr error
	)
	if err := conn.Control(func(fd uintptr) {
		state, rawErr = term.MakeRaw(int(fd))
	}); err != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("failed to access tty: %w", err)
	}
	if rawErr != nil {
		_ = tty.Close()
		return nil, fmt.Errorf("failed to enter raw mode: %w", rawErr)
	}

	t := NewTerminal(out, opts...)
	t.closers = append(t.closers,
		func() error {
			var restoreErr error
			if err := conn.Control(func(fd uintptr) {
				restoreErr = term.Restore(int(fd), state)
			}); err != nil {
				return err
			}
			return restoreErr
		},
		tty.Close,
	)
	t.Listen(tty)
	return t, nil
}

// Listen reads keys from r until it returns an error. Call it at most once.
func (t *Terminal) Listen(r io.Reader) {
	t.mu.Lock()
	if t.listening {
		t.mu.Unlock()
		return
	}
	t.listening = true
	t.mu.Unlock()

	go func() {
		defer close(t.done)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				t.latch(decodeKeys(buf[:n]))
			}
			if err != nil {
				return
			}
		}
	}()
}

// Done is closed once the listener has stopped.
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

func (t *Terminal) latch(keys []string) {
	interrupted := false
	t.mu.Lock()
	for _, k := range keys {
		t.latched[k] = true
		if k == KeyInterrupt {
			interrupted = true
		}
	}
	fn := t.interrupt
	t.mu.Unlock()
	if interrupted && fn != nil {
		fn()
	}
}

// Press implements typing.Keyboard.
func (t *Terminal) Press(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch key {
	case typing.KeyShift:
		t.shift = true
		return nil
	case typing.KeyEnter:
		return t.emit(t.newline())
	case typing.KeyBackspace:
		if t.raw || t.erase {
			return t.emit("\b \b")
		}
		return t.emit("\b")
	case typing.KeySpace:
		return t.emit(" ")
	case typing.KeyTab:
		return t.emit("\t")
	}
	runes := []rune(key)
	if len(runes) != 1 {
		// Named keys without a printable effect.
		return nil
	}
	if t.shift {
		if r, ok := typing.ShiftedRune(key); ok {
			return t.emit(string(r))
		}
	}
	return t.emit(key)
}

// Release implements typing.Keyboard.
func (t *Terminal) Release(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if key == typing.KeyShift {
		t.shift = false
	}
	return nil
}

// Write implements typing.Keyboard.
func (t *Terminal) Write(r rune) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r == '\n' {
		return t.emit(t.newline())
	}
	return t.emit(string(r))
}

// IsPressed implements typing.Keyboard. Reading a latched press clears every
// latch, so keys hit while waiting on one key do not fire afterwards.
func (t *Terminal) IsPressed(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.latched[key] {
		return false
	}
	clear(t.latched)
	return true
}

// Close restores the terminal and stops listening to it.
func (t *Terminal) Close() error {
	t.mu.Lock()
	closers := t.closers
	t.closers = nil
	t.mu.Unlock()
	var errs []error
	for _, fn := range closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Terminal) newline() string {
	if t.raw {
		return "\r\n"
	}
	return "\n"
}

func (t *Terminal) emit(s string) error {
	if _, err := io.WriteString(t.out, s); err != nil {
		return err
	}
	return nil
}

var _ typing.Keyboard = (*Terminal)(nil)
