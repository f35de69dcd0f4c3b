// Package keyboard provides keystroke backends for the typing engine.
package keyboard

import (
	"sync"

	"github.com/bioooz/typoer/internal/typing"
)

// Stroke is one recorded keyboard operation.
type Stroke struct {
	Op  string
	Key string
}

type failure struct {
	op  string
	key string
}

// Virtual is an in-memory keyboard. It records every operation and keeps
// the text a focused editor would show. It is safe for concurrent use, so a
// UI can read the buffer and hold keys while a session types.
type Virtual struct {
	mu       sync.Mutex
	strokes  []Stroke
	text     []rune
	down     map[string]bool
	held     map[string]bool
	failures map[failure]error
}

// NewVirtual returns an empty virtual keyboard.
func NewVirtual() *Virtual {
	return &Virtual{
		down:     map[string]bool{},
		held:     map[string]bool{},
		failures: map[failure]error{},
	}
}

// Press implements typing.Keyboard.
func (v *Virtual) Press(key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.failure("press", key); err != nil {
		return err
	}
	v.strokes = append(v.strokes, Stroke{Op: "press", Key: key})
	v.down[key] = true
	switch key {
	case typing.KeyShift:
	case typing.KeyBackspace:
		if len(v.text) > 0 {
			v.text = v.text[:len(v.text)-1]
		}
	case typing.KeyEnter:
		v.text = append(v.text, '\n')
	case typing.KeySpace:
		v.text = append(v.text, ' ')
	case typing.KeyTab:
		v.text = append(v.text, '\t')
	default:
		v.text = append(v.text, v.produced(key)...)
	}
	return nil
}

// produced returns the runes a plain key press adds to the buffer.
func (v *Virtual) produced(key string) []rune {
	runes := []rune(key)
	if len(runes) != 1 {
		return nil
	}
	if v.down[typing.KeyShift] {
		if r, ok := typing.ShiftedRune(key); ok {
			return []rune{r}
		}
	}
	return runes
}

// Release implements typing.Keyboard.
func (v *Virtual) Release(key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.failure("release", key); err != nil {
		return err
	}
	v.strokes = append(v.strokes, Stroke{Op: "release", Key: key})
	delete(v.down, key)
	return nil
}

// Write implements typing.Keyboard.
func (v *Virtual) Write(r rune) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.failure("write", string(r)); err != nil {
		return err
	}
	v.strokes = append(v.strokes, Stroke{Op: "write", Key: string(r)})
	v.text = append(v.text, r)
	return nil
}

// IsPressed implements typing.Keyboard. A key counts as pressed while the
// session holds it or a controller has called Hold.
func (v *Virtual) IsPressed(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.down[key] || v.held[key]
}

// Hold marks key as held by someone other than the session.
func (v *Virtual) Hold(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.held[key] = true
}

// Lift undoes Hold.
func (v *Virtual) Lift(key string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.held, key)
}

// FailOn makes every matching operation return err. An empty key matches
// every key.
func (v *Virtual) FailOn(op, key string, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.failures[failure{op: op, key: key}] = err
}

func (v *Virtual) failure(op, key string) error {
	if err, ok := v.failures[failure{op: op, key: key}]; ok {
		return err
	}
	return v.failures[failure{op: op}]
}

// Text returns the current buffer.
func (v *Virtual) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return string(v.text)
}

// Runes returns a copy of the current buffer.
func (v *Virtual) Runes() []rune {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]rune, len(v.text))
	copy(out, v.text)
	return out
}

// Strokes returns a copy of the recorded operations.
func (v *Virtual) Strokes() []Stroke {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Stroke, len(v.strokes))
	copy(out, v.strokes)
	return out
}

var _ typing.Keyboard = (*Virtual)(nil)
