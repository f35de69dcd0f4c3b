package typing

import (
	"context"
	"time"
)

type stroke struct {
	Op  string
	Key string
}

// fakeKeyboard records every operation and keeps the text a US layout
// target would show.
type fakeKeyboard struct {
	strokes []stroke
	text    []rune
	shift   bool

	pressedFn func(key string) bool
	polls     map[string]int

	failOp  string
	failKey string
	failErr error
}

func newFakeKeyboard() *fakeKeyboard {
	return &fakeKeyboard{polls: map[string]int{}}
}

func (k *fakeKeyboard) fail(op, key string) error {
	if k.failErr != nil && k.failOp == op && (k.failKey == "" || k.failKey == key) {
		return k.failErr
	}
	return nil
}

func (k *fakeKeyboard) Press(key string) error {
	if err := k.fail("press", key); err != nil {
		return err
	}
	k.strokes = append(k.strokes, stroke{Op: "press", Key: key})
	switch key {
	case KeyShift:
		k.shift = true
	case KeyBackspace:
		if len(k.text) > 0 {
			k.text = k.text[:len(k.text)-1]
		}
	case KeyEnter:
		k.text = append(k.text, '\n')
	default:
		if k.shift {
			if r, ok := ShiftedRune(key); ok {
				k.text = append(k.text, r)
				return nil
			}
		}
		k.text = append(k.text, []rune(key)...)
	}
	return nil
}

func (k *fakeKeyboard) Release(key string) error {
	if err := k.fail("release", key); err != nil {
		return err
	}
	k.strokes = append(k.strokes, stroke{Op: "release", Key: key})
	if key == KeyShift {
		k.shift = false
	}
	return nil
}

func (k *fakeKeyboard) Write(r rune) error {
	if err := k.fail("write", string(r)); err != nil {
		return err
	}
	k.strokes = append(k.strokes, stroke{Op: "write", Key: string(r)})
	k.text = append(k.text, r)
	return nil
}

func (k *fakeKeyboard) IsPressed(key string) bool {
	k.polls[key]++
	if k.pressedFn == nil {
		return false
	}
	return k.pressedFn(key)
}

func (k *fakeKeyboard) writes() []rune {
	var out []rune
	for _, s := range k.strokes {
		if s.Op == "write" {
			out = append(out, []rune(s.Key)...)
		}
	}
	return out
}

// recordingSleeper returns immediately and remembers every requested pause.
type recordingSleeper struct {
	durations []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.durations = append(s.durations, d)
	return ctx.Err()
}

// scriptedRand replays fixed draws. Once a script runs out it repeats its
// last value.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[min(r.fi, len(r.floats)-1)]
	r.fi++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[min(r.ii, len(r.ints)-1)]
	r.ii++
	return v % n
}

type eventLog struct {
	events []Event
}

func (l *eventLog) Observe(ev Event) {
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []EventKind {
	out := make([]EventKind, 0, len(l.events))
	for _, ev := range l.events {
		out = append(out, ev.Kind)
	}
	return out
}
