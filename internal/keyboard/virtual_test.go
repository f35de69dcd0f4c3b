package keyboard

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/bioooz/typoer/internal/typing"
)

func TestVirtualBuffersChords(t *testing.T) {
	v := NewVirtual()
	steps := []func() error{
		func() error { return v.Write('h') },
		func() error { return v.Press(typing.KeyShift) },
		func() error { return v.Press("1") },
		func() error { return v.Release("1") },
		func() error { return v.Release(typing.KeyShift) },
		func() error { return v.Press("1") },
		func() error { return v.Press(typing.KeyEnter) },
		func() error { return v.Write('x') },
		func() error { return v.Press(typing.KeyBackspace) },
		func() error { return v.Press(typing.KeySpace) },
		func() error { return v.Press("f2") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	if got := v.Text(); got != "h!1\n " {
		t.Fatalf("unexpected buffer: %q", got)
	}
	if got := len(v.Strokes()); got != len(steps) {
		t.Fatalf("expected %d strokes, got %d", len(steps), got)
	}
}

func TestVirtualHoldAndLift(t *testing.T) {
	v := NewVirtual()
	if v.IsPressed(typing.KeyEscape) {
		t.Fatalf("expected escape to start released")
	}
	v.Hold(typing.KeyEscape)
	if !v.IsPressed(typing.KeyEscape) {
		t.Fatalf("expected escape to be held")
	}
	v.Lift(typing.KeyEscape)
	if v.IsPressed(typing.KeyEscape) {
		t.Fatalf("expected escape to be released")
	}
}

func TestVirtualFailOn(t *testing.T) {
	v := NewVirtual()
	boom := errors.New("boom")
	v.FailOn("write", "", boom)
	if err := v.Write('a'); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if err := v.Press("a"); err != nil {
		t.Fatalf("press should not fail: %v", err)
	}
}

func TestVirtualDrivesTypistEndToEnd(t *testing.T) {
	cfg := typing.DefaultConfig()
	cfg.Accuracy = 0.7
	cfg.Correction = 1
	text := "Hello, \"World\"!\nprint('done') # ok?"
	v := NewVirtual()
	noSleep := typing.SleeperFunc(func(ctx context.Context, _ time.Duration) error { return ctx.Err() })
	typist, err := typing.New(cfg, v, typing.WithRand(rand.New(rand.NewSource(42))), typing.WithSleeper(noSleep))
	if err != nil {
		t.Fatalf("new typist: %v", err)
	}
	res, err := typist.Run(context.Background(), text)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Status != typing.StatusCompleted {
		t.Fatalf("expected completed, got %s", res.Status)
	}
	if got := v.Text(); got != text {
		t.Fatalf("fully corrected run should reproduce text, got %q", got)
	}
	if res.Stats.Uncorrected != 0 {
		t.Fatalf("expected no uncorrected typos, got %d", res.Stats.Uncorrected)
	}
}

func TestVirtualHeldAbortKeyCancels(t *testing.T) {
	v := NewVirtual()
	v.Hold(typing.KeyEscape)
	noSleep := typing.SleeperFunc(func(ctx context.Context, _ time.Duration) error { return nil })
	typist, err := typing.New(typing.DefaultConfig(), v, typing.WithSleeper(noSleep))
	if err != nil {
		t.Fatalf("new typist: %v", err)
	}
	res, err := typist.Run(context.Background(), "never typed")
	if err != nil {
		t.Fatalf("cancellation is not an error: %v", err)
	}
	if res.Status != typing.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", res.Status)
	}
	if v.Text() != "" {
		t.Fatalf("expected empty buffer, got %q", v.Text())
	}
}
