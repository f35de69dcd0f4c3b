package typing

import (
	"context"
	"math"
	"time"
)

const (
	sentencePause = 50 * time.Millisecond
	clausePause   = 20 * time.Millisecond
	newlinePause  = 50 * time.Millisecond

	typoHold     = 10 * time.Millisecond
	pollInterval = 100 * time.Millisecond

	charsPerWord = 5
)

// BaseDelay converts words per minute into the delay between characters,
// counting five characters per word. Speeds whose delay does not fit a
// time.Duration, or rounds below a nanosecond, are rejected.
func BaseDelay(wpm float64) (time.Duration, error) {
	if math.IsNaN(wpm) || math.IsInf(wpm, 0) || wpm <= 0 {
		return 0, &ConfigError{Field: "wpm", Reason: "must be > 0"}
	}
	ns := 60.0 / (wpm * charsPerWord) * float64(time.Second)
	if ns >= math.MaxInt64 {
		return 0, &ConfigError{Field: "wpm", Reason: "too slow, the delay overflows"}
	}
	if ns < 1 {
		return 0, &ConfigError{Field: "wpm", Reason: "too fast, the delay is below a nanosecond"}
	}
	return time.Duration(ns), nil
}

// Pause returns how long to wait after emitting r.
func Pause(r rune, base time.Duration) time.Duration {
	switch r {
	case '.', '?', '!':
		return sentencePause
	case ',', ':', ';':
		return clausePause
	case '\n':
		return newlinePause
	default:
		return base
	}
}

// Sleeper blocks for a duration. Implementations must return early with
// ctx.Err() when the context is done.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep implements Sleeper.
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
