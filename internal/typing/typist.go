package typing

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Status tells a finished session apart from one stopped by the abort key.
type Status int

const (
	// StatusCompleted means every character of the text was processed.
	StatusCompleted Status = iota
	// StatusCancelled means the abort key stopped the session early.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Stats counts what a session did.
type Stats struct {
	Chars       int
	Typos       int
	Corrected   int
	Uncorrected int
	Lines       int
}

// Result is returned by Run on every path, including errors.
type Result struct {
	Status    Status
	Stats     Stats
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the session ran.
func (r Result) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Option customizes a Typist.
type Option func(*Typist)

// WithRand sets the randomness source.
func WithRand(rng Rand) Option {
	return func(t *Typist) {
		if rng != nil {
			t.rng = rng
		}
	}
}

// WithSleeper replaces real-time sleeping.
func WithSleeper(s Sleeper) Option {
	return func(t *Typist) {
		if s != nil {
			t.sleeper = s
		}
	}
}

// WithSink adds an event sink. Sinks observe events in the order they were added.
func WithSink(s Sink) Option {
	return func(t *Typist) {
		if s != nil {
			t.sinks = append(t.sinks, s)
		}
	}
}

// WithPolicy sets the emission policy.
func WithPolicy(p EmissionPolicy) Option {
	return func(t *Typist) {
		if p != nil {
			t.policy = p
		}
	}
}

// Typist drives a Keyboard through one or more sessions. It is not safe for
// concurrent use.
type Typist struct {
	cfg     Config
	kb      Keyboard
	base    time.Duration
	rng     Rand
	sleeper Sleeper
	sinks   []Sink
	sink    Sink
	policy  EmissionPolicy
	now     func() time.Time
}

// New validates cfg and returns a Typist bound to kb.
func New(cfg Config, kb Keyboard, opts ...Option) (*Typist, error) {
	if kb == nil {
		return nil, errors.New("typing: keyboard is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := BaseDelay(cfg.WPM)
	if err != nil {
		return nil, err
	}
	var policy EmissionPolicy = PassThrough{}
	if cfg.CodeMode {
		policy = NewCodePolicy(cfg)
	}
	t := &Typist{
		cfg:     cfg,
		kb:      kb,
		base:    base,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		sleeper: realSleeper{},
		policy:  policy,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.sink = Sinks(t.sinks...)
	return t, nil
}

// Config returns the session settings.
func (t *Typist) Config() Config {
	return t.cfg
}

// BaseDelay returns the per-character delay derived from the configured WPM.
func (t *Typist) BaseDelay() time.Duration {
	return t.base
}

// Run types text in a single left-to-right pass. The abort key ends the
// session with StatusCancelled and a nil error; keyboard failures and
// context cancellation end it with an error. Output already typed is left
// in place.
func (t *Typist) Run(ctx context.Context, text string) (res Result, err error) {
	res.StartedAt = t.now()
	t.notify(Event{Kind: EventStart})
	defer func() {
		res.EndedAt = t.now()
		switch {
		case err != nil:
			t.notify(Event{Kind: EventError, Err: err, Result: res})
		case res.Status == StatusCancelled:
			t.notify(Event{Kind: EventCancelled, Result: res})
		default:
			t.notify(Event{Kind: EventComplete, Result: res})
		}
	}()

	if err := t.waitForStart(ctx); err != nil {
		return res, err
	}

	var sc StringContext
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if t.aborted() {
			res.Status = StatusCancelled
			return res, nil
		}
		for _, r := range line {
			if t.aborted() {
				res.Status = StatusCancelled
				return res, nil
			}
			if err := t.typeRune(ctx, r, &sc, &res.Stats); err != nil {
				return res, err
			}
		}
		res.Stats.Lines++
		if i == len(lines)-1 {
			break
		}
		if err := t.tap(KeyEnter); err != nil {
			return res, err
		}
		if err := t.sleep(ctx, t.base); err != nil {
			return res, err
		}
	}
	res.Status = StatusCompleted
	return res, nil
}

func (t *Typist) typeRune(ctx context.Context, r rune, sc *StringContext, stats *Stats) error {
	out := t.policy.Expand(r)
	if len(out) == 0 {
		out = []rune{r}
	}
	for _, ch := range out {
		inString := sc.Inside()
		if t.cfg.SmartQuotes {
			inString = sc.Observe(ch)
		}
		outcome, err := t.typeChar(ctx, ch, inString)
		if err != nil {
			return err
		}
		stats.Chars++
		switch outcome {
		case TypoCorrected:
			stats.Typos++
			stats.Corrected++
		case TypoUncorrected:
			stats.Typos++
			stats.Uncorrected++
		}
		t.notify(Event{Kind: EventChar, Rune: ch, Outcome: outcome})
	}
	return nil
}

// typeChar emits r, or a typo in its place followed by a backspace and,
// depending on the correction draw, r itself.
func (t *Typist) typeChar(ctx context.Context, r rune, inString bool) (TypoOutcome, error) {
	if !shouldTypo(t.rng, t.cfg.Accuracy, inString) {
		if err := t.emit(r); err != nil {
			return NoTypo, err
		}
		return NoTypo, t.sleep(ctx, Pause(r, t.base))
	}

	sub := substitute(t.rng, r)
	if err := t.write(sub); err != nil {
		return NoTypo, err
	}
	if err := t.sleep(ctx, typoHold); err != nil {
		return NoTypo, err
	}
	if err := t.tap(KeyBackspace); err != nil {
		return NoTypo, err
	}
	if err := t.sleep(ctx, t.cfg.BackspaceHold); err != nil {
		return NoTypo, err
	}

	outcome := TypoUncorrected
	if t.rng.Float64() < t.cfg.Correction {
		if err := t.emit(r); err != nil {
			return NoTypo, err
		}
		if err := t.sleep(ctx, Pause(r, t.base)); err != nil {
			return NoTypo, err
		}
		outcome = TypoCorrected
	}
	t.notify(Event{Kind: EventTypo, Rune: r, Substitute: sub, Outcome: outcome})
	return outcome, nil
}

// emit produces r either as a held key chord or as a direct write.
func (t *Typist) emit(r rune) error {
	keys, ok := Encode(r)
	if !ok {
		return t.write(r)
	}
	for _, k := range keys {
		if err := t.kb.Press(k); err != nil {
			return &BackendError{Op: "press", Key: k, Err: err}
		}
	}
	for _, k := range ReleaseOrder(keys) {
		if err := t.kb.Release(k); err != nil {
			return &BackendError{Op: "release", Key: k, Err: err}
		}
	}
	return nil
}

func (t *Typist) write(r rune) error {
	if err := t.kb.Write(r); err != nil {
		return &BackendError{Op: "write", Key: string(r), Err: err}
	}
	return nil
}

func (t *Typist) tap(key string) error {
	if err := t.kb.Press(key); err != nil {
		return &BackendError{Op: "press", Key: key, Err: err}
	}
	if err := t.kb.Release(key); err != nil {
		return &BackendError{Op: "release", Key: key, Err: err}
	}
	return nil
}

func (t *Typist) waitForStart(ctx context.Context) error {
	if t.cfg.StartKey == "" {
		return nil
	}
	for !t.kb.IsPressed(t.cfg.StartKey) {
		if err := t.sleep(ctx, pollInterval); err != nil {
			return err
		}
	}
	return nil
}

func (t *Typist) aborted() bool {
	return t.cfg.AbortKey != "" && t.kb.IsPressed(t.cfg.AbortKey)
}

func (t *Typist) sleep(ctx context.Context, d time.Duration) error {
	if err := t.sleeper.Sleep(ctx, d); err != nil {
		return fmt.Errorf("typing interrupted: %w", err)
	}
	return nil
}

// notify delivers ev to every sink. A misbehaving sink never fails the session.
func (t *Typist) notify(ev Event) {
	if ev.At.IsZero() {
		ev.At = t.now()
	}
	t.sink.Observe(ev)
}
