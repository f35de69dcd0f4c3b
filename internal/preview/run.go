package preview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bioooz/typoer/internal/keyboard"
	"github.com/bioooz/typoer/internal/typing"
)

// Options tunes a preview run.
type Options struct {
	// Typing options are passed to the engine; a sink given here still receives events.
	Typing []typing.Option
	// Program options are passed to the Bubble Tea program.
	Program []tea.ProgramOption
	// AutoQuit closes the UI as soon as the engine finishes.
	AutoQuit bool
}

// Run types text into a virtual keyboard on a worker goroutine while the UI
// renders the buffer. It returns once both the UI and the engine have stopped.
func Run(ctx context.Context, cfg typing.Config, text string, opts Options) (typing.Result, error) {
	kb := keyboard.NewVirtual()
	var p *tea.Program
	forward := typing.SinkFunc(func(ev typing.Event) {
		p.Send(eventMsg{ev: ev, buffer: kb.Runes()})
	})
	typingOpts := append([]typing.Option{}, opts.Typing...)
	typingOpts = append(typingOpts, typing.WithSink(forward))
	typist, err := typing.New(cfg, kb, typingOpts...)
	if err != nil {
		return typing.Result{}, err
	}
	m := NewModel(typist.Config(), kb, text)
	m.autoQuit = opts.AutoQuit
	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, opts.Program...)
	p = tea.NewProgram(m, programOpts...)

	engineCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan doneMsg, 1)
	go func() {
		res, err := typist.Run(engineCtx, text)
		done <- doneMsg{res: res, err: err}
		p.Send(doneMsg{res: res, err: err})
	}()

	_, uiErr := p.Run()
	cancel()
	out := <-done
	if uiErr != nil && out.err == nil {
		return out.res, uiErr
	}
	return out.res, out.err
}
