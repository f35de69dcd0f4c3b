// Package main provides the CLI entrypoint for typoer.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/bioooz/typoer/internal/config"
	"github.com/bioooz/typoer/internal/keyboard"
	"github.com/bioooz/typoer/internal/model"
	"github.com/bioooz/typoer/internal/observability"
	"github.com/bioooz/typoer/internal/preview"
	"github.com/bioooz/typoer/internal/stats"
	"github.com/bioooz/typoer/internal/store"
	"github.com/bioooz/typoer/internal/typing"
)

const defaultHistoryLast = 20

var errNoText = errors.New("no text to type: pass it as an argument or pipe it on stdin")

var (
	historyLast   int
	historyStatus string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typoer [text]",
		Short:         "Type text like a human would",
		Long:          "typoer types text into the terminal at a configurable speed, making and fixing typos along the way.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTypeCmd,
	}
	registerSettingsFlags(rootCmd)

	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func runTypeCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(s.log, zapcore.Lock(os.Stderr))
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ttyOut := term.IsTerminal(int(os.Stdout.Fd()))
	kb, err := keyboard.OpenTTY(os.Stdout, keyboard.WithInterrupt(stop), keyboard.WithRawOutput(ttyOut))
	if err != nil {
		if s.typing.StartKey != "" {
			return fmt.Errorf("--wait-key needs a terminal: %w", err)
		}
		logger.Warn("typing without key controls", zap.Error(err))
		kb = keyboard.NewTerminal(os.Stdout, keyboard.WithErasingBackspace(ttyOut))
	}
	defer func() {
		if cerr := kb.Close(); cerr != nil {
			logErrf("failed to restore terminal: %v\n", cerr)
		}
	}()

	if s.typing.StartKey != "" {
		logErrf("Press %s to start typing.\r\n", s.typing.StartKey)
	}
	typist, err := typing.New(s.typing, kb, engineOptions(s, logger)...)
	if err != nil {
		return err
	}
	logger.Debug("typing", zap.Duration("base_delay", typist.BaseDelay()), zap.Int("chars", len([]rune(text))))
	res, runErr := typist.Run(ctx, text)
	recordRun(logger, s, "terminal", res, runErr)
	return exitStatus(res, runErr)
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [text]",
		Short: "Watch the simulation in a TUI without touching the terminal",
		RunE:  runPreviewCmd,
	}
}

func runPreviewCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	text, err := readText(cmd, args)
	if err != nil {
		return err
	}

	// The UI owns the screen, so only the log file receives entries.
	logger, err := observability.NewLogger(s.log, zapcore.AddSync(io.Discard))
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	res, runErr := preview.Run(cmd.Context(), s.typing, text, preview.Options{
		Typing:  engineOptions(s, logger),
		Program: []tea.ProgramOption{tea.WithAltScreen()},
	})
	if errors.Is(runErr, typing.ErrInvalidConfig) {
		return runErr
	}
	recordRun(logger, s, "virtual", res, runErr)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("failed to run preview: %w", runErr)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N runs (0 for all)")
	cmd.Flags().StringVar(&historyStatus, "status", "", "filter by status (completed, cancelled, failed)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(cmd.Context(), model.HistoryConfig{Last: historyLast, Status: historyStatus})
	if err != nil {
		return fmt.Errorf("failed to load runs: %w", err)
	}
	return stats.RenderHistory(cmd.OutOrStdout(), runs)
}

func engineOptions(s settings, logger *zap.Logger) []typing.Option {
	opts := []typing.Option{typing.WithSink(observability.NewLogSink(logger))}
	if s.seed != 0 {
		opts = append(opts, typing.WithRand(rand.New(rand.NewSource(s.seed))))
	}
	return opts
}

// readText takes the text from args, or from stdin when it is not a terminal.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			return text, nil
		}
	}
	_ = cmd.Help()
	return "", errNoText
}

func recordRun(logger *zap.Logger, s settings, backend string, res typing.Result, runErr error) {
	if !s.history || res.StartedAt.IsZero() {
		return
	}
	run := runRecord(s.typing, backend, res, runErr)
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logger.Warn("run history unavailable", zap.Error(err))
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", zap.Error(cerr))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := st.InsertRun(ctx, run); err != nil {
		logger.Warn("failed to record run", zap.Error(err))
	}
}

func runRecord(cfg typing.Config, backend string, res typing.Result, runErr error) model.Run {
	run := model.Run{
		StartedAt:   res.StartedAt,
		EndedAt:     res.EndedAt,
		Status:      res.Status.String(),
		Backend:     backend,
		WPM:         cfg.WPM,
		Accuracy:    cfg.Accuracy,
		Correction:  cfg.Correction,
		Chars:       res.Stats.Chars,
		Typos:       res.Stats.Typos,
		Corrected:   res.Stats.Corrected,
		Uncorrected: res.Stats.Uncorrected,
		Lines:       res.Stats.Lines,
		DurationMs:  res.Duration().Milliseconds(),
	}
	switch {
	case errors.Is(runErr, context.Canceled):
		run.Status = "interrupted"
	case runErr != nil:
		run.Status = "failed"
		run.Error = runErr.Error()
	}
	return run
}

// exitStatus maps a finished run to the command result. Stopping on purpose is not a failure.
func exitStatus(res typing.Result, runErr error) error {
	switch {
	case errors.Is(runErr, context.Canceled):
		logErrln("\r\nInterrupted.")
		return nil
	case runErr != nil:
		return runErr
	case res.Status == typing.StatusCancelled:
		logErrln("\r\nStopped by break key.")
		return nil
	default:
		return nil
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
