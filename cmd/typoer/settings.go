package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bioooz/typoer/internal/config"
	"github.com/bioooz/typoer/internal/keyboard"
	"github.com/bioooz/typoer/internal/observability"
	"github.com/bioooz/typoer/internal/typing"
)

var (
	typeWPM         float64
	typeAccuracy    float64
	typeBackspace   float64
	typeCorrection  float64
	typeWaitKey     string
	typeBreakKey    string
	typeCode        bool
	typeLanguage    string
	typeSmartQuotes bool
	typeSeed        int64
	typeNoHistory   bool

	logLevel string
	logFile  string
)

// settings is everything a typing command needs after flags and the config file are merged.
type settings struct {
	typing  typing.Config
	log     observability.LogConfig
	seed    int64
	history bool
}

func registerSettingsFlags(cmd *cobra.Command) {
	defaults := typing.DefaultConfig()
	logDefaults := observability.DefaultLogConfig()
	flags := cmd.PersistentFlags()
	flags.Float64Var(&typeWPM, "wpm", defaults.WPM, "typing speed in words per minute")
	flags.Float64Var(&typeAccuracy, "accuracy", defaults.Accuracy, "probability of typing a character right (0-1)")
	flags.Float64Var(&typeBackspace, "backspace-duration", defaults.BackspaceHold.Seconds(), "seconds to pause after erasing a typo")
	flags.Float64Var(&typeCorrection, "correction-coefficient", defaults.Correction, "probability of retyping after a typo (0-1)")
	flags.StringVar(&typeWaitKey, "wait-key", defaults.StartKey, "key to press before typing starts (empty starts right away)")
	flags.StringVar(&typeBreakKey, "break-key", defaults.AbortKey, "key that stops typing (empty disables)")
	flags.BoolVar(&typeCode, "code", defaults.CodeMode, "treat the text as source code")
	flags.StringVar(&typeLanguage, "language", defaults.Language, "source language for code mode")
	flags.BoolVar(&typeSmartQuotes, "smart-quotes", defaults.SmartQuotes, "never make typos inside string literals")
	flags.Int64Var(&typeSeed, "seed", 0, "random seed for a reproducible run (0 picks one)")
	flags.BoolVar(&typeNoHistory, "no-history", false, "do not record the run")
	flags.StringVar(&logLevel, "log-level", logDefaults.Level, "console log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", "", "write a JSON debug log to this file")
}

// loadSettings merges flags over the config file over defaults.
func loadSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	tc := fileCfg.Typing
	applyFloatConfig(cmd, "wpm", &typeWPM, tc.WPM)
	applyFloatConfig(cmd, "accuracy", &typeAccuracy, tc.Accuracy)
	applyFloatConfig(cmd, "backspace-duration", &typeBackspace, tc.BackspaceDuration)
	applyFloatConfig(cmd, "correction-coefficient", &typeCorrection, tc.CorrectionCoefficient)
	applyStringConfig(cmd, "wait-key", &typeWaitKey, tc.WaitKey)
	applyStringConfig(cmd, "break-key", &typeBreakKey, tc.BreakKey)
	applyBoolConfig(cmd, "code", &typeCode, tc.Code)
	applyStringConfig(cmd, "language", &typeLanguage, tc.Language)
	applyBoolConfig(cmd, "smart-quotes", &typeSmartQuotes, tc.SmartQuotes)
	if tc.History != nil && !cmd.Flags().Changed("no-history") {
		typeNoHistory = !*tc.History
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)

	cfg := typing.DefaultConfig()
	cfg.WPM = typeWPM
	cfg.Accuracy = typeAccuracy
	cfg.BackspaceHold = time.Duration(typeBackspace * float64(time.Second))
	cfg.Correction = typeCorrection
	cfg.StartKey = keyboard.NormalizeKey(typeWaitKey)
	cfg.AbortKey = keyboard.NormalizeKey(typeBreakKey)
	cfg.CodeMode = typeCode
	cfg.Language = typeLanguage
	cfg.SmartQuotes = typeSmartQuotes
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = logLevel
	logCfg.File = logFile
	if fileCfg.Log.MaxSizeMB != nil {
		logCfg.MaxSizeMB = *fileCfg.Log.MaxSizeMB
	}
	if fileCfg.Log.MaxBackups != nil {
		logCfg.MaxBackups = *fileCfg.Log.MaxBackups
	}

	return settings{
		typing:  cfg,
		log:     logCfg,
		seed:    typeSeed,
		history: !typeNoHistory,
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	defaults := typing.DefaultConfig()
	logDefaults := observability.DefaultLogConfig()
	return fmt.Sprintf(`# typoer configuration
# Uncomment a value to enable it. CLI flags override config values.

[typing]
# wpm = %.1f                     # Words per minute
# accuracy = %.2f                # Probability of typing a character right (0-1)
# backspace-duration = %.2f      # Seconds to pause after erasing a typo
# correction-coefficient = %.2f  # Probability of retyping after a typo (0-1)
# wait-key = "f2"                # Key to press before typing starts
# break-key = %q            # Key that stops typing
# code = false                   # Treat the text as source code
# language = %q          # Source language for code mode
# smart-quotes = %t            # Never make typos inside string literals
# history = true                 # Record runs for "typoer history"

[log]
# level = %q                   # Console log level
# file = %q
# max-size-mb = %d                 # Rotate the log file at this size
# max-backups = %d                 # Rotated files to keep
`,
		defaults.WPM,
		defaults.Accuracy,
		defaults.BackspaceHold.Seconds(),
		defaults.Correction,
		defaults.AbortKey,
		defaults.Language,
		defaults.SmartQuotes,
		logDefaults.Level,
		config.DefaultLogPath(),
		logDefaults.MaxSizeMB,
		logDefaults.MaxBackups,
	)
}
