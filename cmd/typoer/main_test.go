package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bioooz/typoer/internal/config"
	"github.com/bioooz/typoer/internal/typing"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "typoer", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadSettingsPrecedence(t *testing.T) {
	writeConfig(t, `
[typing]
wpm = 60.0
accuracy = 0.8
break-key = "ESC"
history = false

[log]
level = "debug"
max-backups = 7
`)
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--wpm", "90", "--backspace-duration", "0.25"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if s.typing.WPM != 90 {
		t.Fatalf("flag should win over config, got wpm %v", s.typing.WPM)
	}
	if s.typing.Accuracy != 0.8 {
		t.Fatalf("config should win over default, got accuracy %v", s.typing.Accuracy)
	}
	if s.typing.BackspaceHold != 250*time.Millisecond {
		t.Fatalf("unexpected backspace hold: %v", s.typing.BackspaceHold)
	}
	if s.typing.AbortKey != typing.KeyEscape {
		t.Fatalf("expected normalized break key, got %q", s.typing.AbortKey)
	}
	if s.typing.Correction != typing.DefaultConfig().Correction {
		t.Fatalf("expected default correction, got %v", s.typing.Correction)
	}
	if s.history {
		t.Fatalf("expected history disabled by config")
	}
	if s.log.Level != "debug" || s.log.MaxBackups != 7 {
		t.Fatalf("unexpected log config: %+v", s.log)
	}
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	writeConfig(t, "")
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--accuracy", "1.5"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadSettings(cmd); !errors.Is(err, typing.ErrInvalidConfig) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("template should parse: %v", err)
	}
	if cfg.Typing.WPM != nil {
		t.Fatalf("template values should be commented out")
	}
	if !strings.Contains(defaultConfigTemplate(), `break-key = "escape"`) {
		t.Fatalf("expected default break key in template")
	}
}

func TestReadTextJoinsArgs(t *testing.T) {
	text, err := readText(newRootCmd(), []string{"hello", "world"})
	if err != nil {
		t.Fatalf("read text: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestRunRecordStatus(t *testing.T) {
	start := time.Now()
	res := typing.Result{
		Status:    typing.StatusCompleted,
		Stats:     typing.Stats{Chars: 4, Typos: 1, Corrected: 1, Lines: 1},
		StartedAt: start,
		EndedAt:   start.Add(2 * time.Second),
	}
	cfg := typing.DefaultConfig()

	run := runRecord(cfg, "terminal", res, nil)
	if run.Status != "completed" || run.DurationMs != 2000 || run.Chars != 4 || run.WPM != cfg.WPM {
		t.Fatalf("unexpected run: %+v", run)
	}
	run = runRecord(cfg, "terminal", res, fmt.Errorf("typing interrupted: %w", context.Canceled))
	if run.Status != "interrupted" || run.Error != "" {
		t.Fatalf("unexpected interrupted run: %+v", run)
	}
	run = runRecord(cfg, "terminal", res, errors.New("boom"))
	if run.Status != "failed" || run.Error != "boom" {
		t.Fatalf("unexpected failed run: %+v", run)
	}
}

func TestExitStatus(t *testing.T) {
	if err := exitStatus(typing.Result{Status: typing.StatusCancelled}, nil); err != nil {
		t.Fatalf("break key should exit cleanly: %v", err)
	}
	if err := exitStatus(typing.Result{}, fmt.Errorf("typing interrupted: %w", context.Canceled)); err != nil {
		t.Fatalf("interrupt should exit cleanly: %v", err)
	}
	boom := errors.New("boom")
	if err := exitStatus(typing.Result{}, boom); !errors.Is(err, boom) {
		t.Fatalf("expected run error, got %v", err)
	}
}
