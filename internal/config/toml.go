// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Typing TypingConfig `toml:"typing"`
	Log    LogConfig    `toml:"log"`
}

// TypingConfig maps typing-related settings.
type TypingConfig struct {
	WPM                   *float64 `toml:"wpm"`
	Accuracy              *float64 `toml:"accuracy"`
	BackspaceDuration     *float64 `toml:"backspace-duration"`
	CorrectionCoefficient *float64 `toml:"correction-coefficient"`
	WaitKey               *string  `toml:"wait-key"`
	BreakKey              *string  `toml:"break-key"`
	Code                  *bool    `toml:"code"`
	Language              *string  `toml:"language"`
	SmartQuotes           *bool    `toml:"smart-quotes"`
	History               *bool    `toml:"history"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level      *string `toml:"level"`
	File       *string `toml:"file"`
	MaxSizeMB  *int    `toml:"max-size-mb"`
	MaxBackups *int    `toml:"max-backups"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
