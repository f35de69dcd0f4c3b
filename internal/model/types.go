// Package model defines shared data structures.
package model

import "time"

// Run captures one finished typing session for the history store.
type Run struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	Status      string
	Backend     string
	WPM         float64
	Accuracy    float64
	Correction  float64
	Chars       int
	Typos       int
	Corrected   int
	Uncorrected int
	Lines       int
	DurationMs  int64
	Error       string
}

// HistoryConfig defines filters for the history listing.
type HistoryConfig struct {
	Last   int
	Status string
}
