// Package stats contains run history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bioooz/typoer/internal/model"
)

const sparkChars = " .:-=+*#%@"

// RunMetrics computes the effective WPM and the typo rate for a run.
func RunMetrics(run model.Run) (wpm, typoRate float64) {
	if run.Chars > 0 {
		typoRate = float64(run.Typos) / float64(run.Chars)
	}
	if run.DurationMs <= 0 {
		return 0, typoRate
	}
	minutes := float64(run.DurationMs) / 60000.0
	wpm = (float64(run.Chars) / 5.0) / minutes
	return wpm, typoRate
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderHistory prints recorded runs as an aligned table followed by a summary.
func RenderHistory(w io.Writer, runs []model.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	tbl := newTable(
		column{title: "Ended"},
		column{title: "Status"},
		column{title: "Backend"},
		column{title: "Chars", numeric: true},
		column{title: "Lines", numeric: true},
		column{title: "Typos", numeric: true},
		column{title: "Fixed", numeric: true},
		column{title: "Target", numeric: true},
		column{title: "Effective", numeric: true},
		column{title: "Duration", numeric: true},
	)
	effective := make([]float64, 0, len(runs))
	var totalChars, totalTypos, completed int
	for _, run := range runs {
		wpm, _ := RunMetrics(run)
		effective = append(effective, wpm)
		totalChars += run.Chars
		totalTypos += run.Typos
		if run.Status == "completed" {
			completed++
		}
		tbl.add(
			run.EndedAt.Local().Format("2006-01-02 15:04"),
			run.Status,
			run.Backend,
			strconv.Itoa(run.Chars),
			strconv.Itoa(run.Lines),
			strconv.Itoa(run.Typos),
			strconv.Itoa(run.Corrected),
			fmt.Sprintf("%.0f", run.WPM),
			fmt.Sprintf("%.1f", wpm),
			formatDuration(run.DurationMs),
		)
	}
	for _, line := range tbl.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	typoRate := 0.0
	if totalChars > 0 {
		typoRate = float64(totalTypos) / float64(totalChars)
	}
	summary := []string{
		"",
		"Summary",
		fmt.Sprintf("  Runs:       %d (%d completed)", len(runs), completed),
		fmt.Sprintf("  Characters: %d", totalChars),
		fmt.Sprintf("  Typo rate:  %.2f%%", typoRate*100),
		fmt.Sprintf("  Effective:  %s", Sparkline(MovingAverage(effective, 3))),
	}
	for _, line := range summary {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatDuration(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000.0)
}
