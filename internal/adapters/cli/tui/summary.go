package tui

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// renderProgressBar creates a text progress bar like [=====>    ]
// current=0, total=10, width=10 → [          ]
// current=5, total=10, width=10 → [=====>    ]
// current=10, total=10, width=10 → [==========]
// current=3, total=10, width=10 → [==>       ]
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	var bar strings.Builder
	bar.WriteString("[")

	switch {
	case current >= total:
		bar.WriteString(strings.Repeat("=", width))
	case current <= 0:
		bar.WriteString(strings.Repeat(" ", width))
	default:
		ratio := float64(current) / float64(total)
		head := int(ratio*float64(width) + 0.5)
		if head < 1 {
			head = 1
		}
		if head > width {
			head = width
		}

		// from the halfway mark the arrow sits after the filled cells
		equals := head - 1
		if ratio >= 0.5 {
			equals = head
		}
		equals = max(0, min(equals, width-1))
		spaces := max(0, width-equals-1)

		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", spaces))
	}

	bar.WriteString("]")
	return bar.String()
}

// BatchLine is one processed file in the end-of-batch summary
type BatchLine struct {
	Name     string
	Strategy string
	Output   string
	ErrMsg   string
	Duration time.Duration
}

// Failed reports whether the line records an error
func (l BatchLine) Failed() bool {
	return l.ErrMsg != ""
}

// BatchSummary collects per-file outcomes and prints them once the batch ends
type BatchSummary struct {
	lines []BatchLine
	quiet bool
}

// NewBatchSummary creates an empty summary
func NewBatchSummary(quiet bool) *BatchSummary {
	return &BatchSummary{quiet: quiet}
}

// Add appends one outcome
func (s *BatchSummary) Add(line BatchLine) {
	s.lines = append(s.lines, line)
}

// SuccessCount returns the number of files without an error
func (s *BatchSummary) SuccessCount() int {
	n := 0
	for _, l := range s.lines {
		if !l.Failed() {
			n++
		}
	}
	return n
}

// FailureCount returns the number of failed files
func (s *BatchSummary) FailureCount() int {
	return len(s.lines) - s.SuccessCount()
}

// Render writes the summary to w
func (s *BatchSummary) Render(w io.Writer) {
	if s.quiet || len(s.lines) == 0 {
		return
	}

	total := len(s.lines)
	succeeded := s.SuccessCount()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Batch complete: %d/%d succeeded %s\n", succeeded, total, renderProgressBar(succeeded, total, 20))

	for _, l := range s.lines {
		name := Truncate(l.Name, 40)
		if l.Failed() {
			fmt.Fprintf(w, "  ✗ %s: %s\n", name, l.ErrMsg)
			continue
		}
		fmt.Fprintf(w, "  ✓ %s -> %s [%s] (%.1fs)\n", name, l.Output, l.Strategy, l.Duration.Seconds())
	}
}
