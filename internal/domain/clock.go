package domain

import (
	"fmt"
	"math"
	"time"
)

// FormatClock renders d rounded to the second as H:MM:SS
func FormatClock(d time.Duration) string {
	total := int64(math.Round(d.Seconds()))
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}

// RoundSeconds returns d in seconds rounded to two decimals
func RoundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
