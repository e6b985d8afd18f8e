package riffinfo

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}

	totalMs := int64(math.Round(seconds * 1000))
	if totalMs < 1000 {
		return fmt.Sprintf("%d ms", totalMs)
	}

	totalSec := totalMs / 1000
	remMs := totalMs % 1000
	if totalSec == 59 && remMs >= 500 {
		totalSec = 60
		remMs = 0
	}
	if totalSec < 60 {
		return fmt.Sprintf("%d s %d ms", totalSec, remMs)
	}

	hours := totalSec / 3600
	minutes := (totalSec % 3600) / 60
	secondsOnly := totalSec % 60
	if hours > 0 {
		return fmt.Sprintf("%d h %d min %d s", hours, minutes, secondsOnly)
	}
	return fmt.Sprintf("%d min %d s", minutes, secondsOnly)
}

func formatBitrate(bitsPerSecond float64) string {
	if bitsPerSecond <= 0 {
		return ""
	}
	if bitsPerSecond >= 10_000_000 {
		mbps := bitsPerSecond / 1_000_000
		return fmt.Sprintf("%.1f Mb/s", mbps)
	}
	kbps := int64(math.Round(bitsPerSecond / 1000))
	return formatThousands(kbps) + " kb/s"
}

// formatThousands groups digits with spaces: 1234567 -> "1 234 567".
func formatThousands(value int64) string {
	return strings.ReplaceAll(humanize.Comma(value), ",", " ")
}
