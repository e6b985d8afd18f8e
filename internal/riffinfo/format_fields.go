package riffinfo

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func formatPixels(value uint64) string {
	if value == 0 {
		return ""
	}
	return fmt.Sprintf("%d pixels", value)
}

func formatChannels(value uint64) string {
	if value == 0 {
		return ""
	}
	if value == 1 {
		return "1 channel"
	}
	return fmt.Sprintf("%d channels", value)
}

func formatSampleRate(rate float64) string {
	if rate <= 0 {
		return ""
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1f kHz", rate/1000)
	}
	return fmt.Sprintf("%.0f Hz", rate)
}

func formatBitDepth(bits uint16) string {
	if bits == 0 {
		return ""
	}
	return fmt.Sprintf("%d bits", bits)
}

func formatAspectRatio(width, height uint64) string {
	if width == 0 || height == 0 {
		return ""
	}
	g := gcd(width, height)
	return fmt.Sprintf("%d:%d", width/g, height/g)
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func formatFrameRate(rate float64) string {
	if rate <= 0 {
		return ""
	}
	return fmt.Sprintf("%.3f FPS", rate)
}

func formatFrameRateRatio(numer, denom uint32) string {
	if numer == 0 || denom == 0 {
		return ""
	}
	rate := float64(numer) / float64(denom)
	if denom == 1 {
		return formatFrameRate(rate)
	}
	return fmt.Sprintf("%.3f (%d/%d) FPS", rate, numer, denom)
}

func formatBytes(size int64) string {
	if size < 0 {
		return ""
	}
	return humanize.IBytes(uint64(size))
}

func formatStreamSize(streamBytes, fileBytes int64) string {
	if streamBytes <= 0 {
		return ""
	}
	if fileBytes <= 0 {
		return formatBytes(streamBytes)
	}
	percent := float64(streamBytes) * 100 / float64(fileBytes)
	return fmt.Sprintf("%s (%.0f%%)", formatBytes(streamBytes), percent)
}

func channelLayout(channels uint64) string {
	switch channels {
	case 1:
		return "M"
	case 2:
		return "L R"
	case 3:
		return "C L R"
	case 4:
		return "L R Ls Rs"
	case 5:
		return "C L R Ls Rs"
	case 6:
		return "C L R Ls Rs LFE"
	case 7:
		return "C L R Ls Rs Lb Rb"
	case 8:
		return "C L R Ls Rs Lb Rb LFE"
	default:
		return ""
	}
}

func addStreamCommon(fields []Field, duration float64, bitrate float64, mode string) []Field {
	if duration > 0 {
		fields = appendFieldUnique(fields, Field{Name: "Duration", Value: formatDuration(duration)})
	}
	if bitrate > 0 {
		fields = appendFieldUnique(fields, Field{Name: "Bit rate mode", Value: mode})
		fields = appendFieldUnique(fields, Field{Name: "Bit rate", Value: formatBitrate(bitrate)})
	}
	return fields
}
