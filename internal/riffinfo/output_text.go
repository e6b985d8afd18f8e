package riffinfo

import (
	"bytes"
	"fmt"
	"strings"
)

const fieldNameWidth = 36

// RenderText prints each report as titled blocks of "name : value" lines
// with any decoding warnings last.
func RenderText(reports []Report) string {
	var buf bytes.Buffer
	for i, report := range reports {
		if i > 0 {
			buf.WriteString("\n")
		}
		for j, entry := range titledStreams(report) {
			if j > 0 {
				buf.WriteString("\n")
			}
			writeBlock(&buf, entry.Title, entry.Stream.Fields)
		}
		if len(report.Warnings) > 0 {
			buf.WriteString("\nWarnings\n")
			for _, warning := range report.Warnings {
				fmt.Fprintf(&buf, "- %s\n", warning)
			}
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeBlock(buf *bytes.Buffer, title string, fields []Field) {
	buf.WriteString(title)
	buf.WriteString("\n")
	for _, field := range fields {
		fmt.Fprintf(buf, "%-*s: %s\n", fieldNameWidth, field.Name, field.Value)
	}
}
