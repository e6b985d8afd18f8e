package riffinfo

import (
	"bytes"
	"encoding/csv"
)

// RenderCSV writes one row per field: ref, track title, field, value.
func RenderCSV(reports []Report) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ref", "track_type", "field", "value"}); err != nil {
		return "", err
	}
	for _, report := range reports {
		var rows [][]string
		for _, entry := range titledStreams(report) {
			rows = append(rows, csvRows(report.Ref, entry.Title, entry.Stream)...)
		}
		if err := w.WriteAll(rows); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

func csvRows(ref, title string, stream Stream) [][]string {
	rows := make([][]string, 0, len(stream.Fields))
	for _, field := range stream.Fields {
		rows = append(rows, []string{ref, title, field.Name, field.Value})
	}
	return rows
}
