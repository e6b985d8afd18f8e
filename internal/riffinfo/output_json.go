package riffinfo

import (
	"bytes"
	"encoding/json"
	"strings"
)

type jsonKV struct {
	Key string
	Val string
	Raw bool
}

func RenderJSON(reports []Report) string {
	if len(reports) == 1 {
		return renderJSONReport(reports[0])
	}
	items := make([]string, 0, len(reports))
	for _, report := range reports {
		items = append(items, renderJSONReport(report))
	}
	return "[\n" + strings.Join(items, ",\n") + "\n]"
}

func renderJSONReport(report Report) string {
	tracks := make([]string, 0, len(report.Streams)+1)
	tracks = append(tracks, renderJSONObject(jsonTrackFields(report.General)))
	for _, stream := range report.Streams {
		tracks = append(tracks, renderJSONObject(jsonTrackFields(stream)))
	}
	mediaFields := []jsonKV{
		{Key: "@ref", Val: report.Ref},
		{Key: "track", Val: renderJSONArray(tracks), Raw: true},
	}
	if len(report.Warnings) > 0 {
		warnings := make([]string, 0, len(report.Warnings))
		for _, warning := range report.Warnings {
			warnings = append(warnings, renderJSONString(warning))
		}
		mediaFields = append(mediaFields, jsonKV{Key: "warnings", Val: renderJSONArray(warnings), Raw: true})
	}
	media := renderJSONObject(mediaFields)
	var buf bytes.Buffer
	buf.WriteString("{\n")
	writeJSONField(&buf, "creatingLibrary", renderJSONObject([]jsonKV{
		{Key: "name", Val: LibName},
		{Key: "version", Val: Version},
	}), true)
	buf.WriteString(",\n")
	writeJSONField(&buf, "media", media, true)
	buf.WriteString("\n}")
	return buf.String()
}

func jsonTrackFields(stream Stream) []jsonKV {
	fields := []jsonKV{{Key: "@type", Val: string(stream.Kind)}}
	for _, field := range stream.Fields {
		fields = append(fields, jsonKV{Key: jsonKey(field.Name), Val: field.Value})
	}
	return fields
}

// jsonKey turns a display name such as "Channel(s)" into "Channels".
func jsonKey(name string) string {
	replacer := strings.NewReplacer(" ", "_", "(", "", ")", "", "/", "_")
	return replacer.Replace(name)
}

func renderJSONObject(fields []jsonKV) string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, field := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}
		writeJSONField(&buf, field.Key, field.Val, field.Raw)
	}
	buf.WriteString("}")
	return buf.String()
}

func renderJSONArray(items []string) string {
	return "[" + strings.Join(items, ",\n") + "]"
}

func writeJSONField(buf *bytes.Buffer, key, value string, raw bool) {
	buf.WriteString(renderJSONString(key))
	buf.WriteString(":")
	if raw {
		buf.WriteString(value)
		return
	}
	buf.WriteString(renderJSONString(value))
}

func renderJSONString(value string) string {
	data, _ := json.Marshal(value)
	return string(data)
}
