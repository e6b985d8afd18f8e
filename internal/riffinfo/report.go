package riffinfo

type StreamKind string

const (
	StreamGeneral StreamKind = "General"
	StreamVideo   StreamKind = "Video"
	StreamAudio   StreamKind = "Audio"
	StreamText    StreamKind = "Text"
)

var streamKindOrder = map[StreamKind]int{
	StreamGeneral: 0,
	StreamVideo:   1,
	StreamAudio:   2,
	StreamText:    3,
}

type Field struct {
	Name  string
	Value string
}

type Stream struct {
	Kind   StreamKind
	Fields []Field
}

type Report struct {
	Ref     string
	General Stream
	Streams []Stream

	// Warnings describe inconsistencies that did not stop decoding.
	Warnings []string
}

type ContainerInfo struct {
	DurationSeconds float64
	BitrateMode     string
}

func (c ContainerInfo) HasDuration() bool {
	return c.DurationSeconds > 0
}

func appendFieldUnique(fields []Field, field Field) []Field {
	if field.Value == "" {
		return fields
	}
	for _, existing := range fields {
		if existing.Name == field.Name {
			return fields
		}
	}
	return append(fields, field)
}

func findField(fields []Field, name string) string {
	for _, field := range fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}
