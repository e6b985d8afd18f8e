package riffinfo

import (
	"bytes"
	"encoding/xml"
)

type xmlMedia struct {
	XMLName xml.Name    `xml:"RiffInfo"`
	Version string      `xml:"version,attr"`
	Media   []xmlReport `xml:"media"`
}

type xmlReport struct {
	Ref   string     `xml:"ref,attr,omitempty"`
	Track []xmlTrack `xml:"track"`
}

type xmlTrack struct {
	Type   string     `xml:"type,attr"`
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// RenderXML names elements the same way RenderJSON names keys.
func RenderXML(reports []Report) (string, error) {
	media := xmlMedia{Version: Version}
	for _, report := range reports {
		tracks := make([]xmlTrack, 0, len(report.Streams)+1)
		tracks = append(tracks, xmlTrackOf(report.General))
		for _, stream := range report.Streams {
			tracks = append(tracks, xmlTrackOf(stream))
		}
		media.Media = append(media.Media, xmlReport{Ref: report.Ref, Track: tracks})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(media); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func xmlTrackOf(stream Stream) xmlTrack {
	fields := make([]xmlField, 0, len(stream.Fields))
	for _, field := range stream.Fields {
		fields = append(fields, xmlField{XMLName: xml.Name{Local: jsonKey(field.Name)}, Value: field.Value})
	}
	return xmlTrack{Type: string(stream.Kind), Fields: fields}
}
