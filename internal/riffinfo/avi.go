package riffinfo

import (
	"github.com/autobrr/go-riffinfo/internal/avi"
	"github.com/autobrr/go-riffinfo/internal/fourcc"
)

func aviStreams(d *avi.Decoder, fileSize int64) (ContainerInfo, []Stream, []Field) {
	info := ContainerInfo{DurationSeconds: d.LengthInSeconds()}

	var general []Field
	if app, ok := d.Info().Get(fourcc.FromString("ISFT")); ok {
		general = appendFieldUnique(general, Field{Name: "Writing application", Value: app})
	}
	if d.Header().HasFlag(avi.FlagIsInterleaved) {
		general = appendFieldUnique(general, Field{Name: "Interleaved", Value: "Yes"})
	}

	streamBytes := map[int]int64{}
	for _, frame := range d.Frames() {
		if frame.Stream >= 0 {
			streamBytes[frame.Stream] += int64(len(frame.Data))
		}
	}

	streams := []Stream{}
	for _, s := range d.Streams() {
		var stream Stream
		switch s.Kind() {
		case "Video":
			stream = aviVideoStream(d, s)
		case "Audio":
			stream = aviAudioStream(s)
		case "Text":
			stream = Stream{Kind: StreamText, Fields: appendFieldUnique(nil, Field{Name: "Format", Value: s.Codec()})}
		default:
			continue
		}
		stream.Fields = appendFieldUnique(stream.Fields, Field{Name: "Stream size", Value: formatStreamSize(streamBytes[s.Index], fileSize)})
		stream.Fields = appendFieldUnique(stream.Fields, Field{Name: "Title", Value: s.Name})
		streams = append(streams, stream)
	}

	// Headers without strl lists still describe one video stream.
	if len(streams) == 0 && d.HasHeader() && d.Width() > 0 {
		fields := []Field{}
		fields = appendFieldUnique(fields, Field{Name: "Width", Value: formatPixels(uint64(d.Width()))})
		fields = appendFieldUnique(fields, Field{Name: "Height", Value: formatPixels(uint64(d.Height()))})
		fields = appendFieldUnique(fields, Field{Name: "Frame rate", Value: formatFrameRate(d.FrameRate())})
		fields = addStreamCommon(fields, info.DurationSeconds, 0, "")
		streams = append(streams, Stream{Kind: StreamVideo, Fields: fields})
	}
	return info, streams, general
}

func aviVideoStream(d *avi.Decoder, s avi.Stream) Stream {
	fields := appendFieldUnique(nil, Field{Name: "Format", Value: s.Codec()})
	if s.Video != nil && s.Video.Compression != 0 {
		fields = appendFieldUnique(fields, Field{Name: "Codec ID", Value: s.Video.Compression.String()})
	}

	width, height := uint64(d.Width()), uint64(d.Height())
	bitDepth := uint16(0)
	if s.Video != nil {
		width, height = uint64(abs32(s.Video.Width)), uint64(abs32(s.Video.Height))
		bitDepth = s.Video.BitCount
	}
	fields = appendFieldUnique(fields, Field{Name: "Width", Value: formatPixels(width)})
	fields = appendFieldUnique(fields, Field{Name: "Height", Value: formatPixels(height)})
	fields = appendFieldUnique(fields, Field{Name: "Display aspect ratio", Value: formatAspectRatio(width, height)})

	rate := s.FrameRate()
	if rate == 0 {
		rate = d.FrameRate()
	}
	fields = appendFieldUnique(fields, Field{Name: "Frame rate", Value: formatFrameRateRatio(s.Header.Rate, s.Header.Scale)})
	fields = appendFieldUnique(fields, Field{Name: "Frame rate", Value: formatFrameRate(rate)})
	if s.Header.Length > 0 {
		fields = appendFieldUnique(fields, Field{Name: "Frame count", Value: formatThousands(int64(s.Header.Length))})
	}
	fields = appendFieldUnique(fields, Field{Name: "Bit depth", Value: formatBitDepth(bitDepth)})

	duration := d.LengthInSeconds()
	if s.Header.Length > 0 && rate > 0 {
		duration = float64(s.Header.Length) / rate
	}
	fields = addStreamCommon(fields, duration, 0, "")
	return Stream{Kind: StreamVideo, Fields: fields}
}

func aviAudioStream(s avi.Stream) Stream {
	fields := appendFieldUnique(nil, Field{Name: "Format", Value: s.Codec()})
	if s.Audio == nil {
		return Stream{Kind: StreamAudio, Fields: fields}
	}
	fields = appendAudioFields(fields, *s.Audio)

	duration := 0.0
	if s.Header.Rate > 0 && s.Header.Scale > 0 && s.Header.Length > 0 {
		duration = float64(s.Header.Length) * float64(s.Header.Scale) / float64(s.Header.Rate)
	}
	bitrate := float64(s.Audio.ByteRate) * 8
	fields = addStreamCommon(fields, duration, bitrate, "Constant")
	return Stream{Kind: StreamAudio, Fields: fields}
}

func abs32(v int32) int64 {
	if v < 0 {
		return -int64(v)
	}
	return int64(v)
}
