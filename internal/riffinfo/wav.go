package riffinfo

import (
	"fmt"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
	"github.com/autobrr/go-riffinfo/internal/wav"
)

func wavStreams(d *wav.Decoder, fileSize int64) (ContainerInfo, []Stream) {
	format := d.Format()

	duration := d.Duration().Seconds()
	bitrate := 0.0
	mode := ""
	if format.ByteRate > 0 && d.Size() > 0 {
		bitrate = float64(format.ByteRate) * 8
		mode = "Constant"
	}

	fields := []Field{
		{Name: "Format", Value: format.Name()},
	}
	if format.FormatTag != 0 {
		fields = appendFieldUnique(fields, Field{Name: "Codec ID", Value: fmt.Sprintf("%d", format.EffectiveFormatTag())})
	}
	fields = appendAudioFields(fields, format)
	if frames := d.SampleFrames(); frames > 0 {
		fields = appendFieldUnique(fields, Field{Name: "Samples count", Value: formatThousands(int64(frames))})
	}
	fields = addStreamCommon(fields, duration, bitrate, mode)
	fields = appendFieldUnique(fields, Field{Name: "Stream size", Value: formatStreamSize(int64(d.Size()), fileSize)})
	if name, ok := d.Info().Get(fourcc.FromString("INAM")); ok {
		fields = appendFieldUnique(fields, Field{Name: "Title", Value: name})
	}

	info := ContainerInfo{DurationSeconds: duration, BitrateMode: mode}
	return info, []Stream{{Kind: StreamAudio, Fields: fields}}
}

func appendAudioFields(fields []Field, format wav.Format) []Field {
	fields = appendFieldUnique(fields, Field{Name: "Channel(s)", Value: formatChannels(uint64(format.Channels))})
	fields = appendFieldUnique(fields, Field{Name: "Channel layout", Value: channelLayout(uint64(format.Channels))})
	fields = appendFieldUnique(fields, Field{Name: "Sampling rate", Value: formatSampleRate(float64(format.SampleRate))})
	fields = appendFieldUnique(fields, Field{Name: "Bit depth", Value: formatBitDepth(format.BitsPerSample)})
	return fields
}
