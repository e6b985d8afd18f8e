package avi

import (
	"encoding/binary"
	"strings"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
	"github.com/autobrr/go-riffinfo/internal/riff"
	"github.com/autobrr/go-riffinfo/internal/wav"
)

var (
	TypeVideo = fourcc.FromString("vids")
	TypeAudio = fourcc.FromString("auds")
	TypeText  = fourcc.FromString("txts")
	TypeMIDI  = fourcc.FromString("mids")
)

type Rect struct {
	Left, Top, Right, Bottom int16
}

// StreamHeader is the strh record of a strl list.
type StreamHeader struct {
	Type                fourcc.Code
	Handler             fourcc.Code
	Flags               uint32
	Priority            uint16
	Language            uint16
	InitialFrames       uint32
	Scale               uint32
	Rate                uint32
	Start               uint32
	Length              uint32
	SuggestedBufferSize uint32
	Quality             uint32
	SampleSize          uint32
	Frame               Rect
}

// BitmapInfoHeader is the strf record of a video stream.
type BitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   fourcc.Code
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type Stream struct {
	Index  int
	Header StreamHeader
	// Format is the raw strf payload.
	Format []byte
	Video  *BitmapInfoHeader
	Audio  *wav.Format
	Name   string
}

func (s Stream) Kind() string {
	switch s.Header.Type {
	case TypeVideo:
		return "Video"
	case TypeAudio:
		return "Audio"
	case TypeText:
		return "Text"
	case TypeMIDI:
		return "MIDI"
	default:
		return ""
	}
}

func (s Stream) FrameRate() float64 {
	if s.Header.Rate > 0 && s.Header.Scale > 0 {
		return float64(s.Header.Rate) / float64(s.Header.Scale)
	}
	return 0
}

// Codec names the compression of a video stream or the format of an audio
// stream.
func (s Stream) Codec() string {
	switch {
	case s.Video != nil && s.Video.Compression != 0:
		return strings.TrimSpace(s.Video.Compression.String())
	case s.Audio != nil:
		return s.Audio.Name()
	default:
		return strings.TrimSpace(strings.Trim(s.Header.Handler.String(), "\x00"))
	}
}

func parseStreamList(list *riff.Chunk, index int) Stream {
	stream := Stream{Index: index}
	if strh := list.Find(fourcc.Strh); strh != nil {
		stream.Header = parseStreamHeader(strh.Data)
	}
	if strf := list.Find(fourcc.Strf); strf != nil {
		stream.Format = append([]byte(nil), strf.Data...)
		switch stream.Header.Type {
		case TypeVideo:
			if bih, ok := parseBitmapInfoHeader(strf.Data); ok {
				stream.Video = &bih
			}
		case TypeAudio:
			format := wav.ParseFormat(strf.Data)
			stream.Audio = &format
		}
	}
	if strn := list.Find(fourcc.Strn); strn != nil {
		stream.Name = riffString(strn.Data)
	}
	return stream
}

func parseStreamHeader(payload []byte) StreamHeader {
	var h StreamHeader
	le := binary.LittleEndian
	if len(payload) >= 8 {
		h.Type = fourcc.FromBytes(payload[0:4])
		h.Handler = fourcc.FromBytes(payload[4:8])
	}
	if len(payload) >= 12 {
		h.Flags = le.Uint32(payload[8:12])
	}
	if len(payload) >= 16 {
		h.Priority = le.Uint16(payload[12:14])
		h.Language = le.Uint16(payload[14:16])
	}
	if len(payload) > 16 {
		readUint32s(payload[16:], []*uint32{
			&h.InitialFrames,
			&h.Scale,
			&h.Rate,
			&h.Start,
			&h.Length,
			&h.SuggestedBufferSize,
			&h.Quality,
			&h.SampleSize,
		})
	}
	if len(payload) >= 56 {
		h.Frame = Rect{
			Left:   int16(le.Uint16(payload[48:50])),
			Top:    int16(le.Uint16(payload[50:52])),
			Right:  int16(le.Uint16(payload[52:54])),
			Bottom: int16(le.Uint16(payload[54:56])),
		}
	}
	return h
}

func parseBitmapInfoHeader(payload []byte) (BitmapInfoHeader, bool) {
	if len(payload) < 40 {
		return BitmapInfoHeader{}, false
	}
	le := binary.LittleEndian
	return BitmapInfoHeader{
		Size:          le.Uint32(payload[0:4]),
		Width:         int32(le.Uint32(payload[4:8])),
		Height:        int32(le.Uint32(payload[8:12])),
		Planes:        le.Uint16(payload[12:14]),
		BitCount:      le.Uint16(payload[14:16]),
		Compression:   fourcc.FromBytes(payload[16:20]),
		SizeImage:     le.Uint32(payload[20:24]),
		XPelsPerMeter: int32(le.Uint32(payload[24:28])),
		YPelsPerMeter: int32(le.Uint32(payload[28:32])),
		ClrUsed:       le.Uint32(payload[32:36]),
		ClrImportant:  le.Uint32(payload[36:40]),
	}, true
}

func riffString(data []byte) string {
	for i, b := range data {
		if b == 0x00 {
			return string(data[:i])
		}
	}
	return string(data)
}
