package avi

import (
	"encoding/binary"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
)

// Frame is one data chunk of the movi list.
type Frame struct {
	ID fourcc.Code
	// Stream is -1 when the id does not start with a stream number.
	Stream int
	// Kind is the two-letter suffix: dc, db, wb, pc, tx.
	Kind string
	Data []byte
}

func newFrame(id fourcc.Code, data []byte) Frame {
	tag := id.Bytes()
	frame := Frame{
		ID:     id,
		Stream: -1,
		Kind:   string(tag[2:4]),
		Data:   append(make([]byte, 0, len(data)), data...),
	}
	if index, ok := parseStreamIndex(tag); ok {
		frame.Stream = index
	}
	return frame
}

func (f Frame) IsVideo() bool {
	return f.Kind == "dc" || f.Kind == "db"
}

func (f Frame) IsAudio() bool {
	return f.Kind == "wb"
}

func parseStreamIndex(tag [4]byte) (int, bool) {
	if tag[0] < '0' || tag[0] > '9' || tag[1] < '0' || tag[1] > '9' {
		return 0, false
	}
	return int(tag[0]-'0')*10 + int(tag[1]-'0'), true
}

// idx1 entry flags.
const (
	IndexList     uint32 = 0x00000001
	IndexKeyframe uint32 = 0x00000010
	IndexNoTime   uint32 = 0x00000100
)

const indexEntrySize = 16

type IndexEntry struct {
	ID     fourcc.Code
	Flags  uint32
	Offset uint32
	Size   uint32
}

func (e IndexEntry) Keyframe() bool {
	return e.Flags&IndexKeyframe != 0
}

func parseIndex(data []byte) []IndexEntry {
	entries := make([]IndexEntry, 0, len(data)/indexEntrySize)
	for pos := 0; pos+indexEntrySize <= len(data); pos += indexEntrySize {
		entries = append(entries, IndexEntry{
			ID:     fourcc.FromBytes(data[pos : pos+4]),
			Flags:  binary.LittleEndian.Uint32(data[pos+4 : pos+8]),
			Offset: binary.LittleEndian.Uint32(data[pos+8 : pos+12]),
			Size:   binary.LittleEndian.Uint32(data[pos+12 : pos+16]),
		})
	}
	return entries
}
