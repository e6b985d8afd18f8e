package avi

import "encoding/binary"

// AVIMAINHEADER flags.
const (
	FlagHasIndex       uint32 = 0x00000010
	FlagMustUseIndex   uint32 = 0x00000020
	FlagIsInterleaved  uint32 = 0x00000100
	FlagTrustCKType    uint32 = 0x00000800
	FlagWasCaptureFile uint32 = 0x00010000
	FlagCopyrighted    uint32 = 0x00020000
)

const mainHeaderSize = 56

// MainHeader is the avih record of the hdrl list.
type MainHeader struct {
	MicroSecPerFrame    uint32
	MaxBytesPerSec      uint32
	PaddingGranularity  uint32
	Flags               uint32
	TotalFrames         uint32
	InitialFrames       uint32
	Streams             uint32
	SuggestedBufferSize uint32
	Width               uint32
	Height              uint32
	Reserved            [4]uint32
}

// ParseMainHeader decodes as many whole fields as the payload holds.
func ParseMainHeader(payload []byte) MainHeader {
	var h MainHeader
	readUint32s(payload, []*uint32{
		&h.MicroSecPerFrame,
		&h.MaxBytesPerSec,
		&h.PaddingGranularity,
		&h.Flags,
		&h.TotalFrames,
		&h.InitialFrames,
		&h.Streams,
		&h.SuggestedBufferSize,
		&h.Width,
		&h.Height,
		&h.Reserved[0],
		&h.Reserved[1],
		&h.Reserved[2],
		&h.Reserved[3],
	})
	return h
}

func (h MainHeader) HasFlag(flag uint32) bool {
	return h.Flags&flag != 0
}

func readUint32s(payload []byte, fields []*uint32) {
	for i, field := range fields {
		off := i * 4
		if off+4 > len(payload) {
			return
		}
		*field = binary.LittleEndian.Uint32(payload[off : off+4])
	}
}
