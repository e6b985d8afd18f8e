package wav

import (
	"encoding/binary"
	"fmt"
)

const (
	FormatPCM        uint16 = 0x0001
	FormatADPCM      uint16 = 0x0002
	FormatIEEEFloat  uint16 = 0x0003
	FormatALaw       uint16 = 0x0006
	FormatMuLaw      uint16 = 0x0007
	FormatMP3        uint16 = 0x0055
	FormatAC3        uint16 = 0x2000
	FormatExtensible uint16 = 0xFFFE
)

// Format is a WAVEFORMATEX record.
type Format struct {
	FormatTag     uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	// ExtensionSize is cbSize; zero for the 14 and 16 byte variants.
	ExtensionSize uint16
	Extension     []byte
}

// ParseFormat decodes a fmt payload field by field. Fields past the end of
// a short payload stay zero; the extension is clipped to what is present.
func ParseFormat(payload []byte) Format {
	var f Format
	le := binary.LittleEndian
	if len(payload) >= 2 {
		f.FormatTag = le.Uint16(payload[0:2])
	}
	if len(payload) >= 4 {
		f.Channels = le.Uint16(payload[2:4])
	}
	if len(payload) >= 8 {
		f.SampleRate = le.Uint32(payload[4:8])
	}
	if len(payload) >= 12 {
		f.ByteRate = le.Uint32(payload[8:12])
	}
	if len(payload) >= 14 {
		f.BlockAlign = le.Uint16(payload[12:14])
	}
	if len(payload) >= 16 {
		f.BitsPerSample = le.Uint16(payload[14:16])
	}
	if len(payload) >= 18 {
		f.ExtensionSize = le.Uint16(payload[16:18])
		end := 18 + int(f.ExtensionSize)
		if end > len(payload) {
			end = len(payload)
		}
		if end > 18 {
			f.Extension = append([]byte(nil), payload[18:end]...)
		}
	}
	return f
}

// EffectiveFormatTag resolves WAVE_FORMAT_EXTENSIBLE to the sub-format tag
// stored in the first bytes of the SubFormat GUID.
func (f Format) EffectiveFormatTag() uint16 {
	if f.FormatTag == FormatExtensible && len(f.Extension) >= 8 {
		return binary.LittleEndian.Uint16(f.Extension[6:8])
	}
	return f.FormatTag
}

func (f Format) Name() string {
	switch f.EffectiveFormatTag() {
	case FormatPCM:
		return "PCM"
	case FormatADPCM:
		return "ADPCM"
	case FormatIEEEFloat:
		return "PCM float"
	case FormatALaw:
		return "A-law"
	case FormatMuLaw:
		return "Mu-law"
	case FormatMP3:
		return "MPEG Audio"
	case FormatAC3:
		return "AC-3"
	case 0:
		return ""
	default:
		return fmt.Sprintf("0x%04X", f.EffectiveFormatTag())
	}
}
