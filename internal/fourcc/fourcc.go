// Package fourcc packs four-character chunk tags into 32-bit keys.
package fourcc

import (
	"encoding/binary"
	"fmt"
)

// Code is a FourCC packed little endian, so the first tag byte sits in the
// low bits and a raw u32 read from a chunk header equals the key.
type Code uint32

func Encode(tag [4]byte) Code {
	return Code(binary.LittleEndian.Uint32(tag[:]))
}

// FromBytes packs the first four bytes of b. Short input is padded with spaces.
func FromBytes(b []byte) Code {
	tag := [4]byte{' ', ' ', ' ', ' '}
	copy(tag[:], b)
	return Encode(tag)
}

func FromString(s string) Code {
	return FromBytes([]byte(s))
}

func (c Code) Bytes() [4]byte {
	var tag [4]byte
	binary.LittleEndian.PutUint32(tag[:], uint32(c))
	return tag
}

func (c Code) String() string {
	tag := c.Bytes()
	return string(tag[:])
}

// Quoted renders the tag for diagnostics, escaping non-printable bytes.
func (c Code) Quoted() string {
	return fmt.Sprintf("%q", c.String())
}

var (
	RIFF = FromString("RIFF")
	LIST = FromString("LIST")
	JUNK = FromString("JUNK")
	INFO = FromString("INFO")

	WAVE = FromString("WAVE")
	Fmt  = FromString("fmt ")
	Fact = FromString("fact")
	Data = FromString("data")

	AVI  = FromString("AVI ")
	Hdrl = FromString("hdrl")
	Avih = FromString("avih")
	Strl = FromString("strl")
	Strh = FromString("strh")
	Strf = FromString("strf")
	Strd = FromString("strd")
	Strn = FromString("strn")
	Movi = FromString("movi")
	Rec  = FromString("rec ")
	Idx1 = FromString("idx1")
)
