// Package rifftest builds synthetic RIFF streams for tests.
package rifftest

import (
	"encoding/binary"
)

// Chunk encodes a leaf chunk, adding the pad byte for odd lengths.
func Chunk(id string, data []byte) []byte {
	out := Header(id, uint32(len(data)))
	out = append(out, data...)
	if len(data)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// Header encodes just a chunk header, for streams whose declared length
// disagrees with what follows.
func Header(id string, size uint32) []byte {
	out := make([]byte, 8)
	copy(out[0:4], padTag(id))
	binary.LittleEndian.PutUint32(out[4:8], size)
	return out
}

func List(form string, children ...[]byte) []byte {
	return container("LIST", form, children)
}

func RIFF(form string, children ...[]byte) []byte {
	return container("RIFF", form, children)
}

func container(id, form string, children [][]byte) []byte {
	payload := append([]byte{}, padTag(form)...)
	for _, child := range children {
		payload = append(payload, child...)
	}
	return Chunk(id, payload)
}

func U16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, v)
}

func U32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}

func padTag(tag string) []byte {
	out := []byte("    ")
	copy(out, tag)
	return out
}
