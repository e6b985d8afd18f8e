package riff

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
)

const (
	chunkHeaderSize = 8
	maxDepth        = 64
)

// Chunk is one node of a parsed RIFF tree. Containers (RIFF and LIST) carry
// a Form and Children; leaves carry Data.
//
// A list whose contents do not parse is kept with Partial set: Data holds
// its payload after the form type and Children the entries read before the
// first inconsistency.
type Chunk struct {
	ID       fourcc.Code
	Size     uint32
	Offset   int64
	Form     fourcc.Code
	Children []*Chunk
	Data     []byte
	Partial  bool
}

func isContainerID(id fourcc.Code) bool {
	return id == fourcc.RIFF || id == fourcc.LIST
}

func (c *Chunk) IsContainer() bool {
	return c != nil && isContainerID(c.ID)
}

// Find returns the first direct child with the given id.
func (c *Chunk) Find(id fourcc.Code) *Chunk {
	if c == nil {
		return nil
	}
	for _, child := range c.Children {
		if child.ID == id {
			return child
		}
	}
	return nil
}

// List returns the first direct LIST child with the given form type.
func (c *Chunk) List(form fourcc.Code) *Chunk {
	if c == nil {
		return nil
	}
	for _, child := range c.Children {
		if child.ID == fourcc.LIST && child.Form == form {
			return child
		}
	}
	return nil
}

// Walk visits c and its descendants depth first. Returning an error stops
// the walk.
func Walk(c *Chunk, fn func(c *Chunk, depth int) error) error {
	return walk(c, 0, fn)
}

func walk(c *Chunk, depth int, fn func(c *Chunk, depth int) error) error {
	if c == nil {
		return nil
	}
	if err := fn(c, depth); err != nil {
		return err
	}
	for _, child := range c.Children {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

type treeParser struct {
	logger *zap.Logger
	// strict lists fail the whole load when their contents are malformed.
	strict map[fourcc.Code]struct{}
}

// parse splits a container payload into child chunks. base is the absolute
// offset of data within the source. On error the chunks read so far are
// returned with it.
func (p *treeParser) parse(data []byte, base int64, depth int) ([]*Chunk, error) {
	if depth > maxDepth {
		return nil, errors.Wrapf(ErrBadFile, "chunk nesting deeper than %d at offset %d", maxDepth, base)
	}
	var children []*Chunk
	pos := 0
	for len(data)-pos >= chunkHeaderSize {
		id := fourcc.FromBytes(data[pos : pos+4])
		size := binary.LittleEndian.Uint32(data[pos+4 : pos+8])
		start := pos + chunkHeaderSize
		if uint64(size) > uint64(len(data)-start) {
			return children, errors.Wrapf(ErrBadFile, "chunk %s at offset %d declares %d bytes, %d remain",
				id.Quoted(), base+int64(pos), size, len(data)-start)
		}
		end := start + int(size)
		chunk := &Chunk{ID: id, Size: size, Offset: base + int64(pos)}
		if isContainerID(id) {
			if err := p.parseContainer(chunk, data[start:end], base+int64(start), depth); err != nil {
				return children, err
			}
		} else {
			chunk.Data = data[start:end:end]
		}
		children = append(children, chunk)

		pos = end
		if size%2 == 1 && pos < len(data) {
			pos++
		}
	}
	return children, nil
}

func (p *treeParser) parseContainer(chunk *Chunk, payload []byte, base int64, depth int) error {
	if len(payload) < 4 {
		p.logger.Warn("list without form type",
			zap.Stringer("id", chunk.ID),
			zap.Int64("offset", chunk.Offset),
			zap.Uint32("size", chunk.Size))
		chunk.Data = payload[:len(payload):len(payload)]
		chunk.Partial = true
		return nil
	}
	chunk.Form = fourcc.FromBytes(payload[0:4])
	nested, err := p.parse(payload[4:], base+4, depth+1)
	chunk.Children = nested
	if err == nil {
		return nil
	}
	if _, ok := p.strict[chunk.Form]; ok {
		return err
	}
	p.logger.Warn("keeping unparsed list",
		zap.Stringer("form", chunk.Form),
		zap.Int64("offset", chunk.Offset),
		zap.Uint32("size", chunk.Size),
		zap.Error(err))
	chunk.Data = payload[4:len(payload):len(payload)]
	chunk.Partial = true
	return nil
}
