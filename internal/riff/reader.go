// Package riff parses RIFF containers into a tree of chunks.
package riff

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
)

const envelopeSize = 12

type Option func(*Reader)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStrictLists makes malformed contents of the given list forms fail the
// load with ErrBadFile. Other lists are kept as Partial chunks.
func WithStrictLists(forms ...fourcc.Code) Option {
	return func(r *Reader) {
		if r.strict == nil {
			r.strict = make(map[fourcc.Code]struct{}, len(forms))
		}
		for _, form := range forms {
			r.strict[form] = struct{}{}
		}
	}
}

// Reader loads a RIFF envelope and hands out its top-level chunks. The whole
// tree is built by Load; Next only iterates it.
type Reader struct {
	logger *zap.Logger
	strict map[fourcc.Code]struct{}
	root   *Chunk
	next   int
}

func NewReader(opts ...Option) *Reader {
	r := &Reader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reader) LoadFile(path string) error {
	r.Reset()
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return r.Load(bufio.NewReader(file))
}

func (r *Reader) LoadBytes(data []byte) error {
	return r.Load(bytes.NewReader(data))
}

// Load reads one RIFF envelope from src and parses its payload. On failure
// the reader is left empty.
func (r *Reader) Load(src io.Reader) error {
	r.Reset()

	var header [envelopeSize]byte
	if _, err := io.ReadFull(src, header[0:4]); err != nil {
		if isShortRead(err) {
			return errors.Wrap(ErrNotRIFF, "missing RIFF tag")
		}
		return errors.Wrap(err, "read RIFF tag")
	}
	if tag := fourcc.FromBytes(header[0:4]); tag != fourcc.RIFF {
		return errors.Wrapf(ErrNotRIFF, "leading tag is %s", tag.Quoted())
	}
	if _, err := io.ReadFull(src, header[4:envelopeSize]); err != nil {
		if isShortRead(err) {
			return errors.Wrap(ErrBadFile, "short RIFF envelope")
		}
		return errors.Wrap(err, "read RIFF envelope")
	}
	length := binary.LittleEndian.Uint32(header[4:8])
	form := fourcc.FromBytes(header[8:12])
	if length < 4 {
		return errors.Wrapf(ErrBadFile, "RIFF length %d cannot hold a form type", length)
	}

	want := int64(length) - 4
	payload, err := io.ReadAll(io.LimitReader(src, want))
	if err != nil {
		return errors.Wrap(err, "read RIFF payload")
	}
	if int64(len(payload)) != want {
		return errors.Wrapf(ErrBadFile, "RIFF %s declares %d payload bytes, got %d", form.Quoted(), want, len(payload))
	}

	p := &treeParser{logger: r.logger, strict: r.strict}
	children, err := p.parse(payload, envelopeSize, 1)
	if err != nil {
		return err
	}

	r.root = &Chunk{
		ID:       fourcc.RIFF,
		Size:     length,
		Form:     form,
		Children: children,
	}
	r.logger.Debug("loaded riff",
		zap.Stringer("form", form),
		zap.Uint32("length", length),
		zap.Int("chunks", len(children)))
	return nil
}

// Root returns the RIFF chunk, or nil when nothing is loaded.
func (r *Reader) Root() *Chunk {
	return r.root
}

func (r *Reader) Form() fourcc.Code {
	if r.root == nil {
		return 0
	}
	return r.root.Form
}

// Next returns the next unread top-level chunk. It reports false at the end
// of the stream or when nothing is loaded.
func (r *Reader) Next() (*Chunk, bool) {
	if r.root == nil || r.next >= len(r.root.Children) {
		return nil, false
	}
	chunk := r.root.Children[r.next]
	r.next++
	return chunk, true
}

// Rewind restarts iteration at the first top-level chunk.
func (r *Reader) Rewind() {
	r.next = 0
}

func (r *Reader) Reset() {
	r.root = nil
	r.next = 0
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
