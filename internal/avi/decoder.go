// Package avi extracts headers, streams and movie data from RIFF/AVI streams.
package avi

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
	"github.com/autobrr/go-riffinfo/internal/riff"
)

// ErrNotAnAvi is returned for a RIFF stream whose form type is not "AVI ".
var ErrNotAnAvi = errors.Wrap(riff.ErrWrongForm, "avi: form type is not AVI")

// Caps the up-front frame allocation a header can request.
const maxReservedFrames = 1 << 16

type Option func(*Decoder)

func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

type contents struct {
	header    MainHeader
	hasHeader bool
	streams   []Stream
	frames    []Frame
	index     []IndexEntry
	info      riff.Info
	loaded    bool
}

// Decoder holds one loaded AVI stream. It is empty until Load succeeds and
// read-only afterwards.
type Decoder struct {
	logger *zap.Logger
	contents
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) Load(src io.Reader) error {
	return d.load(func(r *riff.Reader) error { return r.Load(src) })
}

func (d *Decoder) LoadBytes(data []byte) error {
	return d.load(func(r *riff.Reader) error { return r.LoadBytes(data) })
}

func (d *Decoder) LoadFile(path string) error {
	return d.load(func(r *riff.Reader) error { return r.LoadFile(path) })
}

// load walks every top-level chunk. Streams without any LIST load
// successfully and empty.
func (d *Decoder) load(read func(r *riff.Reader) error) error {
	d.contents = contents{}

	r := riff.NewReader(
		riff.WithLogger(d.logger),
		riff.WithStrictLists(fourcc.Hdrl, fourcc.Strl, fourcc.Movi, fourcc.Rec),
	)
	if err := read(r); err != nil {
		return err
	}
	if form := r.Form(); form != fourcc.AVI {
		return errors.Wrapf(ErrNotAnAvi, "form %s", form.Quoted())
	}

	var out contents
	for {
		chunk, ok := r.Next()
		if !ok {
			break
		}
		if chunk.ID != fourcc.LIST {
			if chunk.ID == fourcc.Idx1 {
				out.index = parseIndex(chunk.Data)
				continue
			}
			d.logger.Debug("skipping chunk", zap.Stringer("id", chunk.ID), zap.Uint32("size", chunk.Size))
			continue
		}
		switch chunk.Form {
		case fourcc.Hdrl:
			d.readHeaderList(chunk, &out)
		case fourcc.Movi:
			d.readMovieList(chunk, &out)
		case fourcc.JUNK:
			d.logger.Debug("skipping junk list", zap.Uint32("size", chunk.Size))
		case fourcc.INFO:
			out.info = riff.ParseInfo(chunk)
			d.logger.Debug("read info list", zap.Int("entries", len(out.info)))
		default:
			d.logger.Warn("skipping unrecognized list",
				zap.Stringer("form", chunk.Form),
				zap.Int64("offset", chunk.Offset),
				zap.Uint32("size", chunk.Size))
		}
	}
	if out.hasHeader && len(out.frames) != int(out.header.TotalFrames) {
		d.logger.Debug("frame count differs from header",
			zap.Int("frames", len(out.frames)),
			zap.Uint32("declared", out.header.TotalFrames))
	}
	out.loaded = true
	d.contents = out
	return nil
}

func (d *Decoder) readHeaderList(list *riff.Chunk, out *contents) {
	for _, child := range list.Children {
		switch {
		case child.ID == fourcc.Avih:
			out.header = ParseMainHeader(child.Data)
			out.hasHeader = true
			if len(out.frames) == 0 {
				out.frames = make([]Frame, 0, min(int(out.header.TotalFrames), maxReservedFrames))
			}
		case child.ID == fourcc.LIST && child.Form == fourcc.Strl:
			out.streams = append(out.streams, parseStreamList(child, len(out.streams)))
		default:
			d.logger.Debug("skipping header chunk", zap.Stringer("id", child.ID), zap.Stringer("form", child.Form))
		}
	}
}

func (d *Decoder) readMovieList(list *riff.Chunk, out *contents) {
	for _, child := range list.Children {
		if child.IsContainer() {
			if child.Form == fourcc.Rec {
				d.readMovieList(child, out)
				continue
			}
			d.logger.Debug("skipping movie list", zap.Stringer("form", child.Form))
			continue
		}
		if child.ID == fourcc.JUNK {
			continue
		}
		out.frames = append(out.frames, newFrame(child.ID, child.Data))
	}
}

func (d *Decoder) Loaded() bool {
	return d.loaded
}

// HasHeader reports whether an avih chunk was found.
func (d *Decoder) HasHeader() bool {
	return d.hasHeader
}

func (d *Decoder) Header() MainHeader {
	return d.header
}

func (d *Decoder) Streams() []Stream {
	return d.streams
}

// Frame returns the i-th movie data chunk in file order.
func (d *Decoder) Frame(i int) (Frame, bool) {
	if i < 0 || i >= len(d.frames) {
		return Frame{}, false
	}
	return d.frames[i], true
}

func (d *Decoder) Frames() []Frame {
	return d.frames
}

// FrameCount is the number of frames actually collected.
func (d *Decoder) FrameCount() int {
	return len(d.frames)
}

// TotalFrames is the count declared by the main header.
func (d *Decoder) TotalFrames() uint32 {
	return d.header.TotalFrames
}

func (d *Decoder) Index() []IndexEntry {
	return d.index
}

func (d *Decoder) Info() riff.Info {
	return d.info
}

func (d *Decoder) LengthInMicroSeconds() uint64 {
	return uint64(d.header.MicroSecPerFrame) * uint64(d.header.TotalFrames)
}

func (d *Decoder) LengthInSeconds() float64 {
	return float64(d.LengthInMicroSeconds()) / 1e6
}

func (d *Decoder) Duration() time.Duration {
	return time.Duration(d.LengthInMicroSeconds()) * time.Microsecond
}

// FrameRate derives frames per second from the main header.
func (d *Decoder) FrameRate() float64 {
	if d.header.MicroSecPerFrame == 0 {
		return 0
	}
	return 1e6 / float64(d.header.MicroSecPerFrame)
}

func (d *Decoder) Width() uint32 {
	return d.header.Width
}

func (d *Decoder) Height() uint32 {
	return d.header.Height
}
