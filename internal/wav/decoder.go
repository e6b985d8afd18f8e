// Package wav extracts the format, fact and sample data of RIFF/WAVE streams.
package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
	"github.com/autobrr/go-riffinfo/internal/riff"
)

// ErrNotAWav is returned for a RIFF stream whose form type is not WAVE.
var ErrNotAWav = errors.Wrap(riff.ErrWrongForm, "wav: form type is not WAVE")

// Data is the raw sample payload of the data chunk.
type Data struct {
	Length uint32
	Bytes  []byte
}

type Option func(*Decoder)

func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

type contents struct {
	rawFormat []byte
	format    Format
	fact      []byte
	data      Data
	info      riff.Info
	loaded    bool
}

// Decoder holds one loaded WAVE stream. It is empty until Load succeeds and
// is not modified afterwards, so a loaded decoder may be shared for reading.
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

func (d *Decoder) load(read func(r *riff.Reader) error) error {
	d.contents = contents{}

	r := riff.NewReader(riff.WithLogger(d.logger))
	if err := read(r); err != nil {
		return err
	}
	if form := r.Form(); form != fourcc.WAVE {
		return errors.Wrapf(ErrNotAWav, "form %s", form.Quoted())
	}

	var out contents
	for {
		chunk, ok := r.Next()
		if !ok {
			break
		}
		switch chunk.ID {
		case fourcc.Fmt:
			out.rawFormat = bytes.Clone(chunk.Data)
			out.format = ParseFormat(chunk.Data)
		case fourcc.Data:
			out.data = Data{
				Length: chunk.Size,
				Bytes:  append(make([]byte, 0, len(chunk.Data)), chunk.Data...),
			}
		case fourcc.Fact:
			out.fact = bytes.Clone(chunk.Data)
		case fourcc.LIST:
			if chunk.Form == fourcc.INFO {
				out.info = riff.ParseInfo(chunk)
				continue
			}
			d.logger.Debug("skipping list",
				zap.Stringer("form", chunk.Form),
				zap.Uint32("size", chunk.Size),
				zap.Bool("partial", chunk.Partial))
		default:
			if fourcc.IsValid(fourcc.WaveChunk, chunk.ID) {
				d.logger.Debug("skipping chunk", zap.Stringer("id", chunk.ID), zap.Uint32("size", chunk.Size))
				continue
			}
			d.logger.Warn("skipping unrecognized chunk",
				zap.Stringer("id", chunk.ID),
				zap.Int64("offset", chunk.Offset),
				zap.Uint32("size", chunk.Size))
		}
	}
	out.loaded = true
	d.contents = out
	return nil
}

func (d *Decoder) Loaded() bool {
	return d.loaded
}

// RawFormat returns the fmt payload exactly as stored in the stream.
func (d *Decoder) RawFormat() []byte {
	return d.rawFormat
}

func (d *Decoder) Format() Format {
	return d.format
}

func (d *Decoder) Fact() []byte {
	return d.fact
}

// FactSampleCount reads the per-channel sample count of a fact chunk.
func (d *Decoder) FactSampleCount() (uint32, bool) {
	if len(d.fact) < 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(d.fact[0:4]), true
}

func (d *Decoder) Data() Data {
	return d.data
}

func (d *Decoder) Samples() []byte {
	return d.data.Bytes
}

func (d *Decoder) Size() int {
	return len(d.data.Bytes)
}

func (d *Decoder) Info() riff.Info {
	return d.info
}

// SampleFrames is the number of complete blocks in the data chunk.
func (d *Decoder) SampleFrames() uint64 {
	if d.format.BlockAlign == 0 {
		return 0
	}
	return uint64(len(d.data.Bytes)) / uint64(d.format.BlockAlign)
}

// Duration derives the play time from the byte rate; zero when the format
// does not declare one.
func (d *Decoder) Duration() time.Duration {
	if d.format.ByteRate == 0 {
		return 0
	}
	return time.Duration(uint64(len(d.data.Bytes)) * uint64(time.Second) / uint64(d.format.ByteRate))
}
