package riffinfo

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/autobrr/go-riffinfo/internal/avi"
	"github.com/autobrr/go-riffinfo/internal/fourcc"
	"github.com/autobrr/go-riffinfo/internal/riff"
	"github.com/autobrr/go-riffinfo/internal/wav"
)

type Option func(*analyzer)

type analyzer struct {
	logger *zap.Logger
	form   fourcc.Code
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithForm forces the decoder for the given form type instead of sniffing
// it, so a mismatching file fails with the decoder's wrong-form error.
func WithForm(form fourcc.Code) Option {
	return func(a *analyzer) {
		a.form = form
	}
}

func newAnalyzer(opts []Option) *analyzer {
	a := &analyzer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// DetectForm returns the form type of a RIFF header.
func DetectForm(header []byte) (fourcc.Code, bool) {
	if len(header) < 12 || fourcc.FromBytes(header[0:4]) != fourcc.RIFF {
		return 0, false
	}
	return fourcc.FromBytes(header[8:12]), true
}

func formName(form fourcc.Code) string {
	switch form {
	case fourcc.WAVE:
		return "Wave"
	case fourcc.AVI:
		return "AVI"
	default:
		return fmt.Sprintf("RIFF (%s)", form)
	}
}

func AnalyzeFile(path string, opts ...Option) (Report, error) {
	a := newAnalyzer(opts)

	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	size := int64(len(data))

	form, _ := DetectForm(data)
	if a.form != 0 {
		form = a.form
	}
	a.logger.Debug("analyzing", zap.String("path", path), zap.Stringer("form", form), zap.Int64("size", size))

	general := Stream{Kind: StreamGeneral}
	general.Fields = append(general.Fields,
		Field{Name: "Complete name", Value: path},
		Field{Name: "Format", Value: formName(form)},
		Field{Name: "File size", Value: formatBytes(size)},
	)

	info := ContainerInfo{}
	streams := []Stream{}
	var warnings []string
	switch form {
	case fourcc.WAVE:
		d := wav.NewDecoder(wav.WithLogger(a.logger))
		if err := d.LoadBytes(data); err != nil {
			return Report{}, err
		}
		info, streams = wavStreams(d, size)
	case fourcc.AVI:
		d := avi.NewDecoder(avi.WithLogger(a.logger))
		if err := d.LoadBytes(data); err != nil {
			return Report{}, err
		}
		var fields []Field
		info, streams, fields = aviStreams(d, size)
		for _, field := range fields {
			general.Fields = appendFieldUnique(general.Fields, field)
		}
		if d.HasHeader() && uint64(d.FrameCount()) != uint64(d.TotalFrames()) {
			warnings = append(warnings, fmt.Sprintf("movie data holds %d frames, main header declares %d",
				d.FrameCount(), d.TotalFrames()))
		}
	default:
		r := riff.NewReader(riff.WithLogger(a.logger))
		if err := r.LoadBytes(data); err != nil {
			return Report{}, err
		}
		general.Fields = append(general.Fields, Field{Name: "Chunks count", Value: fmt.Sprintf("%d", len(r.Root().Children))})
		warnings = append(warnings, partialListWarnings(r.Root())...)
	}

	for _, stream := range streams {
		if stream.Kind != StreamVideo {
			continue
		}
		if rate := findField(stream.Fields, "Frame rate"); rate != "" {
			general.Fields = appendFieldUnique(general.Fields, Field{Name: "Frame rate", Value: rate})
			break
		}
	}

	if info.HasDuration() {
		general.Fields = append(general.Fields, Field{Name: "Duration", Value: formatDuration(info.DurationSeconds)})
		bitrate := float64(size*8) / info.DurationSeconds
		if bitrate > 0 {
			if info.BitrateMode != "" {
				general.Fields = append(general.Fields, Field{Name: "Overall bit rate mode", Value: info.BitrateMode})
			}
			general.Fields = append(general.Fields, Field{Name: "Overall bit rate", Value: formatBitrate(bitrate)})
		}
	}

	sortStreams(streams)
	return Report{
		Ref:      path,
		General:  general,
		Streams:  streams,
		Warnings: warnings,
	}, nil
}

func partialListWarnings(root *riff.Chunk) []string {
	var warnings []string
	_ = riff.Walk(root, func(c *riff.Chunk, _ int) error {
		if c.Partial {
			warnings = append(warnings, fmt.Sprintf("list %q at offset %d could not be fully parsed", c.Form.String(), c.Offset))
		}
		return nil
	})
	return warnings
}

// AnalyzeFiles keeps going past failures and returns every report that
// succeeded together with the combined errors.
func AnalyzeFiles(paths []string, opts ...Option) ([]Report, error) {
	reports := make([]Report, 0, len(paths))
	var errs error
	for _, path := range paths {
		report, err := AnalyzeFile(path, opts...)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		reports = append(reports, report)
	}
	return reports, errs
}
