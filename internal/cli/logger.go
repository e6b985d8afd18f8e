package cli

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions configures the diagnostics logger. With File empty, records go
// to the console writer; otherwise they are written as JSON to a rotated file.
type LogOptions struct {
	Level      string
	File       string
	MaxSize    int
	MaxBackups int
	Compress   bool
}

func defaultLogOptions() LogOptions {
	return LogOptions{
		Level:      "warn",
		MaxSize:    100,
		MaxBackups: 3,
		Compress:   true,
	}
}

// newLogger returns the logger and a function that releases its sink.
func newLogger(opts LogOptions, console io.Writer) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "log level %q", opts.Level)
	}

	if opts.File == "" {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(console),
			level,
		)
		return zap.New(core), func() error { return nil }, nil
	}

	sink := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		Compress:   opts.Compress,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(sink),
		level,
	)
	return zap.New(core), sink.Close, nil
}
