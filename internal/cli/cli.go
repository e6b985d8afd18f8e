package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/autobrr/go-riffinfo/internal/fourcc"
	"github.com/autobrr/go-riffinfo/internal/riff"
	"github.com/autobrr/go-riffinfo/internal/riffinfo"
)

const (
	outputFlag   = "output"
	logLevelFlag = "log-level"
	logFileFlag  = "log-file"

	outputText = "text"
	outputJSON = "json"
	outputXML  = "xml"
	outputCSV  = "csv"
)

type runner struct {
	stdout   io.Writer
	stderr   io.Writer
	output   string
	logger   *zap.Logger
	closeLog func() error
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	r := &runner{
		stdout:   stdout,
		stderr:   stderr,
		output:   outputText,
		logger:   zap.NewNop(),
		closeLog: func() error { return nil },
	}

	err := r.app().Run(args)
	if closeErr := r.closeLog(); closeErr != nil {
		fmt.Fprintf(stderr, "riffinfo: closing log: %v\n", closeErr)
	}
	return exitCode(err, stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var multi cli.MultiError
	if errors.As(err, &multi) {
		code := 0
		for _, e := range multi.Errors() {
			if c := exitCode(e, stderr); c > code {
				code = c
			}
		}
		return code
	}

	var exit cli.ExitCoder
	if errors.As(err, &exit) {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(stderr, "riffinfo: %s\n", msg)
		}
		return exit.ExitCode()
	}
	fmt.Fprintf(stderr, "riffinfo: %v\n", err)
	return 1
}

func (r *runner) app() *cli.App {
	defaults := defaultLogOptions()
	return &cli.App{
		Name:      "riffinfo",
		Usage:     "inspect RIFF, WAV and AVI files",
		ArgsUsage: "FILE...",
		Writer:    r.stdout,
		ErrWriter: r.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Value:   outputText,
				Usage:   "output format: text, json, xml or csv",
				EnvVars: []string{"RIFFINFO_OUTPUT"},
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Value:   defaults.Level,
				Usage:   "diagnostics level: debug, info, warn or error",
				EnvVars: []string{"RIFFINFO_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    logFileFlag,
				Usage:   "write diagnostics as JSON to a rotated file instead of stderr",
				EnvVars: []string{"RIFFINFO_LOG_FILE"},
			},
		},
		Before: r.before,
		After: func(*cli.Context) error {
			_ = r.logger.Sync()
			return nil
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.ShowAppHelp(c)
			}
			return r.analyze(0)(c)
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "summarize files, detecting the form type",
				ArgsUsage: "FILE...",
				Action:    r.analyze(0),
			},
			{
				Name:      "wav",
				Usage:     "decode files as WAVE audio",
				ArgsUsage: "FILE...",
				Action:    r.analyze(fourcc.WAVE),
			},
			{
				Name:      "avi",
				Usage:     "decode files as AVI video",
				ArgsUsage: "FILE...",
				Action:    r.analyze(fourcc.AVI),
			},
			{
				Name:      "tree",
				Usage:     "print the chunk tree of RIFF files",
				ArgsUsage: "FILE...",
				Action:    r.tree,
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(*cli.Context) error {
					Version(r.stdout)
					return nil
				},
			},
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func (r *runner) before(c *cli.Context) error {
	switch output := strings.ToLower(c.String(outputFlag)); output {
	case outputText, outputJSON, outputXML, outputCSV:
		r.output = output
	default:
		return cli.Exit(fmt.Sprintf("unknown output format %q", c.String(outputFlag)), 2)
	}

	opts := defaultLogOptions()
	opts.Level = c.String(logLevelFlag)
	opts.File = c.String(logFileFlag)
	logger, closeLog, err := newLogger(opts, r.stderr)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	r.logger = logger
	r.closeLog = closeLog
	return nil
}

func (r *runner) analyze(form fourcc.Code) cli.ActionFunc {
	return func(c *cli.Context) error {
		paths := c.Args().Slice()
		if len(paths) == 0 {
			return cli.Exit("no input files", 2)
		}

		opts := []riffinfo.Option{riffinfo.WithLogger(r.logger)}
		if form != 0 {
			opts = append(opts, riffinfo.WithForm(form))
		}
		reports, err := riffinfo.AnalyzeFiles(paths, opts...)
		if len(reports) > 0 {
			out, renderErr := r.render(reports)
			if renderErr != nil {
				return renderErr
			}
			fmt.Fprintln(r.stdout, out)
		}
		return r.fail(err)
	}
}

func (r *runner) render(reports []riffinfo.Report) (string, error) {
	switch r.output {
	case outputJSON:
		return riffinfo.RenderJSON(reports), nil
	case outputXML:
		return riffinfo.RenderXML(reports)
	case outputCSV:
		out, err := riffinfo.RenderCSV(reports)
		return strings.TrimRight(out, "\n"), err
	default:
		return riffinfo.RenderText(reports), nil
	}
}

func (r *runner) tree(c *cli.Context) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("no input files", 2)
	}
	if r.output != outputText && r.output != outputJSON {
		return cli.Exit(fmt.Sprintf("tree does not support %s output", r.output), 2)
	}

	var errs error
	rendered := make([]string, 0, len(paths))
	for _, path := range paths {
		root, err := riffinfo.ReadTree(path, riffinfo.WithLogger(r.logger))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if r.output == outputJSON {
			doc, err := riffinfo.RenderTreeJSON(path, root)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}
			rendered = append(rendered, doc)
			continue
		}
		rendered = append(rendered, riffinfo.RenderTree(path, root))
	}

	switch {
	case len(rendered) == 0:
	case r.output == outputJSON && len(rendered) > 1:
		fmt.Fprintln(r.stdout, "[\n"+strings.Join(rendered, ",\n")+"\n]")
	case r.output == outputJSON:
		fmt.Fprintln(r.stdout, rendered[0])
	default:
		fmt.Fprintln(r.stdout, strings.Join(rendered, "\n\n"))
	}
	return r.fail(errs)
}

// fail reports every per-file error and turns them into exit status 1.
func (r *runner) fail(err error) error {
	if err == nil {
		return nil
	}
	for _, e := range multierr.Errors(err) {
		fmt.Fprintf(r.stderr, "riffinfo: %v [%s]\n", e, riff.StatusOf(e))
	}
	return cli.Exit("", 1)
}
