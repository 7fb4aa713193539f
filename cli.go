package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"wordbreak/logger"
	"wordbreak/pipeline"
	"wordbreak/tokenize"
)

// FileError reports an I/O failure on the input or output file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// CLI defines the command-line interface for wordbreak.
type CLI struct {
	Input string `arg:"" help:"HTML file to process" type:"path"`

	OutDir       string   `name:"out-dir" short:"o" default:"out" env:"WORDBREAK_OUT_DIR" type:"path" help:"Directory receiving the processed file"`
	Dict         string   `default:"ipa" enum:"ipa,uni" env:"WORDBREAK_DICT" help:"Tokenizer dictionary (${enum})"`
	Mode         string   `default:"normal" enum:"normal,search,extended" env:"WORDBREAK_MODE" help:"Tokenizer segmentation mode (${enum})"`
	Workers      int      `default:"0" env:"WORDBREAK_WORKERS" help:"Runs chunked concurrently, 0 for one per CPU"`
	Exclude      []string `env:"WORDBREAK_EXCLUDE" help:"Extra tags whose text is left alone"`
	Marker       string   `default:"responsive_word_break" env:"WORDBREAK_MARKER" help:"Class of the generated style block"`
	ReportDir    string   `name:"report-dir" env:"WORDBREAK_REPORT_DIR" type:"path" help:"Write a JSON run report to this directory"`
	CleanReports bool     `name:"clean-reports" help:"Remove old JSON reports from --report-dir first"`
	KeepRuns     bool     `name:"keep-runs" help:"Include every chunked run in the report"`
	LogLevel     string   `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"WORDBREAK_LOG_LEVEL" help:"Log level (${enum})"`
	LogFormat    string   `name:"log-format" default:"text" enum:"text,json" env:"WORDBREAK_LOG_FORMAT" help:"Log format (${enum})"`

	Config  kong.ConfigFlag  `help:"Load flag defaults from a JSON file"`
	Version kong.VersionFlag `help:"Print version information"`
}

func (c *CLI) options() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Dictionary = c.Dict
	opts.Mode = c.Mode
	opts.Workers = c.Workers
	opts.Exclude = c.Exclude
	opts.Marker = c.Marker
	opts.KeepRuns = c.KeepRuns
	return opts
}

// Run processes the input file into <out-dir>/<basename>. Either the whole
// output file is written or none is.
func (c *CLI) Run(ctx context.Context) error {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger.Init(level, logger.Format(c.LogFormat), os.Stderr)

	src, err := os.ReadFile(c.Input)
	if err != nil {
		return &FileError{Op: "read", Path: c.Input, Err: err}
	}

	opts := c.options()
	tok, err := tokenize.New(opts.Dictionary, opts.Mode)
	if err != nil {
		return err
	}
	out, rep, err := pipeline.New(tok, opts).Process(ctx, src)
	if err != nil {
		return fmt.Errorf("processing %s: %w", c.Input, err)
	}
	rep.Source = c.Input

	if err := os.MkdirAll(c.OutDir, 0o755); err != nil {
		return &FileError{Op: "create", Path: c.OutDir, Err: err}
	}
	dst := filepath.Join(c.OutDir, filepath.Base(c.Input))
	if err := logger.WriteFileAtomic(dst, out, 0o644); err != nil {
		return &FileError{Op: "write", Path: dst, Err: err}
	}

	if c.ReportDir != "" {
		if c.CleanReports {
			if err := logger.InitReports(c.ReportDir); err != nil {
				return &FileError{Op: "clean", Path: c.ReportDir, Err: err}
			}
		}
		if err := logger.WriteJSON(c.ReportDir, rep.RunID, rep); err != nil {
			// the output is complete; a missing report is not fatal
			slog.Warn("failed to write run report", "dir", c.ReportDir, "error", err)
		}
	}
	slog.Info("output written", "run_id", rep.RunID, "path", dst)
	return nil
}

// exitCode maps an error from Run to a process exit status.
func exitCode(err error) int {
	var fe *FileError
	if errors.As(err, &fe) {
		return 2
	}
	return 1
}
