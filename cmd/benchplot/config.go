package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calvinalkan/matbench"
)

const (
	formatCSV     = "csv"
	formatGoBench = "gobench"
)

// Config holds the flags and positional arguments shared by all commands.
type Config struct {
	Inputs   []string
	OutDir   string
	Format   string
	Baseline string
	Title    string
	Verbose  bool

	// Set per command, not by flags.
	Schema matbench.Schema
}

// Validate reports the first problem with c.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return errors.New("no input files")
	}

	for _, in := range c.Inputs {
		if strings.TrimSpace(in) == "" {
			return errors.New("input path is empty")
		}
	}

	switch c.Format {
	case formatCSV, formatGoBench:
	default:
		return fmt.Errorf("invalid --format %q (expected: csv | gobench)", c.Format)
	}

	if strings.TrimSpace(c.Baseline) == "" {
		return errors.New("--baseline must not be empty")
	}

	if c.Schema.NumericCategory() && !isPositiveInt(c.Baseline) {
		return fmt.Errorf("--baseline %q must be a thread count", c.Baseline)
	}

	return nil
}

// newFlagSet registers the shared flags on a new flag set for cmd.
func newFlagSet(cmd, cmdUsage string, stderr io.Writer, cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, cmdUsage) }

	fs.StringVar(&cfg.OutDir, "out", ".", "directory charts are written to")
	fs.StringVar(&cfg.Format, "format", formatCSV, "input format: csv | gobench")
	fs.StringVar(&cfg.Baseline, "baseline", cfg.Baseline, "category speedups are measured against")
	fs.StringVar(&cfg.Title, "title", "", "chart title (default depends on command)")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging on stderr")

	return fs
}

// parseArgs parses flags and checks that the positional argument count is
// between minArgs and maxArgs. With no positional arguments, defaults are used.
func parseArgs(fs *flag.FlagSet, cmdUsage string, args []string, cfg *Config, minArgs, maxArgs int, defaults []string) error {
	err := fs.Parse(args)
	if err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	inputs := fs.Args()
	if len(inputs) == 0 && defaults != nil {
		inputs = defaults
	}

	if len(inputs) < minArgs || len(inputs) > maxArgs {
		want := fmt.Sprintf("%d", minArgs)
		if maxArgs != minArgs {
			want = fmt.Sprintf("%d to %d", minArgs, maxArgs)
		}

		return &usageError{cmdUsage: cmdUsage, msg: fmt.Sprintf("%s takes %s input file(s), got %d", fs.Name(), want, len(fs.Args()))}
	}

	cfg.Inputs = inputs

	err = cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	return nil
}

// newLogger returns a console logger on w: debug level when verbose, info otherwise.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)

	return zap.New(core)
}

// load reads one input in the configured format.
func load(cfg *Config, path string, logger *zap.Logger) ([]matbench.ResultRecord, error) {
	opts := []matbench.Option{matbench.WithSchema(cfg.Schema), matbench.WithLogger(logger)}

	var (
		records []matbench.ResultRecord
		err     error
	)

	if cfg.Format == formatGoBench {
		records, err = matbench.LoadGoBench(path, opts...)
	} else {
		records, err = matbench.Load(path, opts...)
	}

	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no results", path)
	}

	return records, nil
}

// outPath joins name onto the output directory, creating it if needed.
func outPath(cfg *Config, name string) (string, error) {
	path := filepath.Join(cfg.OutDir, name)

	err := os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return "", fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	return path, nil
}

// datasetName is the input's base name without extension and "_results".
func datasetName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return strings.TrimSuffix(base, "_results")
}

// isPositiveInt reports whether s is a thread count in the normalized form
// categories are loaded as.
func isPositiveInt(s string) bool {
	n, err := strconv.Atoi(s)

	return err == nil && n > 0 && strconv.Itoa(n) == s
}
