// Matbench times matrix multiplication kernels and appends the results to a
// CSV file that benchplot reads.
//
// Examples:
//
//	go run ./cmd/matbench --sizes 256,512,1024 --threads 1,2,4,8 --out results.csv
//	go run ./cmd/matbench --schema configurations --kernels standard,transpose,gonum --out seq.csv
//	go run ./cmd/matbench --files a.txt,b.txt --result c.txt --threads 4
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/calvinalkan/matbench"
	"github.com/calvinalkan/matbench/bench"
	"github.com/calvinalkan/matbench/internal/sysinfo"
	"github.com/calvinalkan/matbench/kernel"
)

type benchFlags struct {
	schema  string
	sizes   string
	threads string
	double  bool
	kernels string
	repeats int
	seed    uint64
	out     string
	files   string
	result  string
	verify  bool
	verbose bool
}

func parseFlags(fs *flag.FlagSet) *benchFlags {
	flags := &benchFlags{}

	fs.StringVar(&flags.schema, "schema", "threads", "results layout: threads | configurations")
	fs.StringVar(&flags.sizes, "sizes", "128,256,512", "comma-separated matrix sizes")
	fs.StringVar(&flags.threads, "threads", "", "comma-separated thread counts (default: powers of two up to NumCPU, and NumCPU)")
	fs.BoolVar(&flags.double, "double-threads", false, "also run with 2 x NumCPU threads")
	fs.StringVar(&flags.kernels, "kernels", kernel.Standard.Name, "comma-separated kernels: standard | transpose | gonum")
	fs.IntVar(&flags.repeats, "repeats", 3, "timed runs per size and category")
	fs.Uint64Var(&flags.seed, "seed", 1, "seed for the random operands")
	fs.StringVar(&flags.out, "out", "results.csv", "CSV file to append results to (- for stdout)")
	fs.StringVar(&flags.files, "files", "", "two comma-separated matrix files to use instead of random operands")
	fs.StringVar(&flags.result, "result", "", "write the last product to this file")
	fs.BoolVar(&flags.verify, "verify", true, "check every kernel against the standard kernel")
	fs.BoolVar(&flags.verbose, "v", false, "debug logging")

	return flags
}

func main() {
	fs := flag.NewFlagSet("matbench", flag.ExitOnError)
	flags := parseFlags(fs)

	_ = fs.Parse(os.Args[1:])

	os.Exit(run(flags, os.Stdout, os.Stderr))
}

func run(flags *benchFlags, stdout, stderr io.Writer) int {
	cfg, err := buildConfig(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 2
	}

	err = cfg.Validate()
	if err != nil {
		fmt.Fprintf(stderr, "invalid options: %v\n", err)

		return 2
	}

	logger := newLogger(stderr, flags.verbose)
	defer func() { _ = logger.Sync() }()

	host := sysinfo.Collect()
	logger.Info("starting", host.Field(), zap.String("schema", cfg.Schema.Name), zap.Ints("sizes", cfg.Sizes))

	runner, err := bench.NewRunner(cfg, bench.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var (
		writer  *bench.CSVWriter
		closeFn = func() error { return nil }
	)

	if flags.out == "-" {
		writer = bench.NewCSVWriter(stdout, cfg.Schema)

		err = writer.WriteHeader()
	} else {
		writer, closeFn, err = bench.AppendFile(flags.out, cfg.Schema)
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		return 1
	}

	start := time.Now()

	var runs int

	runErr := runner.Run(ctx, func(rec matbench.ResultRecord) error {
		runs++

		return writer.Write(rec)
	})

	closeErr := closeFn()

	if runErr != nil {
		fmt.Fprintf(stderr, "error: %v\n", runErr)

		return 1
	}

	if closeErr != nil {
		fmt.Fprintf(stderr, "error: close %s: %v\n", flags.out, closeErr)

		return 1
	}

	if flags.result != "" {
		err = kernel.WriteMatrixFile(flags.result, runner.Last())
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)

			return 1
		}
	}

	fmt.Fprintf(stderr, "done: runs=%d elapsed=%v out=%s\n", runs, time.Since(start).Round(time.Millisecond), flags.out)

	return 0
}

func buildConfig(flags *benchFlags) (bench.Config, error) {
	schema, err := matbench.SchemaByName(flags.schema)
	if err != nil {
		return bench.Config{}, fmt.Errorf("invalid -schema: %w", err)
	}

	cfg := bench.Config{
		Kernels: splitList(flags.kernels),
		Repeats: flags.repeats,
		Seed:    flags.seed,
		Schema:  schema,
		Verify:  flags.verify,
	}

	cfg.Sizes, err = parseInts(flags.sizes)
	if err != nil {
		return bench.Config{}, fmt.Errorf("invalid -sizes: %w", err)
	}

	switch {
	case flags.threads != "":
		cfg.Threads, err = parseInts(flags.threads)
		if err != nil {
			return bench.Config{}, fmt.Errorf("invalid -threads: %w", err)
		}
	case schema.NumericCategory():
		cfg.Threads = defaultThreads(runtime.NumCPU())
	default:
		cfg.Threads = []int{1}
	}

	if flags.double && !slices.Contains(cfg.Threads, 2*runtime.NumCPU()) {
		cfg.Threads = append(cfg.Threads, 2*runtime.NumCPU())
	}

	if flags.files != "" {
		paths := splitList(flags.files)
		if len(paths) != 2 {
			return bench.Config{}, fmt.Errorf("invalid -files: want 2 paths, got %d", len(paths))
		}

		cfg.A, err = kernel.ReadMatrixFile(paths[0])
		if err != nil {
			return bench.Config{}, fmt.Errorf("read -files: %w", err)
		}

		cfg.B, err = kernel.ReadMatrixFile(paths[1])
		if err != nil {
			return bench.Config{}, fmt.Errorf("read -files: %w", err)
		}

		cfg.Sizes = []int{cfg.A.N}
	}

	return cfg, nil
}

// defaultThreads returns 1, 2, 4, ... up to cpus, followed by cpus itself.
func defaultThreads(cpus int) []int {
	var threads []int

	for n := 1; n <= cpus; n *= 2 {
		threads = append(threads, n)
	}

	if !slices.Contains(threads, cpus) {
		threads = append(threads, cpus)
	}

	return threads
}

func parseInts(s string) ([]int, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, errors.New("empty list")
	}

	out := make([]int, 0, len(parts))

	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}

		out = append(out, n)
	}

	return out, nil
}

func splitList(s string) []string {
	var out []string

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""

	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level))
}
