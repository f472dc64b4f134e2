// Package main writes a random square matrix of digits 0-9 for matbench --files.
//
// Examples:
//
//	go run ./cmd/matgen 1000 a.txt
//	go run ./cmd/matgen --seed 7 1000 b.txt
//
// Notes:
// - One row per line, values separated by single spaces.
// - Without --seed the seed is derived from the current time.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/calvinalkan/matbench/kernel"
)

const usage = `Usage: matgen [--seed N] <n> <output_file>
`

type Args struct {
	N    int
	Out  string
	Seed uint64
}

func main() {
	args, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}

		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	runErr := run(args)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

func run(args *Args) error {
	m := kernel.Random(args.N, args.Seed)

	err := kernel.WriteMatrixFile(args.Out, m)
	if err != nil {
		return fmt.Errorf("write matrix: %w", err)
	}

	return nil
}

func parseArgs(argv []string, stderr io.Writer) (*Args, error) {
	fs := flag.NewFlagSet("matgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	seed := fs.Uint64("seed", 0, "PRNG seed (0 = time based)")

	err := fs.Parse(argv)
	if err != nil {
		return nil, err
	}

	if fs.NArg() != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", fs.NArg())
	}

	n, err := strconv.Atoi(fs.Arg(0))
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("n must be a positive integer (got %q)", fs.Arg(0))
	}

	args := &Args{N: n, Out: fs.Arg(1), Seed: *seed}
	if args.Seed == 0 {
		args.Seed = uint64(time.Now().UnixNano())
	}

	return args, nil
}
