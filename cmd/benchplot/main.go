// benchplot charts matrix multiplication benchmark results.
//
// Usage:
//
//	benchplot time [results.csv]
//	benchplot speedup [results.csv]
//	benchplot compare [machine_1_results.csv machine_2_results.csv]
//	benchplot configs <results.csv>
//
// See 'benchplot <command> --help' for command-specific options.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const usage = `benchplot - chart matrix multiplication benchmark results

Usage:
  benchplot <command> [options] [files]

Commands:
  time      Execution time vs matrix size, one line per thread count
  speedup   Speedup vs thread count, one line per matrix size
  compare   One thread count on two machines, common sizes only
  configs   Sequential configurations on log axes, with time and speedup tables

Examples:
  # Time chart for a threaded run
  benchplot time machine_1_results.csv

  # Speedup chart (reads results.csv)
  benchplot speedup

  # Compare two machines at 6 threads
  benchplot compare --threads 6 machine_1_results.csv machine_2_results.csv

  # Compiler/loop-order comparison
  benchplot configs --out plots results.csv

  # Plot straight from go test -bench output
  go test -bench=Multiply ./kernel > bench.txt
  benchplot time --format gobench bench.txt

Run 'benchplot <command> --help' for command-specific help.
`

// usageError reports a wrong number of positional arguments. main prints
// the command's usage after the message.
type usageError struct {
	cmdUsage string
	msg      string
}

func (e *usageError) Error() string {
	return e.msg
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)

		return 1
	}

	cmd := args[0]
	args = args[1:]

	var err error

	switch cmd {
	case "time":
		err = runTime(args, stdout, stderr)
	case "speedup":
		err = runSpeedup(args, stdout, stderr)
	case "compare":
		err = runCompare(args, stdout, stderr)
	case "configs":
		err = runConfigs(args, stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)

		return 0
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", cmd)
		fmt.Fprint(stderr, usage)

		return 1
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "error: %s\n\n", uerr.msg)
		fmt.Fprint(stderr, uerr.cmdUsage)

		return 1
	}

	fmt.Fprintf(stderr, "error: %v\n", err)

	return 1
}
