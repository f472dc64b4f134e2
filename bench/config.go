// Package bench runs matrix multiplication sweeps and records their timings
// as results rows that matbench.Load reads back.
package bench

import (
	"errors"
	"fmt"
	"slices"

	"github.com/calvinalkan/matbench"
	"github.com/calvinalkan/matbench/kernel"
)

// Config describes one sweep.
//
// With [matbench.SchemaThreads] every thread count in Threads is run with
// the single kernel in Kernels and the category is the thread count. With
// [matbench.SchemaConfigurations] every kernel in Kernels is run with
// Threads[0] workers and the category is the kernel name.
type Config struct {
	Sizes   []int
	Threads []int
	Kernels []string
	// Repeats is the number of timed runs per (size, category).
	Repeats int
	// Seed makes the random operands reproducible.
	Seed   uint64
	Schema matbench.Schema
	// Verify compares the first run of every (size, category) against the
	// standard kernel.
	Verify bool

	// A and B replace the random operands. Both must be set together, and
	// Sizes must then be exactly [A.N].
	A *kernel.Matrix
	B *kernel.Matrix
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return errors.New("at least one size is required")
	}

	for _, size := range c.Sizes {
		if size <= 0 {
			return fmt.Errorf("size must be > 0 (got %d)", size)
		}
	}

	if len(c.Threads) == 0 {
		return errors.New("at least one thread count is required")
	}

	for _, threads := range c.Threads {
		if threads <= 0 {
			return fmt.Errorf("threads must be > 0 (got %d)", threads)
		}
	}

	if c.Repeats <= 0 {
		return fmt.Errorf("repeats must be > 0 (got %d)", c.Repeats)
	}

	if len(c.Kernels) == 0 {
		return errors.New("at least one kernel is required")
	}

	for _, name := range c.Kernels {
		if !slices.Contains(kernel.Names(), name) {
			return fmt.Errorf("unknown kernel: %s (expected one of %v)", name, kernel.Names())
		}
	}

	if c.Schema.NumericCategory() {
		if len(c.Kernels) != 1 {
			return fmt.Errorf("schema %s runs exactly one kernel (got %d)", c.Schema.Name, len(c.Kernels))
		}

		if c.Kernels[0] == kernel.GonumName {
			return fmt.Errorf("kernel %s cannot be split across threads", kernel.GonumName)
		}
	} else if len(c.Threads) != 1 {
		return fmt.Errorf("schema %s runs one thread count (got %d)", c.Schema.Name, len(c.Threads))
	}

	if (c.A == nil) != (c.B == nil) {
		return errors.New("operands A and B must be set together")
	}

	if c.A != nil {
		if c.A.N != c.B.N {
			return fmt.Errorf("operand sizes differ: %d vs %d", c.A.N, c.B.N)
		}

		if len(c.Sizes) != 1 || c.Sizes[0] != c.A.N {
			return fmt.Errorf("sizes must be [%d] when operands are given", c.A.N)
		}
	}

	return nil
}
