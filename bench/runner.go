package bench

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/calvinalkan/matbench"
	"github.com/calvinalkan/matbench/kernel"
)

// ErrMismatch is returned when a kernel's product differs from the
// standard kernel's.
var ErrMismatch = errors.New("product differs from standard kernel")

// Option configures a [Runner].
type Option func(*Runner)

// WithLogger sets the logger every run is reported to. If nil, nothing is logged.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

// WithClock replaces time.Now for measuring runs.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// Runner executes a [Config].
type Runner struct {
	cfg  Config
	log  *zap.Logger
	now  func() time.Time
	last *kernel.Matrix
}

// run is one category of a sweep: a thread count or a kernel.
type run struct {
	category string
	workers  int
	multiply func(workers int, a, b, dst *kernel.Matrix) error
}

// NewRunner validates cfg and returns a runner for it.
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Runner{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	if r.log == nil {
		r.log = zap.NewNop()
	}

	return r, nil
}

// Run executes every (size, category, repeat) in order and passes each
// timing to sink as soon as it is measured. Only the multiplication is
// timed. Cancelling ctx stops the sweep before the next run; records
// already passed to sink stay written.
func (r *Runner) Run(ctx context.Context, sink func(matbench.ResultRecord) error) error {
	runs, err := r.runs()
	if err != nil {
		return err
	}

	for sizeIdx, size := range r.cfg.Sizes {
		a, b := r.operands(sizeIdx, size)
		dst := kernel.New(size)

		var want *kernel.Matrix

		if r.cfg.Verify {
			want = kernel.New(size)

			err = kernel.Standard.Multiply(a, b, want)
			if err != nil {
				return fmt.Errorf("reference product at size %d: %w", size, err)
			}
		}

		for _, rn := range runs {
			for rep := range r.cfg.Repeats {
				ctxErr := ctx.Err()
				if ctxErr != nil {
					return fmt.Errorf("stopped: %w", context.Cause(ctx))
				}

				start := r.now()

				err = rn.multiply(rn.workers, a, b, dst)
				if err != nil {
					return fmt.Errorf("multiply %s at size %d: %w", rn.category, size, err)
				}

				elapsed := r.now().Sub(start)

				if want != nil && rep == 0 && !want.Equal(dst) {
					return fmt.Errorf("%s at size %d: %w", rn.category, size, ErrMismatch)
				}

				rec := matbench.ResultRecord{Category: rn.category, Size: size, Time: elapsed.Seconds()}

				r.log.Info("run",
					zap.String("category", rn.category),
					zap.Int("size", size),
					zap.Int("repeat", rep+1),
					zap.Duration("elapsed", elapsed),
				)

				err = sink(rec)
				if err != nil {
					return fmt.Errorf("record result: %w", err)
				}
			}
		}

		r.last = dst
	}

	return nil
}

// Last returns the product of the final run, or nil before [Runner.Run].
func (r *Runner) Last() *kernel.Matrix {
	return r.last
}

func (r *Runner) runs() ([]run, error) {
	if r.cfg.Schema.NumericCategory() {
		k, err := kernel.ByName(r.cfg.Kernels[0])
		if err != nil {
			return nil, err
		}

		runs := make([]run, 0, len(r.cfg.Threads))
		for _, threads := range r.cfg.Threads {
			runs = append(runs, run{
				category: strconv.Itoa(threads),
				workers:  threads,
				multiply: k.Parallel,
			})
		}

		return runs, nil
	}

	runs := make([]run, 0, len(r.cfg.Kernels))

	for _, name := range r.cfg.Kernels {
		if name == kernel.GonumName {
			// gonum schedules its own workers.
			runs = append(runs, run{
				category: name,
				workers:  r.cfg.Threads[0],
				multiply: func(_ int, a, b, dst *kernel.Matrix) error { return kernel.Gonum(a, b, dst) },
			})

			continue
		}

		k, err := kernel.ByName(name)
		if err != nil {
			return nil, err
		}

		runs = append(runs, run{category: name, workers: r.cfg.Threads[0], multiply: k.Parallel})
	}

	return runs, nil
}

func (r *Runner) operands(sizeIdx, size int) (*kernel.Matrix, *kernel.Matrix) {
	if r.cfg.A != nil {
		return r.cfg.A, r.cfg.B
	}

	a := kernel.Random(size, kernel.SeedFor(r.cfg.Seed, 2*sizeIdx))
	b := kernel.Random(size, kernel.SeedFor(r.cfg.Seed, 2*sizeIdx+1))

	return a, b
}
