package matbench

import (
	"go.uber.org/zap"
)

// Option configures [Load], [LoadReader], and [LoadGoBench].
// Options are applied in order.
type Option func(*options)

type options struct {
	Schema Schema
	Comma  rune
	Source string
	Logger *zap.Logger
}

// WithSchema selects the column layout of the input.
//
// # Default
//
// [SchemaThreads].
func WithSchema(s Schema) Option {
	return func(o *options) {
		o.Schema = s
	}
}

// WithComma sets the field delimiter. Values <= 0 use ','.
func WithComma(r rune) Option {
	return func(o *options) {
		o.Comma = r
	}
}

// WithSource sets the dataset label stored in every loaded record's Source.
//
// Empty uses the input file's base name without its extension, so
// "machine_1_results.csv" loads as "machine_1_results".
func WithSource(source string) Option {
	return func(o *options) {
		o.Source = source
	}
}

// WithLogger sets the logger used for debug output while loading.
// If nil, nothing is logged.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.Logger = l
	}
}

func applyOptions(opts []Option) options {
	cfg := options{
		Schema: SchemaThreads,
		Comma:  ',',
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Comma <= 0 {
		cfg.Comma = ','
	}

	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return cfg
}
