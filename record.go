package matbench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ResultRecord is one timed run of a matrix multiplication.
type ResultRecord struct {
	// Category is the discrete label the run belongs to: a thread count
	// such as "4", or a configuration name such as "O3 + transpose".
	Category string
	// Size is the matrix dimension N of an N x N multiplication.
	Size int
	// Time is the elapsed time in seconds.
	Time float64
	// Source labels the dataset the record came from (see [WithSource]).
	Source string
}

// Schema describes the fixed column order of a results file.
type Schema struct {
	// Name is a short identifier ("threads", "configurations").
	Name string
	// Columns are the canonical header names, in file order.
	Columns [3]string

	categoryCol int
	sizeCol     int
	timeCol     int

	// numericCategory requires the category column to hold positive integers.
	numericCategory bool
}

var (
	// SchemaThreads is the (threads, size, time) layout written by the
	// threaded and OpenMP benchmark runs.
	SchemaThreads = Schema{
		Name:            "threads",
		Columns:         [3]string{"Threads", "Size", "Time"},
		categoryCol:     0,
		sizeCol:         1,
		timeCol:         2,
		numericCategory: true,
	}

	// SchemaConfigurations is the (dimension, configuration, time) layout
	// written by the sequential compiler/loop-order comparison runs.
	SchemaConfigurations = Schema{
		Name:        "configurations",
		Columns:     [3]string{"dimension", "configuration", "time"},
		categoryCol: 1,
		sizeCol:     0,
		timeCol:     2,
	}
)

// SchemaByName returns the schema with the given [Schema.Name].
func SchemaByName(name string) (Schema, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchemaThreads.Name:
		return SchemaThreads, nil
	case SchemaConfigurations.Name, "configs":
		return SchemaConfigurations, nil
	default:
		return Schema{}, fmt.Errorf("unknown schema: %s (expected: threads | configurations)", name)
	}
}

// NumericCategory reports whether the schema's category column holds thread counts.
func (s Schema) NumericCategory() bool {
	return s.numericCategory
}

// Header returns the canonical header row.
func (s Schema) Header() []string {
	return s.Columns[:]
}

// Row formats rec as a row in the schema's column order. Times use the
// shortest representation that round-trips.
func (s Schema) Row(rec ResultRecord) []string {
	row := make([]string, len(s.Columns))
	row[s.categoryCol] = rec.Category
	row[s.sizeCol] = strconv.Itoa(rec.Size)
	row[s.timeCol] = strconv.FormatFloat(rec.Time, 'g', -1, 64)

	return row
}

// Load reads a results file.
//
// The file must start with a header row followed by rows of exactly three
// columns in the schema's order. Header names are not matched, only counted.
// Blank lines are skipped.
//
// Returns a [*FileNotFoundError] if path does not exist and a [*FormatError]
// for any malformed row; no records are returned on error.
func Load(path string, opts ...Option) ([]ResultRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Err: err}
		}

		return nil, fmt.Errorf("open results file: %w", err)
	}

	defer func() { _ = file.Close() }()

	cfg := applyOptions(opts)
	if cfg.Source == "" {
		cfg.Source = sourceFromPath(path)
	}

	return parseRecords(file, path, cfg)
}

// LoadReader is like [Load] but reads from r. name is used in errors and as
// the default source label.
func LoadReader(r io.Reader, name string, opts ...Option) ([]ResultRecord, error) {
	cfg := applyOptions(opts)
	if cfg.Source == "" {
		cfg.Source = sourceFromPath(name)
	}

	return parseRecords(r, name, cfg)
}

func parseRecords(r io.Reader, name string, cfg options) ([]ResultRecord, error) {
	schema := cfg.Schema

	reader := csv.NewReader(r)
	reader.Comma = cfg.Comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Path: name, Err: ErrEmptyInput}
	}

	if err != nil {
		return nil, csvFormatError(name, err)
	}

	if len(header) != len(schema.Columns) {
		line, _ := reader.FieldPos(0)

		return nil, &FormatError{
			Path: name,
			Line: line,
			Err:  fmt.Errorf("%w: header has %d columns, want %d", ErrColumnCount, len(header), len(schema.Columns)),
		}
	}

	columns := [3]string{}
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		if columns[i] == "" {
			columns[i] = schema.Columns[i]
		}
	}

	var records []ResultRecord

	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, csvFormatError(name, readErr)
		}

		line, _ := reader.FieldPos(0)

		if len(row) != len(schema.Columns) {
			return nil, &FormatError{
				Path: name,
				Line: line,
				Err:  fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(row), len(schema.Columns)),
			}
		}

		rec, colIdx, parseErr := parseRow(row, schema)
		if parseErr != nil {
			return nil, &FormatError{Path: name, Line: line, Column: columns[colIdx], Err: parseErr}
		}

		rec.Source = cfg.Source
		records = append(records, rec)
	}

	cfg.Logger.Debug("loaded results",
		zap.String("path", name),
		zap.String("schema", schema.Name),
		zap.String("source", cfg.Source),
		zap.Int("records", len(records)),
	)

	return records, nil
}

// parseRow converts one row. On error it also returns the index of the
// offending column.
func parseRow(row []string, schema Schema) (ResultRecord, int, error) {
	category := strings.TrimSpace(row[schema.categoryCol])
	if category == "" {
		return ResultRecord{}, schema.categoryCol, errors.New("empty category")
	}

	if schema.numericCategory {
		threads, err := strconv.Atoi(category)
		if err != nil {
			return ResultRecord{}, schema.categoryCol, fmt.Errorf("parse thread count %q: %w", category, ErrNonNumericCategory)
		}

		if threads <= 0 {
			return ResultRecord{}, schema.categoryCol, fmt.Errorf("thread count must be > 0 (got %d)", threads)
		}

		category = strconv.Itoa(threads)
	}

	sizeField := strings.TrimSpace(row[schema.sizeCol])

	size, err := strconv.Atoi(sizeField)
	if err != nil {
		return ResultRecord{}, schema.sizeCol, fmt.Errorf("parse size %q: %w", sizeField, err)
	}

	if size <= 0 {
		return ResultRecord{}, schema.sizeCol, fmt.Errorf("size must be > 0 (got %d)", size)
	}

	timeField := strings.TrimSpace(row[schema.timeCol])

	elapsed, err := strconv.ParseFloat(timeField, 64)
	if err != nil {
		return ResultRecord{}, schema.timeCol, fmt.Errorf("parse time %q: %w", timeField, err)
	}

	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) || elapsed < 0 {
		return ResultRecord{}, schema.timeCol, fmt.Errorf("time must be finite and >= 0 (got %v)", elapsed)
	}

	return ResultRecord{Category: category, Size: size, Time: elapsed}, 0, nil
}

func csvFormatError(name string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return &FormatError{Path: name, Line: parseErr.Line, Err: parseErr.Err}
	}

	return fmt.Errorf("read %s: %w", name, err)
}

func sourceFromPath(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
