package matbench

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrColumnCount is wrapped by a [FormatError] when a row does not have
	// exactly the number of columns the schema requires.
	ErrColumnCount = errors.New("wrong column count")

	// ErrEmptyInput is wrapped by a [FormatError] when the input has no header row.
	ErrEmptyInput = errors.New("empty input")

	// ErrNonNumericCategory is returned when an operation needs integer
	// categories (thread counts) and finds a text label.
	ErrNonNumericCategory = errors.New("category is not an integer")
)

// FormatError is returned when an input file is malformed.
type FormatError struct {
	// Path is the input path, or the name passed to [LoadReader].
	Path string
	// Line is the 1-based line number of the offending row. Zero when the
	// error is not tied to a single line.
	Line int
	// Column is the header name of the offending column, if any.
	Column string
	// Err is the underlying error.
	Err error
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("format %s:%d: column %s: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("format %s:%d: %v", e.Path, e.Line, e.Err)
	default:
		return fmt.Sprintf("format %s: %v", e.Path, e.Err)
	}
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// MissingBaselineError is returned by [ComputeSpeedup] when the baseline
// category has no measurement at a size that another category measured.
type MissingBaselineError struct {
	// Baseline is the baseline category label.
	Baseline string
	// Size is the smallest size without a baseline measurement.
	// Zero when the baseline category is absent altogether.
	Size int
}

func (e *MissingBaselineError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("missing baseline %q: category not present", e.Baseline)
	}

	return fmt.Sprintf("missing baseline %q at size %d", e.Baseline, e.Size)
}

// ZeroTimeError is returned by [ComputeSpeedup] when a category's mean time
// at some size is zero, which leaves its speedup undefined.
type ZeroTimeError struct {
	Category string
	Size     int
}

func (e *ZeroTimeError) Error() string {
	return fmt.Sprintf("zero mean time for %q at size %d: speedup undefined", e.Category, e.Size)
}

// FileNotFoundError is returned when an input path does not exist.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("open %s: file not found", e.Path)
}

// Unwrap returns the underlying error, which satisfies errors.Is(err, fs.ErrNotExist).
func (e *FileNotFoundError) Unwrap() error {
	if e.Err == nil {
		return fs.ErrNotExist
	}

	return e.Err
}
