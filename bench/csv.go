package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/matbench"
)

// ErrSchemaMismatch is returned by [AppendFile] when an existing results file
// starts with the header of a different schema.
var ErrSchemaMismatch = errors.New("results file has a different schema")

// CSVWriter writes results rows in a schema's column order.
type CSVWriter struct {
	w      *csv.Writer
	schema matbench.Schema
}

// NewCSVWriter returns a writer that formats rows for schema.
func NewCSVWriter(w io.Writer, schema matbench.Schema) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), schema: schema}
}

// WriteHeader writes the schema's header row.
func (c *CSVWriter) WriteHeader() error {
	return c.writeRow(c.schema.Header())
}

// Write writes rec and flushes, so a row is on disk as soon as it is measured.
func (c *CSVWriter) Write(rec matbench.ResultRecord) error {
	return c.writeRow(c.schema.Row(rec))
}

func (c *CSVWriter) writeRow(row []string) error {
	err := c.w.Write(row)
	if err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}

	c.w.Flush()

	err = c.w.Error()
	if err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// AppendFile opens path for appending and returns a writer for it. The
// header row is written only if the file is new or empty; a non-empty file
// must start with schema's header, compared case-insensitively. The caller
// must call close when done.
func AppendFile(path string, schema matbench.Schema) (*CSVWriter, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open results file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()

		return nil, nil, fmt.Errorf("stat results file: %w", err)
	}

	writer := NewCSVWriter(file, schema)

	if info.Size() == 0 {
		err = writer.WriteHeader()
	} else {
		err = checkHeader(file, path, schema)
	}

	if err != nil {
		_ = file.Close()

		return nil, nil, err
	}

	return writer, file.Close, nil
}

// checkHeader reads the first row of r. Appends on an O_APPEND file still
// land at the end after reading.
func checkHeader(r io.Reader, path string, schema matbench.Schema) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	got, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}

	want := schema.Header()

	match := len(got) == len(want)
	for i := 0; match && i < len(want); i++ {
		match = strings.EqualFold(strings.TrimSpace(got[i]), want[i])
	}

	if !match {
		return fmt.Errorf("append to %s: header %q, want %q (schema %s): %w",
			path, strings.Join(got, ","), strings.Join(want, ","), schema.Name, ErrSchemaMismatch)
	}

	return nil
}
