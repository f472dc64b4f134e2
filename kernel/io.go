package kernel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNotSquare is returned by [ReadMatrix] when a row's length differs from
// the row count.
var ErrNotSquare = errors.New("matrix is not square")

// WriteMatrix writes m as text: one row per line, elements separated by a
// single space.
func WriteMatrix(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)

	buf := make([]byte, 0, 32)

	for i := range m.N {
		for j, v := range m.Row(i) {
			buf = buf[:0]
			if j > 0 {
				buf = append(buf, ' ')
			}

			buf = strconv.AppendInt(buf, v, 10)

			_, err := bw.Write(buf)
			if err != nil {
				return fmt.Errorf("write matrix: %w", err)
			}
		}

		err := bw.WriteByte('\n')
		if err != nil {
			return fmt.Errorf("write matrix: %w", err)
		}
	}

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("flush matrix: %w", err)
	}

	return nil
}

// WriteMatrixFile writes m to path, replacing any existing file.
func WriteMatrixFile(path string, m *Matrix) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create matrix file: %w", err)
	}

	writeErr := WriteMatrix(file, m)
	closeErr := file.Close()

	if writeErr != nil {
		return fmt.Errorf("%s: %w", path, writeErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close matrix file %s: %w", path, closeErr)
	}

	return nil
}

// ReadMatrix reads a matrix written by [WriteMatrix]. The dimension is the
// number of non-blank lines; every line must hold that many integers.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var (
		rows   [][]int64
		lineNo int
	)

	for scanner.Scan() {
		lineNo++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		row := make([]int64, len(fields))

		for j, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %d: %w", lineNo, j+1, err)
			}

			row[j] = v
		}

		rows = append(rows, row)
	}

	err := scanner.Err()
	if err != nil {
		return nil, fmt.Errorf("read matrix: %w", err)
	}

	m := New(len(rows))

	for i, row := range rows {
		if len(row) != m.N {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i+1, len(row), m.N, ErrNotSquare)
		}

		copy(m.Row(i), row)
	}

	return m, nil
}

// ReadMatrixFile reads a matrix from path.
func ReadMatrixFile(path string) (*Matrix, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix file: %w", err)
	}

	defer func() { _ = file.Close() }()

	m, err := ReadMatrix(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
