// Package kernel implements the square integer matrix multiplications that
// the benchmark runner times.
//
// All kernels compute dst = a × b for N x N row-major matrices and produce
// identical results; they differ only in memory access order and in how the
// work is split across goroutines.
package kernel

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrSizeMismatch is returned when the operands of a multiplication do not
	// all have the same dimension.
	ErrSizeMismatch = errors.New("matrix size mismatch")

	// ErrAliased is returned when dst shares storage with a or b.
	ErrAliased = errors.New("dst shares storage with an operand")
)

// Matrix is a square matrix stored row-major.
type Matrix struct {
	N    int
	Data []int64
}

// New returns a zero N x N matrix.
func New(n int) *Matrix {
	return &Matrix{N: n, Data: make([]int64, n*n)}
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) int64 {
	return m.Data[i*m.N+j]
}

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, v int64) {
	m.Data[i*m.N+j] = v
}

// Row returns row i. The slice aliases m.Data.
func (m *Matrix) Row(i int) []int64 {
	return m.Data[i*m.N : (i+1)*m.N]
}

// Equal reports whether m and o have the same size and elements.
func (m *Matrix) Equal(o *Matrix) bool {
	return m.N == o.N && slices.Equal(m.Data, o.Data)
}

// Zero sets every element to 0.
func (m *Matrix) Zero() {
	clear(m.Data)
}

// Transposed returns a new matrix holding the transpose of m.
func (m *Matrix) Transposed() *Matrix {
	t := New(m.N)

	for i := range m.N {
		for j := range m.N {
			t.Data[j*m.N+i] = m.Data[i*m.N+j]
		}
	}

	return t
}

func checkOperands(a, b, dst *Matrix) error {
	if a.N != b.N || a.N != dst.N {
		return fmt.Errorf("multiply %dx%d by %dx%d into %dx%d: %w", a.N, a.N, b.N, b.N, dst.N, dst.N, ErrSizeMismatch)
	}

	if len(a.Data) != a.N*a.N || len(b.Data) != b.N*b.N || len(dst.Data) != dst.N*dst.N {
		return fmt.Errorf("multiply: backing slice does not match dimension: %w", ErrSizeMismatch)
	}

	if sharesStorage(dst, a) || sharesStorage(dst, b) {
		return fmt.Errorf("multiply: %w", ErrAliased)
	}

	return nil
}

func sharesStorage(x, y *Matrix) bool {
	if x == y {
		return true
	}

	if len(x.Data) == 0 || len(y.Data) == 0 {
		return false
	}

	return &x.Data[0] == &y.Data[0]
}
