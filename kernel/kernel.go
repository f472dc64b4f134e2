package kernel

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Kernel is a row-partitionable multiplication.
type Kernel struct {
	// Name identifies the kernel in results files ("standard", "transpose").
	Name string

	// prepare transforms b once before any rows are computed. Nil keeps b.
	prepare func(b *Matrix) *Matrix
	// rows computes rows [lo, hi) of dst from a and the prepared b.
	rows func(a, b, dst *Matrix, lo, hi int)
}

var (
	// Standard is the textbook i-j-k loop.
	Standard = Kernel{Name: "standard", rows: standardRows}

	// Transpose transposes b once, then takes row-by-row dot products so
	// both operands are read sequentially.
	Transpose = Kernel{Name: "transpose", prepare: (*Matrix).Transposed, rows: transposedRows}
)

// GonumName is the name of the [Gonum] kernel.
const GonumName = "gonum"

// Names lists every kernel name accepted by [ByName].
func Names() []string {
	return []string{Standard.Name, Transpose.Name, GonumName}
}

// ByName returns the row-partitionable kernel with the given name.
// [Gonum] is not row-partitionable and is not returned.
func ByName(name string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Standard.Name:
		return Standard, nil
	case Transpose.Name:
		return Transpose, nil
	default:
		return Kernel{}, fmt.Errorf("unknown kernel: %s (expected: standard | transpose)", name)
	}
}

// Multiply computes dst = a × b on the calling goroutine.
// dst is overwritten and must not share storage with a or b.
func (k Kernel) Multiply(a, b, dst *Matrix) error {
	return k.Parallel(1, a, b, dst)
}

// Parallel computes dst = a × b with the rows split across workers
// goroutines. Each worker gets n/workers consecutive rows; the first
// n%workers workers get one extra row. Workers beyond n get no rows and
// are not started. dst is overwritten; sharing storage with a or b
// returns [ErrAliased].
func (k Kernel) Parallel(workers int, a, b, dst *Matrix) error {
	if workers <= 0 {
		return errors.New("workers must be > 0")
	}

	err := checkOperands(a, b, dst)
	if err != nil {
		return err
	}

	if k.prepare != nil {
		b = k.prepare(b)
	}

	dst.Zero()

	if workers == 1 {
		k.rows(a, b, dst, 0, a.N)

		return nil
	}

	var waitGroup sync.WaitGroup

	for workerID := range workers {
		lo, hi := splitRows(a.N, workers, workerID)
		if lo == hi {
			continue
		}

		waitGroup.Go(func() {
			k.rows(a, b, dst, lo, hi)
		})
	}

	waitGroup.Wait()

	return nil
}

// splitRows returns the half-open row range of workerID. The first
// n%workers workers take one extra row each.
func splitRows(n, workers, workerID int) (int, int) {
	chunk := n / workers
	remainder := n % workers

	lo := workerID*chunk + min(workerID, remainder)

	hi := lo + chunk
	if workerID < remainder {
		hi++
	}

	return lo, hi
}

func standardRows(a, b, dst *Matrix, lo, hi int) {
	n := a.N

	for i := lo; i < hi; i++ {
		aRow := a.Data[i*n : (i+1)*n]
		dRow := dst.Data[i*n : (i+1)*n]

		for j := range n {
			var sum int64
			for k := range n {
				sum += aRow[k] * b.Data[k*n+j]
			}

			dRow[j] = sum
		}
	}
}

// transposedRows expects bt to be b transposed.
func transposedRows(a, bt, dst *Matrix, lo, hi int) {
	n := a.N

	for i := lo; i < hi; i++ {
		aRow := a.Data[i*n : (i+1)*n]
		dRow := dst.Data[i*n : (i+1)*n]

		for j := range n {
			btRow := bt.Data[j*n : (j+1)*n]

			var sum int64
			for k, av := range aRow {
				sum += av * btRow[k]
			}

			dRow[j] = sum
		}
	}
}

// Gonum computes dst = a × b with gonum's float64 dense multiplication and
// rounds the result back to integers. Exact as long as every element of the
// product fits in a float64 mantissa, which holds for digit matrices of any
// practical size.
func Gonum(a, b, dst *Matrix) error {
	err := checkOperands(a, b, dst)
	if err != nil {
		return err
	}

	if a.N == 0 {
		return nil
	}

	var product mat.Dense

	product.Mul(toDense(a), toDense(b))

	raw := product.RawMatrix()
	for i := range a.N {
		for j := range a.N {
			dst.Data[i*a.N+j] = int64(raw.Data[i*raw.Stride+j])
		}
	}

	return nil
}

func toDense(m *Matrix) *mat.Dense {
	data := make([]float64, len(m.Data))
	for i, v := range m.Data {
		data[i] = float64(v)
	}

	return mat.NewDense(m.N, m.N, data)
}
