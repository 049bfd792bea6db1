package csr

import "fmt"

// Matrix is a read-only CSR view over caller-owned storage.
//
// RowPtr has length Rows+1; ColInd and Values both have length NNZ().
// All three are interpreted relative to Base. Fill and Diag describe how
// the triangular kernels read the nonzero pattern. The engine never
// mutates a Matrix; only Values may change between an analysis and the
// solves that reuse it.
type Matrix[T Scalar, I Index] struct {
	Rows, Cols int
	RowPtr     []I
	ColInd     []I
	Values     []T
	Base       IndexBase
	Fill       FillMode
	Diag       DiagType
}

// NNZ returns the number of stored entries, derived from RowPtr.
// Complexity: O(1).
func (m *Matrix[T, I]) NNZ() int {
	if len(m.RowPtr) == 0 {
		return 0
	}

	return int(m.RowPtr[len(m.RowPtr)-1]) - int(m.Base)
}

// Row returns the half-open range [lo, hi) of entry positions for row i,
// already rebased to 0. The caller guarantees 0 ≤ i < Rows.
// Complexity: O(1).
func (m *Matrix[T, I]) Row(i int) (lo, hi int) {
	return int(m.RowPtr[i]) - int(m.Base), int(m.RowPtr[i+1]) - int(m.Base)
}

// Validate checks the structural contract of the view: enum ranges,
// slice lengths against Rows/NNZ, and the RowPtr base/monotonicity
// invariant. Distinctness of column indices within a row is a caller
// contract and is not checked here.
//
// Complexity: O(Rows) time, O(1) memory.
func (m *Matrix[T, I]) Validate() error {
	if m == nil {
		return ErrNilMatrix
	}
	if !m.Base.Valid() || !m.Fill.Valid() || !m.Diag.Valid() {
		return ErrEnum
	}
	if m.Rows < 0 || m.Cols < 0 {
		return fmt.Errorf("%w: negative dimension %dx%d", ErrShape, m.Rows, m.Cols)
	}

	// An empty view carries no storage at all.
	if m.Rows == 0 {
		if len(m.RowPtr) > 1 || len(m.ColInd) != 0 || len(m.Values) != 0 {
			return fmt.Errorf("%w: empty matrix with non-empty storage", ErrShape)
		}

		return nil
	}

	if len(m.RowPtr) != m.Rows+1 {
		return fmt.Errorf("%w: len(RowPtr)=%d, want %d", ErrShape, len(m.RowPtr), m.Rows+1)
	}
	if int(m.RowPtr[0]) != int(m.Base) {
		return fmt.Errorf("%w: RowPtr[0]=%d, want base %d", ErrRowPtr, m.RowPtr[0], m.Base)
	}
	for i := 0; i < m.Rows; i++ {
		if m.RowPtr[i+1] < m.RowPtr[i] {
			return fmt.Errorf("%w: RowPtr decreases at row %d", ErrRowPtr, i)
		}
	}

	nnz := m.NNZ()
	if len(m.ColInd) != nnz || len(m.Values) != nnz {
		return fmt.Errorf("%w: len(ColInd)=%d len(Values)=%d, want NNZ=%d",
			ErrShape, len(m.ColInd), len(m.Values), nnz)
	}

	return nil
}

// Conj returns the complex conjugate of v; real scalars pass through.
func Conj[T Scalar](v T) T {
	switch x := any(v).(type) {
	case complex64:
		return any(complex(real(x), -imag(x))).(T)
	case complex128:
		return any(complex(real(x), -imag(x))).(T)
	default:
		return v
	}
}
