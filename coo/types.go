package coo

import (
	"errors"

	"github.com/katalvlaran/trisol/csr"
)

// Sentinel errors returned by the coo views and conversions.
var (
	// ErrNilMatrix indicates that a nil *Matrix was passed.
	ErrNilMatrix = errors.New("coo: matrix is nil")

	// ErrShape indicates that RowInd/ColInd/Values lengths disagree, or a
	// caller-provided destination slice has the wrong length.
	ErrShape = errors.New("coo: operand shape mismatch")

	// ErrUnsorted indicates that RowInd is not sorted in non-decreasing
	// order; the conversion requires sorted-by-row storage.
	ErrUnsorted = errors.New("coo: row indices not sorted")

	// ErrIndexRange indicates a row index outside [Base, Rows+Base).
	ErrIndexRange = errors.New("coo: row index out of range")
)

// Matrix is a read-only COO view over caller-owned storage.
//
// RowInd, ColInd and Values share one length (the entry count) and are
// sorted by row index; within one row the column order is preserved by the
// conversion. Base, Fill and Diag carry the same meaning as on csr.Matrix.
type Matrix[T csr.Scalar, I csr.Index] struct {
	Rows, Cols int
	RowInd     []I
	ColInd     []I
	Values     []T
	Base       csr.IndexBase
	Fill       csr.FillMode
	Diag       csr.DiagType
}

// NNZ returns the number of stored entries. Complexity: O(1).
func (m *Matrix[T, I]) NNZ() int { return len(m.Values) }

// Validate checks enum ranges and slice-length agreement. Sortedness is
// verified during conversion, where the pass over RowInd happens anyway.
func (m *Matrix[T, I]) Validate() error {
	if m == nil {
		return ErrNilMatrix
	}
	if !m.Base.Valid() || !m.Fill.Valid() || !m.Diag.Valid() {
		return csr.ErrEnum
	}
	if m.Rows < 0 || m.Cols < 0 {
		return ErrShape
	}
	if len(m.RowInd) != len(m.Values) || len(m.ColInd) != len(m.Values) {
		return ErrShape
	}

	return nil
}
