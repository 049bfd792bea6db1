package coo

import (
	"fmt"

	"github.com/katalvlaran/trisol/csr"
)

// ToCSR converts a sorted COO view into a CSR view without copying any
// entry. The row-pointer array is written into rowPtr, which the caller
// provides with length Rows+1 (typically carved from the solve scratch
// buffer). ColInd and Values of the result alias the COO view, so value
// updates on the COO matrix remain visible through the CSR view.
//
// Preconditions and validation (in order):
//  1. m must be non-nil and pass Validate.
//  2. rowPtr must have length Rows+1 (ErrShape); for Rows == 0 an empty
//     rowPtr is accepted and nothing is written.
//  3. RowInd must be non-decreasing (ErrUnsorted) with every index in
//     [Base, Rows+Base) (ErrIndexRange).
//
// Complexity: O(NNZ + Rows) time, O(1) extra memory.
func ToCSR[T csr.Scalar, I csr.Index](m *Matrix[T, I], rowPtr []I) (*csr.Matrix[T, I], error) {
	// 1) Structural guards.
	if err := m.Validate(); err != nil {
		return nil, err
	}

	// 2) Quick return: an empty matrix converts to an empty view.
	if m.Rows == 0 {
		return &csr.Matrix[T, I]{Base: m.Base, Fill: m.Fill, Diag: m.Diag}, nil
	}

	if len(rowPtr) != m.Rows+1 {
		return nil, fmt.Errorf("%w: len(rowPtr)=%d, want %d", ErrShape, len(rowPtr), m.Rows+1)
	}

	// 3) Counting pass: rowPtr[r+1] accumulates the entry count of row r.
	base := int(m.Base)
	for i := range rowPtr {
		rowPtr[i] = 0
	}
	prev := -1
	for k, ri := range m.RowInd {
		r := int(ri) - base
		if r < 0 || r >= m.Rows {
			return nil, fmt.Errorf("%w: RowInd[%d]=%d", ErrIndexRange, k, ri)
		}
		if r < prev {
			return nil, fmt.Errorf("%w: RowInd[%d]=%d after row %d", ErrUnsorted, k, ri, prev+base)
		}
		prev = r
		rowPtr[r+1]++
	}

	// 4) Exclusive prefix sum, rebased.
	rowPtr[0] = I(base)
	for i := 0; i < m.Rows; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	return &csr.Matrix[T, I]{
		Rows:   m.Rows,
		Cols:   m.Cols,
		RowPtr: rowPtr,
		ColInd: m.ColInd,
		Values: m.Values,
		Base:   m.Base,
		Fill:   m.Fill,
		Diag:   m.Diag,
	}, nil
}
