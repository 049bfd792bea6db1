package solver

import (
	"fmt"

	"github.com/katalvlaran/trisol/coo"
	"github.com/katalvlaran/trisol/csr"
)

// AnalyzeCOO is Analyze for coordinate-format input. It carves a row
// pointer segment from the front of buf, converts the sorted COO view to
// CSR in place (sharing ColInd and Values, copying nothing), and
// delegates to the CSR analysis over the remainder of the buffer. buf
// must be at least BufferSizeCOO bytes.
//
// The returned artifact remembers its converted row pointers, so SolveCOO
// can rebuild the CSR view from the live COO values on every call.
//
// Stage order, errors and complexity match Analyze; conversion failures
// (unsorted rows, stray indices) surface as ErrInvalidValue.
func AnalyzeCOO[T csr.Scalar, I csr.Index](m *coo.Matrix[T, I], opA csr.Operation, nrhs int, buf []byte, opts ...Option) (*Analysis[T, I], error) {
	// 1) Scalar guards.
	if m == nil {
		return nil, ErrInvalidPointer
	}
	if !opA.Valid() {
		return nil, ErrInvalidValue
	}
	if nrhs < 0 {
		return nil, fmt.Errorf("%w: nrhs=%d", ErrInvalidSize, nrhs)
	}

	// 2) Quick return mirrors Analyze: empty problems touch no buffer.
	if m.Rows == 0 || nrhs == 0 {
		return &Analysis[T, I]{
			opA: opA, fill: m.Fill, diag: m.Diag, base: m.Base,
			rows: m.Rows, cols: m.Cols, nrhs: nrhs, effFill: m.Fill,
		}, nil
	}

	// 3) Size guards against the COO layout.
	if buf == nil {
		return nil, ErrInvalidPointer
	}
	need, err := BufferSizeCOO[T, I](m.Rows, m.NNZ(), nrhs, opA, csr.NonTranspose)
	if err != nil {
		return nil, err
	}
	if len(buf) < need {
		return nil, fmt.Errorf("%w: buffer is %d bytes, need %d", ErrInvalidSize, len(buf), need)
	}

	// 4) Conversion segment first, then the CSR engine on the rest.
	rowPtr, off := carve[I](buf, 0, m.Rows+1)
	cm, err := coo.ToCSR(m, rowPtr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	a, err := Analyze(cm, opA, nrhs, buf[off:], opts...)
	if err != nil {
		return nil, err
	}
	a.cooRowPtr = rowPtr

	return a, nil
}

// SolveCOO executes the substitution against an artifact produced by
// AnalyzeCOO, reading live values from the COO view. Everything else —
// stage order, right-hand-side layouts, zero-pivot semantics — matches
// Solve.
func SolveCOO[T csr.Scalar, I csr.Index](a *Analysis[T, I], m *coo.Matrix[T, I], alpha T, b []T, ldb int, opA, opB csr.Operation, opts ...Option) error {
	if a == nil {
		return ErrInvalidHandle
	}
	if a.rows == 0 || a.nrhs == 0 {
		return nil
	}
	if m == nil {
		return ErrInvalidPointer
	}
	if a.cooRowPtr == nil {
		return fmt.Errorf("%w: artifact was not built from a COO matrix", ErrInvalidValue)
	}

	// Rebuild the CSR view over the artifact's row pointers and the
	// caller's current index/value slices, then delegate.
	cm := &csr.Matrix[T, I]{
		Rows:   m.Rows,
		Cols:   m.Cols,
		RowPtr: a.cooRowPtr,
		ColInd: m.ColInd,
		Values: m.Values,
		Base:   m.Base,
		Fill:   m.Fill,
		Diag:   m.Diag,
	}

	return Solve(a, cm, alpha, b, ldb, opA, opB, opts...)
}
