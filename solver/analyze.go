package solver

import (
	"fmt"

	"github.com/katalvlaran/trisol/csr"
	"github.com/katalvlaran/trisol/levels"
)

// Analysis is the opaque artifact produced by Analyze and consumed,
// read-only, by Solve. It bundles the level schedule, the operation and
// matrix fingerprint it was built for, and — for transposed operations —
// the views of the transposed pattern inside the caller's scratch buffer.
// It stays valid across value updates of the matrix and across any
// number of solves; a pattern change invalidates it.
type Analysis[T csr.Scalar, I csr.Index] struct {
	sched levels.Schedule[I]

	// Fingerprint of the analyzed matrix and call. Solve rejects gross
	// mismatches; full pattern identity remains a caller contract.
	opA  csr.Operation
	fill csr.FillMode
	diag csr.DiagType
	base csr.IndexBase
	rows int
	cols int
	nnz  int
	nrhs int

	// effFill is the fill mode the substitution kernel runs with: the
	// matrix fill, flipped when the pattern was transposed.
	effFill csr.FillMode

	// Buffer views. rowPtrT/colIndT describe the 0-based transposed
	// pattern and permT maps each transposed entry to its original value
	// slot; all three are nil for NonTranspose.
	rowPtrT []I
	colIndT []I
	permT   []I

	// cooRowPtr is the converted row-pointer segment when the artifact
	// came through the COO entry points; nil otherwise.
	cooRowPtr []I
}

// Rows returns the analyzed dimension. Complexity: O(1).
func (a *Analysis[T, I]) Rows() int { return a.rows }

// RHS returns the right-hand-side column count the artifact was sized
// for. Complexity: O(1).
func (a *Analysis[T, I]) RHS() int { return a.nrhs }

// Op returns the operation the schedule was built for. Complexity: O(1).
func (a *Analysis[T, I]) Op() csr.Operation { return a.opA }

// Levels returns the number of dependency levels. Complexity: O(1).
func (a *Analysis[T, I]) Levels() int { return a.sched.Count }

// Compatible reports whether the artifact may serve mat under opA with
// nrhs right-hand sides: the fingerprint (dimensions, nnz, fill, diag,
// base, operation, nrhs) must match. Two different patterns sharing a
// fingerprint are indistinguishable here — reusing across them is a
// caller contract violation with undefined numeric results.
func (a *Analysis[T, I]) Compatible(mat *csr.Matrix[T, I], opA csr.Operation, nrhs int) bool {
	if a == nil || mat == nil {
		return false
	}

	return a.rows == mat.Rows && a.cols == mat.Cols && a.nnz == mat.NNZ() &&
		a.fill == mat.Fill && a.diag == mat.Diag && a.base == mat.Base &&
		a.opA == opA && a.nrhs == nrhs
}

// Analyze builds the level schedule for op(A) of the triangular matrix
// mat inside the caller's scratch buffer and returns the artifact that
// subsequent Solve calls consume. buf must be at least BufferSize bytes,
// must start on its own allocation (see BufferSize for the alignment
// contract), and must stay alive and untouched (except through this
// artifact) for as long as the artifact is used.
//
// For opA ∈ {Transpose, ConjTranspose} the analysis additionally builds
// the transposed pattern and a permutation mapping each transposed entry
// to its original value slot; Solve gathers values through it, so
// value-only updates between analysis and solve stay visible.
//
// Stage order (strict):
//  1. Scalar guards: mat non-nil (ErrInvalidPointer), opA defined
//     (ErrInvalidValue), nrhs ≥ 0 (ErrInvalidSize).
//  2. Quick return: rows == 0 or nrhs == 0 succeeds without touching buf.
//  3. Pointer/size guards: structural Validate, squareness, buffer length.
//  4. Core: carve segments, transpose if requested, build levels.
//
// Complexity: O(NNZ + rows) time.
func Analyze[T csr.Scalar, I csr.Index](mat *csr.Matrix[T, I], opA csr.Operation, nrhs int, buf []byte, opts ...Option) (*Analysis[T, I], error) {
	// 1) Build options and run the scalar guards.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if mat == nil {
		return nil, ErrInvalidPointer
	}
	if !opA.Valid() {
		return nil, ErrInvalidValue
	}
	if nrhs < 0 {
		return nil, fmt.Errorf("%w: nrhs=%d", ErrInvalidSize, nrhs)
	}

	// 2) Quick return: an empty problem yields an empty (yet valid)
	//    artifact and reads nothing.
	if mat.Rows == 0 || nrhs == 0 {
		return &Analysis[T, I]{
			opA: opA, fill: mat.Fill, diag: mat.Diag, base: mat.Base,
			rows: mat.Rows, cols: mat.Cols, nrhs: nrhs, effFill: mat.Fill,
		}, nil
	}

	// 3) Pointer and size guards.
	if err := mat.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if mat.Rows != mat.Cols {
		return nil, fmt.Errorf("%w: matrix is %dx%d, triangular solve needs square", ErrInvalidValue, mat.Rows, mat.Cols)
	}
	if buf == nil {
		return nil, ErrInvalidPointer
	}
	need, err := BufferSize[T, I](mat.Rows, mat.NNZ(), nrhs, opA, csr.NonTranspose)
	if err != nil {
		return nil, err
	}
	if len(buf) < need {
		return nil, fmt.Errorf("%w: buffer is %d bytes, need %d", ErrInvalidSize, len(buf), need)
	}

	return analyzeCore(mat, opA, nrhs, buf, o)
}

// analyzeCore carves the buffer and builds the schedule. All guards have
// already passed.
func analyzeCore[T csr.Scalar, I csr.Index](mat *csr.Matrix[T, I], opA csr.Operation, nrhs int, buf []byte, o Options) (*Analysis[T, I], error) {
	rows, nnz := mat.Rows, mat.NNZ()

	a := &Analysis[T, I]{
		opA: opA, fill: mat.Fill, diag: mat.Diag, base: mat.Base,
		rows: rows, cols: mat.Cols, nnz: nnz, nrhs: nrhs, effFill: mat.Fill,
	}

	// 1) Carve the buffer segments in the BufferSize layout order.
	var off int
	var levelOf, perm, offsets []I
	levelOf, off = carve[I](buf, off, rows)
	perm, off = carve[I](buf, off, rows)
	offsets, off = carve[I](buf, off, rows+1)

	// 2) The pattern the schedule is built on: the matrix itself, or its
	//    transpose scattered into the buffer with the fill mode flipped.
	ptr, ind, base, fill := mat.RowPtr, mat.ColInd, mat.Base, mat.Fill
	if opA != csr.NonTranspose {
		a.rowPtrT, off = carve[I](buf, off, rows+1)
		a.colIndT, off = carve[I](buf, off, nnz)
		a.permT, _ = carve[I](buf, off, nnz)
		if err := transposePattern(mat, a.rowPtrT, a.colIndT, a.permT); err != nil {
			return nil, err
		}
		if mat.Fill == csr.Lower {
			a.effFill = csr.Upper
		} else {
			a.effFill = csr.Lower
		}
		ptr, ind, base, fill = a.rowPtrT, a.colIndT, csr.Zero, a.effFill
	}

	// 3) Level construction over the effective pattern.
	a.sched.LevelOf, a.sched.Perm, a.sched.Offsets = levelOf, perm, offsets
	if err := levels.Build(ptr, ind, rows, base, fill, &a.sched); err != nil {
		// A cycle or stray index means the caller's pattern is not the
		// triangle it claims to be.
		return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	if o.Verbose {
		fmt.Printf("solver: analyzed %d rows, %d nnz into %d levels\n", rows, nnz, a.sched.Count)
	}

	return a, nil
}

// transposePattern scatters the 0-based transposed pattern of mat into
// rowPtrT/colIndT and records, per transposed entry, the index of its
// original value slot in permT. Entries of one transposed row keep
// ascending original-row order, so the result is deterministic.
//
// Complexity: O(NNZ + rows) time, O(1) extra memory.
func transposePattern[T csr.Scalar, I csr.Index](mat *csr.Matrix[T, I], rowPtrT, colIndT, permT []I) error {
	rows, base := mat.Rows, int(mat.Base)

	// 1) Count entries per column.
	for i := range rowPtrT {
		rowPtrT[i] = 0
	}
	for k, c := range mat.ColInd {
		j := int(c) - base
		if j < 0 || j >= rows {
			return fmt.Errorf("%w: ColInd[%d]=%d", ErrInvalidValue, k, c)
		}
		rowPtrT[j+1]++
	}

	// 2) Prefix sum; rowPtrT[j] becomes the start cursor of column j.
	for j := 1; j <= rows; j++ {
		rowPtrT[j] += rowPtrT[j-1]
	}

	// 3) Scatter rows ascending, advancing cursors.
	for i := 0; i < rows; i++ {
		lo, hi := mat.Row(i)
		for k := lo; k < hi; k++ {
			j := int(mat.ColInd[k]) - base
			pos := int(rowPtrT[j])
			colIndT[pos] = I(i)
			permT[pos] = I(k)
			rowPtrT[j]++
		}
	}

	// 4) Shift cursors back to start/end boundaries.
	for j := rows; j >= 1; j-- {
		rowPtrT[j] = rowPtrT[j-1]
	}
	rowPtrT[0] = 0

	return nil
}

// Reanalyze applies the reuse policy: under ReuseIfCompatible it returns
// prev unchanged when its fingerprint matches (the schedule is not
// rebuilt); otherwise — and always under ForceRecompute — it runs a fresh
// Analyze into buf. Passing the buffer that backed prev is allowed when
// its length still covers the new BufferSize; the returned artifact then
// supersedes prev.
func Reanalyze[T csr.Scalar, I csr.Index](prev *Analysis[T, I], mat *csr.Matrix[T, I], opA csr.Operation, nrhs int, buf []byte, opts ...Option) (*Analysis[T, I], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.Policy.Valid() {
		return nil, ErrInvalidValue
	}

	if o.Policy == ReuseIfCompatible && prev.Compatible(mat, opA, nrhs) {
		return prev, nil
	}

	return Analyze(mat, opA, nrhs, buf, opts...)
}
