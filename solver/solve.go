package solver

import (
	"fmt"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/trisol/csr"
)

// minParallelRows is the smallest level that fans out across workers;
// below it, goroutine dispatch costs more than the rows themselves.
const minParallelRows = 64

// Solve executes the substitution op(A)·X = α·B against a prepared
// analysis artifact, overwriting B with X. The artifact fixes the
// right-hand-side column count (a.RHS()); B holds those columns either
// column-major (opB == NonTranspose, ldb ≥ rows) or row-major
// (opB == Transpose, ldb ≥ nrhs — staged through a block owned by this
// call and written back). opA must equal the operation the artifact was
// analyzed with. Values are read from mat at call time, so the same
// artifact serves any number of value updates of one pattern.
//
// The artifact is only read here, and every piece of mutable state —
// including the row-major staging block — belongs to the individual
// call, so any number of Solve calls may run concurrently over one
// artifact as long as their B operands are distinct.
//
// Stage order (strict):
//  1. Handle and enum guards: a non-nil (ErrInvalidHandle), opA/opB
//     defined (ErrInvalidValue), opB ≠ ConjTranspose (ErrNotImplemented).
//  2. Quick return: an empty artifact (rows == 0 or nrhs == 0) succeeds
//     without touching B.
//  3. Pointer/size guards: mat and B non-nil, structural Validate,
//     fingerprint match against the artifact, opA match (the cached
//     flag from analysis), leading-dimension coverage.
//  4. Core: level-by-level substitution with a hard barrier between
//     levels; rows within a level fan out across at most Workers
//     goroutines.
//
// A zero or missing diagonal under NonUnit surfaces as ErrZeroPivot
// naming the smallest affected row, identically for every worker count;
// execution stops after the affected level and no output value is
// trustworthy. Unit diagonals never read the stored diagonal value.
//
// Complexity: O(NNZ·nrhs + rows·nrhs) work across Levels() barriers.
func Solve[T csr.Scalar, I csr.Index](a *Analysis[T, I], mat *csr.Matrix[T, I], alpha T, b []T, ldb int, opA, opB csr.Operation, opts ...Option) error {
	// 1) Options, handle and enum guards.
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if a == nil {
		return ErrInvalidHandle
	}
	if !opA.Valid() || !opB.Valid() {
		return ErrInvalidValue
	}
	if opB == csr.ConjTranspose {
		return fmt.Errorf("%w: conjugate-transposed right-hand-side layout", ErrNotImplemented)
	}

	// 2) Quick return: nothing to solve, nothing is read or written.
	if a.rows == 0 || a.nrhs == 0 {
		return nil
	}

	// 3) Pointer, consistency and size guards.
	if mat == nil || b == nil {
		return ErrInvalidPointer
	}
	if err := mat.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if opA != a.opA {
		return fmt.Errorf("%w: analysis ran with operation %d, solve got %d", ErrInvalidValue, a.opA, opA)
	}
	if !a.Compatible(mat, opA, a.nrhs) {
		return fmt.Errorf("%w: matrix does not match analysis fingerprint", ErrInvalidValue)
	}
	rows, nrhs := a.rows, a.nrhs
	if opB == csr.NonTranspose {
		if ldb < rows || len(b) < ldb*(nrhs-1)+rows {
			return fmt.Errorf("%w: ldb=%d len(b)=%d for %dx%d column-major B", ErrInvalidSize, ldb, len(b), rows, nrhs)
		}
	} else {
		if ldb < nrhs || len(b) < ldb*(rows-1)+nrhs {
			return fmt.Errorf("%w: ldb=%d len(b)=%d for %dx%d row-major B", ErrInvalidSize, ldb, len(b), rows, nrhs)
		}
	}

	// 4) Core: pick the working view of X, substitute, write back.
	//    Column-major B is solved in place; row-major B is staged into a
	//    per-call block (scaled by α on load) and written back after.
	x, ldx := b, ldb
	if opB == csr.Transpose {
		x, ldx = make([]T, rows*nrhs), rows
		for i := 0; i < rows; i++ {
			for c := 0; c < nrhs; c++ {
				x[i+c*rows] = alpha * b[c+i*ldb]
			}
		}
	} else if alpha != 1 {
		for c := 0; c < nrhs; c++ {
			col := b[c*ldb : c*ldb+rows]
			for i := range col {
				col[i] *= alpha
			}
		}
	}

	if err := substitute(a, mat, x, ldx, o); err != nil {
		return err
	}

	if opB == csr.Transpose {
		for i := 0; i < rows; i++ {
			for c := 0; c < nrhs; c++ {
				b[c+i*ldb] = x[i+c*rows]
			}
		}
	}

	return nil
}

// substitute runs the level loop over the effective pattern of the
// artifact. x is column-major rows×nrhs with stride ldx and already
// carries α·B; on success it carries the solution.
func substitute[T csr.Scalar, I csr.Index](a *Analysis[T, I], mat *csr.Matrix[T, I], x []T, ldx int, o Options) error {
	// The effective pattern: the matrix itself, or the transposed copy
	// built at analysis time with values gathered through permT.
	rowPtr, colInd, base := mat.RowPtr, mat.ColInd, int(mat.Base)
	if a.opA != csr.NonTranspose {
		rowPtr, colInd, base = a.rowPtrT, a.colIndT, 0
	}

	// pivot tracks the smallest row with a zero or missing diagonal;
	// CAS-min keeps the report deterministic across workers.
	var pivot atomic.Int64
	pivot.Store(math.MaxInt64)

	for l := 1; l <= a.sched.Count; l++ {
		lo, hi := a.sched.Level(l)
		if o.Verbose {
			fmt.Printf("solver: level %d/%d, %d rows\n", l, a.sched.Count, hi-lo)
		}

		// Fan out across workers for wide levels; every chunk handles a
		// contiguous span of the level's row list.
		if n := hi - lo; o.Workers > 1 && n >= minParallelRows {
			chunk := (n + o.Workers - 1) / o.Workers
			var g errgroup.Group
			g.SetLimit(o.Workers)
			for c0 := lo; c0 < hi; c0 += chunk {
				c0 := c0
				c1 := min(c0+chunk, hi)
				g.Go(func() error {
					solveRows(a, rowPtr, colInd, base, mat.Values, x, ldx, c0, c1, &pivot)

					return nil
				})
			}
			// The barrier: no row of level l+1 starts before every row of
			// level l has completed and published its result.
			_ = g.Wait()
		} else {
			solveRows(a, rowPtr, colInd, base, mat.Values, x, ldx, lo, hi, &pivot)
		}

		// Solves fail atomically at level granularity: siblings of the
		// broken row may have materialized, the status says ignore them.
		if r := pivot.Load(); r != math.MaxInt64 {
			return fmt.Errorf("%w: row %d", ErrZeroPivot, r)
		}
	}

	return nil
}

// solveRows substitutes the schedule rows Perm[lo:hi], one contiguous
// span of a single level. Dependencies of these rows live in strictly
// earlier levels, so reads never race with the writes of sibling rows.
func solveRows[T csr.Scalar, I csr.Index](a *Analysis[T, I], rowPtr, colInd []I, base int, vals []T, x []T, ldx int, lo, hi int, pivot *atomic.Int64) {
	var zero T
	nrhs := a.nrhs
	lower := a.effFill == csr.Lower
	conj := a.opA == csr.ConjTranspose

	for p := lo; p < hi; p++ {
		i := int(a.sched.Perm[p])
		klo, khi := int(rowPtr[i])-base, int(rowPtr[i+1])-base

		var diag T
		hasDiag := false
		for k := klo; k < khi; k++ {
			j := int(colInd[k]) - base

			// Gather the value: directly, or through the transpose
			// permutation, conjugated for the Hermitian operation.
			v := vals[k]
			if a.permT != nil {
				v = vals[a.permT[k]]
			}
			if conj {
				v = csr.Conj(v)
			}

			switch {
			case j == i:
				diag = v
				hasDiag = true
			case (lower && j < i) || (!lower && j > i):
				for c := 0; c < nrhs; c++ {
					x[i+c*ldx] -= v * x[j+c*ldx]
				}
			default:
				// Entry on the wrong side of the fill mode: ignored by
				// caller contract.
			}
		}

		if a.diag == csr.NonUnit {
			if !hasDiag || diag == zero {
				pivotMin(pivot, int64(i))

				continue
			}
			for c := 0; c < nrhs; c++ {
				x[i+c*ldx] /= diag
			}
		}
	}
}

// pivotMin lowers the shared pivot row to r if r is smaller.
func pivotMin(p *atomic.Int64, r int64) {
	for {
		cur := p.Load()
		if r >= cur || p.CompareAndSwap(cur, r) {
			return
		}
	}
}
