package levels

import (
	"fmt"

	"github.com/katalvlaran/trisol/csr"
)

// Build computes the level schedule of a triangular sparsity pattern
// given by rowPtr/colInd (CSR layout, rows rows, indices relative to
// base). A dependency of row i is an entry strictly on the fill side:
// column j < i for Lower, j > i for Upper. Entries on the wrong side of
// the fill mode, and diagonal entries, carry no dependency and are
// skipped. Rows are visited in solve order (ascending for Lower,
// descending for Upper), so every dependency level is final when read.
//
// The result is written into s, reusing its backing arrays when their
// capacity allows. Build never reads values: the schedule is a pure
// function of the pattern.
//
// Preconditions and validation (in order):
//  1. rows must be non-negative and rowPtr must have length rows+1
//     (ErrShape); rows == 0 yields an empty schedule.
//  2. Every rebased column index must lie in [0, rows) (ErrIndexRange).
//  3. No computed level may exceed rows (ErrCycle). With fill-side
//     dependencies the relation is acyclic by construction, so this is a
//     hard bound on malformed input, not a reachable state for valid
//     patterns.
//
// Complexity: O(NNZ + rows) time.
func Build[I csr.Index](rowPtr, colInd []I, rows int, base csr.IndexBase, fill csr.FillMode, s *Schedule[I]) error {
	// 1) Shape guards.
	if rows < 0 {
		return fmt.Errorf("%w: rows=%d", ErrShape, rows)
	}

	// 2) Quick return: the empty pattern has an empty schedule.
	if rows == 0 {
		s.Count = 0
		s.LevelOf = reserve(s.LevelOf, 0)
		s.Perm = reserve(s.Perm, 0)
		s.Offsets = reserve(s.Offsets, 1)
		s.Offsets[0] = 0

		return nil
	}

	if len(rowPtr) != rows+1 {
		return fmt.Errorf("%w: len(rowPtr)=%d, want %d", ErrShape, len(rowPtr), rows+1)
	}
	nnz := int(rowPtr[rows]) - int(base)
	if len(colInd) < nnz {
		return fmt.Errorf("%w: len(colInd)=%d, want ≥%d", ErrShape, len(colInd), nnz)
	}

	s.LevelOf = reserve(s.LevelOf, rows)
	level := s.LevelOf

	// 3) Pull pass in solve order: ℓ(i) = 1 + max ℓ(j) over dependencies.
	//    Lower solves rows ascending, Upper descending; either way every
	//    fill-side dependency is finalized before it is read.
	b := int(base)
	maxLevel := 0
	start, stop, step := 0, rows, 1
	if fill == csr.Upper {
		start, stop, step = rows-1, -1, -1
	}
	for i := start; i != stop; i += step {
		lvl := I(1)
		lo, hi := int(rowPtr[i])-b, int(rowPtr[i+1])-b
		for k := lo; k < hi; k++ {
			j := int(colInd[k]) - b
			if j < 0 || j >= rows {
				return fmt.Errorf("%w: colInd[%d]=%d in row %d", ErrIndexRange, k, colInd[k], i)
			}
			// Only strictly fill-side entries are dependencies.
			if (fill == csr.Lower && j < i) || (fill == csr.Upper && j > i) {
				if level[j] >= lvl {
					lvl = level[j] + 1
				}
			}
		}
		level[i] = lvl
		if int(lvl) > maxLevel {
			maxLevel = int(lvl)
		}
	}

	// 4) Bound the level count at rows: anything deeper means a cycle.
	if maxLevel > rows {
		return fmt.Errorf("%w: level %d exceeds %d rows", ErrCycle, maxLevel, rows)
	}

	// 5) Group rows by level: counting sort keyed by LevelOf. Visiting
	//    rows in ascending order keeps each level internally sorted, so
	//    repeated builds of one pattern produce identical schedules.
	s.Count = maxLevel
	s.Offsets = reserve(s.Offsets, maxLevel+1)
	s.Perm = reserve(s.Perm, rows)
	for l := 0; l <= maxLevel; l++ {
		s.Offsets[l] = 0
	}
	for i := 0; i < rows; i++ {
		s.Offsets[level[i]]++
	}
	for l := 1; l <= maxLevel; l++ {
		s.Offsets[l] += s.Offsets[l-1]
	}
	// Offsets[l-1] is now the start cursor of level l. Scatter rows in
	// ascending order, advancing cursors, then shift once to restore the
	// start/end boundaries.
	for i := 0; i < rows; i++ {
		l := int(level[i])
		s.Perm[int(s.Offsets[l-1])] = I(i)
		s.Offsets[l-1]++
	}
	for l := maxLevel; l >= 1; l-- {
		s.Offsets[l] = s.Offsets[l-1]
	}
	s.Offsets[0] = 0

	return nil
}
