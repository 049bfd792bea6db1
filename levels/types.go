package levels

import (
	"errors"

	"github.com/katalvlaran/trisol/csr"
)

// Sentinel errors returned by the schedule builder.
var (
	// ErrCycle indicates that a row's level exceeded the row count, which
	// can only happen when the dependency relation contains a cycle — the
	// pattern is not a triangular DAG.
	ErrCycle = errors.New("levels: dependency cycle in sparsity pattern")

	// ErrIndexRange indicates a column index outside [0, rows) after
	// rebasing.
	ErrIndexRange = errors.New("levels: column index out of range")

	// ErrShape indicates that rowPtr/colInd lengths disagree with rows.
	ErrShape = errors.New("levels: pattern shape mismatch")
)

// Schedule is the level partition of one sparsity pattern, stored as flat
// arrays indexed by row id. It is derived from RowPtr/ColInd only: it
// survives value updates and is invalidated by any pattern change.
//
// Count is the number of levels. LevelOf[i] is the 1-based level of row i.
// Perm groups rows with equal level contiguously, ascending row index
// within a level. Offsets has length Count+1; rows of level ℓ (1-based)
// occupy Perm[Offsets[ℓ-1]:Offsets[ℓ]].
type Schedule[I csr.Index] struct {
	Count   int
	LevelOf []I
	Perm    []I
	Offsets []I
}

// Rows returns the number of scheduled rows. Complexity: O(1).
func (s *Schedule[I]) Rows() int { return len(s.LevelOf) }

// Level returns the half-open range of Perm positions for 1-based level
// ℓ. The caller guarantees 1 ≤ ℓ ≤ Count. Complexity: O(1).
func (s *Schedule[I]) Level(l int) (lo, hi int) {
	return int(s.Offsets[l-1]), int(s.Offsets[l])
}

// reserve returns dst resized to n, reusing its backing array when the
// capacity allows. Caller-carved arrays keep their storage this way.
func reserve[I csr.Index](dst []I, n int) []I {
	if cap(dst) >= n {
		return dst[:n]
	}

	return make([]I, n)
}
