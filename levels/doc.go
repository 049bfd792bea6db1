// Package levels partitions the rows of a triangular sparse matrix into
// dependency levels: groups of rows with no data dependencies between
// them, solvable in parallel once every earlier level is done.
//
// What:
//
//   - Schedule[I] holds the result as flat arrays indexed by row id:
//     LevelOf (the 1-based level of each row), Perm (rows grouped by
//     level, ascending row index within a level) and Offsets (level
//     boundaries into Perm).
//   - Build computes ℓ(i) = 1 + max ℓ(j) over the fill-side dependencies
//     j of row i (j < i for Lower, j > i for Upper), with ℓ(i) = 1 when
//     row i has none, then groups rows by level.
//
// Why:
//
//   - Sequential substitution (row 0..n-1 in order) is correct but
//     serializes everything. Rows in one level never read each other's
//     results, so the level structure exposes exactly the parallelism
//     the sparsity DAG permits: a hard barrier between levels, unbounded
//     fan-out within one.
//
// Determinism:
//
//   - Build is idempotent: rebuilding the schedule for an unchanged
//     pattern yields identical arrays. Within a level, rows appear in
//     ascending row index.
//
// Complexity:
//
//   - Build: O(NNZ + rows) time; O(1) extra memory when the Schedule's
//     backing arrays are large enough, O(rows) otherwise.
//
// Errors (sentinel):
//
//   - ErrCycle      if a computed level exceeds the row count — the
//     pattern is not truly triangular.
//   - ErrIndexRange if a column index falls outside [0, rows) after
//     rebasing.
//   - ErrShape      if rowPtr/colInd lengths disagree with rows.
package levels
