// Package coo defines the coordinate-format matrix view and its
// conversion to the CSR layout the solve engine runs on.
//
// What:
//
//   - Matrix[T, I] is a read-only COO view over caller-owned RowInd,
//     ColInd and Values slices, all of length NNZ, sorted by row.
//   - ToCSR builds the CSR row-pointer array for a sorted COO view into a
//     caller-provided slice and returns a csr.Matrix sharing ColInd and
//     Values with the original — no entry is copied.
//
// Why:
//
//   - The triangular engine is CSR-only; the COO entry points convert
//     once, inside the caller's scratch buffer, and delegate. Sorted-by-row
//     storage makes the conversion a single counting pass.
//
// Complexity:
//
//   - ToCSR: O(NNZ + Rows) time, O(1) extra memory.
//
// Errors (sentinel):
//
//   - ErrNilMatrix if a nil *Matrix is passed.
//   - ErrShape     if slice lengths disagree, or rowPtr is not Rows+1 long.
//   - ErrUnsorted  if RowInd is not non-decreasing.
//   - ErrIndexRange if a row index falls outside [Base, Rows+Base).
package coo
