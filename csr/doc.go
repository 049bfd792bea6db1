// Package csr defines the compressed-sparse-row matrix view consumed by
// every kernel in trisol, plus the sparse × dense multiply.
//
// What:
//
//   - Matrix[T, I] is a read-only CSR view over caller-owned slices:
//     RowPtr (len Rows+1), ColInd and Values (len NNZ), with an index
//     base, a triangular fill mode and a diagonal type.
//   - Enums: Operation (NonTranspose/Transpose/ConjTranspose), FillMode
//     (Lower/Upper), DiagType (NonUnit/Unit), IndexBase (Zero/One).
//   - Multiply computes C = α·op(A)·B + β·C over column-major dense
//     operands.
//
// Why:
//
//   - One storage layout, shared by analysis and solve, never copied and
//     never mutated by the engine.
//   - The fill/diag metadata travels with the view, so every kernel
//     interprets the triangle the same way.
//
// Contracts (validated by Validate, relied upon everywhere):
//
//   - RowPtr is non-decreasing, starts at Base and ends at NNZ+Base.
//   - Column indices within a row are distinct; entries on the wrong
//     side of the fill mode are ignored by the triangular kernels.
//   - The view is immutable for the lifetime of a solve session; only
//     numeric values may change between analysis and solve.
//
// Complexity:
//
//   - Validate: O(Rows) time, O(1) memory.
//   - Multiply: O(NNZ·ncol) time, O(1) extra memory.
//
// Errors (sentinel):
//
//   - ErrNilMatrix   if a nil *Matrix is passed.
//   - ErrShape       if slice lengths disagree with Rows/NNZ, or a dense
//     operand is too short for its leading dimension.
//   - ErrRowPtr      if RowPtr violates the base/monotonicity contract.
//   - ErrEnum        if an enum value is out of range.
package csr
