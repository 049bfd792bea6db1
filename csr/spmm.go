package csr

import "fmt"

// Multiply computes the sparse × dense product
//
//	C = α·op(A)·B + β·C
//
// over column-major dense operands. B has leading dimension ldb and C has
// leading dimension ldc; both carry ncol columns. For opA == NonTranspose
// the product is Rows×ncol with B read as Cols×ncol; for Transpose and
// ConjTranspose the roles swap. The whole pattern participates: Fill and
// Diag are storage metadata for the triangular kernels and do not restrict
// the product.
//
// Preconditions and validation (in order):
//  1. a must be non-nil (ErrNilMatrix).
//  2. opA must be a defined Operation (ErrEnum).
//  3. a must satisfy Validate.
//  4. ncol must be non-negative (ErrShape).
//  5. Quick return when the output is empty: nothing is read or written.
//  6. ldb/ldc must cover the operand heights, and b/c must reach their
//     last touched element (ErrShape).
//
// Complexity: O(NNZ·ncol + rows·ncol) time, O(1) extra memory.
func Multiply[T Scalar, I Index](alpha T, a *Matrix[T, I], opA Operation, b []T, ldb, ncol int, beta T, c []T, ldc int) error {
	// 1) Pointer and enum guards.
	if a == nil {
		return ErrNilMatrix
	}
	if !opA.Valid() {
		return ErrEnum
	}

	// 2) Structural guard on the sparse operand.
	if err := a.Validate(); err != nil {
		return err
	}
	if ncol < 0 {
		return fmt.Errorf("%w: ncol=%d", ErrShape, ncol)
	}

	// 3) Output height depends on the operation.
	rowsOut, rowsIn := a.Rows, a.Cols
	if opA != NonTranspose {
		rowsOut, rowsIn = a.Cols, a.Rows
	}

	// 4) Quick return: empty output touches nothing.
	if rowsOut == 0 || ncol == 0 {
		return nil
	}

	// 5) Dense operand guards.
	if ldb < rowsIn || ldc < rowsOut {
		return fmt.Errorf("%w: ldb=%d (need ≥%d), ldc=%d (need ≥%d)", ErrShape, ldb, rowsIn, ldc, rowsOut)
	}
	if rowsIn > 0 && len(b) < ldb*(ncol-1)+rowsIn {
		return fmt.Errorf("%w: len(b)=%d too short", ErrShape, len(b))
	}
	if len(c) < ldc*(ncol-1)+rowsOut {
		return fmt.Errorf("%w: len(c)=%d too short", ErrShape, len(c))
	}

	// 6) β pass over C. β==0 overwrites, so C may start uninitialized.
	var zero T
	for l := 0; l < ncol; l++ {
		col := c[l*ldc : l*ldc+rowsOut]
		if beta == zero {
			for i := range col {
				col[i] = zero
			}
		} else if beta != 1 {
			for i := range col {
				col[i] *= beta
			}
		}
	}

	// 7) Accumulation pass over the stored entries.
	base := int(a.Base)
	switch opA {
	case NonTranspose:
		for i := 0; i < a.Rows; i++ {
			lo, hi := a.Row(i)
			for k := lo; k < hi; k++ {
				j := int(a.ColInd[k]) - base
				v := alpha * a.Values[k]
				for l := 0; l < ncol; l++ {
					c[i+l*ldc] += v * b[j+l*ldb]
				}
			}
		}
	case Transpose, ConjTranspose:
		for i := 0; i < a.Rows; i++ {
			lo, hi := a.Row(i)
			for k := lo; k < hi; k++ {
				j := int(a.ColInd[k]) - base
				v := a.Values[k]
				if opA == ConjTranspose {
					v = Conj(v)
				}
				v *= alpha
				for l := 0; l < ncol; l++ {
					c[j+l*ldc] += v * b[i+l*ldb]
				}
			}
		}
	}

	return nil
}
