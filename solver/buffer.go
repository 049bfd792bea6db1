package solver

import (
	"fmt"
	"unsafe"

	"github.com/katalvlaran/trisol/csr"
)

// bufferAlign is the alignment of every segment carved from the scratch
// buffer, matching the device-buffer granularity of the original engine.
const bufferAlign = 256

// alignUp rounds n up to the next multiple of bufferAlign.
func alignUp(n int) int {
	return (n + bufferAlign - 1) &^ (bufferAlign - 1)
}

// sizeOf returns the byte width of one E.
func sizeOf[E any]() int {
	var e E

	return int(unsafe.Sizeof(e))
}

// BufferSize returns the exact scratch-buffer size in bytes that Analyze
// and Solve require for a rows×rows triangular system with nnz stored
// entries and nrhs right-hand-side columns. It is a pure function of its
// arguments and the index width I: no hidden state, callable before any
// allocation. Memory for row-major right-hand-side staging is owned by
// each Solve call and is never carved from this buffer.
//
// The buffer holds, in 256-byte-aligned segments: the three level-schedule
// arrays (rows, rows, rows+1 indices) and — only when opA is a transposed
// operation — the transposed pattern (rows+1 and nnz indices) plus the
// nnz-entry value-gather permutation. Segment alignment is computed from
// the start of the slice, so the buffer must begin on its own allocation
// (a fresh make([]byte, n) qualifies); an odd-offset subslice of a larger
// allocation would misalign the typed views.
//
// Quick return: rows == 0 or nrhs == 0 needs no buffer and returns 0.
//
// Errors: ErrInvalidValue for an undefined opA/opB, ErrInvalidSize for a
// negative dimension.
func BufferSize[T csr.Scalar, I csr.Index](rows, nnz, nrhs int, opA, opB csr.Operation) (int, error) {
	// 1) Enum and size guards.
	if !opA.Valid() || !opB.Valid() {
		return 0, ErrInvalidValue
	}
	if rows < 0 || nnz < 0 || nrhs < 0 {
		return 0, fmt.Errorf("%w: rows=%d nnz=%d nrhs=%d", ErrInvalidSize, rows, nnz, nrhs)
	}

	// 2) Quick return: the empty problem needs no scratch memory.
	if rows == 0 || nrhs == 0 {
		return 0, nil
	}

	// 3) Segment sum. The layout here is the single source of truth; the
	//    carving in Analyze walks the same sequence.
	sizeI := sizeOf[I]()
	size := alignUp(rows * sizeI)       // Schedule.LevelOf
	size += alignUp(rows * sizeI)       // Schedule.Perm
	size += alignUp((rows + 1) * sizeI) // Schedule.Offsets
	if opA != csr.NonTranspose {
		size += alignUp((rows + 1) * sizeI) // transposed RowPtr
		size += alignUp(nnz * sizeI)        // transposed ColInd
		size += alignUp(nnz * sizeI)        // value-gather permutation
	}

	return size, nil
}

// BufferSizeCOO is BufferSize for the coordinate-format entry points. It
// adds one aligned segment of rows+1 indices for the row pointers built
// by the COO→CSR conversion.
func BufferSizeCOO[T csr.Scalar, I csr.Index](rows, nnz, nrhs int, opA, opB csr.Operation) (int, error) {
	size, err := BufferSize[T, I](rows, nnz, nrhs, opA, opB)
	if err != nil || size == 0 {
		return size, err
	}

	return size + alignUp((rows+1)*sizeOf[I]()), nil
}

// carve slices n elements of E out of buf at byte offset off and returns
// the advanced, re-aligned offset. The caller has already verified that
// buf covers the full BufferSize, so no bounds are rechecked here.
func carve[E any](buf []byte, off, n int) ([]E, int) {
	var s []E
	if n > 0 {
		s = unsafe.Slice((*E)(unsafe.Pointer(&buf[off])), n)
	}

	return s, alignUp(off + n*sizeOf[E]())
}
