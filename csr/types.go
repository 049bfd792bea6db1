package csr

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// Sentinel errors returned by the csr views and kernels.
var (
	// ErrNilMatrix indicates that a nil *Matrix was passed to a kernel.
	ErrNilMatrix = errors.New("csr: matrix is nil")

	// ErrShape indicates that slice lengths disagree with Rows/NNZ, or that
	// a dense operand is shorter than its leading dimension requires.
	ErrShape = errors.New("csr: operand shape mismatch")

	// ErrRowPtr indicates that RowPtr does not start at Base, does not end
	// at NNZ+Base, or decreases somewhere in between.
	ErrRowPtr = errors.New("csr: row pointer array malformed")

	// ErrEnum indicates that an Operation, FillMode, DiagType or IndexBase
	// value is outside its defined range.
	ErrEnum = errors.New("csr: enum value out of range")
)

// Scalar enumerates the element types the kernels accept: real and complex
// floating point of both widths. Kernel behavior is identical modulo type.
type Scalar interface {
	constraints.Float | constraints.Complex
}

// Index enumerates the supported index widths for RowPtr/ColInd.
type Index interface {
	~int32 | ~int64
}

// Operation selects how the coefficient matrix is applied.
type Operation int

const (
	// NonTranspose applies A as stored.
	NonTranspose Operation = iota
	// Transpose applies Aᵀ.
	Transpose
	// ConjTranspose applies Aᴴ (conjugate transpose; equals Aᵀ for real T).
	ConjTranspose
)

// Valid reports whether op is one of the defined Operation values.
func (op Operation) Valid() bool {
	return op == NonTranspose || op == Transpose || op == ConjTranspose
}

// FillMode tells which triangle of the matrix is stored and interpreted.
type FillMode int

const (
	// Lower interprets the matrix as lower triangular.
	Lower FillMode = iota
	// Upper interprets the matrix as upper triangular.
	Upper
)

// Valid reports whether f is one of the defined FillMode values.
func (f FillMode) Valid() bool {
	return f == Lower || f == Upper
}

// DiagType tells whether the diagonal is stored or implicitly one.
type DiagType int

const (
	// NonUnit reads the diagonal from the stored values; a missing or zero
	// diagonal entry is a numeric error at solve time.
	NonUnit DiagType = iota
	// Unit treats every diagonal entry as 1; stored diagonal values are
	// ignored entirely.
	Unit
)

// Valid reports whether d is one of the defined DiagType values.
func (d DiagType) Valid() bool {
	return d == NonUnit || d == Unit
}

// IndexBase tells whether RowPtr/ColInd are 0- or 1-based.
type IndexBase int

const (
	// Zero is C-style 0-based indexing.
	Zero IndexBase = iota
	// One is Fortran-style 1-based indexing.
	One
)

// Valid reports whether b is one of the defined IndexBase values.
func (b IndexBase) Valid() bool {
	return b == Zero || b == One
}
