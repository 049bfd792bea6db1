// Package solver is the triangular solve engine: it turns a sparsity
// pattern into a reusable analysis artifact and executes level-scheduled
// substitution solves op(A)·X = α·B against it.
//
// The three-call protocol:
//
//  1. BufferSize — exact scratch-buffer size in bytes, a pure function of
//     the matrix dimensions, nnz, the operation, and the scalar/index
//     widths. Callable before any allocation.
//  2. Analyze — builds the level schedule (and, for transposed
//     operations, the transposed pattern plus a value-gather permutation)
//     inside the caller's buffer and returns the opaque *Analysis.
//  3. Solve — runs the substitution level by level, reusing one analysis
//     for any number of right-hand sides and value updates.
//
// The buffer stays owned by the caller for the artifact's whole lifetime;
// the artifact only aliases it. Analysis depends on the pattern alone:
// changing numeric values keeps it valid, changing RowPtr/ColInd
// invalidates it (re-run Analyze; the old buffer may be reused when still
// large enough).
//
// Every entry point follows the same strict stage order — scalar/enum
// guards, quick return on empty problems, pointer/size guards, core — and
// validation never runs after caller-visible state was touched.
//
// Concurrency:
//
//   - Within one level rows are independent and fan out across at most
//     Workers goroutines; a hard barrier separates consecutive levels, so
//     every dependency result is visible before its consumers start.
//   - An *Analysis is read-only during Solve: concurrent solves over one
//     artifact are safe. Re-analysis concurrent with a solve is not; that
//     single-writer/multi-reader discipline is the caller's.
//   - Results and error reports are identical for every worker count.
//
// Errors:
//
//	The closed status set lives in types.go (ErrInvalidHandle,
//	ErrInvalidValue, ErrInvalidPointer, ErrInvalidSize, ErrMemory,
//	ErrNotImplemented, ErrInternal, ErrZeroPivot). Caller-contract
//	violations surface eagerly with no partial work; zero pivots surface
//	after the affected level as the smallest broken row.
package solver
