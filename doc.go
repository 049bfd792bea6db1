// Package trisol is a level-scheduled sparse triangular solver:
// analyze once, solve many times, in parallel where the sparsity allows.
//
// 🚀 What is trisol?
//
//	A generic sparse linear-algebra kernel library built around one engine:
//		• CSR & COO matrix views: read-only, caller-owned, zero-copy
//		• Level scheduling: rows grouped by dependency depth in the sparsity DAG
//		• Triangular solve: op(A)·X = α·B for lower/upper, unit/non-unit,
//		  single or many right-hand sides, real or complex scalars
//		• Sparse × dense multiply: the natural round-trip companion kernel
//
// ✨ Why choose trisol?
//
//   - Three-call protocol – BufferSize → Analyze → Solve, one scratch
//     buffer owned by you, reused across every solve
//   - Pattern/value split – analysis depends only on the nonzero pattern;
//     update values freely and keep the same analysis
//   - Deterministic – identical inputs give identical schedules, results
//     and error reports, whatever the worker count
//   - Generic – float32/float64/complex64/complex128 × int32/int64 indices
//
// Under the hood, everything is organized under four subpackages:
//
//	csr/    — compressed-sparse-row views, enums, sparse × dense multiply
//	coo/    — coordinate-format views + CSR conversion
//	levels/ — the level-schedule builder over the sparsity DAG
//	solver/ — analysis artifacts, buffer sizing, the solve executor
//
// Quick ASCII example (lower triangular, 3 levels):
//
//	    ⎡2    ⎤         level 1: row 0
//	    ⎢3 4  ⎥   →     level 2: row 1
//	    ⎣  1 5⎦         level 3: row 2
//
//	rows in one level never depend on each other and solve in parallel.
//
// Dive into the subpackage docs for the full protocol, error taxonomy,
// and worked examples.
//
//	go get github.com/katalvlaran/trisol
package trisol
