package solver

import (
	"errors"
	"runtime"
)

// Sentinel errors forming the closed status set of the engine. Every
// failure inside the package maps deterministically onto exactly one of
// these; use errors.Is to classify.
var (
	// ErrInvalidHandle indicates a nil or foreign *Analysis handle.
	ErrInvalidHandle = errors.New("solver: invalid analysis handle")

	// ErrInvalidValue indicates an argument outside its contract: a bad
	// enum, a non-square matrix, a malformed view, or an analyze/solve
	// mismatch (operation flag or matrix fingerprint).
	ErrInvalidValue = errors.New("solver: invalid argument value")

	// ErrInvalidPointer indicates a required slice or matrix was nil.
	ErrInvalidPointer = errors.New("solver: nil required pointer")

	// ErrInvalidSize indicates a negative dimension, a leading dimension
	// that does not cover its operand, or a scratch buffer shorter than
	// BufferSize requires.
	ErrInvalidSize = errors.New("solver: invalid size")

	// ErrMemory indicates an allocation failure reported by the caller's
	// allocator contract. The engine itself never allocates the scratch
	// buffer, so this surfaces only through collaborating allocators.
	ErrMemory = errors.New("solver: memory allocation failed")

	// ErrNotImplemented indicates a defined but unsupported argument
	// combination, such as a conjugate-transposed right-hand-side layout.
	ErrNotImplemented = errors.New("solver: not implemented")

	// ErrInternal indicates a broken internal invariant; seeing it is a
	// bug in the engine, not in the caller.
	ErrInternal = errors.New("solver: internal error")

	// ErrZeroPivot indicates a zero or structurally missing diagonal entry
	// encountered during a non-unit solve. The reported row is the
	// smallest affected one, whatever the worker count; no output value is
	// trustworthy after this error.
	ErrZeroPivot = errors.New("solver: zero or missing diagonal pivot")

	// ErrBadWorkers reports a Workers option below 1.
	ErrBadWorkers = errors.New("solver: Workers must be at least 1")
)

// Policy controls how Reanalyze treats an existing analysis artifact.
type Policy int

const (
	// ReuseIfCompatible keeps the previous artifact when its fingerprint
	// matches the new matrix; the schedule is not rebuilt. Reusing across
	// two different patterns with an identical fingerprint is a caller
	// contract violation the engine cannot detect.
	ReuseIfCompatible Policy = iota

	// ForceRecompute always rebuilds the schedule.
	ForceRecompute
)

// Valid reports whether p is one of the defined Policy values.
func (p Policy) Valid() bool {
	return p == ReuseIfCompatible || p == ForceRecompute
}

// Options configures analysis and solve execution.
//
// Workers – upper bound on goroutines fanning out within one level.
//
//	Rows of one level are independent, so any worker count yields
//	identical results. Default: runtime.GOMAXPROCS(0).
//
// Policy  – artifact reuse policy for Reanalyze (default ReuseIfCompatible).
// Verbose – if true, print per-level progress during the solve.
type Options struct {
	Workers int
	Policy  Policy
	Verbose bool
}

// Option represents a functional option for configuring the engine.
type Option func(*Options)

// WithWorkers bounds the intra-level fan-out. Must be ≥ 1; a value of 1
// runs every level sequentially.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(ErrBadWorkers.Error())
		}
		o.Workers = n
	}
}

// WithPolicy sets the artifact reuse policy used by Reanalyze.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		o.Policy = p
	}
}

// WithVerbose enables per-level progress output during the solve.
func WithVerbose() Option {
	return func(o *Options) {
		o.Verbose = true
	}
}

// DefaultOptions returns the Options every entry point starts from before
// applying functional overrides.
func DefaultOptions() Options {
	return Options{
		Workers: runtime.GOMAXPROCS(0),
		Policy:  ReuseIfCompatible,
		Verbose: false,
	}
}
