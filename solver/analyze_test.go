package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/trisol/coo"
	"github.com/katalvlaran/trisol/csr"
	"github.com/katalvlaran/trisol/solver"
)

// ProtocolSuite exercises the three-call contract: buffer sizing,
// argument validation order, quick returns, artifact reuse and the
// error taxonomy.
type ProtocolSuite struct {
	suite.Suite
}

// TestBufferSizePure verifies that sizing is a pure function of
// dimensions, nnz and type widths.
func (s *ProtocolSuite) TestBufferSizePure() {
	a, err := solver.BufferSize[float64, int32](100, 500, 2, csr.NonTranspose, csr.NonTranspose)
	require.NoError(s.T(), err)
	b, err := solver.BufferSize[float64, int32](100, 500, 2, csr.NonTranspose, csr.NonTranspose)
	require.NoError(s.T(), err)
	require.Equal(s.T(), a, b)
	require.Positive(s.T(), a)

	// Wider index types need more bytes; transposed operations need the
	// transposed-pattern segments on top.
	w, err := solver.BufferSize[complex128, int64](100, 500, 2, csr.NonTranspose, csr.NonTranspose)
	require.NoError(s.T(), err)
	require.Greater(s.T(), w, a)
	t, err := solver.BufferSize[float64, int32](100, 500, 2, csr.Transpose, csr.NonTranspose)
	require.NoError(s.T(), err)
	require.Greater(s.T(), t, a)
}

// TestBufferSizeGuards verifies the sizing guards and quick return.
func (s *ProtocolSuite) TestBufferSizeGuards() {
	_, err := solver.BufferSize[float64, int32](-1, 0, 1, csr.NonTranspose, csr.NonTranspose)
	require.ErrorIs(s.T(), err, solver.ErrInvalidSize)
	_, err = solver.BufferSize[float64, int32](1, 1, 1, csr.Operation(5), csr.NonTranspose)
	require.ErrorIs(s.T(), err, solver.ErrInvalidValue)

	n, err := solver.BufferSize[float64, int32](0, 0, 4, csr.NonTranspose, csr.NonTranspose)
	require.NoError(s.T(), err)
	require.Zero(s.T(), n)
}

// TestEmptyProblem verifies the zero-dimension quick return through the
// whole protocol: no buffer is needed, read or written.
func (s *ProtocolSuite) TestEmptyProblem() {
	m := &csr.Matrix[float64, int32]{Fill: csr.Lower}

	a, err := solver.Analyze(m, csr.NonTranspose, 1, nil)
	require.NoError(s.T(), err)
	require.Zero(s.T(), a.Levels())

	require.NoError(s.T(), solver.Solve(a, m, 1, nil, 0, csr.NonTranspose, csr.NonTranspose))
}

// TestAnalyzeGuards verifies the validation order and sentinels.
func (s *ProtocolSuite) TestAnalyzeGuards() {
	m := lower3()

	_, err := solver.Analyze[float64, int32](nil, csr.NonTranspose, 1, nil)
	require.ErrorIs(s.T(), err, solver.ErrInvalidPointer)

	_, err = solver.Analyze(m, csr.Operation(7), 1, nil)
	require.ErrorIs(s.T(), err, solver.ErrInvalidValue)

	_, err = solver.Analyze(m, csr.NonTranspose, -1, nil)
	require.ErrorIs(s.T(), err, solver.ErrInvalidSize)

	_, err = solver.Analyze(m, csr.NonTranspose, 1, nil)
	require.ErrorIs(s.T(), err, solver.ErrInvalidPointer)

	short := make([]byte, mustSize(m, csr.NonTranspose, 1)-1)
	_, err = solver.Analyze(m, csr.NonTranspose, 1, short)
	require.ErrorIs(s.T(), err, solver.ErrInvalidSize)

	rect := lower3()
	rect.Cols = 4
	_, err = solver.Analyze(rect, csr.NonTranspose, 1, make([]byte, 1<<12))
	require.ErrorIs(s.T(), err, solver.ErrInvalidValue)

	bad := lower3()
	bad.RowPtr[0] = 1
	_, err = solver.Analyze(bad, csr.NonTranspose, 1, make([]byte, 1<<12))
	require.ErrorIs(s.T(), err, solver.ErrInvalidValue)
}

// TestZeroPivot verifies Scenario 3: a zero diagonal surfaces as
// ErrZeroPivot naming the smallest affected row, and a structurally
// missing diagonal behaves the same.
func (s *ProtocolSuite) TestZeroPivot() {
	m := lower3()
	m.Values[0] = 0 // zero diagonal at row 0
	a := s.analyzed(m)
	b := []float64{1, 2, 3}
	err := solver.Solve(a, m, 1, b, 3, csr.NonTranspose, csr.NonTranspose)
	require.ErrorIs(s.T(), err, solver.ErrZeroPivot)
	require.ErrorContains(s.T(), err, "row 0")

	// Missing diagonal entry at row 1.
	m2 := &csr.Matrix[float64, int32]{
		Rows: 3, Cols: 3,
		RowPtr: []int32{0, 1, 2, 4},
		ColInd: []int32{0, 0, 1, 2},
		Values: []float64{2, 3, 1, 5},
		Fill:   csr.Lower,
	}
	a2 := s.analyzed(m2)
	err = solver.Solve(a2, m2, 1, b, 3, csr.NonTranspose, csr.NonTranspose)
	require.ErrorIs(s.T(), err, solver.ErrZeroPivot)
	require.ErrorContains(s.T(), err, "row 1")

	// Two broken rows in one level: the smallest one is reported.
	m3 := &csr.Matrix[float64, int32]{
		Rows: 3, Cols: 3,
		RowPtr: []int32{0, 1, 2, 3},
		ColInd: []int32{0, 1, 2},
		Values: []float64{1, 0, 0},
		Fill:   csr.Lower,
	}
	a3 := s.analyzed(m3)
	err = solver.Solve(a3, m3, 1, b, 3, csr.NonTranspose, csr.NonTranspose)
	require.ErrorIs(s.T(), err, solver.ErrZeroPivot)
	require.ErrorContains(s.T(), err, "row 1")
}

// TestOperationMismatch verifies Scenario 4: the cached analysis flag
// rejects a different solve-time operation.
func (s *ProtocolSuite) TestOperationMismatch() {
	m := lower3()
	a := s.analyzed(m)
	err := solver.Solve(a, m, 1, []float64{1, 2, 3}, 3, csr.Transpose, csr.NonTranspose)
	require.ErrorIs(s.T(), err, solver.ErrInvalidValue)
}

// TestFingerprintMismatch verifies the cheap structural check against a
// grossly different matrix.
func (s *ProtocolSuite) TestFingerprintMismatch() {
	a := s.analyzed(lower3())

	other := &csr.Matrix[float64, int32]{
		Rows: 3, Cols: 3,
		RowPtr: []int32{0, 1, 2, 3},
		ColInd: []int32{0, 1, 2},
		Values: []float64{1, 1, 1},
		Fill:   csr.Lower,
	}
	err := solver.Solve(a, other, 1, []float64{1, 2, 3}, 3, csr.NonTranspose, csr.NonTranspose)
	require.ErrorIs(s.T(), err, solver.ErrInvalidValue)
}

// TestSolveGuards verifies the remaining solve-side sentinels.
func (s *ProtocolSuite) TestSolveGuards() {
	m := lower3()
	a := s.analyzed(m)

	require.ErrorIs(s.T(),
		solver.Solve[float64, int32](nil, m, 1, nil, 3, csr.NonTranspose, csr.NonTranspose),
		solver.ErrInvalidHandle)
	require.ErrorIs(s.T(),
		solver.Solve(a, nil, 1, []float64{1, 2, 3}, 3, csr.NonTranspose, csr.NonTranspose),
		solver.ErrInvalidPointer)
	require.ErrorIs(s.T(),
		solver.Solve(a, m, 1, []float64{1, 2}, 3, csr.NonTranspose, csr.NonTranspose),
		solver.ErrInvalidSize)
	require.ErrorIs(s.T(),
		solver.Solve(a, m, 1, []float64{1, 2, 3}, 2, csr.NonTranspose, csr.NonTranspose),
		solver.ErrInvalidSize)
	require.ErrorIs(s.T(),
		solver.Solve(a, m, 1, []float64{1, 2, 3}, 3, csr.NonTranspose, csr.ConjTranspose),
		solver.ErrNotImplemented)
}

// TestReanalyzePolicy verifies artifact reuse semantics.
func (s *ProtocolSuite) TestReanalyzePolicy() {
	m := lower3()
	buf := make([]byte, mustSize(m, csr.NonTranspose, 1))
	a, err := solver.Analyze(m, csr.NonTranspose, 1, buf)
	require.NoError(s.T(), err)

	// Compatible pattern: the artifact is reused untouched.
	r, err := solver.Reanalyze(a, m, csr.NonTranspose, 1, buf)
	require.NoError(s.T(), err)
	require.Same(s.T(), a, r)

	// ForceRecompute rebuilds even when compatible.
	r, err = solver.Reanalyze(a, m, csr.NonTranspose, 1, buf, solver.WithPolicy(solver.ForceRecompute))
	require.NoError(s.T(), err)
	require.NotSame(s.T(), a, r)

	// A pattern change (different nnz) misses the fingerprint and
	// rebuilds; the old buffer still fits and may be reused.
	m2 := &csr.Matrix[float64, int32]{
		Rows: 3, Cols: 3,
		RowPtr: []int32{0, 1, 2, 3},
		ColInd: []int32{0, 1, 2},
		Values: []float64{1, 1, 1},
		Fill:   csr.Lower,
	}
	r, err = solver.Reanalyze(a, m2, csr.NonTranspose, 1, buf)
	require.NoError(s.T(), err)
	require.NotSame(s.T(), a, r)
	require.Equal(s.T(), 1, r.Levels())
}

// TestCOOPathMatchesCSR verifies the coordinate-format entry points
// against the CSR path on the same data.
func (s *ProtocolSuite) TestCOOPathMatchesCSR() {
	cm := lower3()
	com := &coo.Matrix[float64, int32]{
		Rows: 3, Cols: 3,
		RowInd: []int32{0, 1, 1, 2, 2},
		ColInd: []int32{0, 0, 1, 1, 2},
		Values: []float64{2, 3, 4, 1, 5},
		Fill:   csr.Lower,
	}

	n, err := solver.BufferSizeCOO[float64, int32](3, 5, 1, csr.NonTranspose, csr.NonTranspose)
	require.NoError(s.T(), err)
	nCSR := mustSize(cm, csr.NonTranspose, 1)
	require.Greater(s.T(), n, nCSR)

	a, err := solver.AnalyzeCOO(com, csr.NonTranspose, 1, make([]byte, n))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, a.Levels())

	want := []float64{4, 26, 15}
	require.NoError(s.T(), solver.SolveCOO(a, com, 1, want, 3, csr.NonTranspose, csr.NonTranspose))
	require.InDeltaSlice(s.T(), []float64{2, 5, 2}, want, 1e-14)

	// A CSR artifact rejects the COO solve entry.
	ac := s.analyzed(cm)
	err = solver.SolveCOO(ac, com, 1, []float64{1, 2, 3}, 3, csr.NonTranspose, csr.NonTranspose)
	require.ErrorIs(s.T(), err, solver.ErrInvalidValue)

	// Unsorted coordinate input fails analysis.
	com.RowInd = []int32{1, 0, 1, 2, 2}
	_, err = solver.AnalyzeCOO(com, csr.NonTranspose, 1, make([]byte, n))
	require.ErrorIs(s.T(), err, solver.ErrInvalidValue)
}

// TestNarrowTypes verifies the float32 × int64 instantiation end to end.
func (s *ProtocolSuite) TestNarrowTypes() {
	m := &csr.Matrix[float32, int64]{
		Rows: 2, Cols: 2,
		RowPtr: []int64{0, 1, 3},
		ColInd: []int64{0, 0, 1},
		Values: []float32{2, 1, 4},
		Fill:   csr.Lower,
	}
	n, err := solver.BufferSize[float32, int64](2, 3, 1, csr.NonTranspose, csr.NonTranspose)
	require.NoError(s.T(), err)
	a, err := solver.Analyze(m, csr.NonTranspose, 1, make([]byte, n))
	require.NoError(s.T(), err)

	b := []float32{4, 10}
	require.NoError(s.T(), solver.Solve(a, m, 1, b, 2, csr.NonTranspose, csr.NonTranspose))
	require.InDelta(s.T(), 2.0, float64(b[0]), 1e-6)
	require.InDelta(s.T(), 2.0, float64(b[1]), 1e-6)
}

// TestWithWorkersPanics verifies the option constructor contract.
func (s *ProtocolSuite) TestWithWorkersPanics() {
	require.Panics(s.T(), func() { solver.WithWorkers(0) })
}

// analyzed is Analyze with an exact-size fresh buffer, failing the suite
// on error.
func (s *ProtocolSuite) analyzed(m *csr.Matrix[float64, int32]) *solver.Analysis[float64, int32] {
	a, err := solver.Analyze(m, csr.NonTranspose, 1, make([]byte, mustSize(m, csr.NonTranspose, 1)))
	require.NoError(s.T(), err)

	return a
}

func TestProtocolSuite(t *testing.T) {
	suite.Run(t, new(ProtocolSuite))
}
