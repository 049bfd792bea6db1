package levels_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/trisol/csr"
	"github.com/katalvlaran/trisol/levels"
)

// BenchmarkBuild measures schedule construction with reused backing
// arrays, the hot path when a pattern is re-analyzed in place.
func BenchmarkBuild(b *testing.B) {
	for _, rows := range []int{1_000, 10_000, 100_000} {
		rowPtr, colInd := randomLowerPattern(rows, 8.0/float64(rows), 2024)
		var sch levels.Schedule[int32]

		b.Run(fmt.Sprintf("rows=%d", rows), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(colInd)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := levels.Build(rowPtr, colInd, rows, csr.Zero, csr.Lower, &sch); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBuild_Chain measures the worst case: a fully serial chain
// where every row is its own level.
func BenchmarkBuild_Chain(b *testing.B) {
	const rows = 10_000
	rowPtr := make([]int32, rows+1)
	colInd := make([]int32, 0, 2*rows-1)
	for i := 0; i < rows; i++ {
		if i > 0 {
			colInd = append(colInd, int32(i-1))
		}
		colInd = append(colInd, int32(i))
		rowPtr[i+1] = int32(len(colInd))
	}
	var sch levels.Schedule[int32]

	b.ReportAllocs()
	b.SetBytes(int64(len(colInd)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := levels.Build(rowPtr, colInd, rows, csr.Zero, csr.Lower, &sch); err != nil {
			b.Fatal(err)
		}
	}
}
