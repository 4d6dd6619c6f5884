// SPDX-License-Identifier: MIT

// Package dense_test provides benchmarks for the dense kernels, using a
// deterministic random fill. The harness measures the same kernels through
// the lvdense adapter; these isolate them from conversion and verification.
package dense_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/matbench/dense"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *dense.Matrix
	sinkF float64
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x, y := randMatrix(b, n, n, 1), randMatrix(b, n, n, 2)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := dense.Mul(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMulBlocked(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x, y := randMatrix(b, n, n, 1), randMatrix(b, n, n, 2)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := dense.MulBlocked(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkLU(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randMatrix(b, n, n, 3)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f, err := dense.LU(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkF = f.Det()
			}
		})
	}
}

func BenchmarkQR(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randMatrix(b, n, n, 4)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, r, err := dense.QR(a)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = r
			}
		})
	}
}
