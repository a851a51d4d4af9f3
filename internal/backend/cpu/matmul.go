package cpu

import (
	"math"

	"github.com/born-ml/opbridge/internal/parallel"
	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// matmulPlan describes a batched product [..., M, K] @ [..., K, N] after broadcasting batch dims.
type matmulPlan struct {
	m, k, n        int
	transA, transB bool
	outShape       tensor.Shape
	aBatch, bBatch []int // per output batch, the matrix index into a and b
}

func planMatMul(a, b tensor.Shape, transA, transB bool) matmulPlan {
	if len(a) < 2 || len(b) < 2 {
		exceptions.Panicf("matmul: operands must have rank >= 2, got %v and %v", a, b)
	}
	ra, rb := len(a), len(b)
	m, k := a[ra-2], a[ra-1]
	if transA {
		m, k = k, m
	}
	k2, n := b[rb-2], b[rb-1]
	if transB {
		k2, n = n, k2
	}
	if k != k2 {
		exceptions.Panicf("matmul: shape mismatch %v @ %v (transpose_a=%v, transpose_b=%v)", a, b, transA, transB)
	}

	aBatchShape, bBatchShape := a[:ra-2], b[:rb-2]
	batchShape := broadcast("matmul", aBatchShape, bBatchShape)
	outShape := append(batchShape.Clone(), m, n)

	var aIdx, bIdx []int
	if len(batchShape) == 0 {
		aIdx, bIdx = []int{0}, []int{0}
	} else {
		aIdx = offsets(batchShape, tensor.BroadcastStrides(aBatchShape, batchShape))
		bIdx = offsets(batchShape, tensor.BroadcastStrides(bBatchShape, batchShape))
	}
	return matmulPlan{m: m, k: k, n: n, transA: transA, transB: transB,
		outShape: outShape, aBatch: aIdx, bBatch: bIdx}
}

func blasTranspose(t bool) blas.Transpose {
	if t {
		return blas.Trans
	}
	return blas.NoTrans
}

// MatMul multiplies the innermost two dimensions with gonum GEMM, broadcasting batch dimensions.
// Float32 uses SGEMM, everything else runs through DGEMM on the float64 compute path.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor, transposeA, transposeB bool) *tensor.RawTensor {
	sameDType("matmul", a, b)
	if a.DType() == tensor.Bool {
		exceptions.Panicf("matmul: unsupported dtype bool")
	}
	p := planMatMul(a.Shape(), b.Shape(), transposeA, transposeB)
	out := cpu.alloc("matmul", p.outShape, a.DType())
	if p.m == 0 || p.n == 0 || p.k == 0 {
		return out
	}

	// Stored (not logical) matrix geometry.
	aRows, aCols := p.m, p.k
	if p.transA {
		aRows, aCols = p.k, p.m
	}
	bRows, bCols := p.k, p.n
	if p.transB {
		bRows, bCols = p.n, p.k
	}
	aSize, bSize, cSize := aRows*aCols, bRows*bCols, p.m*p.n
	tA, tB := blasTranspose(p.transA), blasTranspose(p.transB)

	if a.DType() == tensor.Float32 {
		ad, bd, cd := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
		parallel.For(len(p.aBatch), func(i int) {
			blas32.Gemm(tA, tB, 1,
				blas32.General{Rows: aRows, Cols: aCols, Stride: aCols, Data: ad[p.aBatch[i]*aSize : (p.aBatch[i]+1)*aSize]},
				blas32.General{Rows: bRows, Cols: bCols, Stride: bCols, Data: bd[p.bBatch[i]*bSize : (p.bBatch[i]+1)*bSize]},
				0,
				blas32.General{Rows: p.m, Cols: p.n, Stride: p.n, Data: cd[i*cSize : (i+1)*cSize]})
		}, cpu.batchConfig())
		return out
	}

	ad, bd := toFloat64s(a), toFloat64s(b)
	cd := make([]float64, out.NumElements())
	parallel.For(len(p.aBatch), func(i int) {
		blas64.Gemm(tA, tB, 1,
			blas64.General{Rows: aRows, Cols: aCols, Stride: aCols, Data: ad[p.aBatch[i]*aSize : (p.aBatch[i]+1)*aSize]},
			blas64.General{Rows: bRows, Cols: bCols, Stride: bCols, Data: bd[p.bBatch[i]*bSize : (p.bBatch[i]+1)*bSize]},
			0,
			blas64.General{Rows: p.m, Cols: p.n, Stride: p.n, Data: cd[i*cSize : (i+1)*cSize]})
	}, cpu.batchConfig())
	if integral(a.DType()) {
		for i, v := range cd {
			cd[i] = math.Round(v)
		}
	}
	storeFloat64s(out, cd)
	return out
}

// batchConfig fans out over whole matrices: one batch entry is already a large unit of work.
func (cpu *CPUBackend) batchConfig() parallel.Config {
	cfg := cpu.par
	cfg.MinChunkSize = 1
	return cfg
}
