package cpu

import (
	"testing"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestMatMul(t *testing.T) {
	b := New()
	a := seq(t, 2, 3) // [[0 1 2] [3 4 5]]
	m := seq(t, 3, 2) // [[0 1] [2 3] [4 5]]

	out := b.MatMul(a, m, false, false)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{10, 13, 28, 40}, out.AsFloat32())

	bt := b.MatMul(a, a, false, true)
	assert.Equal(t, []float32{5, 14, 14, 50}, bt.AsFloat32())

	at := b.MatMul(a, a, true, false)
	assert.Equal(t, tensor.Shape{3, 3}, at.Shape())
	assert.Equal(t, []float32{9, 12, 15, 12, 17, 22, 15, 22, 29}, at.AsFloat32())

	assert.Panics(t, func() { b.MatMul(a, a, false, false) })
	assert.Panics(t, func() { b.MatMul(seq(t, 3), m, false, false) })
}

func TestMatMulBatchBroadcast(t *testing.T) {
	b := New()
	a := seq(t, 2, 2, 3)
	m := seq(t, 3, 2)

	out := b.MatMul(a, m, false, false)
	assert.Equal(t, tensor.Shape{2, 2, 2}, out.Shape())
	got := out.AsFloat32()
	assert.Equal(t, []float32{10, 13, 28, 40}, got[:4])
	// Second batch: [[6 7 8] [9 10 11]] @ m.
	assert.Equal(t, []float32{46, 67, 64, 94}, got[4:])
}

func TestMatMulIntegers(t *testing.T) {
	b := New()
	x := i64(t, []int64{1, 2, 3, 4}, 2, 2)
	y := i64(t, []int64{5, 6, 7, 8}, 2, 2)
	assert.Equal(t, []int64{19, 22, 43, 50}, b.MatMul(x, y, false, false).AsInt64())
}

func TestMatMulEmpty(t *testing.T) {
	b := New()
	out := b.MatMul(seq(t, 2, 0), seq(t, 0, 3), false, false)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, make([]float32, 6), out.AsFloat32())
}
