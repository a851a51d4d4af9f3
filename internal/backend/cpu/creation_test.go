package cpu

import (
	"testing"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull(t *testing.T) {
	b := New()
	assert.Equal(t, []int32{7, 7}, b.Full(tensor.Shape{2}, tensor.Int32, 7).AsInt32())
	assert.Equal(t, []bool{true, true, true}, b.Full(tensor.Shape{3}, tensor.Bool, 1).AsBool())
	assert.Equal(t, []float64{0, 0}, b.Full(tensor.Shape{1, 2}, tensor.Float64, 0).AsFloat64())

	h := b.Full(tensor.Shape{2}, tensor.Float16, 1.5)
	assert.Equal(t, []float32{1.5, 1.5}, b.Cast(h, tensor.Float32).AsFloat32())
}

func TestArangeLinspace(t *testing.T) {
	b := New()
	assert.Equal(t, []float32{0, 2, 4}, b.Arange(0, 5, 2, tensor.Float32).AsFloat32())
	assert.Equal(t, []int64{5, 3, 1}, b.Arange(5, 0, -2, tensor.Int64).AsInt64())
	assert.Equal(t, tensor.Shape{0}, b.Arange(3, 3, 1, tensor.Float32).Shape())
	assert.Panics(t, func() { b.Arange(0, 1, 0, tensor.Float32) })

	assert.Equal(t, []float32{0, 0.25, 0.5, 0.75, 1}, b.Linspace(0, 1, 5, tensor.Float32).AsFloat32())
	assert.Equal(t, []float32{4}, b.Linspace(4, 9, 1, tensor.Float32).AsFloat32())
	assert.Equal(t, tensor.Shape{0}, b.Linspace(4, 9, 0, tensor.Float32).Shape())
}

func TestRandomSeeded(t *testing.T) {
	b := New()
	shape := tensor.Shape{64}

	u1 := b.RandomUniform(shape, tensor.Float64, -1, 1, 42)
	u2 := b.RandomUniform(shape, tensor.Float64, -1, 1, 42)
	assert.Equal(t, u1.AsFloat64(), u2.AsFloat64())
	for _, v := range u1.AsFloat64() {
		require.GreaterOrEqual(t, v, -1.0)
		require.Less(t, v, 1.0)
	}

	ints := b.RandomUniform(shape, tensor.Int32, 0, 10, 7)
	for _, v := range ints.AsInt32() {
		require.GreaterOrEqual(t, v, int32(0))
		require.Less(t, v, int32(10))
	}

	tn := b.TruncatedNormal(tensor.Shape{256}, tensor.Float64, 3, 0.5, 1)
	for _, v := range tn.AsFloat64() {
		require.InDelta(t, 3, v, 1.0)
	}

	constant := b.RandomNormal(shape, tensor.Float32, 2, 0, 0)
	assert.Equal(t, float32(2), constant.AsFloat32()[63])

	assert.Panics(t, func() { b.RandomUniform(shape, tensor.Float32, 1, 1, 0) })
	assert.Panics(t, func() { b.RandomNormal(shape, tensor.Bool, 0, 1, 0) })
}
