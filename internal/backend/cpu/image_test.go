package cpu

import (
	"testing"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestInterpolateNearest(t *testing.T) {
	b := New()
	x := seq(t, 1, 1, 2, 2)
	out := b.Interpolate(x, []int{4, 4}, tensor.InterpNearest, tensor.NCHW, false)
	assert.Equal(t, tensor.Shape{1, 1, 4, 4}, out.Shape())
	assert.Equal(t, []float32{
		0, 0, 1, 1,
		0, 0, 1, 1,
		2, 2, 3, 3,
		2, 2, 3, 3,
	}, out.AsFloat32())

	nhwc := b.Interpolate(seq(t, 1, 2, 2, 1), []int{1, 1}, tensor.InterpNearest, tensor.NHWC, false)
	assert.Equal(t, tensor.Shape{1, 1, 1, 1}, nhwc.Shape())
	assert.Equal(t, []float32{0}, nhwc.AsFloat32())
}

func TestInterpolateLinear(t *testing.T) {
	b := New()
	x := f32(t, []float32{0, 2}, 1, 1, 2)

	half := b.Interpolate(x, []int{4}, tensor.InterpLinear, tensor.NCL, false)
	assert.InDeltaSlice(t, []float32{0, 0.5, 1.5, 2}, half.AsFloat32(), 1e-6)

	corners := b.Interpolate(x, []int{3}, tensor.InterpLinear, tensor.NCL, true)
	assert.InDeltaSlice(t, []float32{0, 1, 2}, corners.AsFloat32(), 1e-6)

	// Channels-last keeps channels independent.
	cl := f32(t, []float32{0, 10, 2, 20}, 1, 2, 2)
	out := b.Interpolate(cl, []int{3}, tensor.InterpLinear, tensor.NLC, true)
	assert.Equal(t, tensor.Shape{1, 3, 2}, out.Shape())
	assert.InDeltaSlice(t, []float32{0, 10, 1, 15, 2, 20}, out.AsFloat32(), 1e-6)

	assert.Panics(t, func() { b.Interpolate(x, []int{0}, tensor.InterpLinear, tensor.NCL, false) })
	assert.Panics(t, func() { b.Interpolate(x, []int{2, 2}, tensor.InterpLinear, tensor.NCL, false) })
}

func TestPixelShuffle(t *testing.T) {
	b := New()
	x := seq(t, 1, 4, 1, 2)
	out := b.PixelShuffle(x, 2, tensor.NCHW)
	assert.Equal(t, tensor.Shape{1, 1, 2, 4}, out.Shape())
	assert.Equal(t, []float32{0, 2, 1, 3, 4, 6, 5, 7}, out.AsFloat32())

	cl := b.PixelShuffle(seq(t, 1, 1, 1, 4), 2, tensor.NHWC)
	assert.Equal(t, tensor.Shape{1, 2, 2, 1}, cl.Shape())
	assert.Equal(t, []float32{0, 1, 2, 3}, cl.AsFloat32())

	assert.Panics(t, func() { b.PixelShuffle(seq(t, 1, 3, 1, 1), 2, tensor.NCHW) })
}
