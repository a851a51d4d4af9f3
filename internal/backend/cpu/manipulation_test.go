package cpu

import (
	"testing"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReshape(t *testing.T) {
	b := New()
	x := seq(t, 2, 3)
	r := b.Reshape(x, tensor.Shape{3, -1})
	assert.Equal(t, tensor.Shape{3, 2}, r.Shape())
	assert.Equal(t, x.AsFloat32(), r.AsFloat32())

	// The result owns its buffer.
	r.AsFloat32()[0] = 100
	assert.Equal(t, float32(0), x.AsFloat32()[0])

	assert.Panics(t, func() { b.Reshape(x, tensor.Shape{4, -1}) })
	assert.Panics(t, func() { b.Reshape(x, tensor.Shape{-1, -1}) })
}

func TestTranspose(t *testing.T) {
	b := New()
	x := seq(t, 2, 3)
	tr := b.Transpose(x, nil)
	assert.Equal(t, tensor.Shape{3, 2}, tr.Shape())
	assert.Equal(t, []float32{0, 3, 1, 4, 2, 5}, tr.AsFloat32())

	y := b.Transpose(seq(t, 2, 2, 2), []int{1, 0, 2})
	assert.Equal(t, []float32{0, 1, 4, 5, 2, 3, 6, 7}, y.AsFloat32())

	assert.Panics(t, func() { b.Transpose(x, []int{0, 0}) })
	assert.Panics(t, func() { b.Transpose(x, []int{0}) })
}

func TestConcatStackSplit(t *testing.T) {
	b := New()
	x := seq(t, 2, 2)
	col := f32(t, []float32{10, 11}, 2, 1)

	c := b.Concat([]*tensor.RawTensor{x, col}, 1)
	assert.Equal(t, tensor.Shape{2, 3}, c.Shape())
	assert.Equal(t, []float32{0, 1, 10, 2, 3, 11}, c.AsFloat32())

	rows := b.Concat([]*tensor.RawTensor{x, seq(t, 1, 2)}, 0)
	assert.Equal(t, []float32{0, 1, 2, 3, 0, 1}, rows.AsFloat32())

	assert.Panics(t, func() { b.Concat([]*tensor.RawTensor{x, col}, 0) })

	p := f32(t, []float32{1, 2}, 2)
	q := f32(t, []float32{3, 4}, 2)
	s0 := b.Stack([]*tensor.RawTensor{p, q}, 0)
	assert.Equal(t, tensor.Shape{2, 2}, s0.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4}, s0.AsFloat32())
	s1 := b.Stack([]*tensor.RawTensor{p, q}, -1)
	assert.Equal(t, []float32{1, 3, 2, 4}, s1.AsFloat32())

	parts := b.Split(seq(t, 5), []int{2, 3}, 0)
	require.Len(t, parts, 2)
	assert.Equal(t, []float32{0, 1}, parts[0].AsFloat32())
	assert.Equal(t, []float32{2, 3, 4}, parts[1].AsFloat32())
	assert.Panics(t, func() { b.Split(seq(t, 5), []int{2, 2}, 0) })
}

func TestSlice(t *testing.T) {
	b := New()
	x := seq(t, 3, 4)
	s := b.Slice(x, []int{1, 1}, []int{2, -1})
	assert.Equal(t, tensor.Shape{2, 3}, s.Shape())
	assert.Equal(t, []float32{5, 6, 7, 9, 10, 11}, s.AsFloat32())
	assert.Panics(t, func() { b.Slice(x, []int{2, 0}, []int{2, 1}) })
}

func TestTileExpand(t *testing.T) {
	b := New()
	assert.Equal(t, []float32{1, 2, 1, 2}, b.Tile(f32(t, []float32{1, 2}, 2), []int{2}).AsFloat32())

	tiled := b.Tile(seq(t, 1, 2), []int{2, 2})
	assert.Equal(t, tensor.Shape{2, 4}, tiled.Shape())
	assert.Equal(t, []float32{0, 1, 0, 1, 0, 1, 0, 1}, tiled.AsFloat32())

	x := f32(t, []float32{1, 2, 3}, 3, 1)
	e := b.Expand(x, tensor.Shape{3, 2})
	assert.Equal(t, []float32{1, 1, 2, 2, 3, 3}, e.AsFloat32())
	assert.Equal(t, tensor.Shape{2, 3, 2}, b.Expand(x, tensor.Shape{2, 3, 2}).Shape())
	assert.Panics(t, func() { b.Expand(x, tensor.Shape{2}) })
}

func TestBand(t *testing.T) {
	b := New()
	x := seq(t, 3, 3)
	assert.Equal(t, []float32{0, 1, 2, 0, 4, 5, 0, 0, 8}, b.Band(x, 0, true).AsFloat32())
	assert.Equal(t, []float32{0, 0, 0, 3, 4, 0, 6, 7, 8}, b.Band(x, 0, false).AsFloat32())
	assert.Equal(t, []float32{0, 1, 2, 0, 0, 5, 0, 0, 0}, b.Band(x, 1, true).AsFloat32())
	assert.Panics(t, func() { b.Band(seq(t, 3), 0, true) })
}
