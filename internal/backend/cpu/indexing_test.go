package cpu

import (
	"testing"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestGather(t *testing.T) {
	b := New()
	x := seq(t, 3, 2)

	rows := b.Gather(x, i32(t, []int32{2, 0}, 2), 0)
	assert.Equal(t, tensor.Shape{2, 2}, rows.Shape())
	assert.Equal(t, []float32{4, 5, 0, 1}, rows.AsFloat32())

	cols := b.Gather(x, i64(t, []int64{1}, 1), 1)
	assert.Equal(t, tensor.Shape{3, 1}, cols.Shape())
	assert.Equal(t, []float32{1, 3, 5}, cols.AsFloat32())

	grid := b.Gather(seq(t, 2), i64(t, []int64{0, 1, 1, 0}, 2, 2), 0)
	assert.Equal(t, tensor.Shape{2, 2}, grid.Shape())
	assert.Equal(t, []float32{0, 1, 1, 0}, grid.AsFloat32())

	assert.Panics(t, func() { b.Gather(x, i64(t, []int64{3}, 1), 0) })
	assert.Panics(t, func() { b.Gather(x, f32(t, []float32{0}, 1), 0) })
}

func TestGatherND(t *testing.T) {
	b := New()
	x := seq(t, 2, 3)

	points := b.GatherND(x, i64(t, []int64{1, 2, 0, 0}, 2, 2), 0)
	assert.Equal(t, tensor.Shape{2}, points.Shape())
	assert.Equal(t, []float32{5, 0}, points.AsFloat32())

	rows := b.GatherND(x, i64(t, []int64{1}, 1, 1), 0)
	assert.Equal(t, tensor.Shape{1, 3}, rows.Shape())
	assert.Equal(t, []float32{3, 4, 5}, rows.AsFloat32())

	batched := b.GatherND(x, i64(t, []int64{2, 0}, 2, 1), 1)
	assert.Equal(t, tensor.Shape{2}, batched.Shape())
	assert.Equal(t, []float32{2, 3}, batched.AsFloat32())

	assert.Panics(t, func() { b.GatherND(x, i64(t, []int64{0, 0, 0}, 1, 3), 0) })
}

func TestOneHot(t *testing.T) {
	b := New()
	idx := i64(t, []int64{0, 2, 5}, 3)

	last := b.OneHot(idx, 3, 1, 0, -1, tensor.Float32)
	assert.Equal(t, tensor.Shape{3, 3}, last.Shape())
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1, 0, 0, 0}, last.AsFloat32())

	first := b.OneHot(idx, 3, 1, 0, 0, tensor.Int32)
	assert.Equal(t, []int32{1, 0, 0, 0, 0, 0, 0, 1, 0}, first.AsInt32())

	custom := b.OneHot(i64(t, []int64{1}, 1), 2, 5, -5, -1, tensor.Float32)
	assert.Equal(t, []float32{-5, 5}, custom.AsFloat32())
}

func TestSegment(t *testing.T) {
	b := New()
	x := f32(t, []float32{1, 2, 3, 4, 5, 6}, 3, 2)
	ids := i32(t, []int32{0, 0, 2}, 3)

	sum := b.Segment(tensor.SegmentSum, x, ids, 3)
	assert.Equal(t, tensor.Shape{3, 2}, sum.Shape())
	assert.Equal(t, []float32{4, 6, 0, 0, 5, 6}, sum.AsFloat32())
	assert.Equal(t, []float32{2, 3, 0, 0, 5, 6}, b.Segment(tensor.SegmentMean, x, ids, 3).AsFloat32())

	dropped := i32(t, []int32{1, -1, 1}, 3)
	mx := b.Segment(tensor.SegmentMax, x, dropped, -1)
	assert.Equal(t, tensor.Shape{2, 2}, mx.Shape())
	assert.Equal(t, []float32{0, 0, 5, 6}, mx.AsFloat32())

	assert.Panics(t, func() { b.Segment(tensor.SegmentSum, x, ids, 2) })
	assert.Panics(t, func() { b.Segment(tensor.SegmentSum, x, i32(t, []int32{0}, 1), 1) })
}
