package ops_test

import (
	"testing"

	"github.com/born-ml/opbridge/tensor"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenAndExpand(t *testing.T) {
	o := newOps()
	flat := must.M1(o.FlattenReshape(seq(2, 3, 4)))
	assert.Equal(t, tensor.Shape{2, 12}, flat.Shape())

	empty := must.M1(o.FlattenReshape(seq(0, 3)))
	assert.Equal(t, tensor.Shape{0, 3}, empty.Shape())

	_, err := o.FlattenReshape(f32([]float32{1}))
	assert.Error(t, err)

	x := seq(2, 3)
	assert.Equal(t, tensor.Shape{1, 2, 3}, must.M1(o.ExpandDims(x, 0)).Shape())
	assert.Equal(t, tensor.Shape{2, 3, 1}, must.M1(o.ExpandDims(x, -1)).Shape())
	assert.Equal(t, tensor.Shape{2, 1, 3}, must.M1(o.ExpandDims(x, 1)).Shape())
	_, err = o.ExpandDims(x, 4)
	assert.Error(t, err)

	y := seq(1, 2, 1)
	assert.Equal(t, tensor.Shape{2}, must.M1(o.Squeeze(y, nil)).Shape())
	assert.Equal(t, tensor.Shape{2, 1}, must.M1(o.Squeeze(y, []int{0})).Shape())
	_, err = o.Squeeze(y, []int{1})
	assert.Error(t, err)
}

func TestUnstackAndSplit(t *testing.T) {
	o := newOps()
	x := seq(2, 3)

	cols := must.M1(o.Unstack(x, 1, 0))
	require.Len(t, cols, 3)
	assert.Equal(t, tensor.Shape{2}, cols[0].Shape())
	assert.Equal(t, []float32{0, 3}, cols[0].AsFloat32())
	assert.Equal(t, []float32{2, 5}, cols[2].AsFloat32())

	rows := must.M1(o.Unstack(x, -2, 2))
	assert.Equal(t, []float32{3, 4, 5}, rows[1].AsFloat32())
	_, err := o.Unstack(x, 0, 3)
	assert.Error(t, err)

	halves := must.M1(o.Split(seq(4, 2), 2, 0))
	require.Len(t, halves, 2)
	assert.Equal(t, []float32{4, 5, 6, 7}, halves[1].AsFloat32())
	_, err = o.Split(seq(3), 2, 0)
	assert.Error(t, err)

	parts := must.M1(o.SplitSizes(seq(5), []int{1, -1, 2}, 0))
	require.Len(t, parts, 3)
	assert.Equal(t, []float32{1, 2}, parts[1].AsFloat32())
	assert.Equal(t, []float32{3, 4}, parts[2].AsFloat32())
	_, err = o.SplitSizes(seq(5), []int{-1, -1}, 0)
	assert.Error(t, err)
}

func TestConcatStackTile(t *testing.T) {
	o := newOps()
	a, b := seq(2, 1), f32([]float32{8, 9}, 2, 1)

	cat := must.M1(o.Concat([]*tensor.RawTensor{a, b}, -1))
	assert.Equal(t, tensor.Shape{2, 2}, cat.Shape())
	assert.Equal(t, []float32{0, 8, 1, 9}, cat.AsFloat32())

	st := must.M1(o.Stack([]*tensor.RawTensor{a, b}, 0))
	assert.Equal(t, tensor.Shape{2, 2, 1}, st.Shape())

	tiled := must.M1(o.Tile(seq(2), []int{2}))
	assert.Equal(t, []float32{0, 1, 0, 1}, tiled.AsFloat32())

	sl := must.M1(o.Slice(seq(3, 3), []int{1, 1}, []int{-1, 1}))
	assert.Equal(t, tensor.Shape{2, 1}, sl.Shape())
	assert.Equal(t, []float32{4, 7}, sl.AsFloat32())
}

func TestMeshgrid(t *testing.T) {
	o := newOps()
	x := f32([]float32{1, 2, 3}, 3)
	y := f32([]float32{4, 5}, 2)

	xy := must.M1(o.Meshgrid("xy", x, y))
	require.Len(t, xy, 2)
	assert.Equal(t, tensor.Shape{2, 3}, xy[0].Shape())
	assert.Equal(t, []float32{1, 2, 3, 1, 2, 3}, xy[0].AsFloat32())
	assert.Equal(t, []float32{4, 4, 4, 5, 5, 5}, xy[1].AsFloat32())

	ij := must.M1(o.Meshgrid("ij", x, y))
	assert.Equal(t, tensor.Shape{3, 2}, ij[0].Shape())
	assert.Equal(t, []float32{1, 1, 2, 2, 3, 3}, ij[0].AsFloat32())
	assert.Equal(t, []float32{4, 5, 4, 5, 4, 5}, ij[1].AsFloat32())

	_, err := o.Meshgrid("zz", x, y)
	assert.Error(t, err)
	_, err = o.Meshgrid("ij", seq(2, 2))
	assert.Error(t, err)
}

func TestCallablesMatchMethods(t *testing.T) {
	o := newOps()
	x := seq(2, 3)

	axes := []int{1}
	sum := o.NewReduceSum(axes, false)
	axes[0] = 0 // the callable keeps its own copy
	assert.Equal(t, []float32{3, 12}, must.M1(sum.Call(x)).AsFloat32())
	assert.Equal(t, []float32{1, 4}, must.M1(o.NewReduceMean([]int{1}, false).Call(x)).AsFloat32())
	assert.Equal(t, []float32{5}, must.M1(o.NewReduceMax(nil, true).Call(x)).AsFloat32())

	assert.Equal(t, tensor.Shape{3, 2}, must.M1(o.NewTranspose(nil, false).Call(x)).Shape())
	assert.Equal(t, tensor.Shape{6}, must.M1(o.NewReshape(tensor.Shape{-1}).Call(x)).Shape())
	assert.Equal(t, tensor.Shape{2, 3}, must.M1(o.NewFlattenReshape().Call(x)).Shape())
	assert.Equal(t, tensor.Int32, must.M1(o.NewCast(tensor.Int32).Call(x)).DType())
	assert.Len(t, must.M1(o.NewUnstack(0, 2).Call(x)), 2)
	assert.Equal(t, tensor.Shape{2, 2, 3}, must.M1(o.NewStack(0).Call([]*tensor.RawTensor{x, x})).Shape())
	assert.Equal(t, tensor.Shape{4, 3}, must.M1(o.NewConcat(0).Call([]*tensor.RawTensor{x, x})).Shape())
	assert.Equal(t, tensor.Shape{2, 1, 3}, must.M1(o.NewExpandDims(1).Call(x)).Shape())
	assert.Equal(t, tensor.Shape{2, 6}, must.M1(o.NewTile([]int{1, 2}).Call(x)).Shape())
	assert.Len(t, must.M1(o.NewMeshgrid("ij").Call(seq(2), seq(3))), 2)

	mm := must.M1(o.NewMatMul(false, true).Call(x, x))
	assert.Equal(t, tensor.Shape{2, 2}, mm.Shape())
	assert.Equal(t, []float32{5, 14, 14, 50}, mm.AsFloat32())

	neg := f32([]float32{-1.5, 0, 2.5}, 3)
	assert.Equal(t, []float32{-2, 0, 2}, must.M1(o.NewFloor().Call(neg)).AsFloat32())
	assert.Equal(t, []float32{-1, 0, 3}, must.M1(o.NewCeil().Call(neg)).AsFloat32())
	assert.Equal(t, []float32{-1, 0, 1}, must.M1(o.NewSign().Call(neg)).AsFloat32())
	assert.Equal(t, []float32{0, 0, 2.5}, must.M1(o.NewMaximum().Call(neg, must.M1(o.ZerosLike(neg, tensor.InvalidDType)))).AsFloat32())
	assert.Equal(t, []float32{-1.5, 0, 0}, must.M1(o.NewMinimum().Call(neg, must.M1(o.ZerosLike(neg, tensor.InvalidDType)))).AsFloat32())
	assert.Equal(t, []bool{true, false, true}, must.M1(o.NewNotEqual().Call(neg, must.M1(o.ZerosLike(neg, tensor.InvalidDType)))).AsBool())
	assert.Equal(t, []int64{2}, must.M1(o.NewCountNonzero(nil, true, tensor.InvalidDType).Call(neg)).AsInt64())
}
