package ops_test

import (
	"math"
	"testing"

	"github.com/born-ml/opbridge/tensor"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryOps(t *testing.T) {
	o := newOps()
	a := f32([]float32{7, -7}, 2)
	b := f32([]float32{2}, 1)

	assert.Equal(t, []float32{9, -5}, must.M1(o.Add(a, b)).AsFloat32())
	assert.Equal(t, []float32{5, -9}, must.M1(o.Subtract(a, b)).AsFloat32())
	assert.Equal(t, []float32{14, -14}, must.M1(o.Multiply(a, b)).AsFloat32())
	assert.Equal(t, []float32{3.5, -3.5}, must.M1(o.Divide(a, b)).AsFloat32())
	assert.Equal(t, []float32{49, 49}, must.M1(o.Pow(a, b)).AsFloat32())
	assert.Equal(t, []float32{3, -4}, must.M1(o.FloorDiv(a, b)).AsFloat32())
	assert.Equal(t, []float32{1, 1}, must.M1(o.FloorMod(a, b)).AsFloat32())
	assert.Equal(t, []float32{25, 81}, must.M1(o.SquaredDifference(a, b)).AsFloat32())

	sum := must.M1(o.AddN(a, a, b))
	assert.Equal(t, []float32{16, -12}, sum.AsFloat32())
	_, err := o.AddN()
	assert.Error(t, err)

	clipped := must.M1(o.ClipByValue(a, -1, 1))
	assert.Equal(t, []float32{1, -1}, clipped.AsFloat32())
	_, err = o.ClipByValue(a, 1, -1)
	assert.Error(t, err)

	_, err = o.Add(a, i64([]int64{1, 2}, 2))
	assert.Error(t, err, "mixed dtypes are rejected")
}

func TestUnaryOps(t *testing.T) {
	o := newOps()
	x := f32([]float32{0.25, 1, 4}, 3)

	assert.InDeltaSlice(t, []float32{0.5, 1, 2}, must.M1(o.Sqrt(x)).AsFloat32(), 1e-6)
	assert.InDeltaSlice(t, []float32{2, 1, 0.5}, must.M1(o.Rsqrt(x)).AsFloat32(), 1e-6)
	assert.InDeltaSlice(t, []float32{4, 1, 0.25}, must.M1(o.Reciprocal(x)).AsFloat32(), 1e-6)
	assert.InDeltaSlice(t, []float32{float32(math.Log(0.25)), 0, float32(math.Log(4))}, must.M1(o.Log(x)).AsFloat32(), 1e-6)
	assert.Equal(t, []float32{-0.25, -1, -4}, must.M1(o.Negative(x)).AsFloat32())
	assert.Equal(t, []float32{0.0625, 1, 16}, must.M1(o.Square(x)).AsFloat32())
	assert.Equal(t, []float32{0, 1, 4}, must.M1(o.Round(x)).AsFloat32())

	zero := f32([]float32{0}, 1)
	assert.InDeltaSlice(t, []float32{0.5}, must.M1(o.Sigmoid(zero)).AsFloat32(), 1e-6)
	assert.InDeltaSlice(t, []float32{float32(math.Log(2))}, must.M1(o.Softplus(zero)).AsFloat32(), 1e-6)
	assert.InDeltaSlice(t, []float32{float32(-math.Log(2))}, must.M1(o.LogSigmoid(zero)).AsFloat32(), 1e-6)
	assert.Equal(t, []float32{1}, must.M1(o.Cos(zero)).AsFloat32())
	assert.Equal(t, []float32{0}, must.M1(o.Tanh(zero)).AsFloat32())

	special := f32([]float32{float32(math.NaN()), float32(math.Inf(-1)), 1}, 3)
	assert.Equal(t, []bool{true, false, false}, must.M1(o.IsNaN(special)).AsBool())
	assert.Equal(t, []bool{false, true, false}, must.M1(o.IsInf(special)).AsBool())

	ints := i64([]int64{-3, 4}, 2)
	assert.Equal(t, []int64{3, 4}, must.M1(o.Abs(ints)).AsInt64())
	assert.Equal(t, []int64{-1, 1}, must.M1(o.Sign(ints)).AsInt64())
}

func TestRealAndAngle(t *testing.T) {
	o := newOps()
	x := f32([]float32{-1, 0, 2}, 3)

	re := must.M1(o.Real(x))
	assert.Equal(t, x.AsFloat32(), re.AsFloat32())

	angle := must.M1(o.Angle(x))
	assert.Equal(t, tensor.Float32, angle.DType())
	assert.InDeltaSlice(t, []float32{math.Pi, 0, 0}, angle.AsFloat32(), 1e-6)

	intAngle := must.M1(o.Angle(i64([]int64{-5, 5}, 2)))
	assert.Equal(t, tensor.Float32, intAngle.DType())
	assert.InDeltaSlice(t, []float32{math.Pi, 0}, intAngle.AsFloat32(), 1e-6)
}

func TestCompareAndLogical(t *testing.T) {
	o := newOps()
	a := f32([]float32{1, 2, 3}, 3)
	b := f32([]float32{2}, 1)

	assert.Equal(t, []bool{false, true, false}, must.M1(o.Equal(a, b)).AsBool())
	assert.Equal(t, []bool{false, false, true}, must.M1(o.Greater(a, b)).AsBool())
	assert.Equal(t, []bool{false, true, true}, must.M1(o.GreaterEqual(a, b)).AsBool())
	assert.Equal(t, []bool{true, false, false}, must.M1(o.Less(a, b)).AsBool())
	assert.Equal(t, []bool{true, true, false}, must.M1(o.LessEqual(a, b)).AsBool())

	p := must.M1(o.ConvertToTensor([]bool{true, true, false, false}, tensor.InvalidDType))
	q := must.M1(o.ConvertToTensor([]bool{true, false, true, false}, tensor.InvalidDType))
	assert.Equal(t, []bool{true, false, false, false}, must.M1(o.LogicalAnd(p, q)).AsBool())
	assert.Equal(t, []bool{true, true, true, false}, must.M1(o.LogicalOr(p, q)).AsBool())
	assert.Equal(t, []bool{false, true, true, false}, must.M1(o.LogicalXor(p, q)).AsBool())
	assert.Equal(t, []bool{false, false, true, true}, must.M1(o.LogicalNot(p)).AsBool())

	cond := must.M1(o.Greater(a, b))
	picked := must.M1(o.Where(cond, a, must.M1(o.ZerosLike(a, tensor.InvalidDType))))
	assert.Equal(t, []float32{0, 0, 3}, picked.AsFloat32())
}

func TestReductions(t *testing.T) {
	o := newOps()
	x := f32([]float32{1, 2, 3, 4}, 2, 2)

	assert.Equal(t, []float32{10}, must.M1(o.ReduceSum(x, nil, false)).AsFloat32())
	assert.Equal(t, []float32{2, 3}, must.M1(o.ReduceMean(x, []int{0}, false)).AsFloat32())
	assert.Equal(t, []float32{2, 4}, must.M1(o.ReduceMax(x, []int{-1}, false)).AsFloat32())
	assert.Equal(t, []float32{1, 3}, must.M1(o.ReduceMin(x, []int{1}, false)).AsFloat32())
	assert.Equal(t, []float32{24}, must.M1(o.ReduceProd(x, nil, false)).AsFloat32())

	kept := must.M1(o.ReduceSum(x, []int{1}, true))
	assert.Equal(t, tensor.Shape{2, 1}, kept.Shape())

	v := must.M1(o.ReduceVariance(x, nil, false))
	assert.InDeltaSlice(t, []float32{5.0 / 3}, v.AsFloat32(), 1e-6)
	s := must.M1(o.ReduceStd(x, []int{0}, false))
	assert.InDeltaSlice(t, []float32{math.Sqrt2, math.Sqrt2}, s.AsFloat32(), 1e-6)
	_, err := o.ReduceVariance(x, []int{0, 1, 2}, false)
	assert.Error(t, err)
	_, err = o.ReduceStd(f32([]float32{1}, 1), nil, false)
	assert.Error(t, err)

	intVar := must.M1(o.ReduceVariance(i64([]int64{1, 3}, 2), nil, false))
	assert.Equal(t, tensor.Float32, intVar.DType())
	assert.Equal(t, []float32{2}, intVar.AsFloat32())

	flags := must.M1(o.ConvertToTensor([]bool{true, false}, tensor.InvalidDType))
	assert.Equal(t, []bool{true}, must.M1(o.Any(flags, nil, false)).AsBool())
	assert.Equal(t, []bool{false}, must.M1(o.All(flags, nil, false)).AsBool())
}

func TestIndexReductions(t *testing.T) {
	o := newOps()
	x := f32([]float32{1, 3, 2, 4, 0, 4}, 2, 3)

	amax := must.M1(o.Argmax(x, 1, tensor.InvalidDType))
	assert.Equal(t, tensor.Int64, amax.DType())
	assert.Equal(t, []int64{1, 0}, amax.AsInt64())

	amin := must.M1(o.Argmin(x, -1, tensor.Int32))
	assert.Equal(t, []int32{0, 1}, amin.AsInt32())

	nz := must.M1(o.CountNonzero(x, []int{1}, false, tensor.InvalidDType))
	assert.Equal(t, []int64{3, 2}, nz.AsInt64())

	cs := must.M1(o.CumSum(f32([]float32{1, 2, 3}, 3), 0, false, false))
	assert.Equal(t, []float32{1, 3, 6}, cs.AsFloat32())
	excl := must.M1(o.CumSum(f32([]float32{1, 2, 3}, 3), 0, true, true))
	assert.Equal(t, []float32{5, 3, 0}, excl.AsFloat32())
	cp := must.M1(o.CumProd(f32([]float32{1, 2, 3}, 3), 0, false, false))
	assert.Equal(t, []float32{1, 2, 6}, cp.AsFloat32())

	order := must.M1(o.Argsort(f32([]float32{3, 1, 2}, 3), 0, false))
	assert.Equal(t, []int64{1, 2, 0}, order.AsInt64())
	desc := must.M1(o.Argsort(f32([]float32{3, 1, 2}, 3), 0, true))
	assert.Equal(t, []int64{0, 2, 1}, desc.AsInt64())
}

func TestL2Normalize(t *testing.T) {
	o := newOps()
	x := f32([]float32{3, 4, 0, 0}, 2, 2)
	out := must.M1(o.L2Normalize(x, []int{1}, 1e-12))
	assert.InDeltaSlice(t, []float32{0.6, 0.8, 0, 0}, out.AsFloat32(), 1e-6)

	l2 := o.NewL2Normalize(nil, 1e-12)
	all := must.M1(l2.Call(f32([]float32{3, 4}, 2)))
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, all.AsFloat32(), 1e-6)
}

func TestLinalg(t *testing.T) {
	o := newOps()
	a := seq(2, 2, 3)
	b := seq(2, 3, 1)

	out, err := o.Bmm(a, b)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2, 1}, out.Shape())
	// batch 0: [0 1 2]·[0 1 2], [3 4 5]·[0 1 2]; batch 1 uses [3 4 5] on the right.
	assert.Equal(t, []float32{5, 14, 86, 122}, out.AsFloat32())

	_, err = o.Bmm(seq(2, 3), seq(3, 2))
	assert.Error(t, err)
	_, err = o.Bmm(seq(1, 2, 3), seq(2, 3, 1))
	assert.Error(t, err)

	sq := seq(3, 3)
	assert.Equal(t, []float32{0, 1, 2, 0, 4, 5, 0, 0, 8}, must.M1(o.Triu(sq, 0)).AsFloat32())
	assert.Equal(t, []float32{0, 0, 0, 3, 4, 0, 6, 7, 8}, must.M1(o.Tril(sq, 0)).AsFloat32())
	assert.Equal(t, []float32{0, 1, 2, 0, 0, 5, 0, 0, 0}, must.M1(o.Triu(sq, 1)).AsFloat32())
	assert.Equal(t, []float32{0, 0, 0, 3, 0, 0, 6, 7, 0}, must.M1(o.Tril(sq, -1)).AsFloat32())
}
