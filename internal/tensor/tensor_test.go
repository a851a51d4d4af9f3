package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawTensorAsInt64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64, CPU)
	data := raw.AsInt64()

	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsInt64()[0] != 42 {
		t.Error("AsInt64 should return zero-copy slice")
	}
}

func TestRawTensorAsBool(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Bool, CPU)
	data := raw.AsBool()
	data[3] = true
	assert.Equal(t, []bool{false, false, false, true}, raw.AsBool())
}

func TestRawTensorWrongViewPanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)
	assert.Panics(t, func() { raw.AsFloat64() })
	assert.Panics(t, func() { raw.AsUint16() })
}

func TestRawTensorZeroSize(t *testing.T) {
	raw, err := NewRaw(Shape{0, 3}, Float32, CPU)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.NumElements())
	assert.Empty(t, raw.AsFloat32())
}

func TestRawTensorRejectsComplex(t *testing.T) {
	_, err := NewRaw(Shape{2}, Complex64, CPU)
	require.Error(t, err)
	_, err = NewRaw(Shape{-1}, Float32, CPU)
	require.Error(t, err)
}

func TestRawTensorCloneIsDeep(t *testing.T) {
	a, err := FromSlice([]float32{1, 2, 3}, Shape{3})
	require.NoError(t, err)
	b := a.Clone()
	b.AsFloat32()[0] = 9
	assert.Equal(t, float32(1), a.AsFloat32()[0])
}

func TestRawTensorWithShape(t *testing.T) {
	a, _ := FromSlice([]int32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b, err := a.WithShape(Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 2}, b.Shape())
	_, err = a.WithShape(Shape{4})
	require.Error(t, err)
}

func TestFromSliceAndValues(t *testing.T) {
	a, err := FromSlice([]int16{1, -2}, Shape{2})
	require.NoError(t, err)
	assert.Equal(t, Int16, a.DType())

	vals, err := Values[int16](a)
	require.NoError(t, err)
	assert.Equal(t, []int16{1, -2}, vals)

	_, err = Values[float32](a)
	require.Error(t, err)

	_, err = FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	require.Error(t, err)
}

func TestScalar(t *testing.T) {
	s := Scalar(float64(2.5))
	assert.Equal(t, 0, s.Rank())
	assert.Equal(t, 1, s.NumElements())
	assert.Equal(t, 2.5, s.AsFloat64()[0])
	assert.Equal(t, "Tensor(float64[])", s.String())
}

func TestFromBits(t *testing.T) {
	h, err := FromBits([]uint16{0x3c00}, Shape{1}, Float16)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3c00), h.AsUint16()[0])
	_, err = FromBits([]uint16{1}, Shape{1}, Float32)
	require.Error(t, err)
}

func TestParseDataType(t *testing.T) {
	cases := map[string]DataType{
		"float32":  Float32,
		"half":     Float16,
		"DOUBLE":   Float64,
		"long":     Int64,
		"bool":     Bool,
		"uint8":    Uint8,
		"bfloat16": BFloat16,
	}
	for name, want := range cases {
		got, err := ParseDataType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseDataType("string")
	require.Error(t, err)
}

func TestDataTypeSize(t *testing.T) {
	assert.Equal(t, 2, Float16.Size())
	assert.Equal(t, 2, BFloat16.Size())
	assert.Equal(t, 8, Int64.Size())
	assert.Equal(t, 1, Bool.Size())
	assert.True(t, Float16.IsFloat())
	assert.True(t, Uint8.IsInteger())
	assert.False(t, Complex64.Storable())
}

func TestBroadcastShapes(t *testing.T) {
	out, needs, err := BroadcastShapes(Shape{3, 1}, Shape{3, 5})
	require.NoError(t, err)
	assert.True(t, needs)
	assert.Equal(t, Shape{3, 5}, out)

	out, needs, err = BroadcastShapes(Shape{2, 3}, Shape{2, 3})
	require.NoError(t, err)
	assert.False(t, needs)
	assert.Equal(t, Shape{2, 3}, out)

	out, _, err = BroadcastShapes(Shape{4}, Shape{2, 1})
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 4}, out)

	_, _, err = BroadcastShapes(Shape{3, 4}, Shape{3, 5})
	require.Error(t, err)
}

func TestBroadcastStrides(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1}, BroadcastStrides(Shape{4}, Shape{2, 3, 4}))
	assert.Equal(t, []int{1, 0}, BroadcastStrides(Shape{3, 1}, Shape{3, 5}))
}

func TestNormalizeAxis(t *testing.T) {
	ax, err := NormalizeAxis(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, ax)
	_, err = NormalizeAxis(3, 3)
	require.Error(t, err)
	_, err = NormalizeAxis(-4, 3)
	require.Error(t, err)
}

func TestLayout(t *testing.T) {
	assert.Equal(t, []int{1, 2}, NHWC.SpatialAxes())
	assert.Equal(t, []int{2, 3}, NCHW.SpatialAxes())
	assert.Equal(t, []int{1, 2, 3}, NDHWC.SpatialAxes())
	assert.Equal(t, 3, NHWC.ChannelAxis())
	assert.Equal(t, 1, NCL.ChannelAxis())

	l, ok := ParseLayout("channels_last", 4)
	require.True(t, ok)
	assert.Equal(t, NHWC, l)
	l, ok = ParseLayout("NCDHW", 5)
	require.True(t, ok)
	assert.Equal(t, NCDHW, l)
	_, ok = ParseLayout("channels_last", 2)
	assert.False(t, ok)
}
