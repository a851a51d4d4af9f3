package ops_test

import (
	"testing"

	"github.com/born-ml/opbridge/tensor"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResize(t *testing.T) {
	o := newOps()
	x := seq(1, 2, 2, 1) // NHWC

	r := must.M1(o.NewResize([]float64{2, 2}, "nearest", false, "channels_last"))
	out := must.M1(r.Call(x))
	assert.Equal(t, tensor.Shape{1, 4, 4, 1}, out.Shape())
	assert.Equal(t, []float32{
		0, 0, 1, 1,
		0, 0, 1, 1,
		2, 2, 3, 3,
		2, 2, 3, 3,
	}, out.AsFloat32())

	first := must.M1(o.Resize(seq(1, 1, 2, 2), []float64{1.5, 1}, "bilinear", false, "channels_first"))
	assert.Equal(t, tensor.Shape{1, 1, 3, 2}, first.Shape())

	// antialias selects corner-aligned sampling for linear resizing.
	line := f32([]float32{0, 2}, 1, 2, 1)
	aligned := must.M1(o.Resize(line, []float64{1.5}, "linear", true, ""))
	assert.InDeltaSlice(t, []float32{0, 1, 2}, aligned.AsFloat32(), 1e-6)

	_, err := o.NewResize([]float64{2, 2}, "bicubic", false, "")
	assert.Error(t, err)
	_, err = o.NewResize([]float64{0, 2}, "nearest", false, "")
	assert.Error(t, err)
	_, err = r.Call(seq(2, 2))
	assert.Error(t, err)
	_, err = r.Call(seq(1, 2, 2, 2, 1))
	assert.Error(t, err, "two factors for three spatial dimensions")
}

func TestDepthToSpace(t *testing.T) {
	o := newOps()
	nhwc := must.M1(o.DepthToSpace(seq(1, 1, 1, 4), 2, "NHWC"))
	assert.Equal(t, tensor.Shape{1, 2, 2, 1}, nhwc.Shape())
	assert.Equal(t, []float32{0, 1, 2, 3}, nhwc.AsFloat32())

	nchw := must.M1(o.DepthToSpace(seq(1, 4, 1, 2), 2, "channels_first"))
	assert.Equal(t, tensor.Shape{1, 1, 2, 4}, nchw.Shape())
	assert.Equal(t, []float32{0, 2, 1, 3, 4, 6, 5, 7}, nchw.AsFloat32())

	_, err := o.DepthToSpace(seq(1, 1, 1, 3), 2, "NHWC")
	assert.Error(t, err)
	_, err = o.DepthToSpace(seq(1, 1, 1, 4), 0, "NHWC")
	assert.Error(t, err)
	_, err = o.DepthToSpace(seq(1, 1, 4), 2, "NLC")
	assert.Error(t, err)
}

func TestBatchToSpace(t *testing.T) {
	o := newOps()
	x := f32([]float32{1, 2, 3, 4}, 4, 1, 1, 1)

	out, err := o.BatchToSpace(x, []int{2, 2}, [][2]int{{0, 0}, {0, 0}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2, 2, 1}, out.Shape())
	assert.Equal(t, []float32{1, 2, 3, 4}, out.AsFloat32())

	cropped := must.M1(o.BatchToSpace(x, []int{2, 2}, [][2]int{{0, 1}, {1, 0}}))
	assert.Equal(t, tensor.Shape{1, 1, 1, 1}, cropped.Shape())
	assert.Equal(t, []float32{2}, cropped.AsFloat32())

	// Two channels stay together.
	ch := f32([]float32{1, 10, 2, 20}, 2, 1, 2)
	line := must.M1(o.BatchToSpace(ch, []int{2}, [][2]int{{0, 0}}))
	assert.Equal(t, tensor.Shape{1, 2, 2}, line.Shape())
	assert.Equal(t, []float32{1, 10, 2, 20}, line.AsFloat32())

	_, err = o.BatchToSpace(x, []int{3}, [][2]int{{0, 0}})
	assert.Error(t, err)
	_, err = o.BatchToSpace(x, []int{2, 2}, [][2]int{{0, 0}})
	assert.Error(t, err)
	_, err = o.BatchToSpace(x, []int{2, 2}, [][2]int{{2, 1}, {0, 0}})
	assert.Error(t, err)
}
