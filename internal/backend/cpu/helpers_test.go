package cpu

import (
	"testing"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/stretchr/testify/require"
)

func f32(t *testing.T, data []float32, shape ...int) *tensor.RawTensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return x
}

func i64(t *testing.T, data []int64, shape ...int) *tensor.RawTensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return x
}

func i32(t *testing.T, data []int32, shape ...int) *tensor.RawTensor {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return x
}

// seq returns a float32 tensor holding 0, 1, 2, ... in the given shape.
func seq(t *testing.T, shape ...int) *tensor.RawTensor {
	t.Helper()
	n := tensor.Shape(shape).NumElements()
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i)
	}
	return f32(t, data, shape...)
}

// serial returns a backend that never fans out, for deterministic panics in tests.
func serial(t *testing.T) *CPUBackend {
	t.Helper()
	b, err := NewWithConfig("workers=1")
	require.NoError(t, err)
	return b
}
