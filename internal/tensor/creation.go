package tensor

import "fmt"

// FromSlice creates a tensor from a Go slice. The slice is copied into the tensor's memory.
//
// Example:
//
//	t, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), CPU)
	if err != nil {
		return nil, err
	}
	copy(view[T](raw), data)
	return raw, nil
}

// Scalar creates a rank-0 tensor holding v.
func Scalar[T DType](v T) *RawTensor {
	raw, err := FromSlice([]T{v}, Shape{})
	if err != nil {
		panic(err) // a single element always fits a scalar shape
	}
	return raw
}

// FromBits creates a Float16 or BFloat16 tensor from raw 16-bit patterns.
func FromBits(bits []uint16, shape Shape, dtype DataType) (*RawTensor, error) {
	if dtype != Float16 && dtype != BFloat16 {
		return nil, fmt.Errorf("FromBits requires float16 or bfloat16, got %s", dtype)
	}
	if shape.NumElements() != len(bits) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(bits))
	}
	raw, err := NewRaw(shape, dtype, CPU)
	if err != nil {
		return nil, err
	}
	copy(raw.AsUint16(), bits)
	return raw, nil
}

// Values returns a copy of the tensor elements as []T. The tensor dtype must match T.
func Values[T DType](r *RawTensor) ([]T, error) {
	var dummy T
	if dt := inferDataType(dummy); dt != r.dtype {
		return nil, fmt.Errorf("tensor dtype is %s, requested %s", r.dtype, dt)
	}
	out := make([]T, r.NumElements())
	copy(out, view[T](r))
	return out, nil
}

// ElementBytes returns the bytes of element i.
func (r *RawTensor) ElementBytes(i int) []byte {
	size := r.dtype.Size()
	return r.data[i*size : (i+1)*size]
}
