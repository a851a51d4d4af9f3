// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/opbridge/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for the Go element types that map onto a DataType.
// Supported types: float32, float64, int8, int16, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	InvalidDType DataType = tensor.InvalidDType
	Bool         DataType = tensor.Bool
	Int8         DataType = tensor.Int8
	Int16        DataType = tensor.Int16
	Int32        DataType = tensor.Int32
	Int64        DataType = tensor.Int64
	Uint8        DataType = tensor.Uint8
	Float16      DataType = tensor.Float16
	BFloat16     DataType = tensor.BFloat16
	Float32      DataType = tensor.Float32
	Float64      DataType = tensor.Float64
	Complex64    DataType = tensor.Complex64
	Complex128   DataType = tensor.Complex128
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// ParseDataType resolves a dtype name such as "float32", "half" or "int64".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// Creation functions

// NewRaw creates a new zero-filled tensor with the given shape, dtype, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Scalar creates a rank-0 tensor holding v.
func Scalar[T DType](v T) *RawTensor {
	return tensor.Scalar(v)
}

// FromBits creates a Float16 or BFloat16 tensor from raw 16-bit patterns.
func FromBits(bits []uint16, shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.FromBits(bits, shape, dtype)
}

// Values copies the elements of r into a []T. The tensor dtype must match T.
//
// Example:
//
//	vals, err := tensor.Values[float32](x)
func Values[T DType](r *RawTensor) ([]T, error) {
	return tensor.Values[T](r)
}

// Utility functions

// BroadcastShapes computes the broadcast shape for two shapes following NumPy broadcasting rules.
// Returns the resulting shape, a flag indicating if broadcasting is needed, and an error if incompatible.
//
// Example:
//
//	resultShape, needsBroadcast, err := tensor.BroadcastShapes(
//	    tensor.Shape{3, 1},
//	    tensor.Shape{3, 4},
//	)
//	// resultShape = [3, 4], needsBroadcast = true
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// NormalizeAxis maps a possibly negative axis into [0, rank).
func NormalizeAxis(axis, rank int) (int, error) {
	return tensor.NormalizeAxis(axis, rank)
}
