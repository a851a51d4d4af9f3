// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor value type shared by opbridge engines and the ops adapter.
//
// # Overview
//
// A tensor is a dense, row-major buffer with a shape and a data type. This package provides:
//   - RawTensor, the value every operation consumes and produces
//   - Shape, DataType and Device definitions
//   - Backend, the primitive set a numeric engine implements
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/opbridge/ops"
//	    "github.com/born-ml/opbridge/tensor"
//	)
//
//	func main() {
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    y, _ := ops.Default().MatMul(x, x, false, false)
//	    vals, _ := tensor.Values[float32](y)
//	}
//
// # Supported Data Types
//
//   - float16, bfloat16, float32, float64 (floating-point)
//   - int8, int16, int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
//
// complex64 and complex128 are recognized by name so that requests for them fail cleanly.
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules:
//
//	(3, 1) op (3, 4) -> (3, 4)
//	(4,)   op (2, 4) -> (2, 4)
package tensor
