// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the ops adapter.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Every storable dtype, including float16 and bfloat16
//   - gonum BLAS matrix multiplication with batch broadcasting
//   - NumPy-compatible broadcasting
//
// Importing the package registers the backend under the name "cpu".
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/opbridge/backend/cpu"
//	    "github.com/born-ml/opbridge/ops"
//	)
//
//	func main() {
//	    o := ops.New(cpu.New())
//	    x, _ := o.Ones(tensor.Shape{2, 3}, tensor.Float32)
//	    y, _ := o.ReduceSum(x, nil, false)
//	}
//
// # Configuration
//
// NewWithConfig and the OPBRIDGE_BACKEND variable ("cpu:<options>") accept:
//   - workers=N: number of worker goroutines (1 disables parallelism)
//   - minchunk=N: minimum elements handled by one worker
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates
// its own output and does not share mutable state.
package cpu
