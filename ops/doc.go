// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops is the framework-facing operation set of opbridge.
//
// # Overview
//
// Ops forwards a stable set of tensor operations (MatMul, Reshape, Concat, ReduceMean,
// Pad, ...) to a swappable engine implementing tensor.Backend. Each method validates its
// arguments, reshapes where the engine expects a different convention, and forwards.
//
// Every method returns (result, error). Engine failures become errors prefixed with the
// operation name. Operations the adapter exposes but cannot serve return ErrNotImplemented:
//
//	if _, err := o.NCELoss(w, b, labels, inputs, 64, 10000); errors.Is(err, ops.ErrNotImplemented) {
//	    // fall back
//	}
//
// # Basic Usage
//
//	o := ops.Default() // engine from OPBRIDGE_BACKEND, or "cpu"
//	x, _ := o.ConvertToTensor([][]float32{{1, 2}, {3, 4}}, tensor.InvalidDType)
//	y, _ := o.MatMul(x, x, false, true)
//	m, _ := o.ReduceMean(y, []int{-1}, false)
//
// # Callables
//
// Several operations also exist as objects that bind their arguments once:
//
//	pad, _ := o.NewPad([][2]int{{0, 0}, {1, 1}, {2, 2}, {0, 0}}, "REFLECT", 0)
//	y, _ := pad.Call(x) // x is NHWC
//
// Callables never change after construction, so they may be shared between goroutines.
//
// # Padding
//
// Pad takes one (before, after) pair per dimension of a channels-last input (NLC, NHWC or
// NDHWC, picked by rank). CorrectPaddings shows how the pairs map onto the engine's flat
// list, which runs from the last spatial dimension to the first.
package ops
