// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/opbridge/internal/tensor"

// Backend is the primitive set a numeric engine implements.
// The ops package forwards every operation to one of these methods.
//
// Implementations:
//   - backend/cpu: Pure Go with gonum BLAS
//
// Engines report invalid input by panicking with an error; ops recovers the panic
// and returns it to the caller, so engine authors never return errors directly.
//
// Example:
//
//	import (
//	    "github.com/born-ml/opbridge/backend/cpu"
//	    "github.com/born-ml/opbridge/ops"
//	)
//
//	o := ops.New(cpu.New())
//	z, err := o.Add(x, y)  // Uses Backend.Binary under the hood
type Backend = tensor.Backend

// Primitive selectors used by Backend methods.
type (
	UnaryOp      = tensor.UnaryOp
	BinaryOp     = tensor.BinaryOp
	CompareOp    = tensor.CompareOp
	LogicalOp    = tensor.LogicalOp
	ReduceOp     = tensor.ReduceOp
	ArgOp        = tensor.ArgOp
	CumulativeOp = tensor.CumulativeOp
	SegmentOp    = tensor.SegmentOp
	PadMode      = tensor.PadMode
	InterpMode   = tensor.InterpMode
	Layout       = tensor.Layout
)

// Unary operations.
const (
	UnaryAbs        UnaryOp = tensor.UnaryAbs
	UnaryNeg        UnaryOp = tensor.UnaryNeg
	UnarySign       UnaryOp = tensor.UnarySign
	UnaryExp        UnaryOp = tensor.UnaryExp
	UnaryLog        UnaryOp = tensor.UnaryLog
	UnarySqrt       UnaryOp = tensor.UnarySqrt
	UnaryRsqrt      UnaryOp = tensor.UnaryRsqrt
	UnarySquare     UnaryOp = tensor.UnarySquare
	UnaryReciprocal UnaryOp = tensor.UnaryReciprocal
	UnaryFloor      UnaryOp = tensor.UnaryFloor
	UnaryCeil       UnaryOp = tensor.UnaryCeil
	UnaryRound      UnaryOp = tensor.UnaryRound
	UnarySin        UnaryOp = tensor.UnarySin
	UnaryCos        UnaryOp = tensor.UnaryCos
	UnaryTan        UnaryOp = tensor.UnaryTan
	UnaryAsin       UnaryOp = tensor.UnaryAsin
	UnaryAcos       UnaryOp = tensor.UnaryAcos
	UnaryAtan       UnaryOp = tensor.UnaryAtan
	UnarySinh       UnaryOp = tensor.UnarySinh
	UnaryCosh       UnaryOp = tensor.UnaryCosh
	UnaryTanh       UnaryOp = tensor.UnaryTanh
	UnaryAsinh      UnaryOp = tensor.UnaryAsinh
	UnaryAcosh      UnaryOp = tensor.UnaryAcosh
	UnaryAtanh      UnaryOp = tensor.UnaryAtanh
	UnarySigmoid    UnaryOp = tensor.UnarySigmoid
	UnaryLogSigmoid UnaryOp = tensor.UnaryLogSigmoid
	UnarySoftplus   UnaryOp = tensor.UnarySoftplus
	UnaryIsNaN      UnaryOp = tensor.UnaryIsNaN
	UnaryIsInf      UnaryOp = tensor.UnaryIsInf
)

// Binary operations.
const (
	BinaryAdd      BinaryOp = tensor.BinaryAdd
	BinarySub      BinaryOp = tensor.BinarySub
	BinaryMul      BinaryOp = tensor.BinaryMul
	BinaryDiv      BinaryOp = tensor.BinaryDiv
	BinaryPow      BinaryOp = tensor.BinaryPow
	BinaryMax      BinaryOp = tensor.BinaryMax
	BinaryMin      BinaryOp = tensor.BinaryMin
	BinaryFloorDiv BinaryOp = tensor.BinaryFloorDiv
	BinaryFloorMod BinaryOp = tensor.BinaryFloorMod
)

// Comparisons.
const (
	CompareEqual        CompareOp = tensor.CompareEqual
	CompareNotEqual     CompareOp = tensor.CompareNotEqual
	CompareGreater      CompareOp = tensor.CompareGreater
	CompareGreaterEqual CompareOp = tensor.CompareGreaterEqual
	CompareLess         CompareOp = tensor.CompareLess
	CompareLessEqual    CompareOp = tensor.CompareLessEqual
)

// Logical operations.
const (
	LogicalAnd LogicalOp = tensor.LogicalAnd
	LogicalOr  LogicalOp = tensor.LogicalOr
	LogicalXor LogicalOp = tensor.LogicalXor
)

// Reductions.
const (
	ReduceSum  ReduceOp = tensor.ReduceSum
	ReduceMean ReduceOp = tensor.ReduceMean
	ReduceMax  ReduceOp = tensor.ReduceMax
	ReduceMin  ReduceOp = tensor.ReduceMin
	ReduceProd ReduceOp = tensor.ReduceProd
	ReduceAny  ReduceOp = tensor.ReduceAny
	ReduceAll  ReduceOp = tensor.ReduceAll
)

// Index reductions and scans.
const (
	ArgMax  ArgOp        = tensor.ArgMax
	ArgMin  ArgOp        = tensor.ArgMin
	CumSum  CumulativeOp = tensor.CumSum
	CumProd CumulativeOp = tensor.CumProd
)

// Segment reductions.
const (
	SegmentSum  SegmentOp = tensor.SegmentSum
	SegmentMean SegmentOp = tensor.SegmentMean
	SegmentMax  SegmentOp = tensor.SegmentMax
	SegmentMin  SegmentOp = tensor.SegmentMin
	SegmentProd SegmentOp = tensor.SegmentProd
)

// Padding modes.
const (
	PadConstant  PadMode = tensor.PadConstant
	PadReflect   PadMode = tensor.PadReflect
	PadReplicate PadMode = tensor.PadReplicate
	PadCircular  PadMode = tensor.PadCircular
	PadSymmetric PadMode = tensor.PadSymmetric
)

// Interpolation kernels.
const (
	InterpNearest InterpMode = tensor.InterpNearest
	InterpLinear  InterpMode = tensor.InterpLinear
)

// Layouts of batched feature maps.
const (
	NCL   Layout = tensor.NCL
	NLC   Layout = tensor.NLC
	NCHW  Layout = tensor.NCHW
	NHWC  Layout = tensor.NHWC
	NCDHW Layout = tensor.NCDHW
	NDHWC Layout = tensor.NDHWC
)

// ParseLayout resolves a layout name such as "NHWC", or "channels_last"/"channels_first" for a rank.
func ParseLayout(name string, rank int) (Layout, bool) {
	return tensor.ParseLayout(name, rank)
}
