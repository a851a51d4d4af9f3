package ops

import (
	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
)

// Reductions take nil axes to reduce over every dimension. Negative axes count from the end.

func (o *Ops) reduce(name string, op tensor.ReduceOp, x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	return o.call(name, func() *tensor.RawTensor {
		return o.backend.Reduce(op, x, axes, keepDims)
	})
}

// ReduceSum sums x over axes.
func (o *Ops) ReduceSum(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	return o.reduce("ReduceSum", tensor.ReduceSum, x, axes, keepDims)
}

// ReduceMean averages x over axes.
func (o *Ops) ReduceMean(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	return o.reduce("ReduceMean", tensor.ReduceMean, x, axes, keepDims)
}

// ReduceMax takes the maximum of x over axes. NaN propagates.
func (o *Ops) ReduceMax(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	return o.reduce("ReduceMax", tensor.ReduceMax, x, axes, keepDims)
}

// ReduceMin takes the minimum of x over axes. NaN propagates.
func (o *Ops) ReduceMin(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	return o.reduce("ReduceMin", tensor.ReduceMin, x, axes, keepDims)
}

// ReduceProd multiplies x over axes.
func (o *Ops) ReduceProd(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	return o.reduce("ReduceProd", tensor.ReduceProd, x, axes, keepDims)
}

// Any reports whether any element over axes is non-zero.
func (o *Ops) Any(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	return o.reduce("Any", tensor.ReduceAny, x, axes, keepDims)
}

// All reports whether every element over axes is non-zero.
func (o *Ops) All(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	return o.reduce("All", tensor.ReduceAll, x, axes, keepDims)
}

// reducedCount is the number of elements folded into each output of a reduction over axes.
func reducedCount(shape tensor.Shape, axes []int) (int, error) {
	if axes == nil {
		return shape.NumElements(), nil
	}
	seen := make(map[int]bool, len(axes))
	count := 1
	for _, ax := range axes {
		a, err := tensor.NormalizeAxis(ax, len(shape))
		if err != nil {
			return 0, err
		}
		if !seen[a] {
			seen[a] = true
			count *= shape[a]
		}
	}
	return count, nil
}

// ReduceVariance computes the unbiased (n - 1) variance of x over axes.
// Non-float inputs produce the default float dtype.
func (o *Ops) ReduceVariance(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	n, err := reducedCount(x.Shape(), axes)
	if err != nil {
		return nil, errors.WithMessage(err, "ReduceVariance")
	}
	if n < 2 {
		return nil, errors.Errorf("ReduceVariance: need at least 2 elements per reduction, got %d", n)
	}
	return o.call("ReduceVariance", func() *tensor.RawTensor {
		return o.variance(x, axes, keepDims, n)
	})
}

func (o *Ops) variance(x *tensor.RawTensor, axes []int, keepDims bool, n int) *tensor.RawTensor {
	b := o.backend
	f := o.floating(x)
	mean := b.Reduce(tensor.ReduceMean, f, axes, true)
	sq := b.Unary(tensor.UnarySquare, b.Binary(tensor.BinarySub, f, mean))
	sum := b.Reduce(tensor.ReduceSum, sq, axes, keepDims)
	return b.Binary(tensor.BinaryDiv, sum, o.scalar(float64(n-1), f.DType()))
}

// ReduceStd computes the unbiased standard deviation of x over axes.
func (o *Ops) ReduceStd(x *tensor.RawTensor, axes []int, keepDims bool) (*tensor.RawTensor, error) {
	n, err := reducedCount(x.Shape(), axes)
	if err != nil {
		return nil, errors.WithMessage(err, "ReduceStd")
	}
	if n < 2 {
		return nil, errors.Errorf("ReduceStd: need at least 2 elements per reduction, got %d", n)
	}
	return o.call("ReduceStd", func() *tensor.RawTensor {
		return o.backend.Unary(tensor.UnarySqrt, o.variance(x, axes, keepDims, n))
	})
}

func indexDType(dtype tensor.DataType) tensor.DataType {
	if dtype == tensor.InvalidDType {
		return tensor.Int64
	}
	return dtype
}

// Argmax returns the index of the first maximum along axis. dtype is Int32 or Int64
// (InvalidDType means Int64).
func (o *Ops) Argmax(x *tensor.RawTensor, axis int, dtype tensor.DataType) (*tensor.RawTensor, error) {
	dtype = indexDType(dtype)
	return o.call("Argmax", func() *tensor.RawTensor {
		return o.backend.ArgReduce(tensor.ArgMax, x, axis, dtype)
	})
}

// Argmin returns the index of the first minimum along axis.
func (o *Ops) Argmin(x *tensor.RawTensor, axis int, dtype tensor.DataType) (*tensor.RawTensor, error) {
	dtype = indexDType(dtype)
	return o.call("Argmin", func() *tensor.RawTensor {
		return o.backend.ArgReduce(tensor.ArgMin, x, axis, dtype)
	})
}

// CountNonzero counts the non-zero elements of x over axes. InvalidDType means Int64.
func (o *Ops) CountNonzero(x *tensor.RawTensor, axes []int, keepDims bool, dtype tensor.DataType) (*tensor.RawTensor, error) {
	dtype = indexDType(dtype)
	return o.call("CountNonzero", func() *tensor.RawTensor {
		b := o.backend
		nonzero := b.Cast(x, tensor.Bool)
		return b.Reduce(tensor.ReduceSum, b.Cast(nonzero, dtype), axes, keepDims)
	})
}

// CumSum returns the running sum along axis.
func (o *Ops) CumSum(x *tensor.RawTensor, axis int, exclusive, reverse bool) (*tensor.RawTensor, error) {
	return o.call("CumSum", func() *tensor.RawTensor {
		return o.backend.Cumulative(tensor.CumSum, x, axis, exclusive, reverse)
	})
}

// CumProd returns the running product along axis.
func (o *Ops) CumProd(x *tensor.RawTensor, axis int, exclusive, reverse bool) (*tensor.RawTensor, error) {
	return o.call("CumProd", func() *tensor.RawTensor {
		return o.backend.Cumulative(tensor.CumProd, x, axis, exclusive, reverse)
	})
}

// Argsort returns the int64 indices that stably sort x along axis.
func (o *Ops) Argsort(x *tensor.RawTensor, axis int, descending bool) (*tensor.RawTensor, error) {
	return o.call("Argsort", func() *tensor.RawTensor {
		return o.backend.Argsort(x, axis, descending)
	})
}

// L2Normalize scales x along axes to unit L2 norm: x / sqrt(max(sum(x^2), epsilon)).
func (o *Ops) L2Normalize(x *tensor.RawTensor, axes []int, epsilon float64) (*tensor.RawTensor, error) {
	return o.call("L2Normalize", func() *tensor.RawTensor {
		b := o.backend
		f := o.floating(x)
		dt := f.DType()
		sum := b.Reduce(tensor.ReduceSum, b.Unary(tensor.UnarySquare, f), axes, true)
		inv := b.Unary(tensor.UnaryRsqrt, b.Binary(tensor.BinaryMax, sum, o.scalar(epsilon, dt)))
		return b.Binary(tensor.BinaryMul, f, inv)
	})
}
