package ops

import (
	"strings"

	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
)

// Reshape returns x with a new shape holding the same elements. One dimension may be -1.
func (o *Ops) Reshape(x *tensor.RawTensor, shape tensor.Shape) (*tensor.RawTensor, error) {
	return o.call("Reshape", func() *tensor.RawTensor {
		return o.backend.Reshape(x, shape)
	})
}

// FlattenReshape collapses every dimension but the first: [N, ...] becomes [N, prod(...)].
func (o *Ops) FlattenReshape(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	shape := x.Shape()
	if len(shape) == 0 {
		return nil, errors.New("FlattenReshape: input must have rank >= 1")
	}
	rest := tensor.Shape(shape[1:]).NumElements()
	return o.call("FlattenReshape", func() *tensor.RawTensor {
		return o.backend.Reshape(x, tensor.Shape{shape[0], rest})
	})
}

// Concat joins xs along an existing axis.
func (o *Ops) Concat(xs []*tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	return o.call("Concat", func() *tensor.RawTensor {
		return o.backend.Concat(xs, axis)
	})
}

// Stack joins same-shaped xs along a new axis.
func (o *Ops) Stack(xs []*tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	return o.call("Stack", func() *tensor.RawTensor {
		return o.backend.Stack(xs, axis)
	})
}

// Unstack splits x along axis into tensors of rank-1. num, when positive, must equal
// the size of axis.
func (o *Ops) Unstack(x *tensor.RawTensor, axis, num int) ([]*tensor.RawTensor, error) {
	ax, err := tensor.NormalizeAxis(axis, x.Rank())
	if err != nil {
		return nil, errors.WithMessage(err, "Unstack")
	}
	dim := x.Shape()[ax]
	if num > 0 && num != dim {
		return nil, errors.Errorf("Unstack: num %d does not match dimension %d of size %d", num, ax, dim)
	}
	outShape := make(tensor.Shape, 0, x.Rank()-1)
	outShape = append(outShape, x.Shape()[:ax]...)
	outShape = append(outShape, x.Shape()[ax+1:]...)

	sizes := make([]int, dim)
	for i := range sizes {
		sizes[i] = 1
	}
	return o.callN("Unstack", func() []*tensor.RawTensor {
		parts := o.backend.Split(x, sizes, ax)
		for i, p := range parts {
			parts[i] = o.backend.Reshape(p, outShape)
		}
		return parts
	})
}

// Split divides x along axis into num equal parts.
func (o *Ops) Split(x *tensor.RawTensor, num, axis int) ([]*tensor.RawTensor, error) {
	ax, err := tensor.NormalizeAxis(axis, x.Rank())
	if err != nil {
		return nil, errors.WithMessage(err, "Split")
	}
	dim := x.Shape()[ax]
	if num <= 0 || dim%num != 0 {
		return nil, errors.Errorf("Split: dimension %d of size %d cannot be split into %d equal parts", ax, dim, num)
	}
	sizes := make([]int, num)
	for i := range sizes {
		sizes[i] = dim / num
	}
	return o.callN("Split", func() []*tensor.RawTensor {
		return o.backend.Split(x, sizes, ax)
	})
}

// SplitSizes divides x along axis into parts of the given sizes. One size may be -1,
// taking whatever remains.
func (o *Ops) SplitSizes(x *tensor.RawTensor, sizes []int, axis int) ([]*tensor.RawTensor, error) {
	ax, err := tensor.NormalizeAxis(axis, x.Rank())
	if err != nil {
		return nil, errors.WithMessage(err, "SplitSizes")
	}
	resolved := append([]int(nil), sizes...)
	infer, known := -1, 0
	for i, s := range resolved {
		switch {
		case s == -1 && infer >= 0:
			return nil, errors.Errorf("SplitSizes: only one size can be -1, got %v", sizes)
		case s == -1:
			infer = i
		default:
			known += s
		}
	}
	if infer >= 0 {
		resolved[infer] = x.Shape()[ax] - known
	}
	return o.callN("SplitSizes", func() []*tensor.RawTensor {
		return o.backend.Split(x, resolved, ax)
	})
}

// ExpandDims inserts a size-1 dimension at axis, which may range over [-rank-1, rank].
func (o *Ops) ExpandDims(x *tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	ax, err := tensor.NormalizeAxis(axis, x.Rank()+1)
	if err != nil {
		return nil, errors.WithMessage(err, "ExpandDims")
	}
	shape := make(tensor.Shape, 0, x.Rank()+1)
	shape = append(shape, x.Shape()[:ax]...)
	shape = append(shape, 1)
	shape = append(shape, x.Shape()[ax:]...)
	return o.call("ExpandDims", func() *tensor.RawTensor {
		return o.backend.Reshape(x, shape)
	})
}

// Squeeze removes size-1 dimensions: the given axes, or all of them when axes is nil.
func (o *Ops) Squeeze(x *tensor.RawTensor, axes []int) (*tensor.RawTensor, error) {
	shape := x.Shape()
	drop := make([]bool, len(shape))
	if axes == nil {
		for i, d := range shape {
			drop[i] = d == 1
		}
	}
	for _, a := range axes {
		ax, err := tensor.NormalizeAxis(a, len(shape))
		if err != nil {
			return nil, errors.WithMessage(err, "Squeeze")
		}
		if shape[ax] != 1 {
			return nil, errors.Errorf("Squeeze: dimension %d has size %d, not 1", ax, shape[ax])
		}
		drop[ax] = true
	}
	out := make(tensor.Shape, 0, len(shape))
	for i, d := range shape {
		if !drop[i] {
			out = append(out, d)
		}
	}
	return o.call("Squeeze", func() *tensor.RawTensor {
		return o.backend.Reshape(x, out)
	})
}

// Tile repeats x multiples[i] times along dimension i.
func (o *Ops) Tile(x *tensor.RawTensor, multiples []int) (*tensor.RawTensor, error) {
	return o.call("Tile", func() *tensor.RawTensor {
		return o.backend.Tile(x, multiples)
	})
}

// Transpose permutes the dimensions of x; a nil perm reverses them.
// Conjugation is not supported.
func (o *Ops) Transpose(x *tensor.RawTensor, perm []int, conjugate bool) (*tensor.RawTensor, error) {
	if conjugate {
		return nil, notImplemented("Transpose", "conjugate")
	}
	return o.call("Transpose", func() *tensor.RawTensor {
		return o.backend.Transpose(x, perm)
	})
}

// Cast converts x to dtype. Float to integer conversion truncates toward zero.
// Complex dtypes return ErrNotImplemented.
func (o *Ops) Cast(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if dtype.IsComplex() {
		return nil, notImplemented("Cast", "complex dtype "+dtype.String())
	}
	return o.call("Cast", func() *tensor.RawTensor {
		return o.backend.Cast(x, dtype)
	})
}

// Slice extracts sizes[i] elements starting at starts[i] along every dimension.
// A size of -1 takes everything to the end of the dimension.
func (o *Ops) Slice(x *tensor.RawTensor, starts, sizes []int) (*tensor.RawTensor, error) {
	return o.call("Slice", func() *tensor.RawTensor {
		return o.backend.Slice(x, starts, sizes)
	})
}

// Meshgrid broadcasts 1-D coordinate vectors into N-D grids. indexing is "xy"
// (Cartesian, the first two output dimensions swapped) or "ij" (matrix).
func (o *Ops) Meshgrid(indexing string, xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	indexing = strings.ToLower(indexing)
	if indexing != "xy" && indexing != "ij" {
		return nil, errors.Errorf("Meshgrid: indexing must be \"xy\" or \"ij\", got %q", indexing)
	}
	n := len(xs)
	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}
	if indexing == "xy" && n >= 2 {
		pos[0], pos[1] = 1, 0
	}

	full := make(tensor.Shape, n)
	for i, x := range xs {
		if x.Rank() != 1 {
			return nil, errors.Errorf("Meshgrid: input %d must be 1-D, got shape %v", i, x.Shape())
		}
		full[pos[i]] = x.Shape()[0]
	}
	return o.callN("Meshgrid", func() []*tensor.RawTensor {
		out := make([]*tensor.RawTensor, n)
		for i, x := range xs {
			line := make(tensor.Shape, n)
			for d := range line {
				line[d] = 1
			}
			line[pos[i]] = full[pos[i]]
			out[i] = o.backend.Expand(o.backend.Reshape(x, line), full)
		}
		return out
	})
}
