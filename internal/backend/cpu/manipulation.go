package cpu

import (
	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
)

// Reshape returns a copy of x with a new shape. At most one dimension may be -1 and is inferred.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	shape = inferShape("reshape", shape, x.NumElements())
	out, err := x.Clone().WithShape(shape)
	if err != nil {
		exceptions.Panicf("reshape: %v", err)
	}
	return out
}

func inferShape(op string, shape tensor.Shape, total int) tensor.Shape {
	shape = shape.Clone()
	unknown, known := -1, 1
	for i, d := range shape {
		switch {
		case d == -1 && unknown >= 0:
			exceptions.Panicf("%s: only one dimension can be -1, got %v", op, shape)
		case d == -1:
			unknown = i
		case d < 0:
			exceptions.Panicf("%s: invalid dimension %d in %v", op, d, shape)
		default:
			known *= d
		}
	}
	if unknown >= 0 {
		if known == 0 || total%known != 0 {
			exceptions.Panicf("%s: cannot infer -1 in %v for %d elements", op, shape, total)
		}
		shape[unknown] = total / known
	}
	if shape.NumElements() != total {
		exceptions.Panicf("%s: cannot reshape %d elements into %v", op, total, shape)
	}
	return shape
}

// Transpose permutes the dimensions of x. A nil perm reverses them.
func (cpu *CPUBackend) Transpose(x *tensor.RawTensor, perm []int) *tensor.RawTensor {
	shape := x.Shape()
	rank := len(shape)
	if perm == nil {
		perm = make([]int, rank)
		for i := range perm {
			perm[i] = rank - 1 - i
		}
	}
	if len(perm) != rank {
		exceptions.Panicf("transpose: perm %v does not match rank %d", perm, rank)
	}
	seen := make([]bool, rank)
	strides := x.Strides()
	outShape := make(tensor.Shape, rank)
	srcStrides := make([]int, rank)
	for i, p := range perm {
		p = normAxis("transpose", p, rank)
		if seen[p] {
			exceptions.Panicf("transpose: perm %v repeats axis %d", perm, p)
		}
		seen[p] = true
		outShape[i] = shape[p]
		srcStrides[i] = strides[p]
	}
	return cpu.gatherBytes("transpose", x, outShape, offsets(outShape, srcStrides))
}

// Concat joins tensors along an existing axis.
func (cpu *CPUBackend) Concat(xs []*tensor.RawTensor, axis int) *tensor.RawTensor {
	if len(xs) == 0 {
		exceptions.Panicf("concat: no tensors given")
	}
	first := xs[0].Shape()
	rank := len(first)
	if rank == 0 {
		exceptions.Panicf("concat: cannot concatenate scalars")
	}
	ax := normAxis("concat", axis, rank)
	outShape := first.Clone()
	outShape[ax] = 0
	for i, x := range xs {
		sameDType("concat", xs[0], x)
		s := x.Shape()
		if len(s) != rank {
			exceptions.Panicf("concat: tensor %d has rank %d, want %d", i, len(s), rank)
		}
		for d := range s {
			if d != ax && s[d] != first[d] {
				exceptions.Panicf("concat: tensor %d has shape %v, incompatible with %v on axis %d", i, s, first, ax)
			}
		}
		outShape[ax] += s[ax]
	}

	out := cpu.alloc("concat", outShape, xs[0].DType())
	outer, _, inner := split3(outShape, ax)
	size := xs[0].DType().Size()
	dst := out.Data()
	pos := 0
	for o := 0; o < outer; o++ {
		for _, x := range xs {
			chunk := x.Shape()[ax] * inner * size
			copy(dst[pos:pos+chunk], x.Data()[o*chunk:(o+1)*chunk])
			pos += chunk
		}
	}
	return out
}

// Stack joins tensors of identical shape along a new axis.
func (cpu *CPUBackend) Stack(xs []*tensor.RawTensor, axis int) *tensor.RawTensor {
	if len(xs) == 0 {
		exceptions.Panicf("stack: no tensors given")
	}
	first := xs[0].Shape()
	ax := normAxis("stack", axis, len(first)+1)
	expanded := append(first[:ax:ax].Clone(), 1)
	expanded = append(expanded, first[ax:]...)

	views := make([]*tensor.RawTensor, len(xs))
	for i, x := range xs {
		if !x.Shape().Equal(first) {
			exceptions.Panicf("stack: tensor %d has shape %v, want %v", i, x.Shape(), first)
		}
		v, err := x.WithShape(expanded)
		if err != nil {
			exceptions.Panicf("stack: %v", err)
		}
		views[i] = v
	}
	return cpu.Concat(views, ax)
}

// Split cuts x along axis into pieces of the given sizes, which must sum to the axis length.
func (cpu *CPUBackend) Split(x *tensor.RawTensor, sizes []int, axis int) []*tensor.RawTensor {
	shape := x.Shape()
	ax := normAxis("split", axis, len(shape))
	total := 0
	for _, s := range sizes {
		if s < 0 {
			exceptions.Panicf("split: negative size in %v", sizes)
		}
		total += s
	}
	if total != shape[ax] {
		exceptions.Panicf("split: sizes %v do not sum to dimension %d of %v", sizes, ax, shape)
	}

	parts := make([]*tensor.RawTensor, len(sizes))
	starts := make([]int, len(shape))
	lens := shape.Clone()
	for i, s := range sizes {
		lens[ax] = s
		parts[i] = cpu.Slice(x, starts, lens)
		starts[ax] += s
	}
	return parts
}

// Slice extracts the block starting at starts with the given sizes. A size of -1 runs to the end.
func (cpu *CPUBackend) Slice(x *tensor.RawTensor, starts, sizes []int) *tensor.RawTensor {
	shape := x.Shape()
	rank := len(shape)
	if len(starts) != rank || len(sizes) != rank {
		exceptions.Panicf("slice: begin %v and size %v must both have rank %d", starts, sizes, rank)
	}
	strides := x.Strides()
	outShape := make(tensor.Shape, rank)
	base := 0
	for d := 0; d < rank; d++ {
		begin, n := starts[d], sizes[d]
		if n == -1 {
			n = shape[d] - begin
		}
		if begin < 0 || n < 0 || begin+n > shape[d] {
			exceptions.Panicf("slice: begin %v size %v out of bounds for %v", starts, sizes, shape)
		}
		outShape[d] = n
		base += begin * strides[d]
	}
	src := offsets(outShape, strides)
	for i := range src {
		src[i] += base
	}
	return cpu.gatherBytes("slice", x, outShape, src)
}

// Tile repeats x multiples[d] times along each dimension d.
func (cpu *CPUBackend) Tile(x *tensor.RawTensor, multiples []int) *tensor.RawTensor {
	shape := x.Shape()
	if len(multiples) != len(shape) {
		exceptions.Panicf("tile: multiples %v must have length %d", multiples, len(shape))
	}
	strides := x.Strides()
	// Walk the interleaved shape [m0, d0, m1, d1, ...]: row-major order over it is the tiled order.
	walk := make(tensor.Shape, 0, 2*len(shape))
	walkStrides := make([]int, 0, 2*len(shape))
	outShape := make(tensor.Shape, len(shape))
	for d, m := range multiples {
		if m < 0 {
			exceptions.Panicf("tile: negative multiple in %v", multiples)
		}
		walk = append(walk, m, shape[d])
		walkStrides = append(walkStrides, 0, strides[d])
		outShape[d] = m * shape[d]
	}
	return cpu.gatherBytes("tile", x, outShape, offsets(walk, walkStrides))
}

// Expand broadcasts x to shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if got := broadcast("expand", x.Shape(), shape); !got.Equal(shape) {
		exceptions.Panicf("expand: cannot broadcast %v to %v", x.Shape(), shape)
	}
	return cpu.gatherBytes("expand", x, shape, offsets(shape, tensor.BroadcastStrides(x.Shape(), shape)))
}

// Band zeroes everything outside a triangle of the two innermost dimensions.
// With upper, element (i, j) is kept when j-i >= diagonal; otherwise when j-i <= diagonal.
func (cpu *CPUBackend) Band(x *tensor.RawTensor, diagonal int, upper bool) *tensor.RawTensor {
	shape := x.Shape()
	rank := len(shape)
	if rank < 2 {
		exceptions.Panicf("band: input must have rank >= 2, got %v", shape)
	}
	rows, cols := shape[rank-2], shape[rank-1]
	out := cpu.alloc("band", shape, x.DType())
	size := x.DType().Size()
	in, dst := x.Data(), out.Data()
	for i := 0; i < x.NumElements(); i++ {
		r, c := (i/cols)%rows, i%cols
		keep := c-r <= diagonal
		if upper {
			keep = c-r >= diagonal
		}
		if keep {
			copy(dst[i*size:(i+1)*size], in[i*size:(i+1)*size])
		}
	}
	return out
}
