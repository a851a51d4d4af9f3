package cpu

import (
	"math"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
)

// indexValues reads an integer index tensor.
func indexValues(op string, indices *tensor.RawTensor) []int64 {
	if !indices.DType().IsInteger() {
		exceptions.Panicf("%s: indices must be integers, got %s", op, indices.DType())
	}
	return toInt64s(indices)
}

// Gather picks slices of x along axis. The result shape is
// x.shape[:axis] + indices.shape + x.shape[axis+1:].
func (cpu *CPUBackend) Gather(x, indices *tensor.RawTensor, axis int) *tensor.RawTensor {
	shape := x.Shape()
	ax := normAxis("gather", axis, len(shape))
	idx := indexValues("gather", indices)
	outer, dim, inner := split3(shape, ax)

	outShape := append(shape[:ax:ax].Clone(), indices.Shape()...)
	outShape = append(outShape, shape[ax+1:]...)

	src := make([]int, 0, outShape.NumElements())
	for o := 0; o < outer; o++ {
		for _, k := range idx {
			if k < 0 || int(k) >= dim {
				exceptions.Panicf("gather: index %d out of range [0, %d)", k, dim)
			}
			base := (o*dim + int(k)) * inner
			for in := 0; in < inner; in++ {
				src = append(src, base+in)
			}
		}
	}
	return cpu.gatherBytes("gather", x, outShape, src)
}

// GatherND picks slices of x addressed by the last dimension of indices.
// The first batchDims dimensions of x and indices must match and are iterated together.
func (cpu *CPUBackend) GatherND(x, indices *tensor.RawTensor, batchDims int) *tensor.RawTensor {
	shape, ishape := x.Shape(), indices.Shape()
	if len(ishape) == 0 {
		exceptions.Panicf("gather_nd: indices must have rank >= 1")
	}
	if batchDims < 0 || batchDims >= len(ishape) || batchDims > len(shape) {
		exceptions.Panicf("gather_nd: batch_dims %d invalid for shapes %v and %v", batchDims, shape, ishape)
	}
	for d := 0; d < batchDims; d++ {
		if shape[d] != ishape[d] {
			exceptions.Panicf("gather_nd: batch dimension %d differs: %v vs %v", d, shape, ishape)
		}
	}
	depth := ishape[len(ishape)-1]
	if batchDims+depth > len(shape) {
		exceptions.Panicf("gather_nd: index depth %d too large for %v with batch_dims %d", depth, shape, batchDims)
	}

	// Result: indices.shape[:-1] + x.shape[batchDims+depth:].
	outShape := ishape[: len(ishape)-1 : len(ishape)-1].Clone()
	outShape = append(outShape, shape[batchDims+depth:]...)
	inner := tensor.Shape(shape[batchDims+depth:]).NumElements()
	strides := x.Strides()

	batch := tensor.Shape(shape[:batchDims]).NumElements()
	batchStride := 1
	if batchDims > 0 {
		batchStride = strides[batchDims-1]
	}
	perBatch := tensor.Shape(ishape[batchDims : len(ishape)-1]).NumElements()

	idx := indexValues("gather_nd", indices)
	src := make([]int, 0, outShape.NumElements())
	for b := 0; b < batch; b++ {
		for p := 0; p < perBatch; p++ {
			row := idx[(b*perBatch+p)*depth : (b*perBatch+p+1)*depth]
			base := b * batchStride
			for j, k := range row {
				dim := shape[batchDims+j]
				if k < 0 || int(k) >= dim {
					exceptions.Panicf("gather_nd: index %d out of range [0, %d)", k, dim)
				}
				base += int(k) * strides[batchDims+j]
			}
			for in := 0; in < inner; in++ {
				src = append(src, base+in)
			}
		}
	}
	return cpu.gatherBytes("gather_nd", x, outShape, src)
}

// OneHot expands integer indices into a new axis of size depth.
// Indices outside [0, depth) produce a row of off values.
func (cpu *CPUBackend) OneHot(indices *tensor.RawTensor, depth int, on, off float64, axis int, dtype tensor.DataType) *tensor.RawTensor {
	if depth < 0 {
		exceptions.Panicf("one_hot: depth must be >= 0, got %d", depth)
	}
	ishape := indices.Shape()
	ax := normAxis("one_hot", axis, len(ishape)+1)
	outShape := append(ishape[:ax:ax].Clone(), depth)
	outShape = append(outShape, ishape[ax:]...)

	idx := indexValues("one_hot", indices)
	outer, _, inner := split3(outShape, ax)
	vals := make([]float64, outShape.NumElements())
	for i := range vals {
		vals[i] = off
	}
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			k := idx[o*inner+in]
			if k >= 0 && int(k) < depth {
				vals[(o*depth+int(k))*inner+in] = on
			}
		}
	}
	out := cpu.alloc("one_hot", outShape, dtype)
	storeFloat64s(out, vals)
	return out
}

// Segment reduces the rows of x into numSegments buckets selected by the 1-D ids tensor.
// Empty segments are 0 and negative ids are skipped.
func (cpu *CPUBackend) Segment(op tensor.SegmentOp, x, ids *tensor.RawTensor, numSegments int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) == 0 {
		exceptions.Panicf("segment: data must have rank >= 1")
	}
	if ids.Rank() != 1 || ids.Shape()[0] != shape[0] {
		exceptions.Panicf("segment: ids shape %v must be [%d]", ids.Shape(), shape[0])
	}
	if x.DType() == tensor.Bool {
		exceptions.Panicf("segment: unsupported dtype bool")
	}
	seg := indexValues("segment", ids)
	if numSegments < 0 {
		for _, s := range seg {
			numSegments = max(numSegments, int(s)+1)
		}
	}

	inner := tensor.Shape(shape[1:]).NumElements()
	outShape := append(tensor.Shape{numSegments}, shape[1:]...)
	vals := toFloat64s(x)
	res := make([]float64, numSegments*inner)
	counts := make([]int, numSegments)
	for i := range res {
		switch op {
		case tensor.SegmentMax:
			res[i] = math.Inf(-1)
		case tensor.SegmentMin:
			res[i] = math.Inf(1)
		case tensor.SegmentProd:
			res[i] = 1
		}
	}
	for row, s := range seg {
		if s < 0 {
			continue
		}
		if int(s) >= numSegments {
			exceptions.Panicf("segment: id %d out of range [0, %d)", s, numSegments)
		}
		counts[s]++
		for in := 0; in < inner; in++ {
			v, r := vals[row*inner+in], &res[int(s)*inner+in]
			switch op {
			case tensor.SegmentSum, tensor.SegmentMean:
				*r += v
			case tensor.SegmentProd:
				*r *= v
			case tensor.SegmentMax:
				*r = math.Max(*r, v)
			case tensor.SegmentMin:
				*r = math.Min(*r, v)
			}
		}
	}
	for s, c := range counts {
		for in := 0; in < inner; in++ {
			r := &res[s*inner+in]
			switch {
			case c == 0:
				*r = 0
			case op == tensor.SegmentMean:
				*r /= float64(c)
			}
		}
	}
	out := cpu.alloc("segment", outShape, x.DType())
	storeFloat64s(out, res)
	return out
}
