package cpu

import (
	"cmp"
	"math"
	"slices"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
	"gonum.org/v1/gonum/floats"
)

// reducePlan maps every input element to its output slot.
type reducePlan struct {
	outShape tensor.Shape
	slot     []int // input flat index -> output flat index
	count    int   // elements folded into each output slot
}

func planReduce(op string, shape tensor.Shape, axes []int, keepDims bool) reducePlan {
	rank := len(shape)
	reduced := make([]bool, rank)
	if axes == nil {
		for i := range reduced {
			reduced[i] = true
		}
	}
	for _, ax := range axes {
		reduced[normAxis(op, ax, rank)] = true
	}

	keep := shape.Clone()
	out := make(tensor.Shape, 0, rank)
	count := 1
	for d := range shape {
		if reduced[d] {
			keep[d] = 1
			count *= shape[d]
			if keepDims {
				out = append(out, 1)
			}
			continue
		}
		out = append(out, shape[d])
	}

	keepStrides := keep.ComputeStrides()
	for d := range keepStrides {
		if reduced[d] {
			keepStrides[d] = 0
		}
	}
	return reducePlan{outShape: out, slot: offsets(shape, keepStrides), count: count}
}

// Reduce folds x over axes. Mean of integers truncates; Any and All return bool.
func (cpu *CPUBackend) Reduce(op tensor.ReduceOp, x *tensor.RawTensor, axes []int, keepDims bool) *tensor.RawTensor {
	p := planReduce("reduce", x.Shape(), axes, keepDims)
	n := p.outShape.NumElements()

	switch op {
	case tensor.ReduceAny, tensor.ReduceAll:
		out := cpu.alloc("reduce", p.outShape, tensor.Bool)
		res := out.AsBool()
		if op == tensor.ReduceAll {
			for i := range res {
				res[i] = true
			}
		}
		for i, v := range toBools(x) {
			if op == tensor.ReduceAny {
				res[p.slot[i]] = res[p.slot[i]] || v
			} else {
				res[p.slot[i]] = res[p.slot[i]] && v
			}
		}
		return out
	}

	if x.DType() == tensor.Bool {
		exceptions.Panicf("reduce: unsupported dtype bool")
	}
	if (op == tensor.ReduceMax || op == tensor.ReduceMin) && p.count == 0 {
		exceptions.Panicf("reduce: max/min over an empty dimension of %v", x.Shape())
	}
	out := cpu.alloc("reduce", p.outShape, x.DType())

	if integral(x.DType()) && op != tensor.ReduceMean {
		res := make([]int64, n)
		switch op {
		case tensor.ReduceProd:
			for i := range res {
				res[i] = 1
			}
		case tensor.ReduceMax:
			for i := range res {
				res[i] = math.MinInt64
			}
		case tensor.ReduceMin:
			for i := range res {
				res[i] = math.MaxInt64
			}
		}
		for i, v := range toInt64s(x) {
			s := p.slot[i]
			switch op {
			case tensor.ReduceSum:
				res[s] += v
			case tensor.ReduceProd:
				res[s] *= v
			case tensor.ReduceMax:
				res[s] = max(res[s], v)
			case tensor.ReduceMin:
				res[s] = min(res[s], v)
			}
		}
		storeInt64s(out, res)
		return out
	}

	vals := toFloat64s(x)
	res := make([]float64, n)
	switch op {
	case tensor.ReduceProd:
		floats.AddConst(1, res)
	case tensor.ReduceMax:
		floats.AddConst(math.Inf(-1), res)
	case tensor.ReduceMin:
		floats.AddConst(math.Inf(1), res)
	}
	for i, v := range vals {
		s := p.slot[i]
		switch op {
		case tensor.ReduceSum, tensor.ReduceMean:
			res[s] += v
		case tensor.ReduceProd:
			res[s] *= v
		case tensor.ReduceMax:
			if v > res[s] || math.IsNaN(v) {
				res[s] = v
			}
		case tensor.ReduceMin:
			if v < res[s] || math.IsNaN(v) {
				res[s] = v
			}
		}
	}
	if op == tensor.ReduceMean {
		floats.Scale(1/float64(p.count), res)
	}
	storeFloat64s(out, res)
	return out
}

// ArgReduce returns the index of the first maximum (or minimum) along axis.
func (cpu *CPUBackend) ArgReduce(op tensor.ArgOp, x *tensor.RawTensor, axis int, dtype tensor.DataType) *tensor.RawTensor {
	if dtype != tensor.Int32 && dtype != tensor.Int64 {
		exceptions.Panicf("argreduce: index dtype must be int32 or int64, got %s", dtype)
	}
	shape := x.Shape()
	ax := normAxis("argreduce", axis, len(shape))
	if shape[ax] == 0 {
		exceptions.Panicf("argreduce: empty axis %d of %v", ax, shape)
	}
	outer, dim, inner := split3(shape, ax)

	outShape := append(shape[:ax:ax].Clone(), shape[ax+1:]...)
	out := cpu.alloc("argreduce", outShape, dtype)
	vals := toFloat64s(x)
	res := make([]int64, outer*inner)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*dim*inner + in
			best, bestIdx := vals[base], 0
			for d := 1; d < dim; d++ {
				v := vals[base+d*inner]
				if math.IsNaN(best) {
					break
				}
				if math.IsNaN(v) || (op == tensor.ArgMax && v > best) || (op == tensor.ArgMin && v < best) {
					best, bestIdx = v, d
				}
			}
			res[o*inner+in] = int64(bestIdx)
		}
	}
	storeInt64s(out, res)
	return out
}

// split3 returns the product of dims before axis, the axis size, and the product after it.
func split3(shape tensor.Shape, axis int) (outer, dim, inner int) {
	outer, inner = 1, 1
	for _, d := range shape[:axis] {
		outer *= d
	}
	for _, d := range shape[axis+1:] {
		inner *= d
	}
	return outer, shape[axis], inner
}

// Cumulative computes a running sum or product along axis.
// exclusive shifts the scan by one position; reverse scans from the end.
func (cpu *CPUBackend) Cumulative(op tensor.CumulativeOp, x *tensor.RawTensor, axis int, exclusive, reverse bool) *tensor.RawTensor {
	if x.DType() == tensor.Bool {
		exceptions.Panicf("cumulative: unsupported dtype bool")
	}
	shape := x.Shape()
	ax := normAxis("cumulative", axis, len(shape))
	outer, dim, inner := split3(shape, ax)
	out := cpu.alloc("cumulative", shape, x.DType())
	if integral(x.DType()) {
		storeInt64s(out, scan(op, toInt64s(x), outer, dim, inner, exclusive, reverse))
	} else {
		storeFloat64s(out, scan(op, toFloat64s(x), outer, dim, inner, exclusive, reverse))
	}
	return out
}

func scan[T int64 | float64](op tensor.CumulativeOp, src []T, outer, dim, inner int, exclusive, reverse bool) []T {
	res := make([]T, len(src))
	identity := T(0)
	if op == tensor.CumProd {
		identity = 1
	}
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			acc := identity
			for step := 0; step < dim; step++ {
				d := step
				if reverse {
					d = dim - 1 - step
				}
				i := o*dim*inner + d*inner + in
				if exclusive {
					res[i] = acc
				}
				if op == tensor.CumProd {
					acc *= src[i]
				} else {
					acc += src[i]
				}
				if !exclusive {
					res[i] = acc
				}
			}
		}
	}
	return res
}

// Argsort returns int64 indices that stably sort x along axis.
func (cpu *CPUBackend) Argsort(x *tensor.RawTensor, axis int, descending bool) *tensor.RawTensor {
	shape := x.Shape()
	ax := normAxis("argsort", axis, len(shape))
	outer, dim, inner := split3(shape, ax)
	vals := toFloat64s(x)
	out := cpu.alloc("argsort", shape, tensor.Int64)
	res := out.AsInt64()

	order := make([]int64, dim)
	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			base := o*dim*inner + in
			for d := range order {
				order[d] = int64(d)
			}
			slices.SortStableFunc(order, func(i, j int64) int {
				c := cmp.Compare(vals[base+int(i)*inner], vals[base+int(j)*inner])
				if descending {
					return -c
				}
				return c
			})
			for d, idx := range order {
				res[base+d*inner] = idx
			}
		}
	}
	return out
}
