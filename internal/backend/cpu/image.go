package cpu

import (
	"math"

	"github.com/born-ml/opbridge/internal/parallel"
	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
)

// tableGather builds a tensor of outShape where each dimension d reads source index tables[d][j].
// A -1 entry leaves the element as found in base (or zero when base is nil).
func (cpu *CPUBackend) tableGather(op string, x *tensor.RawTensor, outShape tensor.Shape, tables [][]int, base *tensor.RawTensor) *tensor.RawTensor {
	out := base
	if out == nil {
		out = cpu.alloc(op, outShape, x.DType())
	}
	size := x.DType().Size()
	strides := x.Strides()
	in, dst := x.Data(), out.Data()
	idx := make([]int, len(outShape))
	for i := 0; i < outShape.NumElements(); i++ {
		src := 0
		for d, j := range idx {
			s := tables[d][j]
			if s < 0 {
				src = -1
				break
			}
			src += s * strides[d]
		}
		if src >= 0 {
			copy(dst[i*size:(i+1)*size], in[src*size:(src+1)*size])
		}
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < outShape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}

func identityTable(n int) []int {
	t := make([]int, n)
	for i := range t {
		t[i] = i
	}
	return t
}

// sourceCoord maps output position dst of an axis resized from n to m onto the input axis.
func sourceCoord(dst, n, m int, alignCorners bool) float64 {
	if alignCorners {
		if m == 1 {
			return 0
		}
		return float64(dst) * float64(n-1) / float64(m-1)
	}
	return math.Max((float64(dst)+0.5)*float64(n)/float64(m)-0.5, 0)
}

// Interpolate resizes the spatial dimensions of x to sizes.
// Nearest picks floor(dst*n/m); linear is separable over every spatial axis using half-pixel
// centers, or corner-aligned sampling when alignCorners is set.
func (cpu *CPUBackend) Interpolate(x *tensor.RawTensor, sizes []int, mode tensor.InterpMode, layout tensor.Layout, alignCorners bool) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != layout.Rank() {
		exceptions.Panicf("interpolate: %s layout needs rank %d, got %v", layout, layout.Rank(), shape)
	}
	spatial := layout.SpatialAxes()
	if len(sizes) != len(spatial) {
		exceptions.Panicf("interpolate: %d output sizes given for %d spatial dimensions", len(sizes), len(spatial))
	}
	outShape := shape.Clone()
	for i, ax := range spatial {
		if sizes[i] <= 0 {
			exceptions.Panicf("interpolate: output sizes must be positive, got %v", sizes)
		}
		if shape[ax] == 0 {
			exceptions.Panicf("interpolate: cannot resize empty dimension %d of %v", ax, shape)
		}
		outShape[ax] = sizes[i]
	}

	if mode == tensor.InterpNearest {
		tables := make([][]int, len(shape))
		for d, n := range shape {
			tables[d] = identityTable(n)
		}
		for i, ax := range spatial {
			n, m := shape[ax], sizes[i]
			t := make([]int, m)
			for j := range t {
				t[j] = min(j*n/m, n-1)
			}
			tables[ax] = t
		}
		return cpu.tableGather("interpolate", x, outShape, tables, nil)
	}

	if x.DType() == tensor.Bool {
		exceptions.Panicf("interpolate: linear mode does not support bool")
	}
	vals := toFloat64s(x)
	cur := shape.Clone()
	for i, ax := range spatial {
		n, m := cur[ax], sizes[i]
		if n == m {
			continue
		}
		outer, _, inner := split3(cur, ax)
		lo, hi, w := make([]int, m), make([]int, m), make([]float64, m)
		for j := 0; j < m; j++ {
			src := sourceCoord(j, n, m, alignCorners)
			lo[j] = min(int(math.Floor(src)), n-1)
			hi[j] = min(lo[j]+1, n-1)
			w[j] = src - float64(lo[j])
		}
		next := make([]float64, outer*m*inner)
		parallel.For(outer, func(o int) {
			for j := 0; j < m; j++ {
				a := vals[(o*n+lo[j])*inner : (o*n+lo[j]+1)*inner]
				b := vals[(o*n+hi[j])*inner : (o*n+hi[j]+1)*inner]
				dst := next[(o*m+j)*inner : (o*m+j+1)*inner]
				for k := range dst {
					dst[k] = a[k]*(1-w[j]) + b[k]*w[j]
				}
			}
		}, cpu.batchConfig())
		vals = next
		cur[ax] = m
	}
	if integral(x.DType()) {
		for i, v := range vals {
			vals[i] = math.Round(v)
		}
	}
	out := cpu.alloc("interpolate", outShape, x.DType())
	storeFloat64s(out, vals)
	return out
}

// PixelShuffle moves block*block groups of channels into space.
// Input channel c*block*block + i*block + j lands at output channel c, row offset i, column offset j.
func (cpu *CPUBackend) PixelShuffle(x *tensor.RawTensor, block int, layout tensor.Layout) *tensor.RawTensor {
	shape := x.Shape()
	if layout != tensor.NCHW && layout != tensor.NHWC {
		exceptions.Panicf("pixel_shuffle: layout must be NCHW or NHWC, got %s", layout)
	}
	if len(shape) != 4 {
		exceptions.Panicf("pixel_shuffle: input must have rank 4, got %v", shape)
	}
	if block < 1 {
		exceptions.Panicf("pixel_shuffle: block size must be >= 1, got %d", block)
	}
	rr := block * block
	n := shape[0]
	var c, h, w int
	var split tensor.Shape
	if layout == tensor.NCHW {
		c, h, w = shape[1], shape[2], shape[3]
	} else {
		h, w, c = shape[1], shape[2], shape[3]
	}
	if c%rr != 0 {
		exceptions.Panicf("pixel_shuffle: channels %d not divisible by block size squared %d", c, rr)
	}
	oc := c / rr
	var outShape tensor.Shape
	if layout == tensor.NCHW {
		// [N, C, r, r, H, W] -> [N, C, H, r, W, r]
		split = tensor.Shape{n, oc, block, block, h, w}
		outShape = tensor.Shape{n, oc, h * block, w * block}
	} else {
		// [N, H, W, C, r, r] -> [N, H, r, W, r, C]
		split = tensor.Shape{n, h, w, oc, block, block}
		outShape = tensor.Shape{n, h * block, w * block, oc}
	}
	view, err := x.WithShape(split)
	if err != nil {
		exceptions.Panicf("pixel_shuffle: %v", err)
	}
	moved := cpu.Transpose(view, []int{0, 1, 4, 2, 5, 3})
	out, err := moved.WithShape(outShape)
	if err != nil {
		exceptions.Panicf("pixel_shuffle: %v", err)
	}
	return out
}
