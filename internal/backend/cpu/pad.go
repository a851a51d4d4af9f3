package cpu

import (
	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
)

// Pad pads the spatial dimensions of x. See tensor.Backend for the pads ordering.
func (cpu *CPUBackend) Pad(x *tensor.RawTensor, pads []int, mode tensor.PadMode, value float64, layout tensor.Layout) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != layout.Rank() {
		exceptions.Panicf("pad: %s layout needs rank %d, got %v", layout, layout.Rank(), shape)
	}
	spatial := layout.SpatialAxes()
	if len(pads)%2 != 0 || len(pads) > 2*len(spatial) {
		exceptions.Panicf("pad: %s layout takes at most %d (before, after) pairs, got %v", layout, len(spatial), pads)
	}

	before := make([]int, len(shape))
	after := make([]int, len(shape))
	for p := 0; p < len(pads)/2; p++ {
		ax := spatial[len(spatial)-1-p]
		before[ax], after[ax] = pads[2*p], pads[2*p+1]
		if before[ax] < 0 || after[ax] < 0 {
			exceptions.Panicf("pad: negative padding %v", pads)
		}
	}

	outShape := make(tensor.Shape, len(shape))
	tables := make([][]int, len(shape))
	for d, n := range shape {
		outShape[d] = before[d] + n + after[d]
		tables[d] = padTable(mode, n, before[d], after[d])
	}

	// Positions mapped to -1 keep the fill value.
	return cpu.tableGather("pad", x, outShape, tables, cpu.Full(outShape, x.DType(), value))
}

// padTable maps each output position along one dimension to a source index, or -1 for fill.
func padTable(mode tensor.PadMode, n, before, after int) []int {
	if before == 0 && after == 0 {
		return identityTable(n)
	}
	table := make([]int, before+n+after)
	switch mode {
	case tensor.PadReflect:
		if before >= n || after >= n {
			exceptions.Panicf("pad: reflect padding (%d, %d) must be smaller than the dimension size %d", before, after, n)
		}
	case tensor.PadSymmetric:
		if before > n || after > n {
			exceptions.Panicf("pad: symmetric padding (%d, %d) must not exceed the dimension size %d", before, after, n)
		}
	case tensor.PadReplicate, tensor.PadCircular:
		if n == 0 {
			exceptions.Panicf("pad: %s padding of an empty dimension", mode)
		}
	}

	for i := range table {
		j := i - before
		switch mode {
		case tensor.PadConstant:
			if j < 0 || j >= n {
				j = -1
			}
		case tensor.PadReplicate:
			j = min(max(j, 0), n-1)
		case tensor.PadCircular:
			j = ((j % n) + n) % n
		case tensor.PadReflect:
			if n == 1 {
				j = 0
				break
			}
			period := 2 * (n - 1)
			j = ((j % period) + period) % period
			if j >= n {
				j = period - j
			}
		case tensor.PadSymmetric:
			period := 2 * n
			j = ((j % period) + period) % period
			if j >= n {
				j = period - 1 - j
			}
		default:
			exceptions.Panicf("pad: unknown mode %d", mode)
		}
		table[i] = j
	}
	return table
}
