// Package cpu implements the pure Go CPU engine behind the ops adapter.
//
// Data movement primitives work on raw element bytes and therefore support every storable
// dtype. Arithmetic runs on a float64 compute path (int64 for integer inputs where exactness
// matters), with float16 and bfloat16 decoded on the way in and encoded on the way out.
// Matrix products go through gonum BLAS.
package cpu

import (
	"strconv"
	"strings"

	"github.com/born-ml/opbridge/internal/parallel"
	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend from a comma separated option list.
//
// Recognized options:
//
//	workers=N    number of worker goroutines (1 disables parallelism)
//	minchunk=N   minimum elements per worker
func NewWithConfig(config string) (*CPUBackend, error) {
	cpu := New()
	for _, opt := range strings.Split(config, ",") {
		opt = strings.TrimSpace(opt)
		if opt == "" {
			continue
		}
		key, value, found := strings.Cut(opt, "=")
		if !found {
			return nil, errors.Errorf("cpu backend: option %q is not in key=value form", opt)
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, errors.Errorf("cpu backend: option %q needs a positive integer", opt)
		}
		switch key {
		case "workers":
			cpu.par.NumWorkers = n
			cpu.par.Enabled = n > 1
		case "minchunk":
			cpu.par.MinChunkSize = n
		default:
			return nil, errors.Errorf("cpu backend: unknown option %q", key)
		}
	}
	return cpu, nil
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "cpu"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Parallelism returns the worker configuration in use.
func (cpu *CPUBackend) Parallelism() parallel.Config {
	return cpu.par
}

// alloc creates a zeroed result tensor, panicking with the op name on failure.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	out, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		exceptions.Panicf("%s: %v", op, err)
	}
	return out
}

func sameDType(op string, a, b *tensor.RawTensor) {
	if a.DType() != b.DType() {
		exceptions.Panicf("%s: dtype mismatch %s vs %s", op, a.DType(), b.DType())
	}
}

func broadcast(op string, a, b tensor.Shape) tensor.Shape {
	out, _, err := tensor.BroadcastShapes(a, b)
	if err != nil {
		exceptions.Panicf("%s: %v", op, err)
	}
	return out
}

func normAxis(op string, axis, rank int) int {
	ax, err := tensor.NormalizeAxis(axis, rank)
	if err != nil {
		exceptions.Panicf("%s: %v", op, err)
	}
	return ax
}

// offsets returns, for every element of shape in row-major order, the sum of idx[d]*strides[d].
// It is the gather map used by transpose, broadcast and slicing.
func offsets(shape tensor.Shape, strides []int) []int {
	n := shape.NumElements()
	out := make([]int, n)
	rank := len(shape)
	if n == 0 || rank == 0 {
		return out
	}
	idx := make([]int, rank)
	o := 0
	for i := 0; i < n; i++ {
		out[i] = o
		for d := rank - 1; d >= 0; d-- {
			idx[d]++
			o += strides[d]
			if idx[d] < shape[d] {
				break
			}
			o -= strides[d] * shape[d]
			idx[d] = 0
		}
	}
	return out
}

// gatherBytes builds a tensor whose element i is element src[i] of x.
func (cpu *CPUBackend) gatherBytes(op string, x *tensor.RawTensor, shape tensor.Shape, src []int) *tensor.RawTensor {
	out := cpu.alloc(op, shape, x.DType())
	size := x.DType().Size()
	in, dst := x.Data(), out.Data()
	parallel.ForRange(len(src), cpu.par, func(start, end int) {
		for i := start; i < end; i++ {
			s := src[i] * size
			copy(dst[i*size:(i+1)*size], in[s:s+size])
		}
	})
	return out
}
