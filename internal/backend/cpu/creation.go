package cpu

import (
	"math"
	"time"

	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Full creates a tensor filled with value.
func (cpu *CPUBackend) Full(shape tensor.Shape, dtype tensor.DataType, value float64) *tensor.RawTensor {
	out := cpu.alloc("full", shape, dtype)
	if value == 0 {
		return out
	}
	elem := encodeScalar(value, dtype)
	data := out.Data()
	for i := 0; i < len(data); i += len(elem) {
		copy(data[i:], elem)
	}
	return out
}

// Arange creates the 1-D sequence start, start+step, ... stopping before stop.
func (cpu *CPUBackend) Arange(start, stop, step float64, dtype tensor.DataType) *tensor.RawTensor {
	if step == 0 {
		exceptions.Panicf("arange: step must be non-zero")
	}
	n := int(math.Ceil((stop - start) / step))
	if n < 0 {
		n = 0
	}
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	out := cpu.alloc("arange", tensor.Shape{n}, dtype)
	storeFloat64s(out, vals)
	return out
}

// Linspace creates num evenly spaced values over [start, stop].
func (cpu *CPUBackend) Linspace(start, stop float64, num int, dtype tensor.DataType) *tensor.RawTensor {
	if num < 0 {
		exceptions.Panicf("linspace: num must be >= 0, got %d", num)
	}
	vals := make([]float64, num)
	switch num {
	case 0:
	case 1:
		vals[0] = start
	default:
		step := (stop - start) / float64(num-1)
		for i := range vals {
			vals[i] = start + float64(i)*step
		}
		vals[num-1] = stop
	}
	out := cpu.alloc("linspace", tensor.Shape{num}, dtype)
	storeFloat64s(out, vals)
	return out
}

// source returns a seeded random source; seed 0 draws a fresh seed from the clock.
func source(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewSource(seed)
}

func (cpu *CPUBackend) sample(op string, shape tensor.Shape, dtype tensor.DataType, draw func() float64) *tensor.RawTensor {
	if dtype == tensor.Bool {
		exceptions.Panicf("%s: bool output is not supported", op)
	}
	out := cpu.alloc(op, shape, dtype)
	vals := make([]float64, out.NumElements())
	for i := range vals {
		vals[i] = draw()
	}
	if integral(dtype) {
		for i, v := range vals {
			vals[i] = math.Floor(v)
		}
	}
	storeFloat64s(out, vals)
	return out
}

// RandomUniform samples from U[low, high). Integer dtypes receive floor(sample).
func (cpu *CPUBackend) RandomUniform(shape tensor.Shape, dtype tensor.DataType, low, high float64, seed uint64) *tensor.RawTensor {
	if !(high > low) {
		exceptions.Panicf("random_uniform: high (%g) must be greater than low (%g)", high, low)
	}
	dist := distuv.Uniform{Min: low, Max: high, Src: source(seed)}
	return cpu.sample("random_uniform", shape, dtype, dist.Rand)
}

// RandomNormal samples from N(mean, stddev²).
func (cpu *CPUBackend) RandomNormal(shape tensor.Shape, dtype tensor.DataType, mean, stddev float64, seed uint64) *tensor.RawTensor {
	if stddev < 0 {
		exceptions.Panicf("random_normal: stddev must be >= 0, got %g", stddev)
	}
	if stddev == 0 {
		return cpu.Full(shape, dtype, mean)
	}
	dist := distuv.Normal{Mu: mean, Sigma: stddev, Src: source(seed)}
	return cpu.sample("random_normal", shape, dtype, dist.Rand)
}

// TruncatedNormal samples from N(mean, stddev²), redrawing values beyond two standard deviations.
func (cpu *CPUBackend) TruncatedNormal(shape tensor.Shape, dtype tensor.DataType, mean, stddev float64, seed uint64) *tensor.RawTensor {
	if stddev < 0 {
		exceptions.Panicf("truncated_normal: stddev must be >= 0, got %g", stddev)
	}
	if stddev == 0 {
		return cpu.Full(shape, dtype, mean)
	}
	dist := distuv.Normal{Mu: mean, Sigma: stddev, Src: source(seed)}
	return cpu.sample("truncated_normal", shape, dtype, func() float64 {
		for {
			v := dist.Rand()
			if math.Abs(v-mean) <= 2*stddev {
				return v
			}
		}
	})
}
