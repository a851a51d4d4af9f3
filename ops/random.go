package ops

import (
	"math"

	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
)

// truncatedStddevScale is the stddev of a standard normal truncated to [-2, 2].
// Initializers divide by it so the truncated samples keep the requested variance.
const truncatedStddevScale = 0.87962566103423978

// seedFor resolves the seed of one random call. An explicit seed wins. Otherwise a
// configured Ops seed yields a distinct, reproducible stream per call, and no seed at
// all gives 0 (nondeterministic).
func (o *Ops) seedFor(seed uint64) uint64 {
	if seed != 0 || o.seed == 0 {
		return seed
	}
	return o.seed + o.seedCounter.Add(1)*0x9E3779B97F4A7C15
}

// RandomUniform draws from the uniform distribution over [minval, maxval).
func (o *Ops) RandomUniform(shape tensor.Shape, minval, maxval float64, dtype tensor.DataType, seed uint64) (*tensor.RawTensor, error) {
	dtype = o.dtypeOr(dtype)
	seed = o.seedFor(seed)
	return o.call("RandomUniform", func() *tensor.RawTensor {
		return o.backend.RandomUniform(shape, dtype, minval, maxval, seed)
	})
}

// RandomNormal draws from the normal distribution.
func (o *Ops) RandomNormal(shape tensor.Shape, mean, stddev float64, dtype tensor.DataType, seed uint64) (*tensor.RawTensor, error) {
	dtype = o.dtypeOr(dtype)
	seed = o.seedFor(seed)
	return o.call("RandomNormal", func() *tensor.RawTensor {
		return o.backend.RandomNormal(shape, dtype, mean, stddev, seed)
	})
}

// TruncatedNormal draws from the normal distribution, redrawing samples more than two
// standard deviations from the mean.
func (o *Ops) TruncatedNormal(shape tensor.Shape, mean, stddev float64, dtype tensor.DataType, seed uint64) (*tensor.RawTensor, error) {
	dtype = o.dtypeOr(dtype)
	seed = o.seedFor(seed)
	return o.call("TruncatedNormal", func() *tensor.RawTensor {
		return o.backend.TruncatedNormal(shape, dtype, mean, stddev, seed)
	})
}

// fans computes fan-in and fan-out for a weight shape. The last two dimensions are
// (in, out), leading dimensions form the receptive field.
func fans(shape tensor.Shape) (fanIn, fanOut float64, err error) {
	switch len(shape) {
	case 0:
		return 1, 1, nil
	case 1:
		return float64(shape[0]), float64(shape[0]), nil
	}
	receptive := 1
	for _, d := range shape[:len(shape)-2] {
		receptive *= d
	}
	fanIn = float64(shape[len(shape)-2] * receptive)
	fanOut = float64(shape[len(shape)-1] * receptive)
	if fanIn == 0 || fanOut == 0 {
		return 0, 0, errors.Errorf("cannot compute fans of zero-sized shape %v", shape)
	}
	return fanIn, fanOut, nil
}

// HeNormal draws from a truncated normal with stddev sqrt(2 / fan_in).
func (o *Ops) HeNormal(shape tensor.Shape, dtype tensor.DataType, seed uint64) (*tensor.RawTensor, error) {
	fanIn, _, err := fans(shape)
	if err != nil {
		return nil, errors.WithMessage(err, "HeNormal")
	}
	return o.TruncatedNormal(shape, 0, math.Sqrt(2/fanIn)/truncatedStddevScale, dtype, seed)
}

// XavierNormal draws from a truncated normal with stddev sqrt(2 / (fan_in + fan_out)).
func (o *Ops) XavierNormal(shape tensor.Shape, dtype tensor.DataType, seed uint64) (*tensor.RawTensor, error) {
	fanIn, fanOut, err := fans(shape)
	if err != nil {
		return nil, errors.WithMessage(err, "XavierNormal")
	}
	return o.TruncatedNormal(shape, 0, math.Sqrt(2/(fanIn+fanOut))/truncatedStddevScale, dtype, seed)
}

// XavierUniform draws uniformly from [-limit, limit) with limit sqrt(6 / (fan_in + fan_out)).
func (o *Ops) XavierUniform(shape tensor.Shape, dtype tensor.DataType, seed uint64) (*tensor.RawTensor, error) {
	fanIn, fanOut, err := fans(shape)
	if err != nil {
		return nil, errors.WithMessage(err, "XavierUniform")
	}
	limit := math.Sqrt(6 / (fanIn + fanOut))
	return o.RandomUniform(shape, -limit, limit, dtype, seed)
}
