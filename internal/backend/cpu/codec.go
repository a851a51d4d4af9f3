package cpu

import (
	"math"

	"github.com/born-ml/opbridge/internal/tensor"
	bfloat16 "github.com/d4l3k/go-bfloat16"
	"github.com/gomlx/exceptions"
	"github.com/x448/float16"
)

// toFloat64s decodes every element of x into float64.
func toFloat64s(x *tensor.RawTensor) []float64 {
	out := make([]float64, x.NumElements())
	switch x.DType() {
	case tensor.Float64:
		copy(out, x.AsFloat64())
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			out[i] = float64(v)
		}
	case tensor.Float16:
		for i, v := range x.AsUint16() {
			out[i] = float64(float16.Frombits(v).Float32())
		}
	case tensor.BFloat16:
		for i, v := range x.AsUint16() {
			out[i] = float64(bfloat16.ToFloat32(bfloat16.BF16(v)))
		}
	case tensor.Int8:
		for i, v := range x.AsInt8() {
			out[i] = float64(v)
		}
	case tensor.Int16:
		for i, v := range x.AsInt16() {
			out[i] = float64(v)
		}
	case tensor.Int32:
		for i, v := range x.AsInt32() {
			out[i] = float64(v)
		}
	case tensor.Int64:
		for i, v := range x.AsInt64() {
			out[i] = float64(v)
		}
	case tensor.Uint8:
		for i, v := range x.AsUint8() {
			out[i] = float64(v)
		}
	case tensor.Bool:
		for i, v := range x.AsBool() {
			if v {
				out[i] = 1
			}
		}
	default:
		exceptions.Panicf("decode: unsupported dtype %s", x.DType())
	}
	return out
}

// storeFloat64s encodes vals into dst, converting to dst's dtype.
// Float to integer conversion truncates toward zero; NaN becomes 0.
func storeFloat64s(dst *tensor.RawTensor, vals []float64) {
	switch dst.DType() {
	case tensor.Float64:
		copy(dst.AsFloat64(), vals)
	case tensor.Float32:
		d := dst.AsFloat32()
		for i, v := range vals {
			d[i] = float32(v)
		}
	case tensor.Float16:
		d := dst.AsUint16()
		for i, v := range vals {
			d[i] = float16.Fromfloat32(float32(v)).Bits()
		}
	case tensor.BFloat16:
		d := dst.AsUint16()
		for i, v := range vals {
			d[i] = uint16(bfloat16.FromFloat32(float32(v)))
		}
	case tensor.Int8:
		d := dst.AsInt8()
		for i, v := range vals {
			d[i] = int8(floatToInt(v))
		}
	case tensor.Int16:
		d := dst.AsInt16()
		for i, v := range vals {
			d[i] = int16(floatToInt(v))
		}
	case tensor.Int32:
		d := dst.AsInt32()
		for i, v := range vals {
			d[i] = int32(floatToInt(v))
		}
	case tensor.Int64:
		d := dst.AsInt64()
		for i, v := range vals {
			d[i] = floatToInt(v)
		}
	case tensor.Uint8:
		d := dst.AsUint8()
		for i, v := range vals {
			d[i] = uint8(floatToInt(v))
		}
	case tensor.Bool:
		d := dst.AsBool()
		for i, v := range vals {
			d[i] = v != 0
		}
	default:
		exceptions.Panicf("encode: unsupported dtype %s", dst.DType())
	}
}

func floatToInt(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	}
	return int64(v)
}

// toInt64s decodes an integer or bool tensor into int64 without loss.
func toInt64s(x *tensor.RawTensor) []int64 {
	out := make([]int64, x.NumElements())
	switch x.DType() {
	case tensor.Int64:
		copy(out, x.AsInt64())
	case tensor.Int32:
		for i, v := range x.AsInt32() {
			out[i] = int64(v)
		}
	case tensor.Int16:
		for i, v := range x.AsInt16() {
			out[i] = int64(v)
		}
	case tensor.Int8:
		for i, v := range x.AsInt8() {
			out[i] = int64(v)
		}
	case tensor.Uint8:
		for i, v := range x.AsUint8() {
			out[i] = int64(v)
		}
	case tensor.Bool:
		for i, v := range x.AsBool() {
			if v {
				out[i] = 1
			}
		}
	default:
		for i, v := range toFloat64s(x) {
			out[i] = floatToInt(v)
		}
	}
	return out
}

// storeInt64s encodes integer values into dst, wrapping on overflow like a Go conversion.
func storeInt64s(dst *tensor.RawTensor, vals []int64) {
	switch dst.DType() {
	case tensor.Int64:
		copy(dst.AsInt64(), vals)
	case tensor.Int32:
		d := dst.AsInt32()
		for i, v := range vals {
			d[i] = int32(v)
		}
	case tensor.Int16:
		d := dst.AsInt16()
		for i, v := range vals {
			d[i] = int16(v)
		}
	case tensor.Int8:
		d := dst.AsInt8()
		for i, v := range vals {
			d[i] = int8(v)
		}
	case tensor.Uint8:
		d := dst.AsUint8()
		for i, v := range vals {
			d[i] = uint8(v)
		}
	case tensor.Bool:
		d := dst.AsBool()
		for i, v := range vals {
			d[i] = v != 0
		}
	default:
		f := make([]float64, len(vals))
		for i, v := range vals {
			f[i] = float64(v)
		}
		storeFloat64s(dst, f)
	}
}

// toBools reads x as truth values: non-zero is true.
func toBools(x *tensor.RawTensor) []bool {
	if x.DType() == tensor.Bool {
		out := make([]bool, x.NumElements())
		copy(out, x.AsBool())
		return out
	}
	vals := toFloat64s(x)
	out := make([]bool, len(vals))
	for i, v := range vals {
		out[i] = v != 0
	}
	return out
}

// encodeScalar returns the byte encoding of v as a single element of dtype.
func encodeScalar(v float64, dtype tensor.DataType) []byte {
	one, err := tensor.NewRaw(tensor.Shape{}, dtype, tensor.CPU)
	if err != nil {
		exceptions.Panicf("encode: %v", err)
	}
	storeFloat64s(one, []float64{v})
	return one.Data()
}

// integral reports whether arithmetic on dt should use the exact int64 path.
func integral(dt tensor.DataType) bool {
	return dt.IsInteger()
}
