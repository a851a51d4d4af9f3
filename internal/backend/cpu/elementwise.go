package cpu

import (
	"math"

	"github.com/born-ml/opbridge/internal/parallel"
	"github.com/born-ml/opbridge/internal/tensor"
	"github.com/gomlx/exceptions"
)

// zip applies f over the broadcast of a and b, writing into out (laid out as outShape).
func zip[A, B, R any](par parallel.Config, out []R, outShape tensor.Shape,
	a []A, aShape tensor.Shape, b []B, bShape tensor.Shape, f func(A, B) R) {
	if aShape.Equal(outShape) && bShape.Equal(outShape) {
		parallel.ForRange(len(out), par, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = f(a[i], b[i])
			}
		})
		return
	}
	aIdx := offsets(outShape, tensor.BroadcastStrides(aShape, outShape))
	bIdx := offsets(outShape, tensor.BroadcastStrides(bShape, outShape))
	parallel.ForRange(len(out), par, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = f(a[aIdx[i]], b[bIdx[i]])
		}
	})
}

func mapSlice[T any](par parallel.Config, vals []T, f func(T) T) {
	parallel.ForRange(len(vals), par, func(start, end int) {
		for i := start; i < end; i++ {
			vals[i] = f(vals[i])
		}
	})
}

func sigmoid(v float64) float64 {
	if v >= 0 {
		return 1 / (1 + math.Exp(-v))
	}
	e := math.Exp(v)
	return e / (1 + e)
}

// softplus matches the common beta=1, threshold=20 definition.
func softplus(v float64) float64 {
	if v > 20 {
		return v
	}
	return math.Log1p(math.Exp(v))
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return v
}

var floatUnary = map[tensor.UnaryOp]func(float64) float64{
	tensor.UnaryAbs:        math.Abs,
	tensor.UnaryNeg:        func(v float64) float64 { return -v },
	tensor.UnarySign:       sign,
	tensor.UnaryExp:        math.Exp,
	tensor.UnaryLog:        math.Log,
	tensor.UnarySqrt:       math.Sqrt,
	tensor.UnaryRsqrt:      func(v float64) float64 { return 1 / math.Sqrt(v) },
	tensor.UnarySquare:     func(v float64) float64 { return v * v },
	tensor.UnaryReciprocal: func(v float64) float64 { return 1 / v },
	tensor.UnaryFloor:      math.Floor,
	tensor.UnaryCeil:       math.Ceil,
	tensor.UnaryRound:      math.Round,
	tensor.UnarySin:        math.Sin,
	tensor.UnaryCos:        math.Cos,
	tensor.UnaryTan:        math.Tan,
	tensor.UnaryAsin:       math.Asin,
	tensor.UnaryAcos:       math.Acos,
	tensor.UnaryAtan:       math.Atan,
	tensor.UnarySinh:       math.Sinh,
	tensor.UnaryCosh:       math.Cosh,
	tensor.UnaryTanh:       math.Tanh,
	tensor.UnaryAsinh:      math.Asinh,
	tensor.UnaryAcosh:      math.Acosh,
	tensor.UnaryAtanh:      math.Atanh,
	tensor.UnarySigmoid:    sigmoid,
	tensor.UnaryLogSigmoid: func(v float64) float64 { return -softplus(-v) },
	tensor.UnarySoftplus:   softplus,
}

// intUnary lists the unary ops with an exact integer definition.
var intUnary = map[tensor.UnaryOp]func(int64) int64{
	tensor.UnaryAbs: func(v int64) int64 {
		if v < 0 {
			return -v
		}
		return v
	},
	tensor.UnaryNeg: func(v int64) int64 { return -v },
	tensor.UnarySign: func(v int64) int64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	},
	tensor.UnarySquare: func(v int64) int64 { return v * v },
	tensor.UnaryFloor:  func(v int64) int64 { return v },
	tensor.UnaryCeil:   func(v int64) int64 { return v },
	tensor.UnaryRound:  func(v int64) int64 { return v },
}

// Unary applies an element-wise function. IsNaN and IsInf return bool tensors;
// transcendental functions require a floating point input.
func (cpu *CPUBackend) Unary(op tensor.UnaryOp, x *tensor.RawTensor) *tensor.RawTensor {
	dt := x.DType()
	if dt == tensor.Bool {
		exceptions.Panicf("%s: unsupported dtype bool", op)
	}

	if op == tensor.UnaryIsNaN || op == tensor.UnaryIsInf {
		out := cpu.alloc(op.String(), x.Shape(), tensor.Bool)
		if !dt.IsFloat() {
			return out
		}
		res := out.AsBool()
		for i, v := range toFloat64s(x) {
			if op == tensor.UnaryIsNaN {
				res[i] = math.IsNaN(v)
			} else {
				res[i] = math.IsInf(v, 0)
			}
		}
		return out
	}

	out := cpu.alloc(op.String(), x.Shape(), dt)
	if integral(dt) {
		f, ok := intUnary[op]
		if !ok {
			exceptions.Panicf("%s: unsupported dtype %s (floating point required)", op, dt)
		}
		vals := toInt64s(x)
		mapSlice(cpu.par, vals, f)
		storeInt64s(out, vals)
		return out
	}

	f, ok := floatUnary[op]
	if !ok {
		exceptions.Panicf("unary: unknown op %d", int(op))
	}
	vals := toFloat64s(x)
	mapSlice(cpu.par, vals, f)
	storeFloat64s(out, vals)
	return out
}

func floatBinary(op tensor.BinaryOp) func(a, b float64) float64 {
	switch op {
	case tensor.BinaryAdd:
		return func(a, b float64) float64 { return a + b }
	case tensor.BinarySub:
		return func(a, b float64) float64 { return a - b }
	case tensor.BinaryMul:
		return func(a, b float64) float64 { return a * b }
	case tensor.BinaryDiv:
		return func(a, b float64) float64 { return a / b }
	case tensor.BinaryPow:
		return math.Pow
	case tensor.BinaryMax:
		return func(a, b float64) float64 {
			if math.IsNaN(a) || math.IsNaN(b) {
				return math.NaN()
			}
			return math.Max(a, b)
		}
	case tensor.BinaryMin:
		return func(a, b float64) float64 {
			if math.IsNaN(a) || math.IsNaN(b) {
				return math.NaN()
			}
			return math.Min(a, b)
		}
	case tensor.BinaryFloorDiv:
		return func(a, b float64) float64 { return math.Floor(a / b) }
	case tensor.BinaryFloorMod:
		return func(a, b float64) float64 {
			m := math.Mod(a, b)
			if m != 0 && (m < 0) != (b < 0) {
				m += b
			}
			return m
		}
	}
	exceptions.Panicf("binary: unknown op %d", int(op))
	return nil
}

func intBinary(op tensor.BinaryOp) func(a, b int64) int64 {
	switch op {
	case tensor.BinaryAdd:
		return func(a, b int64) int64 { return a + b }
	case tensor.BinarySub:
		return func(a, b int64) int64 { return a - b }
	case tensor.BinaryMul:
		return func(a, b int64) int64 { return a * b }
	case tensor.BinaryDiv:
		return func(a, b int64) int64 {
			if b == 0 {
				exceptions.Panicf("div: integer division by zero")
			}
			return a / b
		}
	case tensor.BinaryPow:
		return func(a, b int64) int64 {
			if b < 0 {
				return int64(math.Pow(float64(a), float64(b)))
			}
			r := int64(1)
			for ; b > 0; b-- {
				r *= a
			}
			return r
		}
	case tensor.BinaryMax:
		return func(a, b int64) int64 { return max(a, b) }
	case tensor.BinaryMin:
		return func(a, b int64) int64 { return min(a, b) }
	case tensor.BinaryFloorDiv:
		return func(a, b int64) int64 {
			if b == 0 {
				exceptions.Panicf("floordiv: integer division by zero")
			}
			q := a / b
			if (a%b != 0) && ((a < 0) != (b < 0)) {
				q--
			}
			return q
		}
	case tensor.BinaryFloorMod:
		return func(a, b int64) int64 {
			if b == 0 {
				exceptions.Panicf("floormod: integer division by zero")
			}
			m := a % b
			if m != 0 && (m < 0) != (b < 0) {
				m += b
			}
			return m
		}
	}
	exceptions.Panicf("binary: unknown op %d", int(op))
	return nil
}

// Binary applies an element-wise arithmetic function with NumPy-style broadcasting.
func (cpu *CPUBackend) Binary(op tensor.BinaryOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	name := op.String()
	sameDType(name, a, b)
	if a.DType() == tensor.Bool {
		exceptions.Panicf("%s: unsupported dtype bool", name)
	}
	outShape := broadcast(name, a.Shape(), b.Shape())
	out := cpu.alloc(name, outShape, a.DType())

	if integral(a.DType()) {
		res := make([]int64, out.NumElements())
		zip(cpu.par, res, outShape, toInt64s(a), a.Shape(), toInt64s(b), b.Shape(), intBinary(op))
		storeInt64s(out, res)
		return out
	}
	res := make([]float64, out.NumElements())
	zip(cpu.par, res, outShape, toFloat64s(a), a.Shape(), toFloat64s(b), b.Shape(), floatBinary(op))
	storeFloat64s(out, res)
	return out
}

func compareFn[T int64 | float64](op tensor.CompareOp) func(a, b T) bool {
	switch op {
	case tensor.CompareEqual:
		return func(a, b T) bool { return a == b }
	case tensor.CompareNotEqual:
		return func(a, b T) bool { return a != b }
	case tensor.CompareGreater:
		return func(a, b T) bool { return a > b }
	case tensor.CompareGreaterEqual:
		return func(a, b T) bool { return a >= b }
	case tensor.CompareLess:
		return func(a, b T) bool { return a < b }
	case tensor.CompareLessEqual:
		return func(a, b T) bool { return a <= b }
	}
	exceptions.Panicf("compare: unknown op %d", int(op))
	return nil
}

// Compare applies an element-wise comparison with broadcasting and returns a bool tensor.
func (cpu *CPUBackend) Compare(op tensor.CompareOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	sameDType("compare", a, b)
	outShape := broadcast("compare", a.Shape(), b.Shape())
	out := cpu.alloc("compare", outShape, tensor.Bool)
	res := out.AsBool()
	if integral(a.DType()) || a.DType() == tensor.Bool {
		zip(cpu.par, res, outShape, toInt64s(a), a.Shape(), toInt64s(b), b.Shape(), compareFn[int64](op))
		return out
	}
	zip(cpu.par, res, outShape, toFloat64s(a), a.Shape(), toFloat64s(b), b.Shape(), compareFn[float64](op))
	return out
}

// Logical applies an element-wise boolean function; non-bool inputs are read as value != 0.
func (cpu *CPUBackend) Logical(op tensor.LogicalOp, a, b *tensor.RawTensor) *tensor.RawTensor {
	var f func(a, b bool) bool
	switch op {
	case tensor.LogicalAnd:
		f = func(a, b bool) bool { return a && b }
	case tensor.LogicalOr:
		f = func(a, b bool) bool { return a || b }
	case tensor.LogicalXor:
		f = func(a, b bool) bool { return a != b }
	default:
		exceptions.Panicf("logical: unknown op %d", int(op))
	}
	outShape := broadcast("logical", a.Shape(), b.Shape())
	out := cpu.alloc("logical", outShape, tensor.Bool)
	zip(cpu.par, out.AsBool(), outShape, toBools(a), a.Shape(), toBools(b), b.Shape(), f)
	return out
}

// Not returns the element-wise logical negation.
func (cpu *CPUBackend) Not(x *tensor.RawTensor) *tensor.RawTensor {
	out := cpu.alloc("not", x.Shape(), tensor.Bool)
	res := out.AsBool()
	for i, v := range toBools(x) {
		res[i] = !v
	}
	return out
}

// Where selects elements from x where condition holds and from y elsewhere, with broadcasting.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	sameDType("where", x, y)
	outShape := broadcast("where", broadcast("where", condition.Shape(), x.Shape()), y.Shape())
	out := cpu.alloc("where", outShape, x.DType())

	cond := toBools(condition)
	cIdx := offsets(outShape, tensor.BroadcastStrides(condition.Shape(), outShape))
	xIdx := offsets(outShape, tensor.BroadcastStrides(x.Shape(), outShape))
	yIdx := offsets(outShape, tensor.BroadcastStrides(y.Shape(), outShape))
	size := x.DType().Size()
	dst, xs, ys := out.Data(), x.Data(), y.Data()
	parallel.ForRange(len(cIdx), cpu.par, func(start, end int) {
		for i := start; i < end; i++ {
			if cond[cIdx[i]] {
				copy(dst[i*size:(i+1)*size], xs[xIdx[i]*size:])
			} else {
				copy(dst[i*size:(i+1)*size], ys[yIdx[i]*size:])
			}
		}
	})
	return out
}

// Clip clamps every element into [low, high].
func (cpu *CPUBackend) Clip(x *tensor.RawTensor, low, high float64) *tensor.RawTensor {
	if low > high {
		exceptions.Panicf("clip: min (%g) is greater than max (%g)", low, high)
	}
	if x.DType() == tensor.Bool {
		exceptions.Panicf("clip: unsupported dtype bool")
	}
	out := cpu.alloc("clip", x.Shape(), x.DType())
	vals := toFloat64s(x)
	mapSlice(cpu.par, vals, func(v float64) float64 {
		return math.Min(math.Max(v, low), high)
	})
	storeFloat64s(out, vals)
	return out
}

// Cast converts the tensor to a different data type. Float to integer truncates toward zero.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if x.DType() == dtype {
		return x.Clone()
	}
	out := cpu.alloc("cast", x.Shape(), dtype)
	src := x.DType()
	switch {
	case dtype == tensor.Bool:
		copy(out.AsBool(), toBools(x))
	case (integral(src) || src == tensor.Bool) && integral(dtype):
		storeInt64s(out, toInt64s(x))
	default:
		storeFloat64s(out, toFloat64s(x))
	}
	return out
}
