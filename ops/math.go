package ops

import (
	"math"

	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
)

func (o *Ops) binary(name string, op tensor.BinaryOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.call(name, func() *tensor.RawTensor {
		return o.backend.Binary(op, a, b)
	})
}

func (o *Ops) unary(name string, op tensor.UnaryOp, x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.call(name, func() *tensor.RawTensor {
		return o.backend.Unary(op, x)
	})
}

// Add returns a + b element-wise, with broadcasting.
func (o *Ops) Add(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("Add", tensor.BinaryAdd, a, b)
}

// Subtract returns a - b element-wise, with broadcasting.
func (o *Ops) Subtract(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("Subtract", tensor.BinarySub, a, b)
}

// Multiply returns a * b element-wise, with broadcasting.
func (o *Ops) Multiply(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("Multiply", tensor.BinaryMul, a, b)
}

// Divide returns a / b element-wise. Integer division truncates toward zero.
func (o *Ops) Divide(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("Divide", tensor.BinaryDiv, a, b)
}

// Pow returns a raised to b element-wise.
func (o *Ops) Pow(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("Pow", tensor.BinaryPow, a, b)
}

// Maximum returns the element-wise maximum of a and b.
func (o *Ops) Maximum(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("Maximum", tensor.BinaryMax, a, b)
}

// Minimum returns the element-wise minimum of a and b.
func (o *Ops) Minimum(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("Minimum", tensor.BinaryMin, a, b)
}

// FloorDiv returns floor(a / b) element-wise.
func (o *Ops) FloorDiv(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("FloorDiv", tensor.BinaryFloorDiv, a, b)
}

// FloorMod returns the remainder of floor division; the result has the sign of b.
func (o *Ops) FloorMod(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.binary("FloorMod", tensor.BinaryFloorMod, a, b)
}

// SquaredDifference returns (a - b)^2 element-wise.
func (o *Ops) SquaredDifference(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.call("SquaredDifference", func() *tensor.RawTensor {
		return o.backend.Unary(tensor.UnarySquare, o.backend.Binary(tensor.BinarySub, a, b))
	})
}

// AddN sums a list of tensors of the same dtype, with broadcasting.
func (o *Ops) AddN(xs ...*tensor.RawTensor) (*tensor.RawTensor, error) {
	if len(xs) == 0 {
		return nil, errors.New("AddN: no tensors given")
	}
	return o.call("AddN", func() *tensor.RawTensor {
		sum := xs[0].Clone()
		for _, x := range xs[1:] {
			sum = o.backend.Binary(tensor.BinaryAdd, sum, x)
		}
		return sum
	})
}

// ClipByValue clamps every element of x into [minValue, maxValue].
func (o *Ops) ClipByValue(x *tensor.RawTensor, minValue, maxValue float64) (*tensor.RawTensor, error) {
	return o.call("ClipByValue", func() *tensor.RawTensor {
		return o.backend.Clip(x, minValue, maxValue)
	})
}

// Sqrt returns the element-wise square root.
func (o *Ops) Sqrt(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Sqrt", tensor.UnarySqrt, x)
}

// Rsqrt returns 1 / sqrt(x) element-wise.
func (o *Ops) Rsqrt(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Rsqrt", tensor.UnaryRsqrt, x)
}

// Exp returns e^x element-wise.
func (o *Ops) Exp(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Exp", tensor.UnaryExp, x)
}

// Log returns the element-wise natural logarithm.
func (o *Ops) Log(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Log", tensor.UnaryLog, x)
}

// Abs returns |x| element-wise.
func (o *Ops) Abs(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Abs", tensor.UnaryAbs, x)
}

// Negative returns -x element-wise.
func (o *Ops) Negative(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Negative", tensor.UnaryNeg, x)
}

// Sign returns -1, 0 or 1 according to the sign of each element.
func (o *Ops) Sign(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Sign", tensor.UnarySign, x)
}

// Floor rounds every element down.
func (o *Ops) Floor(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Floor", tensor.UnaryFloor, x)
}

// Ceil rounds every element up.
func (o *Ops) Ceil(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Ceil", tensor.UnaryCeil, x)
}

// Round rounds every element to the nearest integer, halves away from zero.
func (o *Ops) Round(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Round", tensor.UnaryRound, x)
}

// Square returns x^2 element-wise.
func (o *Ops) Square(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Square", tensor.UnarySquare, x)
}

// Reciprocal returns 1 / x element-wise.
func (o *Ops) Reciprocal(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Reciprocal", tensor.UnaryReciprocal, x)
}

func (o *Ops) Sin(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Sin", tensor.UnarySin, x)
}

func (o *Ops) Cos(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Cos", tensor.UnaryCos, x)
}

func (o *Ops) Tan(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Tan", tensor.UnaryTan, x)
}

func (o *Ops) Asin(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Asin", tensor.UnaryAsin, x)
}

func (o *Ops) Acos(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Acos", tensor.UnaryAcos, x)
}

func (o *Ops) Atan(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Atan", tensor.UnaryAtan, x)
}

func (o *Ops) Sinh(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Sinh", tensor.UnarySinh, x)
}

func (o *Ops) Cosh(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Cosh", tensor.UnaryCosh, x)
}

func (o *Ops) Tanh(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Tanh", tensor.UnaryTanh, x)
}

func (o *Ops) Asinh(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Asinh", tensor.UnaryAsinh, x)
}

func (o *Ops) Acosh(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Acosh", tensor.UnaryAcosh, x)
}

func (o *Ops) Atanh(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Atanh", tensor.UnaryAtanh, x)
}

// Sigmoid returns 1 / (1 + e^-x) element-wise.
func (o *Ops) Sigmoid(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Sigmoid", tensor.UnarySigmoid, x)
}

// LogSigmoid returns log(sigmoid(x)) element-wise.
func (o *Ops) LogSigmoid(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("LogSigmoid", tensor.UnaryLogSigmoid, x)
}

// Softplus returns log(1 + e^x) element-wise.
func (o *Ops) Softplus(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("Softplus", tensor.UnarySoftplus, x)
}

// IsInf reports which elements are infinite.
func (o *Ops) IsInf(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("IsInf", tensor.UnaryIsInf, x)
}

// IsNaN reports which elements are NaN.
func (o *Ops) IsNaN(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.unary("IsNaN", tensor.UnaryIsNaN, x)
}

// Identity returns a copy of x.
func (o *Ops) Identity(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return x.Clone(), nil
}

// Real returns the real part of x. Tensors never hold complex values (Cast refuses
// them), so this is a copy.
func (o *Ops) Real(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return x.Clone(), nil
}

// Angle returns the argument of each element: pi for negative values, 0 otherwise.
// Non-float inputs produce the default float dtype.
func (o *Ops) Angle(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.call("Angle", func() *tensor.RawTensor {
		f := o.floating(x)
		dt := f.DType()
		negative := o.backend.Compare(tensor.CompareLess, f, o.scalar(0, dt))
		return o.backend.Where(negative, o.scalar(math.Pi, dt), o.backend.Full(f.Shape(), dt, 0))
	})
}
