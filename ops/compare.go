package ops

import "github.com/born-ml/opbridge/tensor"

// Comparisons broadcast their operands, which must share a dtype, and return bool tensors.

func (o *Ops) compare(name string, op tensor.CompareOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.call(name, func() *tensor.RawTensor {
		return o.backend.Compare(op, a, b)
	})
}

func (o *Ops) Equal(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.compare("Equal", tensor.CompareEqual, a, b)
}

func (o *Ops) NotEqual(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.compare("NotEqual", tensor.CompareNotEqual, a, b)
}

func (o *Ops) Greater(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.compare("Greater", tensor.CompareGreater, a, b)
}

func (o *Ops) GreaterEqual(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.compare("GreaterEqual", tensor.CompareGreaterEqual, a, b)
}

func (o *Ops) Less(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.compare("Less", tensor.CompareLess, a, b)
}

func (o *Ops) LessEqual(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.compare("LessEqual", tensor.CompareLessEqual, a, b)
}

func (o *Ops) logical(name string, op tensor.LogicalOp, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.call(name, func() *tensor.RawTensor {
		return o.backend.Logical(op, a, b)
	})
}

// LogicalAnd returns a AND b element-wise. Non-bool inputs are read as value != 0.
func (o *Ops) LogicalAnd(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.logical("LogicalAnd", tensor.LogicalAnd, a, b)
}

// LogicalOr returns a OR b element-wise.
func (o *Ops) LogicalOr(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.logical("LogicalOr", tensor.LogicalOr, a, b)
}

// LogicalXor returns a XOR b element-wise.
func (o *Ops) LogicalXor(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.logical("LogicalXor", tensor.LogicalXor, a, b)
}

// LogicalNot returns NOT x element-wise.
func (o *Ops) LogicalNot(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.call("LogicalNot", func() *tensor.RawTensor {
		return o.backend.Not(x)
	})
}

// Where picks x where condition holds and y elsewhere. x and y must share a dtype;
// all three operands broadcast.
func (o *Ops) Where(condition, x, y *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.call("Where", func() *tensor.RawTensor {
		return o.backend.Where(condition, x, y)
	})
}
