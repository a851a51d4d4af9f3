package ops

import (
	"reflect"

	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
)

// GetTensorShape returns a copy of the shape of x.
func (o *Ops) GetTensorShape(x *tensor.RawTensor) tensor.Shape {
	return x.Shape().Clone()
}

// DType resolves a dtype name such as "float32", "half" or "int64".
func (o *Ops) DType(name string) (tensor.DataType, error) {
	return tensor.ParseDataType(name)
}

// Zeros creates a tensor of the given shape filled with zeros.
func (o *Ops) Zeros(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return o.Constant(0, dtype, shape)
}

// Ones creates a tensor of the given shape filled with ones.
func (o *Ops) Ones(shape tensor.Shape, dtype tensor.DataType) (*tensor.RawTensor, error) {
	return o.Constant(1, dtype, shape)
}

// Constant creates a tensor of the given shape filled with value.
func (o *Ops) Constant(value float64, dtype tensor.DataType, shape tensor.Shape) (*tensor.RawTensor, error) {
	dtype = o.dtypeOr(dtype)
	return o.call("Constant", func() *tensor.RawTensor {
		return o.backend.Full(shape, dtype, value)
	})
}

// ZerosLike creates zeros with the shape of x. InvalidDType keeps the dtype of x.
func (o *Ops) ZerosLike(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if dtype == tensor.InvalidDType {
		dtype = x.DType()
	}
	return o.Constant(0, dtype, x.Shape())
}

// OnesLike creates ones with the shape of x. InvalidDType keeps the dtype of x.
func (o *Ops) OnesLike(x *tensor.RawTensor, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if dtype == tensor.InvalidDType {
		dtype = x.DType()
	}
	return o.Constant(1, dtype, x.Shape())
}

// Range creates the sequence start, start+delta, ... up to but excluding limit.
func (o *Ops) Range(start, limit, delta float64, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if delta == 0 {
		return nil, errors.New("Range: delta must be non-zero")
	}
	dtype = o.dtypeOr(dtype)
	return o.call("Range", func() *tensor.RawTensor {
		return o.backend.Arange(start, limit, delta, dtype)
	})
}

// Linspace creates num evenly spaced values from start to stop inclusive.
func (o *Ops) Linspace(start, stop float64, num int) (*tensor.RawTensor, error) {
	return o.call("Linspace", func() *tensor.RawTensor {
		return o.backend.Linspace(start, stop, num, o.dtype)
	})
}

// ConvertToTensor builds a tensor from a Go value: a scalar, a (nested) slice or array of
// numbers or bools, or an existing *tensor.RawTensor. Nested slices must be rectangular.
// With InvalidDType the dtype follows the Go element type.
func (o *Ops) ConvertToTensor(value any, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if x, ok := value.(*tensor.RawTensor); ok {
		if dtype == tensor.InvalidDType || dtype == x.DType() {
			return x.Clone(), nil
		}
		return o.Cast(x, dtype)
	}

	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return nil, errors.New("ConvertToTensor: nil value")
	}
	shape := shapeOf(v)
	var flat flattened
	if leaf := leafType(v.Type()); leaf.Kind() != reflect.Interface {
		flat.kind = leaf.Kind()
	}
	if err := flat.walk(v, shape, 0); err != nil {
		return nil, errors.WithMessage(err, "ConvertToTensor")
	}

	raw, err := flat.tensor(shape)
	if err != nil {
		return nil, errors.WithMessage(err, "ConvertToTensor")
	}
	if dtype == tensor.InvalidDType || dtype == raw.DType() {
		return raw, nil
	}
	return o.Cast(raw, dtype)
}

// flattened accumulates the leaves of a nested Go value in row-major order.
type flattened struct {
	kind   reflect.Kind
	floats []float64
	ints   []int64
	bools  []bool
}

// shapeOf follows the first element at every nesting level.
func shapeOf(v reflect.Value) tensor.Shape {
	var shape tensor.Shape
	for {
		if v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return shape
		}
		shape = append(shape, v.Len())
		if v.Len() == 0 {
			return shape
		}
		v = v.Index(0)
	}
}

func leafType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	return t
}

func (f *flattened) walk(v reflect.Value, shape tensor.Shape, depth int) error {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if depth < len(shape) {
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return errors.Errorf("ragged value: expected a list at depth %d, got %s", depth, v.Kind())
		}
		if v.Len() != shape[depth] {
			return errors.Errorf("ragged value: dimension %d has lengths %d and %d", depth, shape[depth], v.Len())
		}
		for i := 0; i < v.Len(); i++ {
			if err := f.walk(v.Index(i), shape, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if f.kind == reflect.Invalid {
		f.kind = v.Kind()
	}
	if v.Kind() != f.kind {
		return errors.Errorf("mixed element kinds %s and %s", f.kind, v.Kind())
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f.floats = append(f.floats, v.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f.ints = append(f.ints, v.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		f.ints = append(f.ints, int64(v.Uint()))
	case reflect.Bool:
		f.bools = append(f.bools, v.Bool())
	default:
		return errors.Errorf("unsupported element type %s", v.Type())
	}
	return nil
}

func (f *flattened) tensor(shape tensor.Shape) (*tensor.RawTensor, error) {
	switch f.kind {
	case reflect.Float32:
		vals := make([]float32, len(f.floats))
		for i, v := range f.floats {
			vals[i] = float32(v)
		}
		return tensor.FromSlice(vals, shape)
	case reflect.Float64:
		return tensor.FromSlice(f.floats, shape)
	case reflect.Int8:
		return fromInts[int8](f.ints, shape)
	case reflect.Int16:
		return fromInts[int16](f.ints, shape)
	case reflect.Int32:
		return fromInts[int32](f.ints, shape)
	case reflect.Uint8:
		return fromInts[uint8](f.ints, shape)
	case reflect.Int, reflect.Int64, reflect.Uint16, reflect.Uint32:
		return tensor.FromSlice(f.ints, shape)
	case reflect.Bool:
		return tensor.FromSlice(f.bools, shape)
	case reflect.Invalid:
		// Only empty slices: no element type to follow.
		return tensor.FromSlice([]float32{}, shape)
	}
	return nil, errors.Errorf("unsupported element kind %s", f.kind)
}

func fromInts[T int8 | int16 | int32 | uint8](ints []int64, shape tensor.Shape) (*tensor.RawTensor, error) {
	vals := make([]T, len(ints))
	for i, v := range ints {
		vals[i] = T(v)
	}
	return tensor.FromSlice(vals, shape)
}

// ConvertToSlice copies the elements of x into a flat Go slice of the matching type:
// []float32, []float64, []int8, []int16, []int32, []int64, []uint8 or []bool.
// Float16 and BFloat16 tensors are returned as []float32.
func (o *Ops) ConvertToSlice(x *tensor.RawTensor) (any, error) {
	switch x.DType() {
	case tensor.Float32:
		return tensor.Values[float32](x)
	case tensor.Float64:
		return tensor.Values[float64](x)
	case tensor.Int8:
		return tensor.Values[int8](x)
	case tensor.Int16:
		return tensor.Values[int16](x)
	case tensor.Int32:
		return tensor.Values[int32](x)
	case tensor.Int64:
		return tensor.Values[int64](x)
	case tensor.Uint8:
		return tensor.Values[uint8](x)
	case tensor.Bool:
		return tensor.Values[bool](x)
	case tensor.Float16, tensor.BFloat16:
		wide, err := o.Cast(x, tensor.Float32)
		if err != nil {
			return nil, err
		}
		return tensor.Values[float32](wide)
	}
	return nil, errors.Errorf("ConvertToSlice: unsupported dtype %s", x.DType())
}
