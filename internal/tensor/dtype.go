// Package tensor provides the core tensor storage types and the engine interface for opbridge.
package tensor

import (
	"fmt"
	"strings"
)

// DType is a constraint for the Go element types that map onto a DataType.
type DType interface {
	~float32 | ~float64 | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types. Complex64 and Complex128 are recognized by name but cannot be stored.
const (
	InvalidDType DataType = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Float16
	BFloat16
	Float32
	Float64
	Complex64
	Complex128
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Bool, Int8, Uint8:
		return 1
	case Int16, Float16, BFloat16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic(fmt.Sprintf("unknown data type %d", int(dt)))
	}
}

// String returns the canonical lower-case name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "invalid"
	}
}

// IsFloat reports whether the type is a real floating point type.
func (dt DataType) IsFloat() bool {
	switch dt {
	case Float16, BFloat16, Float32, Float64:
		return true
	}
	return false
}

// IsInteger reports whether the type is a signed or unsigned integer type.
func (dt DataType) IsInteger() bool {
	switch dt {
	case Int8, Int16, Int32, Int64, Uint8:
		return true
	}
	return false
}

// IsComplex reports whether the type is a complex type.
func (dt DataType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// Storable reports whether tensors of this type can be allocated.
func (dt DataType) Storable() bool {
	return dt > InvalidDType && dt < Complex64
}

var dtypeAliases = map[string]DataType{
	"bool":       Bool,
	"int8":       Int8,
	"int16":      Int16,
	"short":      Int16,
	"int32":      Int32,
	"int":        Int32,
	"int64":      Int64,
	"long":       Int64,
	"uint8":      Uint8,
	"byte":       Uint8,
	"float16":    Float16,
	"half":       Float16,
	"bfloat16":   BFloat16,
	"float32":    Float32,
	"float":      Float32,
	"float64":    Float64,
	"double":     Float64,
	"complex64":  Complex64,
	"complex128": Complex128,
}

// ParseDataType resolves a dtype name ("float32", "half", "int64", ...) to a DataType.
func ParseDataType(name string) (DataType, error) {
	dt, ok := dtypeAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return InvalidDType, fmt.Errorf("unknown dtype %q", name)
	}
	return dt, nil
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
