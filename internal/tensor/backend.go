package tensor

// Backend is the primitive set a numeric engine exposes to the ops adapter.
// Engines own the arithmetic; the adapter only validates, reshapes and forwards.
//
// Engines report invalid input by panicking with an error (see github.com/gomlx/exceptions);
// the adapter recovers and returns it to the caller.
//
// Implementations:
//   - CPU: pure Go with gonum BLAS (internal/backend/cpu)
type Backend interface {
	// Metadata
	Name() string
	Device() Device

	// Creation
	Full(shape Shape, dtype DataType, value float64) *RawTensor
	Arange(start, stop, step float64, dtype DataType) *RawTensor
	Linspace(start, stop float64, num int, dtype DataType) *RawTensor
	RandomUniform(shape Shape, dtype DataType, low, high float64, seed uint64) *RawTensor
	RandomNormal(shape Shape, dtype DataType, mean, stddev float64, seed uint64) *RawTensor
	// TruncatedNormal redraws samples farther than two standard deviations from the mean.
	TruncatedNormal(shape Shape, dtype DataType, mean, stddev float64, seed uint64) *RawTensor

	// Element-wise
	Unary(op UnaryOp, x *RawTensor) *RawTensor
	Binary(op BinaryOp, a, b *RawTensor) *RawTensor     // broadcasting, same dtype
	Compare(op CompareOp, a, b *RawTensor) *RawTensor   // broadcasting, bool result
	Logical(op LogicalOp, a, b *RawTensor) *RawTensor   // broadcasting, bool inputs
	Not(x *RawTensor) *RawTensor                        // logical NOT on bool
	Where(condition, x, y *RawTensor) *RawTensor        // broadcasting select
	Clip(x *RawTensor, low, high float64) *RawTensor    // clamp into [low, high]
	Cast(x *RawTensor, dtype DataType) *RawTensor       // convert element type

	// MatMul multiplies the two innermost dimensions, broadcasting leading batch dimensions.
	MatMul(a, b *RawTensor, transposeA, transposeB bool) *RawTensor

	// Reductions
	Reduce(op ReduceOp, x *RawTensor, axes []int, keepDims bool) *RawTensor // nil axes reduces all
	ArgReduce(op ArgOp, x *RawTensor, axis int, dtype DataType) *RawTensor
	Cumulative(op CumulativeOp, x *RawTensor, axis int, exclusive, reverse bool) *RawTensor
	Argsort(x *RawTensor, axis int, descending bool) *RawTensor // stable, int64 indices

	// Shape manipulation
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Transpose(x *RawTensor, perm []int) *RawTensor
	Concat(xs []*RawTensor, axis int) *RawTensor
	Stack(xs []*RawTensor, axis int) *RawTensor
	Split(x *RawTensor, sizes []int, axis int) []*RawTensor
	Slice(x *RawTensor, starts, sizes []int) *RawTensor
	Tile(x *RawTensor, multiples []int) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Pad pads the spatial dimensions of x for the given layout. pads lists (before, after)
	// pairs starting with the last spatial dimension: [W0, W1, H0, H1, D0, D1].
	Pad(x *RawTensor, pads []int, mode PadMode, value float64, layout Layout) *RawTensor

	// Indexing
	Gather(x, indices *RawTensor, axis int) *RawTensor
	GatherND(x, indices *RawTensor, batchDims int) *RawTensor
	OneHot(indices *RawTensor, depth int, on, off float64, axis int, dtype DataType) *RawTensor
	// Segment reduces rows of x (along axis 0) into numSegments buckets; negative ids are dropped.
	Segment(op SegmentOp, x, ids *RawTensor, numSegments int) *RawTensor
	// Band keeps the upper (or lower) triangle of the two innermost dimensions.
	Band(x *RawTensor, diagonal int, upper bool) *RawTensor

	// Image
	Interpolate(x *RawTensor, sizes []int, mode InterpMode, layout Layout, alignCorners bool) *RawTensor
	PixelShuffle(x *RawTensor, block int, layout Layout) *RawTensor
}

// UnaryOp selects an element-wise unary function.
type UnaryOp int

// Unary operations.
const (
	UnaryAbs UnaryOp = iota
	UnaryNeg
	UnarySign
	UnaryExp
	UnaryLog
	UnarySqrt
	UnaryRsqrt
	UnarySquare
	UnaryReciprocal
	UnaryFloor
	UnaryCeil
	UnaryRound
	UnarySin
	UnaryCos
	UnaryTan
	UnaryAsin
	UnaryAcos
	UnaryAtan
	UnarySinh
	UnaryCosh
	UnaryTanh
	UnaryAsinh
	UnaryAcosh
	UnaryAtanh
	UnarySigmoid
	UnaryLogSigmoid
	UnarySoftplus
	UnaryIsNaN // bool result
	UnaryIsInf // bool result
)

var unaryNames = [...]string{
	"abs", "neg", "sign", "exp", "log", "sqrt", "rsqrt", "square", "reciprocal", "floor", "ceil", "round",
	"sin", "cos", "tan", "asin", "acos", "atan", "sinh", "cosh", "tanh", "asinh", "acosh", "atanh",
	"sigmoid", "log_sigmoid", "softplus", "isnan", "isinf",
}

func (op UnaryOp) String() string {
	if op < 0 || int(op) >= len(unaryNames) {
		return "unary?"
	}
	return unaryNames[op]
}

// BinaryOp selects an element-wise arithmetic function.
type BinaryOp int

// Binary operations.
const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryPow
	BinaryMax
	BinaryMin
	BinaryFloorDiv
	BinaryFloorMod
)

var binaryNames = [...]string{"add", "sub", "mul", "div", "pow", "max", "min", "floordiv", "floormod"}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryNames) {
		return "binary?"
	}
	return binaryNames[op]
}

// CompareOp selects an element-wise comparison.
type CompareOp int

// Comparison operations.
const (
	CompareEqual CompareOp = iota
	CompareNotEqual
	CompareGreater
	CompareGreaterEqual
	CompareLess
	CompareLessEqual
)

// LogicalOp selects an element-wise boolean function.
type LogicalOp int

// Logical operations.
const (
	LogicalAnd LogicalOp = iota
	LogicalOr
	LogicalXor
)

// ReduceOp selects a reduction.
type ReduceOp int

// Reductions. ReduceAny and ReduceAll produce bool tensors.
const (
	ReduceSum ReduceOp = iota
	ReduceMean
	ReduceMax
	ReduceMin
	ReduceProd
	ReduceAny
	ReduceAll
)

// ArgOp selects an index reduction.
type ArgOp int

// Index reductions.
const (
	ArgMax ArgOp = iota
	ArgMin
)

// CumulativeOp selects a scan.
type CumulativeOp int

// Scans.
const (
	CumSum CumulativeOp = iota
	CumProd
)

// SegmentOp selects a segment reduction.
type SegmentOp int

// Segment reductions.
const (
	SegmentSum SegmentOp = iota
	SegmentMean
	SegmentMax
	SegmentMin
	SegmentProd
)

// PadMode selects how padded values are produced.
type PadMode int

// Padding modes.
const (
	PadConstant PadMode = iota
	PadReflect
	PadReplicate
	PadCircular
	PadSymmetric
)

func (m PadMode) String() string {
	switch m {
	case PadConstant:
		return "constant"
	case PadReflect:
		return "reflect"
	case PadReplicate:
		return "replicate"
	case PadCircular:
		return "circular"
	case PadSymmetric:
		return "symmetric"
	}
	return "pad?"
}

// InterpMode selects an interpolation kernel.
type InterpMode int

// Interpolation kernels. InterpLinear is separable linear over every spatial dimension.
const (
	InterpNearest InterpMode = iota
	InterpLinear
)

// Layout names the dimension order of a batched feature map.
type Layout int

// Layouts. Channels-last layouts are NLC, NHWC and NDHWC.
const (
	NCL Layout = iota
	NLC
	NCHW
	NHWC
	NCDHW
	NDHWC
)

var layoutNames = [...]string{"NCL", "NLC", "NCHW", "NHWC", "NCDHW", "NDHWC"}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return "layout?"
	}
	return layoutNames[l]
}

// Rank returns the tensor rank the layout describes.
func (l Layout) Rank() int {
	switch l {
	case NCL, NLC:
		return 3
	case NCHW, NHWC:
		return 4
	default:
		return 5
	}
}

// ChannelsLast reports whether channels are the innermost dimension.
func (l Layout) ChannelsLast() bool {
	return l == NLC || l == NHWC || l == NDHWC
}

// SpatialAxes returns the spatial axes of the layout in order (D, H, W).
func (l Layout) SpatialAxes() []int {
	n := l.Rank() - 2
	axes := make([]int, n)
	start := 2
	if l.ChannelsLast() {
		start = 1
	}
	for i := range axes {
		axes[i] = start + i
	}
	return axes
}

// ChannelAxis returns the channel axis of the layout.
func (l Layout) ChannelAxis() int {
	if l.ChannelsLast() {
		return l.Rank() - 1
	}
	return 1
}

// ParseLayout resolves a layout name, accepting "channels_last"/"channels_first" for a given rank.
func ParseLayout(name string, rank int) (Layout, bool) {
	for i, n := range layoutNames {
		if n == name {
			return Layout(i), true
		}
	}
	var last bool
	switch name {
	case "channels_last":
		last = true
	case "channels_first":
	default:
		return 0, false
	}
	switch rank {
	case 3:
		if last {
			return NLC, true
		}
		return NCL, true
	case 4:
		if last {
			return NHWC, true
		}
		return NCHW, true
	case 5:
		if last {
			return NDHWC, true
		}
		return NCDHW, true
	}
	return 0, false
}
