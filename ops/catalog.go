package ops

import "strings"

// OpInfo describes one adapter operation.
type OpInfo struct {
	Name     string
	Category string
	// Callable is set when the operation also exists as a reusable object built by New<Name>.
	Callable bool
	// Stub is set for operations that always return ErrNotImplemented.
	Stub bool
}

// catalog groups operation names. A trailing "*" marks callables and "!" marks stubs.
var catalog = []struct {
	category string
	names    string
}{
	{"creation", "GetTensorShape Zeros Ones Constant ConvertToTensor ConvertToSlice ZerosLike OnesLike Range Linspace NewVariable DType"},
	{"random", "RandomUniform RandomNormal TruncatedNormal HeNormal XavierNormal XavierUniform"},
	{"linalg", "MatMul* Bmm Triu Tril"},
	{"binary", "Add Subtract Multiply Divide Pow Maximum* Minimum* FloorDiv FloorMod SquaredDifference AddN ClipByValue"},
	{"unary", "Sqrt Rsqrt Exp Log Abs Negative Sign* Floor* Ceil* Round Square Reciprocal Sin Cos Tan Asin Acos Atan " +
		"Sinh Cosh Tanh Asinh Acosh Atanh Sigmoid LogSigmoid Softplus IsInf IsNaN Identity Real Angle"},
	{"compare", "Equal NotEqual* Greater GreaterEqual Less LessEqual LogicalAnd LogicalOr LogicalNot LogicalXor Where"},
	{"reduce", "ReduceSum* ReduceMean* ReduceMax* ReduceMin ReduceProd ReduceStd ReduceVariance Any All Argmax Argmin " +
		"CountNonzero* CumSum CumProd Argsort L2Normalize*"},
	{"shape", "Reshape* FlattenReshape* Concat* Stack* Unstack* Split SplitSizes ExpandDims* Squeeze Tile* Transpose* Cast* Slice Meshgrid*"},
	{"indexing", "Gather GatherND EmbeddingLookup* OneHot* SegmentSum SegmentMean SegmentMax SegmentMin SegmentProd " +
		"UnsortedSegmentSum UnsortedSegmentMean UnsortedSegmentMax UnsortedSegmentMin"},
	{"padding", "Pad* ZeroPadding1D* ZeroPadding2D* ZeroPadding3D*"},
	{"image", "Resize* DepthToSpace BatchToSpace"},
	{"loss", "NCELoss!"},
}

// Catalog lists every adapter operation, grouped by category.
func Catalog() []OpInfo {
	var out []OpInfo
	for _, group := range catalog {
		for _, name := range strings.Fields(group.names) {
			info := OpInfo{Category: group.category}
			info.Name, info.Callable = strings.CutSuffix(name, "*")
			info.Name, info.Stub = strings.CutSuffix(info.Name, "!")
			out = append(out, info)
		}
	}
	return out
}
