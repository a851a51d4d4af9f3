package ops

import "github.com/born-ml/opbridge/tensor"

// Callable operations bind their arguments at construction and apply them on Call.
// They keep private copies of slice arguments and never change after construction.

// MatMul multiplies two tensors with fixed transposition flags.
type MatMul struct {
	ops                    *Ops
	transposeA, transposeB bool
}

// NewMatMul returns a MatMul with fixed transposition flags.
func (o *Ops) NewMatMul(transposeA, transposeB bool) *MatMul {
	return &MatMul{ops: o, transposeA: transposeA, transposeB: transposeB}
}

// Call multiplies a by b.
func (m *MatMul) Call(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return m.ops.MatMul(a, b, m.transposeA, m.transposeB)
}

// Maximum is the element-wise maximum.
type Maximum struct{ ops *Ops }

// NewMaximum returns a Maximum.
func (o *Ops) NewMaximum() *Maximum { return &Maximum{ops: o} }

// Call returns the element-wise maximum of a and b.
func (m *Maximum) Call(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return m.ops.Maximum(a, b)
}

// Minimum is the element-wise minimum.
type Minimum struct{ ops *Ops }

// NewMinimum returns a Minimum.
func (o *Ops) NewMinimum() *Minimum { return &Minimum{ops: o} }

// Call returns the element-wise minimum of a and b.
func (m *Minimum) Call(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return m.ops.Minimum(a, b)
}

// FlattenReshape collapses all but the first dimension.
type FlattenReshape struct{ ops *Ops }

// NewFlattenReshape returns a FlattenReshape.
func (o *Ops) NewFlattenReshape() *FlattenReshape { return &FlattenReshape{ops: o} }

// Call flattens x to [batch, rest].
func (f *FlattenReshape) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return f.ops.FlattenReshape(x)
}

// Reshape reshapes to a fixed shape.
type Reshape struct {
	ops   *Ops
	shape tensor.Shape
}

// NewReshape returns a Reshape to shape.
func (o *Ops) NewReshape(shape tensor.Shape) *Reshape {
	return &Reshape{ops: o, shape: shape.Clone()}
}

// Call reshapes x.
func (r *Reshape) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return r.ops.Reshape(x, r.shape)
}

// Concat concatenates along a fixed axis.
type Concat struct {
	ops  *Ops
	axis int
}

// NewConcat returns a Concat along axis.
func (o *Ops) NewConcat(axis int) *Concat { return &Concat{ops: o, axis: axis} }

// Call concatenates xs.
func (c *Concat) Call(xs []*tensor.RawTensor) (*tensor.RawTensor, error) {
	return c.ops.Concat(xs, c.axis)
}

// reduceConfig is shared by the reduction callables.
type reduceConfig struct {
	ops      *Ops
	axes     []int
	keepDims bool
}

func (o *Ops) newReduceConfig(axes []int, keepDims bool) reduceConfig {
	var ax []int
	if axes != nil {
		ax = append([]int{}, axes...)
	}
	return reduceConfig{ops: o, axes: ax, keepDims: keepDims}
}

// ReduceSum sums over fixed axes.
type ReduceSum struct{ reduceConfig }

// NewReduceSum returns a ReduceSum over axes. Nil axes reduce everything.
func (o *Ops) NewReduceSum(axes []int, keepDims bool) *ReduceSum {
	return &ReduceSum{o.newReduceConfig(axes, keepDims)}
}

// Call sums x.
func (r *ReduceSum) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return r.ops.ReduceSum(x, r.axes, r.keepDims)
}

// ReduceMean averages over fixed axes.
type ReduceMean struct{ reduceConfig }

// NewReduceMean returns a ReduceMean over axes. Nil axes reduce everything.
func (o *Ops) NewReduceMean(axes []int, keepDims bool) *ReduceMean {
	return &ReduceMean{o.newReduceConfig(axes, keepDims)}
}

// Call averages x.
func (r *ReduceMean) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return r.ops.ReduceMean(x, r.axes, r.keepDims)
}

// ReduceMax takes the maximum over fixed axes.
type ReduceMax struct{ reduceConfig }

// NewReduceMax returns a ReduceMax over axes. Nil axes reduce everything.
func (o *Ops) NewReduceMax(axes []int, keepDims bool) *ReduceMax {
	return &ReduceMax{o.newReduceConfig(axes, keepDims)}
}

// Call takes the maximum of x.
func (r *ReduceMax) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return r.ops.ReduceMax(x, r.axes, r.keepDims)
}

// CountNonzero counts non-zero elements over fixed axes.
type CountNonzero struct {
	reduceConfig
	dtype tensor.DataType
}

// NewCountNonzero returns a CountNonzero over axes producing dtype.
func (o *Ops) NewCountNonzero(axes []int, keepDims bool, dtype tensor.DataType) *CountNonzero {
	return &CountNonzero{reduceConfig: o.newReduceConfig(axes, keepDims), dtype: dtype}
}

// Call counts the non-zero elements of x.
func (c *CountNonzero) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return c.ops.CountNonzero(x, c.axes, c.keepDims, c.dtype)
}

// Unstack splits along a fixed axis.
type Unstack struct {
	ops       *Ops
	axis, num int
}

// NewUnstack returns an Unstack along axis. num 0 takes the dimension size.
func (o *Ops) NewUnstack(axis, num int) *Unstack { return &Unstack{ops: o, axis: axis, num: num} }

// Call splits x into rank-reduced slices.
func (u *Unstack) Call(x *tensor.RawTensor) ([]*tensor.RawTensor, error) {
	return u.ops.Unstack(x, u.axis, u.num)
}

// Stack stacks along a fixed new axis.
type Stack struct {
	ops  *Ops
	axis int
}

// NewStack returns a Stack along a new axis.
func (o *Ops) NewStack(axis int) *Stack { return &Stack{ops: o, axis: axis} }

// Call stacks xs.
func (s *Stack) Call(xs []*tensor.RawTensor) (*tensor.RawTensor, error) {
	return s.ops.Stack(xs, s.axis)
}

// Meshgrid builds coordinate grids with fixed indexing.
type Meshgrid struct {
	ops      *Ops
	indexing string
}

// NewMeshgrid returns a Meshgrid with "xy" or "ij" indexing.
func (o *Ops) NewMeshgrid(indexing string) *Meshgrid { return &Meshgrid{ops: o, indexing: indexing} }

// Call builds the grids for xs.
func (m *Meshgrid) Call(xs ...*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	return m.ops.Meshgrid(m.indexing, xs...)
}

// ExpandDims inserts a size-1 dimension at a fixed axis.
type ExpandDims struct {
	ops  *Ops
	axis int
}

// NewExpandDims returns an ExpandDims inserting at axis.
func (o *Ops) NewExpandDims(axis int) *ExpandDims { return &ExpandDims{ops: o, axis: axis} }

// Call inserts a size-1 dimension into x.
func (e *ExpandDims) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return e.ops.ExpandDims(x, e.axis)
}

// Tile repeats by fixed multiples.
type Tile struct {
	ops       *Ops
	multiples []int
}

// NewTile returns a Tile with the given repetitions per dimension.
func (o *Ops) NewTile(multiples []int) *Tile {
	return &Tile{ops: o, multiples: append([]int(nil), multiples...)}
}

// Call tiles x.
func (t *Tile) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return t.ops.Tile(x, t.multiples)
}

// Cast converts to a fixed dtype.
type Cast struct {
	ops   *Ops
	dtype tensor.DataType
}

// NewCast returns a Cast to dtype.
func (o *Ops) NewCast(dtype tensor.DataType) *Cast { return &Cast{ops: o, dtype: dtype} }

// Call converts x.
func (c *Cast) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return c.ops.Cast(x, c.dtype)
}

// Transpose permutes by a fixed permutation.
type Transpose struct {
	ops       *Ops
	perm      []int
	conjugate bool
}

// NewTranspose returns a Transpose with perm. Nil perm reverses the dimensions.
func (o *Ops) NewTranspose(perm []int, conjugate bool) *Transpose {
	var p []int
	if perm != nil {
		p = append([]int{}, perm...)
	}
	return &Transpose{ops: o, perm: p, conjugate: conjugate}
}

// Call transposes x.
func (t *Transpose) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return t.ops.Transpose(x, t.perm, t.conjugate)
}

// Floor rounds down.
type Floor struct{ ops *Ops }

// NewFloor returns a Floor.
func (o *Ops) NewFloor() *Floor { return &Floor{ops: o} }

// Call rounds x down.
func (f *Floor) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) { return f.ops.Floor(x) }

// Ceil rounds up.
type Ceil struct{ ops *Ops }

// NewCeil returns a Ceil.
func (o *Ops) NewCeil() *Ceil { return &Ceil{ops: o} }

// Call rounds x up.
func (c *Ceil) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) { return c.ops.Ceil(x) }

// Sign takes the element-wise sign.
type Sign struct{ ops *Ops }

// NewSign returns a Sign.
func (o *Ops) NewSign() *Sign { return &Sign{ops: o} }

// Call returns the sign of x.
func (s *Sign) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) { return s.ops.Sign(x) }

// NotEqual compares element-wise for inequality.
type NotEqual struct{ ops *Ops }

// NewNotEqual returns a NotEqual.
func (o *Ops) NewNotEqual() *NotEqual { return &NotEqual{ops: o} }

// Call reports where a and b differ.
func (n *NotEqual) Call(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return n.ops.NotEqual(a, b)
}

// OneHot encodes indices with fixed depth and values.
type OneHot struct {
	ops               *Ops
	depth, axis       int
	onValue, offValue float64
	dtype             tensor.DataType
}

// NewOneHot returns a OneHot with fixed depth, values, axis and dtype.
func (o *Ops) NewOneHot(depth int, onValue, offValue float64, axis int, dtype tensor.DataType) *OneHot {
	return &OneHot{ops: o, depth: depth, onValue: onValue, offValue: offValue, axis: axis, dtype: dtype}
}

// Call encodes indices.
func (h *OneHot) Call(indices *tensor.RawTensor) (*tensor.RawTensor, error) {
	return h.ops.OneHot(indices, h.depth, h.onValue, h.offValue, h.axis, h.dtype)
}

// L2Normalize normalizes over fixed axes.
type L2Normalize struct {
	ops     *Ops
	axes    []int
	epsilon float64
}

// NewL2Normalize returns an L2Normalize over axes.
func (o *Ops) NewL2Normalize(axes []int, epsilon float64) *L2Normalize {
	var ax []int
	if axes != nil {
		ax = append([]int{}, axes...)
	}
	return &L2Normalize{ops: o, axes: ax, epsilon: epsilon}
}

// Call normalizes x.
func (l *L2Normalize) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return l.ops.L2Normalize(x, l.axes, l.epsilon)
}

// EmbeddingLookup gathers rows with a fixed max norm.
type EmbeddingLookup struct {
	ops     *Ops
	maxNorm float64
}

// NewEmbeddingLookup returns an EmbeddingLookup. maxNorm 0 disables clipping.
func (o *Ops) NewEmbeddingLookup(maxNorm float64) *EmbeddingLookup {
	return &EmbeddingLookup{ops: o, maxNorm: maxNorm}
}

// Call looks up ids in params.
func (e *EmbeddingLookup) Call(params, ids *tensor.RawTensor) (*tensor.RawTensor, error) {
	return e.ops.EmbeddingLookup(params, ids, e.maxNorm)
}
