package ops

import (
	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
)

// Gather picks slices of params along axis. The output shape is
// params.shape[:axis] + indices.shape + params.shape[axis+1:].
func (o *Ops) Gather(params, indices *tensor.RawTensor, axis int) (*tensor.RawTensor, error) {
	return o.call("Gather", func() *tensor.RawTensor {
		return o.backend.Gather(params, indices, axis)
	})
}

// GatherND picks slices of params addressed by the innermost dimension of indices,
// after batchDims leading dimensions shared by both.
func (o *Ops) GatherND(params, indices *tensor.RawTensor, batchDims int) (*tensor.RawTensor, error) {
	return o.call("GatherND", func() *tensor.RawTensor {
		return o.backend.GatherND(params, indices, batchDims)
	})
}

// EmbeddingLookup gathers rows of params. With maxNorm > 0 each gathered row whose L2
// norm exceeds maxNorm is rescaled to norm maxNorm.
func (o *Ops) EmbeddingLookup(params, ids *tensor.RawTensor, maxNorm float64) (*tensor.RawTensor, error) {
	return o.call("EmbeddingLookup", func() *tensor.RawTensor {
		b := o.backend
		rows := b.Gather(params, ids, 0)
		if maxNorm <= 0 {
			return rows
		}
		f := o.floating(rows)
		dt := f.DType()
		limit := o.scalar(maxNorm, dt)
		norm := b.Unary(tensor.UnarySqrt, b.Reduce(tensor.ReduceSum, b.Unary(tensor.UnarySquare, f), []int{-1}, true))
		scale := b.Binary(tensor.BinaryDiv, limit, b.Binary(tensor.BinaryMax, norm, limit))
		return b.Binary(tensor.BinaryMul, f, scale)
	})
}

// OneHot expands integer indices into vectors of length depth holding onValue at the
// index and offValue elsewhere. The new dimension goes at axis (-1 for innermost).
// Out-of-range indices produce an all-offValue vector.
func (o *Ops) OneHot(indices *tensor.RawTensor, depth int, onValue, offValue float64, axis int, dtype tensor.DataType) (*tensor.RawTensor, error) {
	if depth < 0 {
		return nil, errors.Errorf("OneHot: depth must be >= 0, got %d", depth)
	}
	dtype = o.dtypeOr(dtype)
	return o.call("OneHot", func() *tensor.RawTensor {
		return o.backend.OneHot(indices, depth, onValue, offValue, axis, dtype)
	})
}

// sortedSegment reduces rows of data into segments given by sorted segment ids.
// The number of segments is the largest id plus one.
func (o *Ops) sortedSegment(name string, op tensor.SegmentOp, data, ids *tensor.RawTensor) (*tensor.RawTensor, error) {
	if ids.Rank() != 1 {
		return nil, errors.Errorf("%s: segment ids must be 1-D, got shape %v", name, ids.Shape())
	}
	if !ids.DType().IsInteger() {
		return nil, errors.Errorf("%s: segment ids must be integers, got %s", name, ids.DType())
	}
	wide, err := o.Cast(ids, tensor.Int64)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	vals := wide.AsInt64()
	for i, id := range vals {
		if id < 0 {
			return nil, errors.Errorf("%s: segment id %d at position %d is negative", name, id, i)
		}
		if i > 0 && id < vals[i-1] {
			return nil, errors.Errorf("%s: segment ids are not sorted at position %d", name, i)
		}
	}
	return o.call(name, func() *tensor.RawTensor {
		return o.backend.Segment(op, data, ids, -1)
	})
}

// SegmentSum sums the rows of data sharing a segment id. Ids must be sorted.
func (o *Ops) SegmentSum(data, segmentIDs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.sortedSegment("SegmentSum", tensor.SegmentSum, data, segmentIDs)
}

// SegmentMean averages the rows of data sharing a segment id. Ids must be sorted.
func (o *Ops) SegmentMean(data, segmentIDs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.sortedSegment("SegmentMean", tensor.SegmentMean, data, segmentIDs)
}

// SegmentMax takes the maximum of the rows sharing a segment id. Empty segments are 0.
func (o *Ops) SegmentMax(data, segmentIDs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.sortedSegment("SegmentMax", tensor.SegmentMax, data, segmentIDs)
}

// SegmentMin takes the minimum of the rows sharing a segment id. Empty segments are 0.
func (o *Ops) SegmentMin(data, segmentIDs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.sortedSegment("SegmentMin", tensor.SegmentMin, data, segmentIDs)
}

// SegmentProd multiplies the rows sharing a segment id. Empty segments are 0.
func (o *Ops) SegmentProd(data, segmentIDs *tensor.RawTensor) (*tensor.RawTensor, error) {
	return o.sortedSegment("SegmentProd", tensor.SegmentProd, data, segmentIDs)
}

func (o *Ops) unsortedSegment(name string, op tensor.SegmentOp, data, ids *tensor.RawTensor, numSegments int) (*tensor.RawTensor, error) {
	if numSegments < 0 {
		return nil, errors.Errorf("%s: numSegments must be >= 0, got %d", name, numSegments)
	}
	return o.call(name, func() *tensor.RawTensor {
		return o.backend.Segment(op, data, ids, numSegments)
	})
}

// UnsortedSegmentSum sums rows of data into numSegments buckets. Negative ids are dropped.
func (o *Ops) UnsortedSegmentSum(data, segmentIDs *tensor.RawTensor, numSegments int) (*tensor.RawTensor, error) {
	return o.unsortedSegment("UnsortedSegmentSum", tensor.SegmentSum, data, segmentIDs, numSegments)
}

// UnsortedSegmentMean averages rows of data into numSegments buckets.
func (o *Ops) UnsortedSegmentMean(data, segmentIDs *tensor.RawTensor, numSegments int) (*tensor.RawTensor, error) {
	return o.unsortedSegment("UnsortedSegmentMean", tensor.SegmentMean, data, segmentIDs, numSegments)
}

// UnsortedSegmentMax takes the maximum of rows per bucket. Empty buckets are 0.
func (o *Ops) UnsortedSegmentMax(data, segmentIDs *tensor.RawTensor, numSegments int) (*tensor.RawTensor, error) {
	return o.unsortedSegment("UnsortedSegmentMax", tensor.SegmentMax, data, segmentIDs, numSegments)
}

// UnsortedSegmentMin takes the minimum of rows per bucket. Empty buckets are 0.
func (o *Ops) UnsortedSegmentMin(data, segmentIDs *tensor.RawTensor, numSegments int) (*tensor.RawTensor, error) {
	return o.unsortedSegment("UnsortedSegmentMin", tensor.SegmentMin, data, segmentIDs, numSegments)
}
