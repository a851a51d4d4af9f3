package ops

import (
	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
)

// MatMul multiplies the two innermost dimensions of a and b, optionally transposing
// either first. Leading batch dimensions broadcast.
func (o *Ops) MatMul(a, b *tensor.RawTensor, transposeA, transposeB bool) (*tensor.RawTensor, error) {
	return o.call("MatMul", func() *tensor.RawTensor {
		return o.backend.MatMul(a, b, transposeA, transposeB)
	})
}

// Bmm multiplies two batches of matrices of shape [B, N, K] and [B, K, M].
func (o *Ops) Bmm(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	if a.Rank() != 3 || b.Rank() != 3 {
		return nil, errors.Errorf("Bmm: inputs must have rank 3, got %v and %v", a.Shape(), b.Shape())
	}
	if a.Shape()[0] != b.Shape()[0] {
		return nil, errors.Errorf("Bmm: batch sizes %d and %d differ", a.Shape()[0], b.Shape()[0])
	}
	return o.MatMul(a, b, false, false)
}

// Triu zeroes the elements below the k-th diagonal of the two innermost dimensions.
func (o *Ops) Triu(x *tensor.RawTensor, k int) (*tensor.RawTensor, error) {
	return o.call("Triu", func() *tensor.RawTensor {
		return o.backend.Band(x, k, true)
	})
}

// Tril zeroes the elements above the k-th diagonal of the two innermost dimensions.
func (o *Ops) Tril(x *tensor.RawTensor, k int) (*tensor.RawTensor, error) {
	return o.call("Tril", func() *tensor.RawTensor {
		return o.backend.Band(x, k, false)
	})
}
