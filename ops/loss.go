package ops

import "github.com/born-ml/opbridge/tensor"

// NCELoss computes the noise-contrastive estimation loss. No engine provides the
// candidate sampler it needs, so it always returns ErrNotImplemented.
func (o *Ops) NCELoss(weights, biases, labels, inputs *tensor.RawTensor, numSampled, numClasses int) (*tensor.RawTensor, error) {
	return nil, notImplemented("NCELoss", "candidate sampling is not supported")
}
