package ops

import (
	"strings"

	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ParsePadMode resolves a padding mode name, case-insensitively: "CONSTANT", "REFLECT"
// or "SYMMETRIC". An empty name means CONSTANT.
func ParsePadMode(name string) (tensor.PadMode, error) {
	switch strings.ToUpper(name) {
	case "", "CONSTANT":
		return tensor.PadConstant, nil
	case "REFLECT":
		return tensor.PadReflect, nil
	case "SYMMETRIC":
		return tensor.PadSymmetric, nil
	}
	return 0, errors.Errorf("unsupported padding mode %q", name)
}

// channelsLastLayout is the layout a padded tensor of the given rank is read as.
func channelsLastLayout(rank int) (tensor.Layout, error) {
	switch rank {
	case 3:
		return tensor.NLC, nil
	case 4:
		return tensor.NHWC, nil
	case 5:
		return tensor.NDHWC, nil
	}
	return 0, errors.Errorf("input must have rank 3, 4 or 5, got %d", rank)
}

// CorrectPaddings maps per-dimension (before, after) paddings of a channels-last tensor of
// the given rank onto the engine's flat list, which starts at the last spatial dimension:
//
//	rank 3 (NLC):   [L0, L1]
//	rank 4 (NHWC):  [W0, W1, H0, H1]
//	rank 5 (NDHWC): [W0, W1, H0, H1, D0, D1]
//
// Batch and channel paddings are not part of the result.
func CorrectPaddings(rank int, paddings [][2]int) ([]int, error) {
	if _, err := channelsLastLayout(rank); err != nil {
		return nil, err
	}
	if len(paddings) != rank {
		return nil, errors.Errorf("got %d paddings for a rank %d input", len(paddings), rank)
	}
	flat := make([]int, 0, 2*(rank-2))
	for d := rank - 2; d >= 1; d-- {
		flat = append(flat, paddings[d][0], paddings[d][1])
	}
	return flat, nil
}

// Pad is a reusable padding operation for channels-last tensors.
// It is immutable: calling it never changes its configuration.
type Pad struct {
	ops      *Ops
	paddings [][2]int
	mode     tensor.PadMode
	value    float64
}

// NewPad creates a Pad. paddings holds one (before, after) pair per input dimension.
// mode is "CONSTANT", "REFLECT" or "SYMMETRIC" (case-insensitive); constantValue fills
// CONSTANT padding.
func (o *Ops) NewPad(paddings [][2]int, mode string, constantValue float64) (*Pad, error) {
	m, err := ParsePadMode(mode)
	if err != nil {
		return nil, errors.WithMessage(err, "Pad")
	}
	for i, p := range paddings {
		if p[0] < 0 || p[1] < 0 {
			return nil, errors.Errorf("Pad: negative padding %v for dimension %d", p, i)
		}
	}
	return &Pad{
		ops:      o,
		paddings: append([][2]int(nil), paddings...),
		mode:     m,
		value:    constantValue,
	}, nil
}

// Call pads x, read as NLC, NHWC or NDHWC according to its rank.
func (p *Pad) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	rank := x.Rank()
	layout, err := channelsLastLayout(rank)
	if err != nil {
		return nil, errors.WithMessage(err, "Pad")
	}
	flat, err := CorrectPaddings(rank, p.paddings)
	if err != nil {
		return nil, errors.WithMessage(err, "Pad")
	}
	if first, last := p.paddings[0], p.paddings[rank-1]; first != [2]int{} || last != [2]int{} {
		klog.Warningf("Pad: ignoring batch padding %v and channel padding %v", first, last)
	}
	return p.ops.call("Pad", func() *tensor.RawTensor {
		return p.ops.backend.Pad(x, flat, p.mode, p.value, layout)
	})
}

// Pad pads a channels-last tensor, see NewPad.
func (o *Ops) Pad(x *tensor.RawTensor, paddings [][2]int, mode string, constantValue float64) (*tensor.RawTensor, error) {
	p, err := o.NewPad(paddings, mode, constantValue)
	if err != nil {
		return nil, err
	}
	return p.Call(x)
}

// ZeroPadding pads the spatial dimensions of a channels-last tensor with zeros.
type ZeroPadding struct {
	pad *Pad
}

func (o *Ops) newZeroPadding(spatial ...[2]int) (*ZeroPadding, error) {
	paddings := make([][2]int, 0, len(spatial)+2)
	paddings = append(paddings, [2]int{})
	paddings = append(paddings, spatial...)
	paddings = append(paddings, [2]int{})
	p, err := o.NewPad(paddings, "CONSTANT", 0)
	if err != nil {
		return nil, err
	}
	return &ZeroPadding{pad: p}, nil
}

// NewZeroPadding1D pads the length dimension of NLC tensors.
func (o *Ops) NewZeroPadding1D(padding [2]int) (*ZeroPadding, error) {
	return o.newZeroPadding(padding)
}

// NewZeroPadding2D pads the height and width dimensions of NHWC tensors.
func (o *Ops) NewZeroPadding2D(padding [2][2]int) (*ZeroPadding, error) {
	return o.newZeroPadding(padding[0], padding[1])
}

// NewZeroPadding3D pads the depth, height and width dimensions of NDHWC tensors.
func (o *Ops) NewZeroPadding3D(padding [3][2]int) (*ZeroPadding, error) {
	return o.newZeroPadding(padding[0], padding[1], padding[2])
}

// Call pads x with zeros.
func (z *ZeroPadding) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	return z.pad.Call(x)
}
