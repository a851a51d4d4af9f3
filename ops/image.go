package ops

import (
	"strings"

	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ParseInterpMode resolves a resize method: "nearest", "linear" or "bilinear".
func ParseInterpMode(method string) (tensor.InterpMode, error) {
	switch strings.ToLower(method) {
	case "nearest":
		return tensor.InterpNearest, nil
	case "linear", "bilinear":
		return tensor.InterpLinear, nil
	}
	return 0, errors.Errorf("unsupported resize method %q", method)
}

// resolveLayout maps a data format ("channels_last", "channels_first" or a layout name
// such as "NHWC") onto the layout of a rank-rank tensor.
func resolveLayout(dataFormat string, rank int) (tensor.Layout, error) {
	if dataFormat == "" {
		dataFormat = "channels_last"
	}
	l, ok := tensor.ParseLayout(dataFormat, rank)
	if !ok || l.Rank() != rank {
		return 0, errors.Errorf("data format %q does not describe a rank %d input", dataFormat, rank)
	}
	return l, nil
}

// Resize scales the spatial dimensions of a feature map by fixed factors.
type Resize struct {
	ops          *Ops
	scale        []float64
	mode         tensor.InterpMode
	alignCorners bool
	dataFormat   string
}

// NewResize creates a Resize. scale holds one factor per spatial dimension; each output
// size is int(size * factor). antialias selects corner-aligned sampling for linear
// resizing. dataFormat is "channels_last" (default), "channels_first" or a layout name.
func (o *Ops) NewResize(scale []float64, method string, antialias bool, dataFormat string) (*Resize, error) {
	mode, err := ParseInterpMode(method)
	if err != nil {
		return nil, errors.WithMessage(err, "Resize")
	}
	if len(scale) == 0 {
		return nil, errors.New("Resize: no scale factors given")
	}
	for _, s := range scale {
		if s <= 0 {
			return nil, errors.Errorf("Resize: scale factors must be positive, got %v", scale)
		}
	}
	if antialias && mode == tensor.InterpNearest {
		klog.Warningf("Resize: antialias has no effect with method %q", method)
	}
	return &Resize{
		ops:          o,
		scale:        append([]float64(nil), scale...),
		mode:         mode,
		alignCorners: antialias && mode == tensor.InterpLinear,
		dataFormat:   dataFormat,
	}, nil
}

// Call resizes x.
func (r *Resize) Call(x *tensor.RawTensor) (*tensor.RawTensor, error) {
	layout, err := resolveLayout(r.dataFormat, x.Rank())
	if err != nil {
		return nil, errors.WithMessage(err, "Resize")
	}
	axes := layout.SpatialAxes()
	if len(axes) != len(r.scale) {
		return nil, errors.Errorf("Resize: %d scale factors for %d spatial dimensions", len(r.scale), len(axes))
	}
	sizes := make([]int, len(axes))
	for i, ax := range axes {
		sizes[i] = int(float64(x.Shape()[ax]) * r.scale[i])
	}
	return r.ops.call("Resize", func() *tensor.RawTensor {
		return r.ops.backend.Interpolate(x, sizes, r.mode, layout, r.alignCorners)
	})
}

// Resize resizes x once, see NewResize.
func (o *Ops) Resize(x *tensor.RawTensor, scale []float64, method string, antialias bool, dataFormat string) (*tensor.RawTensor, error) {
	r, err := o.NewResize(scale, method, antialias, dataFormat)
	if err != nil {
		return nil, err
	}
	return r.Call(x)
}

// DepthToSpace moves blocks of channels into blockSize x blockSize spatial tiles.
// dataFormat is "NHWC" or "NCHW" (or "channels_last"/"channels_first").
func (o *Ops) DepthToSpace(x *tensor.RawTensor, blockSize int, dataFormat string) (*tensor.RawTensor, error) {
	if blockSize < 1 {
		return nil, errors.Errorf("DepthToSpace: block size must be >= 1, got %d", blockSize)
	}
	layout, err := resolveLayout(dataFormat, 4)
	if err != nil {
		return nil, errors.WithMessage(err, "DepthToSpace")
	}
	return o.call("DepthToSpace", func() *tensor.RawTensor {
		return o.backend.PixelShuffle(x, blockSize, layout)
	})
}

// BatchToSpace moves blocks of the batch dimension into the spatial dimensions that follow
// it, then crops. x has shape [batch] + spatial + remaining, with one blockShape entry and
// one (start, end) crop per spatial dimension.
func (o *Ops) BatchToSpace(x *tensor.RawTensor, blockShape []int, crops [][2]int) (*tensor.RawTensor, error) {
	m := len(blockShape)
	shape := x.Shape()
	if m == 0 || x.Rank() < m+1 {
		return nil, errors.Errorf("BatchToSpace: block shape %v does not fit input %v", blockShape, shape)
	}
	if len(crops) != m {
		return nil, errors.Errorf("BatchToSpace: got %d crops for %d block dimensions", len(crops), m)
	}
	prod := 1
	for _, b := range blockShape {
		if b < 1 {
			return nil, errors.Errorf("BatchToSpace: block sizes must be >= 1, got %v", blockShape)
		}
		prod *= b
	}
	if shape[0]%prod != 0 {
		return nil, errors.Errorf("BatchToSpace: batch %d is not divisible by block size %d", shape[0], prod)
	}
	batch := shape[0] / prod
	rest := shape[m+1:]

	// [b1..bM, batch, s1..sM, rest...]
	split := make(tensor.Shape, 0, x.Rank()+m)
	split = append(split, blockShape...)
	split = append(split, batch)
	split = append(split, shape[1:]...)

	// [batch, s1, b1, ..., sM, bM, rest...]
	perm := make([]int, 0, len(split))
	perm = append(perm, m)
	for i := 0; i < m; i++ {
		perm = append(perm, m+1+i, i)
	}
	for i := range rest {
		perm = append(perm, 2*m+1+i)
	}

	merged := make(tensor.Shape, 0, x.Rank())
	merged = append(merged, batch)
	starts := make([]int, x.Rank())
	sizes := make([]int, x.Rank())
	sizes[0] = -1
	for i := 0; i < m; i++ {
		full := shape[i+1] * blockShape[i]
		c := crops[i]
		if c[0] < 0 || c[1] < 0 || c[0]+c[1] > full {
			return nil, errors.Errorf("BatchToSpace: crop %v out of range for dimension of size %d", c, full)
		}
		merged = append(merged, full)
		starts[i+1] = c[0]
		sizes[i+1] = full - c[0] - c[1]
	}
	merged = append(merged, rest...)
	for i := m + 1; i < len(sizes); i++ {
		sizes[i] = -1
	}

	return o.call("BatchToSpace", func() *tensor.RawTensor {
		b := o.backend
		y := b.Transpose(b.Reshape(x, split), perm)
		return b.Slice(b.Reshape(y, merged), starts, sizes)
	})
}
