// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ops

import (
	"sync"
	"sync/atomic"

	"github.com/born-ml/opbridge/backend"
	"github.com/born-ml/opbridge/backend/cpu"
	"github.com/born-ml/opbridge/tensor"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ErrNotImplemented is returned by operations the adapter exposes but does not support.
// Test for it with errors.Is.
var ErrNotImplemented = errors.New("not implemented")

// Ops binds the operation set to one engine.
//
// All methods are safe for concurrent use. Results are always new tensors: no method
// modifies its inputs.
type Ops struct {
	backend tensor.Backend
	dtype   tensor.DataType
	seed    uint64

	seedCounter atomic.Uint64

	varMu    sync.Mutex
	varNames map[string]int
}

// New creates an adapter forwarding to b, with float32 as the default dtype and
// nondeterministic random seeds.
func New(b tensor.Backend) *Ops {
	return &Ops{
		backend:  b,
		dtype:    tensor.Float32,
		varNames: make(map[string]int),
	}
}

// Option configures an Ops.
type Option func(o *Ops) error

// WithBackend selects the engine.
func WithBackend(b tensor.Backend) Option {
	return func(o *Ops) error {
		if b == nil {
			return errors.New("nil backend")
		}
		o.backend = b
		return nil
	}
}

// WithBackendConfig selects the engine from the registry, see backend.NewWithConfig.
func WithBackendConfig(config string) Option {
	return func(o *Ops) error {
		b, err := backend.NewWithConfig(config)
		if err != nil {
			return err
		}
		o.backend = b
		return nil
	}
}

// WithSeed sets the seed used by random operations called with seed 0.
// Successive calls draw distinct, reproducible sequences. Seed 0 means nondeterministic.
func WithSeed(seed uint64) Option {
	return func(o *Ops) error {
		o.seed = seed
		return nil
	}
}

// WithDefaultDType sets the dtype used when an operation is called with tensor.InvalidDType.
func WithDefaultDType(dtype tensor.DataType) Option {
	return func(o *Ops) error {
		if !dtype.Storable() {
			return errors.Errorf("default dtype %s cannot be stored", dtype)
		}
		o.dtype = dtype
		return nil
	}
}

// With returns a copy of o with the options applied. o itself is unchanged.
func (o *Ops) With(opts ...Option) (*Ops, error) {
	out := New(o.backend)
	out.dtype = o.dtype
	out.seed = o.seed
	for _, opt := range opts {
		if err := opt(out); err != nil {
			return nil, errors.WithMessage(err, "configuring ops")
		}
	}
	return out, nil
}

// Backend returns the engine operations are forwarded to.
func (o *Ops) Backend() tensor.Backend {
	return o.backend
}

// DefaultDType returns the dtype used when none is given.
func (o *Ops) DefaultDType() tensor.DataType {
	return o.dtype
}

var (
	defaultMu  sync.Mutex
	defaultOps *Ops
)

// Default returns the process-wide adapter. It is built on first use from backend.New,
// falling back to the CPU engine when the registry configuration cannot be satisfied.
func Default() *Ops {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLocked()
}

// defaultLocked requires defaultMu.
func defaultLocked() *Ops {
	if defaultOps == nil {
		b, err := backend.New()
		if err != nil {
			klog.Warningf("ops: %v; falling back to the %q backend", err, cpu.Name)
			b = cpu.New()
		}
		defaultOps = New(b)
	}
	return defaultOps
}

// SetContext reconfigures the process-wide adapter returned by Default. Concurrent
// calls are serialized, each applying its options on top of the previous result.
func SetContext(opts ...Option) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	next, err := defaultLocked().With(opts...)
	if err != nil {
		return err
	}
	defaultOps = next
	klog.V(1).Infof("ops: default context now uses backend %q, dtype %s", next.backend.Name(), next.dtype)
	return nil
}

// call runs an engine primitive, converting its panics into an error prefixed with op.
func (o *Ops) call(op string, fn func() *tensor.RawTensor) (*tensor.RawTensor, error) {
	var out *tensor.RawTensor
	if err := o.try(op, func() { out = fn() }); err != nil {
		return nil, err
	}
	return out, nil
}

// callN is call for primitives returning several tensors.
func (o *Ops) callN(op string, fn func() []*tensor.RawTensor) ([]*tensor.RawTensor, error) {
	var out []*tensor.RawTensor
	if err := o.try(op, func() { out = fn() }); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Ops) try(op string, fn func()) error {
	if klog.V(3).Enabled() {
		klog.Infof("ops: %s on %s", op, o.backend.Name())
	}
	err := exceptions.TryCatch[error](fn)
	if err != nil {
		return errors.WithMessage(err, op)
	}
	return nil
}

// dtypeOr returns dt, or the default dtype when dt is tensor.InvalidDType.
func (o *Ops) dtypeOr(dt tensor.DataType) tensor.DataType {
	if dt == tensor.InvalidDType {
		return o.dtype
	}
	return dt
}

// scalar builds a rank-0 tensor of dtype holding v.
func (o *Ops) scalar(v float64, dtype tensor.DataType) *tensor.RawTensor {
	return o.backend.Full(tensor.Shape{}, dtype, v)
}

// floating returns x unchanged when it holds floats, or x cast to the default dtype.
func (o *Ops) floating(x *tensor.RawTensor) *tensor.RawTensor {
	if x.DType().IsFloat() {
		return x
	}
	dt := o.dtype
	if !dt.IsFloat() {
		dt = tensor.Float32
	}
	return o.backend.Cast(x, dt)
}

// notImplemented builds the error returned by unsupported operations.
func notImplemented(op, detail string) error {
	return errors.Wrapf(ErrNotImplemented, "%s: %s", op, detail)
}
