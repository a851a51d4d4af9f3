// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/born-ml/opbridge/backend"
	internalcpu "github.com/born-ml/opbridge/internal/backend/cpu"
	"github.com/born-ml/opbridge/tensor"
)

// Name is the registry name of the CPU backend.
const Name = "cpu"

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go implementations of all engine primitives,
// with matrix products delegated to gonum BLAS.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

func init() {
	backend.Register(Name, func(config string) (tensor.Backend, error) {
		b, err := internalcpu.NewWithConfig(config)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/opbridge/backend/cpu"
//	    "github.com/born-ml/opbridge/ops"
//	)
//
//	func main() {
//	    o := ops.New(cpu.New())
//	    x, _ := o.Zeros(tensor.Shape{2, 3}, tensor.Float32)
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend from options such as "workers=4,minchunk=1024".
func NewWithConfig(config string) (*Backend, error) {
	return internalcpu.NewWithConfig(config)
}
