// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package backend keeps the registry of numeric engines the ops adapter can forward to.
//
// Engines register a constructor under a short name during package initialization:
//
//	func init() {
//	    backend.Register("cpu", func(config string) (tensor.Backend, error) {
//	        return cpu.NewWithConfig(config)
//	    })
//	}
//
// and callers select one with a configuration string "<name>:<engine config>":
//
//	b, err := backend.NewWithConfig("cpu:workers=4")
package backend

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Constructor builds an engine from an engine-specific configuration string (possibly empty).
type Constructor func(config string) (tensor.Backend, error)

// EnvVar is the environment variable holding the default backend configuration.
//
// The format is "<backend_name>:<backend_configuration>", e.g. "cpu:workers=2".
const EnvVar = "OPBRIDGE_BACKEND"

// DefaultConfig is used by New when EnvVar is not set.
var DefaultConfig string

var (
	mu              sync.RWMutex
	constructors    = make(map[string]Constructor)
	firstRegistered string
)

// Register makes an engine available under name. Registering a name twice replaces the constructor.
//
// To be safe, call Register during initialization of a package.
func Register(name string, constructor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	if len(constructors) == 0 {
		firstRegistered = name
	}
	constructors[name] = constructor
	klog.V(2).Infof("backend %q registered", name)
}

// List returns the registered backend names in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	return listLocked()
}

// New returns the default backend.
//
// The default is, in order:
//
//  1. The configuration in the environment variable OPBRIDGE_BACKEND, if set.
//  2. DefaultConfig, if not empty.
//  3. The first registered backend with an empty configuration.
func New() (tensor.Backend, error) {
	if config, found := os.LookupEnv(EnvVar); found {
		return NewWithConfig(config)
	}
	return NewWithConfig(DefaultConfig)
}

// NewWithConfig builds the backend described by config.
//
// The format of config is "<backend_name>:<backend_configuration>". A bare "<backend_name>"
// uses an empty configuration, and an empty config selects the first registered backend.
func NewWithConfig(config string) (tensor.Backend, error) {
	mu.RLock()
	defer mu.RUnlock()
	if len(constructors) == 0 {
		return nil, errors.New(`no registered backends, import one such as _ "github.com/born-ml/opbridge/backend/cpu"`)
	}
	name, engineConfig, _ := strings.Cut(config, ":")
	if name == "" {
		name = firstRegistered
	}
	constructor, found := constructors[name]
	if !found {
		return nil, errors.Errorf("can't find backend %q for configuration %q, registered: %s",
			name, config, strings.Join(listLocked(), ", "))
	}
	b, err := constructor(engineConfig)
	if err != nil {
		return nil, errors.WithMessagef(err, "creating backend %q", name)
	}
	klog.V(1).Infof("using backend %q (config %q) on %s", b.Name(), engineConfig, b.Device())
	return b, nil
}

func listLocked() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
