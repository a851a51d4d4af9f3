package ops

import (
	"fmt"

	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
)

// Variable is a named tensor holding model state.
type Variable struct {
	Name      string
	Value     *tensor.RawTensor
	Trainable bool
}

// NewVariable creates a Variable holding a copy of initial. Names are unique per Ops:
// reusing a name appends "_1", "_2", ... An empty name means "Variable".
func (o *Ops) NewVariable(initial *tensor.RawTensor, name string, trainable bool) (*Variable, error) {
	if initial == nil {
		return nil, errors.New("NewVariable: nil initial value")
	}
	if name == "" {
		name = "Variable"
	}
	return &Variable{
		Name:      o.uniqueName(name),
		Value:     initial.Clone(),
		Trainable: trainable,
	}, nil
}

func (o *Ops) uniqueName(name string) string {
	o.varMu.Lock()
	defer o.varMu.Unlock()
	for {
		n := o.varNames[name]
		o.varNames[name] = n + 1
		if n == 0 {
			return name
		}
		candidate := fmt.Sprintf("%s_%d", name, n)
		if _, taken := o.varNames[candidate]; !taken {
			o.varNames[candidate] = 1
			return candidate
		}
	}
}
