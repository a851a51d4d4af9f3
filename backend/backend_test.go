package backend_test

import (
	"testing"

	"github.com/born-ml/opbridge/backend"
	_ "github.com/born-ml/opbridge/backend/cpu"
	"github.com/born-ml/opbridge/tensor"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithConfig(t *testing.T) {
	assert.Contains(t, backend.List(), "cpu")

	b, err := backend.NewWithConfig("cpu:workers=2")
	require.NoError(t, err)
	assert.Equal(t, "cpu", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())

	b, err = backend.NewWithConfig("cpu")
	require.NoError(t, err)
	assert.Equal(t, "cpu", b.Name())

	_, err = backend.NewWithConfig("tpu")
	assert.ErrorContains(t, err, `can't find backend "tpu"`)

	_, err = backend.NewWithConfig("cpu:workers=zero")
	assert.ErrorContains(t, err, `creating backend "cpu"`)
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv(backend.EnvVar, "cpu:minchunk=64")
	b, err := backend.New()
	require.NoError(t, err)
	assert.Equal(t, "cpu", b.Name())

	t.Setenv(backend.EnvVar, "missing:")
	_, err = backend.New()
	assert.Error(t, err)
}

func TestRegisterCustom(t *testing.T) {
	failing := errors.New("no device")
	backend.Register("broken", func(string) (tensor.Backend, error) { return nil, failing })
	_, err := backend.NewWithConfig("broken")
	assert.ErrorIs(t, err, failing)
	assert.Contains(t, backend.List(), "broken")
}
