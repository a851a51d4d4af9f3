package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/born-ml/opbridge/backend"
	"github.com/born-ml/opbridge/ops"
	"github.com/born-ml/opbridge/tensor"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// benchmarks maps a name onto a function running one operation on a size x size input.
var benchmarks = map[string]func(o *ops.Ops, x *tensor.RawTensor) (*tensor.RawTensor, error){
	"matmul": func(o *ops.Ops, x *tensor.RawTensor) (*tensor.RawTensor, error) {
		return o.MatMul(x, x, false, false)
	},
	"add": func(o *ops.Ops, x *tensor.RawTensor) (*tensor.RawTensor, error) {
		return o.Add(x, x)
	},
	"reduce_mean": func(o *ops.Ops, x *tensor.RawTensor) (*tensor.RawTensor, error) {
		return o.ReduceMean(x, []int{-1}, false)
	},
	"pad": func(o *ops.Ops, x *tensor.RawTensor) (*tensor.RawTensor, error) {
		// x is read as a single-channel NLC batch.
		in, err := o.ExpandDims(x, -1)
		if err != nil {
			return nil, err
		}
		return o.Pad(in, [][2]int{{0, 0}, {3, 3}, {0, 0}}, "REFLECT", 0)
	},
}

func benchNames() []string {
	return slices.Sorted(maps.Keys(benchmarks))
}

func newBenchCmd() *cobra.Command {
	var (
		op         string
		size       int
		iterations int
		config     string
		dtypeName  string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time one operation on a square random input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := benchmarks[op]
			if !ok {
				return fmt.Errorf("unknown op %q, want one of %s", op, strings.Join(benchNames(), ", "))
			}
			if size < 1 || iterations < 1 {
				return fmt.Errorf("size and iterations must be positive")
			}
			dtype, err := tensor.ParseDataType(dtypeName)
			if err != nil {
				return err
			}
			opts := []ops.Option{ops.WithSeed(1), ops.WithDefaultDType(dtype)}
			if config != "" {
				opts = append(opts, ops.WithBackendConfig(config))
			}
			o, err := ops.Default().With(opts...)
			if err != nil {
				return err
			}

			x, err := o.RandomUniform(tensor.Shape{size, size}, -1, 1, tensor.InvalidDType, 0)
			if err != nil {
				return err
			}
			start := time.Now()
			for i := 0; i < iterations; i++ {
				if _, err := run(o, x); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)
			perOp := max(elapsed/time.Duration(iterations), time.Nanosecond)
			bytes := uint64(x.ByteSize())

			fmt.Fprintf(cmd.OutOrStdout(), "%s on %s: %v x %s (%s input)\n",
				op, o.Backend().Name(), x.Shape(), dtype, humanize.Bytes(bytes))
			fmt.Fprintf(cmd.OutOrStdout(), "%s iterations, %v per op, %s/s\n",
				humanize.Comma(int64(iterations)), perOp, humanize.Bytes(uint64(float64(bytes)/perOp.Seconds())))
			return nil
		},
	}
	cmd.Flags().StringVar(&op, "op", "matmul", "operation to time")
	cmd.Flags().IntVar(&size, "size", 256, "side of the square input")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 10, "number of runs")
	cmd.Flags().StringVar(&config, "backend", "", "engine as <name>:<config>; defaults to $"+backend.EnvVar)
	cmd.Flags().StringVar(&dtypeName, "dtype", "float32", "element type")
	return cmd
}
