// Package main provides the opbridge CLI.
package main

import (
	"context"
	"os"

	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()
	if err := NewCLI().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
