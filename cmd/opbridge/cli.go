package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/born-ml/opbridge/backend"
	"github.com/born-ml/opbridge/ops"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

const version = "v0.1.0-dev"

// NewCLI builds the root command.
func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "opbridge",
		Short: "Uniform tensor operations over swappable engines",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
		},
	}

	// klog flags (-v, -logtostderr, ...) ride along as persistent flags.
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	rootCmd.AddCommand(
		newVersionCmd(),
		newBackendsCmd(),
		newOpsCmd(),
		newBenchCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "opbridge %s\n", version)
		},
	}
}

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := backend.New()
			if err != nil {
				return err
			}
			var data [][]string
			for _, name := range backend.List() {
				marker := ""
				if name == def.Name() {
					marker = "*"
				}
				data = append(data, []string{name, marker})
			}
			renderTable(cmd, []string{"NAME", "DEFAULT"}, data)
			return nil
		},
	}
}

func newOpsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops [CATEGORY]",
		Short: "List adapter operations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data [][]string
			for _, info := range ops.Catalog() {
				if len(args) == 1 && !strings.EqualFold(info.Category, args[0]) {
					continue
				}
				status := "ok"
				if info.Stub {
					status = "not implemented"
				}
				callable := ""
				if info.Callable {
					callable = "New" + info.Name
				}
				data = append(data, []string{info.Name, info.Category, callable, status})
			}
			if len(data) == 0 {
				return fmt.Errorf("no operations in category %q", args[0])
			}
			renderTable(cmd, []string{"NAME", "CATEGORY", "CALLABLE", "STATUS"}, data)
			return nil
		},
	}
	return cmd
}

func renderTable(cmd *cobra.Command, header []string, data [][]string) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
