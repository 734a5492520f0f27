package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinbase/cb-gcd-go/pkg/gcd"
)

var Version = &cobra.Command{
	Use:   "version",
	Short: "Prints the library and kernel versions.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cb-gcd-go version: %s\n", gcd.WrapperVersion())
		fmt.Fprintf(out, "kernel version: %s\n", gcd.KernelVersion())
		_, err := fmt.Fprintf(out, "kernel in use: %s\n", engine.Kernel().Name())
		return err
	},
}

func init() {
	Root.AddCommand(Version)
}
