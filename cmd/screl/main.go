package main

import (
	"errors"
	"fmt"
	"os"

	"screl/pkg/host"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errMismatch) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "screl",
		Short: "Syscall relevancy lookup and generation",
		Long: `screl answers whether a syscall is expected to exist on a given
architecture and bit width, based on a syscall relevancy rule file, and
generates such rule files from observed per-architecture syscall lists.

Examples:
  screl lookup relevancy --match clone,s390x,64 --match open,x86_64
  screl lookup relevancy --list aarch64,64
  screl gen --loaddir observed/ --rel relevancy`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newLookupCmd(), newGenCmd(), newHostCmd())
	return rootCmd
}

func newHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "host",
		Short: "Print the detected arch:bits of this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := host.Detect()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}
}
