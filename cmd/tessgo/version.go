package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tessgo/pkg/tesseract"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "tessgo %s\n", Version)
		fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		if v, err := tesseract.Version(); err != nil {
			fmt.Fprintf(out, "  Tesseract:  unavailable (%v)\n", err)
		} else {
			fmt.Fprintf(out, "  Tesseract:  %s\n", v)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
