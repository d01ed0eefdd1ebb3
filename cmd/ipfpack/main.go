// Command ipfpack packs, lists, and extracts IPF archives, and dumps IES
// tables to a readable form.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command when ipfpack is invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "ipfpack",
	Short: "Pack, list, and extract IPF archives",
	Long: `ipfpack reads and writes IPF game archives and the IES tables
they carry.

Examples:
  ipfpack pack ./data -o 1000000_001001.ipf
  ipfpack list archive.ipf
  ipfpack extract archive.ipf ./out
  ipfpack ies dump table.ies`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
