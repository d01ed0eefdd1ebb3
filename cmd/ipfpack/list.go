package main

import (
	"fmt"

	"github.com/kagenova/ipfpack"
	"github.com/spf13/cobra"
)

// listCmd prints every entry in an archive.
var listCmd = &cobra.Command{
	Use:   "list [archive]",
	Short: "List the entries in an IPF archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := ipf.Open(args[0], ipf.ReaderOptions{})
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer a.Close()

		footer := a.Footer()
		fmt.Printf("old_version=%d new_version=%d cipher=%v\n", footer.OldVersion, footer.NewVersion, a.CipherEnabled())

		for _, e := range a.Entries() {
			fmt.Printf("%-40s %10d -> %10d  checksum=%08x\n", e.FullPath(), e.SizeCompressed, e.SizeUncompressed, e.Checksum)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
