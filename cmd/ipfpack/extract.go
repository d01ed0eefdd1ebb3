package main

import (
	"context"
	"fmt"

	"github.com/kagenova/ipfpack"
	"github.com/spf13/cobra"
)

var extractWorkers int

// extractCmd decodes and writes every entry of an archive to a directory.
var extractCmd = &cobra.Command{
	Use:   "extract [archive] [destdir]",
	Short: "Extract every entry of an IPF archive to a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		archivePath, destDir := args[0], args[1]

		a, err := ipf.Open(archivePath, ipf.ReaderOptions{})
		if err != nil {
			return fmt.Errorf("open %s: %w", archivePath, err)
		}
		defer a.Close()

		opts := ipf.ExtractOptions{
			MaxWorkers: extractWorkers,
			OnEntryDone: func(e *ipf.Entry, written int64, outputPath string) {
				fmt.Printf("%s (%d bytes)\n", outputPath, written)
			},
		}

		if err := a.ExtractAll(context.Background(), destDir, opts); err != nil {
			return fmt.Errorf("extract: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "number of extraction workers (default GOMAXPROCS)")
}
