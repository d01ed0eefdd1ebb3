package main

import (
	"fmt"
	"os"

	"github.com/kagenova/ipfpack/ies"
	"github.com/spf13/cobra"
)

// iesCmd is the parent command for IES table operations.
var iesCmd = &cobra.Command{
	Use:   "ies",
	Short: "Inspect IES table files",
}

// iesDumpCmd prints an IES file's header, columns, and rows.
var iesDumpCmd = &cobra.Command{
	Use:   "dump [file]",
	Short: "Print an IES file's header, columns, and rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		f, err := ies.Parse(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		fmt.Printf("name=%q version=%d columns=%d rows=%d\n", f.Header.Name, f.Header.Version, len(f.Columns), len(f.Rows))

		for _, col := range f.Columns {
			fmt.Printf("  column %-24s type=%d position=%d\n", col.Name, col.Type, col.Position)
		}

		for _, row := range f.Rows {
			fmt.Printf("row %d %q:", row.ClassID, row.ClassName)

			for _, col := range f.Columns {
				v, ok := row.Values[col.Name]
				if !ok {
					continue
				}

				if v.IsString() {
					s, _ := v.String()
					fmt.Printf(" %s=%q", col.Name, s)
					continue
				}

				n, _ := v.Float32()
				fmt.Printf(" %s=%g", col.Name, n)
			}

			fmt.Println()
		}

		return nil
	},
}

func init() {
	iesCmd.AddCommand(iesDumpCmd)
	rootCmd.AddCommand(iesCmd)
}
