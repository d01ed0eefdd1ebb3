package main

import (
	"fmt"

	"github.com/kagenova/ipfpack"
	"github.com/spf13/cobra"
)

var (
	packOut        string
	packNewVersion uint32
	packOldVersion uint32
	packName       string
)

// packCmd builds an archive from a folder of packed sub-directories (or a
// single named pack) and saves it.
var packCmd = &cobra.Command{
	Use:   "pack [folder]",
	Short: "Build an IPF archive from a folder",
	Long: `Build an IPF archive from a folder.

With no -p, every child directory of folder whose name ends in ".ipf" is
ingested as its own pack, named after the directory's basename. With -p
NAME, every file under folder is ingested recursively into pack NAME.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder := args[0]

		out := packOut
		if out == "" {
			out = fmt.Sprintf("%d_001001.ipf", packNewVersion)
		}

		a := ipf.New(packOldVersion, packNewVersion)

		if err := a.AddFolder(packName, folder, ipf.AddFolderOptions{}); err != nil {
			return fmt.Errorf("add folder: %w", err)
		}

		if _, err := a.Save(out); err != nil {
			return fmt.Errorf("save %s: %w", out, err)
		}

		fmt.Printf("wrote %s (%d entries)\n", out, len(a.Entries()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)

	packCmd.Flags().StringVarP(&packOut, "output", "o", "", "output archive path (default {new-version}_001001.ipf)")
	packCmd.Flags().Uint32Var(&packNewVersion, "nv", ipf.DefaultNewVersion, "new_version footer field")
	packCmd.Flags().Uint32Var(&packOldVersion, "ov", ipf.DefaultOldVersion, "old_version footer field")
	packCmd.Flags().StringVarP(&packName, "pack", "p", "", "ingest folder as a single named pack instead of auto-discovering .ipf sub-folders")
}
