package cmd

import (
	"fmt"

	"golang-ifrename/internal/pkg/version"

	"github.com/spf13/cobra"
)

var shortVersionFlag bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and git info",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetGitInfo()
		if shortVersionFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "golang-ifrename %s\n", info)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tag: %s\nBranch: %s\nCommit: %s\nDirty: %v\n", info.Tag, info.Branch, info.Commit, info.Dirty)
	},
}

func init() {
	versionCmd.Flags().BoolVarP(&shortVersionFlag, "short", "s", false, "Print a single line")
	rootCmd.AddCommand(versionCmd)
}
