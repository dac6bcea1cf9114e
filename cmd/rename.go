package cmd

import (
	"context"

	"golang-ifrename/internal/adapter/infrastructure/file"
	"golang-ifrename/internal/adapter/infrastructure/inventory"
	"golang-ifrename/internal/adapter/infrastructure/network"
	"golang-ifrename/internal/adapter/rename"
	"golang-ifrename/internal/pkg/logging"
	"golang-ifrename/internal/port"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRenameManager wires the rename adapter to the host's netlink and sysfs.
func newRenameManager() *rename.Manager {
	networkMgr := network.NewManagerAdapter()
	fileMgr := file.NewManagerAdapter()
	source := inventory.NewSource(cfg.SysfsNet, networkMgr, fileMgr)

	return rename.NewManager(cfg, source, networkMgr, fileMgr)
}

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename network interfaces and record their names for the next boot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRename(cmd.Context(), newRenameManager())
	},
}

func runRename(ctx context.Context, mgr port.InterfaceRenameManager) error {
	logger := logging.WithComponent("rename")
	logger.WithFields(map[string]interface{}{
		"rules_file": cfg.RulesFile,
		"state_file": cfg.StateFile,
		"dry_run":    cfg.DryRun,
	}).Info("Starting interface rename")

	if err := mgr.Run(ctx); err != nil {
		logger.WithError(err).Error("Interface rename failed")
		return err
	}

	logger.Info("Interface rename complete")
	return nil
}

func init() {
	renameCmd.Flags().Bool("dry-run", false, "Compute and log the renames without applying or recording them")
	if err := viper.BindPFlag("dry-run", renameCmd.Flags().Lookup("dry-run")); err != nil {
		panic(err) // This should never happen during initialization
	}
	rootCmd.AddCommand(renameCmd)
}
