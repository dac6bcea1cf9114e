package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang-ifrename/internal/pkg/config"
	"golang-ifrename/internal/pkg/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cfg is the resolved configuration, set before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "golang-ifrename",
	Short: "golang-ifrename keeps network interface names stable across reboots",
	Long: `golang-ifrename renames eth<N> network interfaces so that each physical NIC
keeps the name it had before, follows administrator supplied static rules, and
new hardware gets fresh names.

Every flag can also be set with an IFRENAME_ prefixed environment variable,
for example IFRENAME_STATE_FILE or IFRENAME_DRY_RUN.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c

		logging.InitLogger(cfg.Logging)
		return nil
	},
}

// loadConfig reads the config file, if any, and applies flag and environment
// overrides on top of it.
func loadConfig() (*config.Config, error) {
	path := viper.GetString("config")

	c := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
		c = loaded
	}

	if viper.IsSet("log-level") {
		c.Logging.Level = viper.GetString("log-level")
	}
	if viper.IsSet("log-format") {
		c.Logging.Format = viper.GetString("log-format")
	}
	if viper.IsSet("rules-file") {
		c.RulesFile = viper.GetString("rules-file")
	}
	if viper.IsSet("state-file") {
		c.StateFile = viper.GetString("state-file")
	}
	if viper.IsSet("sysfs-net") {
		c.SysfsNet = viper.GetString("sysfs-net")
	}
	if viper.IsSet("dry-run") {
		c.DryRun = viper.GetBool("dry-run")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return c, nil
}

// Execute runs the root command, cancelling its context on SIGINT or SIGTERM.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	viper.SetEnvPrefix("ifrename")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "f", "", "Path to config file (YAML)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (json, text, simple, compact); picked by terminal when empty")
	flags.String("rules-file", "", "Path to the static rules file (default "+config.DefaultRulesFile+")")
	flags.String("state-file", "", "Path to the saved interface state (default "+config.DefaultStateFile+")")
	flags.String("sysfs-net", "", "Where sysfs exposes network interfaces (default "+config.DefaultSysfsNet+")")

	for _, name := range []string{"config", "log-level", "log-format", "rules-file", "state-file", "sysfs-net"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err) // This should never happen during initialization
		}
	}
}
