// Package cli wires the operational scripts into one cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	log "github.com/sirupsen/logrus"

	"github.com/Timbertighe/Junos-Scripts/internal/config"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:           "junos-scripts",
	Short:         "Operational tooling for Juniper Junos devices",
	Long:          "Support bundles, reboots, process restarts, template config pushes and\nJTAC recommended-release lookups for Junos devices.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.junos-scripts/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config file named by --config, or the default.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}
