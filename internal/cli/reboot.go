package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Timbertighe/Junos-Scripts/internal/junos"
)

// rebootTimeLayout is what --at accepts on the command line.
const rebootTimeLayout = "2006-01-02 15:04"

var (
	rebootAt string
	rebootIn int
)

var rebootCmd = &cobra.Command{
	Use:   "reboot <host>",
	Short: "Reboot a device now, at a time, or after a delay",
	Args:  cobra.ExactArgs(1),
	RunE:  runReboot,
}

func init() {
	rebootCmd.Flags().StringVar(&rebootAt, "at", "", `reboot at a local time ("2006-01-02 15:04")`)
	rebootCmd.Flags().IntVar(&rebootIn, "in", 0, "reboot in this many minutes")
	rebootCmd.MarkFlagsMutuallyExclusive("at", "in")
	rootCmd.AddCommand(rebootCmd)
}

func runReboot(cmd *cobra.Command, args []string) error {
	host := args[0]

	opts := junos.RebootOptions{InMinutes: rebootIn}
	if rebootAt != "" {
		at, err := time.ParseInLocation(rebootTimeLayout, rebootAt, time.Local)
		if err != nil {
			return fmt.Errorf("parsing --at: %w", err)
		}
		opts.At = at
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	creds, err := cfg.DeviceCredentials()
	if err != nil {
		return err
	}

	color.Yellow("Connecting to %s", host)
	session, err := junos.Open(host, creds.Username, creds.Password, cfg.Device.Port)
	if err != nil {
		return reportFailure(err)
	}
	defer session.Close()

	switch {
	case !opts.At.IsZero():
		color.Yellow("Rebooting at %s", opts.At.Format(rebootTimeLayout))
	case opts.InMinutes > 0:
		color.Yellow("Rebooting in %d minutes", opts.InMinutes)
	default:
		color.Yellow("Rebooting now")
	}

	out, err := session.Reboot(opts)
	if err != nil {
		return reportFailure(err)
	}
	if out != "" {
		fmt.Println(out)
	}
	color.Green("Done")
	return nil
}
