package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Timbertighe/Junos-Scripts/internal/junos"
)

var restartImmediately bool

var restartCmd = &cobra.Command{
	Use:   "restart <host> <process>",
	Short: "Restart a Junos process",
	Long: `Restarts a daemon on the device, gracefully (SIGTERM) by default or
with --immediately (SIGKILL). Restarting the forwarding process drops
management access for several minutes on small devices.`,
	Args: cobra.ExactArgs(2),
	RunE: runRestart,
}

func init() {
	restartCmd.Flags().BoolVar(&restartImmediately, "immediately", false, "kill the process instead of asking it to exit")
	rootCmd.AddCommand(restartCmd)
}

func runRestart(cmd *cobra.Command, args []string) error {
	host, process := args[0], args[1]

	if process == junos.ForwardingProcess {
		color.Yellow("This will restart the forwarding process")
		color.Yellow("You will lose access to the device temporarily (5+ minutes for small devices)")
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

	if restartImmediately {
		color.Yellow("Restart initiated (SIGKILL)")
	} else {
		color.Yellow("Restart initiated (SIGTERM)")
	}

	out, err := session.RestartProcess(process, restartImmediately)
	if err != nil {
		return reportFailure(err)
	}
	if out != "" {
		fmt.Println(out)
	}
	color.Green("Restart complete")
	return nil
}
