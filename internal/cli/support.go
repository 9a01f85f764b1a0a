package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Timbertighe/Junos-Scripts/internal/junos"
	"github.com/Timbertighe/Junos-Scripts/internal/support"
)

var supportDownloadDir string

var supportCmd = &cobra.Command{
	Use:   "support <host> [ftp-server/path]",
	Short: "Generate a support bundle on a device and optionally upload it",
	Long: `Generates an RSI and a compressed log archive on the device.
With an FTP server argument (eg, 10.16.162.125/backups) the device uploads
the archive itself; with --download the archive is also copied locally over
SFTP (SCP when the device has no SFTP server).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSupport,
}

func init() {
	supportCmd.Flags().StringVar(&supportDownloadDir, "download", "", "directory to download the archive into")
	rootCmd.AddCommand(supportCmd)
}

func runSupport(cmd *cobra.Command, args []string) error {
	host := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	creds, err := cfg.DeviceCredentials()
	if err != nil {
		return err
	}

	opts := support.Options{LocalDir: supportDownloadDir}
	if len(args) == 2 {
		ftpCreds, err := cfg.FTPCredentials()
		if err != nil {
			return err
		}
		opts.FTP = &support.FTPTarget{
			Host:     args[1],
			Username: ftpCreds.Username,
			Password: ftpCreds.Password,
		}
	}

	color.Yellow("Connecting to %s", host)
	session, err := junos.Open(host, creds.Username, creds.Password, cfg.Device.Port)
	if err != nil {
		return reportFailure(err)
	}
	defer session.Close()

	result, err := support.Run(session, opts)
	if err != nil {
		return reportFailure(err)
	}

	color.Green("Hostname: %s", result.Hostname)
	color.Green("RSI saved to %s", result.RSIFile)
	color.Green("Archive saved to %s", result.ArchiveFile)
	if opts.FTP != nil {
		color.Green("Uploaded to %s", opts.FTP.Masked())
	}
	if result.LocalFile != "" {
		color.Green("Downloaded to %s", result.LocalFile)
	}
	return nil
}

// reportFailure prints the error and the guidance for its variant, then
// hands it back to cobra.
func reportFailure(err error) error {
	color.Red("%v", err)
	if advice := junos.Advice(err); advice != "" {
		fmt.Println(advice)
	}
	return err
}
