package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Timbertighe/Junos-Scripts/internal/config"
	"github.com/Timbertighe/Junos-Scripts/internal/junos"
)

var (
	pushHostFile string
	pushCommit   bool
	pushVerbose  bool
)

var pushCmd = &cobra.Command{
	Use:   "push <template-url> [host]",
	Short: "Push a configuration template to one or more devices",
	Long: `Fetches a configuration template over HTTP and merges it into each
device's candidate config. Without --commit the candidate is validated with
commit check and rolled back, so a dry run is the default. Devices with
uncommitted changes are skipped. Results are appended to a monthly log file
in the working directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVar(&pushHostFile, "file", "", "CSV file of hosts, one per line")
	pushCmd.Flags().BoolVar(&pushCommit, "commit", false, "commit the change instead of checking and rolling back")
	pushCmd.Flags().BoolVarP(&pushVerbose, "verbose", "v", false, "show the config diff for each device")
	rootCmd.AddCommand(pushCmd)
}

// validateTemplateURL rejects template locations before anything connects to
// a device. Templates are JSON-wrapped set commands, so anything else is
// almost certainly a typo.
func validateTemplateURL(client *http.Client, url string) error {
	if !strings.HasSuffix(url, ".json") {
		return fmt.Errorf("template URL %q does not end in .json", url)
	}
	resp, err := client.Head(url)
	if err != nil {
		return fmt.Errorf("checking template URL: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("template URL %s returned %s", url, resp.Status)
	}
	return nil
}

func fetchTemplate(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetching template: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching template %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return string(body), nil
}

// pushLogName is the monthly log file results are appended to.
func pushLogName(now time.Time) string {
	return fmt.Sprintf("srx-template-%d-%s.log", now.Year(), now.Month())
}

// pushLog appends timestamped entries to the monthly log. Failures to write
// the log never fail the push.
type pushLog struct {
	f *os.File
}

func openPushLog(now time.Time) *pushLog {
	f, err := os.OpenFile(pushLogName(now), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Warnf("opening push log: %v", err)
		return &pushLog{}
	}
	return &pushLog{f: f}
}

func (p *pushLog) Printf(format string, args ...interface{}) {
	if p.f == nil {
		return
	}
	stamp := time.Now().Format("02/01/2006 15:04:05")
	fmt.Fprintf(p.f, "\n%s %s", stamp, fmt.Sprintf(format, args...))
}

func (p *pushLog) Close() {
	if p.f != nil {
		p.f.Close()
	}
}

func runPush(cmd *cobra.Command, args []string) error {
	url := args[0]

	var hosts []string
	switch {
	case len(args) == 2 && pushHostFile != "":
		return fmt.Errorf("give a host argument or --file, not both")
	case len(args) == 2:
		hosts = []string{args[1]}
	case pushHostFile != "":
		var err error
		hosts, err = config.ReadHostList(pushHostFile)
		if err != nil {
			return err
		}
		if len(hosts) == 0 {
			return fmt.Errorf("host list %s is empty", pushHostFile)
		}
	default:
		return fmt.Errorf("give a host argument or --file")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	if err := validateTemplateURL(client, url); err != nil {
		return err
	}
	template, err := fetchTemplate(client, url)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	creds, err := cfg.DeviceCredentials()
	if err != nil {
		return err
	}

	journal := openPushLog(time.Now())
	defer journal.Close()

	failed := 0
	for _, host := range hosts {
		if err := pushToHost(host, template, creds, cfg.Device.Port, journal); err != nil {
			reportFailure(err)
			journal.Printf("%s: failed: %v", host, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d devices failed", failed, len(hosts))
	}
	return nil
}

func pushToHost(host, template string, creds config.Credentials, port uint16, journal *pushLog) error {
	color.Yellow("Connecting to %s", host)
	session, err := junos.Open(host, creds.Username, creds.Password, port)
	if err != nil {
		return err
	}
	defer session.Close()

	pending, err := session.PendingChanges()
	if err != nil {
		return err
	}
	if pending {
		color.Red("%s: uncommitted changes on the device, skipping", host)
		journal.Printf("%s: skipped, uncommitted changes present", host)
		return nil
	}

	configSession, err := session.Configure()
	if err != nil {
		return err
	}
	defer configSession.Exit()

	// Any failure past this point leaves candidate changes behind; roll them
	// back so exiting exclusive mode does not hang on a confirmation prompt.
	discard := func(err error) error {
		if rbErr := configSession.Rollback(); rbErr != nil {
			log.Warnf("%s: rollback after failure: %v", host, rbErr)
		}
		return err
	}

	if err := configSession.Load(template); err != nil {
		return discard(err)
	}

	diff, err := configSession.Diff()
	if err != nil {
		return discard(err)
	}
	if diff == "" {
		color.Green("%s: template already applied, nothing to do", host)
		journal.Printf("%s: no changes", host)
		return configSession.Rollback()
	}
	if pushVerbose {
		fmt.Println(diff)
	}

	if pushCommit {
		if err := configSession.Commit(); err != nil {
			return discard(err)
		}
		color.Green("%s: committed", host)
		journal.Printf("%s: committed", host)
		return nil
	}

	if err := configSession.CommitCheck(); err != nil {
		return discard(err)
	}
	if err := configSession.Rollback(); err != nil {
		return err
	}
	color.Green("%s: commit check passed, rolled back (dry run)", host)
	journal.Printf("%s: commit check passed, rolled back", host)
	return nil
}
