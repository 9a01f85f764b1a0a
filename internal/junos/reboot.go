package junos

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// junosTimeLayout is the timestamp format "request system reboot at"
// accepts (yymmddhhmm).
const junosTimeLayout = "0601021504"

// RebootOptions selects when the device reboots. Zero values mean reboot
// now; At and InMinutes are mutually exclusive.
type RebootOptions struct {
	At        time.Time
	InMinutes int
}

func (o RebootOptions) validate(now time.Time) error {
	if !o.At.IsZero() && o.InMinutes != 0 {
		return errors.New("reboot takes a time or a duration, not both")
	}
	if !o.At.IsZero() && o.At.Before(now) {
		return fmt.Errorf("reboot time %s is in the past", o.At.Format(time.RFC3339))
	}
	if o.InMinutes < 0 {
		return errors.New("reboot delay needs to be a positive whole number of minutes")
	}
	return nil
}

// command builds the reboot command for these options.
func (o RebootOptions) command() string {
	switch {
	case !o.At.IsZero():
		return "request system reboot at " + o.At.Format(junosTimeLayout)
	case o.InMinutes > 0:
		return fmt.Sprintf("request system reboot in %d", o.InMinutes)
	default:
		return "request system reboot"
	}
}

// Reboot schedules or triggers a reboot. A pending shutdown on the device
// comes back as ErrShutdownPending.
func (s *Session) Reboot(opts RebootOptions) (string, error) {
	if err := opts.validate(time.Now()); err != nil {
		return "", err
	}

	cmd := opts.command()
	log.Infof("%s: %s", s.Host, cmd)

	if err := s.send(cmd); err != nil {
		return "", fmt.Errorf("sending %q: %w", cmd, err)
	}

	// The CLI asks for confirmation before shutting down
	out, err := s.expect(DefaultTimeout, "[yes,no]", "error:")
	if err != nil {
		return out, err
	}
	if cerr := classifyOutput(cmd, out); cerr != nil {
		return out, cerr
	}

	if err := s.send("yes"); err != nil {
		return "", fmt.Errorf("confirming reboot: %w", err)
	}

	// An immediate reboot drops the connection mid-read; that is the
	// reboot happening, not a failure.
	immediate := opts.At.IsZero() && opts.InMinutes == 0
	out, err = s.expect(DefaultTimeout, "Shutdown", "shutdown", "error:")
	if err != nil {
		if !immediate {
			return out, err
		}
		log.Debugf("%s: connection dropped during reboot: %v", s.Host, err)
	}
	if cerr := classifyOutput(cmd, out); cerr != nil {
		return out, cerr
	}
	return cleanOutput(out, cmd, s.Prompt), nil
}
