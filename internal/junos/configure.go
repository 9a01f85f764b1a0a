package junos

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// configTimeout bounds config-mode round trips; commits on low-end boxes
// can take a couple of minutes.
const configTimeout = 3 * time.Minute

// editPrompt marks config-mode responses.
const editPrompt = "[edit]"

// ConfigSession is an exclusive configuration-mode session. Obtain one with
// Session.Configure, and always Exit it.
type ConfigSession struct {
	s *Session
}

// PendingChanges reports whether the device already has uncommitted
// candidate configuration, without entering config mode.
func (s *Session) PendingChanges() (bool, error) {
	out, err := s.Run("show configuration | compare rollback 0")
	if err != nil {
		return false, fmt.Errorf("checking for uncommitted config: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// Configure enters exclusive configuration mode. A device someone else is
// editing comes back as ErrLock.
func (s *Session) Configure() (*ConfigSession, error) {
	out, err := s.exchange("configure exclusive", editPrompt)
	if err != nil {
		return nil, err
	}
	if cerr := classifyOutput("configure exclusive", out); cerr != nil {
		return nil, cerr
	}
	return &ConfigSession{s: s}, nil
}

// Load merges configuration text into the candidate via load merge
// terminal. Junos rejects bad input line by line; any rejection surfaces as
// ErrConfigLoad.
func (c *ConfigSession) Load(text string) error {
	const cmd = "load merge terminal"

	if err := c.s.send(cmd); err != nil {
		return fmt.Errorf("sending %q: %w", cmd, err)
	}
	if _, err := c.s.expect(configTimeout, "[Type ^D at a new line to end input]"); err != nil {
		return err
	}

	if err := c.s.conn.Write(strings.TrimRight(text, "\n") + "\n\x04"); err != nil {
		return fmt.Errorf("sending configuration text: %w", err)
	}

	out, err := c.s.expect(configTimeout, "load complete", "error", editPrompt)
	if err != nil {
		return err
	}
	if !strings.Contains(out, "load complete") {
		if cerr := classifyOutput(cmd, out); cerr != nil {
			return cerr
		}
		return commandError(cmd, out, ErrConfigLoad)
	}
	return nil
}

// Diff returns the candidate changes against the running config, empty when
// there is nothing to commit.
func (c *ConfigSession) Diff() (string, error) {
	out, err := c.s.exchange("show | compare", editPrompt)
	if err != nil {
		return "", err
	}
	out = cleanOutput(out, "show | compare", editPrompt)
	out = strings.TrimSpace(strings.ReplaceAll(out, c.s.configPrompt(), ""))
	return out, nil
}

// configPrompt derives the configuration-mode prompt from the operational
// one (user@host> becomes user@host#).
func (s *Session) configPrompt() string {
	return strings.TrimSuffix(s.Prompt, ">") + "#"
}

// Commit commits the candidate configuration.
func (c *ConfigSession) Commit() error {
	out, err := c.s.expectAfter("commit", configTimeout, "commit complete", "error:", "failed")
	if err != nil {
		return err
	}
	if !strings.Contains(out, "commit complete") {
		if cerr := classifyOutput("commit", out); cerr != nil {
			return cerr
		}
		return commandError("commit", out, ErrCommit)
	}
	return nil
}

// CommitCheck validates the candidate without committing it.
func (c *ConfigSession) CommitCheck() error {
	out, err := c.s.expectAfter("commit check", configTimeout,
		"configuration check succeeds", "error:", "failed")
	if err != nil {
		return err
	}
	if !strings.Contains(out, "configuration check succeeds") {
		if cerr := classifyOutput("commit check", out); cerr != nil {
			return cerr
		}
		return commandError("commit check", out, ErrCommit)
	}
	return nil
}

// Rollback discards the candidate changes.
func (c *ConfigSession) Rollback() error {
	out, err := c.s.expectAfter("rollback 0", configTimeout, "load complete", editPrompt)
	if err != nil {
		return err
	}
	if cerr := classifyOutput("rollback 0", out); cerr != nil {
		return cerr
	}
	return nil
}

// Exit leaves configuration mode. Call after Commit or Rollback.
func (c *ConfigSession) Exit() {
	if err := c.s.send("exit configuration-mode"); err != nil {
		log.Warnf("%s: leaving config mode: %v", c.s.Host, err)
		return
	}
	if _, err := c.s.expect(DefaultTimeout, c.s.Prompt); err != nil {
		log.Warnf("%s: leaving config mode: %v", c.s.Host, err)
	}
}

// exchange sends a line and waits for a marker or a reported error.
func (s *Session) exchange(cmd, marker string) (string, error) {
	return s.expectAfter(cmd, configTimeout, marker, "error:")
}

// expectAfter sends a line and waits for any of the markers.
func (s *Session) expectAfter(cmd string, timeout time.Duration, markers ...string) (string, error) {
	if err := s.send(cmd); err != nil {
		return "", fmt.Errorf("sending %q: %w", cmd, err)
	}
	return s.expect(timeout, markers...)
}
