package junos

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ForwardingProcess restarts the packet forwarding engine, which always
// drops management access for a while.
const ForwardingProcess = "forwarding"

// restartCommand builds the restart command. Immediate restarts SIGKILL the
// process instead of asking it to exit.
func restartCommand(process string, immediate bool) string {
	cmd := "restart " + process
	if immediate {
		cmd += " immediately"
	}
	return cmd
}

// RestartProcess restarts a Junos daemon, gracefully by default. A process
// that is not configured on the platform comes back as ErrNotRunning, a
// misspelt one as ErrUnknownProcess.
func (s *Session) RestartProcess(process string, immediate bool) (string, error) {
	if process == "" {
		return "", errors.New("no process named")
	}

	cmd := restartCommand(process, immediate)
	log.Infof("%s: %s", s.Host, cmd)

	if err := s.sendCommand(cmd); err != nil {
		return "", fmt.Errorf("sending %q: %w", cmd, err)
	}

	out, err := s.expectPrompt(DefaultTimeout, 2)
	if err != nil {
		// Restarting forwarding tears down our own session; losing the
		// connection here is the restart working.
		if process == ForwardingProcess {
			log.Warnf("%s: disconnected, expected when restarting forwarding", s.Host)
			return out, nil
		}
		return out, err
	}

	out = cleanOutput(out, cmd, s.Prompt)
	if cerr := classifyOutput(cmd, out); cerr != nil {
		return out, cerr
	}
	return out, nil
}
