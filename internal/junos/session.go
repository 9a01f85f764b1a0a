package junos

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds an ordinary command's round trip.
const DefaultTimeout = 60 * time.Second

var (
	promptPattern = regexp.MustCompile(`[\w\-\.@]+[>%]`)
	ansiEscapes   = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
)

// Session is an authenticated interactive CLI session on one Junos device.
type Session struct {
	Host   string
	Prompt string

	conn *Conn
}

// Open dials the device and waits for the operational-mode prompt.
func Open(host, username, password string, port uint16) (*Session, error) {
	conn := NewConn(host, username, password, port)
	log.Infof("connecting to %s", conn.Addr)

	if err := conn.Dial(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", host, err)
	}

	s := &Session{Host: host, conn: conn}
	if err := s.findPrompt(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("connecting to %s: %w", host, err)
	}

	log.Debugf("prompt on %s is %q", host, s.Prompt)
	return s, nil
}

// Close ends the session.
func (s *Session) Close() {
	s.conn.Close()
}

// findPrompt reads the login banner until the operational prompt shows up.
func (s *Session) findPrompt() error {
	out, err := s.read(s.conn.Timeout, func(buf string) bool {
		return strings.Contains(buf, ">")
	})
	if err != nil {
		return err
	}

	prompt := promptPattern.FindString(out)
	if prompt == "" {
		return fmt.Errorf("no prompt in login output %q", out)
	}
	s.Prompt = prompt
	return nil
}

// Run sends an operational command and returns its cleaned output.
func (s *Session) Run(cmd string) (string, error) {
	return s.RunTimeout(cmd, DefaultTimeout)
}

// RunTimeout is Run with an explicit bound, for commands like RSI
// collection that legitimately run for many minutes.
func (s *Session) RunTimeout(cmd string, timeout time.Duration) (string, error) {
	full := cmd
	if strings.HasPrefix(cmd, "show ") {
		full += " | no-more"
	}

	log.Infof("%s: running %q", s.Host, cmd)
	if err := s.sendCommand(full); err != nil {
		return "", fmt.Errorf("sending %q: %w", cmd, err)
	}

	out, err := s.expectPrompt(timeout, 2)
	if err != nil {
		return out, err
	}

	out = cleanOutput(out, full, s.Prompt)
	if cerr := classifyOutput(cmd, out); cerr != nil {
		return out, cerr
	}
	return out, nil
}

// expectPrompt waits for the prompt to appear count times.
func (s *Session) expectPrompt(timeout time.Duration, count int) (string, error) {
	return s.read(timeout, func(buf string) bool {
		return strings.Count(buf, s.Prompt) >= count
	})
}

// expect waits for any of the given markers.
func (s *Session) expect(timeout time.Duration, markers ...string) (string, error) {
	return s.read(timeout, func(buf string) bool {
		for _, m := range markers {
			if strings.Contains(buf, m) {
				return true
			}
		}
		return false
	})
}

// send writes a raw line without waiting for anything.
func (s *Session) send(line string) error {
	return s.conn.Write(line + "\n")
}

// sendCommand writes a command followed by a blank line. The empty command
// makes the device print an extra prompt after the output, so completion is
// the prompt's second appearance whether or not the pty echoed one.
func (s *Session) sendCommand(cmd string) error {
	return s.conn.Write(cmd + "\n\n")
}

// read accumulates scrubbed device output until done says stop.
func (s *Session) read(timeout time.Duration, done func(string) bool) (string, error) {
	type result struct {
		out string
		err error
	}
	ch := make(chan result, 1)

	go func() {
		var buf strings.Builder
		for {
			chunk, err := s.conn.Read()
			buf.WriteString(ansiEscapes.ReplaceAllString(chunk, ""))
			if done(buf.String()) {
				ch <- result{buf.String(), nil}
				return
			}
			if err != nil {
				ch <- result{buf.String(), err}
				return
			}
		}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return r.out, fmt.Errorf("reading from %s: %w", s.Host, r.err)
		}
		return r.out, nil
	case <-time.After(timeout):
		return "", fmt.Errorf("%s: %w", s.Host, ErrRPCTimeout)
	}
}

// cleanOutput strips the echoed command, the trailing prompt and the pty's
// padded blank lines from command output.
func cleanOutput(out, cmd, prompt string) string {
	out = strings.Replace(out, cmd, "", 1)
	out = strings.ReplaceAll(out, prompt, "")
	out = strings.ReplaceAll(out, "\r\r\n", "\n")
	out = strings.ReplaceAll(out, "\r", "")
	return strings.TrimSpace(out)
}
