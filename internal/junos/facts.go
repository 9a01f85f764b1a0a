package junos

import (
	"fmt"
	"strings"
)

// Facts is the device identity read from show version.
type Facts struct {
	Hostname string
	Model    string
	Version  string
}

// Facts queries the device for its configured hostname, model and Junos
// version.
func (s *Session) Facts() (*Facts, error) {
	out, err := s.Run("show version")
	if err != nil {
		return nil, fmt.Errorf("reading facts: %w", err)
	}

	facts := parseFacts(out)
	if facts.Hostname == "" {
		return nil, fmt.Errorf("no hostname in show version output %q", out)
	}
	return facts, nil
}

func parseFacts(out string) *Facts {
	facts := &Facts{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Hostname:"):
			facts.Hostname = strings.TrimSpace(strings.TrimPrefix(line, "Hostname:"))
		case strings.HasPrefix(line, "Model:"):
			facts.Model = strings.TrimSpace(strings.TrimPrefix(line, "Model:"))
		case strings.HasPrefix(line, "Junos:"):
			facts.Version = strings.TrimSpace(strings.TrimPrefix(line, "Junos:"))
		}
	}
	return facts
}
