package junos

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Connect error variants. Dial classifies the SSH library's error into one
// of these once; callers match with errors.Is and never look at the
// underlying error text.
var (
	ErrConnRefused = errors.New("connection refused")
	ErrConnTimeout = errors.New("connection timed out")
	ErrAuthFailed  = errors.New("authentication failed")
	ErrUnknownHost = errors.New("unknown host")
	ErrConnection  = errors.New("connection error")
)

// Operation error variants, classified from device output by the session
// layer.
var (
	ErrRPCTimeout      = errors.New("timed out waiting for device response")
	ErrLock            = errors.New("configuration database locked")
	ErrConfigLoad      = errors.New("configuration load failed")
	ErrCommit          = errors.New("commit failed")
	ErrShutdownPending = errors.New("another shutdown is already scheduled")
	ErrNotRunning      = errors.New("process not running on this system")
	ErrUnknownProcess  = errors.New("no such process on this system")
	ErrRPC             = errors.New("device returned an error")
)

// CommandError carries the command and device output alongside the variant
// it classified to.
type CommandError struct {
	Command string
	Output  string
	Kind    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%q: %v", e.Command, e.Kind)
}

func (e *CommandError) Unwrap() error {
	return e.Kind
}

// commandError wraps device output under a variant.
func commandError(cmd, output string, kind error) error {
	return &CommandError{Command: cmd, Output: output, Kind: kind}
}

// classifyDialError maps an SSH dial failure onto a connect variant.
func classifyDialError(err error) error {
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.As(err, &dnsErr):
		return fmt.Errorf("%w: %v", ErrUnknownHost, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", ErrConnTimeout, err)
	case strings.Contains(err.Error(), "connection refused"):
		return fmt.Errorf("%w: %v", ErrConnRefused, err)
	case strings.Contains(err.Error(), "unable to authenticate"):
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	default:
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
}

// classifyOutput inspects command output for the error strings Junos prints
// on the CLI. Returns nil when the output carries no recognised error. This
// is the one place device messages are pattern-matched; everything above it
// deals in the variants.
func classifyOutput(cmd, output string) error {
	lower := strings.ToLower(output)

	switch {
	case strings.Contains(lower, "another shutdown is running"):
		return commandError(cmd, output, ErrShutdownPending)
	case strings.Contains(lower, "subsystem not running"):
		return commandError(cmd, output, ErrNotRunning)
	case strings.Contains(lower, "invalid daemon"):
		return commandError(cmd, output, ErrUnknownProcess)
	case strings.Contains(lower, "database locked") ||
		strings.Contains(lower, "exclusive lock"):
		return commandError(cmd, output, ErrLock)
	case strings.Contains(lower, "syntax error") ||
		strings.Contains(lower, "bad_element"):
		return commandError(cmd, output, ErrConfigLoad)
	case strings.Contains(lower, "commit failed") ||
		strings.Contains(lower, "configuration check-out failed"):
		return commandError(cmd, output, ErrCommit)
	case strings.Contains(lower, "error:"):
		return commandError(cmd, output, ErrRPC)
	default:
		return nil
	}
}

// Advice returns operator guidance for an error variant, matching the hints
// the scripts have always printed. Empty when there is nothing useful to
// add.
func Advice(err error) string {
	switch {
	case errors.Is(err, ErrConnRefused):
		return "Check SSH settings, including acceptable ciphers"
	case errors.Is(err, ErrConnTimeout):
		return "Check that the hostname or IP address is correct\n" +
			"Check that SSH over NETCONF is enabled\n" +
			"Is this a Junos device?"
	case errors.Is(err, ErrAuthFailed):
		return "Check the username and password"
	case errors.Is(err, ErrUnknownHost):
		return "This host is unknown. Check your spelling"
	case errors.Is(err, ErrShutdownPending):
		return "Unable to reboot, another reboot/shutdown has been scheduled"
	case errors.Is(err, ErrNotRunning):
		return "It is not in use on this system"
	case errors.Is(err, ErrUnknownProcess):
		return "Maybe it's typed incorrectly?"
	case errors.Is(err, ErrLock):
		return "There may be uncommitted changes waiting, or another user has an exclusive lock"
	case errors.Is(err, ErrRPCTimeout):
		return "The device may still have applied the change before the timeout"
	default:
		return ""
	}
}
