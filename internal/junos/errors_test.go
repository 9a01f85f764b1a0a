package junos

import (
	"errors"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyDialError(t *testing.T) {
	tt := []struct {
		name string
		err  error
		want error
	}{
		{
			"refused",
			&net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			ErrConnRefused,
		},
		{"timeout", timeoutErr{}, ErrConnTimeout},
		{"dns", &net.DNSError{Err: "no such host", Name: "nope.example", IsNotFound: true}, ErrUnknownHost},
		{
			"auth",
			errors.New("ssh: handshake failed: ssh: unable to authenticate, attempted methods [none password]"),
			ErrAuthFailed,
		},
		{"other", errors.New("ssh: handshake failed: EOF"), ErrConnection},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyDialError(tc.err), tc.want)
		})
	}
}

func TestClassifyOutput(t *testing.T) {
	tt := []struct {
		name   string
		output string
		want   error
	}{
		{"clean", "Restart Initiated", nil},
		{"empty", "", nil},
		{"shutdown pending", "error: another shutdown is running", ErrShutdownPending},
		{"not running", "error: subsystem not running", ErrNotRunning},
		{"bad daemon", "error: invalid daemon: dhcpd", ErrUnknownProcess},
		{"locked", "error: configuration database locked", ErrLock},
		{"exclusive", "users currently editing the configuration hold an exclusive lock", ErrLock},
		{"syntax", "syntax error, expecting <statement>", ErrConfigLoad},
		{"commit", "error: commit failed: (statements constraint check failed)", ErrCommit},
		{"generic", "error: could not resolve something", ErrRPC},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyOutput("cmd", tc.output)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)

			var cmdErr *CommandError
			require.ErrorAs(t, err, &cmdErr)
			assert.Equal(t, tc.output, cmdErr.Output)
		})
	}
}

func TestAdvice(t *testing.T) {
	assert.Contains(t, Advice(ErrConnRefused), "acceptable ciphers")
	assert.Contains(t, Advice(ErrConnTimeout), "hostname or IP address")
	assert.Contains(t, Advice(ErrAuthFailed), "username and password")
	assert.Empty(t, Advice(errors.New("unrelated")))

	// Advice follows variants through wrapping
	wrapped := commandError("restart dhcp", "error: subsystem not running", ErrNotRunning)
	assert.NotEmpty(t, Advice(wrapped))
}
