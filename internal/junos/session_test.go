package junos

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	bytes.Buffer
}

func (w *recordingWriter) Close() error { return nil }

// fakeSession wires a Session to canned device output and a capturing
// writer.
func fakeSession(prompt, output string) (*Session, *recordingWriter) {
	w := &recordingWriter{}
	conn := &Conn{reader: strings.NewReader(output), writer: w}
	return &Session{Host: "core-sw01", Prompt: prompt, conn: conn}, w
}

func TestPromptPattern(t *testing.T) {
	tt := []struct {
		banner string
		want   string
	}{
		{"last login: yesterday\r\nadmin@core-sw01> ", "admin@core-sw01>"},
		{"admin@lab-fw.example>", "admin@lab-fw.example>"},
		{"{master:0}\r\nuser@ex4300>", "user@ex4300>"},
	}
	for _, tc := range tt {
		assert.Equal(t, tc.want, promptPattern.FindString(tc.banner))
	}
}

func TestCleanOutput(t *testing.T) {
	raw := "show version | no-more\r\r\n" +
		"Hostname: core-sw01\r\nModel: ex4300-48t\r\r\n" +
		"admin@core-sw01> "
	got := cleanOutput(raw, "show version | no-more", "admin@core-sw01>")

	assert.NotContains(t, got, "show version")
	assert.NotContains(t, got, "admin@core-sw01>")
	assert.NotContains(t, got, "\r")
	assert.Contains(t, got, "Hostname: core-sw01")
}

func TestRunTimeout(t *testing.T) {
	const prompt = "admin@core-sw01>"

	// Echo, output, prompt, then the extra prompt from the trailing blank
	// line the session sends.
	device := "show version | no-more\r\nHostname: core-sw01\r\n" +
		prompt + " \r\n" + prompt + " "
	s, w := fakeSession(prompt, device)

	out, err := s.RunTimeout("show version", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "show version | no-more\n\n", w.String(),
		"the blank line guarantees a second prompt")
	assert.Contains(t, out, "Hostname: core-sw01")
	assert.NotContains(t, out, prompt)
}

func TestRunTimeoutTimesOut(t *testing.T) {
	const prompt = "admin@core-sw01>"

	// No second prompt ever arrives; the read must give up at the timeout
	// instead of blocking.
	conn := &Conn{
		reader: &stallReader{data: "show version | no-more\r\npartial output"},
		writer: &recordingWriter{},
	}
	s := &Session{Host: "core-sw01", Prompt: prompt, conn: conn}

	_, err := s.RunTimeout("show version", 50*time.Millisecond)
	require.ErrorIs(t, err, ErrRPCTimeout)
}

// stallReader hands out its data once, then hangs like a device that never
// finishes a command.
type stallReader struct {
	data string
	done bool
}

func (r *stallReader) Read(p []byte) (int, error) {
	if !r.done {
		r.done = true
		return copy(p, r.data), nil
	}
	select {}
}

func TestScrubANSI(t *testing.T) {
	in := "\x1b[?25hHostname: sw\x1b[0m\x1b[1;32m ok\x1b[K"
	assert.Equal(t, "Hostname: sw ok", ansiEscapes.ReplaceAllString(in, ""))
}

func TestParseFacts(t *testing.T) {
	out := "Hostname: edge-fw01\nModel: srx345\nJunos: 21.4R3-S4.9\n" +
		"JUNOS Software Release [21.4R3-S4.9]"

	facts := parseFacts(out)
	assert.Equal(t, "edge-fw01", facts.Hostname)
	assert.Equal(t, "srx345", facts.Model)
	assert.Equal(t, "21.4R3-S4.9", facts.Version)
}

func TestConfigPrompt(t *testing.T) {
	s := &Session{Prompt: "admin@core-sw01>"}
	assert.Equal(t, "admin@core-sw01#", s.configPrompt())
}

func TestRebootOptionsCommand(t *testing.T) {
	at := time.Date(2023, time.March, 24, 3, 0, 0, 0, time.Local)

	assert.Equal(t, "request system reboot", RebootOptions{}.command())
	assert.Equal(t, "request system reboot in 40", RebootOptions{InMinutes: 40}.command())
	assert.Equal(t, "request system reboot at 2303240300", RebootOptions{At: at}.command())
}

func TestRebootOptionsValidate(t *testing.T) {
	now := time.Date(2023, time.March, 24, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, RebootOptions{}.validate(now))
	assert.NoError(t, RebootOptions{InMinutes: 5}.validate(now))
	assert.NoError(t, RebootOptions{At: now.Add(time.Hour)}.validate(now))

	require.Error(t, RebootOptions{At: now.Add(-time.Hour)}.validate(now))
	require.Error(t, RebootOptions{InMinutes: -1}.validate(now))
	require.Error(t, RebootOptions{At: now.Add(time.Hour), InMinutes: 5}.validate(now))
}

func TestRestartCommand(t *testing.T) {
	assert.Equal(t, "restart routing", restartCommand("routing", false))
	assert.Equal(t, "restart firewall immediately", restartCommand("firewall", true))
}
