// Package junos provides an interactive session to a Junos device over SSH,
// the operations the tooling needs on top of it (support bundles, reboot,
// process restart, config push), and a closed set of error variants so
// callers never have to inspect SSH library errors or device output.
package junos

import (
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// DefaultPort is the SSH port Junos listens on.
const DefaultPort uint16 = 22

// Ciphers accepted in addition to the defaults; older Junos ships SSH
// daemons that only offer CBC modes.
var ciphers = []string{
	"aes256-ctr", "aes128-ctr", "aes128-cbc", "3des-cbc",
	"aes192-ctr", "aes192-cbc", "aes256-cbc", "aes128-gcm@openssh.com",
}

// Conn is an interactive SSH connection to a Junos device: a single shell
// session with a pty, read and written as a byte stream.
type Conn struct {
	Addr     string
	Username string
	Password string
	Timeout  time.Duration

	client *ssh.Client
	reader io.Reader
	writer io.WriteCloser
}

// NewConn prepares a connection to host:port. Dial establishes it.
func NewConn(host, username, password string, port uint16) *Conn {
	return &Conn{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Username: username,
		Password: password,
		Timeout:  6 * time.Second,
	}
}

// Dial connects and starts the interactive shell. Failures come back as the
// package's connect error variants.
func (c *Conn) Dial() error {
	config := &ssh.ClientConfig{
		User: c.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(c.Password),
			ssh.KeyboardInteractive(passwordCallback(c.Password)),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         c.Timeout,
	}
	config.Ciphers = append(config.Ciphers, ciphers...)

	client, err := ssh.Dial("tcp", c.Addr, config)
	if err != nil {
		return classifyDialError(err)
	}
	c.client = client

	session, err := client.NewSession()
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	c.reader, _ = session.StdoutPipe()
	c.writer, _ = session.StdinPipe()

	modes := ssh.TerminalModes{
		ssh.ECHO:          1,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("vt100", 0, 200, modes); err != nil {
		return fmt.Errorf("requesting pty: %w", err)
	}
	if err := session.Shell(); err != nil {
		return fmt.Errorf("invoking shell: %w", err)
	}
	return nil
}

// Close shuts the connection down. Safe on a connection that never dialled.
func (c *Conn) Close() {
	if c.client == nil {
		return
	}
	if err := c.client.Close(); err != nil {
		log.Warnf("device close failed: %v", err)
	}
}

// Client exposes the underlying SSH client for SFTP reuse.
func (c *Conn) Client() *ssh.Client {
	return c.client
}

// Read returns whatever output the device has produced.
func (c *Conn) Read() (string, error) {
	buff := make([]byte, 65536)
	n, err := c.reader.Read(buff)
	return string(buff[:n]), err
}

// Write sends raw bytes to the device shell.
func (c *Conn) Write(s string) error {
	_, err := io.WriteString(c.writer, s)
	return err
}

// passwordCallback answers keyboard-interactive prompts with the password,
// for devices that disable plain password auth.
func passwordCallback(password string) ssh.KeyboardInteractiveChallenge {
	return func(user, instruction string, questions []string, echos []bool) ([]string, error) {
		answers := make([]string, len(questions))
		for i := range questions {
			answers[i] = password
		}
		return answers, nil
	}
}
