package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Credentials is a username/password pair for a device or FTP server.
type Credentials struct {
	Username string
	Password string
}

// PromptCredentials asks for a username and password on the terminal, the
// password without echo. Blank values are rejected rather than passed on to
// a login that cannot succeed.
func PromptCredentials(label string) (Credentials, error) {
	fmt.Printf("Please provide %s credentials\n", label)

	fmt.Print("Username: ")
	reader := bufio.NewReader(os.Stdin)
	username, err := reader.ReadString('\n')
	if err != nil {
		return Credentials{}, fmt.Errorf("reading username: %w", err)
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return Credentials{}, errors.New("you can't have a blank username")
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return Credentials{}, fmt.Errorf("reading password: %w", err)
	}
	if len(password) == 0 {
		return Credentials{}, errors.New("you can't have a blank password")
	}

	return Credentials{Username: username, Password: string(password)}, nil
}

// DeviceCredentials returns the configured device login, prompting for
// whatever the config file does not provide.
func (c *Config) DeviceCredentials() (Credentials, error) {
	if c.Device.Username != "" && c.Device.Password != "" {
		return Credentials{Username: c.Device.Username, Password: c.Device.Password}, nil
	}
	return PromptCredentials("Junos device")
}

// FTPCredentials behaves like DeviceCredentials for the FTP target.
func (c *Config) FTPCredentials() (Credentials, error) {
	if c.FTP.Username != "" && c.FTP.Password != "" {
		return Credentials{Username: c.FTP.Username, Password: c.FTP.Password}, nil
	}
	return PromptCredentials("FTP server")
}
