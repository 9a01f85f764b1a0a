package junos

import (
	"context"
	"fmt"
	"io"
	"os"

	scp "github.com/bramvdbogaerde/go-scp"
	"github.com/bramvdbogaerde/go-scp/auth"
	"github.com/pkg/sftp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// Retrieve copies a file off the device over SFTP, falling back to SCP for
// devices without "set system services ssh sftp-server".
func (s *Session) Retrieve(remoteFile, localFile string) error {
	if err := s.retrieveSFTP(remoteFile, localFile); err != nil {
		log.Warnf("%s: SFTP failed (%v), falling back to SCP", s.Host, err)
		return s.retrieveSCP(remoteFile, localFile)
	}
	log.Infof("retrieved %s to %s", remoteFile, localFile)
	return nil
}

func (s *Session) retrieveSFTP(remoteFile, localFile string) error {
	client, err := sftp.NewClient(s.conn.Client())
	if err != nil {
		return fmt.Errorf("creating SFTP client: %w", err)
	}
	defer client.Close()

	remote, err := client.Open(remoteFile)
	if err != nil {
		return fmt.Errorf("opening remote file %s: %w", remoteFile, err)
	}
	defer remote.Close()

	local, err := os.Create(localFile)
	if err != nil {
		return fmt.Errorf("creating local file %s: %w", localFile, err)
	}
	defer local.Close()

	if _, err := io.Copy(local, remote); err != nil {
		return fmt.Errorf("copying %s: %w", remoteFile, err)
	}
	return nil
}

func (s *Session) retrieveSCP(remoteFile, localFile string) error {
	sshConfig, err := auth.PasswordKey(s.conn.Username, s.conn.Password, ssh.InsecureIgnoreHostKey())
	if err != nil {
		return fmt.Errorf("creating SSH config: %w", err)
	}

	client := scp.NewClient(s.conn.Addr, &sshConfig)
	if err := client.Connect(); err != nil {
		return fmt.Errorf("connecting via SCP: %w", err)
	}
	defer client.Close()

	local, err := os.Create(localFile)
	if err != nil {
		return fmt.Errorf("creating local file %s: %w", localFile, err)
	}
	defer local.Close()

	if err := client.CopyFromRemote(context.Background(), local, remoteFile); err != nil {
		return fmt.Errorf("copying %s via SCP: %w", remoteFile, err)
	}

	log.Infof("retrieved %s to %s via SCP", remoteFile, localFile)
	return nil
}
