// Package support drives Junos support-bundle collection: RSI generation,
// log archiving, and shipping the archive off the device.
package support

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Timbertighe/Junos-Scripts/internal/junos"
)

// RSI collection walks every PFE and can take a very long time on chassis
// platforms.
const rsiTimeout = 30 * time.Minute

// Upload failures the device reports in the file copy output.
var (
	ErrArchiveMissing = errors.New("archive file not found on device")
	ErrFTPAuth        = errors.New("FTP login rejected")
)

// FTPTarget is an upload destination. Host may carry a path component
// (10.10.20.1/backups).
type FTPTarget struct {
	Host     string
	Username string
	Password string
}

// URL renders the target as the ftp:// URL the device's file copy expects.
func (t FTPTarget) URL() string {
	return fmt.Sprintf("ftp://%s/", strings.TrimSuffix(t.addr(), "/"))
}

// Masked is URL with the password hidden, for logs and status output.
func (t FTPTarget) Masked() string {
	masked := FTPTarget{Host: t.Host, Username: t.Username, Password: "*****"}
	return masked.URL()
}

func (t FTPTarget) addr() string {
	if t.Username == "" {
		return t.Host
	}
	return fmt.Sprintf("%s@%s", url.UserPassword(t.Username, t.Password).String(), t.Host)
}

// Options configures one bundle run.
type Options struct {
	FTP      *FTPTarget // upload the archive from the device, optional
	LocalDir string     // download the archive here over SFTP/SCP, optional
	Now      time.Time  // clock override for filenames, zero means now
}

// Result reports where the bundle artefacts ended up.
type Result struct {
	Hostname    string
	RSIFile     string
	ArchiveFile string
	LocalFile   string
}

// RSIPath names the RSI output file for a device and day.
func RSIPath(hostname string, date time.Time) string {
	return fmt.Sprintf("/var/log/RSI-Support-%s-%s.txt", hostname, date.Format("2006-01-02"))
}

// ArchivePath names the compressed log archive for a device and day.
func ArchivePath(hostname string, date time.Time) string {
	return fmt.Sprintf("/var/tmp/Support-%s-%s.tgz", hostname, date.Format("2006-01-02"))
}

// Run generates the support files on the device and optionally ships them.
func Run(s *junos.Session, opts Options) (*Result, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	facts, err := s.Facts()
	if err != nil {
		return nil, err
	}
	log.Infof("collecting support bundle from %s", facts.Hostname)

	result := &Result{
		Hostname:    facts.Hostname,
		RSIFile:     RSIPath(facts.Hostname, now),
		ArchiveFile: ArchivePath(facts.Hostname, now),
	}

	// RSI first; everything under /var/log ends up in the archive,
	// including the file this writes
	log.Infof("generating %s, this can take a long time", result.RSIFile)
	cmd := fmt.Sprintf("request support information | save %s", result.RSIFile)
	if _, err := s.RunTimeout(cmd, rsiTimeout); err != nil {
		return nil, fmt.Errorf("generating RSI: %w", err)
	}

	log.Infof("archiving logs to %s", result.ArchiveFile)
	cmd = fmt.Sprintf("file archive compress source /var/log/* destination %s", result.ArchiveFile)
	if _, err := s.Run(cmd); err != nil {
		return nil, fmt.Errorf("archiving logs: %w", err)
	}

	if opts.FTP != nil {
		log.Infof("uploading to %s", opts.FTP.Masked())
		cmd = fmt.Sprintf("file copy /var/tmp/Support-* %s", opts.FTP.URL())
		out, err := s.Run(cmd)
		if err != nil {
			return nil, fmt.Errorf("uploading archive: %w", err)
		}
		if err := classifyUpload(out); err != nil {
			return nil, err
		}
	}

	if opts.LocalDir != "" {
		result.LocalFile = filepath.Join(opts.LocalDir, path.Base(result.ArchiveFile))
		if err := s.Retrieve(result.ArchiveFile, result.LocalFile); err != nil {
			return nil, fmt.Errorf("downloading archive: %w", err)
		}
	}

	return result, nil
}

// classifyUpload reads the device's file copy output for the failures it
// reports inline rather than as errors.
func classifyUpload(output string) error {
	switch {
	case strings.Contains(output, "could not fetch local copy of file"):
		return ErrArchiveMissing
	case strings.Contains(output, "Not logged in"):
		return ErrFTPAuth
	default:
		return nil
	}
}
