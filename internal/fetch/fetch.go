// Package fetch retrieves report extracts from the FTP server and caches
// them for the lifetime of the process.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rs/zerolog"

	"github.com/holista-dev/holista/internal/config"
)

// Fetcher returns the raw bytes of a remote file.
type Fetcher interface {
	Fetch(ctx context.Context, remotePath string) ([]byte, error)
}

// Conn is the part of an FTP control connection the fetcher needs.
type Conn interface {
	Login(user, password string) error
	Retr(path string) (io.ReadCloser, error)
	Quit() error
}

// DialFunc opens a control connection to addr.
type DialFunc func(ctx context.Context, addr string, timeout time.Duration) (Conn, error)

// FTPFetcher opens one session per call: dial, login, RETR, QUIT.
type FTPFetcher struct {
	cfg  config.FTPConfig
	dial DialFunc
}

// NewFTPFetcher creates an FTPFetcher. A nil dial uses a real connection.
func NewFTPFetcher(cfg config.FTPConfig, dial DialFunc) *FTPFetcher {
	if dial == nil {
		dial = dialFTP
	}
	return &FTPFetcher{cfg: cfg, dial: dial}
}

// Fetch downloads remotePath into memory.
func (f *FTPFetcher) Fetch(ctx context.Context, remotePath string) ([]byte, error) {
	if err := f.cfg.ValidateCredentials(); err != nil {
		return nil, err
	}
	if remotePath == "" {
		return nil, &config.ConfigurationError{Key: "ftp.paths", Hint: "no remote path given"}
	}
	log := zerolog.Ctx(ctx)

	timeout := f.cfg.SessionTimeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := address(f.cfg.Host)
	start := time.Now()
	conn, err := f.dial(ctx, addr, timeout)
	if err != nil {
		return nil, &TransportError{Op: "dial", Path: addr, Cause: err}
	}
	defer func() {
		if err := conn.Quit(); err != nil {
			log.Debug().Err(err).Str("host", addr).Msg("ftp quit failed")
		}
	}()

	if err := conn.Login(f.cfg.User, f.cfg.Password); err != nil {
		return nil, &TransportError{Op: "login", Path: addr, Cause: err}
	}

	resp, err := conn.Retr(remotePath)
	if err != nil {
		if isNotFound(err) {
			return nil, &ResourceNotFoundError{Paths: []string{remotePath}, Cause: err}
		}
		return nil, &TransportError{Op: "retrieve", Path: remotePath, Cause: err}
	}
	data, err := io.ReadAll(resp)
	if cerr := resp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, &TransportError{Op: "retrieve", Path: remotePath, Cause: err}
	}

	log.Info().
		Str("path", remotePath).
		Int("bytes", len(data)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched remote file")
	return data, nil
}

// address appends the default FTP port when host has none.
func address(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, "21")
}

type serverConn struct {
	*ftp.ServerConn
}

func (c serverConn) Retr(path string) (io.ReadCloser, error) {
	resp, err := c.ServerConn.Retr(path)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func dialFTP(ctx context.Context, addr string, timeout time.Duration) (Conn, error) {
	c, err := ftp.Dial(addr, ftp.DialWithTimeout(timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	return serverConn{c}, nil
}
