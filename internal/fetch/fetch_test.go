package fetch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holista-dev/holista/internal/config"
)

type fakeConn struct {
	files    map[string][]byte
	loginErr error
	retrErr  error
	quits    int
}

func (c *fakeConn) Login(user, password string) error { return c.loginErr }

func (c *fakeConn) Retr(path string) (io.ReadCloser, error) {
	if c.retrErr != nil {
		return nil, c.retrErr
	}
	data, ok := c.files[path]
	if !ok {
		return nil, &textproto.Error{Code: 550, Msg: "No such file or directory."}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (c *fakeConn) Quit() error {
	c.quits++
	return nil
}

func testConfig() config.FTPConfig {
	return config.FTPConfig{Host: "ftp.example.com", User: "reports", Password: "secret"}
}

func dialer(conn *fakeConn, addr *string) DialFunc {
	return func(_ context.Context, a string, _ time.Duration) (Conn, error) {
		if addr != nil {
			*addr = a
		}
		return conn, nil
	}
}

func TestFTPFetcherFetch(t *testing.T) {
	conn := &fakeConn{files: map[string][]byte{"/reports/a.csv": []byte("x,y\n1,2\n")}}
	var addr string
	f := NewFTPFetcher(testConfig(), dialer(conn, &addr))

	data, err := f.Fetch(context.Background(), "/reports/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "x,y\n1,2\n", string(data))
	assert.Equal(t, "ftp.example.com:21", addr)
	assert.Equal(t, 1, conn.quits, "session is closed after each call")
}

func TestFTPFetcherKeepsExplicitPort(t *testing.T) {
	cfg := testConfig()
	cfg.Host = "10.0.0.5:2121"
	var addr string
	f := NewFTPFetcher(cfg, dialer(&fakeConn{files: map[string][]byte{"/a": nil}}, &addr))

	_, err := f.Fetch(context.Background(), "/a")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5:2121", addr)
}

func TestFTPFetcherNotFound(t *testing.T) {
	f := NewFTPFetcher(testConfig(), dialer(&fakeConn{}, nil))

	_, err := f.Fetch(context.Background(), "/reports/missing.xlsx")
	var nf *ResourceNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []string{"/reports/missing.xlsx"}, nf.Paths)
	assert.Contains(t, err.Error(), "/reports/missing.xlsx")
}

func TestFTPFetcherPermissionDenied(t *testing.T) {
	conn := &fakeConn{retrErr: &textproto.Error{Code: 450, Msg: "Requested file action not taken."}}
	f := NewFTPFetcher(testConfig(), dialer(conn, nil))

	_, err := f.Fetch(context.Background(), "/locked.xlsx")
	var nf *ResourceNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestFTPFetcherTransportErrors(t *testing.T) {
	boom := errors.New("connection reset")
	tests := []struct {
		name string
		dial DialFunc
		op   string
	}{
		{
			name: "dial",
			dial: func(context.Context, string, time.Duration) (Conn, error) { return nil, boom },
			op:   "dial",
		},
		{
			name: "login",
			dial: dialer(&fakeConn{loginErr: &textproto.Error{Code: 530, Msg: "Login incorrect."}}, nil),
			op:   "login",
		},
		{
			name: "retrieve",
			dial: dialer(&fakeConn{retrErr: boom}, nil),
			op:   "retrieve",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFTPFetcher(testConfig(), tt.dial).Fetch(context.Background(), "/a.xlsx")
			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.op, te.Op)
		})
	}
}

func TestFTPFetcherConfigurationErrors(t *testing.T) {
	called := false
	dial := func(context.Context, string, time.Duration) (Conn, error) {
		called = true
		return &fakeConn{}, nil
	}

	cfg := testConfig()
	cfg.Password = ""
	_, err := NewFTPFetcher(cfg, dial).Fetch(context.Background(), "/a.xlsx")
	var ce *config.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "ftp.password", ce.Key)

	_, err = NewFTPFetcher(testConfig(), dial).Fetch(context.Background(), "")
	require.ErrorAs(t, err, &ce)

	assert.False(t, called, "no connection is attempted without valid input")
}
