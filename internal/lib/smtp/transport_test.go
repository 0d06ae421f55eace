package smtp

import (
	"bufio"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vijay-lanka/hostel-management/internal/config"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStartTLSDialer_NotConfigured(t *testing.T) {
	d := NewStartTLSDialer(config.SMTP{}, newNoopLogger())

	client, err := d.Dial()
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, client)
}

func TestStartTLSDialer_DialFailure(t *testing.T) {
	d := NewStartTLSDialer(config.SMTP{SMTPHost: "127.0.0.1", SMTPPort: "1"}, newNoopLogger())

	_, err := d.Dial()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to dial SMTP server 127.0.0.1:1")
}

func TestStartTLSDialer_NoStartTLS(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = conn.Write([]byte("220 hostel.local ESMTP\r\n"))
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			switch {
			case strings.HasPrefix(line, "EHLO"):
				_, _ = conn.Write([]byte("250-hostel.local\r\n250 AUTH PLAIN\r\n"))
			case strings.HasPrefix(line, "QUIT"):
				_, _ = conn.Write([]byte("221 bye\r\n"))
				return
			default:
				_, _ = conn.Write([]byte("250 ok\r\n"))
			}
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	d := NewStartTLSDialer(config.SMTP{SMTPHost: host, SMTPPort: port}, newNoopLogger())

	_, err = d.Dial()
	require.ErrorIs(t, err, ErrNoStartTLS)
}

func TestStartTLSDialer_From(t *testing.T) {
	d := NewStartTLSDialer(config.SMTP{SMTPUser: "hostel@example.com"}, newNoopLogger())
	assert.Equal(t, "hostel@example.com", d.From())
}
