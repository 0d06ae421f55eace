package smtp

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/Vijay-lanka/hostel-management/internal/config"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
)

const dialTimeout = 10 * time.Second

var (
	// ErrNotConfigured возвращается, если адрес SMTP сервера не задан.
	ErrNotConfigured = errors.New("smtp server is not configured")
	// ErrNoStartTLS возвращается, если сервер не умеет STARTTLS.
	ErrNoStartTLS = errors.New("smtp server does not support STARTTLS")
)

// StartTLSDialer подключается к серверу из конфига, поднимает TLS и авторизуется.
// *smtp.Client из стандартной библиотеки уже реализует Client.
type StartTLSDialer struct {
	cfg config.SMTP
	log *slog.Logger
}

// NewStartTLSDialer создает новый экземпляр StartTLSDialer.
func NewStartTLSDialer(cfg config.SMTP, log *slog.Logger) *StartTLSDialer {
	return &StartTLSDialer{cfg: cfg, log: log}
}

// Dial открывает авторизованную сессию. При ошибке соединение закрывается.
func (d *StartTLSDialer) Dial() (Client, error) {
	const op = "smtp.Dial"

	if d.cfg.SMTPHost == "" {
		return nil, ErrNotConfigured
	}
	addr := net.JoinHostPort(d.cfg.SMTPHost, d.cfg.SMTPPort)

	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to dial SMTP server %s: %w", op, addr, err)
	}
	client, err := smtp.NewClient(conn, d.cfg.SMTPHost)
	if err != nil {
		d.closeQuietly(conn.Close)
		return nil, fmt.Errorf("%s: handshake: %w", op, err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		d.closeQuietly(client.Close)
		return nil, fmt.Errorf("%s: %w", op, ErrNoStartTLS)
	}
	if err = client.StartTLS(&tls.Config{ServerName: d.cfg.SMTPHost, MinVersion: tls.VersionTLS12}); err != nil {
		d.closeQuietly(client.Close)
		return nil, fmt.Errorf("%s: starttls: %w", op, err)
	}
	if err = client.Auth(smtp.PlainAuth("", d.cfg.SMTPUser, d.cfg.SMTPPass, d.cfg.SMTPHost)); err != nil {
		d.closeQuietly(client.Close)
		return nil, fmt.Errorf("%s: auth as %s: %w", op, d.cfg.SMTPUser, err)
	}

	return client, nil
}

// From адрес ящика, от имени которого уходят письма.
func (d *StartTLSDialer) From() string {
	return d.cfg.SMTPUser
}

func (d *StartTLSDialer) closeQuietly(closeFn func() error) {
	if err := closeFn(); err != nil {
		d.log.Warn("failed to close smtp connection", sl.Err(err))
	}
}
