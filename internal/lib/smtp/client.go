// Package smtp отправляет письма сервиса уведомлений хостела.
//
// Dialer открывает сессию с почтовым сервером, Message собирает письмо,
// Send проводит одну транзакцию MAIL/RCPT/DATA в открытой сессии.
package smtp

import "io"

// Client команды SMTP-сессии, которые нужны для отправки письма.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer открывает SMTP-сессию от имени ящика хостела.
type Dialer interface {
	Dial() (Client, error)
	From() string
}
