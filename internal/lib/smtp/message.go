package smtp

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"time"
)

// Signature подпись под каждым письмом хостела.
const Signature = "С уважением,\r\nадминистрация хостела"

// Message письмо студенту в виде простого текста в UTF-8.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
	Date    time.Time
}

// Bytes собирает письмо: заголовки, пустая строка, тело и подпись.
// Тема кодируется по RFC 2047, переводы строк в теле приводятся к CRLF.
func (m Message) Bytes() []byte {
	date := m.Date
	if date.IsZero() {
		date = time.Now()
	}

	var b bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", m.From)
	header("To", strings.Join(m.To, ", "))
	header("Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	header("Date", date.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="UTF-8"`)
	header("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	body := strings.ReplaceAll(strings.ReplaceAll(m.Body, "\r\n", "\n"), "\n", "\r\n")
	b.WriteString(body)
	b.WriteString("\r\n\r\n")
	b.WriteString(Signature)
	b.WriteString("\r\n")
	return b.Bytes()
}

// Send передаёт письмо в открытой сессии и завершает её командой QUIT.
func Send(c Client, m Message) error {
	const op = "smtp.Send"

	if len(m.To) == 0 {
		return fmt.Errorf("%s: no recipients", op)
	}
	if err := c.Mail(m.From); err != nil {
		return fmt.Errorf("%s: mail from %s: %w", op, m.From, err)
	}
	for _, addr := range m.To {
		if err := c.Rcpt(addr); err != nil {
			return fmt.Errorf("%s: rcpt %s: %w", op, addr, err)
		}
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("%s: data: %w", op, err)
	}
	if _, err = wc.Write(m.Bytes()); err != nil {
		_ = wc.Close()
		return fmt.Errorf("%s: write body: %w", op, err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("%s: close body: %w", op, err)
	}
	if err = c.Quit(); err != nil {
		return fmt.Errorf("%s: quit: %w", op, err)
	}
	return nil
}
