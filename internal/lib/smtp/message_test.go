package smtp

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Mail(from string) error {
	return m.Called(from).Error(0)
}

func (m *MockClient) Rcpt(to string) error {
	return m.Called(to).Error(0)
}

func (m *MockClient) Quit() error {
	return m.Called().Error(0)
}

func (m *MockClient) Close() error {
	return m.Called().Error(0)
}

func (m *MockClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

type bodyWriter struct {
	bytes.Buffer
	closed bool
}

func (w *bodyWriter) Close() error {
	w.closed = true
	return nil
}

func TestMessage_Bytes(t *testing.T) {
	msg := Message{
		From:    "hostel@example.com",
		To:      []string{"asha@example.com", "ravi@example.com"},
		Subject: "Жалоба принята",
		Body:    "Здравствуйте, Asha!\n\nЖалоба №12 зарегистрирована.",
		Date:    time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}

	raw := string(msg.Bytes())
	head, body, found := strings.Cut(raw, "\r\n\r\n")
	require.True(t, found)

	assert.Contains(t, head, "From: hostel@example.com\r\n")
	assert.Contains(t, head, "To: asha@example.com, ravi@example.com\r\n")
	assert.Contains(t, head, "Subject: "+mime.QEncoding.Encode("utf-8", "Жалоба принята")+"\r\n")
	assert.Contains(t, head, "Date: Tue, 05 Mar 2024 10:00:00 +0000\r\n")
	assert.Contains(t, head, `Content-Type: text/plain; charset="UTF-8"`)
	assert.NotContains(t, head, "Жалоба", "subject must be encoded")

	assert.True(t, strings.HasPrefix(body, "Здравствуйте, Asha!\r\n\r\nЖалоба №12 зарегистрирована.\r\n"))
	assert.True(t, strings.HasSuffix(raw, Signature+"\r\n"))
	assert.NotContains(t, strings.ReplaceAll(raw, "\r\n", ""), "\n", "bare LF left in message")
}

func TestSend(t *testing.T) {
	msg := Message{From: "hostel@example.com", To: []string{"asha@example.com"}, Subject: "s", Body: "b"}

	tests := []struct {
		name     string
		msg      Message
		setup    func(c *MockClient, w *bodyWriter)
		wantErr  string
		wantSent bool
	}{
		{
			name: "delivered",
			msg:  msg,
			setup: func(c *MockClient, w *bodyWriter) {
				c.On("Mail", "hostel@example.com").Return(nil).Once()
				c.On("Rcpt", "asha@example.com").Return(nil).Once()
				c.On("Data").Return(w, nil).Once()
				c.On("Quit").Return(nil).Once()
			},
			wantSent: true,
		},
		{
			name:    "no recipients",
			msg:     Message{From: "hostel@example.com"},
			setup:   func(_ *MockClient, _ *bodyWriter) {},
			wantErr: "no recipients",
		},
		{
			name: "recipient rejected",
			msg:  msg,
			setup: func(c *MockClient, _ *bodyWriter) {
				c.On("Mail", "hostel@example.com").Return(nil).Once()
				c.On("Rcpt", "asha@example.com").Return(errors.New("550 no such user")).Once()
			},
			wantErr: "rcpt asha@example.com: 550 no such user",
		},
		{
			name: "data refused",
			msg:  msg,
			setup: func(c *MockClient, _ *bodyWriter) {
				c.On("Mail", "hostel@example.com").Return(nil).Once()
				c.On("Rcpt", "asha@example.com").Return(nil).Once()
				c.On("Data").Return(nil, errors.New("554 rejected")).Once()
			},
			wantErr: "data: 554 rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(MockClient)
			w := &bodyWriter{}
			tt.setup(c, w)

			err := Send(c, tt.msg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantSent, w.closed)
			if tt.wantSent {
				assert.Contains(t, w.String(), "To: asha@example.com")
			}
			c.AssertExpectations(t)
		})
	}
}
