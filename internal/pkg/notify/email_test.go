package notify

import (
	"Redwatch/internal/api/config"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func TestEmail_Send(t *testing.T) {
	dialer := &fakeDialer{}
	ch := NewEmail(config.EmailConfig{Enabled: true, Host: "smtp.qq.com", Port: 465, Sender: "a@qq.com", Receiver: "b@qq.com"})
	ch.dialer = dialer

	err := ch.Send(context.Background(), "标题", "line1\nline2")

	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	msg := dialer.sent[0]
	assert.Equal(t, []string{"a@qq.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"b@qq.com"}, msg.GetHeader("To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "line1<br>line2")
}

func TestEmail_SendFailure(t *testing.T) {
	ch := NewEmail(config.EmailConfig{Host: "smtp.qq.com", Port: 465})
	ch.dialer = &fakeDialer{err: errors.New("auth failed")}

	err := ch.Send(context.Background(), "t", "b")

	assert.ErrorIs(t, err, ErrDeliveryFailure)
}

func TestNewEmail_SSLFollowsConfig(t *testing.T) {
	ch := NewEmail(config.EmailConfig{Host: "smtp.example.com", Port: 587, SSL: true})
	d, ok := ch.dialer.(*gomail.Dialer)
	require.True(t, ok)
	assert.True(t, d.SSL)

	ch = NewEmail(config.EmailConfig{Host: "smtp.qq.com", Port: 465, SSL: false})
	d, ok = ch.dialer.(*gomail.Dialer)
	require.True(t, ok)
	assert.False(t, d.SSL)
}
