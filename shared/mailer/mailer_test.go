package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Config{}.Validate())
	assert.False(t, Config{}.Enabled())

	assert.Error(t, Config{Host: "smtp.example.com", Port: 587}.Validate())
	assert.Error(t, Config{Host: "smtp.example.com", From: "a@example.com"}.Validate())
	assert.NoError(t, Config{Host: "smtp.example.com", Port: 587, From: "a@example.com"}.Validate())
}

func TestSend_RequiresRecipients(t *testing.T) {
	t.Parallel()

	m := NewMailer(Config{Host: "localhost", Port: 2525, From: "noreply@example.com"})
	assert.ErrorIs(t, m.Send(Email{Subject: "hi"}), ErrNoRecipients)
}

func TestNewMessage(t *testing.T) {
	t.Parallel()

	m := NewMailer(Config{Host: "localhost", Port: 2525, From: "noreply@example.com"})
	msg := m.newMessage(Email{
		To:       []string{"ada@example.com"},
		Subject:  "Welcome",
		Body:     "plain body",
		HTMLBody: "<p>html body</p>",
	})

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "From: noreply@example.com")
	assert.Contains(t, out, "To: ada@example.com")
	assert.Contains(t, out, "Subject: Welcome")
	assert.Contains(t, out, "text/html")
	assert.Contains(t, out, "text/plain")
}
