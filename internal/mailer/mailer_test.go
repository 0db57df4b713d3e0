package mailer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Message {
	return Message{
		From:    "info@citylifepharmacy.com",
		To:      []string{"jane@example.com"},
		Subject: "Your Treatment Plan - City Life Pharmacy",
		Text:    "Hi Jane,",
		HTML:    "<p>Hi Jane,</p>",
		Attachments: []Attachment{
			{Name: "patient_id_Jane_Doe.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}},
			{Name: "consultation_Jane_Doe.pdf", Data: []byte("%PDF-1.4")},
		},
	}
}

func TestBuildMessage(t *testing.T) {
	m, err := build(sample())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "jane@example.com")
	assert.Contains(t, raw, "Your Treatment Plan - City Life Pharmacy")
	assert.Contains(t, raw, "patient_id_Jane_Doe.jpg")
	assert.Contains(t, raw, "image/jpeg")
	assert.Contains(t, raw, "consultation_Jane_Doe.pdf")
	assert.Contains(t, raw, "application/octet-stream")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "text/plain")
}

func TestBuildRejectsBadAddresses(t *testing.T) {
	msg := sample()
	msg.To = nil
	_, err := build(msg)
	assert.ErrorIs(t, err, ErrNoRecipients)

	msg = sample()
	msg.From = "not an address"
	_, err = build(msg)
	assert.Error(t, err)
}

func TestLogSenderRecords(t *testing.T) {
	s := NewLogSender()
	require.NoError(t, s.Send(context.Background(), sample()))
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "jane@example.com", msgs[0].To[0])

	s.Err = errors.New("relay down")
	assert.EqualError(t, s.Send(context.Background(), sample()), "relay down")
	assert.Len(t, s.Messages(), 2)

	msg := sample()
	msg.To = nil
	assert.ErrorIs(t, s.Send(context.Background(), msg), ErrNoRecipients)
}
