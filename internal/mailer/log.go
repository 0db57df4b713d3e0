package mailer

import (
	"context"
	"sync"

	"intake-backend/internal/shared/telemetry"
)

// LogSender logs messages instead of sending them and keeps a copy in memory.
// Used when no SMTP credentials are configured, and in tests.
type LogSender struct {
	mu   sync.Mutex
	sent []Message
	// Err, when set, is returned from Send after the message is recorded.
	Err error
}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Name)
	}
	telemetry.Info("mailer.log.send", map[string]any{
		"to":          msg.To,
		"subject":     msg.Subject,
		"attachments": names,
	})

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	err := s.Err
	s.mu.Unlock()
	return err
}

// Messages returns a copy of everything passed to Send.
func (s *LogSender) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
