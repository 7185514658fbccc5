// Package notification delivers outbound practice email: document-sharing
// invitations, billing notices, and reminders. Delivery is fire-and-forget
// from the caller's point of view; failures are recorded and retryable.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EmailSender is the interface for sending email messages.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Message represents a single outbound email and its delivery state.
type Message struct {
	ID        string            `json:"id"`
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Status    string            `json:"status"`
	Attempts  int               `json:"attempts"`
	CreatedAt time.Time         `json:"created_at"`
	SentAt    *time.Time        `json:"sent_at,omitempty"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

const maxAttempts = 3

// Mailer sends email through the configured sender and keeps an in-memory
// record of outbound messages for inspection and retry.
type Mailer struct {
	sender   EmailSender
	mu       sync.RWMutex
	messages map[string]*Message
}

func NewMailer(sender EmailSender) *Mailer {
	return &Mailer{
		sender:   sender,
		messages: make(map[string]*Message),
	}
}

// Send dispatches an email, assigns an id and timestamps, and records the
// result. A failed send is recorded with status "failed" and returned.
func (m *Mailer) Send(ctx context.Context, msg *Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now().UTC()
	msg.Status = "pending"

	err := m.attempt(ctx, msg)

	m.mu.Lock()
	m.messages[msg.ID] = msg
	m.mu.Unlock()

	return err
}

func (m *Mailer) attempt(ctx context.Context, msg *Message) error {
	msg.Attempts++
	if err := m.sender.SendEmail(ctx, msg.Recipient, msg.Subject, msg.Body); err != nil {
		msg.Status = "failed"
		msg.Error = err.Error()
		return err
	}
	msg.Status = "sent"
	msg.Error = ""
	sentAt := time.Now().UTC()
	msg.SentAt = &sentAt
	return nil
}

// Retry re-sends a failed message. Only messages in "failed" status with
// remaining attempts can be retried.
func (m *Mailer) Retry(ctx context.Context, id string) error {
	m.mu.Lock()
	msg, ok := m.messages[id]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("message %q not found", id)
	}
	if msg.Status != "failed" {
		return fmt.Errorf("message %q is %s, only failed messages can be retried", id, msg.Status)
	}
	if msg.Attempts >= maxAttempts {
		return fmt.Errorf("message %q exhausted its %d attempts", id, maxAttempts)
	}
	return m.attempt(ctx, msg)
}

// Get retrieves a recorded message by id.
func (m *Mailer) Get(id string) (*Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msg, ok := m.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %q not found", id)
	}
	return msg, nil
}

// ListByRecipient returns recorded messages for a recipient, up to limit.
func (m *Mailer) ListByRecipient(recipient string, limit int) []*Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*Message
	for _, msg := range m.messages {
		if msg.Recipient == recipient {
			result = append(result, msg)
			if len(result) >= limit {
				break
			}
		}
	}
	return result
}
