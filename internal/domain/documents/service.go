package documents

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sagecare/practice/internal/domain/settings"
	"github.com/sagecare/practice/internal/platform/notification"
)

// ErrDocumentLocked is returned when a mutation targets a locked document.
var ErrDocumentLocked = errors.New("document is locked")

var validFrequencies = map[string]bool{
	FrequencyOnce: true, FrequencyWeekly: true, FrequencyMonthly: true,
}

// TemplateSource resolves the email template used for share notifications.
type TemplateSource interface {
	GetTemplateByType(ctx context.Context, templateType string) (*settings.EmailTemplate, error)
}

// EmailQueue accepts outbound notification messages.
type EmailQueue interface {
	Send(ctx context.Context, msg *notification.Message) error
}

type Service struct {
	repo      Repository
	templates TemplateSource
	mailer    EmailQueue
	logger    zerolog.Logger
}

func NewService(repo Repository, templates TemplateSource, mailer EmailQueue, logger zerolog.Logger) *Service {
	return &Service{repo: repo, templates: templates, mailer: mailer, logger: logger}
}

// Share creates the document and fires a notification email to the recipient.
// The email is fire-and-forget: a send failure never fails the share.
func (s *Service) Share(ctx context.Context, d *SharedDocument, recipientEmail string) error {
	if d.ClientGroupID == uuid.Nil {
		return fmt.Errorf("client_group_id is required")
	}
	if d.Title == "" || d.FileURL == "" {
		return fmt.Errorf("title and file_url are required")
	}
	if d.Frequency == "" {
		d.Frequency = FrequencyOnce
	}
	if !validFrequencies[d.Frequency] {
		return fmt.Errorf("invalid frequency: %s", d.Frequency)
	}
	d.Status = StatusPending

	if err := s.repo.Create(ctx, d); err != nil {
		return err
	}

	if recipientEmail != "" {
		go s.notify(d, recipientEmail)
	}
	return nil
}

func (s *Service) notify(d *SharedDocument, recipientEmail string) {
	ctx := context.Background()

	tpl, err := s.templates.GetTemplateByType(ctx, settings.TemplateTypeDocument)
	if err != nil {
		s.logger.Warn().Err(err).Str("document_id", d.ID.String()).
			Msg("no document email template, skipping share notification")
		return
	}

	subject, body, err := settings.Render(tpl, map[string]string{
		"document_title": d.Title,
		"document_url":   d.FileURL,
	}, false)
	if err != nil {
		s.logger.Error().Err(err).Str("document_id", d.ID.String()).Msg("render share notification")
		return
	}

	msg := &notification.Message{
		Recipient: recipientEmail,
		Subject:   subject,
		Body:      body,
		Metadata:  map[string]string{"document_id": d.ID.String()},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error().Err(err).Str("document_id", d.ID.String()).Msg("send share notification")
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SharedDocument, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByGroup(ctx context.Context, groupID uuid.UUID, status string, limit, offset int) ([]*SharedDocument, int, error) {
	return s.repo.ListByGroup(ctx, groupID, status, limit, offset)
}

// MarkCompleted allows only the pending to completed transition.
func (s *Service) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("document not found: %w", err)
	}
	if existing.Status == StatusLocked {
		return ErrDocumentLocked
	}
	if existing.Status != StatusPending {
		return fmt.Errorf("cannot complete a %s document", existing.Status)
	}
	return s.repo.MarkCompleted(ctx, id)
}

func (s *Service) Lock(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("document not found: %w", err)
	}
	return s.repo.UpdateStatus(ctx, id, StatusLocked)
}

// Delete refuses to remove a locked document.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("document not found: %w", err)
	}
	if existing.Status == StatusLocked {
		return ErrDocumentLocked
	}
	return s.repo.Delete(ctx, id)
}
