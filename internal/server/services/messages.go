package services

import (
	"context"
	"database/sql"

	"github.com/ronin-designs/studiokeeper/internal/logging"
	"github.com/ronin-designs/studiokeeper/internal/retryx"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
	"github.com/ronin-designs/studiokeeper/internal/server/provision"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/repomanager"
	"github.com/ronin-designs/studiokeeper/internal/validation"
)

// MessageService stores contact-form submissions and lets administrators
// review them.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provisioner *provision.Manager
	logger      logging.Logger
	policy      retryx.Policy
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager, p *provision.Manager, logger logging.Logger) *MessageService {
	return &MessageService{
		db:          db,
		repomanager: m,
		provisioner: p,
		logger:      logger,
		policy:      retryx.Default,
	}
}

// Create validates and stores a contact-form submission. New messages start
// unread.
func (s *MessageService) Create(ctx context.Context, name, email, subject, body string) (*models.Message, error) {
	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if err := validation.Email(email); err != nil {
		return nil, err
	}
	if err := validation.Message(body); err != nil {
		return nil, err
	}

	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	msg := &models.Message{
		Name:    name,
		Email:   validation.NormalizeEmail(email),
		Subject: subject,
		Message: body,
	}

	repo := s.repomanager.Messages(s.db)
	var created *models.Message
	err := s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		var opErr error
		created, opErr = repo.Create(ctx, msg)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "contact message stored", "message_id", created.ID)
	return created, nil
}

// List returns all messages, newest first.
func (s *MessageService) List(ctx context.Context) ([]*models.Message, error) {
	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	repo := s.repomanager.Messages(s.db)
	var out []*models.Message
	err := s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		var opErr error
		out, opErr = repo.List(ctx)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetRead flips the read flag on a message.
func (s *MessageService) SetRead(ctx context.Context, id string, read bool) (*models.Message, error) {
	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	repo := s.repomanager.Messages(s.db)
	var out *models.Message
	err := s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		var opErr error
		out, opErr = repo.SetRead(ctx, id, read)
		return opErr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
