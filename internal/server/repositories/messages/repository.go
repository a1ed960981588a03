package messages

import (
	"context"

	"github.com/ronin-designs/studiokeeper/internal/server/models"
)

// Repository persists contact-form messages.
type Repository interface {
	// Create inserts a new message and returns it with its generated ID.
	Create(ctx context.Context, message *models.Message) (*models.Message, error)

	// GetByID finds a message by ID, common.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Message, error)

	// List returns all messages, newest first.
	List(ctx context.Context) ([]*models.Message, error)

	// SetRead updates the read flag, common.ErrNotFound when absent.
	SetRead(ctx context.Context, id string, read bool) (*models.Message, error)
}
