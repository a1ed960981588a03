package members

import (
	"context"

	"github.com/ronin-designs/studiokeeper/internal/server/models"
)

// Repository persists member records. Email arguments are expected in
// normalized form (trimmed, lowercased); see validation.NormalizeEmail.
type Repository interface {
	// Create inserts a new member and returns it with its generated ID.
	// A member with the same normalized email yields common.ErrAlreadyExists.
	Create(ctx context.Context, member *models.Member) (*models.Member, error)

	// GetByEmail finds a member by normalized email, common.ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.Member, error)

	// GetByID finds a member by ID, common.ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Member, error)

	// Update applies a partial update, common.ErrNotFound when absent.
	Update(ctx context.Context, id string, patch models.MemberPatch) (*models.Member, error)

	// List returns all members.
	List(ctx context.Context) ([]*models.Member, error)
}
