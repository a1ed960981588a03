package projects

import (
	"context"

	"github.com/ronin-designs/studiokeeper/internal/server/models"
)

// Repository persists portfolio projects.
type Repository interface {
	// Create inserts a new project and returns it with its generated ID.
	Create(ctx context.Context, project *models.Project) (*models.Project, error)

	// List returns all projects, newest first.
	List(ctx context.Context) ([]*models.Project, error)

	// Delete removes a project by ID, common.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
