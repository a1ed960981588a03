package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/logging"
	"github.com/ronin-designs/studiokeeper/internal/retryx"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
	"github.com/ronin-designs/studiokeeper/internal/server/provision"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/repomanager"
)

// ProjectService manages the portfolio project catalog. Listing is public;
// create and delete are reserved for administrators at the transport layer.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provisioner *provision.Manager
	logger      logging.Logger
	policy      retryx.Policy
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager, p *provision.Manager, logger logging.Logger) *ProjectService {
	return &ProjectService{
		db:          db,
		repomanager: m,
		provisioner: p,
		logger:      logger,
		policy:      retryx.Default,
	}
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	repo := s.repomanager.Projects(s.db)
	var out []*models.Project
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

// Create validates and stores a new project.
func (s *ProjectService) Create(ctx context.Context, title, description, category, image string) (*models.Project, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrValidation)
	}

	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       title,
		Description: description,
		Category:    category,
		Image:       image,
	}

	repo := s.repomanager.Projects(s.db)
	var created *models.Project
	err := s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		var opErr error
		created, opErr = repo.Create(ctx, project)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "project created", "project_id", created.ID)
	return created, nil
}

// Delete removes a project by ID.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return err
	}

	repo := s.repomanager.Projects(s.db)
	err := s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "project deleted", "project_id", id)
	return nil
}
