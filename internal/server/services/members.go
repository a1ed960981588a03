package services

import (
	"context"
	"database/sql"

	"github.com/ronin-designs/studiokeeper/internal/logging"
	"github.com/ronin-designs/studiokeeper/internal/retryx"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
	"github.com/ronin-designs/studiokeeper/internal/server/provision"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/repomanager"
)

// MemberService exposes read access to the member roster. Credentials never
// leave this layer: every member is converted to its safe shape first.
type MemberService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	provisioner *provision.Manager
	logger      logging.Logger
	policy      retryx.Policy
}

func NewMemberService(db *sql.DB, m repomanager.RepositoryManager, p *provision.Manager, logger logging.Logger) *MemberService {
	return &MemberService{
		db:          db,
		repomanager: m,
		provisioner: p,
		logger:      logger,
		policy:      retryx.Default,
	}
}

// List returns all members without their credentials.
func (s *MemberService) List(ctx context.Context) ([]models.SafeMember, error) {
	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	repo := s.repomanager.Members(s.db)
	var members []*models.Member
	err := s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		var opErr error
		members, opErr = repo.List(ctx)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.SafeMember, 0, len(members))
	for _, m := range members {
		out = append(out, m.Safe())
	}
	return out, nil
}
