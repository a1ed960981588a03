package repomanager

import (
	"context"
	"database/sql"

	"github.com/ronin-designs/studiokeeper/internal/dbx"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/members"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/messages"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/projects"
)

// RepositoryManager vends repository implementations bound to a DB handle
// and exposes the schema-provisioning hook used by the provision manager.
type RepositoryManager interface {
	Members(db dbx.DBTX) members.Repository
	Messages(db dbx.DBTX) messages.Repository
	Projects(db dbx.DBTX) projects.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
