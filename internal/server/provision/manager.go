// Package provision lazily creates the backing storage structures before
// first use. Provisioning runs at most once per process when it succeeds:
// the manager memoizes completion and collapses concurrent first calls into
// a single underlying attempt. Cross-process races are resolved by the
// migrations themselves, which tolerate already-existing structures.
package provision

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/logging"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/repomanager"
)

// Manager tracks provisioning state for one process. The zero state is
// "uninitialized"; a failed attempt returns the manager to that state so a
// later call can retry, and only the callers joined to the failed attempt
// observe its error.
type Manager struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger

	mu    sync.Mutex
	ready bool

	group singleflight.Group
}

func NewManager(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *Manager {
	return &Manager{db: db, rm: rm, logger: logger}
}

// EnsureReady provisions the storage structures if that has not happened
// yet. After the first success it returns immediately without touching the
// store. Concurrent callers share one in-flight attempt instead of each
// launching their own.
//
// A missing database handle means the backend was never configured; that is
// a terminal condition and is reported without an attempt. All failures,
// configured or not, carry common.ErrStorageUnavailable; the underlying
// cause stays on the chain for logs.
func (m *Manager) EnsureReady(ctx context.Context) error {
	if m.db == nil {
		return common.ErrStorageUnavailable
	}

	m.mu.Lock()
	if m.ready {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	_, err, _ := m.group.Do("provision", func() (any, error) {
		// A caller that lost the race to a completed attempt joins here
		// after ready flipped; skip the duplicate run.
		m.mu.Lock()
		if m.ready {
			m.mu.Unlock()
			return nil, nil
		}
		m.mu.Unlock()

		if err := m.rm.RunMigrations(ctx, m.db); err != nil {
			m.logger.Error(ctx, "storage provisioning failed", "error", err)
			return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
		}

		m.mu.Lock()
		m.ready = true
		m.mu.Unlock()

		m.logger.Info(ctx, "storage provisioned")
		return nil, nil
	})

	return err
}

// Ready reports whether provisioning has completed successfully.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ready
}
