// Package members implements the member store over PostgreSQL.
//
// Rows written by this code always carry a normalized email, so the primary
// lookup is a plain equality query. Seed-era rows may predate that
// convention; GetByEmail therefore falls back to matching through the same
// lower(btrim(email)) expression the unique index is built on, so legacy
// rows resolve without failing the lookup.
package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/dbx"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
	"github.com/ronin-designs/studiokeeper/internal/validation"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const memberColumns = `id, name, email, password, phone, created_at`

func scanMember(row interface{ Scan(dest ...any) error }) (*models.Member, error) {
	m := &models.Member{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Password, &m.Phone, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create checks uniqueness before writing so a duplicate registration fails
// with a distinguishable error even when the unique index is not yet in
// place. The index catches the remaining cross-process race.
func (r *PostgresRepository) Create(ctx context.Context, member *models.Member) (*models.Member, error) {
	email := validation.NormalizeEmail(member.Email)

	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	query :=
		`INSERT INTO members (id, name, email, password, phone, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + memberColumns

	created := *member
	created.ID = uuid.NewString()
	created.Email = email
	created.CreatedAt = time.Now().UTC()

	got, err := scanMember(r.db.QueryRowContext(ctx, query,
		created.ID, created.Name, created.Email, created.Password, created.Phone, created.CreatedAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return got, nil
}

// GetByEmail looks up a member by normalized email. The equality query covers
// every row written by this code; when it comes up empty the repository
// retries through the normalizing expression, which resolves rows stored
// before the normalization convention (and before the index existed).
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	query :=
		`SELECT ` + memberColumns + ` FROM members
		 WHERE email = $1`

	m, err := scanMember(r.db.QueryRowContext(ctx, query, email))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.findLegacyEmail(ctx, email)
}

// findLegacyEmail matches denormalized rows through lower(btrim(email)),
// the expression the unique index is defined on, so the degrade path stays
// an indexed lookup rather than a table scan.
func (r *PostgresRepository) findLegacyEmail(ctx context.Context, email string) (*models.Member, error) {
	query :=
		`SELECT ` + memberColumns + ` FROM members
		 WHERE lower(btrim(email)) = $1`

	m, err := scanMember(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	query :=
		`SELECT ` + memberColumns + ` FROM members
		 WHERE id = $1`

	m, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.MemberPatch) (*models.Member, error) {
	query :=
		`UPDATE members
		 SET name = COALESCE($2, name),
		     password = COALESCE($3, password),
		     phone = COALESCE($4, phone)
		 WHERE id = $1
		 RETURNING ` + memberColumns

	m, err := scanMember(r.db.QueryRowContext(ctx, query, id, patch.Name, patch.Password, patch.Phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Member, error) {
	query :=
		`SELECT ` + memberColumns + ` FROM members
		 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
