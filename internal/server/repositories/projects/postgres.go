// Package projects implements the portfolio-project store over PostgreSQL.
package projects

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/dbx"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const projectColumns = `id, title, description, category, image, created_at`

func scanProject(row interface{ Scan(dest ...any) error }) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Image, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	query :=
		`INSERT INTO projects (id, title, description, category, image, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING ` + projectColumns

	got, err := scanProject(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), project.Title, project.Description, project.Category, project.Image, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return got, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Project, error) {
	query :=
		`SELECT ` + projectColumns + ` FROM projects
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM projects
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}
