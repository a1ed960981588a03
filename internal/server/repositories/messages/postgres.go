// Package messages implements the contact-message store over PostgreSQL.
package messages

import (
	"context"
	"database/sql"
	"errors"
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

const messageColumns = `id, name, email, subject, message, read, created_at`

func scanMessage(row interface{ Scan(dest ...any) error }) (*models.Message, error) {
	m := &models.Message{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (id, name, email, subject, message, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		 RETURNING ` + messageColumns

	got, err := scanMessage(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), message.Name, message.Email, message.Subject, message.Message, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return got, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query :=
		`SELECT ` + messageColumns + ` FROM messages
		 WHERE id = $1`

	m, err := scanMessage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Message, error) {
	query :=
		`SELECT ` + messageColumns + ` FROM messages
		 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Message
	for rows.Next() {
		m, err := scanMessage(rows)
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

func (r *PostgresRepository) SetRead(ctx context.Context, id string, read bool) (*models.Message, error) {
	query :=
		`UPDATE messages SET read = $2
		 WHERE id = $1
		 RETURNING ` + messageColumns

	m, err := scanMessage(r.db.QueryRowContext(ctx, query, id, read))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return m, nil
}
