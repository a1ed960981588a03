package members

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
)

const (
	qSelectByEmail = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password,\s*phone,\s*created_at\s+FROM\s+members\s+WHERE\s+email\s*=\s*\$1\s*$`
	qSelectLegacy  = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password,\s*phone,\s*created_at\s+FROM\s+members\s+WHERE\s+lower\(btrim\(email\)\)\s*=\s*\$1\s*$`
	qSelectByID    = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password,\s*phone,\s*created_at\s+FROM\s+members\s+WHERE\s+id\s*=\s*\$1\s*$`
	qList          = `(?s)^SELECT\s+id,\s*name,\s*email,\s*password,\s*phone,\s*created_at\s+FROM\s+members\s+ORDER\s+BY\s+created_at\s*$`
	qInsert        = `(?s)^INSERT\s+INTO\s+members\s*\(id,\s*name,\s*email,\s*password,\s*phone,\s*created_at\)`
	qUpdate        = `(?s)^UPDATE\s+members\s+SET\s+name\s*=\s*COALESCE`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func memberRows(ms ...*models.Member) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "phone", "created_at"})
	for _, m := range ms {
		rows.AddRow(m.ID, m.Name, m.Email, m.Password, m.Phone, m.CreatedAt)
	}
	return rows
}

func TestGetByEmail_IndexedHit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	want := &models.Member{ID: "m-1", Name: "Alice", Email: "alice@example.com", Password: "$2a$10$x", CreatedAt: time.Now()}
	mock.ExpectQuery(qSelectByEmail).WithArgs("alice@example.com").WillReturnRows(memberRows(want))

	got, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "m-1" || got.Email != "alice@example.com" {
		t.Fatalf("unexpected member: %+v", got)
	}
}

func TestGetByEmail_FallbackFindsLegacyRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qSelectByEmail).WithArgs("admin@example.com").WillReturnError(sql.ErrNoRows)

	legacy := &models.Member{ID: "m-2", Name: "Admin", Email: "Admin@Example.com ", Password: "secret1"}
	mock.ExpectQuery(qSelectLegacy).WithArgs("admin@example.com").WillReturnRows(memberRows(legacy))

	got, err := repo.GetByEmail(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "m-2" {
		t.Fatalf("expected legacy row m-2, got %+v", got)
	}
}

func TestGetByEmail_NotFoundAfterFallback(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qSelectByEmail).WithArgs("nobody@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(qSelectLegacy).WithArgs("nobody@example.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qSelectByEmail).WithArgs("alice@example.com").WillReturnError(errors.New("link down"))

	_, err := repo.GetByEmail(context.Background(), "alice@example.com")
	if err == nil || errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreate_Success_NormalizesEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qSelectByEmail).WithArgs("carol@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(qSelectLegacy).WithArgs("carol@example.com").WillReturnError(sql.ErrNoRows)

	created := &models.Member{ID: "m-9", Name: "Carol", Email: "carol@example.com", Password: "$2a$10$z", CreatedAt: time.Now()}
	mock.ExpectQuery(qInsert).
		WithArgs(sqlmock.AnyArg(), "Carol", "carol@example.com", "$2a$10$z", "", sqlmock.AnyArg()).
		WillReturnRows(memberRows(created))

	got, err := repo.Create(context.Background(), &models.Member{Name: "Carol", Email: " Carol@Example.COM ", Password: "$2a$10$z"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Email != "carol@example.com" {
		t.Fatalf("expected normalized email, got %q", got.Email)
	}
}

func TestCreate_DuplicatePreCheck(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	existing := &models.Member{ID: "m-1", Name: "Alice", Email: "alice@example.com"}
	mock.ExpectQuery(qSelectByEmail).WithArgs("alice@example.com").WillReturnRows(memberRows(existing))

	_, err := repo.Create(context.Background(), &models.Member{Name: "Other", Email: "Alice@example.com"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreate_DuplicateUniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	// Pre-check misses: a concurrent writer inserts between check and write.
	mock.ExpectQuery(qSelectByEmail).WithArgs("alice@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(qSelectLegacy).WithArgs("alice@example.com").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(qInsert).WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), &models.Member{Name: "Alice", Email: "alice@example.com"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qSelectByID).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_PatchesPassword(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	hashed := "$2a$10$upgraded"
	want := &models.Member{ID: "m-1", Name: "Alice", Email: "alice@example.com", Password: hashed}
	mock.ExpectQuery(qUpdate).
		WithArgs("m-1", nil, hashed, nil).
		WillReturnRows(memberRows(want))

	got, err := repo.Update(context.Background(), "m-1", models.MemberPatch{Password: &hashed})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Password != hashed {
		t.Fatalf("expected updated password, got %q", got.Password)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	name := "X"
	mock.ExpectQuery(qUpdate).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), "missing", models.MemberPatch{Name: &name})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_ReturnsAll(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	a := &models.Member{ID: "m-1", Name: "A", Email: "a@example.com"}
	b := &models.Member{ID: "m-2", Name: "B", Email: "b@example.com"}
	mock.ExpectQuery(qList).WillReturnRows(memberRows(a, b))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "m-1" || got[1].ID != "m-2" {
		t.Fatalf("unexpected members: %+v", got)
	}
}
