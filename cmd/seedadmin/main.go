// Command seedadmin creates or updates the allowlisted administrator
// accounts. The shared admin password is taken from the -p flag or, when
// absent, read from the terminal without echo. Passwords are stored as
// bcrypt digests; existing accounts get their credential replaced.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/dbx"
	"github.com/ronin-designs/studiokeeper/internal/logging"
	"github.com/ronin-designs/studiokeeper/internal/server/config"
	"github.com/ronin-designs/studiokeeper/internal/server/hashing"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
	"github.com/ronin-designs/studiokeeper/internal/server/provision"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/repomanager"
	"github.com/ronin-designs/studiokeeper/internal/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seedadmin: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	password := flag.String("p", "", "admin password (prompted when empty)")
	flag.Parse()

	cfg := config.LoadConfig()
	if len(cfg.AdminEmails) == 0 {
		return errors.New("no admin emails configured")
	}

	pwd := *password
	if pwd == "" {
		var err error
		pwd, err = promptPassword()
		if err != nil {
			return err
		}
	}

	hash, err := hashing.NewHasher(cfg.BcryptCost).Hash(pwd)
	if err != nil {
		return err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnectTimeout)
	defer cancel()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := provision.NewManager(db, rm, logger).EnsureReady(ctx); err != nil {
		return err
	}

	for _, raw := range cfg.AdminEmails {
		email := validation.NormalizeEmail(raw)
		if email == "" {
			continue
		}
		// Lookup and write run in one transaction so a concurrent seeding
		// run cannot interleave between them.
		err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := rm.Members(tx)
			existing, err := repo.GetByEmail(ctx, email)
			switch {
			case err == nil:
				if _, err := repo.Update(ctx, existing.ID, models.MemberPatch{Password: &hash}); err != nil {
					return fmt.Errorf("updating %s: %w", email, err)
				}
				fmt.Printf("updated %s\n", email)
			case errors.Is(err, common.ErrNotFound):
				member := &models.Member{Name: "Admin", Email: email, Password: hash}
				if _, err := repo.Create(ctx, member); err != nil {
					return fmt.Errorf("creating %s: %w", email, err)
				}
				fmt.Printf("created %s\n", email)
			default:
				return fmt.Errorf("looking up %s: %w", email, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Admin password: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", errors.New("empty password")
	}
	return string(b), nil
}
