package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"time"

	"github.com/ronin-designs/studiokeeper/internal/common"
	"github.com/ronin-designs/studiokeeper/internal/logging"
	"github.com/ronin-designs/studiokeeper/internal/retryx"
	"github.com/ronin-designs/studiokeeper/internal/server/admins"
	"github.com/ronin-designs/studiokeeper/internal/server/auth"
	"github.com/ronin-designs/studiokeeper/internal/server/config"
	"github.com/ronin-designs/studiokeeper/internal/server/hashing"
	"github.com/ronin-designs/studiokeeper/internal/server/models"
	"github.com/ronin-designs/studiokeeper/internal/server/provision"
	"github.com/ronin-designs/studiokeeper/internal/server/repositories/repomanager"
	"github.com/ronin-designs/studiokeeper/internal/validation"
)

// LoginResult is what a successful authentication hands back: the member
// without its credential, a signed session token, and the admin decision
// made against the allowlist at login time.
type LoginResult struct {
	Member  models.SafeMember
	Token   string
	IsAdmin bool
}

// AuthService verifies member credentials and registers new members.
//
// Verification understands both stored credential forms. A bcrypt digest is
// checked with bcrypt; a legacy plaintext value is compared in constant time
// and, on success, replaced with a digest before the response is returned.
// Both mismatch cases produce the same error so the stored form is not
// observable from the outside.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	provisioner   *provision.Manager
	hasher        *hashing.Hasher
	allowlist     *admins.Allowlist
	logger        logging.Logger
	policy        retryx.Policy
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, p *provision.Manager,
	allowlist *admins.Allowlist, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:            db,
		repomanager:   m,
		provisioner:   p,
		hasher:        hashing.NewHasher(cfg.BcryptCost),
		allowlist:     allowlist,
		logger:        logger,
		policy:        retryx.Default,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a new member. The password is hashed before storage; a
// duplicate normalized email yields common.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, name, email, password, phone string) (*models.SafeMember, error) {
	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if err := validation.Email(email); err != nil {
		return nil, err
	}
	if err := validation.Password(password); err != nil {
		return nil, err
	}
	if err := validation.Phone(phone); err != nil {
		return nil, err
	}

	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	member := &models.Member{
		Name:     name,
		Email:    validation.NormalizeEmail(email),
		Password: hash,
		Phone:    phone,
	}

	repo := s.repomanager.Members(s.db)
	var created *models.Member
	err = s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		var opErr error
		created, opErr = repo.Create(ctx, member)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	safe := created.Safe()
	return &safe, nil
}

// Authenticate verifies the email/password pair and, on success, returns the
// member together with a fresh session token. An unknown email and a wrong
// password produce the identical common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrValidation
	}
	normalized := validation.NormalizeEmail(email)

	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	repo := s.repomanager.Members(s.db)
	var member *models.Member
	err := s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		var opErr error
		member, opErr = repo.GetByEmail(ctx, normalized)
		return opErr
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.verifyCredential(ctx, member, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(member.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrInternal
	}

	isAdmin := s.allowlist.IsAdmin(validation.NormalizeEmail(member.Email))
	s.logger.Info(ctx, "login", "member_id", member.ID, "admin", isAdmin)

	return &LoginResult{
		Member:  member.Safe(),
		Token:   token,
		IsAdmin: isAdmin,
	}, nil
}

// AuthorizeAdmin resolves a session token to its member and checks the
// member's email against the allowlist. Any failure along the way reads as
// common.ErrUnauthorized to the caller.
func (s *AuthService) AuthorizeAdmin(ctx context.Context, token string) (*models.Member, error) {
	memberID, err := auth.GetMemberIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	if err := s.provisioner.EnsureReady(ctx); err != nil {
		return nil, err
	}

	repo := s.repomanager.Members(s.db)
	var member *models.Member
	err = s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		var opErr error
		member, opErr = repo.GetByID(ctx, memberID)
		return opErr
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, err
	}

	if !s.allowlist.IsAdmin(validation.NormalizeEmail(member.Email)) {
		return nil, common.ErrUnauthorized
	}
	return member, nil
}

// verifyCredential checks the candidate password against the stored
// credential, routing on the stored form. A matching plaintext credential is
// upgraded to a bcrypt digest before this returns; an upgrade failure is
// logged and swallowed so the already-verified login still succeeds.
func (s *AuthService) verifyCredential(ctx context.Context, member *models.Member, password string) bool {
	if hashing.LooksHashed(member.Password) {
		return s.hasher.Verify(password, member.Password)
	}

	if subtle.ConstantTimeCompare([]byte(member.Password), []byte(password)) != 1 {
		return false
	}

	s.upgradeCredential(ctx, member, password)
	return true
}

func (s *AuthService) upgradeCredential(ctx context.Context, member *models.Member, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Warn(ctx, "credential upgrade skipped", "member_id", member.ID, "error", err)
		return
	}

	repo := s.repomanager.Members(s.db)
	err = s.policy.Do(ctx, classifyStorageError, func(ctx context.Context) error {
		_, opErr := repo.Update(ctx, member.ID, models.MemberPatch{Password: &hash})
		return opErr
	})
	if err != nil {
		// The login already verified; a missed upgrade just means the next
		// login takes the plaintext path again.
		s.logger.Warn(ctx, "credential upgrade failed", "member_id", member.ID, "error", err)
		return
	}

	member.Password = hash
	s.logger.Info(ctx, "credential upgraded to hash", "member_id", member.ID)
}
