// Package services contains server-side business logic. This file implements
// AccountService, which handles registration and authentication for the four
// campus roles and issues the bearer tokens consumed by the front-end.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campuskit/campusauth/internal/common"
	"github.com/campuskit/campusauth/internal/logging"
	"github.com/campuskit/campusauth/internal/server/auth"
	"github.com/campuskit/campusauth/internal/server/models"
	"github.com/campuskit/campusauth/internal/server/passwords"
	"github.com/campuskit/campusauth/internal/server/repositories/repomanager"
)

// AuthResult is the uniform outcome of a successful registration or
// authentication. Account carries no password hash when serialized.
type AuthResult struct {
	Role    models.Role     `json:"role"`
	Account *models.Account `json:"account"`
	Token   string          `json:"token"`
}

// AccountService provides the credential lifecycle operations:
// - Register: validate, check uniqueness, hash, persist, issue token
// - Authenticate: resolve (email, role), verify password, issue token
// - AuthenticateFederated: same flow for an identity already verified upstream
type AccountService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher passwords.Hasher
	tokens *auth.Issuer
	logger logging.Logger
}

// NewAccountService constructs an AccountService from its collaborators. The
// token issuer carries the signing secret; nothing here reads ambient state.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, h passwords.Hasher, i *auth.Issuer, l logging.Logger) *AccountService {
	return &AccountService{
		db:     db,
		repos:  m,
		hasher: h,
		tokens: i,
		logger: l.With("module", "accounts"),
	}
}

// Register creates an account and returns it with a fresh token.
//
// The prior GetByEmail check gives duplicate registrations a clean
// ErrDuplicateEmail before any hashing work; the unique index behind
// Repository.Create closes the remaining check-then-insert race, so two
// concurrent registrations for one email can never both succeed.
func (s *AccountService) Register(ctx context.Context, email, password, roleName string) (*AuthResult, error) {
	role, err := s.validateRegistration(email, password, roleName)
	if err != nil {
		return nil, err
	}

	repo := s.repos.Accounts(s.db)

	_, err = repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrDuplicateEmail
	}
	if !errors.Is(err, common.ErrorNotFound) {
		s.logger.Error(ctx, "uniqueness check failed", "error", err)
		return nil, common.ErrStoreUnavailable
	}

	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorInternal
	}

	account, err := repo.Create(ctx, &models.Account{
		Email:        email,
		PasswordHash: digest,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		s.logger.Error(ctx, "account insert failed", "error", err)
		return nil, common.ErrStoreUnavailable
	}

	// Insert succeeded; only now may a token exist for this account.
	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "account registered", "account_id", account.ID, "role", account.Role)
	return &AuthResult{Role: account.Role, Account: account, Token: token}, nil
}

// Authenticate verifies the password for the account registered under
// (email, role) and returns a fresh token. An email registered under a
// different role fails with ErrNotFoundForRole; the error carries no hint
// that the email exists at all.
func (s *AccountService) Authenticate(ctx context.Context, email, password, roleName string) (*AuthResult, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password", common.ErrInvalidInput)
	}
	return s.authenticate(ctx, email, roleName, &passwordVerifier{hasher: s.hasher, password: password})
}

// AuthenticateFederated handles the already-authenticated entry point: a
// federated identity collaborator has verified the email upstream, so the
// password step is skipped and the flow converges on token issuance.
func (s *AccountService) AuthenticateFederated(ctx context.Context, email, roleName string) (*AuthResult, error) {
	return s.authenticate(ctx, email, roleName, federatedVerifier{})
}

// GetAccount resolves a token subject back to its account.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.repos.Accounts(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrStoreUnavailable
	}
	return account, nil
}

// --- helpers below ---

func (s *AccountService) authenticate(ctx context.Context, email, roleName string, verifier credentialVerifier) (*AuthResult, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email", common.ErrInvalidInput)
	}
	role, ok := models.ParseRole(roleName)
	if !ok {
		return nil, fmt.Errorf("%w: role", common.ErrInvalidInput)
	}

	repo := s.repos.Accounts(s.db)

	account, err := repo.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNotFoundForRole
		}
		s.logger.Error(ctx, "account lookup failed", "error", err)
		return nil, common.ErrStoreUnavailable
	}

	if err := verifier.verify(ctx, account); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		s.logger.Error(ctx, "token issuance failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "account authenticated", "account_id", account.ID, "role", account.Role)
	return &AuthResult{Role: account.Role, Account: account, Token: token}, nil
}

// validateRegistration requires email, password, and role to be present and
// non-empty, and the role to be one of the four permitted values. Password
// strength policy belongs to the front-end, not the credential lifecycle.
func (s *AccountService) validateRegistration(email, password, roleName string) (models.Role, error) {
	if email == "" {
		return "", fmt.Errorf("%w: email", common.ErrInvalidInput)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password", common.ErrInvalidInput)
	}
	role, ok := models.ParseRole(roleName)
	if !ok {
		return "", fmt.Errorf("%w: role", common.ErrInvalidInput)
	}
	return role, nil
}
