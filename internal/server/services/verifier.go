package services

import (
	"context"

	"github.com/campuskit/campusauth/internal/common"
	"github.com/campuskit/campusauth/internal/server/models"
	"github.com/campuskit/campusauth/internal/server/passwords"
)

// credentialVerifier decides whether a resolved account may authenticate.
// The two variants are password verification and federated identity, where
// an upstream provider has already asserted the email. Both converge on the
// same token issuance step.
type credentialVerifier interface {
	verify(ctx context.Context, account *models.Account) error
}

type passwordVerifier struct {
	hasher   passwords.Hasher
	password string
}

func (v *passwordVerifier) verify(ctx context.Context, account *models.Account) error {
	ok, err := v.hasher.Verify(ctx, v.password, account.PasswordHash)
	if err != nil {
		// Malformed stored digest, not a wrong password.
		return common.ErrorInternal
	}
	if !ok {
		return common.ErrInvalidPassword
	}
	return nil
}

// federatedVerifier trusts the upstream identity provider; there is no
// credential left to check.
type federatedVerifier struct{}

func (federatedVerifier) verify(ctx context.Context, account *models.Account) error {
	return nil
}
