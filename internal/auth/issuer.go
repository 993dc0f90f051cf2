package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/shalinipalla005/Walletwise/internal/models"
	"github.com/shalinipalla005/Walletwise/internal/storage"
)

// Directory is the user lookup the issuer needs.
type Directory interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, name, email string) (*models.User, error)
}

// Issuer hands out tokens for users known to the directory. It stands in for
// an external identity provider: it trusts the email it is given.
type Issuer struct {
	directory Directory
	tokens    *JWTManager
}

// NewIssuer creates an Issuer.
func NewIssuer(directory Directory, tokens *JWTManager) *Issuer {
	return &Issuer{directory: directory, tokens: tokens}
}

// IssueFor returns a token for the user with email, registering the user
// under name first if they do not exist yet.
func (i *Issuer) IssueFor(ctx context.Context, name, email string) (*models.User, string, error) {
	user, err := i.directory.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		user, err = i.directory.CreateUser(ctx, name, email)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve user %s: %w", email, err)
	}

	token, err := i.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
