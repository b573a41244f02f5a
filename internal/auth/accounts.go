package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/repeatharmony/repeatharmony/internal/identity"
	"github.com/repeatharmony/repeatharmony/internal/model"
	"github.com/repeatharmony/repeatharmony/internal/repository"
)

// AccountRepository stores credential accounts.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
}

// errBadCredentials is shared by every login rejection to prevent enumeration.
const errBadCredentials = "invalid email or password"

// Accounts authenticates against stored argon2id password hashes.
// Signups create the account.
type Accounts struct {
	repo   AccountRepository
	params HashParams
	// dummyHash is verified on unknown emails so that both rejections cost the same.
	dummyHash string
}

// NewAccounts creates an Accounts authenticator hashing with params.
func NewAccounts(repo AccountRepository, params HashParams) (*Accounts, error) {
	dummy, err := params.Hash("repeatharmony-dummy-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Accounts{repo: repo, params: params, dummyHash: dummy}, nil
}

// Authenticate signs up or logs in depending on creds.Signup.
func (a *Accounts) Authenticate(ctx context.Context, creds Credentials) (Identity, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if creds.Signup {
		return a.signup(ctx, email, creds)
	}
	return a.login(ctx, email, creds.Password)
}

func (a *Accounts) signup(ctx context.Context, email string, creds Credentials) (Identity, error) {
	if utf8.RuneCountInString(creds.Password) < identity.MinPasswordLength {
		return Identity{}, &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", identity.MinPasswordLength),
		}
	}

	hash, err := a.params.Hash(creds.Password)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:           ulid.Make().String(),
		Email:        email,
		Name:         identity.ResolveName(email, creds.Name),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.repo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return Identity{}, &AuthenticationError{Reason: "an account with this email already exists"}
		}
		return Identity{}, err
	}

	return Identity{Email: account.Email, Name: account.Name}, nil
}

func (a *Accounts) login(ctx context.Context, email, password string) (Identity, error) {
	account, err := a.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			_, _ = VerifyPassword(password, a.dummyHash)
			return Identity{}, &AuthenticationError{Reason: errBadCredentials}
		}
		return Identity{}, err
	}

	ok, err := VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return Identity{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return Identity{}, &AuthenticationError{Reason: errBadCredentials}
	}

	return Identity{Email: account.Email, Name: account.Name}, nil
}
