package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/repeatharmony/repeatharmony/internal/model"
	"github.com/repeatharmony/repeatharmony/internal/repository"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
	err      error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*model.Account)}
}

func (f *fakeAccountRepo) CreateAccount(_ context.Context, account *model.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.accounts[account.Email]; ok {
		return repository.ErrEmailExists
	}
	f.accounts[account.Email] = account
	return nil
}

func (f *fakeAccountRepo) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	account, ok := f.accounts[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return account, nil
}

func newTestAccounts(t *testing.T) (*Accounts, *fakeAccountRepo) {
	t.Helper()
	repo := newFakeAccountRepo()
	a, err := NewAccounts(repo, cheapParams)
	if err != nil {
		t.Fatalf("NewAccounts() error = %v", err)
	}
	return a, repo
}

func TestAccounts_SignupThenLogin(t *testing.T) {
	t.Parallel()

	a, repo := newTestAccounts(t)
	ctx := context.Background()

	ident, err := a.Authenticate(ctx, Credentials{
		Email:    "  Jane.Doe@Example.com ",
		Password: "Abcdefg1",
		Name:     "Jane Doe",
		Signup:   true,
	})
	if err != nil {
		t.Fatalf("signup error = %v", err)
	}
	if ident.Email != "jane.doe@example.com" || ident.Name != "Jane Doe" {
		t.Errorf("signup identity = %+v", ident)
	}

	stored := repo.accounts["jane.doe@example.com"]
	if stored == nil || stored.PasswordHash == "Abcdefg1" || stored.ID == "" {
		t.Fatalf("stored account = %+v", stored)
	}

	ident, err = a.Authenticate(ctx, Credentials{Email: "JANE.DOE@example.com", Password: "Abcdefg1"})
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if ident.Name != "Jane Doe" {
		t.Errorf("login Name = %q, want the stored name", ident.Name)
	}
}

func TestAccounts_Rejections(t *testing.T) {
	t.Parallel()

	a, _ := newTestAccounts(t)
	ctx := context.Background()
	if _, err := a.Authenticate(ctx, Credentials{Email: "jane@example.com", Password: "Abcdefg1", Name: "Jane", Signup: true}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		creds Credentials
	}{
		{"wrong password", Credentials{Email: "jane@example.com", Password: "nope-nope"}},
		{"unknown email", Credentials{Email: "ghost@example.com", Password: "Abcdefg1"}},
		{"duplicate signup", Credentials{Email: "jane@example.com", Password: "Abcdefg1", Name: "Jane", Signup: true}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := a.Authenticate(ctx, tt.creds)
			var authErr *AuthenticationError
			if !errors.As(err, &authErr) {
				t.Fatalf("error = %v, want *AuthenticationError", err)
			}
		})
	}
}

func TestAccounts_LoginDoesNotRevealEmail(t *testing.T) {
	t.Parallel()

	a, _ := newTestAccounts(t)
	ctx := context.Background()
	if _, err := a.Authenticate(ctx, Credentials{Email: "jane@example.com", Password: "Abcdefg1", Name: "Jane", Signup: true}); err != nil {
		t.Fatal(err)
	}

	_, unknown := a.Authenticate(ctx, Credentials{Email: "ghost@example.com", Password: "Abcdefg1"})
	_, wrong := a.Authenticate(ctx, Credentials{Email: "jane@example.com", Password: "Wrong123"})
	if unknown == nil || wrong == nil || unknown.Error() != wrong.Error() {
		t.Errorf("errors differ: %v vs %v", unknown, wrong)
	}
}

func TestAccounts_SignupShortPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
	}{
		{"ascii", "short"},
		// Ten bytes but five characters.
		{"multi-byte", "Éééé1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, repo := newTestAccounts(t)
			_, err := a.Authenticate(context.Background(), Credentials{Email: "jane@example.com", Password: tt.password, Signup: true})

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) || validationErr.Field != "password" {
				t.Fatalf("error = %v, want password ValidationError", err)
			}
			if len(repo.accounts) != 0 {
				t.Error("no account should be created")
			}
		})
	}
}

func TestAccounts_RepositoryFailure(t *testing.T) {
	t.Parallel()

	a, repo := newTestAccounts(t)
	repo.err = errors.New("connection refused")

	_, err := a.Authenticate(context.Background(), Credentials{Email: "jane@example.com", Password: "Abcdefg1"})
	if err == nil || isRejection(err) {
		t.Errorf("error = %v, want a non-rejection failure", err)
	}
}

func TestManager_WithAccounts(t *testing.T) {
	t.Parallel()

	a, _ := newTestAccounts(t)
	env := newTestEnv(a)
	ctx := context.Background()
	m := NewManager(ctx, "b1", env.deps)

	user, err := m.Login(ctx, "sam.rivera@example.com", "Abcdefg1", "Sam Rivera")
	if err != nil {
		t.Fatalf("signup via manager error = %v", err)
	}
	if user.Initials != "SR" {
		t.Errorf("Initials = %q, want SR", user.Initials)
	}
	m.Logout(ctx)

	user, err = m.Login(ctx, "sam.rivera@example.com", "Abcdefg1", "")
	if err != nil {
		t.Fatalf("login via manager error = %v", err)
	}
	if user.Name != "Sam Rivera" {
		t.Errorf("Name = %q, want the account name", user.Name)
	}
}
