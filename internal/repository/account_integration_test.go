//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/repeatharmony/repeatharmony/internal/model"
	"github.com/repeatharmony/repeatharmony/internal/testutil"
)

func newIntegrationRepo(t *testing.T) (context.Context, *Repository) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	unlock, err := testutil.AcquireDBLock(ctx, pool)
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	repo := NewWithPool(pool)
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := testutil.TruncateAccounts(ctx, pool); err != nil {
		t.Fatal(err)
	}
	return ctx, repo
}

func TestIntegrationMigrate_Idempotent(t *testing.T) {
	ctx, repo := newIntegrationRepo(t)

	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestIntegrationAccount_CreateAndGet(t *testing.T) {
	ctx, repo := newIntegrationRepo(t)

	created := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	account := &model.Account{
		ID:           "01HZX3Q6V7Y8Z9ABCDEFGHJKMN",
		Email:        "jane.doe@example.com",
		Name:         "Jane Doe",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		CreatedAt:    created,
	}
	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	got, err := repo.GetAccountByEmail(ctx, account.Email)
	if err != nil {
		t.Fatalf("GetAccountByEmail() error = %v", err)
	}
	if got.ID != account.ID || got.Name != account.Name || got.PasswordHash != account.PasswordHash {
		t.Errorf("got %+v, want %+v", got, account)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestIntegrationAccount_DuplicateEmail(t *testing.T) {
	ctx, repo := newIntegrationRepo(t)

	account := &model.Account{ID: "a1", Email: "sam@example.com", Name: "Sam", PasswordHash: "h", CreatedAt: time.Now()}
	if err := repo.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	account.ID = "a2"
	if err := repo.CreateAccount(ctx, account); !errors.Is(err, ErrEmailExists) {
		t.Errorf("error = %v, want ErrEmailExists", err)
	}
}

func TestIntegrationAccount_NotFound(t *testing.T) {
	ctx, repo := newIntegrationRepo(t)

	if _, err := repo.GetAccountByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("GetAccountByEmail() error = %v, want ErrAccountNotFound", err)
	}
	if err := repo.DeleteAccount(ctx, "nobody@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("DeleteAccount() error = %v, want ErrAccountNotFound", err)
	}
}
