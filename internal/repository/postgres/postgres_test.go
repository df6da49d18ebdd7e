package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"learnhub/internal/domain/models"
	"learnhub/internal/domain/repositories"
)

func TestNewTableNames(t *testing.T) {
	tables := NewTableNames("test_")
	if tables.Contents != "test_contents" {
		t.Errorf("expected test_contents, got %q", tables.Contents)
	}
	if tables.UserPreferences != "test_user_preferences" {
		t.Errorf("expected test_user_preferences, got %q", tables.UserPreferences)
	}
}

func TestPgErrorHelpers(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("query: %w", &pgconn.PgError{Code: code})
	}

	tests := []struct {
		name      string
		err       error
		duplicate bool
		noRows    bool
		fk        bool
		invalid   bool
	}{
		{name: "unique violation", err: wrap("23505"), duplicate: true},
		{name: "foreign key violation", err: wrap("23503"), fk: true},
		{name: "invalid uuid", err: wrap("22P02"), invalid: true},
		{name: "no rows", err: fmt.Errorf("get: %w", pgx.ErrNoRows), noRows: true},
		{name: "plain error", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPgDuplicateError(tt.err); got != tt.duplicate {
				t.Errorf("IsPgDuplicateError = %v, want %v", got, tt.duplicate)
			}
			if got := IsPgNoRowsError(tt.err); got != tt.noRows {
				t.Errorf("IsPgNoRowsError = %v, want %v", got, tt.noRows)
			}
			if got := IsPgForeignKeyError(tt.err); got != tt.fk {
				t.Errorf("IsPgForeignKeyError = %v, want %v", got, tt.fk)
			}
			if got := IsPgInvalidInputError(tt.err); got != tt.invalid {
				t.Errorf("IsPgInvalidInputError = %v, want %v", got, tt.invalid)
			}
		})
	}
}

func TestTransactionManager_NestedReusesOuter(t *testing.T) {
	// A context that already carries a transaction never touches the pool
	tm := &TransactionManager{}
	ctx := repositories.SetTx(context.Background(), fakeTx{})

	called := false
	err := tm.ExecTx(ctx, func(txCtx context.Context) error {
		called = true
		if !repositories.InTx(txCtx) {
			t.Error("expected nested call to run inside the outer transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected fn to run")
	}
}

// fakeTx satisfies pgx.Tx for context propagation tests only
type fakeTx struct {
	pgx.Tx
}

func TestGetForUpdate_RequiresTransaction(t *testing.T) {
	repo := NewUserPreferencesRepository(&RepositoryConfig{Tables: NewTableNames("test_")})

	_, err := repo.GetForUpdate(context.Background(), &models.UserPreferences{UserID: uuid.New()})
	if err == nil {
		t.Error("expected error outside a transaction")
	}
}
