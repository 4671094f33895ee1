package usermock

import (
	"context"
	"errors"
	"testing"

	domain "loan-ledger/internal/domain/user"
)

func TestRepo_GetByEmail(t *testing.T) {
	ctx := context.Background()
	want := &domain.User{ID: 3, Email: "x@example.com"}

	called := false
	m := &Repo{
		GetByEmailFn: func(gotCtx context.Context, email string) (*domain.User, error) {
			called = true
			if gotCtx != ctx || email != "x@example.com" {
				t.Fatalf("GetByEmail args mismatch: %q", email)
			}
			return want, nil
		},
	}
	got, err := m.GetByEmail(ctx, "x@example.com")
	if err != nil || got != want || !called {
		t.Fatalf("GetByEmail: got %+v, %v (called=%v)", got, err, called)
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	if _, err := m.GetByEmail(ctx, "x"); err != context.Canceled {
		t.Fatalf("GetByEmail default: want context.Canceled, got %v", err)
	}
	if _, err := m.GetByID(ctx, 1); err != context.Canceled {
		t.Fatalf("GetByID default: want context.Canceled, got %v", err)
	}
}

func TestRepo_Writes(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")
	m := &Repo{
		SaveFn:   func(context.Context, *domain.User) error { return wantErr },
		DeleteFn: func(_ context.Context, id uint64) error { return wantErr },
	}
	if err := m.Save(ctx, &domain.User{}); !errors.Is(err, wantErr) {
		t.Fatalf("Save: want %v, got %v", wantErr, err)
	}
	if err := m.Delete(ctx, 1); !errors.Is(err, wantErr) {
		t.Fatalf("Delete: want %v, got %v", wantErr, err)
	}

	// Default (nil func) → no-op
	m = &Repo{}
	if err := m.Create(ctx, &domain.User{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if list, err := m.List(ctx); list != nil || err != nil {
		t.Fatalf("List default: %v, %v", list, err)
	}
}
