package post

import (
	"context"
	"errors"
	"testing"
	"time"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/errs"
	"loan-ledger/internal/domain/post"
	"loan-ledger/internal/domain/user"
	"loan-ledger/internal/testutil/postmock"
)

var (
	author = access.Principal{UserID: 10, Role: user.RoleBorrower, IsApproved: true}
	other  = access.Principal{UserID: 11, Role: user.RoleBorrower, IsApproved: true}
	admin  = access.Principal{UserID: 1, Role: user.RoleAdmin, IsApproved: true}
)

func TestUsecase_Create(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	var created *post.Post
	uc := NewUsecase(&postmock.Repo{CreateFn: func(_ context.Context, p *post.Post) error {
		p.ID = 1
		created = p
		return nil
	}}, nil)
	uc.now = func() time.Time { return now }

	got, err := uc.Create(context.Background(), author, "  hello board  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Content != "hello board" || !created.CreatedAt.Equal(now) || created.UserID != 10 {
		t.Fatalf("unexpected post: %+v", created)
	}

	if _, err := uc.Create(context.Background(), author, "   "); !errors.Is(err, post.ErrEmptyContent) {
		t.Fatalf("blank content: %v", err)
	}
	if _, err := uc.Create(context.Background(), access.Principal{}, "x"); !errors.Is(err, errs.Permission) {
		t.Fatalf("anonymous: %v", err)
	}
}

func TestUsecase_UpdateAndDelete_Ownership(t *testing.T) {
	stored := func() *post.Post { return &post.Post{ID: 4, UserID: 10, Content: "old"} }
	deleted := false
	repo := &postmock.Repo{
		GetByIDFn: func(context.Context, uint64) (*post.Post, error) { return stored(), nil },
		SaveFn:    func(context.Context, *post.Post) error { return nil },
		DeleteFn:  func(context.Context, uint64) error { deleted = true; return nil },
	}
	uc := NewUsecase(repo, nil)
	ctx := context.Background()

	if _, err := uc.Update(ctx, other, 4, "new"); !errors.Is(err, errs.Permission) {
		t.Fatalf("non-owner update: %v", err)
	}
	if _, err := uc.Update(ctx, admin, 4, "new"); !errors.Is(err, errs.Permission) {
		t.Fatalf("admin edits are not allowed: %v", err)
	}
	got, err := uc.Update(ctx, author, 4, "new")
	if err != nil || got.Content != "new" {
		t.Fatalf("owner update: %+v, %v", got, err)
	}

	if err := uc.Delete(ctx, other, 4); !errors.Is(err, errs.Permission) || deleted {
		t.Fatalf("non-owner delete: %v", err)
	}
	if err := uc.Delete(ctx, admin, 4); err != nil || !deleted {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestUsecase_Update_Missing(t *testing.T) {
	uc := NewUsecase(&postmock.Repo{GetByIDFn: func(context.Context, uint64) (*post.Post, error) {
		return nil, post.ErrNotFound
	}}, nil)
	if _, err := uc.Update(context.Background(), author, 9, "x"); !errors.Is(err, post.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
