package postmock

import (
	"context"

	domain "loan-ledger/internal/domain/post"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, p *domain.Post) error
	GetByIDFn         func(ctx context.Context, id uint64) (*domain.Post, error)
	ListWithAuthorsFn func(ctx context.Context) ([]domain.WithAuthor, error)
	SaveFn            func(ctx context.Context, p *domain.Post) error
	DeleteFn          func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Post) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Post, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListWithAuthors(ctx context.Context) ([]domain.WithAuthor, error) {
	if m.ListWithAuthorsFn != nil {
		return m.ListWithAuthorsFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, p *domain.Post) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
