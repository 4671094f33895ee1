package approvalmock

import (
	"context"

	domain "loan-ledger/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, a *domain.Approval) error
	ListFn          func(ctx context.Context, limit int) ([]domain.Approval, error)
	ListBySubjectFn func(ctx context.Context, subject domain.Subject, subjectID uint64) ([]domain.Approval, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Approval) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, limit int) ([]domain.Approval, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit)
	}
	return nil, nil
}

func (m *Repo) ListBySubject(ctx context.Context, subject domain.Subject, subjectID uint64) ([]domain.Approval, error) {
	if m.ListBySubjectFn != nil {
		return m.ListBySubjectFn(ctx, subject, subjectID)
	}
	return nil, nil
}
