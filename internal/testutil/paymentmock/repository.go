package paymentmock

import (
	"context"

	domain "loan-ledger/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, p *domain.Payment) error
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.Payment, error)
	ListByUserFn   func(ctx context.Context, userID uint64) ([]domain.Payment, error)
	ListByLoanFn   func(ctx context.Context, loanID uint64) ([]domain.Payment, error)
	ListByStatusFn func(ctx context.Context, status domain.Status) ([]domain.Payment, error)
	MarkApprovedFn func(ctx context.Context, id uint64) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Payment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUser(ctx context.Context, userID uint64) ([]domain.Payment, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.Payment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Payment, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) MarkApproved(ctx context.Context, id uint64) error {
	if m.MarkApprovedFn != nil {
		return m.MarkApprovedFn(ctx, id)
	}
	return nil
}
