package uow

import (
	"context"

	"loan-ledger/internal/domain/approval"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/payment"
	"loan-ledger/internal/domain/post"
	"loan-ledger/internal/domain/user"
)

// Repos are bound to one transaction.
type Repos struct {
	Users     user.Repository
	Loans     loan.Repository
	Payments  payment.Repository
	Approvals approval.Repository
	Posts     post.Repository
}

// UnitOfWork scopes a multi-step operation in one transaction: fn's error
// rolls everything back, nil commits.
type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock loan first, then pass it in
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
