package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id uint64) (*Payment, error)
	ListByUser(ctx context.Context, userID uint64) ([]Payment, error)
	ListByLoan(ctx context.Context, loanID uint64) ([]Payment, error)
	ListByStatus(ctx context.Context, status Status) ([]Payment, error)
	// MarkApproved flips a pending payment to approved. It returns
	// ErrAlreadyApproved when no pending row matched, so two racing
	// approvals cannot both succeed.
	MarkApproved(ctx context.Context, id uint64) error
}
