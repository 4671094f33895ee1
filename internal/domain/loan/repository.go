package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the row for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	ListByUser(ctx context.Context, userID uint64) ([]Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
