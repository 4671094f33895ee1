package approval

import "context"

type Repository interface {
	Create(ctx context.Context, a *Approval) error

	// List returns the most recent decisions first; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Approval, error)

	ListBySubject(ctx context.Context, subject Subject, subjectID uint64) ([]Approval, error)
}
