package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	// GetByEmail returns ErrNotFound when no account uses the address.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// List returns every account, newest first.
	List(ctx context.Context) ([]User, error)
	Save(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint64) error
}
