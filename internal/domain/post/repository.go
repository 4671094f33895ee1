package post

import "context"

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uint64) (*Post, error)
	// ListWithAuthors returns every post newest first, joined with the author's name.
	ListWithAuthors(ctx context.Context) ([]WithAuthor, error)
	Save(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uint64) error
}
