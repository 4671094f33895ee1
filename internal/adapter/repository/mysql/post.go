package mysql

import (
	"context"

	"gorm.io/gorm"

	postDomain "loan-ledger/internal/domain/post"
)

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

func (r *PostRepository) Create(ctx context.Context, p *postDomain.Post) error {
	return mapErr(r.db.WithContext(ctx).Create(p).Error, postDomain.ErrNotFound)
}

func (r *PostRepository) GetByID(ctx context.Context, id uint64) (*postDomain.Post, error) {
	var out postDomain.Post
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, mapErr(err, postDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PostRepository) ListWithAuthors(ctx context.Context) ([]postDomain.WithAuthor, error) {
	var out []postDomain.WithAuthor
	err := r.db.WithContext(ctx).
		Table("post").
		Select("post.id, post.content, post.created_at, post.user_id, `user`.fullname AS author_name").
		Joins("JOIN `user` ON `user`.id = post.user_id").
		Order("post.created_at DESC, post.id DESC").
		Scan(&out).Error
	return out, mapErr(err, postDomain.ErrNotFound)
}

func (r *PostRepository) Save(ctx context.Context, p *postDomain.Post) error {
	return mapErr(r.db.WithContext(ctx).Save(p).Error, postDomain.ErrNotFound)
}

func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&postDomain.Post{}, id)
	if res.Error != nil {
		return mapErr(res.Error, postDomain.ErrNotFound)
	}
	if res.RowsAffected == 0 {
		return postDomain.ErrNotFound
	}
	return nil
}
