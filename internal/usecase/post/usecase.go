package post

import (
	"context"
	"time"

	"go.uber.org/zap"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/post"
)

// Usecase runs the community board shared by every approved account.
type Usecase struct {
	repo post.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewUsecase(r post.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log, now: time.Now}
}

func (u *Usecase) Create(ctx context.Context, p access.Principal, content string) (*post.Post, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	c, err := post.NormalizeContent(content)
	if err != nil {
		return nil, err
	}
	np := &post.Post{Content: c, CreatedAt: u.now().UTC(), UserID: p.UserID}
	if err := u.repo.Create(ctx, np); err != nil {
		return nil, err
	}
	u.log.Debug("post created", zap.Uint64("post_id", np.ID), zap.Uint64("user_id", p.UserID))
	return np, nil
}

func (u *Usecase) List(ctx context.Context, p access.Principal) ([]post.WithAuthor, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	return u.repo.ListWithAuthors(ctx)
}

// Update edits the content of the caller's own post.
func (u *Usecase) Update(ctx context.Context, p access.Principal, id uint64, content string) (*post.Post, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	c, err := post.NormalizeContent(content)
	if err != nil {
		return nil, err
	}
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwner(p, existing.UserID).Err(); err != nil {
		return nil, err
	}
	existing.Content = c
	if err := u.repo.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a post; authors and admins may delete.
func (u *Usecase) Delete(ctx context.Context, p access.Principal, id uint64) error {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return err
	}
	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.RequireOwnerOrAdmin(p, existing.UserID).Err(); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.log.Info("post deleted", zap.Uint64("post_id", id), zap.Uint64("actor", p.UserID))
	return nil
}
