package post

import (
	"strings"
	"time"

	"loan-ledger/internal/domain/errs"
	"loan-ledger/internal/domain/user"
)

const MaxContentLen = 5000

var (
	ErrNotFound     = errs.New(errs.KindNotFound, "post not found")
	ErrEmptyContent = errs.New(errs.KindValidation, "content is required")
	ErrTooLong      = errs.New(errs.KindValidation, "content is too long")
)

// Table: post
type Post struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_post_created" json:"created_at"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_post_user" json:"user_id"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string { return "post" }

// NormalizeContent trims content and enforces the length bounds.
func NormalizeContent(content string) (string, error) {
	c := strings.TrimSpace(content)
	if c == "" {
		return "", ErrEmptyContent
	}
	if len(c) > MaxContentLen {
		return "", ErrTooLong
	}
	return c, nil
}

// WithAuthor is the read model shown on dashboards.
type WithAuthor struct {
	ID         uint64    `gorm:"column:id" json:"id"`
	Content    string    `gorm:"column:content" json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UserID     uint64    `gorm:"column:user_id" json:"user_id"`
	AuthorName string    `gorm:"column:author_name" json:"author_name"`
}
