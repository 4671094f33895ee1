package mysql

import (
	"context"

	"gorm.io/gorm"

	approvalDomain "loan-ledger/internal/domain/approval"
	"loan-ledger/internal/domain/errs"
)

var errApprovalNotFound = errs.New(errs.KindNotFound, "approval not found")

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Approval) error {
	return mapErr(r.db.WithContext(ctx).Create(a).Error, errApprovalNotFound)
}

func (r *ApprovalRepository) List(ctx context.Context, limit int) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	q := r.db.WithContext(ctx).Order("decided_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, mapErr(err, errApprovalNotFound)
}

func (r *ApprovalRepository) ListBySubject(ctx context.Context, subject approvalDomain.Subject, subjectID uint64) ([]approvalDomain.Approval, error) {
	var out []approvalDomain.Approval
	err := r.db.WithContext(ctx).
		Where("subject = ? AND subject_id = ?", subject, subjectID).
		Order("decided_at DESC, id DESC").
		Find(&out).Error
	return out, mapErr(err, errApprovalNotFound)
}
