package mysql

import (
	"context"

	"gorm.io/gorm"

	paymentDomain "loan-ledger/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return mapErr(r.db.WithContext(ctx).Create(p).Error, paymentDomain.ErrNotFound)
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint64) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, mapErr(err, paymentDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("payment_date DESC, id DESC").
		Find(&out).Error
	return out, mapErr(err, paymentDomain.ErrNotFound)
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("payment_date DESC, id DESC").
		Find(&out).Error
	return out, mapErr(err, paymentDomain.ErrNotFound)
}

func (r *PaymentRepository) ListByStatus(ctx context.Context, status paymentDomain.Status) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("payment_date ASC, id ASC").
		Find(&out).Error
	return out, mapErr(err, paymentDomain.ErrNotFound)
}

func (r *PaymentRepository) MarkApproved(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("id = ? AND status = ?", id, paymentDomain.StatusPending).
		Update("status", paymentDomain.StatusApproved)
	if res.Error != nil {
		return mapErr(res.Error, paymentDomain.ErrNotFound)
	}
	if res.RowsAffected == 1 {
		return nil
	}
	// nothing pending matched: tell a missing row from an approved one
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return paymentDomain.ErrAlreadyApproved
}
