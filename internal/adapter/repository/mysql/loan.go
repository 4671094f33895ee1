package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "loan-ledger/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return mapErr(r.db.WithContext(ctx).Create(l).Error, loanDomain.ErrNotFound)
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return mapErr(r.db.WithContext(ctx).Save(l).Error, loanDomain.ErrNotFound)
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, mapErr(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

// GetByIDForUpdate issues SELECT ... FOR UPDATE on MySQL. The sqlite dialect
// drops the locking clause; there the immediate transaction lock serializes
// writers instead.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out, id).Error
	if err != nil {
		return nil, mapErr(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID uint64) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("application_date DESC, id DESC").
		Find(&out).Error
	return out, mapErr(err, loanDomain.ErrNotFound)
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("application_date ASC, id ASC").
		Find(&out).Error
	return out, mapErr(err, loanDomain.ErrNotFound)
}
