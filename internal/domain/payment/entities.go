package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-ledger/internal/domain/errs"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/user"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
)

type Method string

const (
	MethodCash         Method = "Cash"
	MethodBankTransfer Method = "Bank Transfer"
	MethodGCash        Method = "GCash"
	MethodCard         Method = "Card"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodGCash, MethodCard:
		return true
	}
	return false
}

var (
	ErrNotFound        = errs.New(errs.KindNotFound, "payment not found")
	ErrAlreadyApproved = errs.NewInvalidState("payment already approved")
	ErrInvalidMethod   = errs.New(errs.KindValidation, "unsupported payment method")
)

// Table: payment
type Payment struct {
	ID          uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LoanID      uint64          `gorm:"column:loan_id;not null;index:idx_payment_loan" json:"loan_id"`
	UserID      uint64          `gorm:"column:user_id;not null;index:idx_payment_user" json:"user_id"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Method      Method          `gorm:"column:method;size:50;not null" json:"method"`
	Status      Status          `gorm:"column:status;size:50;not null;default:'Pending';index:idx_payment_status" json:"status"`
	PaymentDate time.Time       `gorm:"column:payment_date;not null" json:"payment_date"`

	Loan *loan.Loan `gorm:"foreignKey:LoanID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	User *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Payment) TableName() string { return "payment" }

// New records a borrower payment awaiting admin approval. Loan-side checks
// (ownership, status, balance) belong to loan.CanAcceptPayment.
func New(userID, loanID uint64, amount decimal.Decimal, method Method, now time.Time) (*Payment, error) {
	if !method.Valid() {
		return nil, ErrInvalidMethod
	}
	return &Payment{
		LoanID:      loanID,
		UserID:      userID,
		Amount:      amount,
		Method:      method,
		Status:      StatusPending,
		PaymentDate: now.UTC(),
	}, nil
}

func (p *Payment) Approve() error {
	if p.Status != StatusPending {
		return ErrAlreadyApproved
	}
	p.Status = StatusApproved
	return nil
}
