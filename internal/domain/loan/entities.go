package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-ledger/internal/domain/errs"
	"loan-ledger/internal/domain/user"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusDenied    Status = "Denied"
	StatusCompleted Status = "Completed"
)

// MaxTermMonths bounds the amortization loop; 50 years.
const MaxTermMonths = 600

// MaxAmount is the largest value a decimal(18,2) column holds with all
// integer digits intact on every supported store.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

var (
	ErrNotFound             = errs.New(errs.KindNotFound, "loan not found")
	ErrAlreadyApproved      = errs.NewInvalidState("loan already approved")
	ErrNotPending           = errs.NewInvalidState("loan is not pending")
	ErrNotApproved          = errs.NewInvalidState("loan is not approved")
	ErrCompleted            = errs.NewInvalidState("loan is completed")
	ErrNotOwner             = errs.New(errs.KindPermission, "loan belongs to another user")
	ErrInvalidAmount        = errs.New(errs.KindValidation, "amount must be greater than zero, at most 9999999999999.99 and have at most 2 decimal places")
	ErrInvalidRate          = errs.New(errs.KindValidation, "interest rate must be zero or positive")
	ErrInvalidTerm          = errs.New(errs.KindValidation, "term must be between 1 and 600 months")
	ErrAmountExceedsBalance = errs.New(errs.KindValidation, "payment amount exceeds the loan balance")
)

// Table: loan
type Loan struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID          uint64          `gorm:"column:user_id;not null;index:idx_loan_user" json:"user_id"`
	Amount          decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	InterestRate    decimal.Decimal `gorm:"column:interest_rate;type:decimal(7,4);not null" json:"interest_rate"`
	TermMonths      int             `gorm:"column:term_months;not null" json:"term_months"`
	Balance         decimal.Decimal `gorm:"column:balance;type:decimal(18,2);not null" json:"balance"`
	Status          Status          `gorm:"column:status;size:50;not null;default:'Pending';index:idx_loan_status" json:"status"`
	ApplicationDate time.Time       `gorm:"column:application_date;not null" json:"application_date"`
	StatusUpdatedAt time.Time       `gorm:"column:status_updated_at" json:"status_updated_at"`

	User *user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Loan) TableName() string { return "loan" }
