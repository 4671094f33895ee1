package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

func validAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.LessThanOrEqual(MaxAmount) && d.Equal(d.Round(2))
}

// New opens a pending loan application. The balance starts at the principal.
func New(userID uint64, amount, rate decimal.Decimal, termMonths int, now time.Time) (*Loan, error) {
	if !validAmount(amount) {
		return nil, ErrInvalidAmount
	}
	if rate.IsNegative() {
		return nil, ErrInvalidRate
	}
	if termMonths <= 0 || termMonths > MaxTermMonths {
		return nil, ErrInvalidTerm
	}
	return &Loan{
		UserID:          userID,
		Amount:          amount,
		InterestRate:    rate,
		TermMonths:      termMonths,
		Balance:         amount,
		Status:          StatusPending,
		ApplicationDate: now.UTC(),
		StatusUpdatedAt: now.UTC(),
	}, nil
}

func (l *Loan) Approve(now time.Time) error {
	switch l.Status {
	case StatusPending:
	case StatusApproved:
		return ErrAlreadyApproved
	default:
		return ErrNotPending
	}
	l.Status = StatusApproved
	if l.Balance.IsZero() {
		l.Balance = l.Amount
	}
	l.StatusUpdatedAt = now.UTC()
	return nil
}

func (l *Loan) Deny(now time.Time) error {
	if l.Status != StatusPending {
		return ErrNotPending
	}
	l.Status = StatusDenied
	l.StatusUpdatedAt = now.UTC()
	return nil
}

// CanAcceptPayment checks a borrower's payment against the loan as it
// stands now. The balance may still move before an admin approves it.
func (l *Loan) CanAcceptPayment(userID uint64, amount decimal.Decimal) error {
	if l.UserID != userID {
		return ErrNotOwner
	}
	switch l.Status {
	case StatusApproved:
	case StatusCompleted:
		return ErrCompleted
	default:
		return ErrNotApproved
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(l.Balance) {
		return ErrAmountExceedsBalance
	}
	return nil
}

// ApplyPayment decrements the balance by an approved payment. A balance that
// reaches zero (or would go below it) is clamped and the loan completes.
func (l *Loan) ApplyPayment(amount decimal.Decimal, now time.Time) error {
	switch l.Status {
	case StatusApproved:
	case StatusCompleted:
		return ErrCompleted
	default:
		return ErrNotApproved
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	l.Balance = l.Balance.Sub(amount)
	if !l.Balance.IsPositive() {
		l.Balance = decimal.Zero
		l.Status = StatusCompleted
		l.StatusUpdatedAt = now.UTC()
	}
	return nil
}
