package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-ledger/internal/domain/loan"
)

type ApplyInput struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermMonths   int
}

type LoanDTO struct {
	ID              uint64          `json:"id"`
	UserID          uint64          `json:"user_id"`
	Amount          loan.Money      `json:"amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	TermMonths      int             `json:"term_months"`
	Balance         loan.Money      `json:"balance"`
	Status          string          `json:"status"`
	MonthlyPayment  loan.Money      `json:"monthly_payment"`
	ApplicationDate time.Time       `json:"application_date"`
}

func ToDTO(l *loan.Loan) LoanDTO {
	return LoanDTO{
		ID:              l.ID,
		UserID:          l.UserID,
		Amount:          loan.NewMoney(l.Amount),
		InterestRate:    l.InterestRate,
		TermMonths:      l.TermMonths,
		Balance:         loan.NewMoney(l.Balance),
		Status:          string(l.Status),
		MonthlyPayment:  loan.NewMoney(loan.MonthlyPayment(l.Amount, l.InterestRate, l.TermMonths)),
		ApplicationDate: l.ApplicationDate,
	}
}

func ToDTOs(in []loan.Loan) []LoanDTO {
	out := make([]LoanDTO, 0, len(in))
	for i := range in {
		out = append(out, ToDTO(&in[i]))
	}
	return out
}
