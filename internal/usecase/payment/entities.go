package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/payment"
)

type SubmitInput struct {
	LoanID uint64
	Amount decimal.Decimal
	Method payment.Method
}

type PaymentDTO struct {
	ID          uint64     `json:"id"`
	LoanID      uint64     `json:"loan_id"`
	UserID      uint64     `json:"user_id"`
	Amount      loan.Money `json:"amount"`
	Method      string     `json:"method"`
	Status      string     `json:"status"`
	PaymentDate time.Time  `json:"payment_date"`
}

func ToDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          p.ID,
		LoanID:      p.LoanID,
		UserID:      p.UserID,
		Amount:      loan.NewMoney(p.Amount),
		Method:      string(p.Method),
		Status:      string(p.Status),
		PaymentDate: p.PaymentDate,
	}
}

func ToDTOs(in []payment.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(in))
	for i := range in {
		out = append(out, ToDTO(&in[i]))
	}
	return out
}
