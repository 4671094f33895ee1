package loan

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// internal precision for the compounding factor
const factorPlaces = 24

// MonthlyPayment is the fixed installment of a fully amortized loan, rounded
// to cents. annualRate is a percentage (12 means 12%).
//
//	r = annualRate/100/12
//	payment = P*r*(1+r)^n / ((1+r)^n - 1)   when r > 0
//	payment = P/n                           when r == 0
//	payment = P                             when n == 0
func MonthlyPayment(principal, annualRate decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return principal.Round(2)
	}
	r := annualRate.DivRound(hundred, factorPlaces).DivRound(twelve, factorPlaces)
	if !r.IsPositive() {
		return principal.DivRound(decimal.NewFromInt(int64(n)), 2)
	}
	factor := decimal.NewFromInt(1)
	base := decimal.NewFromInt(1).Add(r)
	for i := 0; i < n; i++ {
		factor = factor.Mul(base).Round(factorPlaces)
	}
	num := principal.Mul(r).Mul(factor)
	return num.DivRound(factor.Sub(decimal.NewFromInt(1)), factorPlaces).Round(2)
}

// Schedule summarizes the repayment plan for display.
type Schedule struct {
	MonthlyPayment Money `json:"monthly_payment"`
	TotalPayment   Money `json:"total_payment"`
	TotalInterest  Money `json:"total_interest"`
	TermMonths     int   `json:"term_months"`
}

func (l *Loan) Schedule() Schedule {
	m := MonthlyPayment(l.Amount, l.InterestRate, l.TermMonths)
	total := m
	if l.TermMonths > 0 {
		total = m.Mul(decimal.NewFromInt(int64(l.TermMonths)))
	}
	return Schedule{
		MonthlyPayment: NewMoney(m),
		TotalPayment:   NewMoney(total),
		TotalInterest:  NewMoney(total.Sub(l.Amount)),
		TermMonths:     l.TermMonths,
	}
}
