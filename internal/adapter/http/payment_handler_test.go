package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	domainLoan "loan-ledger/internal/domain/loan"
	domainPayment "loan-ledger/internal/domain/payment"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/internal/testutil/loanmock"
	"loan-ledger/internal/testutil/paymentmock"
	"loan-ledger/internal/testutil/uowmock"
	paymentUC "loan-ledger/internal/usecase/payment"
)

func newPaymentHandler(loanStatus domainLoan.Status, created *[]*domainPayment.Payment) *PaymentHandler {
	getLoan := func(_ context.Context, id uint64) (*domainLoan.Loan, error) {
		if id != 8 {
			return nil, domainLoan.ErrNotFound
		}
		return &domainLoan.Loan{ID: 8, UserID: testBorrower.UserID, Amount: decimal.NewFromInt(500),
			Balance: decimal.NewFromInt(500), TermMonths: 5, Status: loanStatus}, nil
	}
	loans := &loanmock.Repo{GetByIDFn: getLoan, GetByIDForUpdateFn: getLoan}
	payments := &paymentmock.Repo{
		CreateFn: func(_ context.Context, p *domainPayment.Payment) error {
			p.ID = uint64(len(*created) + 1)
			*created = append(*created, p)
			return nil
		},
		ListByStatusFn: func(_ context.Context, s domainPayment.Status) ([]domainPayment.Payment, error) {
			return []domainPayment.Payment{{ID: 2, LoanID: 8, Status: s, Method: domainPayment.MethodCash}}, nil
		},
		ListByLoanFn: func(_ context.Context, loanID uint64) ([]domainPayment.Payment, error) {
			return []domainPayment.Payment{{ID: 2, LoanID: loanID}, {ID: 3, LoanID: loanID}}, nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: loans, Payments: payments})
	return NewPaymentHandler(paymentUC.NewUsecase(payments, tx, nil))
}

func TestSubmitPayment(t *testing.T) {
	var created []*domainPayment.Payment
	h := newPaymentHandler(domainLoan.StatusApproved, &created)
	e := newEchoWithValidator()

	c, rec := newCtx(e, http.MethodPost, "/payments",
		`{"loan_id":8,"amount":"125.50","method":"Bank Transfer"}`, testBorrower)
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusCreated)

	var dto paymentUC.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Status != string(domainPayment.StatusPending) || dto.Method != "Bank Transfer" || !dto.Amount.Equal(decimal.RequireFromString("125.5")) {
		t.Fatalf("dto = %+v", dto)
	}
	if len(created) != 1 || created[0].UserID != testBorrower.UserID {
		t.Fatalf("created = %+v", created)
	}
}

func TestSubmitPayment_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		status domainLoan.Status
		body   string
		caller accessCase
		want   int
	}{
		{"unknown method", domainLoan.StatusApproved, `{"loan_id":8,"amount":"10","method":"Barter"}`, asBorrower, http.StatusUnprocessableEntity},
		{"missing loan id", domainLoan.StatusApproved, `{"amount":"10","method":"Cash"}`, asBorrower, http.StatusUnprocessableEntity},
		{"exceeds balance", domainLoan.StatusApproved, `{"loan_id":8,"amount":"500.01","method":"Cash"}`, asBorrower, http.StatusUnprocessableEntity},
		{"loan pending", domainLoan.StatusPending, `{"loan_id":8,"amount":"10","method":"Cash"}`, asBorrower, http.StatusConflict},
		{"loan completed", domainLoan.StatusCompleted, `{"loan_id":8,"amount":"10","method":"Cash"}`, asBorrower, http.StatusConflict},
		{"not owner", domainLoan.StatusApproved, `{"loan_id":8,"amount":"10","method":"Cash"}`, asStranger, http.StatusForbidden},
		{"unknown loan", domainLoan.StatusApproved, `{"loan_id":9,"amount":"10","method":"Cash"}`, asBorrower, http.StatusNotFound},
		{"admin", domainLoan.StatusApproved, `{"loan_id":8,"amount":"10","method":"Cash"}`, asAdmin, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created []*domainPayment.Payment
			h := newPaymentHandler(tt.status, &created)
			c, rec := newCtx(newEchoWithValidator(), http.MethodPost, "/payments", tt.body, tt.caller.principal())
			_ = h.Submit(c)
			expectStatus(t, rec, tt.want)
			if len(created) != 0 {
				t.Fatalf("payment created on rejection")
			}
		})
	}
}

func TestListPendingPayments(t *testing.T) {
	var created []*domainPayment.Payment
	h := newPaymentHandler(domainLoan.StatusApproved, &created)

	c, rec := newCtx(echoNoValidator(), http.MethodGet, "/admin/payments/pending", nil, testAdmin)
	_ = h.ListPending(c)
	expectStatus(t, rec, http.StatusOK)
	var out []paymentUC.PaymentDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || len(out) != 1 || out[0].Status != "Pending" {
		t.Fatalf("pending = %s (%v)", rec.Body.String(), err)
	}

	c, rec = newCtx(echoNoValidator(), http.MethodGet, "/payments", nil, testBorrower)
	_ = h.ListMine(c)
	expectStatus(t, rec, http.StatusOK)
}

func TestListPaymentsForLoan(t *testing.T) {
	var created []*domainPayment.Payment
	h := newPaymentHandler(domainLoan.StatusApproved, &created)

	tests := []struct {
		name   string
		caller accessCase
		id     string
		want   int
	}{
		{"owner", asBorrower, "8", http.StatusOK},
		{"admin", asAdmin, "8", http.StatusOK},
		{"stranger", asStranger, "8", http.StatusForbidden},
		{"missing loan", asBorrower, "9", http.StatusNotFound},
		{"bad id", asBorrower, "eight", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newCtx(echoNoValidator(), http.MethodGet, "/loans/"+tt.id+"/payments", nil, tt.caller.principal(), "id", tt.id)
			_ = h.ListForLoan(c)
			expectStatus(t, rec, tt.want)
		})
	}
}
