package approval

import (
	"time"

	loanUC "loan-ledger/internal/usecase/loan"
	paymentUC "loan-ledger/internal/usecase/payment"
)

// DecisionInput names the subject an admin acts on. Note is optional and
// lands in the decision log.
type DecisionInput struct {
	ID   uint64
	Note string
}

type PaymentApprovalDTO struct {
	Payment paymentUC.PaymentDTO `json:"payment"`
	Loan    loanUC.LoanDTO       `json:"loan"`
}

type DecisionDTO struct {
	ApprovalID string    `json:"approval_id"`
	Subject    string    `json:"subject"`
	SubjectID  uint64    `json:"subject_id"`
	Decision   string    `json:"decision"`
	AdminID    uint64    `json:"admin_id"`
	Note       string    `json:"note,omitempty"`
	DecidedAt  time.Time `json:"decided_at"`
}
