package approval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"loan-ledger/internal/domain/access"
	domainApproval "loan-ledger/internal/domain/approval"
	"loan-ledger/internal/domain/errs"
	domainLoan "loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/uow"
	domainUser "loan-ledger/internal/domain/user"
	loanUC "loan-ledger/internal/usecase/loan"
	paymentUC "loan-ledger/internal/usecase/payment"
	userUC "loan-ledger/internal/usecase/user"
	"loan-ledger/pkg/id"
)

const DefaultHistoryLimit = 100

var (
	ErrSelfDeny       = errs.NewPermission("admins cannot deny their own account")
	ErrUnknownSubject = errs.NewValidation("subject must be one of user, loan, payment")
)

// Usecase drives every admin transition. Each one runs in a single
// transaction together with its decision-log entry.
type Usecase struct {
	approvals domainApproval.Repository
	uow       uow.UnitOfWork
	log       *zap.Logger
	now       func() time.Time
}

func NewUsecase(approvals domainApproval.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{approvals: approvals, uow: tx, log: log, now: time.Now}
}

func (u *Usecase) record(ctx context.Context, r uow.Repos, p access.Principal, subject domainApproval.Subject, subjectID uint64, d domainApproval.Decision, note string, at time.Time) error {
	return r.Approvals.Create(ctx, &domainApproval.Approval{
		ApprovalID: id.NewID32(),
		Subject:    subject,
		SubjectID:  subjectID,
		Decision:   d,
		AdminID:    p.UserID,
		Note:       note,
		DecidedAt:  at,
	})
}

func (u *Usecase) transition(p access.Principal, subject domainApproval.Subject, subjectID uint64, from, to string) {
	u.log.Info("admin transition",
		zap.Uint64("actor", p.UserID),
		zap.String("subject", string(subject)),
		zap.Uint64("subject_id", subjectID),
		zap.String("from", from),
		zap.String("to", to))
}

func (u *Usecase) ApproveUser(ctx context.Context, p access.Principal, in DecisionInput) (*userUC.UserDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	now := u.now().UTC()
	var out userUC.UserDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		if usr.IsApproved {
			return domainUser.ErrAlreadyApproved
		}
		approved := true
		patch := domainUser.Patch{IsApproved: &approved}
		if patch.Apply(usr) {
			if err := r.Users.Save(ctx, usr); err != nil {
				return err
			}
		}
		out = userUC.ToDTO(usr)
		return u.record(ctx, r, p, domainApproval.SubjectUser, usr.ID, domainApproval.DecisionApproved, in.Note, now)
	})
	if err != nil {
		return nil, err
	}
	u.transition(p, domainApproval.SubjectUser, in.ID, "unapproved", "approved")
	return &out, nil
}

// DenyUser deletes an account that is still waiting for approval.
func (u *Usecase) DenyUser(ctx context.Context, p access.Principal, in DecisionInput) error {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return err
	}
	if in.ID == p.UserID {
		return ErrSelfDeny
	}
	now := u.now().UTC()
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		if usr.IsApproved {
			return domainUser.ErrAlreadyApproved
		}
		if err := r.Users.Delete(ctx, usr.ID); err != nil {
			return err
		}
		return u.record(ctx, r, p, domainApproval.SubjectUser, usr.ID, domainApproval.DecisionDenied, in.Note, now)
	})
	if err != nil {
		return err
	}
	u.transition(p, domainApproval.SubjectUser, in.ID, "unapproved", "deleted")
	return nil
}

func (u *Usecase) decideLoan(ctx context.Context, p access.Principal, in DecisionInput, d domainApproval.Decision) (*loanUC.LoanDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	now := u.now().UTC()
	var (
		out  loanUC.LoanDTO
		from domainLoan.Status
	)
	err := u.uow.WithinLoanTx(ctx, in.ID, func(r uow.Repos, l *domainLoan.Loan) error {
		from = l.Status
		var err error
		if d == domainApproval.DecisionApproved {
			err = l.Approve(now)
		} else {
			err = l.Deny(now)
		}
		if err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = loanUC.ToDTO(l)
		return u.record(ctx, r, p, domainApproval.SubjectLoan, l.ID, d, in.Note, now)
	})
	if err != nil {
		return nil, err
	}
	u.transition(p, domainApproval.SubjectLoan, in.ID, string(from), out.Status)
	return &out, nil
}

// ApproveLoan moves a Pending loan to Approved. Re-approval is rejected.
func (u *Usecase) ApproveLoan(ctx context.Context, p access.Principal, in DecisionInput) (*loanUC.LoanDTO, error) {
	return u.decideLoan(ctx, p, in, domainApproval.DecisionApproved)
}

func (u *Usecase) DenyLoan(ctx context.Context, p access.Principal, in DecisionInput) (*loanUC.LoanDTO, error) {
	return u.decideLoan(ctx, p, in, domainApproval.DecisionDenied)
}

// ApprovePayment flips the payment to Approved and applies it to the loan
// balance in one transaction. The loan row is locked before the payment
// status is checked, so concurrent approvals serialize per loan and a
// payment is applied at most once.
func (u *Usecase) ApprovePayment(ctx context.Context, p access.Principal, in DecisionInput) (*PaymentApprovalDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	now := u.now().UTC()
	var (
		out  PaymentApprovalDTO
		from domainLoan.Status
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		pay, err := r.Payments.GetByID(ctx, in.ID)
		if err != nil {
			return err
		}
		l, err := r.Loans.GetByIDForUpdate(ctx, pay.LoanID)
		if err != nil {
			return err
		}
		from = l.Status
		if err := r.Payments.MarkApproved(ctx, pay.ID); err != nil {
			return err
		}
		if err := pay.Approve(); err != nil {
			return err
		}
		if err := l.ApplyPayment(pay.Amount, now); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = PaymentApprovalDTO{Payment: paymentUC.ToDTO(pay), Loan: loanUC.ToDTO(l)}
		return u.record(ctx, r, p, domainApproval.SubjectPayment, pay.ID, domainApproval.DecisionApproved, in.Note, now)
	})
	if err != nil {
		if kind, _ := errs.KindOf(err); kind == errs.KindPersistence {
			u.log.Error("approve payment", zap.Uint64("payment_id", in.ID), zap.Error(err))
		}
		return nil, err
	}
	u.transition(p, domainApproval.SubjectPayment, in.ID, "Pending", "Approved")
	if out.Loan.Status != string(from) {
		u.transition(p, domainApproval.SubjectLoan, out.Loan.ID, string(from), out.Loan.Status)
	}
	return &out, nil
}

// History lists the decision log newest first. limit <= 0 uses DefaultHistoryLimit.
func (u *Usecase) History(ctx context.Context, p access.Principal, limit int) ([]DecisionDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := u.approvals.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toDecisionDTOs(rows), nil
}

// HistoryFor lists every decision taken on one user, loan or payment.
func (u *Usecase) HistoryFor(ctx context.Context, p access.Principal, subject domainApproval.Subject, subjectID uint64) ([]DecisionDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	if !subject.Valid() {
		return nil, ErrUnknownSubject
	}
	rows, err := u.approvals.ListBySubject(ctx, subject, subjectID)
	if err != nil {
		return nil, err
	}
	return toDecisionDTOs(rows), nil
}

func toDecisionDTOs(rows []domainApproval.Approval) []DecisionDTO {
	out := make([]DecisionDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, DecisionDTO{
			ApprovalID: a.ApprovalID,
			Subject:    string(a.Subject),
			SubjectID:  a.SubjectID,
			Decision:   string(a.Decision),
			AdminID:    a.AdminID,
			Note:       a.Note,
			DecidedAt:  a.DecidedAt,
		})
	}
	return out
}
