package payment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/payment"
	"loan-ledger/internal/domain/uow"
)

type Usecase struct {
	repo payment.Repository
	uow  uow.UnitOfWork
	log  *zap.Logger
	now  func() time.Time
}

func NewUsecase(r payment.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, uow: tx, log: log, now: time.Now}
}

// Submit records a Pending payment against one of the caller's approved
// loans. The balance only moves once an admin approves the payment.
func (u *Usecase) Submit(ctx context.Context, p access.Principal, in SubmitInput) (*PaymentDTO, error) {
	if err := access.RequireBorrower(p).Err(); err != nil {
		return nil, err
	}
	if !in.Method.Valid() {
		return nil, payment.ErrInvalidMethod
	}

	var created *payment.Payment
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if err := l.CanAcceptPayment(p.UserID, in.Amount); err != nil {
			return err
		}
		pay, err := payment.New(p.UserID, l.ID, in.Amount, in.Method, u.now())
		if err != nil {
			return err
		}
		if err := r.Payments.Create(ctx, pay); err != nil {
			return err
		}
		created = pay
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("payment submitted",
		zap.Uint64("payment_id", created.ID),
		zap.Uint64("loan_id", created.LoanID),
		zap.String("amount", created.Amount.StringFixed(2)))
	dto := ToDTO(created)
	return &dto, nil
}

func (u *Usecase) ListMine(ctx context.Context, p access.Principal) ([]PaymentDTO, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	out, err := u.repo.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return ToDTOs(out), nil
}

func (u *Usecase) ListPending(ctx context.Context, p access.Principal) ([]PaymentDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	out, err := u.repo.ListByStatus(ctx, payment.StatusPending)
	if err != nil {
		return nil, err
	}
	return ToDTOs(out), nil
}

// ListForLoan returns every payment on a loan to its owner or an admin.
func (u *Usecase) ListForLoan(ctx context.Context, p access.Principal, loanID uint64) ([]PaymentDTO, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	var out []payment.Payment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByID(ctx, loanID)
		if err != nil {
			return err
		}
		if err := access.RequireOwnerOrAdmin(p, l.UserID).Err(); err != nil {
			return err
		}
		out, err = r.Payments.ListByLoan(ctx, loanID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToDTOs(out), nil
}
