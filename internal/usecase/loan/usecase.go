package loan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/loan"
)

type Usecase struct {
	repo loan.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewUsecase(r loan.Repository, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{repo: r, log: log, now: time.Now}
}

// Apply files a new Pending loan for the calling borrower.
func (u *Usecase) Apply(ctx context.Context, p access.Principal, in ApplyInput) (*LoanDTO, error) {
	if err := access.RequireBorrower(p).Err(); err != nil {
		return nil, err
	}
	l, err := loan.New(p.UserID, in.Amount, in.InterestRate, in.TermMonths, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, l); err != nil {
		u.log.Error("create loan", zap.Uint64("user_id", p.UserID), zap.Error(err))
		return nil, err
	}
	u.log.Info("loan applied",
		zap.Uint64("loan_id", l.ID),
		zap.Uint64("user_id", p.UserID),
		zap.String("amount", l.Amount.StringFixed(2)))
	dto := ToDTO(l)
	return &dto, nil
}

func (u *Usecase) load(ctx context.Context, p access.Principal, id uint64) (*loan.Loan, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	l, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.RequireOwnerOrAdmin(p, l.UserID).Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// Get returns a loan to its owner or to an admin.
func (u *Usecase) Get(ctx context.Context, p access.Principal, id uint64) (*LoanDTO, error) {
	l, err := u.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(l)
	return &dto, nil
}

func (u *Usecase) Schedule(ctx context.Context, p access.Principal, id uint64) (*loan.Schedule, error) {
	l, err := u.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	s := l.Schedule()
	return &s, nil
}

func (u *Usecase) ListMine(ctx context.Context, p access.Principal) ([]LoanDTO, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	loans, err := u.repo.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return ToDTOs(loans), nil
}

func (u *Usecase) ListPending(ctx context.Context, p access.Principal) ([]LoanDTO, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	loans, err := u.repo.ListByStatus(ctx, loan.StatusPending)
	if err != nil {
		return nil, err
	}
	return ToDTOs(loans), nil
}
