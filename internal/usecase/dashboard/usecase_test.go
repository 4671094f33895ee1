package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/errs"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/payment"
	"loan-ledger/internal/domain/post"
	"loan-ledger/internal/domain/user"
	"loan-ledger/internal/testutil/loanmock"
	"loan-ledger/internal/testutil/paymentmock"
	"loan-ledger/internal/testutil/postmock"
	"loan-ledger/internal/testutil/usermock"
)

func newUC() *Usecase {
	return NewUsecase(
		&usermock.Repo{ListFn: func(context.Context) ([]user.User, error) {
			return []user.User{{ID: 2, Role: user.RoleBorrower}, {ID: 1, Role: user.RoleAdmin, IsApproved: true}}, nil
		}},
		&loanmock.Repo{
			ListByUserFn: func(_ context.Context, id uint64) ([]loan.Loan, error) {
				return []loan.Loan{{ID: 5, UserID: id, Amount: decimal.NewFromInt(1200), InterestRate: decimal.Zero, TermMonths: 12, Status: loan.StatusApproved}}, nil
			},
			ListByStatusFn: func(context.Context, loan.Status) ([]loan.Loan, error) {
				return []loan.Loan{{ID: 6, Status: loan.StatusPending}}, nil
			},
		},
		&paymentmock.Repo{
			ListByUserFn: func(context.Context, uint64) ([]payment.Payment, error) { return nil, nil },
			ListByStatusFn: func(context.Context, payment.Status) ([]payment.Payment, error) {
				return []payment.Payment{{ID: 9, Status: payment.StatusPending}}, nil
			},
		},
		&postmock.Repo{},
	)
}

func TestFor_PicksViewByRole(t *testing.T) {
	ctx := context.Background()

	b, err := newUC().For(ctx, access.Principal{UserID: 2, Role: user.RoleBorrower, IsApproved: true})
	if err != nil {
		t.Fatalf("borrower view: %v", err)
	}
	bv, ok := b.(*BorrowerView)
	if !ok {
		t.Fatalf("borrower got %T", b)
	}
	if len(bv.Loans) != 1 || !bv.Loans[0].MonthlyPayment.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("loan schedule missing: %+v", bv.Loans)
	}
	if bv.Posts == nil || bv.Payments == nil {
		t.Fatalf("empty lists must encode as []: %+v", bv)
	}

	a, err := newUC().For(ctx, access.Principal{UserID: 1, Role: user.RoleAdmin, IsApproved: true})
	if err != nil {
		t.Fatalf("admin view: %v", err)
	}
	av := a.(*AdminView)
	if len(av.Users) != 2 || len(av.PendingLoans) != 1 || len(av.PendingPayments) != 1 {
		t.Fatalf("unexpected admin view: %+v", av)
	}
}

func TestAdmin_RejectsBorrower(t *testing.T) {
	_, err := newUC().Admin(context.Background(), access.Principal{UserID: 2, Role: user.RoleBorrower, IsApproved: true})
	if !errors.Is(err, errs.Permission) {
		t.Fatalf("want permission, got %v", err)
	}
}

func TestBorrower_PropagatesStoreErrors(t *testing.T) {
	uc := newUC()
	uc.posts = &postmock.Repo{ListWithAuthorsFn: func(context.Context) ([]post.WithAuthor, error) {
		return nil, post.ErrNotFound
	}}
	_, err := uc.Borrower(context.Background(), access.Principal{UserID: 2, Role: user.RoleBorrower, IsApproved: true})
	if !errors.Is(err, post.ErrNotFound) {
		t.Fatalf("want store error, got %v", err)
	}
}
