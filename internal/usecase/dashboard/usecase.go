// Package dashboard assembles the read models shown on a user's landing page.
package dashboard

import (
	"context"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/payment"
	"loan-ledger/internal/domain/post"
	"loan-ledger/internal/domain/user"
	loanUC "loan-ledger/internal/usecase/loan"
	paymentUC "loan-ledger/internal/usecase/payment"
	userUC "loan-ledger/internal/usecase/user"
)

type BorrowerView struct {
	Loans    []loanUC.LoanDTO       `json:"loans"`
	Payments []paymentUC.PaymentDTO `json:"payments"`
	Posts    []post.WithAuthor      `json:"posts"`
}

type AdminView struct {
	Users           []userUC.UserDTO       `json:"users"`
	PendingLoans    []loanUC.LoanDTO       `json:"pending_loans"`
	PendingPayments []paymentUC.PaymentDTO `json:"pending_payments"`
	Posts           []post.WithAuthor      `json:"posts"`
}

type Usecase struct {
	users    user.Repository
	loans    loan.Repository
	payments payment.Repository
	posts    post.Repository
}

func NewUsecase(users user.Repository, loans loan.Repository, payments payment.Repository, posts post.Repository) *Usecase {
	return &Usecase{users: users, loans: loans, payments: payments, posts: posts}
}

func (u *Usecase) Borrower(ctx context.Context, p access.Principal) (*BorrowerView, error) {
	if err := access.RequireAuthenticated(p).Err(); err != nil {
		return nil, err
	}
	loans, err := u.loans.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	pays, err := u.payments.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	posts, err := u.posts.ListWithAuthors(ctx)
	if err != nil {
		return nil, err
	}
	return &BorrowerView{
		Loans:    loanUC.ToDTOs(loans),
		Payments: paymentUC.ToDTOs(pays),
		Posts:    nonNil(posts),
	}, nil
}

func (u *Usecase) Admin(ctx context.Context, p access.Principal) (*AdminView, error) {
	if err := access.RequireAdmin(p).Err(); err != nil {
		return nil, err
	}
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := u.loans.ListByStatus(ctx, loan.StatusPending)
	if err != nil {
		return nil, err
	}
	pays, err := u.payments.ListByStatus(ctx, payment.StatusPending)
	if err != nil {
		return nil, err
	}
	posts, err := u.posts.ListWithAuthors(ctx)
	if err != nil {
		return nil, err
	}
	view := &AdminView{
		Users:           make([]userUC.UserDTO, 0, len(users)),
		PendingLoans:    loanUC.ToDTOs(loans),
		PendingPayments: paymentUC.ToDTOs(pays),
		Posts:           nonNil(posts),
	}
	for i := range users {
		view.Users = append(view.Users, userUC.ToDTO(&users[i]))
	}
	return view, nil
}

// For picks the view matching the caller's role.
func (u *Usecase) For(ctx context.Context, p access.Principal) (any, error) {
	if p.IsAdmin() {
		return u.Admin(ctx, p)
	}
	return u.Borrower(ctx, p)
}

func nonNil(in []post.WithAuthor) []post.WithAuthor {
	if in == nil {
		return []post.WithAuthor{}
	}
	return in
}
