package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/adapter/middleware"
	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/uow"
	"loan-ledger/internal/testutil/approvalmock"
	"loan-ledger/internal/testutil/loanmock"
	"loan-ledger/internal/testutil/paymentmock"
	"loan-ledger/internal/testutil/postmock"
	"loan-ledger/internal/testutil/uowmock"
	"loan-ledger/internal/testutil/usermock"
	approvalUC "loan-ledger/internal/usecase/approval"
	"loan-ledger/internal/usecase/dashboard"
	loanUC "loan-ledger/internal/usecase/loan"
	paymentUC "loan-ledger/internal/usecase/payment"
	postUC "loan-ledger/internal/usecase/post"
	userUC "loan-ledger/internal/usecase/user"
)

type stubParser map[string]access.Principal

func (s stubParser) Parse(token string) (access.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return access.Principal{}, errors.New("unknown token")
}

func newRouter(idem echo.MiddlewareFunc) *echo.Echo {
	users, loans, payments := &usermock.Repo{}, &loanmock.Repo{}, &paymentmock.Repo{}
	posts, approvals := &postmock.Repo{}, &approvalmock.Repo{}
	tx := uowmock.Passthrough(uow.Repos{Users: users, Loans: loans, Payments: payments, Approvals: approvals, Posts: posts})
	userSvc := userUC.NewUsecase(users, fakeHasher{}, fakeTokens{}, nil)

	e := newEchoWithValidator()
	e.Use(middleware.Session(stubParser{"b": testBorrower, "a": testAdmin}))
	RegisterRoutes(e, Handlers{
		Root:      NewHandler(dashboard.NewUsecase(users, loans, payments, posts)),
		Auth:      NewAuthHandler(userSvc),
		Loans:     NewLoanHandler(loanUC.NewUsecase(loans, nil)),
		Payments:  NewPaymentHandler(paymentUC.NewUsecase(payments, tx, nil)),
		Posts:     NewPostHandler(postUC.NewUsecase(posts, nil)),
		Approvals: NewApprovalHandler(approvalUC.NewUsecase(approvals, tx, nil), userSvc),
	}, idem)
	return e
}

func serve(e *echo.Echo, method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRegisterRoutes_Table(t *testing.T) {
	want := []string{
		"DELETE /posts/:id",
		"GET /admin/approvals", "GET /admin/loans/pending", "GET /admin/payments/pending", "GET /admin/users",
		"GET /dashboard", "GET /health", "GET /loans", "GET /loans/:id", "GET /loans/:id/payments", "GET /loans/:id/schedule",
		"GET /me", "GET /payments", "GET /posts", "GET /users/:id",
		"PATCH /me", "PATCH /posts/:id",
		"POST /admin/loans/:id/approve", "POST /admin/loans/:id/deny", "POST /admin/payments/:id/approve",
		"POST /admin/users", "POST /admin/users/:id/approve", "POST /admin/users/:id/deny",
		"POST /auth/login", "POST /auth/register", "POST /loans", "POST /payments", "POST /posts",
	}
	var got []string
	for _, r := range newRouter(nil).Routes() {
		if r.Method == echo.RouteNotFound {
			continue
		}
		got = append(got, r.Method+" "+r.Path)
	}
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("routes = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("route %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegisterRoutes_Guards(t *testing.T) {
	e := newRouter(nil)
	tests := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/loans", "", http.StatusUnauthorized},
		{http.MethodGet, "/me", "bogus", http.StatusUnauthorized},
		{http.MethodGet, "/admin/users", "b", http.StatusForbidden},
		{http.MethodPost, "/loans", "a", http.StatusForbidden},
		{http.MethodPost, "/payments", "a", http.StatusForbidden},
		{http.MethodGet, "/loans", "b", http.StatusOK},
		{http.MethodGet, "/admin/approvals", "a", http.StatusOK},
	}
	for _, tt := range tests {
		if got := serve(e, tt.method, tt.path, tt.token); got != tt.want {
			t.Fatalf("%s %s (%q) = %d, want %d", tt.method, tt.path, tt.token, got, tt.want)
		}
	}
}

func TestRegisterRoutes_IdempotencyOnlyOnBorrowerPosts(t *testing.T) {
	hits := map[string]int{}
	idem := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hits[c.Request().Method+" "+c.Path()]++
			return c.NoContent(http.StatusTeapot)
		}
	}
	e := newRouter(idem)

	if got := serve(e, http.MethodPost, "/loans", "b"); got != http.StatusTeapot {
		t.Fatalf("POST /loans = %d", got)
	}
	if got := serve(e, http.MethodPost, "/payments", "b"); got != http.StatusTeapot {
		t.Fatalf("POST /payments = %d", got)
	}
	serve(e, http.MethodGet, "/loans", "b")
	serve(e, http.MethodPost, "/posts", "b")
	if len(hits) != 2 || hits["POST /loans"] != 1 || hits["POST /payments"] != 1 {
		t.Fatalf("idempotency hits = %v", hits)
	}
}
