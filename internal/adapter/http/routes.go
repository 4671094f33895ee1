package http

import (
	"github.com/labstack/echo/v4"

	"loan-ledger/internal/adapter/middleware"
	"loan-ledger/internal/domain/access"
)

// Handlers bundles every HTTP handler the router dispatches to.
type Handlers struct {
	Root      *Handler
	Auth      *AuthHandler
	Loans     *LoanHandler
	Payments  *PaymentHandler
	Posts     *PostHandler
	Approvals *ApprovalHandler
}

// RegisterRoutes mounts the API on e. Session must already be installed.
// idempotency guards borrower POSTs when non-nil.
func RegisterRoutes(e *echo.Echo, h Handlers, idempotency echo.MiddlewareFunc) {
	authed := middleware.Require(access.RequireAuthenticated)
	borrower := []echo.MiddlewareFunc{middleware.Require(access.RequireBorrower)}
	if idempotency != nil {
		borrower = append(borrower, idempotency)
	}

	e.GET("/health", h.Root.Health)

	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)

	e.GET("/me", h.Auth.Me, authed)
	e.PATCH("/me", h.Auth.UpdateMe, authed)
	e.GET("/users/:id", h.Auth.GetUser, authed)
	e.GET("/dashboard", h.Root.Dashboard, authed)

	loans := e.Group("/loans", authed)
	loans.POST("", h.Loans.Apply, borrower...)
	loans.GET("", h.Loans.ListMine)
	loans.GET("/:id", h.Loans.Get)
	loans.GET("/:id/schedule", h.Loans.Schedule)
	loans.GET("/:id/payments", h.Payments.ListForLoan)

	payments := e.Group("/payments", authed)
	payments.POST("", h.Payments.Submit, borrower...)
	payments.GET("", h.Payments.ListMine)

	posts := e.Group("/posts", authed)
	posts.GET("", h.Posts.List)
	posts.POST("", h.Posts.Create)
	posts.PATCH("/:id", h.Posts.Update)
	posts.DELETE("/:id", h.Posts.Delete)

	admin := e.Group("/admin", middleware.Require(access.RequireAdmin))
	admin.GET("/users", h.Approvals.ListUsers)
	admin.POST("/users", h.Approvals.CreateAdmin)
	admin.POST("/users/:id/approve", h.Approvals.ApproveUser)
	admin.POST("/users/:id/deny", h.Approvals.DenyUser)
	admin.GET("/loans/pending", h.Loans.ListPending)
	admin.POST("/loans/:id/approve", h.Approvals.ApproveLoan)
	admin.POST("/loans/:id/deny", h.Approvals.DenyLoan)
	admin.GET("/payments/pending", h.Payments.ListPending)
	admin.POST("/payments/:id/approve", h.Approvals.ApprovePayment)
	admin.GET("/approvals", h.Approvals.History)
}
