// Package access holds the request-scoped identity and the guards that
// decide which actions it may perform.
package access

import (
	"context"

	"loan-ledger/internal/domain/errs"
	"loan-ledger/internal/domain/user"
)

// Principal is the authenticated caller of one request.
type Principal struct {
	UserID     uint64    `json:"user_id"`
	Role       user.Role `json:"role"`
	IsApproved bool      `json:"is_approved"`
}

func (p Principal) Authenticated() bool { return p.UserID != 0 }

func (p Principal) IsAdmin() bool { return p.Role == user.RoleAdmin }

// Decision is the outcome of a guard: Authorized, or Denied with a reason.
type Decision struct {
	Allowed bool
	// Unauthenticated distinguishes a missing identity from a forbidden one.
	Unauthenticated bool
	Reason          string
}

var Authorized = Decision{Allowed: true}

func Denied(reason string) Decision { return Decision{Reason: reason} }

// Err converts a denial into a permission error; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return errs.NewPermission(d.Reason)
}

// Guard inspects a principal and decides.
type Guard func(p Principal) Decision

func RequireAuthenticated(p Principal) Decision {
	if !p.Authenticated() {
		return Decision{Unauthenticated: true, Reason: "authentication required"}
	}
	if !p.IsApproved {
		return Denied("account is pending administrator approval")
	}
	return Authorized
}

func RequireAdmin(p Principal) Decision {
	if d := RequireAuthenticated(p); !d.Allowed {
		return d
	}
	if !p.IsAdmin() {
		return Denied("administrator privileges required")
	}
	return Authorized
}

func RequireBorrower(p Principal) Decision {
	if d := RequireAuthenticated(p); !d.Allowed {
		return d
	}
	if p.Role != user.RoleBorrower {
		return Denied("only borrowers can perform this action")
	}
	return Authorized
}

// RequireOwner allows the owner of a resource.
func RequireOwner(p Principal, ownerID uint64) Decision {
	if d := RequireAuthenticated(p); !d.Allowed {
		return d
	}
	if p.UserID != ownerID {
		return Denied("resource belongs to another user")
	}
	return Authorized
}

// RequireOwnerOrAdmin allows the owner of a resource or any admin.
func RequireOwnerOrAdmin(p Principal, ownerID uint64) Decision {
	if d := RequireAuthenticated(p); !d.Allowed {
		return d
	}
	if p.IsAdmin() || p.UserID == ownerID {
		return Authorized
	}
	return Denied("resource belongs to another user")
}

type principalKey struct{}

// WithPrincipal stores the caller identity in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the caller stored by WithPrincipal, or the zero
// (unauthenticated) principal.
func FromContext(ctx context.Context) Principal {
	if ctx == nil {
		return Principal{}
	}
	p, _ := ctx.Value(principalKey{}).(Principal)
	return p
}
