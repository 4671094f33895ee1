package access

import (
	"context"
	"errors"
	"testing"

	"loan-ledger/internal/domain/errs"
	"loan-ledger/internal/domain/user"
)

var (
	admin    = Principal{UserID: 1, Role: user.RoleAdmin, IsApproved: true}
	borrower = Principal{UserID: 2, Role: user.RoleBorrower, IsApproved: true}
	pending  = Principal{UserID: 3, Role: user.RoleBorrower}
	anon     = Principal{}
)

func TestGuards(t *testing.T) {
	tests := []struct {
		name  string
		guard Guard
		p     Principal
		want  bool
	}{
		{"admin gate admin", RequireAdmin, admin, true},
		{"admin gate borrower", RequireAdmin, borrower, false},
		{"admin gate anon", RequireAdmin, anon, false},
		{"borrower gate borrower", RequireBorrower, borrower, true},
		{"borrower gate admin", RequireBorrower, admin, false},
		{"borrower gate pending", RequireBorrower, pending, false},
		{"auth gate pending", RequireAuthenticated, pending, false},
		{"auth gate borrower", RequireAuthenticated, borrower, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.guard(tt.p)
			if d.Allowed != tt.want {
				t.Fatalf("Allowed = %v, want %v (reason %q)", d.Allowed, tt.want, d.Reason)
			}
			if !d.Allowed && d.Reason == "" {
				t.Fatalf("denials must carry a reason")
			}
		})
	}
}

func TestRequireAuthenticated_AnonIsUnauthenticated(t *testing.T) {
	d := RequireAuthenticated(anon)
	if d.Allowed || !d.Unauthenticated {
		t.Fatalf("anon: %+v", d)
	}
	if d := RequireAuthenticated(pending); d.Unauthenticated {
		t.Fatalf("pending user is authenticated but not approved")
	}
}

func TestOwnerGuards(t *testing.T) {
	if !RequireOwner(borrower, 2).Allowed {
		t.Fatalf("owner must be allowed")
	}
	if RequireOwner(admin, 2).Allowed {
		t.Fatalf("RequireOwner does not let admins through")
	}
	if !RequireOwnerOrAdmin(admin, 2).Allowed {
		t.Fatalf("admin must be allowed by RequireOwnerOrAdmin")
	}
	if RequireOwnerOrAdmin(Principal{UserID: 9, Role: user.RoleBorrower, IsApproved: true}, 2).Allowed {
		t.Fatalf("other borrower must be denied")
	}
}

func TestDecisionErr(t *testing.T) {
	if Authorized.Err() != nil {
		t.Fatalf("authorized must have nil error")
	}
	err := Denied("nope").Err()
	if !errors.Is(err, errs.Permission) || err.Error() != "nope" {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestPrincipalContext(t *testing.T) {
	ctx := WithPrincipal(context.Background(), borrower)
	if got := FromContext(ctx); got != borrower {
		t.Fatalf("FromContext = %+v", got)
	}
	if got := FromContext(context.Background()); got.Authenticated() {
		t.Fatalf("empty context must yield anonymous principal")
	}
	if got := FromContext(nil); got.Authenticated() {
		t.Fatalf("nil context must yield anonymous principal")
	}
}
