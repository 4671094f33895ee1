package mysql

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"loan-ledger/internal/domain/loan"
	"loan-ledger/internal/domain/payment"
	"loan-ledger/internal/domain/user"
	"loan-ledger/internal/infrastructure/db"
)

// openTestDB creates a file-backed sqlite DB in a temp dir and migrates the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, gdb *gorm.DB, email string, role user.Role) *user.User {
	t.Helper()
	u := user.New("User "+email, email, "hash", role)
	if err := NewUserRepository(gdb).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedLoan(t *testing.T, gdb *gorm.DB, userID uint64, amount string, status loan.Status) *loan.Loan {
	t.Helper()
	l, err := loan.New(userID, dec(amount), dec("12"), 12, testNow)
	if err != nil {
		t.Fatalf("new loan: %v", err)
	}
	l.Status = status
	if err := NewLoanRepository(gdb).Create(context.Background(), l); err != nil {
		t.Fatalf("seed loan: %v", err)
	}
	return l
}

func seedPayment(t *testing.T, gdb *gorm.DB, l *loan.Loan, amount string) *payment.Payment {
	t.Helper()
	p, err := payment.New(l.UserID, l.ID, dec(amount), payment.MethodCash, testNow)
	if err != nil {
		t.Fatalf("new payment: %v", err)
	}
	if err := NewPaymentRepository(gdb).Create(context.Background(), p); err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return p
}
